package calibration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/entities"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func ruleOf(intervalMonths, warnDays int) *entities.CalibrationRule {
	return &entities.CalibrationRule{ID: 1, EquipmentTypeID: 1, IntervalMonths: intervalMonths, WarnDays: warnDays}
}

func TestComputeStatus_SemHistoricoEhSempreReferencia(t *testing.T) {
	ref := date(2024, time.June, 15)

	tests := []struct {
		name string
		rule *entities.CalibrationRule
	}{
		{"sem regra", nil},
		{"com regra", ruleOf(12, 30)},
		{"regra com aviso zero", ruleOf(6, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ComputeStatus(ref, nil, tt.rule)
			assert.Equal(t, entities.StatusReferencia, res.Status)
			assert.Nil(t, res.DueDate)
		})
	}
}

func TestComputeStatus_SemRegraEhConservador(t *testing.T) {
	res := ComputeStatus(date(2024, time.June, 15), datePtr(2024, time.June, 1), nil)
	assert.Equal(t, entities.StatusVencido, res.Status)
	assert.Nil(t, res.DueDate)
}

func TestComputeStatus_Classificacao(t *testing.T) {
	// Última calibração em 01/01/2024, intervalo de 12 meses, aviso de 30
	// dias: vencimento em 01/01/2025, janela de aviso abre em 02/12/2024.
	last := datePtr(2024, time.January, 1)
	rule := ruleOf(12, 30)

	tests := []struct {
		name       string
		ref        time.Time
		wantStatus string
	}{
		{"bem antes da janela", date(2024, time.June, 1), entities.StatusCalibrado},
		{"véspera da janela", date(2024, time.December, 1), entities.StatusCalibrado},
		{"borda exata da janela (inclusiva)", date(2024, time.December, 2), entities.StatusIraVencer},
		{"dentro da janela", date(2024, time.December, 20), entities.StatusIraVencer},
		{"no dia do vencimento", date(2025, time.January, 1), entities.StatusIraVencer},
		{"um dia após o vencimento", date(2025, time.January, 2), entities.StatusVencido},
		{"muito após o vencimento", date(2026, time.March, 10), entities.StatusVencido},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ComputeStatus(tt.ref, last, rule)
			assert.Equal(t, tt.wantStatus, res.Status)
			require.NotNil(t, res.DueDate)
			assert.Equal(t, date(2025, time.January, 1), *res.DueDate)
		})
	}
}

// A classificação nunca regride conforme a data de referência avança.
func TestComputeStatus_TransicaoMonotona(t *testing.T) {
	last := datePtr(2024, time.January, 1)
	rule := ruleOf(6, 15)

	rank := map[string]int{
		entities.StatusCalibrado: 0,
		entities.StatusIraVencer: 1,
		entities.StatusVencido:   2,
	}

	prev := -1
	for ref := date(2024, time.January, 2); ref.Before(date(2024, time.September, 1)); ref = ref.AddDate(0, 0, 1) {
		res := ComputeStatus(ref, last, rule)
		cur, ok := rank[res.Status]
		require.True(t, ok, "status inesperado %q em %s", res.Status, ref)
		require.GreaterOrEqual(t, cur, prev, "classificação regrediu em %s", ref)
		prev = cur
	}
}

func TestComputeStatus_AvisoZeroSoAvisaNoVencimento(t *testing.T) {
	last := datePtr(2024, time.January, 1)
	rule := ruleOf(1, 0)

	res := ComputeStatus(date(2024, time.January, 31), last, rule)
	assert.Equal(t, entities.StatusCalibrado, res.Status)

	res = ComputeStatus(date(2024, time.February, 1), last, rule)
	assert.Equal(t, entities.StatusIraVencer, res.Status)

	res = ComputeStatus(date(2024, time.February, 2), last, rule)
	assert.Equal(t, entities.StatusVencido, res.Status)
}

func TestComputeStatus_IgnoraHoraDoDia(t *testing.T) {
	last := datePtr(2024, time.January, 1)
	rule := ruleOf(12, 30)

	morning := time.Date(2024, time.December, 2, 0, 1, 0, 0, time.UTC)
	night := time.Date(2024, time.December, 2, 23, 59, 59, 0, time.UTC)

	assert.Equal(t, ComputeStatus(morning, last, rule).Status, ComputeStatus(night, last, rule).Status)
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{"caso simples", date(2024, time.March, 15), 1, date(2024, time.April, 15)},
		{"31/jan + 1 mês em ano bissexto", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"31/jan + 1 mês em ano comum", date(2023, time.January, 31), 1, date(2023, time.February, 28)},
		{"31/mai + 1 mês", date(2024, time.May, 31), 1, date(2024, time.June, 30)},
		{"virada de ano", date(2024, time.November, 30), 3, date(2025, time.February, 28)},
		{"intervalo de 12 meses", date(2024, time.February, 29), 12, date(2025, time.February, 28)},
		{"intervalo de 24 meses", date(2024, time.February, 29), 24, date(2026, time.February, 28)},
		{"intervalo de 18 meses", date(2024, time.January, 15), 18, date(2025, time.July, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonthsClamped(tt.start, tt.months))
		})
	}
}

func TestComputeStatus_VencimentoComClampDeDia(t *testing.T) {
	// 31/01 + 1 mês cai no último dia de fevereiro, nunca em março.
	res := ComputeStatus(date(2024, time.February, 1), datePtr(2024, time.January, 31), ruleOf(1, 0))
	require.NotNil(t, res.DueDate)
	assert.Equal(t, date(2024, time.February, 29), *res.DueDate)

	res = ComputeStatus(date(2023, time.February, 1), datePtr(2023, time.January, 31), ruleOf(1, 0))
	require.NotNil(t, res.DueDate)
	assert.Equal(t, date(2023, time.February, 28), *res.DueDate)
}
