// Package calibration contém o motor de status: a função pura que, dada a
// última data de calibração e a regra do tipo, deriva o status de ciclo de
// vida e a data de vencimento de um equipamento. A data de referência é
// sempre injetada pelo chamador; este pacote nunca lê o relógio.
package calibration

import (
	"time"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/entities"
)

// Result é a saída do motor de status.
type Result struct {
	DueDate *time.Time
	Status  string
}

// ComputeStatus deriva {dueDate, status} a partir da data de referência, da
// última calibração e da regra vigente. Função total: nunca retorna erro.
//
// Precedências, nesta ordem:
//  1. Sem última calibração → REFERENCIA, sem vencimento. Vale mesmo com
//     regra presente: equipamento sem histórico é item de referência.
//  2. Com calibração mas sem regra → VENCIDO, sem vencimento. Um item
//     calibrável cuja política está ausente não pode ser dado como conforme,
//     então recebe a classificação mais conservadora.
//  3. Com ambos → vencimento = última calibração + intervalMonths meses
//     (aritmética de calendário com clamp do dia), e a classificação compara
//     a referência com o vencimento e a janela de aviso.
//
// A comparação na borda da janela é inclusiva: faltando exatamente warnDays
// dias, o status é IRA_VENCER.
func ComputeStatus(referenceDate time.Time, lastCalibrationDate *time.Time, rule *entities.CalibrationRule) Result {
	if lastCalibrationDate == nil {
		return Result{DueDate: nil, Status: entities.StatusReferencia}
	}

	if rule == nil {
		return Result{DueDate: nil, Status: entities.StatusVencido}
	}

	ref := truncateToDay(referenceDate)
	last := truncateToDay(*lastCalibrationDate)
	due := AddMonthsClamped(last, rule.IntervalMonths)

	if ref.After(due) {
		return Result{DueDate: &due, Status: entities.StatusVencido}
	}

	daysRemaining := int(due.Sub(ref).Hours() / 24)
	if daysRemaining <= rule.WarnDays {
		return Result{DueDate: &due, Status: entities.StatusIraVencer}
	}

	return Result{DueDate: &due, Status: entities.StatusCalibrado}
}

// AddMonthsClamped soma meses de calendário, segurando o dia no último dia do
// mês quando o mês de destino é mais curto (31/jan + 1 mês = 28 ou 29/fev,
// nunca 2 ou 3/mar como faria o AddDate).
func AddMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	total := int(month) - 1 + months
	year += total / 12
	rem := total % 12
	if rem < 0 {
		rem += 12
		year--
	}
	targetMonth := time.Month(rem + 1)

	if last := daysInMonth(year, targetMonth); day > last {
		day = last
	}

	return time.Date(year, targetMonth, day, 0, 0, 0, 0, time.UTC)
}

// truncateToDay normaliza para meia-noite UTC, de modo que duas chamadas no
// mesmo dia-calendário sempre concordem, independente da hora.
func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// daysInMonth explora a normalização do time.Date: o dia zero do mês seguinte
// é o último dia do mês pedido.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
