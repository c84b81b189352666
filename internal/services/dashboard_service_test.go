package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/authz"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/entities"
	apperrors "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/errors"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/types"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/utils"
)

func TestComputeSectorHealth_EstoqueDescontaReferencia(t *testing.T) {
	counts := []types.DashboardSectorCounts{
		{SectorID: utils.Uint64Ptr(1), SectorName: "Usinagem", Total: 10, Calibrated: 8, Reference: 2},
		{SectorID: nil, SectorName: "Estoque", Total: 6, Calibrated: 3, Reference: 2},
	}

	health := computeSectorHealth(counts)
	require.Len(t, health, 2)

	// Setor real: referência conta no denominador.
	assert.Equal(t, int64(10), health[0].Total)
	assert.Equal(t, 80, health[0].Score)

	// Estoque: referência sai do denominador, 3 de 4.
	assert.Equal(t, int64(4), health[1].Total)
	assert.Equal(t, 75, health[1].Score)
}

func TestComputeSectorHealth_SetorVazioTemScoreZero(t *testing.T) {
	health := computeSectorHealth([]types.DashboardSectorCounts{
		{SectorID: nil, SectorName: "Estoque", Total: 2, Calibrated: 0, Reference: 2},
	})
	require.Len(t, health, 1)
	assert.Equal(t, int64(0), health[0].Total)
	assert.Equal(t, 0, health[0].Score)
}

func TestComputeSectorHealth_Arredondamento(t *testing.T) {
	health := computeSectorHealth([]types.DashboardSectorCounts{
		{SectorID: utils.Uint64Ptr(1), SectorName: "Metrologia", Total: 3, Calibrated: 2},
	})
	assert.Equal(t, 67, health[0].Score)
}

func TestDenseMonths_PreencheMesesVazios(t *testing.T) {
	since := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	sparse := []types.DashboardMonthCount{
		{Month: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), Count: 4},
		{Month: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Count: 2},
	}

	out := denseMonths(sparse, since, 12)
	require.Len(t, out, 12)

	assert.Equal(t, since, out[0].Month)
	assert.Equal(t, int64(0), out[0].Count)
	assert.Equal(t, int64(4), out[2].Count)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), out[11].Month)
	assert.Equal(t, int64(2), out[11].Count)
}

func TestApprovalStats(t *testing.T) {
	stats := approvalStats(9, 1)
	assert.Equal(t, int64(9), stats.Approved)
	assert.InDelta(t, 90.0, stats.Rate, 0.001)

	vazio := approvalStats(0, 0)
	assert.Zero(t, vazio.Rate)
}

func TestGetDashboard_ProducaoCarregaPredicadoDeSetor(t *testing.T) {
	repo := &mockDashboardRepo{
		statusCounts: []types.DashboardStatusCount{{Status: entities.StatusCalibrado, Count: 3}},
	}
	svc := NewDashboardService(repo, authz.NewGatekeeper(), zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC) }

	sectorID := uint64(5)
	out, err := svc.GetDashboard(ctxWithRole(authz.RoleProducao, 3, &sectorID))
	require.NoError(t, err)

	require.NotNil(t, repo.lastSecurity)
	sql, args, err := repo.lastSecurity.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "e.sector_id = ?", sql)
	assert.Equal(t, []interface{}{sectorID}, args)

	require.Len(t, out.ByMonth, 12)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), out.ByMonth[0].Month)
}

func TestGetDashboard_AdminSemPredicado(t *testing.T) {
	repo := &mockDashboardRepo{}
	svc := NewDashboardService(repo, authz.NewGatekeeper(), zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC) }

	_, err := svc.GetDashboard(ctxWithRole(authz.RoleAdmin, 1, nil))
	require.NoError(t, err)
	assert.Nil(t, repo.lastSecurity)
}

func TestGetDashboard_FalhaDeUmaConsultaAbortaOPainel(t *testing.T) {
	repo := &mockDashboardRepo{approvalErr: assert.AnError}
	svc := NewDashboardService(repo, authz.NewGatekeeper(), zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC) }

	out, err := svc.GetDashboard(ctxWithRole(authz.RoleAdmin, 1, nil))
	assert.Nil(t, out)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestGetDashboard_SemPermissao(t *testing.T) {
	svc := NewDashboardService(&mockDashboardRepo{}, authz.NewGatekeeper(), zap.NewNop())

	_, err := svc.GetDashboard(ctxWithRole("DESCONHECIDO", 99, nil))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
