package dto

import "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/types"

// DashboardDTO agrega todas as visões do painel. Cada bloco é derivado do
// status já persistido nos equipamentos; nada é recalculado na leitura.
type DashboardDTO struct {
	StatusCounts  []types.DashboardStatusCount   `json:"status_counts"`
	SectorHealth  []types.DashboardSectorHealth  `json:"sector_health"`
	ByMonth       []types.DashboardMonthCount    `json:"calibrations_by_month"`
	ApprovalStats types.DashboardApprovalStats   `json:"approval_stats"`
	UpcomingDue   []types.DashboardUpcomingItem  `json:"upcoming_due"`
}
