package types

import "time"

// DashboardStatusCount é uma fatia da contagem de equipamentos por status.
type DashboardStatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// DashboardSectorCounts são as contagens brutas por setor, antes do cálculo
// do índice de saúde. SectorID nulo representa o balde sintético de estoque.
type DashboardSectorCounts struct {
	SectorID   *uint64 `json:"sector_id"`
	SectorName string  `json:"sector_name"`
	Total      int64   `json:"total"`
	Calibrated int64   `json:"calibrated"`
	Reference  int64   `json:"reference"`
}

// DashboardSectorHealth é o índice de saúde já calculado de um setor.
type DashboardSectorHealth struct {
	SectorID   *uint64 `json:"sector_id"`
	SectorName string  `json:"sector_name"`
	Total      int64   `json:"total"`
	Calibrated int64   `json:"calibrated"`
	Score      int     `json:"score"`
}

// DashboardMonthCount é um balde mensal da série de calibrações.
type DashboardMonthCount struct {
	Month time.Time `json:"month"`
	Count int64     `json:"count"`
}

// DashboardApprovalStats agrega laudos aprovados/reprovados dos últimos 12 meses.
type DashboardApprovalStats struct {
	Approved int64   `json:"approved"`
	Rejected int64   `json:"rejected"`
	Rate     float64 `json:"rate"`
}

// DashboardUpcomingItem é um equipamento com vencimento próximo.
type DashboardUpcomingItem struct {
	EquipmentID uint64     `json:"equipment_id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	SectorName  *string    `json:"sector_name"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status"`
}
