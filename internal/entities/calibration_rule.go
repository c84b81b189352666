package entities

import "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/types"

// CalibrationRule define a cadência de calibração de um tipo de equipamento:
// intervalo em meses e antecedência (em dias) do aviso de vencimento.
// Invariante: no máximo uma regra por tipo (unique em equipment_type_id).
type CalibrationRule struct {
	ID              uint64 `json:"id"`
	EquipmentTypeID uint64 `json:"equipment_type_id"`
	IntervalMonths  int    `json:"interval_months"` // > 0
	WarnDays        int    `json:"warn_days"`       // >= 0

	types.BaseEntity
}
