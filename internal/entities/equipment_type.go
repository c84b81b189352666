package entities

import "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/types"

type EquipmentType struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`

	types.BaseEntity

	// Regra de calibração do tipo, quando existir (no máximo uma por tipo)
	Rule *CalibrationRule `json:"rule,omitempty" db:"-"`
}
