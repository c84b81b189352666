package entities

import "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/types"

type User struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"`
	Role         string  `json:"role"`      // papéis definidos em internal/authz
	SectorID     *uint64 `json:"sector_id"` // obrigatório para PRODUCAO
	Approved     bool    `json:"approved"`

	types.BaseEntity

	Sector *Sector `json:"sector,omitempty" db:"-"`
}
