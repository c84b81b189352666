package entities

import "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/types"

type Sector struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`

	types.BaseEntity
}
