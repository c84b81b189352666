package entities

import "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/types"

type Supplier struct {
	ID      uint64  `json:"id"`
	Name    string  `json:"name"`
	CNPJ    *string `json:"cnpj"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Contact *string `json:"contact"`
	Notes   *string `json:"notes"`

	types.BaseEntity
}
