package types

import "time"

// BaseEntity carrega os campos de auditoria comuns a todas as tabelas.
type BaseEntity struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
