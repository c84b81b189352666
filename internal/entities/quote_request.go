package entities

import "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/types"

// Ciclo de vida de uma solicitação de orçamento de calibração.
const (
	QuoteNew    = "NEW"
	QuoteSent   = "SENT"
	QuoteClosed = "CLOSED"
)

// QuoteRequest agrupa equipamentos a calibrar para cotação com um fornecedor.
type QuoteRequest struct {
	ID         uint64  `json:"id"`
	SupplierID uint64  `json:"supplier_id"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes"`

	types.BaseEntity

	Supplier *Supplier          `json:"supplier,omitempty" db:"-"`
	Items    []QuoteRequestItem `json:"items,omitempty" db:"-"`
}

type QuoteRequestItem struct {
	ID             uint64 `json:"id"`
	QuoteRequestID uint64 `json:"quote_request_id"`
	EquipmentID    uint64 `json:"equipment_id"`

	Equipment *Equipment `json:"equipment,omitempty" db:"-"`
}
