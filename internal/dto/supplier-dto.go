package dto

type SupplierDTO struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	CNPJ      *string `json:"cnpj"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Contact   *string `json:"contact"`
	Notes     *string `json:"notes"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type CreateSupplierDTO struct {
	Name    string  `json:"name" validate:"required,min=2,max=120"`
	CNPJ    *string `json:"cnpj"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone"`
	Contact *string `json:"contact"`
	Notes   *string `json:"notes"`
}

type UpdateSupplierDTO struct {
	Name    *string `json:"name" validate:"omitempty,min=2,max=120"`
	CNPJ    *string `json:"cnpj"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone"`
	Contact *string `json:"contact"`
	Notes   *string `json:"notes"`
}

type QuoteRequestDTO struct {
	ID        uint64                `json:"id"`
	Supplier  ShortSupplierDTO      `json:"supplier"`
	Status    string                `json:"status"`
	Notes     *string               `json:"notes"`
	Items     []QuoteRequestItemDTO `json:"items"`
	CreatedAt string                `json:"created_at"`
	UpdatedAt string                `json:"updated_at"`
}

type QuoteRequestItemDTO struct {
	ID            uint64 `json:"id"`
	EquipmentID   uint64 `json:"equipment_id"`
	EquipmentCode string `json:"equipment_code"`
	EquipmentName string `json:"equipment_name"`
}

type CreateQuoteRequestDTO struct {
	SupplierID   uint64   `json:"supplier_id" validate:"required"`
	EquipmentIDs []uint64 `json:"equipment_ids" validate:"required,min=1,dive,required"`
	Notes        *string  `json:"notes"`
}

type UpdateQuoteStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=NEW SENT CLOSED"`
}
