package dto

// DTOs dos cadastros: tipos de equipamento, regras de calibração e setores.

type EquipmentTypeDTO struct {
	ID        uint64              `json:"id"`
	Name      string              `json:"name"`
	Rule      *CalibrationRuleDTO `json:"rule"`
	CreatedAt string              `json:"created_at"`
	UpdatedAt string              `json:"updated_at"`
}

type CreateEquipmentTypeDTO struct {
	Name string `json:"name" validate:"required,min=2,max=80"`
}

type UpdateEquipmentTypeDTO struct {
	Name *string `json:"name" validate:"omitempty,min=2,max=80"`
}

type CalibrationRuleDTO struct {
	ID              uint64 `json:"id"`
	EquipmentTypeID uint64 `json:"equipment_type_id"`
	IntervalMonths  int    `json:"interval_months"`
	WarnDays        int    `json:"warn_days"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

type CreateCalibrationRuleDTO struct {
	EquipmentTypeID uint64 `json:"equipment_type_id" validate:"required"`
	IntervalMonths  int    `json:"interval_months" validate:"required,gt=0"`
	WarnDays        int    `json:"warn_days" validate:"gte=0"`
}

type UpdateCalibrationRuleDTO struct {
	IntervalMonths *int `json:"interval_months" validate:"omitempty,gt=0"`
	WarnDays       *int `json:"warn_days" validate:"omitempty,gte=0"`
}

type SectorDTO struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CreateSectorDTO struct {
	Name string `json:"name" validate:"required,min=2,max=80"`
}

type UpdateSectorDTO struct {
	Name string `json:"name" validate:"required,min=2,max=80"`
}
