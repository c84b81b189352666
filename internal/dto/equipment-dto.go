package dto

// EquipmentDTO é a projeção de leitura de um equipamento, com as relações já
// resolvidas e datas formatadas como 2006-01-02.
type EquipmentDTO struct {
	ID   uint64 `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`

	EquipmentType ShortEquipmentTypeDTO `json:"equipment_type"`
	Sector        *ShortSectorDTO       `json:"sector"`

	UsageStatus string `json:"usage_status"`

	LastCalibrationDate   *string `json:"last_calibration_date"`
	LastCertificateNumber *string `json:"last_certificate_number"`
	DueDate               *string `json:"due_date"`
	Status                string  `json:"status"`

	Manufacturer          *string `json:"manufacturer"`
	Model                 *string `json:"model"`
	Resolution            *string `json:"resolution"`
	Capacity              *string `json:"capacity"`
	ResponsiblePerson     *string `json:"responsible_person"`
	WorkingRange          *string `json:"working_range"`
	AdmissibleUncertainty *string `json:"admissible_uncertainty"`
	MaxError              *string `json:"max_error"`
	Provider              *string `json:"provider"`
	Unit                  *string `json:"unit"`
	Location              *string `json:"location"`
	Notes                 *string `json:"notes"`
	ImageKey              *string `json:"image_key"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CreateEquipmentDTO struct {
	Code            string  `json:"code" validate:"required,asset_code"`
	Name            string  `json:"name" validate:"required,min=2,max=120"`
	EquipmentTypeID uint64  `json:"equipment_type_id" validate:"required"`
	SectorID        *uint64 `json:"sector_id"`
	UsageStatus     string  `json:"usage_status" validate:"omitempty,oneof=IN_USE IN_STOCK"`

	// Data da última calibração já realizada, se houver; o status e o
	// vencimento são calculados na criação a partir dela.
	LastCalibrationDate   *string `json:"last_calibration_date" validate:"omitempty,date_only"`
	LastCertificateNumber *string `json:"last_certificate_number"`

	Manufacturer          *string `json:"manufacturer"`
	Model                 *string `json:"model"`
	Resolution            *string `json:"resolution"`
	Capacity              *string `json:"capacity"`
	ResponsiblePerson     *string `json:"responsible_person"`
	WorkingRange          *string `json:"working_range"`
	AdmissibleUncertainty *string `json:"admissible_uncertainty"`
	MaxError              *string `json:"max_error"`
	Provider              *string `json:"provider"`
	Unit                  *string `json:"unit"`
	Location              *string `json:"location"`
	Notes                 *string `json:"notes"`
	ImageKey              *string `json:"image_key"`
}

// UpdateEquipmentDTO é o corpo do PATCH: só os campos presentes são aplicados.
type UpdateEquipmentDTO struct {
	Code            *string `json:"code" validate:"omitempty,asset_code"`
	Name            *string `json:"name" validate:"omitempty,min=2,max=120"`
	EquipmentTypeID *uint64 `json:"equipment_type_id"`
	SectorID        *uint64 `json:"sector_id"`
	UsageStatus     *string `json:"usage_status" validate:"omitempty,oneof=IN_USE IN_STOCK"`

	// Só administradores podem trocar o status diretamente (ex.: DESATIVADO)
	Status *string `json:"status" validate:"omitempty,oneof=CALIBRADO IRA_VENCER VENCIDO DESATIVADO REFERENCIA"`

	Manufacturer          *string `json:"manufacturer"`
	Model                 *string `json:"model"`
	Resolution            *string `json:"resolution"`
	Capacity              *string `json:"capacity"`
	ResponsiblePerson     *string `json:"responsible_person"`
	WorkingRange          *string `json:"working_range"`
	AdmissibleUncertainty *string `json:"admissible_uncertainty"`
	MaxError              *string `json:"max_error"`
	Provider              *string `json:"provider"`
	Unit                  *string `json:"unit"`
	Location              *string `json:"location"`
	Notes                 *string `json:"notes"`
	ImageKey              *string `json:"image_key"`
}

// UpdateUsageStateDTO é a movimentação entre uso e estoque. A regra
// usage_location exige setor para IN_USE e localização para IN_STOCK.
type UpdateUsageStateDTO struct {
	UsageStatus string  `json:"usage_status" validate:"required,oneof=IN_USE IN_STOCK,usage_location"`
	SectorID    *uint64 `json:"sector_id"`
	Location    *string `json:"location"`
}
