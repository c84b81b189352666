package dto

type CalibrationRecordDTO struct {
	ID                uint64   `json:"id"`
	EquipmentID       uint64   `json:"equipment_id"`
	CalibrationDate   string   `json:"calibration_date"`
	CertificateNumber *string  `json:"certificate_number"`
	PerformedBy       *string  `json:"performed_by"`
	Notes             *string  `json:"notes"`
	MeasuredError     *float64 `json:"error"`
	Uncertainty       *float64 `json:"uncertainty"`
	Status            *string  `json:"status"`
	AttachmentKey     *string  `json:"attachment_key"`
	CreatedAt         string   `json:"created_at"`
}

type CreateCalibrationRecordDTO struct {
	CalibrationDate   string   `json:"calibration_date" validate:"required,date_only"`
	CertificateNumber *string  `json:"certificate_number"`
	PerformedBy       *string  `json:"performed_by"`
	Notes             *string  `json:"notes"`
	MeasuredError     *float64 `json:"error"`
	Uncertainty       *float64 `json:"uncertainty"`
	Status            *string  `json:"status" validate:"omitempty,oneof=APPROVED REJECTED"`
	AttachmentKey     *string  `json:"attachment_key"`
}
