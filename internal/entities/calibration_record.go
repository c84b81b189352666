package entities

import "time"

// Resultado do laudo de uma calibração. Nulo quando o laudo ainda não foi
// classificado; registros sem laudo ficam fora da taxa de aprovação.
const (
	RecordApproved = "APPROVED"
	RecordRejected = "REJECTED"
)

// CalibrationRecord é um evento histórico de calibração de um equipamento.
// O histórico é append-only; a remoção do registro mais recente obriga o
// recálculo do estado derivado do equipamento pai.
type CalibrationRecord struct {
	ID                uint64     `json:"id"`
	EquipmentID       uint64     `json:"equipment_id"`
	CalibrationDate   time.Time  `json:"calibration_date"`
	CertificateNumber *string    `json:"certificate_number"`
	PerformedBy       *string    `json:"performed_by"`
	Notes             *string    `json:"notes"`
	MeasuredError     *float64   `json:"error"`
	Uncertainty       *float64   `json:"uncertainty"`
	Status            *string    `json:"status"` // APPROVED | REJECTED | nulo
	AttachmentKey     *string    `json:"attachment_key"`
	CreatedAt         time.Time  `json:"created_at"`
}
