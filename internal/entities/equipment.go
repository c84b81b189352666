package entities

import (
	"time"

	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/types"
)

// Status de calibração de um equipamento. DESATIVADO é um estado manual,
// nunca produzido pelo motor de status; REFERENCIA marca equipamento sem
// histórico de calibração.
const (
	StatusCalibrado  = "CALIBRADO"
	StatusIraVencer  = "IRA_VENCER"
	StatusVencido    = "VENCIDO"
	StatusDesativado = "DESATIVADO"
	StatusReferencia = "REFERENCIA"
)

// Situação de uso, independente do status de calibração. Define em qual
// listagem (equipamentos ou estoque) o item aparece.
const (
	UsageInUse   = "IN_USE"
	UsageInStock = "IN_STOCK"
)

type Equipment struct {
	ID   uint64 `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`

	EquipmentTypeID uint64  `json:"equipment_type_id"`
	SectorID        *uint64 `json:"sector_id"` // nulo = estoque central, sem setor

	UsageStatus string `json:"usage_status"`

	// Estado de calibração derivado, recalculado sempre em escrita e lido
	// como está nas consultas.
	LastCalibrationDate   *time.Time `json:"last_calibration_date"`
	LastCertificateNumber *string    `json:"last_certificate_number"`
	DueDate               *time.Time `json:"due_date"`
	Status                string     `json:"status"`

	// Atributos descritivos
	Manufacturer           *string `json:"manufacturer"`
	Model                  *string `json:"model"`
	Resolution             *string `json:"resolution"`
	Capacity               *string `json:"capacity"`
	ResponsiblePerson      *string `json:"responsible_person"`
	WorkingRange           *string `json:"working_range"`
	AdmissibleUncertainty  *string `json:"admissible_uncertainty"`
	MaxError               *string `json:"max_error"`
	Provider               *string `json:"provider"`
	Unit                   *string `json:"unit"`
	Location               *string `json:"location"`
	Notes                  *string `json:"notes"`
	ImageKey               *string `json:"image_key"`

	types.BaseEntity

	// Relações carregadas nas consultas com JOIN (não são colunas)
	EquipmentType *EquipmentType `json:"equipment_type,omitempty" db:"-"`
	Sector        *Sector        `json:"sector,omitempty" db:"-"`
}

// IsValidStatus confere se o valor pertence ao conjunto de status persistíveis.
func IsValidStatus(status string) bool {
	switch status {
	case StatusCalibrado, StatusIraVencer, StatusVencido, StatusDesativado, StatusReferencia:
		return true
	}
	return false
}

func IsValidUsageStatus(usage string) bool {
	return usage == UsageInUse || usage == UsageInStock
}
