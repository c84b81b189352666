package services

import (
	"time"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/dto"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/entities"
)

// Projeções entidade -> DTO compartilhadas pelos serviços. Datas sem hora
// saem como 2006-01-02; carimbos de tempo saem em RFC3339.

func fmtDate(t time.Time) string {
	return t.Format(dto.DateLayout)
}

func fmtDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dto.DateLayout)
	return &s
}

func fmtTimestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}

func mapEquipment(e *entities.Equipment) *dto.EquipmentDTO {
	out := &dto.EquipmentDTO{
		ID:                    e.ID,
		Code:                  e.Code,
		Name:                  e.Name,
		UsageStatus:           e.UsageStatus,
		LastCalibrationDate:   fmtDatePtr(e.LastCalibrationDate),
		LastCertificateNumber: e.LastCertificateNumber,
		DueDate:               fmtDatePtr(e.DueDate),
		Status:                e.Status,
		Manufacturer:          e.Manufacturer,
		Model:                 e.Model,
		Resolution:            e.Resolution,
		Capacity:              e.Capacity,
		ResponsiblePerson:     e.ResponsiblePerson,
		WorkingRange:          e.WorkingRange,
		AdmissibleUncertainty: e.AdmissibleUncertainty,
		MaxError:              e.MaxError,
		Provider:              e.Provider,
		Unit:                  e.Unit,
		Location:              e.Location,
		Notes:                 e.Notes,
		ImageKey:              e.ImageKey,
		CreatedAt:             fmtTimestamp(e.CreatedAt),
		UpdatedAt:             fmtTimestamp(e.UpdatedAt),
	}
	if e.EquipmentType != nil {
		out.EquipmentType = dto.ShortEquipmentTypeDTO{ID: e.EquipmentType.ID, Name: e.EquipmentType.Name}
	} else {
		out.EquipmentType = dto.ShortEquipmentTypeDTO{ID: e.EquipmentTypeID}
	}
	if e.Sector != nil {
		out.Sector = &dto.ShortSectorDTO{ID: e.Sector.ID, Name: e.Sector.Name}
	}
	return out
}

func mapEquipments(list []entities.Equipment) []dto.EquipmentDTO {
	out := make([]dto.EquipmentDTO, 0, len(list))
	for i := range list {
		out = append(out, *mapEquipment(&list[i]))
	}
	return out
}

func mapCalibrationRecord(rec *entities.CalibrationRecord) dto.CalibrationRecordDTO {
	return dto.CalibrationRecordDTO{
		ID:                rec.ID,
		EquipmentID:       rec.EquipmentID,
		CalibrationDate:   fmtDate(rec.CalibrationDate),
		CertificateNumber: rec.CertificateNumber,
		PerformedBy:       rec.PerformedBy,
		Notes:             rec.Notes,
		MeasuredError:     rec.MeasuredError,
		Uncertainty:       rec.Uncertainty,
		Status:            rec.Status,
		AttachmentKey:     rec.AttachmentKey,
		CreatedAt:         fmtTimestamp(rec.CreatedAt),
	}
}

func mapCalibrationRule(rule *entities.CalibrationRule) dto.CalibrationRuleDTO {
	return dto.CalibrationRuleDTO{
		ID:              rule.ID,
		EquipmentTypeID: rule.EquipmentTypeID,
		IntervalMonths:  rule.IntervalMonths,
		WarnDays:        rule.WarnDays,
		CreatedAt:       fmtTimestamp(rule.CreatedAt),
		UpdatedAt:       fmtTimestamp(rule.UpdatedAt),
	}
}

func mapEquipmentType(et *entities.EquipmentType) dto.EquipmentTypeDTO {
	out := dto.EquipmentTypeDTO{
		ID:        et.ID,
		Name:      et.Name,
		CreatedAt: fmtTimestamp(et.CreatedAt),
		UpdatedAt: fmtTimestamp(et.UpdatedAt),
	}
	if et.Rule != nil {
		rule := mapCalibrationRule(et.Rule)
		out.Rule = &rule
	}
	return out
}

func mapSector(s *entities.Sector) dto.SectorDTO {
	return dto.SectorDTO{
		ID:        s.ID,
		Name:      s.Name,
		CreatedAt: fmtTimestamp(s.CreatedAt),
		UpdatedAt: fmtTimestamp(s.UpdatedAt),
	}
}

func mapSupplier(s *entities.Supplier) dto.SupplierDTO {
	return dto.SupplierDTO{
		ID:        s.ID,
		Name:      s.Name,
		CNPJ:      s.CNPJ,
		Email:     s.Email,
		Phone:     s.Phone,
		Contact:   s.Contact,
		Notes:     s.Notes,
		CreatedAt: fmtTimestamp(s.CreatedAt),
		UpdatedAt: fmtTimestamp(s.UpdatedAt),
	}
}

func mapQuoteRequest(q *entities.QuoteRequest) dto.QuoteRequestDTO {
	out := dto.QuoteRequestDTO{
		ID:        q.ID,
		Status:    q.Status,
		Notes:     q.Notes,
		CreatedAt: fmtTimestamp(q.CreatedAt),
		UpdatedAt: fmtTimestamp(q.UpdatedAt),
	}
	if q.Supplier != nil {
		out.Supplier = dto.ShortSupplierDTO{ID: q.Supplier.ID, Name: q.Supplier.Name}
	}
	for _, item := range q.Items {
		itemDTO := dto.QuoteRequestItemDTO{
			ID:          item.ID,
			EquipmentID: item.EquipmentID,
		}
		if item.Equipment != nil {
			itemDTO.EquipmentCode = item.Equipment.Code
			itemDTO.EquipmentName = item.Equipment.Name
		}
		out.Items = append(out.Items, itemDTO)
	}
	return out
}

func mapUser(u *entities.User) dto.UserDTO {
	out := dto.UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Approved:  u.Approved,
		CreatedAt: fmtTimestamp(u.CreatedAt),
	}
	if u.Sector != nil {
		out.Sector = &dto.ShortSectorDTO{ID: u.Sector.ID, Name: u.Sector.Name}
	}
	return out
}
