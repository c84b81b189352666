package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/authz"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/calibration"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/dto"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/entities"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/repositories"
	apperrors "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/errors"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/types"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/utils"
)

const auditEntityEquipment = "equipment"

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error)
	GetStock(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error)
	UpdateUsageState(ctx context.Context, id uint64, payload dto.UpdateUsageStateDTO) (*dto.EquipmentDTO, error)
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	ruleRepo      repositories.CalibrationRuleRepositoryInterface
	auditService  AuditServiceInterface
	gate          *authz.Gatekeeper
	logger        *zap.Logger
	now           func() time.Time
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	ruleRepo repositories.CalibrationRuleRepositoryInterface,
	auditService AuditServiceInterface,
	gate *authz.Gatekeeper,
	logger *zap.Logger,
) *EquipmentService {
	return &EquipmentService{
		equipmentRepo: equipmentRepo,
		ruleRepo:      ruleRepo,
		auditService:  auditService,
		gate:          gate,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	perms, err := requirePermission(ctx, s.gate, authz.EquipmentsView)
	if err != nil {
		return nil, 0, err
	}

	scope := s.gate.SectorScope(perms, utils.GetSectorIDFromCtx(ctx))
	list, total, err := s.equipmentRepo.List(ctx, filter, scope)
	if err != nil {
		return nil, 0, err
	}
	return mapEquipments(list), total, nil
}

// GetStock é a visão de estoque: a listagem com usage_status preso em
// IN_STOCK, ignorando o que vier na query.
func (s *EquipmentService) GetStock(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	if filter.Filter == nil {
		filter.Filter = map[string]interface{}{}
	}
	filter.Filter["usage_status"] = entities.UsageInStock
	return s.GetEquipments(ctx, filter)
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	perms, err := requirePermission(ctx, s.gate, authz.EquipmentsView)
	if err != nil {
		return nil, err
	}

	eq, err := s.equipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Mesmo escopo das listagens: produção não enxerga fora do próprio setor.
	if scope := s.gate.SectorScope(perms, utils.GetSectorIDFromCtx(ctx)); scope != nil {
		if eq.SectorID == nil || *eq.SectorID != *scope {
			return nil, apperrors.ErrNotFound
		}
	}
	return mapEquipment(eq), nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	if _, err := requirePermission(ctx, s.gate, authz.EquipmentsCreate); err != nil {
		return nil, err
	}

	var lastCalibration *time.Time
	if payload.LastCalibrationDate != nil {
		parsed, err := time.Parse(dto.DateLayout, *payload.LastCalibrationDate)
		if err != nil {
			return nil, apperrors.NewInvalidInputError("data de calibração inválida, use o formato AAAA-MM-DD")
		}
		lastCalibration = &parsed
	}

	rule, err := s.ruleRepo.FindByEquipmentType(ctx, payload.EquipmentTypeID)
	if err != nil {
		return nil, err
	}
	result := calibration.ComputeStatus(s.now(), lastCalibration, rule)

	usageStatus := payload.UsageStatus
	if usageStatus == "" {
		if payload.SectorID != nil {
			usageStatus = entities.UsageInUse
		} else {
			usageStatus = entities.UsageInStock
		}
	}

	eq := &entities.Equipment{
		Code:                  payload.Code,
		Name:                  payload.Name,
		EquipmentTypeID:       payload.EquipmentTypeID,
		SectorID:              payload.SectorID,
		UsageStatus:           usageStatus,
		LastCalibrationDate:   lastCalibration,
		LastCertificateNumber: payload.LastCertificateNumber,
		DueDate:               result.DueDate,
		Status:                result.Status,
		Manufacturer:          payload.Manufacturer,
		Model:                 payload.Model,
		Resolution:            payload.Resolution,
		Capacity:              payload.Capacity,
		ResponsiblePerson:     payload.ResponsiblePerson,
		WorkingRange:          payload.WorkingRange,
		AdmissibleUncertainty: payload.AdmissibleUncertainty,
		MaxError:              payload.MaxError,
		Provider:              payload.Provider,
		Unit:                  payload.Unit,
		Location:              payload.Location,
		Notes:                 payload.Notes,
		ImageKey:              payload.ImageKey,
	}

	id, err := s.equipmentRepo.Create(ctx, eq)
	if err != nil {
		s.logger.Error("falha ao criar equipamento", zap.String("code", payload.Code), zap.Error(err))
		return nil, err
	}

	s.auditService.Record(ctx, entities.AuditCreate, auditEntityEquipment, id, map[string]interface{}{
		"code":   payload.Code,
		"status": result.Status,
	})

	created, err := s.equipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapEquipment(created), nil
}

// UpdateEquipment aplica um PATCH parcial. Trocar o tipo de equipamento muda
// a regra vigente, então o estado derivado é recalculado; equipamento
// DESATIVADO nunca é recalculado, só sai desse estado por escrita explícita
// do campo status.
func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	if _, err := requirePermission(ctx, s.gate, authz.EquipmentsUpdate); err != nil {
		return nil, err
	}

	eq, err := s.equipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	typeChanged := payload.EquipmentTypeID != nil && *payload.EquipmentTypeID != eq.EquipmentTypeID

	if payload.Code != nil {
		eq.Code = *payload.Code
	}
	if payload.Name != nil {
		eq.Name = *payload.Name
	}
	if payload.EquipmentTypeID != nil {
		eq.EquipmentTypeID = *payload.EquipmentTypeID
	}
	if payload.SectorID != nil {
		eq.SectorID = payload.SectorID
	}
	if payload.UsageStatus != nil {
		eq.UsageStatus = *payload.UsageStatus
	}
	if payload.Manufacturer != nil {
		eq.Manufacturer = payload.Manufacturer
	}
	if payload.Model != nil {
		eq.Model = payload.Model
	}
	if payload.Resolution != nil {
		eq.Resolution = payload.Resolution
	}
	if payload.Capacity != nil {
		eq.Capacity = payload.Capacity
	}
	if payload.ResponsiblePerson != nil {
		eq.ResponsiblePerson = payload.ResponsiblePerson
	}
	if payload.WorkingRange != nil {
		eq.WorkingRange = payload.WorkingRange
	}
	if payload.AdmissibleUncertainty != nil {
		eq.AdmissibleUncertainty = payload.AdmissibleUncertainty
	}
	if payload.MaxError != nil {
		eq.MaxError = payload.MaxError
	}
	if payload.Provider != nil {
		eq.Provider = payload.Provider
	}
	if payload.Unit != nil {
		eq.Unit = payload.Unit
	}
	if payload.Location != nil {
		eq.Location = payload.Location
	}
	if payload.Notes != nil {
		eq.Notes = payload.Notes
	}
	if payload.ImageKey != nil {
		eq.ImageKey = payload.ImageKey
	}

	switch {
	case payload.Status != nil:
		// Escrita manual de status (ex.: DESATIVADO e sua reativação).
		eq.Status = *payload.Status
		if typeChanged && *payload.Status != entities.StatusDesativado {
			if err := s.recomputeDerived(ctx, eq); err != nil {
				return nil, err
			}
		}
	case eq.Status == entities.StatusDesativado:
		// Guardião: desativado fica como está.
	case typeChanged:
		if err := s.recomputeDerived(ctx, eq); err != nil {
			return nil, err
		}
	}

	if err := s.equipmentRepo.Update(ctx, eq); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, entities.AuditUpdate, auditEntityEquipment, id, map[string]interface{}{
		"status": eq.Status,
	})

	updated, err := s.equipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapEquipment(updated), nil
}

func (s *EquipmentService) recomputeDerived(ctx context.Context, eq *entities.Equipment) error {
	rule, err := s.ruleRepo.FindByEquipmentType(ctx, eq.EquipmentTypeID)
	if err != nil {
		return err
	}
	result := calibration.ComputeStatus(s.now(), eq.LastCalibrationDate, rule)
	eq.DueDate = result.DueDate
	eq.Status = result.Status
	return nil
}

// UpdateUsageState move o equipamento entre uso e estoque sem tocar no
// estado de calibração. IN_STOCK zera o setor; IN_USE exige setor.
func (s *EquipmentService) UpdateUsageState(ctx context.Context, id uint64, payload dto.UpdateUsageStateDTO) (*dto.EquipmentDTO, error) {
	if _, err := requirePermission(ctx, s.gate, authz.EquipmentsUpdate); err != nil {
		return nil, err
	}

	var sectorID *uint64
	if payload.UsageStatus == entities.UsageInUse {
		sectorID = payload.SectorID
	}

	if err := s.equipmentRepo.UpdateUsageState(ctx, id, payload.UsageStatus, sectorID, payload.Location); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, entities.AuditUpdate, auditEntityEquipment, id, map[string]interface{}{
		"usage_status": payload.UsageStatus,
	})

	updated, err := s.equipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapEquipment(updated), nil
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) error {
	if _, err := requirePermission(ctx, s.gate, authz.EquipmentsDelete); err != nil {
		return err
	}

	if err := s.equipmentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditService.Record(ctx, entities.AuditDelete, auditEntityEquipment, id, nil)
	return nil
}
