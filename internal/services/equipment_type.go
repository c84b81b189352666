package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/authz"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/dto"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/entities"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/repositories"
)

const auditEntityEquipmentType = "equipment_type"

type EquipmentTypeServiceInterface interface {
	GetEquipmentTypes(ctx context.Context) ([]dto.EquipmentTypeDTO, error)
	FindEquipmentType(ctx context.Context, id uint64) (*dto.EquipmentTypeDTO, error)
	CreateEquipmentType(ctx context.Context, payload dto.CreateEquipmentTypeDTO) (*dto.EquipmentTypeDTO, error)
	UpdateEquipmentType(ctx context.Context, id uint64, payload dto.UpdateEquipmentTypeDTO) (*dto.EquipmentTypeDTO, error)
	DeleteEquipmentType(ctx context.Context, id uint64) error
}

type EquipmentTypeService struct {
	typeRepo     repositories.EquipmentTypeRepositoryInterface
	auditService AuditServiceInterface
	gate         *authz.Gatekeeper
	logger       *zap.Logger
}

func NewEquipmentTypeService(
	typeRepo repositories.EquipmentTypeRepositoryInterface,
	auditService AuditServiceInterface,
	gate *authz.Gatekeeper,
	logger *zap.Logger,
) *EquipmentTypeService {
	return &EquipmentTypeService{
		typeRepo:     typeRepo,
		auditService: auditService,
		gate:         gate,
		logger:       logger,
	}
}

func (s *EquipmentTypeService) GetEquipmentTypes(ctx context.Context) ([]dto.EquipmentTypeDTO, error) {
	if _, err := requirePermission(ctx, s.gate, authz.CatalogsView); err != nil {
		return nil, err
	}

	list, err := s.typeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.EquipmentTypeDTO, 0, len(list))
	for i := range list {
		out = append(out, mapEquipmentType(&list[i]))
	}
	return out, nil
}

func (s *EquipmentTypeService) FindEquipmentType(ctx context.Context, id uint64) (*dto.EquipmentTypeDTO, error) {
	if _, err := requirePermission(ctx, s.gate, authz.CatalogsView); err != nil {
		return nil, err
	}

	et, err := s.typeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := mapEquipmentType(et)
	return &out, nil
}

func (s *EquipmentTypeService) CreateEquipmentType(ctx context.Context, payload dto.CreateEquipmentTypeDTO) (*dto.EquipmentTypeDTO, error) {
	if _, err := requirePermission(ctx, s.gate, authz.CatalogsManage); err != nil {
		return nil, err
	}

	id, err := s.typeRepo.Create(ctx, payload.Name)
	if err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, entities.AuditCreate, auditEntityEquipmentType, id, map[string]interface{}{
		"name": payload.Name,
	})
	return s.FindEquipmentType(ctx, id)
}

func (s *EquipmentTypeService) UpdateEquipmentType(ctx context.Context, id uint64, payload dto.UpdateEquipmentTypeDTO) (*dto.EquipmentTypeDTO, error) {
	if _, err := requirePermission(ctx, s.gate, authz.CatalogsManage); err != nil {
		return nil, err
	}

	if payload.Name != nil {
		if err := s.typeRepo.Update(ctx, id, *payload.Name); err != nil {
			return nil, err
		}
		s.auditService.Record(ctx, entities.AuditUpdate, auditEntityEquipmentType, id, map[string]interface{}{
			"name": *payload.Name,
		})
	}
	return s.FindEquipmentType(ctx, id)
}

// DeleteEquipmentType é bloqueado enquanto houver equipamento do tipo
// (ErrHasDependencies vindo da violação de FK).
func (s *EquipmentTypeService) DeleteEquipmentType(ctx context.Context, id uint64) error {
	if _, err := requirePermission(ctx, s.gate, authz.CatalogsManage); err != nil {
		return err
	}

	if err := s.typeRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditService.Record(ctx, entities.AuditDelete, auditEntityEquipmentType, id, nil)
	return nil
}
