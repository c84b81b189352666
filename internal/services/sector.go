package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/authz"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/dto"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/entities"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/repositories"
)

const auditEntitySector = "sector"

type SectorServiceInterface interface {
	GetSectors(ctx context.Context) ([]dto.SectorDTO, error)
	FindSector(ctx context.Context, id uint64) (*dto.SectorDTO, error)
	CreateSector(ctx context.Context, payload dto.CreateSectorDTO) (*dto.SectorDTO, error)
	UpdateSector(ctx context.Context, id uint64, payload dto.UpdateSectorDTO) (*dto.SectorDTO, error)
	DeleteSector(ctx context.Context, id uint64) error
}

type SectorService struct {
	sectorRepo   repositories.SectorRepositoryInterface
	auditService AuditServiceInterface
	gate         *authz.Gatekeeper
	logger       *zap.Logger
}

func NewSectorService(
	sectorRepo repositories.SectorRepositoryInterface,
	auditService AuditServiceInterface,
	gate *authz.Gatekeeper,
	logger *zap.Logger,
) *SectorService {
	return &SectorService{
		sectorRepo:   sectorRepo,
		auditService: auditService,
		gate:         gate,
		logger:       logger,
	}
}

func (s *SectorService) GetSectors(ctx context.Context) ([]dto.SectorDTO, error) {
	if _, err := requirePermission(ctx, s.gate, authz.CatalogsView); err != nil {
		return nil, err
	}

	sectors, err := s.sectorRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SectorDTO, 0, len(sectors))
	for i := range sectors {
		out = append(out, mapSector(&sectors[i]))
	}
	return out, nil
}

func (s *SectorService) FindSector(ctx context.Context, id uint64) (*dto.SectorDTO, error) {
	if _, err := requirePermission(ctx, s.gate, authz.CatalogsView); err != nil {
		return nil, err
	}

	sector, err := s.sectorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := mapSector(sector)
	return &out, nil
}

func (s *SectorService) CreateSector(ctx context.Context, payload dto.CreateSectorDTO) (*dto.SectorDTO, error) {
	if _, err := requirePermission(ctx, s.gate, authz.CatalogsManage); err != nil {
		return nil, err
	}

	id, err := s.sectorRepo.Create(ctx, payload.Name)
	if err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, entities.AuditCreate, auditEntitySector, id, map[string]interface{}{
		"name": payload.Name,
	})
	return s.FindSector(ctx, id)
}

func (s *SectorService) UpdateSector(ctx context.Context, id uint64, payload dto.UpdateSectorDTO) (*dto.SectorDTO, error) {
	if _, err := requirePermission(ctx, s.gate, authz.CatalogsManage); err != nil {
		return nil, err
	}

	if err := s.sectorRepo.Update(ctx, id, payload.Name); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, entities.AuditUpdate, auditEntitySector, id, map[string]interface{}{
		"name": payload.Name,
	})
	return s.FindSector(ctx, id)
}

// DeleteSector falha com conflito enquanto existir equipamento ou usuário
// apontando para o setor.
func (s *SectorService) DeleteSector(ctx context.Context, id uint64) error {
	if _, err := requirePermission(ctx, s.gate, authz.CatalogsManage); err != nil {
		return err
	}

	if err := s.sectorRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditService.Record(ctx, entities.AuditDelete, auditEntitySector, id, nil)
	return nil
}
