package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/authz"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/dto"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/entities"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/repositories"
)

const auditEntitySupplier = "supplier"

type SupplierServiceInterface interface {
	GetSuppliers(ctx context.Context) ([]dto.SupplierDTO, error)
	FindSupplier(ctx context.Context, id uint64) (*dto.SupplierDTO, error)
	CreateSupplier(ctx context.Context, payload dto.CreateSupplierDTO) (*dto.SupplierDTO, error)
	UpdateSupplier(ctx context.Context, id uint64, payload dto.UpdateSupplierDTO) (*dto.SupplierDTO, error)
	DeleteSupplier(ctx context.Context, id uint64) error
}

type SupplierService struct {
	supplierRepo repositories.SupplierRepositoryInterface
	auditService AuditServiceInterface
	gate         *authz.Gatekeeper
	logger       *zap.Logger
}

func NewSupplierService(
	supplierRepo repositories.SupplierRepositoryInterface,
	auditService AuditServiceInterface,
	gate *authz.Gatekeeper,
	logger *zap.Logger,
) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		auditService: auditService,
		gate:         gate,
		logger:       logger,
	}
}

func (s *SupplierService) GetSuppliers(ctx context.Context) ([]dto.SupplierDTO, error) {
	if _, err := requirePermission(ctx, s.gate, authz.SuppliersManage); err != nil {
		return nil, err
	}

	suppliers, err := s.supplierRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SupplierDTO, 0, len(suppliers))
	for i := range suppliers {
		out = append(out, mapSupplier(&suppliers[i]))
	}
	return out, nil
}

func (s *SupplierService) FindSupplier(ctx context.Context, id uint64) (*dto.SupplierDTO, error) {
	if _, err := requirePermission(ctx, s.gate, authz.SuppliersManage); err != nil {
		return nil, err
	}

	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := mapSupplier(supplier)
	return &out, nil
}

func (s *SupplierService) CreateSupplier(ctx context.Context, payload dto.CreateSupplierDTO) (*dto.SupplierDTO, error) {
	if _, err := requirePermission(ctx, s.gate, authz.SuppliersManage); err != nil {
		return nil, err
	}

	supplier := &entities.Supplier{
		Name:    payload.Name,
		CNPJ:    payload.CNPJ,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Contact: payload.Contact,
		Notes:   payload.Notes,
	}
	id, err := s.supplierRepo.Create(ctx, supplier)
	if err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, entities.AuditCreate, auditEntitySupplier, id, map[string]interface{}{
		"name": payload.Name,
	})
	return s.FindSupplier(ctx, id)
}

func (s *SupplierService) UpdateSupplier(ctx context.Context, id uint64, payload dto.UpdateSupplierDTO) (*dto.SupplierDTO, error) {
	if _, err := requirePermission(ctx, s.gate, authz.SuppliersManage); err != nil {
		return nil, err
	}

	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil {
		supplier.Name = *payload.Name
	}
	if payload.CNPJ != nil {
		supplier.CNPJ = payload.CNPJ
	}
	if payload.Email != nil {
		supplier.Email = payload.Email
	}
	if payload.Phone != nil {
		supplier.Phone = payload.Phone
	}
	if payload.Contact != nil {
		supplier.Contact = payload.Contact
	}
	if payload.Notes != nil {
		supplier.Notes = payload.Notes
	}

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, entities.AuditUpdate, auditEntitySupplier, id, nil)
	return s.FindSupplier(ctx, id)
}

func (s *SupplierService) DeleteSupplier(ctx context.Context, id uint64) error {
	if _, err := requirePermission(ctx, s.gate, authz.SuppliersManage); err != nil {
		return err
	}

	if err := s.supplierRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditService.Record(ctx, entities.AuditDelete, auditEntitySupplier, id, nil)
	return nil
}
