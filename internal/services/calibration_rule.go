package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/authz"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/dto"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/entities"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/repositories"
)

const auditEntityCalibrationRule = "calibration_rule"

type CalibrationRuleServiceInterface interface {
	GetRules(ctx context.Context) ([]dto.CalibrationRuleDTO, error)
	FindRule(ctx context.Context, id uint64) (*dto.CalibrationRuleDTO, error)
	CreateRule(ctx context.Context, payload dto.CreateCalibrationRuleDTO) (*dto.CalibrationRuleDTO, error)
	UpdateRule(ctx context.Context, id uint64, payload dto.UpdateCalibrationRuleDTO) (*dto.CalibrationRuleDTO, error)
	DeleteRule(ctx context.Context, id uint64) error
}

type CalibrationRuleService struct {
	ruleRepo     repositories.CalibrationRuleRepositoryInterface
	auditService AuditServiceInterface
	gate         *authz.Gatekeeper
	logger       *zap.Logger
}

func NewCalibrationRuleService(
	ruleRepo repositories.CalibrationRuleRepositoryInterface,
	auditService AuditServiceInterface,
	gate *authz.Gatekeeper,
	logger *zap.Logger,
) *CalibrationRuleService {
	return &CalibrationRuleService{
		ruleRepo:     ruleRepo,
		auditService: auditService,
		gate:         gate,
		logger:       logger,
	}
}

func (s *CalibrationRuleService) GetRules(ctx context.Context) ([]dto.CalibrationRuleDTO, error) {
	if _, err := requirePermission(ctx, s.gate, authz.CatalogsView); err != nil {
		return nil, err
	}

	rules, err := s.ruleRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CalibrationRuleDTO, 0, len(rules))
	for i := range rules {
		out = append(out, mapCalibrationRule(&rules[i]))
	}
	return out, nil
}

func (s *CalibrationRuleService) FindRule(ctx context.Context, id uint64) (*dto.CalibrationRuleDTO, error) {
	if _, err := requirePermission(ctx, s.gate, authz.CatalogsView); err != nil {
		return nil, err
	}

	rule, err := s.ruleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := mapCalibrationRule(rule)
	return &out, nil
}

// CreateRule respeita o limite de uma regra por tipo; a segunda tentativa
// cai no conflito de unique traduzido pelo repositório.
func (s *CalibrationRuleService) CreateRule(ctx context.Context, payload dto.CreateCalibrationRuleDTO) (*dto.CalibrationRuleDTO, error) {
	if _, err := requirePermission(ctx, s.gate, authz.CatalogsManage); err != nil {
		return nil, err
	}

	rule := &entities.CalibrationRule{
		EquipmentTypeID: payload.EquipmentTypeID,
		IntervalMonths:  payload.IntervalMonths,
		WarnDays:        payload.WarnDays,
	}
	id, err := s.ruleRepo.Create(ctx, rule)
	if err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, entities.AuditCreate, auditEntityCalibrationRule, id, map[string]interface{}{
		"equipment_type_id": payload.EquipmentTypeID,
		"interval_months":   payload.IntervalMonths,
		"warn_days":         payload.WarnDays,
	})
	return s.FindRule(ctx, id)
}

// UpdateRule altera a cadência. O status dos equipamentos do tipo não é
// varrido retroativamente: cada equipamento é recalculado na próxima
// escrita que o afete, conforme o modelo de recomputação em escrita.
func (s *CalibrationRuleService) UpdateRule(ctx context.Context, id uint64, payload dto.UpdateCalibrationRuleDTO) (*dto.CalibrationRuleDTO, error) {
	if _, err := requirePermission(ctx, s.gate, authz.CatalogsManage); err != nil {
		return nil, err
	}

	current, err := s.ruleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	intervalMonths := current.IntervalMonths
	warnDays := current.WarnDays
	if payload.IntervalMonths != nil {
		intervalMonths = *payload.IntervalMonths
	}
	if payload.WarnDays != nil {
		warnDays = *payload.WarnDays
	}

	if err := s.ruleRepo.Update(ctx, id, intervalMonths, warnDays); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, entities.AuditUpdate, auditEntityCalibrationRule, id, map[string]interface{}{
		"interval_months": intervalMonths,
		"warn_days":       warnDays,
	})
	return s.FindRule(ctx, id)
}

func (s *CalibrationRuleService) DeleteRule(ctx context.Context, id uint64) error {
	if _, err := requirePermission(ctx, s.gate, authz.CatalogsManage); err != nil {
		return err
	}

	if err := s.ruleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditService.Record(ctx, entities.AuditDelete, auditEntityCalibrationRule, id, nil)
	return nil
}
