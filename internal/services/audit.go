package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/entities"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/repositories"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/utils"
)

type AuditServiceInterface interface {
	// Record grava a entrada de auditoria em modo best-effort: falha é
	// logada e engolida, nunca devolvida ao chamador.
	Record(ctx context.Context, action, entityType string, entityID uint64, metadata map[string]interface{})
	ListByEntity(ctx context.Context, entityType string, entityID uint64) ([]entities.AuditLog, error)
}

type AuditService struct {
	auditRepo repositories.AuditRepositoryInterface
	logger    *zap.Logger
}

func NewAuditService(auditRepo repositories.AuditRepositoryInterface, logger *zap.Logger) AuditServiceInterface {
	return &AuditService{auditRepo: auditRepo, logger: logger}
}

func (s *AuditService) Record(ctx context.Context, action, entityType string, entityID uint64, metadata map[string]interface{}) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		s.logger.Warn("auditoria sem usuário no contexto", zap.String("action", action))
		return
	}

	entry := &entities.AuditLog{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Metadata:   metadata,
	}
	if err := s.auditRepo.Insert(ctx, entry); err != nil {
		s.logger.Error("falha ao gravar auditoria",
			zap.String("action", action),
			zap.String("entityType", entityType),
			zap.Uint64("entityId", entityID),
			zap.Error(err),
		)
	}
}

func (s *AuditService) ListByEntity(ctx context.Context, entityType string, entityID uint64) ([]entities.AuditLog, error) {
	return s.auditRepo.ListByEntity(ctx, entityType, entityID, 100)
}
