package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/services"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/utils"
)

type AuditController struct {
	auditService services.AuditServiceInterface
	logger       *zap.Logger
}

func NewAuditController(service services.AuditServiceInterface, logger *zap.Logger) *AuditController {
	return &AuditController{auditService: service, logger: logger}
}

// GetEquipmentAudit lista a trilha de auditoria de um equipamento.
func (c *AuditController) GetEquipmentAudit(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.auditService.ListByEntity(ctx.Request().Context(), "equipment", id)
	if err != nil {
		c.logger.Error("GetEquipmentAudit: falha ao listar auditoria", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Trilha de auditoria obtida com sucesso", http.StatusOK)
}
