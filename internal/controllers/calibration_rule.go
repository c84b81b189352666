package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/dto"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/services"
	apperrors "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/errors"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/utils"
)

type CalibrationRuleController struct {
	ruleService services.CalibrationRuleServiceInterface
	logger      *zap.Logger
}

func NewCalibrationRuleController(service services.CalibrationRuleServiceInterface, logger *zap.Logger) *CalibrationRuleController {
	return &CalibrationRuleController{ruleService: service, logger: logger}
}

func (c *CalibrationRuleController) GetRules(ctx echo.Context) error {
	res, err := c.ruleService.GetRules(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetRules: falha ao listar regras de calibração", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Regras de calibração obtidas com sucesso", http.StatusOK)
}

func (c *CalibrationRuleController) FindRule(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.ruleService.FindRule(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("FindRule: falha ao buscar regra", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Regra de calibração encontrada", http.StatusOK)
}

func (c *CalibrationRuleController) CreateRule(ctx echo.Context) error {
	var payload dto.CreateCalibrationRuleDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Formato de dados inválido no corpo da requisição", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.ruleService.CreateRule(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateRule: falha ao criar regra", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Regra de calibração criada com sucesso", http.StatusCreated)
}

func (c *CalibrationRuleController) UpdateRule(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateCalibrationRuleDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Formato de dados inválido no corpo da requisição", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.ruleService.UpdateRule(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Error("UpdateRule: falha ao atualizar regra", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Regra de calibração atualizada com sucesso", http.StatusOK)
}

func (c *CalibrationRuleController) DeleteRule(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.ruleService.DeleteRule(ctx.Request().Context(), id); err != nil {
		c.logger.Error("DeleteRule: falha ao remover regra", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Regra de calibração removida com sucesso", http.StatusOK)
}
