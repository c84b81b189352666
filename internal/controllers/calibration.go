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

type CalibrationController struct {
	calibrationService services.CalibrationServiceInterface
	logger             *zap.Logger
}

func NewCalibrationController(
	service services.CalibrationServiceInterface,
	logger *zap.Logger,
) *CalibrationController {
	return &CalibrationController{
		calibrationService: service,
		logger:             logger,
	}
}

func (c *CalibrationController) GetHistory(ctx echo.Context) error {
	equipmentID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.calibrationService.GetHistory(ctx.Request().Context(), equipmentID)
	if err != nil {
		c.logger.Error("GetHistory: falha ao listar histórico de calibrações",
			zap.Uint64("equipmentId", equipmentID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Histórico de calibrações obtido com sucesso", http.StatusOK)
}

func (c *CalibrationController) RecordCalibration(ctx echo.Context) error {
	equipmentID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CreateCalibrationRecordDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("RecordCalibration: falha na leitura do corpo", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Formato de dados inválido no corpo da requisição", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.calibrationService.RecordCalibration(ctx.Request().Context(), equipmentID, payload)
	if err != nil {
		c.logger.Error("RecordCalibration: falha ao registrar calibração",
			zap.Uint64("equipmentId", equipmentID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Calibração registrada com sucesso", http.StatusCreated)
}

func (c *CalibrationController) DeleteCalibrationRecord(ctx echo.Context) error {
	recordID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.calibrationService.DeleteCalibrationRecord(ctx.Request().Context(), recordID); err != nil {
		c.logger.Error("DeleteCalibrationRecord: falha ao remover registro",
			zap.Uint64("recordId", recordID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Registro de calibração removido com sucesso", http.StatusOK)
}
