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

type EquipmentTypeController struct {
	equipmentTypeService services.EquipmentTypeServiceInterface
	logger               *zap.Logger
}

func NewEquipmentTypeController(service services.EquipmentTypeServiceInterface, logger *zap.Logger) *EquipmentTypeController {
	return &EquipmentTypeController{equipmentTypeService: service, logger: logger}
}

func (c *EquipmentTypeController) GetEquipmentTypes(ctx echo.Context) error {
	res, err := c.equipmentTypeService.GetEquipmentTypes(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetEquipmentTypes: falha ao listar tipos", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Tipos de equipamento obtidos com sucesso", http.StatusOK)
}

func (c *EquipmentTypeController) FindEquipmentType(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentTypeService.FindEquipmentType(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("FindEquipmentType: falha ao buscar tipo", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Tipo de equipamento encontrado", http.StatusOK)
}

func (c *EquipmentTypeController) CreateEquipmentType(ctx echo.Context) error {
	var payload dto.CreateEquipmentTypeDTO
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

	res, err := c.equipmentTypeService.CreateEquipmentType(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateEquipmentType: falha ao criar tipo", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Tipo de equipamento criado com sucesso", http.StatusCreated)
}

func (c *EquipmentTypeController) UpdateEquipmentType(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateEquipmentTypeDTO
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

	res, err := c.equipmentTypeService.UpdateEquipmentType(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Error("UpdateEquipmentType: falha ao atualizar tipo", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Tipo de equipamento atualizado com sucesso", http.StatusOK)
}

func (c *EquipmentTypeController) DeleteEquipmentType(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.equipmentTypeService.DeleteEquipmentType(ctx.Request().Context(), id); err != nil {
		c.logger.Error("DeleteEquipmentType: falha ao remover tipo", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Tipo de equipamento removido com sucesso", http.StatusOK)
}
