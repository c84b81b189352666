package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/dto"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/services"
	apperrors "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/errors"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/utils"
)

type EquipmentController struct {
	equipmentService services.EquipmentServiceInterface
	logger           *zap.Logger
}

func NewEquipmentController(
	service services.EquipmentServiceInterface,
	logger *zap.Logger,
) *EquipmentController {
	return &EquipmentController{
		equipmentService: service,
		logger:           logger,
	}
}

func parseIDParam(ctx echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, apperrors.NewHttpError(
			http.StatusBadRequest,
			"Formato de ID inválido",
			err,
			map[string]interface{}{"param": ctx.Param(name)},
		)
	}
	return id, nil
}

func (c *EquipmentController) GetEquipments(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.equipmentService.GetEquipments(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetEquipments: falha ao listar equipamentos", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Lista de equipamentos obtida com sucesso", http.StatusOK, total)
}

// GetStock é a visão de estoque central: somente itens IN_STOCK.
func (c *EquipmentController) GetStock(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.equipmentService.GetStock(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetStock: falha ao listar estoque", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Estoque obtido com sucesso", http.StatusOK, total)
}

func (c *EquipmentController) FindEquipment(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.FindEquipment(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("FindEquipment: falha ao buscar equipamento", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Equipamento encontrado", http.StatusOK)
}

func (c *EquipmentController) CreateEquipment(ctx echo.Context) error {
	var payload dto.CreateEquipmentDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("CreateEquipment: falha na leitura do corpo", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Formato de dados inválido no corpo da requisição", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.CreateEquipment(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateEquipment: falha ao criar equipamento", zap.String("code", payload.Code), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Equipamento criado com sucesso", http.StatusCreated)
}

func (c *EquipmentController) UpdateEquipment(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateEquipmentDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("UpdateEquipment: falha na leitura do corpo", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Formato de dados inválido no corpo da requisição", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.UpdateEquipment(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Error("UpdateEquipment: falha ao atualizar equipamento", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Equipamento atualizado com sucesso", http.StatusOK)
}

// UpdateUsageState move o equipamento entre setor e estoque central.
func (c *EquipmentController) UpdateUsageState(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateUsageStateDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("UpdateUsageState: falha na leitura do corpo", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Formato de dados inválido no corpo da requisição", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.UpdateUsageState(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Error("UpdateUsageState: falha ao movimentar equipamento", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Situação de uso atualizada com sucesso", http.StatusOK)
}

func (c *EquipmentController) DeleteEquipment(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.equipmentService.DeleteEquipment(ctx.Request().Context(), id); err != nil {
		c.logger.Error("DeleteEquipment: falha ao remover equipamento", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Equipamento removido com sucesso", http.StatusOK)
}
