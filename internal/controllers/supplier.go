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

type SupplierController struct {
	supplierService services.SupplierServiceInterface
	logger          *zap.Logger
}

func NewSupplierController(service services.SupplierServiceInterface, logger *zap.Logger) *SupplierController {
	return &SupplierController{supplierService: service, logger: logger}
}

func (c *SupplierController) GetSuppliers(ctx echo.Context) error {
	res, err := c.supplierService.GetSuppliers(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetSuppliers: falha ao listar laboratórios", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Laboratórios obtidos com sucesso", http.StatusOK)
}

func (c *SupplierController) FindSupplier(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.supplierService.FindSupplier(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("FindSupplier: falha ao buscar laboratório", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Laboratório encontrado", http.StatusOK)
}

func (c *SupplierController) CreateSupplier(ctx echo.Context) error {
	var payload dto.CreateSupplierDTO
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

	res, err := c.supplierService.CreateSupplier(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateSupplier: falha ao criar laboratório", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Laboratório criado com sucesso", http.StatusCreated)
}

func (c *SupplierController) UpdateSupplier(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateSupplierDTO
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

	res, err := c.supplierService.UpdateSupplier(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Error("UpdateSupplier: falha ao atualizar laboratório", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Laboratório atualizado com sucesso", http.StatusOK)
}

func (c *SupplierController) DeleteSupplier(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.supplierService.DeleteSupplier(ctx.Request().Context(), id); err != nil {
		c.logger.Error("DeleteSupplier: falha ao remover laboratório", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Laboratório removido com sucesso", http.StatusOK)
}
