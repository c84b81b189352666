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

type SectorController struct {
	sectorService services.SectorServiceInterface
	logger        *zap.Logger
}

func NewSectorController(service services.SectorServiceInterface, logger *zap.Logger) *SectorController {
	return &SectorController{sectorService: service, logger: logger}
}

func (c *SectorController) GetSectors(ctx echo.Context) error {
	res, err := c.sectorService.GetSectors(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetSectors: falha ao listar setores", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Setores obtidos com sucesso", http.StatusOK)
}

func (c *SectorController) FindSector(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.sectorService.FindSector(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("FindSector: falha ao buscar setor", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Setor encontrado", http.StatusOK)
}

func (c *SectorController) CreateSector(ctx echo.Context) error {
	var payload dto.CreateSectorDTO
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

	res, err := c.sectorService.CreateSector(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateSector: falha ao criar setor", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Setor criado com sucesso", http.StatusCreated)
}

func (c *SectorController) UpdateSector(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateSectorDTO
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

	res, err := c.sectorService.UpdateSector(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Error("UpdateSector: falha ao atualizar setor", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Setor atualizado com sucesso", http.StatusOK)
}

func (c *SectorController) DeleteSector(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.sectorService.DeleteSector(ctx.Request().Context(), id); err != nil {
		c.logger.Error("DeleteSector: falha ao remover setor", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Setor removido com sucesso", http.StatusOK)
}
