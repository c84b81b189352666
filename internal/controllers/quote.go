package controllers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/dto"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/services"
	apperrors "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/errors"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/utils"
)

type QuoteController struct {
	quoteService services.QuoteServiceInterface
	logger       *zap.Logger
}

func NewQuoteController(service services.QuoteServiceInterface, logger *zap.Logger) *QuoteController {
	return &QuoteController{quoteService: service, logger: logger}
}

func (c *QuoteController) GetQuoteRequests(ctx echo.Context) error {
	res, err := c.quoteService.GetQuoteRequests(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetQuoteRequests: falha ao listar solicitações de orçamento", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Solicitações de orçamento obtidas com sucesso", http.StatusOK)
}

func (c *QuoteController) FindQuoteRequest(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.quoteService.FindQuoteRequest(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("FindQuoteRequest: falha ao buscar solicitação", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Solicitação de orçamento encontrada", http.StatusOK)
}

func (c *QuoteController) CreateQuoteRequest(ctx echo.Context) error {
	var payload dto.CreateQuoteRequestDTO
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

	res, err := c.quoteService.CreateQuoteRequest(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateQuoteRequest: falha ao criar solicitação", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Solicitação de orçamento criada com sucesso", http.StatusCreated)
}

func (c *QuoteController) UpdateQuoteStatus(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateQuoteStatusDTO
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

	res, err := c.quoteService.UpdateQuoteStatus(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Error("UpdateQuoteStatus: falha ao atualizar status", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Status da solicitação atualizado com sucesso", http.StatusOK)
}

func (c *QuoteController) DeleteQuoteRequest(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.quoteService.DeleteQuoteRequest(ctx.Request().Context(), id); err != nil {
		c.logger.Error("DeleteQuoteRequest: falha ao remover solicitação", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Solicitação de orçamento removida com sucesso", http.StatusOK)
}

// ExportQuotePDF devolve o documento pronto para envio ao laboratório.
func (c *QuoteController) ExportQuotePDF(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	pdf, err := c.quoteService.RenderQuotePDF(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("ExportQuotePDF: falha ao gerar PDF", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="orcamento-%d.pdf"`, id))
	return ctx.Blob(http.StatusOK, "application/pdf", pdf)
}
