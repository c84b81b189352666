package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/services"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(service services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: service, logger: logger}
}

// ExportInventory gera a planilha do inventário respeitando os mesmos
// filtros e o mesmo escopo de setor das listagens.
func (c *ReportController) ExportInventory(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	data, err := c.reportService.BuildInventoryXLSX(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("ExportInventory: falha ao gerar planilha", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	filename := fmt.Sprintf("inventario-%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, filename))
	return ctx.Blob(http.StatusOK, xlsxContentType, data)
}
