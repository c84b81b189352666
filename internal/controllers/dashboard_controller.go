package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/services"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	logger           *zap.Logger
}

func NewDashboardController(ds services.DashboardServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{
		dashboardService: ds,
		logger:           logger,
	}
}

func (c *DashboardController) GetDashboard(ctx echo.Context) error {
	res, err := c.dashboardService.GetDashboard(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetDashboard: falha ao montar painel", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Painel obtido com sucesso", http.StatusOK)
}
