package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/controllers"
)

func runDashboardRouter(g *echo.Group, ctrl *controllers.DashboardController) {
	g.GET("/dashboard", ctrl.GetDashboard)
}

func runReportRouter(g *echo.Group, ctrl *controllers.ReportController) {
	g.GET("/reports/inventory", ctrl.ExportInventory)
}

func runUploadRouter(g *echo.Group, ctrl *controllers.UploadController) {
	g.POST("/upload/:context", ctrl.Upload)
}
