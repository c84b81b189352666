package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/controllers"
)

func runQuoteRouter(g *echo.Group, ctrl *controllers.QuoteController) {
	g.GET("/quotes", ctrl.GetQuoteRequests)
	g.GET("/quotes/:id", ctrl.FindQuoteRequest)
	g.POST("/quotes", ctrl.CreateQuoteRequest)
	g.PATCH("/quotes/:id/status", ctrl.UpdateQuoteStatus)
	g.DELETE("/quotes/:id", ctrl.DeleteQuoteRequest)
	g.GET("/quotes/:id/pdf", ctrl.ExportQuotePDF)
}
