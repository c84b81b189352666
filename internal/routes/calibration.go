package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/controllers"
)

// A remoção de um laudo vive na própria coleção de registros, não sob o
// equipamento: o ID do registro basta para localizar o pai.
func runCalibrationRouter(g *echo.Group, ctrl *controllers.CalibrationController) {
	g.DELETE("/calibrations/:id", ctrl.DeleteCalibrationRecord)
}
