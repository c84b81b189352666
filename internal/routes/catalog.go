package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/controllers"
)

func runEquipmentTypeRouter(g *echo.Group, ctrl *controllers.EquipmentTypeController) {
	g.GET("/equipment-types", ctrl.GetEquipmentTypes)
	g.GET("/equipment-types/:id", ctrl.FindEquipmentType)
	g.POST("/equipment-types", ctrl.CreateEquipmentType)
	g.PUT("/equipment-types/:id", ctrl.UpdateEquipmentType)
	g.DELETE("/equipment-types/:id", ctrl.DeleteEquipmentType)
}

func runCalibrationRuleRouter(g *echo.Group, ctrl *controllers.CalibrationRuleController) {
	g.GET("/calibration-rules", ctrl.GetRules)
	g.GET("/calibration-rules/:id", ctrl.FindRule)
	g.POST("/calibration-rules", ctrl.CreateRule)
	g.PUT("/calibration-rules/:id", ctrl.UpdateRule)
	g.DELETE("/calibration-rules/:id", ctrl.DeleteRule)
}

func runSectorRouter(g *echo.Group, ctrl *controllers.SectorController) {
	g.GET("/sectors", ctrl.GetSectors)
	g.GET("/sectors/:id", ctrl.FindSector)
	g.POST("/sectors", ctrl.CreateSector)
	g.PUT("/sectors/:id", ctrl.UpdateSector)
	g.DELETE("/sectors/:id", ctrl.DeleteSector)
}

func runSupplierRouter(g *echo.Group, ctrl *controllers.SupplierController) {
	g.GET("/suppliers", ctrl.GetSuppliers)
	g.GET("/suppliers/:id", ctrl.FindSupplier)
	g.POST("/suppliers", ctrl.CreateSupplier)
	g.PUT("/suppliers/:id", ctrl.UpdateSupplier)
	g.DELETE("/suppliers/:id", ctrl.DeleteSupplier)
}
