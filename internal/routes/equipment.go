package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/controllers"
)

func runEquipmentRouter(
	g *echo.Group,
	equipmentCtrl *controllers.EquipmentController,
	calibrationCtrl *controllers.CalibrationController,
	auditCtrl *controllers.AuditController,
) {
	g.GET("/equipments", equipmentCtrl.GetEquipments)
	g.GET("/equipments/stock", equipmentCtrl.GetStock)
	g.GET("/equipments/:id", equipmentCtrl.FindEquipment)
	g.POST("/equipments", equipmentCtrl.CreateEquipment)
	g.PATCH("/equipments/:id", equipmentCtrl.UpdateEquipment)
	g.PATCH("/equipments/:id/usage", equipmentCtrl.UpdateUsageState)
	g.DELETE("/equipments/:id", equipmentCtrl.DeleteEquipment)

	// histórico de calibrações pendurado no equipamento
	g.GET("/equipments/:id/calibrations", calibrationCtrl.GetHistory)
	g.POST("/equipments/:id/calibrations", calibrationCtrl.RecordCalibration)

	g.GET("/equipments/:id/audit", auditCtrl.GetEquipmentAudit)
}
