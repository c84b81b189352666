package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/controllers"
)

func runUserRouter(g *echo.Group, ctrl *controllers.UserController) {
	g.GET("/users", ctrl.GetUsers)
	g.GET("/users/:id", ctrl.FindUser)
	g.PATCH("/users/:id", ctrl.UpdateUser)
	g.DELETE("/users/:id", ctrl.DeleteUser)
}
