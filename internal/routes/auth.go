package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/controllers"
)

func runAuthRouter(api *echo.Group, ctrl *controllers.AuthController) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", ctrl.Register)
		authGroup.POST("/login", ctrl.Login)
		authGroup.POST("/refresh_token", ctrl.Refresh)
	}
}
