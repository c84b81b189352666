package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/dto"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/services"
	apperrors "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/errors"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/utils"
)

type AuthController struct {
	authService services.AuthServiceInterface
	logger      *zap.Logger
}

func NewAuthController(service services.AuthServiceInterface, logger *zap.Logger) *AuthController {
	return &AuthController{authService: service, logger: logger}
}

// Register cria a conta em estado pendente; o acesso só é liberado depois
// da aprovação por um administrador.
func (c *AuthController) Register(ctx echo.Context) error {
	var payload dto.RegisterUserDTO
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

	res, err := c.authService.Register(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("Register: falha ao registrar usuário", zap.String("email", payload.Email), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Cadastro realizado, aguarde a aprovação de um administrador", http.StatusCreated)
}

func (c *AuthController) Login(ctx echo.Context) error {
	var payload dto.LoginDTO
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

	res, err := c.authService.Login(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Warn("Login: autenticação recusada", zap.String("email", payload.Email), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Autenticado com sucesso", http.StatusOK)
}

func (c *AuthController) Refresh(ctx echo.Context) error {
	var payload dto.RefreshTokenDTO
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

	res, err := c.authService.Refresh(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Warn("Refresh: falha ao renovar tokens", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Tokens renovados com sucesso", http.StatusOK)
}
