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

type UserController struct {
	userService services.UserServiceInterface
	logger      *zap.Logger
}

func NewUserController(service services.UserServiceInterface, logger *zap.Logger) *UserController {
	return &UserController{userService: service, logger: logger}
}

func (c *UserController) GetUsers(ctx echo.Context) error {
	res, err := c.userService.GetUsers(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetUsers: falha ao listar usuários", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Usuários obtidos com sucesso", http.StatusOK)
}

func (c *UserController) FindUser(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.userService.FindUser(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("FindUser: falha ao buscar usuário", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Usuário encontrado", http.StatusOK)
}

// UpdateUser cobre papel, setor e aprovação de cadastro.
func (c *UserController) UpdateUser(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateUserDTO
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

	res, err := c.userService.UpdateUser(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Error("UpdateUser: falha ao atualizar usuário", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Usuário atualizado com sucesso", http.StatusOK)
}

func (c *UserController) DeleteUser(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.userService.DeleteUser(ctx.Request().Context(), id); err != nil {
		c.logger.Error("DeleteUser: falha ao remover usuário", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Usuário removido com sucesso", http.StatusOK)
}
