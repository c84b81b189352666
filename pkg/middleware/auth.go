package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/contextkeys"
	apperrors "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/errors"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/service"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/utils"
)

// PermissionResolver entrega o conjunto de permissões de um papel. A
// implementação concreta fica em internal/services e usa cache em Redis.
type PermissionResolver interface {
	GetRolePermissions(ctx context.Context, role string) (map[string]bool, error)
}

type AuthMiddleware struct {
	jwtService   service.JWTService
	permResolver PermissionResolver
	logger       *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, permResolver PermissionResolver, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:   jwtSvc,
		permResolver: permResolver,
		logger:       logger,
	}
}

// Auth valida o bearer token e grava a identidade {id, papel, setor} e o mapa
// de permissões no contexto da requisição.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			m.logger.Warn("AuthMiddleware: cabeçalho Authorization vazio")
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("AuthMiddleware: formato inválido do cabeçalho Authorization")
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("AuthMiddleware: token rejeitado", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		if claims.IsRefreshToken {
			m.logger.Warn("AuthMiddleware: tentativa de acesso com refresh token")
			return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess, m.logger)
		}

		perms, err := m.permResolver.GetRolePermissions(c.Request().Context(), claims.Role)
		if err != nil {
			m.logger.Error("AuthMiddleware: falha ao resolver permissões do papel",
				zap.String("role", claims.Role), zap.Error(err))
			return utils.ErrorResponse(c, apperrors.ErrInternalServer, m.logger)
		}

		ctx := c.Request().Context()
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, contextkeys.UserRoleKey, claims.Role)
		ctx = context.WithValue(ctx, contextkeys.UserSectorIDKey, claims.SectorID)
		ctx = context.WithValue(ctx, contextkeys.UserPermissionsMapKey, perms)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
