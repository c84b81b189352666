package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/authz"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/repositories"
)

type AuthPermissionServiceInterface interface {
	GetRolePermissions(ctx context.Context, role string) (map[string]bool, error)
	InvalidateRolePermissionsCache(ctx context.Context, role string) error
}

// AuthPermissionService resolve o conjunto de capacidades de um papel com
// cache em Redis na frente da tabela estática do authz. Implementa o
// middleware.PermissionResolver.
type AuthPermissionService struct {
	cacheRepo repositories.CacheRepositoryInterface
	logger    *zap.Logger
	cacheTTL  time.Duration
}

func NewAuthPermissionService(
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cacheTTL time.Duration,
) AuthPermissionServiceInterface {
	return &AuthPermissionService{
		cacheRepo: cacheRepo,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

func rolePermissionsCacheKey(role string) string {
	return fmt.Sprintf("auth:permissions:role:%s", role)
}

func (s *AuthPermissionService) GetRolePermissions(ctx context.Context, role string) (map[string]bool, error) {
	cacheKey := rolePermissionsCacheKey(role)

	cached, errGet := s.cacheRepo.Get(ctx, cacheKey)
	if errGet == nil {
		var perms map[string]bool
		if err := json.Unmarshal([]byte(cached), &perms); err == nil {
			return perms, nil
		}
		s.logger.Warn("cache de permissões corrompido, relendo da tabela",
			zap.String("role", role))
	}

	perms := authz.PermissionsForRole(role)

	if len(perms) > 0 {
		data, errMarshal := json.Marshal(perms)
		if errMarshal == nil {
			if errSet := s.cacheRepo.Set(ctx, cacheKey, string(data), s.cacheTTL); errSet != nil {
				s.logger.Error("não foi possível cachear as permissões do papel",
					zap.String("role", role), zap.Error(errSet))
			}
		}
	}
	return perms, nil
}

func (s *AuthPermissionService) InvalidateRolePermissionsCache(ctx context.Context, role string) error {
	if err := s.cacheRepo.Del(ctx, rolePermissionsCacheKey(role)); err != nil {
		s.logger.Error("falha ao invalidar cache de permissões",
			zap.String("role", role), zap.Error(err))
		return err
	}
	return nil
}
