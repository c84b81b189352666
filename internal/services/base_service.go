package services

import (
	"context"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/authz"
	apperrors "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/errors"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/utils"
)

// requirePermission confere a capacidade do ator ANTES de qualquer acesso a
// dados e devolve o mapa de permissões para decisões de escopo subsequentes.
func requirePermission(ctx context.Context, gate *authz.Gatekeeper, permission string) (map[string]bool, error) {
	perms, err := utils.GetPermissionsMapFromCtx(ctx)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	if !gate.Can(perms, permission) {
		return nil, apperrors.ErrForbidden
	}
	return perms, nil
}
