package utils

import (
	"context"

	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/contextkeys"
	apperrors "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/errors"
)

// Helpers para recuperar a identidade verificada que o middleware de
// autenticação gravou no contexto da requisição.

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	id, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return id, nil
}

// GetSectorIDFromCtx retorna nil quando o usuário não tem setor atribuído.
func GetSectorIDFromCtx(ctx context.Context) *uint64 {
	sectorID, ok := ctx.Value(contextkeys.UserSectorIDKey).(*uint64)
	if !ok {
		return nil
	}
	return sectorID
}

func GetPermissionsMapFromCtx(ctx context.Context) (map[string]bool, error) {
	perms, ok := ctx.Value(contextkeys.UserPermissionsMapKey).(map[string]bool)
	if !ok {
		return nil, apperrors.ErrUserIDNotFoundInContext
	}
	return perms, nil
}
