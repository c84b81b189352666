package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/contextkeys"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/service"
)

type staticResolver struct{}

func (staticResolver) GetRolePermissions(ctx context.Context, role string) (map[string]bool, error) {
	return map[string]bool{"equipments:view": true}, nil
}

func newAuthFixture(t *testing.T) (service.JWTService, *AuthMiddleware) {
	t.Helper()
	jwtSvc := service.NewJWTService("chave-de-teste", time.Hour, time.Hour*24, zap.NewNop())
	return jwtSvc, NewAuthMiddleware(jwtSvc, staticResolver{}, zap.NewNop())
}

func performRequest(mw *AuthMiddleware, authHeader string, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = mw.Auth(handler)(c)
	return rec
}

func TestAuth_TokenValidoPopulaContexto(t *testing.T) {
	jwtSvc, mw := newAuthFixture(t)
	sectorID := uint64(5)
	access, _, err := jwtSvc.GenerateTokens(42, "PRODUCAO", &sectorID)
	require.NoError(t, err)

	var gotUserID uint64
	var gotRole string
	var gotSector *uint64
	var gotPerms map[string]bool

	rec := performRequest(mw, "Bearer "+access, func(c echo.Context) error {
		ctx := c.Request().Context()
		gotUserID = ctx.Value(contextkeys.UserIDKey).(uint64)
		gotRole = ctx.Value(contextkeys.UserRoleKey).(string)
		gotSector = ctx.Value(contextkeys.UserSectorIDKey).(*uint64)
		gotPerms = ctx.Value(contextkeys.UserPermissionsMapKey).(map[string]bool)
		return c.NoContent(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(42), gotUserID)
	assert.Equal(t, "PRODUCAO", gotRole)
	require.NotNil(t, gotSector)
	assert.Equal(t, sectorID, *gotSector)
	assert.True(t, gotPerms["equipments:view"])
}

func TestAuth_SemCabecalho(t *testing.T) {
	_, mw := newAuthFixture(t)

	rec := performRequest(mw, "", func(c echo.Context) error {
		t.Fatal("handler não deveria ser alcançado")
		return nil
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_FormatoInvalido(t *testing.T) {
	_, mw := newAuthFixture(t)

	rec := performRequest(mw, "Token abc", func(c echo.Context) error {
		t.Fatal("handler não deveria ser alcançado")
		return nil
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_TokenAdulterado(t *testing.T) {
	_, mw := newAuthFixture(t)
	outro := service.NewJWTService("outra-chave", time.Hour, time.Hour, zap.NewNop())
	access, _, err := outro.GenerateTokens(42, "ADMIN", nil)
	require.NoError(t, err)

	rec := performRequest(mw, "Bearer "+access, func(c echo.Context) error {
		t.Fatal("handler não deveria ser alcançado")
		return nil
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_RefreshTokenNaoDaAcesso(t *testing.T) {
	jwtSvc, mw := newAuthFixture(t)
	_, refresh, err := jwtSvc.GenerateTokens(42, "ADMIN", nil)
	require.NoError(t, err)

	rec := performRequest(mw, "Bearer "+refresh, func(c echo.Context) error {
		t.Fatal("handler não deveria ser alcançado")
		return nil
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
