package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/authz"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/dto"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/entities"
	apperrors "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/errors"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/service"
)

type mockUserRepo struct {
	findByEmailFn func(ctx context.Context, email string) (*entities.User, error)
	findByIDFn    func(ctx context.Context, id uint64) (*entities.User, error)
	createFn      func(ctx context.Context, user *entities.User) (uint64, error)
}

func (m *mockUserRepo) List(ctx context.Context) ([]entities.User, error) { return nil, nil }
func (m *mockUserRepo) FindByID(ctx context.Context, id uint64) (*entities.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, apperrors.ErrNotFound
}
func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, apperrors.ErrNotFound
}
func (m *mockUserRepo) Create(ctx context.Context, user *entities.User) (uint64, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return 1, nil
}
func (m *mockUserRepo) Update(ctx context.Context, user *entities.User) error { return nil }
func (m *mockUserRepo) SetApproved(ctx context.Context, id uint64, approved bool) error {
	return nil
}
func (m *mockUserRepo) Delete(ctx context.Context, id uint64) error { return nil }

// mockJWTService registra o papel emitido; o token em si não interessa aqui.
type mockJWTService struct {
	issuedRole string
	claims     *service.JwtCustomClaim
}

func (m *mockJWTService) GenerateTokens(userID uint64, role string, sectorID *uint64) (string, string, error) {
	m.issuedRole = role
	return "access", "refresh", nil
}
func (m *mockJWTService) ValidateToken(tokenString string) (*service.JwtCustomClaim, error) {
	if m.claims == nil {
		return nil, apperrors.ErrInvalidToken
	}
	return m.claims, nil
}
func (m *mockJWTService) GetAccessTokenTTL() time.Duration  { return time.Hour }
func (m *mockJWTService) GetRefreshTokenTTL() time.Duration { return time.Hour * 24 }

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLogin_SenhaIncorreta(t *testing.T) {
	repo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*entities.User, error) {
			return &entities.User{ID: 2, Email: email, PasswordHash: hashOf(t, "senha-certa"), Approved: true}, nil
		},
	}
	svc := NewAuthService(repo, &mockJWTService{}, 1, zap.NewNop())

	_, err := svc.Login(context.Background(), dto.LoginDTO{Email: "a@b.com", Password: "senha-errada"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_EmailInexistenteNaoVazaExistencia(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockJWTService{}, 1, zap.NewNop())

	_, err := svc.Login(context.Background(), dto.LoginDTO{Email: "ninguem@b.com", Password: "x"})
	// Mesma resposta da senha errada: credenciais inválidas, não 404.
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_ContaNaoAprovada(t *testing.T) {
	repo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*entities.User, error) {
			return &entities.User{ID: 2, Email: email, PasswordHash: hashOf(t, "senha"), Approved: false}, nil
		},
	}
	svc := NewAuthService(repo, &mockJWTService{}, 1, zap.NewNop())

	_, err := svc.Login(context.Background(), dto.LoginDTO{Email: "a@b.com", Password: "senha"})
	assert.ErrorIs(t, err, apperrors.ErrUserNotApproved)
}

func TestLogin_CriadorRecebePapelElevadoNoToken(t *testing.T) {
	repo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*entities.User, error) {
			return &entities.User{ID: 1, Email: email, Role: authz.RoleAdmin, PasswordHash: hashOf(t, "senha"), Approved: true}, nil
		},
	}
	jwtSvc := &mockJWTService{}
	svc := NewAuthService(repo, jwtSvc, 1, zap.NewNop())

	out, err := svc.Login(context.Background(), dto.LoginDTO{Email: "dono@b.com", Password: "senha"})
	require.NoError(t, err)
	assert.Equal(t, authz.RoleCriador, jwtSvc.issuedRole)
	assert.Equal(t, authz.RoleCriador, out.User.Role)
}

func TestRefresh_AccessTokenRejeitado(t *testing.T) {
	jwtSvc := &mockJWTService{
		claims: &service.JwtCustomClaim{UserID: 2, Role: authz.RoleViewer, IsRefreshToken: false},
	}
	svc := NewAuthService(&mockUserRepo{}, jwtSvc, 1, zap.NewNop())

	_, err := svc.Refresh(context.Background(), dto.RefreshTokenDTO{RefreshToken: "token"})
	assert.ErrorIs(t, err, apperrors.ErrTokenIsNotRefresh)
}

func TestRefresh_ReleAtribuicoesDoBanco(t *testing.T) {
	sectorID := uint64(5)
	repo := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id uint64) (*entities.User, error) {
			// Papel rebaixado depois da emissão do token original.
			return &entities.User{ID: id, Role: authz.RoleProducao, SectorID: &sectorID, Approved: true}, nil
		},
	}
	jwtSvc := &mockJWTService{
		claims: &service.JwtCustomClaim{UserID: 2, Role: authz.RoleAdmin, IsRefreshToken: true},
	}
	svc := NewAuthService(repo, jwtSvc, 1, zap.NewNop())

	out, err := svc.Refresh(context.Background(), dto.RefreshTokenDTO{RefreshToken: "token"})
	require.NoError(t, err)
	assert.Equal(t, authz.RoleProducao, jwtSvc.issuedRole)
	assert.Equal(t, authz.RoleProducao, out.User.Role)
}

func TestRegister_NasceViewerNaoAprovado(t *testing.T) {
	var created *entities.User
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, user *entities.User) (uint64, error) {
			created = user
			created.ID = 7
			return 7, nil
		},
		findByIDFn: func(ctx context.Context, id uint64) (*entities.User, error) {
			return created, nil
		},
	}
	svc := NewAuthService(repo, &mockJWTService{}, 1, zap.NewNop())

	out, err := svc.Register(context.Background(), dto.RegisterUserDTO{
		Name: "Novo Usuário", Email: "novo@b.com", Password: "segredo-forte",
	})
	require.NoError(t, err)
	assert.Equal(t, authz.RoleViewer, out.Role)
	assert.False(t, out.Approved)
	assert.NotEqual(t, "segredo-forte", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("segredo-forte")))
}

func TestRegister_EmailDuplicado(t *testing.T) {
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, user *entities.User) (uint64, error) {
			return 0, apperrors.ErrDuplicateCode
		},
	}
	svc := NewAuthService(repo, &mockJWTService{}, 1, zap.NewNop())

	_, err := svc.Register(context.Background(), dto.RegisterUserDTO{
		Name: "Novo", Email: "ja@existe.com", Password: "segredo-forte",
	})
	require.Error(t, err)
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 409, httpErr.Code)
}
