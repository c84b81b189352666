package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/authz"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/dto"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/entities"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/repositories"
	apperrors "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/errors"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/service"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, payload dto.RegisterUserDTO) (*dto.UserDTO, error)
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error)
	Refresh(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.TokenPairDTO, error)
}

type AuthService struct {
	userRepo      repositories.UserRepositoryInterface
	jwtService    service.JWTService
	creatorUserID uint64
	logger        *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	jwtService service.JWTService,
	creatorUserID uint64,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtService:    jwtService,
		creatorUserID: creatorUserID,
		logger:        logger,
	}
}

// Register cria um usuário pendente de aprovação com o papel mais restrito.
// Papel e aprovação são atribuídos depois por quem tem users:manage.
func (s *AuthService) Register(ctx context.Context, payload dto.RegisterUserDTO) (*dto.UserDTO, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Name:         payload.Name,
		Email:        payload.Email,
		PasswordHash: string(hash),
		Role:         authz.RoleViewer,
		SectorID:     payload.SectorID,
		Approved:     false,
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateCode) {
			return nil, apperrors.NewHttpError(409, "já existe um usuário com este e-mail", err, nil)
		}
		return nil, err
	}

	created, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := mapUser(created)
	return &out, nil
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	user, err := s.userRepo.FindByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		s.logger.Warn("tentativa de login com senha incorreta", zap.String("email", payload.Email))
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.Approved {
		return nil, apperrors.ErrUserNotApproved
	}

	return s.issueTokens(user)
}

func (s *AuthService) Refresh(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtService.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	// Papel e setor sempre relidos do banco: rebaixamento ou troca de setor
	// vale a partir do próximo refresh.
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !user.Approved {
		return nil, apperrors.ErrUserNotApproved
	}

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user *entities.User) (*dto.TokenPairDTO, error) {
	role := user.Role
	if user.ID == s.creatorUserID {
		role = authz.RoleCriador
	}

	access, refresh, err := s.jwtService.GenerateTokens(user.ID, role, user.SectorID)
	if err != nil {
		return nil, err
	}

	userDTO := mapUser(user)
	userDTO.Role = role
	return &dto.TokenPairDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         userDTO,
	}, nil
}
