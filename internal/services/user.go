package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/authz"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/dto"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/entities"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/repositories"
	apperrors "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/errors"
)

const auditEntityUser = "user"

type UserServiceInterface interface {
	GetUsers(ctx context.Context) ([]dto.UserDTO, error)
	FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error)
	UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, id uint64) error
}

type UserService struct {
	userRepo     repositories.UserRepositoryInterface
	auditService AuditServiceInterface
	gate         *authz.Gatekeeper
	logger       *zap.Logger
}

func NewUserService(
	userRepo repositories.UserRepositoryInterface,
	auditService AuditServiceInterface,
	gate *authz.Gatekeeper,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		auditService: auditService,
		gate:         gate,
		logger:       logger,
	}
}

func (s *UserService) GetUsers(ctx context.Context) ([]dto.UserDTO, error) {
	if _, err := requirePermission(ctx, s.gate, authz.UsersManage); err != nil {
		return nil, err
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		out = append(out, mapUser(&users[i]))
	}
	return out, nil
}

func (s *UserService) FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	if _, err := requirePermission(ctx, s.gate, authz.UsersManage); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := mapUser(user)
	return &out, nil
}

// UpdateUser cobre aprovação do cadastro, troca de papel e de setor. Papel
// PRODUCAO exige setor atribuído, senão o escopo por setor ficaria vazio.
func (s *UserService) UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*dto.UserDTO, error) {
	if _, err := requirePermission(ctx, s.gate, authz.UsersManage); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil {
		user.Name = *payload.Name
	}
	if payload.Role != nil {
		if !authz.KnownRole(*payload.Role) {
			return nil, apperrors.NewInvalidInputError("papel desconhecido: %s", *payload.Role)
		}
		user.Role = *payload.Role
	}
	if payload.SectorID != nil {
		user.SectorID = payload.SectorID
	}
	if payload.Approved != nil {
		user.Approved = *payload.Approved
	}

	if user.Role == authz.RoleProducao && user.SectorID == nil {
		return nil, apperrors.NewInvalidInputError("usuário de produção precisa de um setor atribuído")
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, entities.AuditUpdate, auditEntityUser, id, map[string]interface{}{
		"role":     user.Role,
		"approved": user.Approved,
	})
	return s.FindUser(ctx, id)
}

// DeleteUser é bloqueado quando o usuário aparece em registros históricos
// (violação de FK traduzida em ErrHasDependencies).
func (s *UserService) DeleteUser(ctx context.Context, id uint64) error {
	if _, err := requirePermission(ctx, s.gate, authz.UsersManage); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditService.Record(ctx, entities.AuditDelete, auditEntityUser, id, nil)
	return nil
}
