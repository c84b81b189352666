package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/entities"
	apperrors "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/errors"
)

const (
	userTable  = "users"
	userFields = "u.id, u.name, u.email, u.password_hash, u.role, u.sector_id, u.approved, u.created_at, u.updated_at"
)

type UserRepositoryInterface interface {
	List(ctx context.Context) ([]entities.User, error)
	FindByID(ctx context.Context, id uint64) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Create(ctx context.Context, user *entities.User) (uint64, error)
	Update(ctx context.Context, user *entities.User) error
	SetApproved(ctx context.Context, id uint64, approved bool) error
	Delete(ctx context.Context, id uint64) error
}

type UserRepository struct {
	storage *pgxpool.Pool
}

func NewUserRepository(storage *pgxpool.Pool) UserRepositoryInterface {
	return &UserRepository{storage: storage}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	var sectorName *string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.SectorID, &u.Approved, &u.CreatedAt, &u.UpdatedAt, &sectorName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if u.SectorID != nil && sectorName != nil {
		u.Sector = &entities.Sector{ID: *u.SectorID, Name: *sectorName}
	}
	return &u, nil
}

func (r *UserRepository) baseSelect() string {
	return fmt.Sprintf(`
		SELECT %s, s.name
		FROM %s u
		LEFT JOIN %s s ON s.id = u.sector_id
	`, userFields, userTable, sectorTable)
}

func (r *UserRepository) List(ctx context.Context) ([]entities.User, error) {
	query := r.baseSelect() + " ORDER BY u.name"

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []entities.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *u)
	}
	return list, rows.Err()
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*entities.User, error) {
	query := r.baseSelect() + " WHERE u.id = $1"
	return scanUser(r.storage.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := r.baseSelect() + " WHERE u.email = $1"
	return scanUser(r.storage.QueryRow(ctx, query, email))
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) (uint64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, email, password_hash, role, sector_id, approved)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, userTable)

	var id uint64
	err := r.storage.QueryRow(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Role, user.SectorID, user.Approved,
	).Scan(&id)
	if err != nil {
		return 0, translatePgErrorInsert(err)
	}
	return id, nil
}

func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	query := fmt.Sprintf(`
		UPDATE %s SET name = $1, email = $2, password_hash = $3, role = $4,
			sector_id = $5, approved = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $7
	`, userTable)

	result, err := r.storage.Exec(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Role,
		user.SectorID, user.Approved, user.ID,
	)
	if err != nil {
		return translatePgErrorInsert(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetApproved(ctx context.Context, id uint64, approved bool) error {
	query := fmt.Sprintf("UPDATE %s SET approved = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2", userTable)

	result, err := r.storage.Exec(ctx, query, approved, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", userTable)

	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return translatePgError(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
