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

const sectorTable = "sectors"

type SectorRepositoryInterface interface {
	List(ctx context.Context) ([]entities.Sector, error)
	FindByID(ctx context.Context, id uint64) (*entities.Sector, error)
	Create(ctx context.Context, name string) (uint64, error)
	Update(ctx context.Context, id uint64, name string) error
	Delete(ctx context.Context, id uint64) error
}

type SectorRepository struct {
	storage *pgxpool.Pool
}

func NewSectorRepository(storage *pgxpool.Pool) SectorRepositoryInterface {
	return &SectorRepository{storage: storage}
}

func (r *SectorRepository) List(ctx context.Context) ([]entities.Sector, error) {
	query := fmt.Sprintf("SELECT id, name, created_at, updated_at FROM %s ORDER BY name", sectorTable)

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []entities.Sector
	for rows.Next() {
		var s entities.Sector
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *SectorRepository) FindByID(ctx context.Context, id uint64) (*entities.Sector, error) {
	query := fmt.Sprintf("SELECT id, name, created_at, updated_at FROM %s WHERE id = $1", sectorTable)

	var s entities.Sector
	err := r.storage.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SectorRepository) Create(ctx context.Context, name string) (uint64, error) {
	query := fmt.Sprintf("INSERT INTO %s (name) VALUES ($1) RETURNING id", sectorTable)

	var id uint64
	if err := r.storage.QueryRow(ctx, query, name).Scan(&id); err != nil {
		return 0, translatePgError(err)
	}
	return id, nil
}

func (r *SectorRepository) Update(ctx context.Context, id uint64, name string) error {
	query := fmt.Sprintf("UPDATE %s SET name = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2", sectorTable)

	result, err := r.storage.Exec(ctx, query, name, id)
	if err != nil {
		return translatePgError(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *SectorRepository) Delete(ctx context.Context, id uint64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", sectorTable)

	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return translatePgError(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
