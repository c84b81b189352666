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

const equipmentTypeTable = "equipment_types"

type EquipmentTypeRepositoryInterface interface {
	List(ctx context.Context) ([]entities.EquipmentType, error)
	FindByID(ctx context.Context, id uint64) (*entities.EquipmentType, error)
	Create(ctx context.Context, name string) (uint64, error)
	Update(ctx context.Context, id uint64, name string) error
	Delete(ctx context.Context, id uint64) error
}

type EquipmentTypeRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentTypeRepository(storage *pgxpool.Pool) EquipmentTypeRepositoryInterface {
	return &EquipmentTypeRepository{storage: storage}
}

// List carrega os tipos com a regra de cada um (quando existe) num único JOIN.
func (r *EquipmentTypeRepository) List(ctx context.Context) ([]entities.EquipmentType, error) {
	query := fmt.Sprintf(`
		SELECT et.id, et.name, et.created_at, et.updated_at,
			cr.id, cr.interval_months, cr.warn_days
		FROM %s et
		LEFT JOIN %s cr ON cr.equipment_type_id = et.id
		ORDER BY et.name
	`, equipmentTypeTable, calibrationRuleTable)

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []entities.EquipmentType
	for rows.Next() {
		var et entities.EquipmentType
		var ruleID *uint64
		var intervalMonths, warnDays *int
		if err := rows.Scan(&et.ID, &et.Name, &et.CreatedAt, &et.UpdatedAt, &ruleID, &intervalMonths, &warnDays); err != nil {
			return nil, err
		}
		if ruleID != nil {
			et.Rule = &entities.CalibrationRule{
				ID:              *ruleID,
				EquipmentTypeID: et.ID,
				IntervalMonths:  *intervalMonths,
				WarnDays:        *warnDays,
			}
		}
		list = append(list, et)
	}
	return list, rows.Err()
}

func (r *EquipmentTypeRepository) FindByID(ctx context.Context, id uint64) (*entities.EquipmentType, error) {
	query := fmt.Sprintf("SELECT id, name, created_at, updated_at FROM %s WHERE id = $1", equipmentTypeTable)

	var et entities.EquipmentType
	err := r.storage.QueryRow(ctx, query, id).Scan(&et.ID, &et.Name, &et.CreatedAt, &et.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &et, nil
}

func (r *EquipmentTypeRepository) Create(ctx context.Context, name string) (uint64, error) {
	query := fmt.Sprintf("INSERT INTO %s (name) VALUES ($1) RETURNING id", equipmentTypeTable)

	var id uint64
	if err := r.storage.QueryRow(ctx, query, name).Scan(&id); err != nil {
		return 0, translatePgError(err)
	}
	return id, nil
}

func (r *EquipmentTypeRepository) Update(ctx context.Context, id uint64, name string) error {
	query := fmt.Sprintf("UPDATE %s SET name = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2", equipmentTypeTable)

	result, err := r.storage.Exec(ctx, query, name, id)
	if err != nil {
		return translatePgError(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete falha com ErrHasDependencies quando há equipamento referenciando o
// tipo (violação de FK).
func (r *EquipmentTypeRepository) Delete(ctx context.Context, id uint64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", equipmentTypeTable)

	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return translatePgError(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
