package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/entities"
	apperrors "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/errors"
)

const calibrationRuleTable = "calibration_rules"

const calibrationRuleFields = "id, equipment_type_id, interval_months, warn_days, created_at, updated_at"

type CalibrationRuleRepositoryInterface interface {
	List(ctx context.Context) ([]entities.CalibrationRule, error)
	FindByID(ctx context.Context, id uint64) (*entities.CalibrationRule, error)
	// FindByEquipmentType devolve (nil, nil) quando o tipo não tem regra:
	// ausência de política não é erro para o motor de status.
	FindByEquipmentType(ctx context.Context, equipmentTypeID uint64) (*entities.CalibrationRule, error)
	Create(ctx context.Context, rule *entities.CalibrationRule) (uint64, error)
	Update(ctx context.Context, id uint64, intervalMonths, warnDays int) error
	Delete(ctx context.Context, id uint64) error
}

type CalibrationRuleRepository struct {
	storage *pgxpool.Pool
}

func NewCalibrationRuleRepository(storage *pgxpool.Pool) CalibrationRuleRepositoryInterface {
	return &CalibrationRuleRepository{storage: storage}
}

func scanCalibrationRule(row pgx.Row) (*entities.CalibrationRule, error) {
	var rule entities.CalibrationRule
	err := row.Scan(&rule.ID, &rule.EquipmentTypeID, &rule.IntervalMonths, &rule.WarnDays,
		&rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *CalibrationRuleRepository) List(ctx context.Context) ([]entities.CalibrationRule, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", calibrationRuleFields, calibrationRuleTable)

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []entities.CalibrationRule
	for rows.Next() {
		rule, err := scanCalibrationRule(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *rule)
	}
	return list, rows.Err()
}

func (r *CalibrationRuleRepository) FindByID(ctx context.Context, id uint64) (*entities.CalibrationRule, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", calibrationRuleFields, calibrationRuleTable)

	rule, err := scanCalibrationRule(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return rule, nil
}

func (r *CalibrationRuleRepository) FindByEquipmentType(ctx context.Context, equipmentTypeID uint64) (*entities.CalibrationRule, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE equipment_type_id = $1", calibrationRuleFields, calibrationRuleTable)

	rule, err := scanCalibrationRule(r.storage.QueryRow(ctx, query, equipmentTypeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rule, nil
}

func (r *CalibrationRuleRepository) Create(ctx context.Context, rule *entities.CalibrationRule) (uint64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (equipment_type_id, interval_months, warn_days)
		VALUES ($1, $2, $3)
		RETURNING id
	`, calibrationRuleTable)

	var id uint64
	err := r.storage.QueryRow(ctx, query, rule.EquipmentTypeID, rule.IntervalMonths, rule.WarnDays).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				// Já existe regra para o tipo: no máximo uma por tipo.
				return 0, apperrors.NewHttpError(409, "o tipo de equipamento já possui uma regra de calibração", err, nil)
			case pgForeignKeyViolation:
				return 0, apperrors.NewInvalidInputError("tipo de equipamento inexistente")
			}
		}
		return 0, err
	}
	return id, nil
}

func (r *CalibrationRuleRepository) Update(ctx context.Context, id uint64, intervalMonths, warnDays int) error {
	query := fmt.Sprintf(`
		UPDATE %s SET interval_months = $1, warn_days = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
	`, calibrationRuleTable)

	result, err := r.storage.Exec(ctx, query, intervalMonths, warnDays, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *CalibrationRuleRepository) Delete(ctx context.Context, id uint64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", calibrationRuleTable)

	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
