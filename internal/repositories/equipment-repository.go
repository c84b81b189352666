package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/entities"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/infrastructure/db"
	apperrors "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/errors"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/types"
)

const equipmentTable = "equipments"

const equipmentFields = `e.id, e.code, e.name, e.equipment_type_id, e.sector_id, e.usage_status,
	e.last_calibration_date, e.last_certificate_number, e.due_date, e.status,
	e.manufacturer, e.model, e.resolution, e.capacity, e.responsible_person, e.working_range,
	e.admissible_uncertainty, e.max_error, e.provider, e.unit, e.location, e.notes, e.image_key,
	e.created_at, e.updated_at`

// equipmentListColumns é o mapa campo-da-API -> coluna usado em filtro e ordenação.
var equipmentListColumns = map[string]string{
	"code":              "e.code",
	"name":              "e.name",
	"status":            "e.status",
	"usage_status":      "e.usage_status",
	"sector_id":         "e.sector_id",
	"equipment_type_id": "e.equipment_type_id",
	"due_date":          "e.due_date",
	"created_at":        "e.created_at",
}

type EquipmentRepositoryInterface interface {
	List(ctx context.Context, filter types.Filter, sectorScope *uint64) ([]entities.Equipment, uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.Equipment, error)
	Create(ctx context.Context, eq *entities.Equipment) (uint64, error)
	Update(ctx context.Context, eq *entities.Equipment) error
	UpdateDerivedStateTx(ctx context.Context, tx pgx.Tx, id uint64, lastCalibrationDate *time.Time, lastCertificateNumber *string, dueDate *time.Time, status string) error
	UpdateUsageState(ctx context.Context, id uint64, usageStatus string, sectorID *uint64, location *string) error
	Delete(ctx context.Context, id uint64) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage, logger: logger}
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	var typeName *string
	var sectorName *string
	var sectorID *uint64

	err := row.Scan(
		&e.ID, &e.Code, &e.Name, &e.EquipmentTypeID, &e.SectorID, &e.UsageStatus,
		&e.LastCalibrationDate, &e.LastCertificateNumber, &e.DueDate, &e.Status,
		&e.Manufacturer, &e.Model, &e.Resolution, &e.Capacity, &e.ResponsiblePerson, &e.WorkingRange,
		&e.AdmissibleUncertainty, &e.MaxError, &e.Provider, &e.Unit, &e.Location, &e.Notes, &e.ImageKey,
		&e.CreatedAt, &e.UpdatedAt,
		&typeName, &sectorID, &sectorName,
	)
	if err != nil {
		return nil, err
	}

	if typeName != nil {
		e.EquipmentType = &entities.EquipmentType{ID: e.EquipmentTypeID, Name: *typeName}
	}
	if sectorID != nil && sectorName != nil {
		e.Sector = &entities.Sector{ID: *sectorID, Name: *sectorName}
	}
	return &e, nil
}

func (r *EquipmentRepository) baseSelect() sq.SelectBuilder {
	return sq.Select(equipmentFields, "et.name", "s.id", "s.name").
		From(equipmentTable + " e").
		LeftJoin("equipment_types et ON et.id = e.equipment_type_id").
		LeftJoin("sectors s ON s.id = e.sector_id").
		PlaceholderFormat(sq.Dollar)
}

// List aplica primeiro a restrição de segurança por setor (quando presente) e
// só depois os filtros da query, de modo que o chamador de produção nunca
// consegue ampliar o próprio escopo.
func (r *EquipmentRepository) List(ctx context.Context, filter types.Filter, sectorScope *uint64) ([]entities.Equipment, uint64, error) {
	builder := r.baseSelect()
	countBuilder := sq.Select("COUNT(*)").From(equipmentTable + " e").PlaceholderFormat(sq.Dollar)

	if sectorScope != nil {
		cond := sq.Eq{"e.sector_id": *sectorScope}
		builder = builder.Where(cond)
		countBuilder = countBuilder.Where(cond)
	}

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		cond := sq.Or{sq.ILike{"e.code": like}, sq.ILike{"e.name": like}}
		builder = builder.Where(cond)
		countBuilder = countBuilder.Where(cond)
	}

	// A restrição de setor já foi aplicada; um filter[sector_id] do usuário
	// só estreita dentro do escopo permitido.
	allowed := equipmentListColumns
	if sectorScope != nil {
		allowed = map[string]string{}
		for k, v := range equipmentListColumns {
			if k != "sector_id" {
				allowed[k] = v
			}
		}
	}

	countBuilder = db.ApplyListParams(countBuilder, types.Filter{Filter: filter.Filter}, allowed)
	builder = db.ApplyListParams(builder, filter, allowed)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("e.code ASC")
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listSQL, listArgs, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []entities.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *e)
	}
	return list, total, rows.Err()
}

func (r *EquipmentRepository) FindByID(ctx context.Context, id uint64) (*entities.Equipment, error) {
	query, args, err := r.baseSelect().Where(sq.Eq{"e.id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	e, err := scanEquipment(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *EquipmentRepository) Create(ctx context.Context, eq *entities.Equipment) (uint64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (code, name, equipment_type_id, sector_id, usage_status,
			last_calibration_date, last_certificate_number, due_date, status,
			manufacturer, model, resolution, capacity, responsible_person, working_range,
			admissible_uncertainty, max_error, provider, unit, location, notes, image_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING id
	`, equipmentTable)

	var id uint64
	err := r.storage.QueryRow(ctx, query,
		eq.Code, eq.Name, eq.EquipmentTypeID, eq.SectorID, eq.UsageStatus,
		eq.LastCalibrationDate, eq.LastCertificateNumber, eq.DueDate, eq.Status,
		eq.Manufacturer, eq.Model, eq.Resolution, eq.Capacity, eq.ResponsiblePerson, eq.WorkingRange,
		eq.AdmissibleUncertainty, eq.MaxError, eq.Provider, eq.Unit, eq.Location, eq.Notes, eq.ImageKey,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return 0, apperrors.ErrDuplicateCode
			case pgForeignKeyViolation:
				return 0, apperrors.NewInvalidInputError("tipo de equipamento ou setor inexistente")
			}
		}
		return 0, err
	}
	return id, nil
}

func (r *EquipmentRepository) Update(ctx context.Context, eq *entities.Equipment) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			code = $1, name = $2, equipment_type_id = $3, sector_id = $4, usage_status = $5,
			last_calibration_date = $6, last_certificate_number = $7, due_date = $8, status = $9,
			manufacturer = $10, model = $11, resolution = $12, capacity = $13, responsible_person = $14,
			working_range = $15, admissible_uncertainty = $16, max_error = $17, provider = $18,
			unit = $19, location = $20, notes = $21, image_key = $22, updated_at = CURRENT_TIMESTAMP
		WHERE id = $23
	`, equipmentTable)

	result, err := r.storage.Exec(ctx, query,
		eq.Code, eq.Name, eq.EquipmentTypeID, eq.SectorID, eq.UsageStatus,
		eq.LastCalibrationDate, eq.LastCertificateNumber, eq.DueDate, eq.Status,
		eq.Manufacturer, eq.Model, eq.Resolution, eq.Capacity, eq.ResponsiblePerson,
		eq.WorkingRange, eq.AdmissibleUncertainty, eq.MaxError, eq.Provider,
		eq.Unit, eq.Location, eq.Notes, eq.ImageKey, eq.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperrors.ErrDuplicateCode
		}
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateDerivedStateTx grava o estado derivado (última calibração, certificado,
// vencimento, status) dentro da transação que inseriu ou removeu o registro de
// calibração, garantindo que pai e histórico mudem como uma unidade só.
func (r *EquipmentRepository) UpdateDerivedStateTx(ctx context.Context, tx pgx.Tx, id uint64, lastCalibrationDate *time.Time, lastCertificateNumber *string, dueDate *time.Time, status string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET last_calibration_date = $1, last_certificate_number = $2,
			due_date = $3, status = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $5
	`, equipmentTable)

	result, err := tx.Exec(ctx, query, lastCalibrationDate, lastCertificateNumber, dueDate, status, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) UpdateUsageState(ctx context.Context, id uint64, usageStatus string, sectorID *uint64, location *string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET usage_status = $1, sector_id = $2, location = COALESCE($3, location),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
	`, equipmentTable)

	result, err := r.storage.Exec(ctx, query, usageStatus, sectorID, location, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) Delete(ctx context.Context, id uint64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", equipmentTable)

	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return translatePgError(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
