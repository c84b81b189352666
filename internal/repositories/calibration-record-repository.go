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

const calibrationRecordTable = "calibration_records"

const calibrationRecordFields = `id, equipment_id, calibration_date, certificate_number,
	performed_by, notes, measured_error, uncertainty, status, attachment_key, created_at`

type CalibrationRecordRepositoryInterface interface {
	FindByID(ctx context.Context, id uint64) (*entities.CalibrationRecord, error)
	ListByEquipment(ctx context.Context, equipmentID uint64) ([]entities.CalibrationRecord, error)
	InsertTx(ctx context.Context, tx pgx.Tx, rec *entities.CalibrationRecord) (uint64, error)
	DeleteTx(ctx context.Context, tx pgx.Tx, id uint64) error
	// LatestByDateTx devolve o registro com a maior calibration_date do
	// equipamento (desempate por id), ou nil quando não resta nenhum. É a
	// recência "por valor de data", não por ordem de inserção.
	LatestByDateTx(ctx context.Context, tx pgx.Tx, equipmentID uint64) (*entities.CalibrationRecord, error)
}

type CalibrationRecordRepository struct {
	storage *pgxpool.Pool
}

func NewCalibrationRecordRepository(storage *pgxpool.Pool) CalibrationRecordRepositoryInterface {
	return &CalibrationRecordRepository{storage: storage}
}

func scanCalibrationRecord(row pgx.Row) (*entities.CalibrationRecord, error) {
	var rec entities.CalibrationRecord
	err := row.Scan(
		&rec.ID, &rec.EquipmentID, &rec.CalibrationDate, &rec.CertificateNumber,
		&rec.PerformedBy, &rec.Notes, &rec.MeasuredError, &rec.Uncertainty,
		&rec.Status, &rec.AttachmentKey, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *CalibrationRecordRepository) FindByID(ctx context.Context, id uint64) (*entities.CalibrationRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", calibrationRecordFields, calibrationRecordTable)

	rec, err := scanCalibrationRecord(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (r *CalibrationRecordRepository) ListByEquipment(ctx context.Context, equipmentID uint64) ([]entities.CalibrationRecord, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE equipment_id = $1 ORDER BY calibration_date DESC, id DESC",
		calibrationRecordFields, calibrationRecordTable,
	)

	rows, err := r.storage.Query(ctx, query, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []entities.CalibrationRecord
	for rows.Next() {
		rec, err := scanCalibrationRecord(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *rec)
	}
	return list, rows.Err()
}

func (r *CalibrationRecordRepository) InsertTx(ctx context.Context, tx pgx.Tx, rec *entities.CalibrationRecord) (uint64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (equipment_id, calibration_date, certificate_number, performed_by,
			notes, measured_error, uncertainty, status, attachment_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, calibrationRecordTable)

	var id uint64
	err := tx.QueryRow(ctx, query,
		rec.EquipmentID, rec.CalibrationDate, rec.CertificateNumber, rec.PerformedBy,
		rec.Notes, rec.MeasuredError, rec.Uncertainty, rec.Status, rec.AttachmentKey,
	).Scan(&id)
	if err != nil {
		return 0, translatePgError(err)
	}
	return id, nil
}

func (r *CalibrationRecordRepository) DeleteTx(ctx context.Context, tx pgx.Tx, id uint64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", calibrationRecordTable)

	result, err := tx.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *CalibrationRecordRepository) LatestByDateTx(ctx context.Context, tx pgx.Tx, equipmentID uint64) (*entities.CalibrationRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE equipment_id = $1
		ORDER BY calibration_date DESC, id DESC
		LIMIT 1
	`, calibrationRecordFields, calibrationRecordTable)

	rec, err := scanCalibrationRecord(tx.QueryRow(ctx, query, equipmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}
