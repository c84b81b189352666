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
	supplierTable  = "suppliers"
	supplierFields = "id, name, cnpj, email, phone, contact, notes, created_at, updated_at"
)

type SupplierRepositoryInterface interface {
	List(ctx context.Context) ([]entities.Supplier, error)
	FindByID(ctx context.Context, id uint64) (*entities.Supplier, error)
	Create(ctx context.Context, supplier *entities.Supplier) (uint64, error)
	Update(ctx context.Context, supplier *entities.Supplier) error
	Delete(ctx context.Context, id uint64) error
}

type SupplierRepository struct {
	storage *pgxpool.Pool
}

func NewSupplierRepository(storage *pgxpool.Pool) SupplierRepositoryInterface {
	return &SupplierRepository{storage: storage}
}

func scanSupplier(row pgx.Row) (*entities.Supplier, error) {
	var s entities.Supplier
	err := row.Scan(&s.ID, &s.Name, &s.CNPJ, &s.Email, &s.Phone, &s.Contact, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SupplierRepository) List(ctx context.Context) ([]entities.Supplier, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY name", supplierFields, supplierTable)

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []entities.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *s)
	}
	return list, rows.Err()
}

func (r *SupplierRepository) FindByID(ctx context.Context, id uint64) (*entities.Supplier, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", supplierFields, supplierTable)
	return scanSupplier(r.storage.QueryRow(ctx, query, id))
}

func (r *SupplierRepository) Create(ctx context.Context, supplier *entities.Supplier) (uint64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, cnpj, email, phone, contact, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, supplierTable)

	var id uint64
	err := r.storage.QueryRow(ctx, query,
		supplier.Name, supplier.CNPJ, supplier.Email,
		supplier.Phone, supplier.Contact, supplier.Notes,
	).Scan(&id)
	if err != nil {
		return 0, translatePgError(err)
	}
	return id, nil
}

func (r *SupplierRepository) Update(ctx context.Context, supplier *entities.Supplier) error {
	query := fmt.Sprintf(`
		UPDATE %s SET name = $1, cnpj = $2, email = $3, phone = $4,
			contact = $5, notes = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $7
	`, supplierTable)

	result, err := r.storage.Exec(ctx, query,
		supplier.Name, supplier.CNPJ, supplier.Email,
		supplier.Phone, supplier.Contact, supplier.Notes, supplier.ID,
	)
	if err != nil {
		return translatePgError(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *SupplierRepository) Delete(ctx context.Context, id uint64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", supplierTable)

	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return translatePgError(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
