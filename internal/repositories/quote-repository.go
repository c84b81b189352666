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
	quoteRequestTable     = "quote_requests"
	quoteRequestItemTable = "quote_request_items"
)

type QuoteRepositoryInterface interface {
	List(ctx context.Context) ([]entities.QuoteRequest, error)
	FindByID(ctx context.Context, id uint64) (*entities.QuoteRequest, error)
	CreateTx(ctx context.Context, tx pgx.Tx, quote *entities.QuoteRequest, equipmentIDs []uint64) (uint64, error)
	UpdateStatus(ctx context.Context, id uint64, status string) error
	Delete(ctx context.Context, id uint64) error
}

type QuoteRepository struct {
	storage *pgxpool.Pool
}

func NewQuoteRepository(storage *pgxpool.Pool) QuoteRepositoryInterface {
	return &QuoteRepository{storage: storage}
}

func (r *QuoteRepository) List(ctx context.Context) ([]entities.QuoteRequest, error) {
	query := fmt.Sprintf(`
		SELECT q.id, q.supplier_id, q.status, q.notes, q.created_at, q.updated_at,
			s.id, s.name
		FROM %s q
		JOIN %s s ON s.id = q.supplier_id
		ORDER BY q.created_at DESC, q.id DESC
	`, quoteRequestTable, supplierTable)

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []entities.QuoteRequest
	for rows.Next() {
		var q entities.QuoteRequest
		var supplier entities.Supplier
		err := rows.Scan(&q.ID, &q.SupplierID, &q.Status, &q.Notes, &q.CreatedAt, &q.UpdatedAt,
			&supplier.ID, &supplier.Name)
		if err != nil {
			return nil, err
		}
		q.Supplier = &supplier
		list = append(list, q)
	}
	return list, rows.Err()
}

// FindByID devolve a solicitação com o fornecedor e os itens (equipamento
// resumido) já carregados, pronto para montar o PDF.
func (r *QuoteRepository) FindByID(ctx context.Context, id uint64) (*entities.QuoteRequest, error) {
	query := fmt.Sprintf(`
		SELECT q.id, q.supplier_id, q.status, q.notes, q.created_at, q.updated_at,
			s.id, s.name, s.cnpj, s.email, s.phone, s.contact, s.notes
		FROM %s q
		JOIN %s s ON s.id = q.supplier_id
		WHERE q.id = $1
	`, quoteRequestTable, supplierTable)

	var q entities.QuoteRequest
	var supplier entities.Supplier
	err := r.storage.QueryRow(ctx, query, id).Scan(
		&q.ID, &q.SupplierID, &q.Status, &q.Notes, &q.CreatedAt, &q.UpdatedAt,
		&supplier.ID, &supplier.Name, &supplier.CNPJ, &supplier.Email,
		&supplier.Phone, &supplier.Contact, &supplier.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	q.Supplier = &supplier

	itemsQuery := fmt.Sprintf(`
		SELECT i.id, i.quote_request_id, i.equipment_id,
			e.id, e.code, e.name
		FROM %s i
		JOIN %s e ON e.id = i.equipment_id
		WHERE i.quote_request_id = $1
		ORDER BY e.code
	`, quoteRequestItemTable, equipmentTable)

	rows, err := r.storage.Query(ctx, itemsQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item entities.QuoteRequestItem
		var eq entities.Equipment
		err := rows.Scan(&item.ID, &item.QuoteRequestID, &item.EquipmentID,
			&eq.ID, &eq.Code, &eq.Name)
		if err != nil {
			return nil, err
		}
		item.Equipment = &eq
		q.Items = append(q.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &q, nil
}

// CreateTx insere a solicitação e os itens na mesma transação: ou a cotação
// nasce completa, ou não nasce.
func (r *QuoteRepository) CreateTx(ctx context.Context, tx pgx.Tx, quote *entities.QuoteRequest, equipmentIDs []uint64) (uint64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (supplier_id, status, notes)
		VALUES ($1, $2, $3)
		RETURNING id
	`, quoteRequestTable)

	var id uint64
	if err := tx.QueryRow(ctx, query, quote.SupplierID, quote.Status, quote.Notes).Scan(&id); err != nil {
		return 0, translatePgErrorInsert(err)
	}

	itemQuery := fmt.Sprintf("INSERT INTO %s (quote_request_id, equipment_id) VALUES ($1, $2)", quoteRequestItemTable)
	for _, equipmentID := range equipmentIDs {
		if _, err := tx.Exec(ctx, itemQuery, id, equipmentID); err != nil {
			return 0, translatePgErrorInsert(err)
		}
	}
	return id, nil
}

func (r *QuoteRepository) UpdateStatus(ctx context.Context, id uint64, status string) error {
	query := fmt.Sprintf("UPDATE %s SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2", quoteRequestTable)

	result, err := r.storage.Exec(ctx, query, status, id)
	if err != nil {
		return translatePgError(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *QuoteRepository) Delete(ctx context.Context, id uint64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", quoteRequestTable)

	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return translatePgError(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
