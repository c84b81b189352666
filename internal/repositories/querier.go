package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/errors"
)

// querier é satisfeito tanto pelo *pgxpool.Pool quanto por pgx.Tx, permitindo
// que um mesmo método de repositório participe ou não de uma transação.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Códigos de erro do PostgreSQL que interessam à taxonomia da aplicação.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translatePgError converte erros do driver nos sentinelas da aplicação:
// violação de unique vira conflito, violação de FK em DELETE vira
// "possui vínculos", linha ausente vira não-encontrado.
func translatePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperrors.ErrDuplicateCode
		case pgForeignKeyViolation:
			return apperrors.ErrHasDependencies
		}
	}
	return err
}

// translatePgErrorInsert é a variante para INSERT/UPDATE: ali uma violação de
// FK significa referência a um registro inexistente, não um vínculo impedindo
// remoção.
func translatePgErrorInsert(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperrors.ErrDuplicateCode
		case pgForeignKeyViolation:
			return apperrors.NewInvalidInputError("registro referenciado inexistente")
		}
	}
	return err
}
