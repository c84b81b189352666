package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/entities"
)

const auditLogTable = "audit_logs"

type AuditRepositoryInterface interface {
	Insert(ctx context.Context, log *entities.AuditLog) error
	ListByEntity(ctx context.Context, entityType string, entityID uint64, limit int) ([]entities.AuditLog, error)
}

type AuditRepository struct {
	storage *pgxpool.Pool
}

func NewAuditRepository(storage *pgxpool.Pool) AuditRepositoryInterface {
	return &AuditRepository{storage: storage}
}

func (r *AuditRepository) Insert(ctx context.Context, log *entities.AuditLog) error {
	metadata, err := json.Marshal(log.Metadata)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, action, entity_type, entity_id, metadata)
		VALUES ($1, $2, $3, $4, $5)
	`, auditLogTable)

	_, err = r.storage.Exec(ctx, query, log.UserID, log.Action, log.EntityType, log.EntityID, metadata)
	return err
}

func (r *AuditRepository) ListByEntity(ctx context.Context, entityType string, entityID uint64, limit int) ([]entities.AuditLog, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, action, entity_type, entity_id, metadata, created_at
		FROM %s
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`, auditLogTable)

	rows, err := r.storage.Query(ctx, query, entityType, entityID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []entities.AuditLog
	for rows.Next() {
		var log entities.AuditLog
		var metadata []byte
		if err := rows.Scan(&log.ID, &log.UserID, &log.Action, &log.EntityType, &log.EntityID, &metadata, &log.CreatedAt); err != nil {
			return nil, err
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &log.Metadata); err != nil {
				return nil, err
			}
		}
		list = append(list, log)
	}
	return list, rows.Err()
}
