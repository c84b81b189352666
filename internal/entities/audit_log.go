package entities

import "time"

// Ações registradas na trilha de auditoria.
const (
	AuditCreate = "CREATE"
	AuditUpdate = "UPDATE"
	AuditDelete = "DELETE"
)

// AuditLog registra quem fez o quê. A gravação é best-effort: falha de
// auditoria nunca derruba a operação principal.
type AuditLog struct {
	ID         uint64                 `json:"id"`
	UserID     uint64                 `json:"user_id"`
	Action     string                 `json:"action"`
	EntityType string                 `json:"entity_type"`
	EntityID   uint64                 `json:"entity_id"`
	Metadata   map[string]interface{} `json:"metadata"`
	CreatedAt  time.Time              `json:"created_at"`
}
