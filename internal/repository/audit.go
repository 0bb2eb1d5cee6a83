package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omkar2446/LootDukan/internal/domain"
	"github.com/omkar2446/LootDukan/pkg/logger"
)

type AuditRepository interface {
	Record(ctx context.Context, entry *domain.AuditLog) error
}

type auditRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewAuditRepository(db *pgxpool.Pool, log logger.Logger) AuditRepository {
	return &auditRepository{db: db, log: log}
}

func (r *auditRepository) Record(ctx context.Context, entry *domain.AuditLog) error {
	payload, err := json.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	query := `
		INSERT INTO audit_logs (event_time, actor_id, event_type, entity_id, payload)
		VALUES (now(), $1, $2, $3, $4)
		RETURNING id, event_time
	`

	err = r.db.QueryRow(ctx, query,
		entry.ActorID, entry.EventType, entry.EntityID, payload,
	).Scan(&entry.ID, &entry.EventTime)

	if err != nil {
		r.log.Error("Failed to record audit entry", "error", err, "event_type", entry.EventType)
		return fmt.Errorf("record audit entry: %w", err)
	}
	return nil
}
