package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/omkar2446/LootDukan/internal/domain"
	"github.com/omkar2446/LootDukan/internal/repository"
	"github.com/omkar2446/LootDukan/pkg/logger"
)

// AuditService records who did what. Failures are logged, never
// propagated: audit must not fail the operation it describes.
type AuditService interface {
	Record(ctx context.Context, actorID *uuid.UUID, eventType string, entityID *uuid.UUID, payload map[string]interface{})
}

type auditService struct {
	auditRepo repository.AuditRepository
	log       logger.Logger
}

func NewAuditService(auditRepo repository.AuditRepository, log logger.Logger) AuditService {
	return &auditService{auditRepo: auditRepo, log: log}
}

func (s *auditService) Record(ctx context.Context, actorID *uuid.UUID, eventType string, entityID *uuid.UUID, payload map[string]interface{}) {
	entry := &domain.AuditLog{
		ActorID:   actorID,
		EventType: eventType,
		EntityID:  entityID,
		Payload:   payload,
	}
	if err := s.auditRepo.Record(ctx, entry); err != nil {
		s.log.Warn("Failed to record audit entry", "error", err, "event_type", eventType)
	}
}
