package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/omkar2446/LootDukan/internal/repository"
	apperrors "github.com/omkar2446/LootDukan/pkg/errors"
	"github.com/omkar2446/LootDukan/pkg/logger"
)

// QuotaService caps a user's outbound chat messages per calendar day.
// The day boundary is UTC so every client sees the same reset instant.
type QuotaService interface {
	// CheckAndIncrement consumes one send from today's quota. Returns
	// ErrRateLimited, leaving the counter unchanged, once the limit is
	// reached.
	CheckAndIncrement(ctx context.Context, userID uuid.UUID) (int, error)
	Remaining(ctx context.Context, userID uuid.UUID) (int, error)
	Limit() int
}

type quotaService struct {
	quotaRepo repository.QuotaRepository
	limit     int
	now       func() time.Time
	log       logger.Logger
}

func NewQuotaService(quotaRepo repository.QuotaRepository, limit int, log logger.Logger) QuotaService {
	return &quotaService{
		quotaRepo: quotaRepo,
		limit:     limit,
		now:       time.Now,
		log:       log,
	}
}

func (s *quotaService) CheckAndIncrement(ctx context.Context, userID uuid.UUID) (int, error) {
	count, allowed, err := s.quotaRepo.CheckAndIncrement(ctx, userID, s.today(), s.limit)
	if err != nil {
		return 0, err
	}
	if !allowed {
		return count, apperrors.ErrRateLimited
	}
	return count, nil
}

func (s *quotaService) Remaining(ctx context.Context, userID uuid.UUID) (int, error) {
	count, err := s.quotaRepo.Count(ctx, userID, s.today())
	if err != nil {
		return 0, err
	}
	remaining := s.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (s *quotaService) Limit() int {
	return s.limit
}

func (s *quotaService) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
