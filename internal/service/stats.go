package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/omkar2446/LootDukan/internal/domain"
	"github.com/omkar2446/LootDukan/internal/repository"
	"github.com/omkar2446/LootDukan/pkg/logger"
)

type StatsService interface {
	SellerStats(ctx context.Context, sellerID uuid.UUID) (*domain.SellerStats, error)
}

type statsService struct {
	statsRepo   repository.StatsRepository
	requestRepo repository.ChatRequestRepository
	quota       QuotaService
	log         logger.Logger
}

func NewStatsService(
	statsRepo repository.StatsRepository,
	requestRepo repository.ChatRequestRepository,
	quota QuotaService,
	log logger.Logger,
) StatsService {
	return &statsService{
		statsRepo:   statsRepo,
		requestRepo: requestRepo,
		quota:       quota,
		log:         log,
	}
}

func (s *statsService) SellerStats(ctx context.Context, sellerID uuid.UUID) (*domain.SellerStats, error) {
	listings, err := s.statsRepo.CountListingsByStatus(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	pendingRequests, err := s.requestRepo.CountForSeller(ctx, sellerID, domain.ChatRequestPending)
	if err != nil {
		return nil, err
	}

	activeChats, err := s.requestRepo.CountForSeller(ctx, sellerID, domain.ChatRequestAccepted)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	sentToday, err := s.statsRepo.CountMessagesSentOn(ctx, sellerID, today)
	if err != nil {
		return nil, err
	}

	remaining, err := s.quota.Remaining(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	return &domain.SellerStats{
		ApprovedListings:    listings[domain.ProductStatusApproved],
		PendingListings:     listings[domain.ProductStatusPending],
		RejectedListings:    listings[domain.ProductStatusRejected],
		PendingChatRequests: pendingRequests,
		ActiveChats:         activeChats,
		MessagesSentToday:   sentToday,
		MessagesRemaining:   remaining,
	}, nil
}
