package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/omkar2446/LootDukan/internal/domain"
	"github.com/omkar2446/LootDukan/internal/hub"
	"github.com/omkar2446/LootDukan/internal/repository"
	apperrors "github.com/omkar2446/LootDukan/pkg/errors"
	"github.com/omkar2446/LootDukan/pkg/logger"
)

const maxMessageLength = 2000

type ChatService interface {
	// Request creates a pending chat request for (buyer, seller,
	// product), or returns the existing one unchanged.
	Request(ctx context.Context, buyerID, sellerID, productID uuid.UUID) (*domain.ChatRequest, error)
	// Respond lets the request's seller accept or reject a pending
	// request. Terminal states never transition again.
	Respond(ctx context.Context, requestID, actorID uuid.UUID, decision string) (*domain.ChatRequest, error)
	ListForUser(ctx context.Context, userID uuid.UUID) (*domain.RequestsByStatus, error)
	// OpenChannel authorizes the caller against the request and returns
	// the ordered message history.
	OpenChannel(ctx context.Context, requestID, callerID uuid.UUID) ([]*domain.Message, error)
	// Send appends a message to an accepted request's log, consuming one
	// unit of the sender's daily quota, and publishes it to live
	// subscribers.
	Send(ctx context.Context, requestID, senderID uuid.UUID, body string) (*domain.Message, error)
	// Subscribe attaches a live message subscription after the same
	// checks as OpenChannel.
	Subscribe(ctx context.Context, requestID, callerID uuid.UUID) (*hub.Subscription, error)
}

type chatService struct {
	requestRepo repository.ChatRequestRepository
	messageRepo repository.MessageRepository
	productRepo repository.ProductRepository
	quota       QuotaService
	hub         *hub.Hub
	audit       AuditService
	log         logger.Logger
}

func NewChatService(
	requestRepo repository.ChatRequestRepository,
	messageRepo repository.MessageRepository,
	productRepo repository.ProductRepository,
	quota QuotaService,
	messageHub *hub.Hub,
	audit AuditService,
	log logger.Logger,
) ChatService {
	return &chatService{
		requestRepo: requestRepo,
		messageRepo: messageRepo,
		productRepo: productRepo,
		quota:       quota,
		hub:         messageHub,
		audit:       audit,
		log:         log,
	}
}

func (s *chatService) Request(ctx context.Context, buyerID, sellerID, productID uuid.UUID) (*domain.ChatRequest, error) {
	if buyerID == sellerID {
		return nil, apperrors.ErrInvalidActor
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("product lookup: %w", err)
	}
	if product.SellerID == nil || *product.SellerID != sellerID {
		return nil, fmt.Errorf("%w: product does not belong to seller", apperrors.ErrNotFound)
	}

	request := &domain.ChatRequest{
		ID:        uuid.New(),
		BuyerID:   buyerID,
		SellerID:  sellerID,
		ProductID: productID,
		Status:    domain.ChatRequestPending,
		CreatedAt: time.Now(),
	}

	stored, err := s.requestRepo.Upsert(ctx, request)
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *chatService) Respond(ctx context.Context, requestID, actorID uuid.UUID, decision string) (*domain.ChatRequest, error) {
	if decision != domain.ChatRequestAccepted && decision != domain.ChatRequestRejected {
		return nil, fmt.Errorf("%w: decision must be accepted or rejected", apperrors.ErrBadRequest)
	}

	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.SellerID != actorID {
		return nil, apperrors.ErrUnauthorized
	}
	if request.Status != domain.ChatRequestPending {
		return nil, apperrors.ErrInvalidState
	}

	if err := s.requestRepo.UpdateStatus(ctx, requestID, decision); err != nil {
		return nil, err
	}
	request.Status = decision

	eventType := domain.EventTypeChatRequestAccepted
	if decision == domain.ChatRequestRejected {
		eventType = domain.EventTypeChatRequestRejected
	}
	s.audit.Record(ctx, &actorID, eventType, &requestID, map[string]interface{}{
		"buyer_id":   request.BuyerID,
		"product_id": request.ProductID,
	})

	return request, nil
}

func (s *chatService) ListForUser(ctx context.Context, userID uuid.UUID) (*domain.RequestsByStatus, error) {
	requests, err := s.requestRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	partitioned := &domain.RequestsByStatus{
		Accepted: []*domain.ChatRequest{},
		Pending:  []*domain.ChatRequest{},
		Rejected: []*domain.ChatRequest{},
	}
	for _, request := range requests {
		switch request.Status {
		case domain.ChatRequestAccepted:
			partitioned.Accepted = append(partitioned.Accepted, request)
		case domain.ChatRequestRejected:
			partitioned.Rejected = append(partitioned.Rejected, request)
		default:
			partitioned.Pending = append(partitioned.Pending, request)
		}
	}
	return partitioned, nil
}

func (s *chatService) OpenChannel(ctx context.Context, requestID, callerID uuid.UUID) ([]*domain.Message, error) {
	if _, err := s.authorizeChannel(ctx, requestID, callerID); err != nil {
		return nil, err
	}
	return s.messageRepo.ListByRequest(ctx, requestID)
}

func (s *chatService) Send(ctx context.Context, requestID, senderID uuid.UUID, body string) (*domain.Message, error) {
	if _, err := s.authorizeChannel(ctx, requestID, senderID); err != nil {
		return nil, err
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: message body is empty", apperrors.ErrBadRequest)
	}
	if len(body) > maxMessageLength {
		return nil, fmt.Errorf("%w: message too long", apperrors.ErrBadRequest)
	}

	// Quota first: a denied send must not insert anything.
	if _, err := s.quota.CheckAndIncrement(ctx, senderID); err != nil {
		return nil, err
	}

	message := &domain.Message{
		RequestID: requestID,
		SenderID:  senderID,
		Body:      body,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	s.hub.Publish(message)
	return message, nil
}

func (s *chatService) Subscribe(ctx context.Context, requestID, callerID uuid.UUID) (*hub.Subscription, error) {
	if _, err := s.authorizeChannel(ctx, requestID, callerID); err != nil {
		return nil, err
	}
	return s.hub.Subscribe(requestID), nil
}

func (s *chatService) authorizeChannel(ctx context.Context, requestID, callerID uuid.UUID) (*domain.ChatRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !request.IsParty(callerID) {
		return nil, apperrors.ErrUnauthorized
	}
	if request.Status != domain.ChatRequestAccepted {
		return nil, apperrors.ErrChannelNotReady
	}
	return request, nil
}
