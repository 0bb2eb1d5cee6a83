package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/omkar2446/LootDukan/internal/domain"
	apperrors "github.com/omkar2446/LootDukan/pkg/errors"
)

type triple struct {
	buyer, seller, product uuid.UUID
}

type fakeChatRequestRepo struct {
	mu       sync.Mutex
	byID     map[uuid.UUID]*domain.ChatRequest
	byTriple map[triple]uuid.UUID
}

func newFakeChatRequestRepo() *fakeChatRequestRepo {
	return &fakeChatRequestRepo{
		byID:     make(map[uuid.UUID]*domain.ChatRequest),
		byTriple: make(map[triple]uuid.UUID),
	}
}

func (r *fakeChatRequestRepo) Upsert(_ context.Context, request *domain.ChatRequest) (*domain.ChatRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := triple{request.BuyerID, request.SellerID, request.ProductID}
	if existing, ok := r.byTriple[key]; ok {
		copied := *r.byID[existing]
		return &copied, nil
	}
	stored := *request
	r.byID[request.ID] = &stored
	r.byTriple[key] = request.ID
	copied := stored
	return &copied, nil
}

func (r *fakeChatRequestRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.ChatRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *request
	return &copied, nil
}

func (r *fakeChatRequestRepo) ListForUser(_ context.Context, userID uuid.UUID) ([]*domain.ChatRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var requests []*domain.ChatRequest
	for _, request := range r.byID {
		if request.BuyerID == userID || request.SellerID == userID {
			copied := *request
			requests = append(requests, &copied)
		}
	}
	return requests, nil
}

func (r *fakeChatRequestRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.byID[id]
	if !ok || request.Status != domain.ChatRequestPending {
		return apperrors.ErrInvalidState
	}
	request.Status = status
	return nil
}

func (r *fakeChatRequestRepo) CountForSeller(_ context.Context, sellerID uuid.UUID, status string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, request := range r.byID {
		if request.SellerID == sellerID && request.Status == status {
			count++
		}
	}
	return count, nil
}

// setStatus bypasses the pending guard, for test setup only.
func (r *fakeChatRequestRepo) setStatus(id uuid.UUID, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[id].Status = status
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	nextID   int64
	messages []*domain.Message
}

func (r *fakeMessageRepo) Create(_ context.Context, message *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	message.ID = r.nextID
	message.CreatedAt = time.Now()
	copied := *message
	r.messages = append(r.messages, &copied)
	return nil
}

func (r *fakeMessageRepo) ListByRequest(_ context.Context, requestID uuid.UUID) ([]*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var messages []*domain.Message
	for _, message := range r.messages {
		if message.RequestID == requestID {
			copied := *message
			messages = append(messages, &copied)
		}
	}
	return messages, nil
}

func (r *fakeMessageRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*domain.Product
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[uuid.UUID]*domain.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (r *fakeProductRepo) Create(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *product
	return &copied, nil
}

func (r *fakeProductRepo) ListByStatus(_ context.Context, status string) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var products []*domain.Product
	for _, product := range r.products {
		if product.Status == status {
			copied := *product
			products = append(products, &copied)
		}
	}
	return products, nil
}

func (r *fakeProductRepo) ListBySeller(_ context.Context, sellerID uuid.UUID) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var products []*domain.Product
	for _, product := range r.products {
		if product.SellerID != nil && *product.SellerID == sellerID {
			copied := *product
			products = append(products, &copied)
		}
	}
	return products, nil
}

func (r *fakeProductRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	product.Status = status
	return nil
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments []*domain.Payment
}

func (r *fakePaymentRepo) Create(_ context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *payment
	r.payments = append(r.payments, &copied)
	return nil
}

// fakeQuota enforces a fixed daily limit in memory.
type fakeQuota struct {
	mu    sync.Mutex
	limit int
	used  map[uuid.UUID]int
}

func newFakeQuota(limit int) *fakeQuota {
	return &fakeQuota{limit: limit, used: make(map[uuid.UUID]int)}
}

func (q *fakeQuota) CheckAndIncrement(_ context.Context, userID uuid.UUID) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.used[userID] >= q.limit {
		return q.used[userID], apperrors.ErrRateLimited
	}
	q.used[userID]++
	return q.used[userID], nil
}

func (q *fakeQuota) Remaining(_ context.Context, userID uuid.UUID) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.limit - q.used[userID], nil
}

func (q *fakeQuota) Limit() int { return q.limit }

type auditEvent struct {
	eventType string
	actorID   *uuid.UUID
}

type recordingAudit struct {
	mu     sync.Mutex
	events []auditEvent
}

func (a *recordingAudit) Record(_ context.Context, actorID *uuid.UUID, eventType string, _ *uuid.UUID, _ map[string]interface{}) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, auditEvent{eventType: eventType, actorID: actorID})
}

func (a *recordingAudit) last() (auditEvent, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.events) == 0 {
		return auditEvent{}, false
	}
	return a.events[len(a.events)-1], true
}
