package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/omkar2446/LootDukan/internal/domain"
	"github.com/omkar2446/LootDukan/internal/hub"
	apperrors "github.com/omkar2446/LootDukan/pkg/errors"
	"github.com/omkar2446/LootDukan/pkg/logger"
)

type chatFixture struct {
	chat        ChatService
	requestRepo *fakeChatRequestRepo
	messageRepo *fakeMessageRepo
	quota       *fakeQuota
	audit       *recordingAudit

	buyerID   uuid.UUID
	sellerID  uuid.UUID
	productID uuid.UUID
}

func newChatFixture(t *testing.T, dailyLimit int) *chatFixture {
	t.Helper()

	sellerID := uuid.New()
	product := &domain.Product{
		ID:       uuid.New(),
		SellerID: &sellerID,
		Name:     "Mechanical Keyboard",
		Status:   domain.ProductStatusApproved,
	}

	f := &chatFixture{
		requestRepo: newFakeChatRequestRepo(),
		messageRepo: &fakeMessageRepo{},
		quota:       newFakeQuota(dailyLimit),
		audit:       &recordingAudit{},
		buyerID:     uuid.New(),
		sellerID:    sellerID,
		productID:   product.ID,
	}

	messageHub := hub.New(logger.New("error"))
	go messageHub.Run()

	f.chat = NewChatService(
		f.requestRepo, f.messageRepo, newFakeProductRepo(product),
		f.quota, messageHub, f.audit, logger.New("error"),
	)
	return f
}

// acceptedRequest walks a request through creation and acceptance.
func (f *chatFixture) acceptedRequest(t *testing.T) *domain.ChatRequest {
	t.Helper()
	ctx := context.Background()

	request, err := f.chat.Request(ctx, f.buyerID, f.sellerID, f.productID)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	request, err = f.chat.Respond(ctx, request.ID, f.sellerID, domain.ChatRequestAccepted)
	if err != nil {
		t.Fatalf("accept request: %v", err)
	}
	return request
}

func TestRequestIsIdempotent(t *testing.T) {
	f := newChatFixture(t, 10)
	ctx := context.Background()

	first, err := f.chat.Request(ctx, f.buyerID, f.sellerID, f.productID)
	if err != nil {
		t.Fatalf("first request: %v", err)
	}
	if first.Status != domain.ChatRequestPending {
		t.Fatalf("new request status = %q", first.Status)
	}

	second, err := f.chat.Request(ctx, f.buyerID, f.sellerID, f.productID)
	if err != nil {
		t.Fatalf("repeat request: %v", err)
	}
	if second.ID != first.ID {
		t.Fatal("repeat request created a new row")
	}
}

func TestRequestDoesNotResetAcceptedStatus(t *testing.T) {
	f := newChatFixture(t, 10)
	ctx := context.Background()

	request := f.acceptedRequest(t)

	again, err := f.chat.Request(ctx, f.buyerID, f.sellerID, f.productID)
	if err != nil {
		t.Fatalf("repeat request: %v", err)
	}
	if again.ID != request.ID {
		t.Fatal("repeat request created a new row")
	}
	if again.Status != domain.ChatRequestAccepted {
		t.Fatalf("repeat request changed status to %q", again.Status)
	}
}

func TestRequestRejectsSelfChat(t *testing.T) {
	f := newChatFixture(t, 10)

	_, err := f.chat.Request(context.Background(), f.sellerID, f.sellerID, f.productID)
	if !errors.Is(err, apperrors.ErrInvalidActor) {
		t.Fatalf("got %v, want ErrInvalidActor", err)
	}
}

func TestRequestRejectsForeignProduct(t *testing.T) {
	f := newChatFixture(t, 10)

	_, err := f.chat.Request(context.Background(), f.buyerID, uuid.New(), f.productID)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound for product/seller mismatch", err)
	}
}

func TestRespondRequiresSeller(t *testing.T) {
	f := newChatFixture(t, 10)
	ctx := context.Background()

	request, err := f.chat.Request(ctx, f.buyerID, f.sellerID, f.productID)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	// The buyer cannot decide their own request.
	_, err = f.chat.Respond(ctx, request.ID, f.buyerID, domain.ChatRequestAccepted)
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized", err)
	}
}

func TestRespondRejectsUnknownDecision(t *testing.T) {
	f := newChatFixture(t, 10)

	_, err := f.chat.Respond(context.Background(), uuid.New(), f.sellerID, "maybe")
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("got %v, want ErrBadRequest", err)
	}
}

func TestRespondTerminalStateIsFinal(t *testing.T) {
	f := newChatFixture(t, 10)
	ctx := context.Background()

	request := f.acceptedRequest(t)

	_, err := f.chat.Respond(ctx, request.ID, f.sellerID, domain.ChatRequestRejected)
	if !errors.Is(err, apperrors.ErrInvalidState) {
		t.Fatalf("got %v, want ErrInvalidState", err)
	}

	stored, err := f.requestRepo.GetByID(ctx, request.ID)
	if err != nil {
		t.Fatalf("reload request: %v", err)
	}
	if stored.Status != domain.ChatRequestAccepted {
		t.Fatalf("terminal status changed to %q", stored.Status)
	}
}

func TestRespondRecordsAuditEvent(t *testing.T) {
	f := newChatFixture(t, 10)

	f.acceptedRequest(t)

	event, ok := f.audit.last()
	if !ok {
		t.Fatal("no audit event recorded")
	}
	if event.eventType != domain.EventTypeChatRequestAccepted {
		t.Fatalf("event type = %q", event.eventType)
	}
	if event.actorID == nil || *event.actorID != f.sellerID {
		t.Fatal("audit event not attributed to the seller")
	}
}

func TestSendRequiresAcceptedRequest(t *testing.T) {
	f := newChatFixture(t, 10)
	ctx := context.Background()

	request, err := f.chat.Request(ctx, f.buyerID, f.sellerID, f.productID)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	_, err = f.chat.Send(ctx, request.ID, f.buyerID, "hello?")
	if !errors.Is(err, apperrors.ErrChannelNotReady) {
		t.Fatalf("got %v, want ErrChannelNotReady", err)
	}
}

func TestSendRejectsNonParty(t *testing.T) {
	f := newChatFixture(t, 10)

	request := f.acceptedRequest(t)

	_, err := f.chat.Send(context.Background(), request.ID, uuid.New(), "intruding")
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized", err)
	}
}

func TestSendValidatesBody(t *testing.T) {
	f := newChatFixture(t, 10)
	ctx := context.Background()

	request := f.acceptedRequest(t)

	if _, err := f.chat.Send(ctx, request.ID, f.buyerID, "   "); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("blank body: got %v, want ErrBadRequest", err)
	}
	if _, err := f.chat.Send(ctx, request.ID, f.buyerID, strings.Repeat("x", maxMessageLength+1)); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("oversized body: got %v, want ErrBadRequest", err)
	}
	if f.messageRepo.count() != 0 {
		t.Fatalf("invalid sends stored %d messages", f.messageRepo.count())
	}
}

func TestSendStopsAtDailyLimit(t *testing.T) {
	f := newChatFixture(t, 2)
	ctx := context.Background()

	request := f.acceptedRequest(t)

	for i := 0; i < 2; i++ {
		if _, err := f.chat.Send(ctx, request.ID, f.buyerID, "within quota"); err != nil {
			t.Fatalf("send %d: %v", i+1, err)
		}
	}

	_, err := f.chat.Send(ctx, request.ID, f.buyerID, "one too many")
	if !errors.Is(err, apperrors.ErrRateLimited) {
		t.Fatalf("got %v, want ErrRateLimited", err)
	}
	if f.messageRepo.count() != 2 {
		t.Fatalf("denied send stored a message: %d total", f.messageRepo.count())
	}
}

func TestQuotaIsPerSender(t *testing.T) {
	f := newChatFixture(t, 1)
	ctx := context.Background()

	request := f.acceptedRequest(t)

	if _, err := f.chat.Send(ctx, request.ID, f.buyerID, "buyer's only message"); err != nil {
		t.Fatalf("buyer send: %v", err)
	}
	if _, err := f.chat.Send(ctx, request.ID, f.buyerID, "over"); !errors.Is(err, apperrors.ErrRateLimited) {
		t.Fatal("buyer should be rate limited")
	}

	// The seller's quota is independent of the buyer's.
	if _, err := f.chat.Send(ctx, request.ID, f.sellerID, "seller reply"); err != nil {
		t.Fatalf("seller send after buyer limit: %v", err)
	}
}

func TestOpenChannelReturnsHistory(t *testing.T) {
	f := newChatFixture(t, 10)
	ctx := context.Background()

	request := f.acceptedRequest(t)

	for _, body := range []string{"first", "second", "third"} {
		if _, err := f.chat.Send(ctx, request.ID, f.buyerID, body); err != nil {
			t.Fatalf("send %q: %v", body, err)
		}
	}

	history, err := f.chat.OpenChannel(ctx, request.ID, f.sellerID)
	if err != nil {
		t.Fatalf("open channel: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("history has %d messages, want 3", len(history))
	}
	if history[0].Body != "first" || history[2].Body != "third" {
		t.Fatal("history out of order")
	}
}

func TestListForUserPartitionsByStatus(t *testing.T) {
	f := newChatFixture(t, 10)
	ctx := context.Background()

	request := f.acceptedRequest(t)

	// A second buyer's request stays pending, a third gets rejected.
	pendingBuyer := uuid.New()
	if _, err := f.chat.Request(ctx, pendingBuyer, f.sellerID, f.productID); err != nil {
		t.Fatalf("pending request: %v", err)
	}
	rejected, err := f.chat.Request(ctx, uuid.New(), f.sellerID, f.productID)
	if err != nil {
		t.Fatalf("third request: %v", err)
	}
	if _, err := f.chat.Respond(ctx, rejected.ID, f.sellerID, domain.ChatRequestRejected); err != nil {
		t.Fatalf("reject request: %v", err)
	}

	partitioned, err := f.chat.ListForUser(ctx, f.sellerID)
	if err != nil {
		t.Fatalf("list for seller: %v", err)
	}
	if len(partitioned.Accepted) != 1 || partitioned.Accepted[0].ID != request.ID {
		t.Fatalf("accepted partition wrong: %d entries", len(partitioned.Accepted))
	}
	if len(partitioned.Pending) != 1 || partitioned.Pending[0].BuyerID != pendingBuyer {
		t.Fatalf("pending partition wrong: %d entries", len(partitioned.Pending))
	}
	if len(partitioned.Rejected) != 1 || partitioned.Rejected[0].ID != rejected.ID {
		t.Fatalf("rejected partition wrong: %d entries", len(partitioned.Rejected))
	}
}

func TestSubscribeRequiresAcceptedRequest(t *testing.T) {
	f := newChatFixture(t, 10)
	ctx := context.Background()

	request, err := f.chat.Request(ctx, f.buyerID, f.sellerID, f.productID)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	if _, err := f.chat.Subscribe(ctx, request.ID, f.buyerID); !errors.Is(err, apperrors.ErrChannelNotReady) {
		t.Fatalf("got %v, want ErrChannelNotReady", err)
	}
}

func TestSendDeliversToSubscriber(t *testing.T) {
	f := newChatFixture(t, 10)
	ctx := context.Background()

	request := f.acceptedRequest(t)

	sub, err := f.chat.Subscribe(ctx, request.ID, f.sellerID)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer sub.Close()

	sent, err := f.chat.Send(ctx, request.ID, f.buyerID, "live delivery")
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	got := <-sub.Events
	if got.ID != sent.ID || got.Body != "live delivery" {
		t.Fatalf("subscriber got message %d %q", got.ID, got.Body)
	}
}
