package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/omkar2446/LootDukan/internal/config"
	"github.com/omkar2446/LootDukan/internal/domain"
	apperrors "github.com/omkar2446/LootDukan/pkg/errors"
	"github.com/omkar2446/LootDukan/pkg/logger"
)

const gatewaySecret = "gateway-secret"

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func newPaymentFixture(baseURL string) (PaymentService, *fakePaymentRepo, *fakeProductRepo, *recordingAudit) {
	paymentRepo := &fakePaymentRepo{}
	productRepo := newFakeProductRepo()
	audit := &recordingAudit{}
	svc := NewPaymentService(paymentRepo, productRepo, audit, config.RazorpayConfig{
		KeyID:      "rzp_test_key",
		KeySecret:  gatewaySecret,
		BaseURL:    baseURL,
		ListingFee: 50,
	}, logger.New("error"))
	return svc, paymentRepo, productRepo, audit
}

func TestVerifySignature(t *testing.T) {
	orderID, paymentID := "order_123", "pay_456"
	good := sign(gatewaySecret, orderID, paymentID)

	if !VerifySignature(gatewaySecret, orderID, paymentID, good) {
		t.Fatal("valid signature rejected")
	}
	if VerifySignature(gatewaySecret, orderID, paymentID, "deadbeef") {
		t.Fatal("forged signature accepted")
	}
	if VerifySignature("wrong-secret", orderID, paymentID, good) {
		t.Fatal("signature accepted under the wrong secret")
	}
	if VerifySignature(gatewaySecret, "order_999", paymentID, good) {
		t.Fatal("signature accepted for a different order")
	}
}

func TestVerifyAndPublishRejectsBadSignature(t *testing.T) {
	svc, paymentRepo, productRepo, audit := newPaymentFixture("")
	sellerID := uuid.New()

	_, err := svc.VerifyAndPublish(context.Background(), sellerID, "order_1", "pay_1", "forged",
		&ListingDraft{Name: "Thing", OriginalPrice: 100, DiscountedPrice: 80, Category: "Misc"})
	if !errors.Is(err, apperrors.ErrInvalidSignature) {
		t.Fatalf("got %v, want ErrInvalidSignature", err)
	}

	if len(productRepo.products) != 0 {
		t.Fatal("rejected payment still published a product")
	}
	if len(paymentRepo.payments) != 0 {
		t.Fatal("rejected payment was recorded as completed")
	}
	event, ok := audit.last()
	if !ok || event.eventType != domain.EventTypePaymentRejected {
		t.Fatalf("expected a payment-rejected audit event, got %+v", event)
	}
}

func TestVerifyAndPublishRequiresAllFields(t *testing.T) {
	svc, _, _, _ := newPaymentFixture("")

	_, err := svc.VerifyAndPublish(context.Background(), uuid.New(), "", "pay_1", "sig",
		&ListingDraft{Name: "Thing"})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("got %v, want ErrBadRequest", err)
	}
}

func TestVerifyAndPublishCreatesApprovedListing(t *testing.T) {
	svc, paymentRepo, productRepo, audit := newPaymentFixture("")
	sellerID := uuid.New()
	orderID, paymentID := "order_7", "pay_7"

	product, err := svc.VerifyAndPublish(context.Background(), sellerID, orderID, paymentID,
		sign(gatewaySecret, orderID, paymentID),
		&ListingDraft{
			Name:            "Bluetooth Speaker",
			OriginalPrice:   1000,
			DiscountedPrice: 750,
			Category:        "Electronics",
			StoreName:       "SoundHut",
		})
	if err != nil {
		t.Fatalf("verify and publish: %v", err)
	}

	if product.Status != domain.ProductStatusApproved {
		t.Fatalf("product status = %q, want approved", product.Status)
	}
	if product.SellerID == nil || *product.SellerID != sellerID {
		t.Fatal("product not attributed to the paying seller")
	}
	if product.DiscountPercent != 25 {
		t.Fatalf("discount percent = %d, want 25", product.DiscountPercent)
	}

	stored, err := productRepo.GetByID(context.Background(), product.ID)
	if err != nil {
		t.Fatalf("stored product: %v", err)
	}
	if stored.Status != domain.ProductStatusApproved {
		t.Fatal("stored product is not approved")
	}

	if len(paymentRepo.payments) != 1 {
		t.Fatalf("recorded %d payments, want 1", len(paymentRepo.payments))
	}
	payment := paymentRepo.payments[0]
	if payment.OrderID != orderID || payment.Status != domain.PaymentStatusCompleted {
		t.Fatalf("payment record: %+v", payment)
	}

	event, ok := audit.last()
	if !ok || event.eventType != domain.EventTypePaymentVerified {
		t.Fatalf("expected a payment-verified audit event, got %+v", event)
	}
}

func TestCreateOrderSendsListingFeeInPaise(t *testing.T) {
	var gotAmount int64
	var gotAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/orders" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		gotAuth = ok && user == "rzp_test_key" && pass == gatewaySecret

		var body struct {
			Amount   int64  `json:"amount"`
			Currency string `json:"currency"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode order request: %v", err)
		}
		gotAmount = body.Amount
		if body.Currency != "INR" {
			t.Errorf("currency = %q", body.Currency)
		}

		json.NewEncoder(w).Encode(domain.GatewayOrder{
			ID: "order_new", Amount: body.Amount, Currency: body.Currency, Status: "created",
		})
	}))
	defer server.Close()

	svc, _, _, _ := newPaymentFixture(server.URL)

	order, err := svc.CreateOrder(context.Background())
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.ID != "order_new" {
		t.Fatalf("order id = %q", order.ID)
	}
	if gotAmount != 5000 {
		t.Fatalf("amount = %d paise, want 5000", gotAmount)
	}
	if !gotAuth {
		t.Fatal("request missing gateway credentials")
	}
}

func TestCreateOrderGatewayFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc, _, _, _ := newPaymentFixture(server.URL)

	if _, err := svc.CreateOrder(context.Background()); !errors.Is(err, apperrors.ErrUpstream) {
		t.Fatalf("got %v, want ErrUpstream", err)
	}
}
