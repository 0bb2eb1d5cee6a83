package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/omkar2446/LootDukan/internal/config"
	"github.com/omkar2446/LootDukan/internal/domain"
	"github.com/omkar2446/LootDukan/internal/repository"
	apperrors "github.com/omkar2446/LootDukan/pkg/errors"
	"github.com/omkar2446/LootDukan/pkg/logger"
)

// ListingDraft is the seller-provided product that goes live once its
// payment clears verification.
type ListingDraft struct {
	Name            string  `json:"name" binding:"required"`
	Description     *string `json:"description"`
	ImageURL        *string `json:"image_url"`
	ImageURL2       *string `json:"image_url2"`
	ImageURL3       *string `json:"image_url3"`
	OriginalPrice   float64 `json:"original_price" binding:"required"`
	DiscountedPrice float64 `json:"discounted_price" binding:"required"`
	Category        string  `json:"category" binding:"required"`
	StoreName       string  `json:"store_name"`
}

type PaymentService interface {
	// CreateOrder opens an order with the payment gateway for the
	// listing fee; the client hands the order id to the checkout widget.
	CreateOrder(ctx context.Context) (*domain.GatewayOrder, error)
	// VerifyAndPublish checks the gateway signature for
	// (orderID, paymentID) and, on success, publishes the listing as an
	// approved product and records the payment.
	VerifyAndPublish(ctx context.Context, sellerID uuid.UUID, orderID, paymentID, signature string, draft *ListingDraft) (*domain.Product, error)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	productRepo repository.ProductRepository
	audit       AuditService
	cfg         config.RazorpayConfig
	httpClient  *http.Client
	log         logger.Logger
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	productRepo repository.ProductRepository,
	audit AuditService,
	cfg config.RazorpayConfig,
	log logger.Logger,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		productRepo: productRepo,
		audit:       audit,
		cfg:         cfg,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		log:         log,
	}
}

type orderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

func (s *paymentService) CreateOrder(ctx context.Context) (*domain.GatewayOrder, error) {
	// The gateway takes the amount in paise.
	payload, err := json.Marshal(orderRequest{
		Amount:   int64(s.cfg.ListingFee * 100),
		Currency: "INR",
		Receipt:  fmt.Sprintf("receipt_%d", time.Now().UnixMilli()),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/v1/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.SetBasicAuth(s.cfg.KeyID, s.cfg.KeySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.Error("Payment gateway unreachable", "error", err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.Error("Payment gateway rejected order", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: gateway returned %d", apperrors.ErrUpstream, resp.StatusCode)
	}

	order := &domain.GatewayOrder{}
	if err := json.NewDecoder(resp.Body).Decode(order); err != nil {
		return nil, fmt.Errorf("%w: decode order response: %v", apperrors.ErrUpstream, err)
	}
	return order, nil
}

func (s *paymentService) VerifyAndPublish(ctx context.Context, sellerID uuid.UUID, orderID, paymentID, signature string, draft *ListingDraft) (*domain.Product, error) {
	if orderID == "" || paymentID == "" || signature == "" {
		return nil, fmt.Errorf("%w: missing payment fields", apperrors.ErrBadRequest)
	}

	if !VerifySignature(s.cfg.KeySecret, orderID, paymentID, signature) {
		s.audit.Record(ctx, &sellerID, domain.EventTypePaymentRejected, nil, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, apperrors.ErrInvalidSignature
	}

	discountPercent := 0
	if draft.OriginalPrice > 0 && draft.DiscountedPrice <= draft.OriginalPrice {
		discountPercent = int((draft.OriginalPrice - draft.DiscountedPrice) / draft.OriginalPrice * 100)
	}

	product := &domain.Product{
		ID:              uuid.New(),
		SellerID:        &sellerID,
		Name:            draft.Name,
		Description:     draft.Description,
		ImageURL:        draft.ImageURL,
		ImageURL2:       draft.ImageURL2,
		ImageURL3:       draft.ImageURL3,
		OriginalPrice:   draft.OriginalPrice,
		DiscountedPrice: draft.DiscountedPrice,
		DiscountPercent: discountPercent,
		Category:        draft.Category,
		StoreName:       draft.StoreName,
		Status:          domain.ProductStatusApproved,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		ID:        uuid.New(),
		SellerID:  sellerID,
		OrderID:   orderID,
		PaymentID: paymentID,
		AmountINR: s.cfg.ListingFee,
		Status:    domain.PaymentStatusCompleted,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		// The listing is already live; losing the payment record is not
		// worth failing the request over.
		s.log.Warn("Failed to record payment", "error", err, "order_id", orderID)
	}

	s.audit.Record(ctx, &sellerID, domain.EventTypePaymentVerified, &product.ID, map[string]interface{}{
		"order_id":   orderID,
		"payment_id": paymentID,
	})

	return product, nil
}

// VerifySignature checks the gateway checkout signature:
// hex(HMAC-SHA256(secret, orderID + "|" + paymentID)) compared in
// constant time.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
