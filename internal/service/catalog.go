package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/omkar2446/LootDukan/internal/catalog"
	"github.com/omkar2446/LootDukan/internal/domain"
	"github.com/omkar2446/LootDukan/internal/repository"
	apperrors "github.com/omkar2446/LootDukan/pkg/errors"
	"github.com/omkar2446/LootDukan/pkg/logger"
)

type CatalogService interface {
	// Browse returns approved products filtered and sorted per opts.
	Browse(ctx context.Context, opts catalog.Options) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*domain.Product, error)
	// CreateAffiliateDeal adds an admin-curated storefront deal; it goes
	// live immediately.
	CreateAffiliateDeal(ctx context.Context, actorID uuid.UUID, deal *AffiliateDealDraft) (*domain.Product, error)
	// SetStatus approves or rejects a pending listing (admin only flow;
	// the handler gates on role).
	SetStatus(ctx context.Context, actorID, productID uuid.UUID, status string) error
}

type AffiliateDealDraft struct {
	Name            string  `json:"name" binding:"required"`
	ImageURL        *string `json:"image_url"`
	OriginalPrice   float64 `json:"original_price" binding:"required"`
	DiscountedPrice float64 `json:"discounted_price" binding:"required"`
	Category        string  `json:"category" binding:"required"`
	StoreName       string  `json:"store_name" binding:"required"`
	AffiliateLink   string  `json:"affiliate_link" binding:"required"`
}

type catalogService struct {
	productRepo repository.ProductRepository
	audit       AuditService
	log         logger.Logger
}

func NewCatalogService(productRepo repository.ProductRepository, audit AuditService, log logger.Logger) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		audit:       audit,
		log:         log,
	}
}

func (s *catalogService) Browse(ctx context.Context, opts catalog.Options) ([]*domain.Product, error) {
	products, err := s.productRepo.ListByStatus(ctx, domain.ProductStatusApproved)
	if err != nil {
		return nil, err
	}
	return catalog.View(products, opts), nil
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *catalogService) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*domain.Product, error) {
	return s.productRepo.ListBySeller(ctx, sellerID)
}

func (s *catalogService) CreateAffiliateDeal(ctx context.Context, actorID uuid.UUID, deal *AffiliateDealDraft) (*domain.Product, error) {
	if strings.TrimSpace(deal.Name) == "" {
		return nil, fmt.Errorf("%w: product name is required", apperrors.ErrBadRequest)
	}
	if deal.DiscountedPrice > deal.OriginalPrice {
		return nil, fmt.Errorf("%w: discounted price above original price", apperrors.ErrBadRequest)
	}

	discountPercent := 0
	if deal.OriginalPrice > 0 {
		discountPercent = int((deal.OriginalPrice - deal.DiscountedPrice) / deal.OriginalPrice * 100)
	}

	product := &domain.Product{
		ID:              uuid.New(),
		Name:            strings.TrimSpace(deal.Name),
		ImageURL:        deal.ImageURL,
		OriginalPrice:   deal.OriginalPrice,
		DiscountedPrice: deal.DiscountedPrice,
		DiscountPercent: discountPercent,
		Category:        deal.Category,
		StoreName:       deal.StoreName,
		AffiliateLink:   &deal.AffiliateLink,
		Status:          domain.ProductStatusApproved,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *catalogService) SetStatus(ctx context.Context, actorID, productID uuid.UUID, status string) error {
	if status != domain.ProductStatusApproved && status != domain.ProductStatusRejected {
		return fmt.Errorf("%w: status must be approved or rejected", apperrors.ErrBadRequest)
	}

	if err := s.productRepo.UpdateStatus(ctx, productID, status); err != nil {
		return err
	}

	eventType := domain.EventTypeProductApproved
	if status == domain.ProductStatusRejected {
		eventType = domain.EventTypeProductRejected
	}
	s.audit.Record(ctx, &actorID, eventType, &productID, nil)
	return nil
}
