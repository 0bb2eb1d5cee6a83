package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omkar2446/LootDukan/internal/domain"
	apperrors "github.com/omkar2446/LootDukan/pkg/errors"
	"github.com/omkar2446/LootDukan/pkg/logger"
)

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListByStatus(ctx context.Context, status string) ([]*domain.Product, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*domain.Product, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type productRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewProductRepository(db *pgxpool.Pool, log logger.Logger) ProductRepository {
	return &productRepository{db: db, log: log}
}

const productColumns = `
	id, seller_id, name, description, image_url, image_url2, image_url3,
	original_price, discounted_price, discount_percent, category, store_name,
	affiliate_link, status, created_at, updated_at
`

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (
			id, seller_id, name, description, image_url, image_url2, image_url3,
			original_price, discounted_price, discount_percent, category, store_name,
			affiliate_link, status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		product.ID, product.SellerID, product.Name, product.Description,
		product.ImageURL, product.ImageURL2, product.ImageURL3,
		product.OriginalPrice, product.DiscountedPrice, product.DiscountPercent,
		product.Category, product.StoreName, product.AffiliateLink,
		product.Status, product.CreatedAt, product.UpdatedAt,
	).Scan(&product.CreatedAt, &product.UpdatedAt)

	if err != nil {
		r.log.Error("Failed to create product", "error", err, "name", product.Name)
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product := &domain.Product{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&product.ID, &product.SellerID, &product.Name, &product.Description,
		&product.ImageURL, &product.ImageURL2, &product.ImageURL3,
		&product.OriginalPrice, &product.DiscountedPrice, &product.DiscountPercent,
		&product.Category, &product.StoreName, &product.AffiliateLink,
		&product.Status, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		r.log.Error("Failed to get product", "error", err, "product_id", id)
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

func (r *productRepository) ListByStatus(ctx context.Context, status string) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE status = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, status)
	if err != nil {
		r.log.Error("Failed to list products", "error", err, "status", status)
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	return r.scanProducts(rows)
}

func (r *productRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE seller_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, sellerID)
	if err != nil {
		r.log.Error("Failed to list seller products", "error", err, "seller_id", sellerID)
		return nil, fmt.Errorf("list seller products: %w", err)
	}
	defer rows.Close()

	return r.scanProducts(rows)
}

func (r *productRepository) scanProducts(rows pgx.Rows) ([]*domain.Product, error) {
	var products []*domain.Product
	for rows.Next() {
		product := &domain.Product{}
		err := rows.Scan(
			&product.ID, &product.SellerID, &product.Name, &product.Description,
			&product.ImageURL, &product.ImageURL2, &product.ImageURL3,
			&product.OriginalPrice, &product.DiscountedPrice, &product.DiscountPercent,
			&product.Category, &product.StoreName, &product.AffiliateLink,
			&product.Status, &product.CreatedAt, &product.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan product", "error", err)
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *productRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE products SET status = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		r.log.Error("Failed to update product status", "error", err, "product_id", id)
		return fmt.Errorf("update product status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
