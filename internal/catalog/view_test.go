package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/omkar2446/LootDukan/internal/domain"
)

func product(name, store, category string, discount int, price float64, created time.Time) *domain.Product {
	return &domain.Product{
		ID:              uuid.New(),
		Name:            name,
		StoreName:       store,
		Category:        category,
		DiscountPercent: discount,
		DiscountedPrice: price,
		OriginalPrice:   price * 2,
		Status:          domain.ProductStatusApproved,
		CreatedAt:       created,
	}
}

func sampleProducts() []*domain.Product {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []*domain.Product{
		product("Wireless Earbuds", "Amazon", "Electronics", 40, 1499, base),
		product("Smart Watch", "Amazon", "Electronics", 25, 2999, base.Add(1*time.Hour)),
		product("Running Shoes", "Flipkart", "Fashion", 60, 899, base.Add(2*time.Hour)),
		product("Denim Jacket", "Flipkart", "Fashion", 30, 1299, base.Add(3*time.Hour)),
		product("Cotton Kurta", "Flipkart", "Fashion", 50, 499, base.Add(4*time.Hour)),
	}
}

func TestViewFilterByStore(t *testing.T) {
	got := View(sampleProducts(), Options{Store: "Amazon"})
	if len(got) != 2 {
		t.Fatalf("expected 2 Amazon products, got %d", len(got))
	}
	for _, p := range got {
		if p.StoreName != "Amazon" {
			t.Errorf("unexpected store %q in filtered view", p.StoreName)
		}
	}
}

func TestViewFilterByCategory(t *testing.T) {
	got := View(sampleProducts(), Options{Category: "Fashion"})
	if len(got) != 3 {
		t.Fatalf("expected 3 Fashion products, got %d", len(got))
	}
}

func TestViewSearchIsCaseInsensitive(t *testing.T) {
	got := View(sampleProducts(), Options{Search: "WIRELESS"})
	if len(got) != 1 || got[0].Name != "Wireless Earbuds" {
		t.Fatalf("search WIRELESS: got %d results", len(got))
	}

	// Search also matches store and category names.
	got = View(sampleProducts(), Options{Search: "flipkart"})
	if len(got) != 3 {
		t.Fatalf("search flipkart: expected 3 results, got %d", len(got))
	}
	got = View(sampleProducts(), Options{Search: "electronics"})
	if len(got) != 2 {
		t.Fatalf("search electronics: expected 2 results, got %d", len(got))
	}
}

func TestViewMinDiscount(t *testing.T) {
	got := View(sampleProducts(), Options{MinDiscount: 40})
	if len(got) != 3 {
		t.Fatalf("expected 3 products with >= 40%% off, got %d", len(got))
	}
	for _, p := range got {
		if p.DiscountPercent < 40 {
			t.Errorf("product %q has %d%% discount, below cutoff", p.Name, p.DiscountPercent)
		}
	}
}

func TestViewSortNewestIsDefault(t *testing.T) {
	got := View(sampleProducts(), Options{})
	if len(got) != 5 {
		t.Fatalf("expected all 5 products, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.After(got[i-1].CreatedAt) {
			t.Fatalf("products not in newest-first order at index %d", i)
		}
	}
}

func TestViewSortByPrice(t *testing.T) {
	got := View(sampleProducts(), Options{Sort: SortPriceLow})
	for i := 1; i < len(got); i++ {
		if got[i].DiscountedPrice < got[i-1].DiscountedPrice {
			t.Fatalf("price-low: out of order at index %d", i)
		}
	}

	got = View(sampleProducts(), Options{Sort: SortPriceHigh})
	for i := 1; i < len(got); i++ {
		if got[i].DiscountedPrice > got[i-1].DiscountedPrice {
			t.Fatalf("price-high: out of order at index %d", i)
		}
	}
}

func TestViewCombinedFilters(t *testing.T) {
	got := View(sampleProducts(), Options{Store: "Flipkart", MinDiscount: 50, Sort: SortPriceLow})
	if len(got) != 2 {
		t.Fatalf("expected 2 products, got %d", len(got))
	}
	if got[0].Name != "Cotton Kurta" || got[1].Name != "Running Shoes" {
		t.Fatalf("unexpected order: %q, %q", got[0].Name, got[1].Name)
	}
}

func TestViewDoesNotMutateInput(t *testing.T) {
	products := sampleProducts()
	original := make([]*domain.Product, len(products))
	copy(original, products)

	View(products, Options{Sort: SortPriceHigh})

	for i := range products {
		if products[i] != original[i] {
			t.Fatalf("input slice reordered at index %d", i)
		}
	}
}

func TestViewIsIdempotent(t *testing.T) {
	products := sampleProducts()
	opts := Options{Store: "Flipkart", Sort: SortPriceLow}

	first := View(products, opts)
	second := View(products, opts)

	if len(first) != len(second) {
		t.Fatalf("result sizes differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("results diverge at index %d", i)
		}
	}
}
