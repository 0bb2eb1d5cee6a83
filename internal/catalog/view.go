// Package catalog derives filtered, sorted views over an in-memory
// product set. View is a pure function: it never mutates its input and
// applying it twice with the same options yields the same result.
package catalog

import (
	"sort"
	"strings"

	"github.com/omkar2446/LootDukan/internal/domain"
)

const (
	SortNewest    = "newest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
)

// Options selects and orders products. Zero values mean "no filter";
// Sort defaults to SortNewest.
type Options struct {
	Search      string
	Store       string
	Category    string
	MinDiscount int
	Sort        string
}

func View(products []*domain.Product, opts Options) []*domain.Product {
	result := make([]*domain.Product, 0, len(products))

	search := strings.ToLower(strings.TrimSpace(opts.Search))
	for _, p := range products {
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if opts.Store != "" && p.StoreName != opts.Store {
			continue
		}
		if opts.Category != "" && p.Category != opts.Category {
			continue
		}
		if opts.MinDiscount > 0 && p.DiscountPercent < opts.MinDiscount {
			continue
		}
		result = append(result, p)
	}

	switch opts.Sort {
	case SortPriceLow:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].DiscountedPrice < result[j].DiscountedPrice
		})
	case SortPriceHigh:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].DiscountedPrice > result[j].DiscountedPrice
		})
	default:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		})
	}

	return result
}

func matchesSearch(p *domain.Product, search string) bool {
	return strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.StoreName), search) ||
		strings.Contains(strings.ToLower(p.Category), search)
}
