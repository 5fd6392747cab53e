// Package listing derives the visible, ordered subset of auctions for a listing page.
package listing

import (
	"fmt"
	"sort"
	"strings"

	"tobacco-auction/internal/models"
)

// SortKey selects the listing order.
type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortEndingSoon SortKey = "ending_soon"
	SortPriceAsc   SortKey = "price_asc"
	SortPriceDesc  SortKey = "price_desc"
	SortMostBids   SortKey = "most_bids"
)

// TypeAll disables the tobacco type filter.
const TypeAll = "all"

var validSortKeys = []SortKey{SortNewest, SortEndingSoon, SortPriceAsc, SortPriceDesc, SortMostBids}

// ParseSortKey converts raw input into a SortKey. Empty input is SortNewest.
func ParseSortKey(value string) (SortKey, error) {
	if value == "" {
		return SortNewest, nil
	}
	for _, candidate := range validSortKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}

// ValidTypeFilter reports whether value is "all", empty or a known tobacco type.
func ValidTypeFilter(value string) bool {
	return value == "" || value == TypeAll || models.TobaccoType(value).IsValid()
}

// Criteria is the user-selected search, filter and sort state.
type Criteria struct {
	Search string
	Type   string
	Sort   SortKey
}

// VisibleAuctions filters all by c, then sorts the result stably by c.Sort.
// The input slice is never modified.
func VisibleAuctions(all []models.Auction, c Criteria) []models.Auction {
	term := strings.ToLower(c.Search)

	out := make([]models.Auction, 0, len(all))
	for _, a := range all {
		if matchesSearch(a, term) && matchesType(a, c.Type) {
			out = append(out, a)
		}
	}

	less := lessFunc(c.Sort)
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out
}

func matchesSearch(a models.Auction, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.Title), term) ||
		strings.Contains(strings.ToLower(a.Description), term)
}

func matchesType(a models.Auction, typeFilter string) bool {
	return typeFilter == "" || typeFilter == TypeAll || string(a.TobaccoType) == typeFilter
}

// lessFunc returns a strict ordering for key. Unknown keys sort newest first.
func lessFunc(key SortKey) func(a, b models.Auction) bool {
	switch key {
	case SortEndingSoon:
		return func(a, b models.Auction) bool { return a.EndsAt.Before(b.EndsAt) }
	case SortPriceAsc:
		return func(a, b models.Auction) bool { return a.CurrentPrice.LessThan(b.CurrentPrice) }
	case SortPriceDesc:
		return func(a, b models.Auction) bool { return a.CurrentPrice.GreaterThan(b.CurrentPrice) }
	case SortMostBids:
		return func(a, b models.Auction) bool { return a.BidsCount > b.BidsCount }
	default:
		return func(a, b models.Auction) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
}
