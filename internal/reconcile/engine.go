package reconcile

import (
	"errors"
	"time"

	"github.com/boostdesk-reconciliation/internal/domain/order"
)

// ErrNoAnchorMatches indicates zero overlap between the parsed claims and the
// partner's eligible orders. Without at least one anchor the reporting window
// cannot be inferred, so analysis produces no result at all.
var ErrNoAnchorMatches = errors.New("no orders match the partner ledger")

// Match pairs a verified claim with its order record
type Match struct {
	Claim Claim        `json:"claim"`
	Order *order.Order `json:"order"`
}

// PriceMismatch pairs a claim with an order whose price disagrees
type PriceMismatch struct {
	Claim       Claim        `json:"claim"`
	SystemPrice int64        `json:"system_price"`
	Order       *order.Order `json:"order"`
}

// Result is the classified outcome of one analysis run. It is built fresh on
// every run and never mutated afterwards; a new run replaces it wholesale.
type Result struct {
	Matched          []Match         `json:"matched"`
	PriceMismatch    []PriceMismatch `json:"price_mismatch"`
	NotInSystem      []Claim         `json:"not_in_system"`
	MissingInPartner []*order.Order  `json:"missing_in_partner"`

	// Inferred reporting window, bounded by the earliest and latest anchor
	// order creation times.
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	// TotalPayable is the sum of matched claim prices.
	TotalPayable int64 `json:"total_payable"`

	// DuplicateClaims counts claims dropped because an earlier claim already
	// carried the same code.
	DuplicateClaims int `json:"duplicate_claims"`
}

// Analyze classifies a partner's claims against the full set of that
// partner's orders. It is a pure function over the two collections: identical
// inputs always produce an identical result, and nothing is cached between
// runs.
//
// The algorithm is two-pass. The first pass establishes the reporting window
// from exact code matches between claims and eligible orders (the anchors);
// the second pass classifies every claim within that window. The second pass
// never influences the window.
func Analyze(claims []Claim, orders []*order.Order) (*Result, error) {
	claims, duplicates := dedupeClaims(claims)

	var eligible []*order.Order
	for _, o := range orders {
		if o.Eligible() {
			eligible = append(eligible, o)
		}
	}

	claimed := make(map[string]bool, len(claims))
	for _, c := range claims {
		claimed[c.Code] = true
	}

	// First pass: anchor on eligible orders whose code appears among the
	// claims and take the window spanned by their creation times.
	var from, to time.Time
	anchored := false
	for _, o := range eligible {
		if !claimed[o.Code] {
			continue
		}
		if !anchored || o.CreatedAt.Before(from) {
			from = o.CreatedAt
		}
		if !anchored || o.CreatedAt.After(to) {
			to = o.CreatedAt
		}
		anchored = true
	}
	if !anchored {
		return nil, ErrNoAnchorMatches
	}

	inRange := make(map[string]*order.Order)
	for _, o := range eligible {
		if !o.CreatedAt.Before(from) && !o.CreatedAt.After(to) {
			inRange[o.Code] = o
		}
	}

	// Second pass: classify each claim against the in-window orders. Orders
	// already settled are terminal and surface in no bucket.
	result := &Result{
		From:            from,
		To:              to,
		DuplicateClaims: duplicates,
	}
	for _, c := range claims {
		found, ok := inRange[c.Code]
		if !ok {
			result.NotInSystem = append(result.NotInSystem, c)
			continue
		}
		if found.Settled() {
			continue
		}
		if found.Price == c.Price {
			result.Matched = append(result.Matched, Match{Claim: c, Order: found})
			result.TotalPayable += c.Price
		} else {
			result.PriceMismatch = append(result.PriceMismatch, PriceMismatch{
				Claim:       c,
				SystemPrice: found.Price,
				Order:       found,
			})
		}
	}

	for _, o := range eligible {
		if _, ok := inRange[o.Code]; !ok {
			continue
		}
		if !claimed[o.Code] && !o.Settled() {
			result.MissingInPartner = append(result.MissingInPartner, o)
		}
	}

	return result, nil
}

// dedupeClaims keeps the first claim per code, preserving input order, and
// reports how many later duplicates were dropped.
func dedupeClaims(claims []Claim) ([]Claim, int) {
	seen := make(map[string]bool, len(claims))
	deduped := claims[:0:0]
	duplicates := 0
	for _, c := range claims {
		if seen[c.Code] {
			duplicates++
			continue
		}
		seen[c.Code] = true
		deduped = append(deduped, c)
	}
	return deduped, duplicates
}
