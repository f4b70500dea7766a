// Package reconcile implements the partner payment reconciliation core:
// parsing pasted partner ledgers, classifying them against the system's
// order records, and committing payment confirmation batches.
package reconcile

import (
	"strconv"
	"strings"

	"github.com/boostdesk-reconciliation/internal/domain/order"
)

// Claim is one (code, price) pair extracted from partner-supplied text, not
// yet verified against the system.
type Claim struct {
	Code  string `json:"code"`
	Price int64  `json:"price"` // Whole currency units
}

// ParseLedger extracts claims from a raw partner ledger paste. Each line
// contributes at most one claim: the first whitespace-separated token must be
// an order code (PAL + at least five digits, any case), the second must
// contain at least one digit once separators are stripped.
//
// Partner ledgers report prices in thousands, so the parsed digit value is
// scaled by 1000 to reach the order price unit. Lines that do not satisfy the
// format are skipped without error; pasted input is expected to be noisy.
// Duplicate codes are kept as-is — deduplication is the engine's concern.
func ParseLedger(text string) []Claim {
	var claims []Claim

	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		code := strings.ToUpper(fields[0])
		if !order.ValidCode(code) {
			continue
		}

		digits := stripNonDigits(fields[1])
		if digits == "" {
			continue
		}
		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			continue
		}

		claims = append(claims, Claim{Code: code, Price: n * 1000})
	}

	return claims
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
