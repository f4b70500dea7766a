package reconcile

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostdesk-reconciliation/internal/domain/order"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testOrder(code string, price int64, status order.Status, createdAt time.Time) *order.Order {
	return &order.Order{
		ID:        uuid.New(),
		Code:      code,
		Price:     price,
		Status:    status,
		Partner:   "boostpal",
		CreatedAt: createdAt,
	}
}

func TestAnalyze_Classification(t *testing.T) {
	orders := []*order.Order{
		testOrder("PAL00012", 150000, order.StatusCompleted, baseTime),
		testOrder("PAL00013", 250000, order.StatusCompletedVerify, baseTime.Add(24*time.Hour)),
	}
	claims := ParseLedger("PAL00012 150\nPAL00013 200")

	result, err := Analyze(claims, orders)
	require.NoError(t, err)

	require.Len(t, result.Matched, 1)
	assert.Equal(t, "PAL00012", result.Matched[0].Claim.Code)
	assert.Equal(t, int64(150000), result.TotalPayable)

	require.Len(t, result.PriceMismatch, 1)
	assert.Equal(t, "PAL00013", result.PriceMismatch[0].Claim.Code)
	assert.Equal(t, int64(200000), result.PriceMismatch[0].Claim.Price)
	assert.Equal(t, int64(250000), result.PriceMismatch[0].SystemPrice)

	assert.Empty(t, result.NotInSystem)
	assert.Empty(t, result.MissingInPartner)
}

func TestAnalyze_NoAnchorMatches(t *testing.T) {
	orders := []*order.Order{
		testOrder("PAL00012", 150000, order.StatusCompleted, baseTime),
	}
	claims := ParseLedger("PAL99999 100")

	result, err := Analyze(claims, orders)
	assert.ErrorIs(t, err, ErrNoAnchorMatches)
	assert.Nil(t, result, "no partial result on abort")
}

func TestAnalyze_NotInSystem(t *testing.T) {
	orders := []*order.Order{
		testOrder("PAL00012", 150000, order.StatusCompleted, baseTime),
	}
	claims := ParseLedger("PAL00012 150\nPAL99999 100")

	result, err := Analyze(claims, orders)
	require.NoError(t, err)

	require.Len(t, result.NotInSystem, 1)
	assert.Equal(t, "PAL99999", result.NotInSystem[0].Code)
}

func TestAnalyze_MissingInPartner(t *testing.T) {
	orders := []*order.Order{
		testOrder("PAL00012", 150000, order.StatusCompleted, baseTime),
		testOrder("PAL00013", 200000, order.StatusCompleted, baseTime.Add(time.Hour)),
		testOrder("PAL00014", 300000, order.StatusCompleted, baseTime.Add(2*time.Hour)),
	}
	claims := ParseLedger("PAL00012 150\nPAL00014 300")

	result, err := Analyze(claims, orders)
	require.NoError(t, err)

	require.Len(t, result.MissingInPartner, 1)
	assert.Equal(t, "PAL00013", result.MissingInPartner[0].Code)
}

func TestAnalyze_WindowInference(t *testing.T) {
	// PAL00015 sits outside the window spanned by the anchors and must not
	// surface as missing.
	orders := []*order.Order{
		testOrder("PAL00012", 150000, order.StatusCompleted, baseTime),
		testOrder("PAL00013", 200000, order.StatusCompleted, baseTime.Add(48*time.Hour)),
		testOrder("PAL00015", 100000, order.StatusCompleted, baseTime.Add(96*time.Hour)),
	}
	claims := ParseLedger("PAL00012 150\nPAL00013 200")

	result, err := Analyze(claims, orders)
	require.NoError(t, err)

	assert.Equal(t, baseTime, result.From)
	assert.Equal(t, baseTime.Add(48*time.Hour), result.To)
	assert.Len(t, result.Matched, 2)
	assert.Empty(t, result.MissingInPartner)
}

func TestAnalyze_WindowBoundsInclusive(t *testing.T) {
	orders := []*order.Order{
		testOrder("PAL00012", 150000, order.StatusCompleted, baseTime),
		testOrder("PAL00013", 200000, order.StatusCompleted, baseTime.Add(48*time.Hour)),
		testOrder("PAL00014", 300000, order.StatusCompleted, baseTime), // same instant as lower bound
	}
	claims := ParseLedger("PAL00012 150\nPAL00013 200")

	result, err := Analyze(claims, orders)
	require.NoError(t, err)

	require.Len(t, result.MissingInPartner, 1)
	assert.Equal(t, "PAL00014", result.MissingInPartner[0].Code)
}

func TestAnalyze_SettledOrdersNeverActionable(t *testing.T) {
	paid := testOrder("PAL00012", 150000, order.StatusDonePaid, baseTime)
	anchor := testOrder("PAL00013", 200000, order.StatusCompleted, baseTime.Add(time.Hour))
	paidUnclaimed := testOrder("PAL00014", 300000, order.StatusDonePaid, baseTime.Add(30*time.Minute))
	orders := []*order.Order{paid, anchor, paidUnclaimed}

	// PAL00012 matches on price, PAL00013 anchors the window. The settled
	// order must land in no bucket despite the exact price match, and the
	// settled unclaimed order must not show up as missing.
	claims := ParseLedger("PAL00012 150\nPAL00013 200")

	result, err := Analyze(claims, orders)
	require.NoError(t, err)

	require.Len(t, result.Matched, 1)
	assert.Equal(t, "PAL00013", result.Matched[0].Claim.Code)
	assert.Empty(t, result.PriceMismatch)
	assert.Empty(t, result.NotInSystem)
	assert.Empty(t, result.MissingInPartner)
}

func TestAnalyze_IneligibleOrdersIgnored(t *testing.T) {
	orders := []*order.Order{
		testOrder("PAL00012", 150000, order.StatusInProgress, baseTime),
	}
	claims := ParseLedger("PAL00012 150")

	_, err := Analyze(claims, orders)
	assert.ErrorIs(t, err, ErrNoAnchorMatches,
		"an in-progress order must never anchor a reconciliation")
}

func TestAnalyze_DuplicateClaimsFirstWins(t *testing.T) {
	orders := []*order.Order{
		testOrder("PAL00012", 150000, order.StatusCompleted, baseTime),
	}
	claims := ParseLedger("PAL00012 150\nPAL00012 160\nPAL00012 150")

	result, err := Analyze(claims, orders)
	require.NoError(t, err)

	require.Len(t, result.Matched, 1)
	assert.Equal(t, int64(150000), result.Matched[0].Claim.Price)
	assert.Empty(t, result.PriceMismatch)
	assert.Equal(t, 2, result.DuplicateClaims)
}

func TestAnalyze_ClaimsPartitionExactly(t *testing.T) {
	orders := []*order.Order{
		testOrder("PAL00012", 150000, order.StatusCompleted, baseTime),
		testOrder("PAL00013", 250000, order.StatusCompleted, baseTime.Add(time.Hour)),
	}
	claims := ParseLedger("PAL00012 150\nPAL00013 200\nPAL99999 100")

	result, err := Analyze(claims, orders)
	require.NoError(t, err)

	total := len(result.Matched) + len(result.PriceMismatch) + len(result.NotInSystem)
	assert.Equal(t, len(claims), total, "every claim lands in exactly one bucket")

	for _, o := range result.MissingInPartner {
		for _, c := range claims {
			assert.NotEqual(t, c.Code, o.Code)
		}
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	orders := []*order.Order{
		testOrder("PAL00012", 150000, order.StatusCompleted, baseTime),
		testOrder("PAL00013", 250000, order.StatusCompleted, baseTime.Add(time.Hour)),
		testOrder("PAL00014", 300000, order.StatusCompleted, baseTime.Add(30*time.Minute)),
	}
	claims := ParseLedger("PAL00012 150\nPAL00013 200")

	first, err := Analyze(claims, orders)
	require.NoError(t, err)
	second, err := Analyze(claims, orders)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
