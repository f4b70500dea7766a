package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/boostdesk-reconciliation/internal/domain/order"
	"github.com/boostdesk-reconciliation/internal/domain/partner"
	"github.com/boostdesk-reconciliation/internal/domain/shared"
	"github.com/boostdesk-reconciliation/internal/reconcile"
)

type MockPartnerRepository struct {
	mock.Mock
}

func (m *MockPartnerRepository) List(ctx context.Context) ([]*partner.Partner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*partner.Partner), args.Error(1)
}

func (m *MockPartnerRepository) GetByUsername(ctx context.Context, username string) (*partner.Partner, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Partner), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) GetByPartner(ctx context.Context, p string) ([]*order.Order, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status order.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockBatchCommitter struct {
	mock.Mock
}

func (m *MockBatchCommitter) Commit(ctx context.Context, partnerID string, selectedCodes []string, matched []reconcile.Match) (*reconcile.Outcome, error) {
	args := m.Called(ctx, partnerID, selectedCodes, matched)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reconcile.Outcome), args.Error(1)
}

type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) Publish(ctx context.Context, key string, value interface{}) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

var testCreatedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testPartner() *partner.Partner {
	return &partner.Partner{ID: uuid.New(), Username: "boostpal", Name: "BoostPal Studio"}
}

func testOrders() []*order.Order {
	return []*order.Order{
		{ID: uuid.New(), Code: "PAL00012", Price: 150000, Status: order.StatusCompleted, Partner: "boostpal", CreatedAt: testCreatedAt},
		{ID: uuid.New(), Code: "PAL00013", Price: 250000, Status: order.StatusCompleted, Partner: "boostpal", CreatedAt: testCreatedAt.Add(time.Hour)},
	}
}

func TestReconciliationServiceImpl_Analyze(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockPartners := new(MockPartnerRepository)
		mockOrders := new(MockOrderRepository)
		svc := NewReconciliationService(logger, mockPartners, mockOrders, new(MockBatchCommitter), new(MockMessagePublisher))

		mockPartners.On("GetByUsername", ctx, "boostpal").Return(testPartner(), nil).Once()
		mockOrders.On("GetByPartner", ctx, "boostpal").Return(testOrders(), nil).Once()

		result, err := svc.Analyze(ctx, "boostpal", "PAL00012 150\nPAL00013 200")
		require.NoError(t, err)
		require.Len(t, result.Matched, 1)
		assert.Equal(t, "PAL00012", result.Matched[0].Claim.Code)
		require.Len(t, result.PriceMismatch, 1)
		assert.Equal(t, int64(250000), result.PriceMismatch[0].SystemPrice)

		mockPartners.AssertExpectations(t)
		mockOrders.AssertExpectations(t)
	})

	t.Run("PartnerNotFound", func(t *testing.T) {
		mockPartners := new(MockPartnerRepository)
		mockOrders := new(MockOrderRepository)
		svc := NewReconciliationService(logger, mockPartners, mockOrders, new(MockBatchCommitter), new(MockMessagePublisher))

		mockPartners.On("GetByUsername", ctx, "ghost").
			Return(nil, partner.ErrPartnerNotFound{Username: "ghost"}).Once()

		result, err := svc.Analyze(ctx, "ghost", "PAL00012 150")
		assert.Nil(t, result)
		assert.ErrorIs(t, err, partner.ErrPartnerNotFound{})
		mockOrders.AssertNotCalled(t, "GetByPartner", mock.Anything, mock.Anything)
	})

	t.Run("NoAnchorMatches", func(t *testing.T) {
		mockPartners := new(MockPartnerRepository)
		mockOrders := new(MockOrderRepository)
		svc := NewReconciliationService(logger, mockPartners, mockOrders, new(MockBatchCommitter), new(MockMessagePublisher))

		mockPartners.On("GetByUsername", ctx, "boostpal").Return(testPartner(), nil).Once()
		mockOrders.On("GetByPartner", ctx, "boostpal").Return(testOrders(), nil).Once()

		result, err := svc.Analyze(ctx, "boostpal", "PAL99999 100")
		assert.Nil(t, result)
		assert.ErrorIs(t, err, reconcile.ErrNoAnchorMatches)
	})

	t.Run("OrderFetchFails", func(t *testing.T) {
		mockPartners := new(MockPartnerRepository)
		mockOrders := new(MockOrderRepository)
		svc := NewReconciliationService(logger, mockPartners, mockOrders, new(MockBatchCommitter), new(MockMessagePublisher))

		dbErr := errors.New("mongo unavailable")
		mockPartners.On("GetByUsername", ctx, "boostpal").Return(testPartner(), nil).Once()
		mockOrders.On("GetByPartner", ctx, "boostpal").Return(nil, dbErr).Once()

		result, err := svc.Analyze(ctx, "boostpal", "PAL00012 150")
		assert.Nil(t, result)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestReconciliationServiceImpl_Commit(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	ctx := context.Background()

	t.Run("SuccessPublishesEvent", func(t *testing.T) {
		mockPartners := new(MockPartnerRepository)
		mockOrders := new(MockOrderRepository)
		mockCommitter := new(MockBatchCommitter)
		mockProducer := new(MockMessagePublisher)
		svc := NewReconciliationService(logger, mockPartners, mockOrders, mockCommitter, mockProducer)

		outcome := &reconcile.Outcome{Committed: 1, TotalAmount: 150000, BatchTime: time.Now().UTC()}

		mockPartners.On("GetByUsername", ctx, "boostpal").Return(testPartner(), nil).Once()
		mockOrders.On("GetByPartner", ctx, "boostpal").Return(testOrders(), nil).Once()
		mockCommitter.On("Commit", ctx, "boostpal", []string{"PAL00012"}, mock.MatchedBy(func(matched []reconcile.Match) bool {
			return len(matched) == 1 && matched[0].Claim.Code == "PAL00012"
		})).Return(outcome, nil).Once()
		mockProducer.On("Publish", ctx, "boostpal", mock.MatchedBy(func(v interface{}) bool {
			event, ok := v.(*shared.BatchCommittedEvent)
			return ok && event.Partner == "boostpal" && event.Committed == 1 &&
				event.TotalAmount == 150000 && event.CorrelationID == "corr-1"
		})).Return(nil).Once()

		got, err := svc.Commit(ctx, "boostpal", "PAL00012 150\nPAL00013 200", []string{"PAL00012"}, "corr-1")
		require.NoError(t, err)
		assert.Equal(t, outcome, got)

		mockCommitter.AssertExpectations(t)
		mockProducer.AssertExpectations(t)
	})

	t.Run("EmptySelectionRejectedBeforeAnalysis", func(t *testing.T) {
		mockPartners := new(MockPartnerRepository)
		svc := NewReconciliationService(logger, mockPartners, new(MockOrderRepository), new(MockBatchCommitter), new(MockMessagePublisher))

		got, err := svc.Commit(ctx, "boostpal", "PAL00012 150", nil, "")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, reconcile.ErrNoSelection)
		mockPartners.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
	})

	t.Run("PublishFailureDoesNotFailCommit", func(t *testing.T) {
		mockPartners := new(MockPartnerRepository)
		mockOrders := new(MockOrderRepository)
		mockCommitter := new(MockBatchCommitter)
		mockProducer := new(MockMessagePublisher)
		svc := NewReconciliationService(logger, mockPartners, mockOrders, mockCommitter, mockProducer)

		outcome := &reconcile.Outcome{Committed: 1, TotalAmount: 150000, BatchTime: time.Now().UTC()}

		mockPartners.On("GetByUsername", ctx, "boostpal").Return(testPartner(), nil).Once()
		mockOrders.On("GetByPartner", ctx, "boostpal").Return(testOrders(), nil).Once()
		mockCommitter.On("Commit", ctx, "boostpal", []string{"PAL00012"}, mock.Anything).Return(outcome, nil).Once()
		mockProducer.On("Publish", ctx, "boostpal", mock.Anything).Return(errors.New("broker down")).Once()

		got, err := svc.Commit(ctx, "boostpal", "PAL00012 150", []string{"PAL00012"}, "")
		require.NoError(t, err)
		assert.Equal(t, outcome, got)
	})

	t.Run("PartialFailurePropagated", func(t *testing.T) {
		mockPartners := new(MockPartnerRepository)
		mockOrders := new(MockOrderRepository)
		mockCommitter := new(MockBatchCommitter)
		mockProducer := new(MockMessagePublisher)
		svc := NewReconciliationService(logger, mockPartners, mockOrders, mockCommitter, mockProducer)

		partialOutcome := &reconcile.Outcome{Committed: 1, TotalAmount: 150000}
		partialErr := reconcile.PartialCommitError{
			Code:      "PAL00013",
			Stage:     reconcile.StageOrderUpdate,
			Committed: 1,
			Err:       errors.New("connection reset"),
		}

		mockPartners.On("GetByUsername", ctx, "boostpal").Return(testPartner(), nil).Once()
		mockOrders.On("GetByPartner", ctx, "boostpal").Return(testOrders(), nil).Once()
		mockCommitter.On("Commit", ctx, "boostpal", mock.Anything, mock.Anything).
			Return(partialOutcome, partialErr).Once()

		got, err := svc.Commit(ctx, "boostpal", "PAL00012 150\nPAL00013 250", []string{"PAL00012", "PAL00013"}, "")

		var partial reconcile.PartialCommitError
		require.ErrorAs(t, err, &partial)
		assert.Equal(t, "PAL00013", partial.Code)
		assert.Equal(t, partialOutcome, got)
		mockProducer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})
}
