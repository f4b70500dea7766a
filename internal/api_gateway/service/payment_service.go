package service

import (
	"context"

	"github.com/boostdesk-reconciliation/internal/domain/payment"
)

// PaymentServiceImpl implements the PaymentService interface
type PaymentServiceImpl struct {
	paymentRepo payment.Repository
}

// NewPaymentService creates a new payment service
func NewPaymentService(paymentRepo payment.Repository) PaymentService {
	return &PaymentServiceImpl{
		paymentRepo: paymentRepo,
	}
}

// GetPaymentsByPartner retrieves paginated payment confirmations for a partner
// Returns confirmations, total count, and any error
func (s *PaymentServiceImpl) GetPaymentsByPartner(ctx context.Context, partnerUsername string, page, perPage int) ([]*payment.Confirmation, int64, error) {
	offset := (page - 1) * perPage

	confirmations, err := s.paymentRepo.GetByPartner(ctx, partnerUsername, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.paymentRepo.CountByPartner(ctx, partnerUsername)
	if err != nil {
		return nil, 0, err
	}

	return confirmations, total, nil
}
