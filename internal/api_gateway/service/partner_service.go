package service

import (
	"context"

	"github.com/boostdesk-reconciliation/internal/domain/partner"
)

// PartnerServiceImpl implements the PartnerService interface
type PartnerServiceImpl struct {
	partnerRepo partner.Repository
}

// NewPartnerService creates a new partner service
func NewPartnerService(partnerRepo partner.Repository) PartnerService {
	return &PartnerServiceImpl{
		partnerRepo: partnerRepo,
	}
}

// ListPartners retrieves the full partner roster
func (s *PartnerServiceImpl) ListPartners(ctx context.Context) ([]*partner.Partner, error) {
	return s.partnerRepo.List(ctx)
}
