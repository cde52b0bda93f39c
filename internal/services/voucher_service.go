package services

import (
	"context"
	"fmt"
	"time"

	"saudemart/internal/models"
	"saudemart/internal/repositories"

	"github.com/google/uuid"
)

// VoucherDetails is a voucher as callers should see it: stored fields plus
// the time-derived status and expiration warning, computed at the read
// boundary and never persisted.
type VoucherDetails struct {
	*models.Voucher
	EffectiveStatus string `json:"effective_status"`
	DaysToExpire    int    `json:"days_to_expire"`
	NearExpiration  bool   `json:"near_expiration"`
}

// VoucherServiceInterface applies single-voucher transitions and reads.
type VoucherServiceInterface interface {
	ApplyTransition(ctx context.Context, tenantID, voucherID uuid.UUID, target, actorRole string) (*models.Voucher, error)
	GetVoucher(ctx context.Context, tenantID, voucherID uuid.UUID) (*VoucherDetails, error)
	GetVoucherByAuthCode(ctx context.Context, tenantID uuid.UUID, authCode string) (*VoucherDetails, error)
	ListVouchersByProvider(ctx context.Context, tenantID, providerID uuid.UUID, limit, offset int) ([]*VoucherDetails, error)
}

type voucherService struct {
	voucherRepo repositories.VoucherRepository
}

// NewVoucherService creates a new voucher service instance
func NewVoucherService(voucherRepo repositories.VoucherRepository) VoucherServiceInterface {
	return &voucherService{voucherRepo: voucherRepo}
}

// ApplyTransition validates the requested transition against the voucher's
// effective status and the role gate, then commits it with a compare-and-swap
// keyed on the status it validated. A concurrent transition that wins the
// race makes the swap miss, which reads exactly like a stale transition.
// This never touches the parent sale.
func (s *voucherService) ApplyTransition(ctx context.Context, tenantID, voucherID uuid.UUID, target, actorRole string) (*models.Voucher, error) {
	voucher, err := s.voucherRepo.GetByID(ctx, tenantID, voucherID)
	if err != nil {
		return nil, fmt.Errorf("get voucher: %w", err)
	}
	if voucher == nil {
		return nil, fmt.Errorf("voucher %s: %w", voucherID, ErrNotFound)
	}

	now := time.Now()
	effective := models.EffectiveVoucherStatus(voucher, now)

	if !models.CanTransitionVoucher(effective, target) {
		return nil, fmt.Errorf("%s -> %s: %w", effective, target, ErrInvalidTransition)
	}
	if !models.RoleCanTransition(effective, target, actorRole) {
		return nil, fmt.Errorf("role %s on %s -> %s: %w", actorRole, effective, target, ErrPermissionDenied)
	}

	swapped, err := s.voucherRepo.UpdateStatusCAS(ctx, tenantID, voucherID, effective, target, now)
	if err != nil {
		return nil, fmt.Errorf("update voucher status: %w", err)
	}
	if !swapped {
		// Someone moved the voucher first; report it as if their status had
		// been current all along.
		return nil, fmt.Errorf("voucher %s changed concurrently: %w", voucherID, ErrInvalidTransition)
	}

	voucher.Status = target
	voucher.UpdatedAt = now
	switch target {
	case models.VoucherStatusRealized:
		voucher.RealizedAt = &now
	case models.VoucherStatusInvoiced:
		voucher.InvoicedAt = &now
	case models.VoucherStatusPaid:
		voucher.PaidAt = &now
	}
	return voucher, nil
}

// GetVoucher retrieves a voucher with its effective status applied
func (s *voucherService) GetVoucher(ctx context.Context, tenantID, voucherID uuid.UUID) (*VoucherDetails, error) {
	voucher, err := s.voucherRepo.GetByID(ctx, tenantID, voucherID)
	if err != nil {
		return nil, fmt.Errorf("get voucher: %w", err)
	}
	if voucher == nil {
		return nil, fmt.Errorf("voucher %s: %w", voucherID, ErrNotFound)
	}
	return voucherDetails(voucher, time.Now()), nil
}

// GetVoucherByAuthCode resolves a voucher from its authentication code
func (s *voucherService) GetVoucherByAuthCode(ctx context.Context, tenantID uuid.UUID, authCode string) (*VoucherDetails, error) {
	voucher, err := s.voucherRepo.GetByAuthCode(ctx, tenantID, authCode)
	if err != nil {
		return nil, fmt.Errorf("get voucher by auth code: %w", err)
	}
	if voucher == nil {
		return nil, fmt.Errorf("auth code %s: %w", authCode, ErrNotFound)
	}
	return voucherDetails(voucher, time.Now()), nil
}

// ListVouchersByProvider lists a provider's vouchers with pagination
func (s *voucherService) ListVouchersByProvider(ctx context.Context, tenantID, providerID uuid.UUID, limit, offset int) ([]*VoucherDetails, error) {
	vouchers, err := s.voucherRepo.ListByProvider(ctx, tenantID, providerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list vouchers by provider: %w", err)
	}
	now := time.Now()
	details := make([]*VoucherDetails, 0, len(vouchers))
	for _, v := range vouchers {
		details = append(details, voucherDetails(v, now))
	}
	return details, nil
}

func voucherDetails(v *models.Voucher, now time.Time) *VoucherDetails {
	return &VoucherDetails{
		Voucher:         v,
		EffectiveStatus: models.EffectiveVoucherStatus(v, now),
		DaysToExpire:    models.VoucherDaysToExpire(v.IssuedAt, now),
		NearExpiration:  models.VoucherNearExpiration(v, now),
	}
}
