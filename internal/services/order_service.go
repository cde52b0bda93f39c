package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"saudemart/internal/models"
	"saudemart/internal/repositories"

	"github.com/google/uuid"
)

// CancelOrderResult is the count-based summary a cascade always returns.
// Cancelled < Total is a valid outcome, not an error: it means some vouchers
// were already terminal or settled when the cascade reached them.
type CancelOrderResult struct {
	GuiasCanceladas int    `json:"guiasCanceladas"`
	TotalGuias      int    `json:"totalGuias"`
	SaleStatus      string `json:"sale_status"`
}

// OrderServiceInterface is the cancellation/reversal orchestrator. An
// "order" is the grouping of all vouchers derived from one sale.
type OrderServiceInterface interface {
	CancelOrder(ctx context.Context, tenantID, saleID uuid.UUID, actorRole string) (*CancelOrderResult, error)
	ReverseVoucher(ctx context.Context, tenantID, voucherID uuid.UUID, actorRole string) (*models.Voucher, error)
	MarkSaleReversed(ctx context.Context, tenantID, saleID uuid.UUID, actorRole string) (*models.Sale, error)
	FindRelatedVouchers(ctx context.Context, tenantID, voucherID uuid.UUID) ([]*VoucherDetails, error)
}

type orderService struct {
	saleRepo       repositories.SaleRepository
	voucherRepo    repositories.VoucherRepository
	voucherService VoucherServiceInterface
}

// NewOrderService creates a new order orchestration service instance
func NewOrderService(saleRepo repositories.SaleRepository, voucherRepo repositories.VoucherRepository, voucherService VoucherServiceInterface) OrderServiceInterface {
	return &orderService{
		saleRepo:       saleRepo,
		voucherRepo:    voucherRepo,
		voucherService: voucherService,
	}
}

// CancelOrder cancels every still-cancellable voucher of a sale, each in its
// own commit, and settles the sale status afterwards. The per-voucher loop is
// deliberately not one transaction: a partial cascade is an expected business
// outcome that must be reported, not rolled back.
func (s *orderService) CancelOrder(ctx context.Context, tenantID, saleID uuid.UUID, actorRole string) (*CancelOrderResult, error) {
	if actorRole != models.RoleUnit {
		return nil, fmt.Errorf("role %s cannot cancel orders: %w", actorRole, ErrPermissionDenied)
	}

	sale, err := s.saleRepo.GetByID(ctx, tenantID, saleID)
	if err != nil {
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if sale == nil {
		return nil, fmt.Errorf("sale %s: %w", saleID, ErrOrderNotFound)
	}

	vouchers, err := s.voucherRepo.ListBySale(ctx, tenantID, saleID)
	if err != nil {
		return nil, fmt.Errorf("list related vouchers: %w", err)
	}

	now := time.Now()
	cancelled := 0
	for _, v := range vouchers {
		// The caller may have given up; stop between iterations but still
		// report what already committed.
		if ctx.Err() != nil {
			break
		}
		if !models.VoucherCancellable(models.EffectiveVoucherStatus(v, now)) {
			continue
		}
		if _, err := s.voucherService.ApplyTransition(ctx, tenantID, v.ID, models.VoucherStatusCancelled, actorRole); err != nil {
			// Already terminal or moved concurrently: recorded in the
			// counts, never escalated.
			if errors.Is(err, ErrInvalidTransition) {
				log.Printf("cancel order %s: voucher %s skipped: %v", saleID, v.ID, err)
				continue
			}
			log.Printf("cancel order %s: voucher %s failed: %v", saleID, v.ID, err)
			continue
		}
		cancelled++
	}

	// The cancellations above already committed, so the summary reaches the
	// caller no matter what happens to the settle step. Settlement runs
	// detached from the caller's context so an interrupted cascade can still
	// record the sale outcome.
	saleStatus, err := s.settleSaleAfterCascade(context.WithoutCancel(ctx), sale)
	if err != nil {
		log.Printf("cancel order %s: settle after cascade: %v", saleID, err)
		saleStatus = sale.Status
	}

	return &CancelOrderResult{
		GuiasCanceladas: cancelled,
		TotalGuias:      len(vouchers),
		SaleStatus:      saleStatus,
	}, nil
}

// settleSaleAfterCascade moves the sale to cancelled unless money already
// moved on one of its vouchers. A paid voucher must be reversed explicitly
// by an operator first; the cascade never reverses settlements silently.
func (s *orderService) settleSaleAfterCascade(ctx context.Context, sale *models.Sale) (string, error) {
	if sale.Status != models.SaleStatusCompleted {
		return sale.Status, nil
	}

	vouchers, err := s.voucherRepo.ListBySale(ctx, sale.TenantID, sale.ID)
	if err != nil {
		return "", fmt.Errorf("reload related vouchers: %w", err)
	}
	for _, v := range vouchers {
		if v.Status == models.VoucherStatusPaid {
			// Settled money outstanding; the sale stays completed until
			// ReverseVoucher + MarkSaleReversed settle it.
			return sale.Status, nil
		}
	}

	swapped, err := s.saleRepo.UpdateStatusCAS(ctx, sale.TenantID, sale.ID, models.SaleStatusCompleted, models.SaleStatusCancelled)
	if err != nil {
		return "", fmt.Errorf("update sale status: %w", err)
	}
	if !swapped {
		// A concurrent cascade settled the sale; read back what it decided.
		current, err := s.saleRepo.GetByID(ctx, sale.TenantID, sale.ID)
		if err != nil || current == nil {
			return sale.Status, nil
		}
		return current.Status, nil
	}
	return models.SaleStatusCancelled, nil
}

// ReverseVoucher reverses a single paid voucher. The parent sale is left
// untouched; marking the sale reversed is a separate operator action.
func (s *orderService) ReverseVoucher(ctx context.Context, tenantID, voucherID uuid.UUID, actorRole string) (*models.Voucher, error) {
	return s.voucherService.ApplyTransition(ctx, tenantID, voucherID, models.VoucherStatusReversed, actorRole)
}

// MarkSaleReversed is the explicit operator step that closes a sale whose
// settled vouchers have all been reversed.
func (s *orderService) MarkSaleReversed(ctx context.Context, tenantID, saleID uuid.UUID, actorRole string) (*models.Sale, error) {
	if actorRole != models.RoleUnit {
		return nil, fmt.Errorf("role %s cannot reverse sales: %w", actorRole, ErrPermissionDenied)
	}

	sale, err := s.saleRepo.GetByID(ctx, tenantID, saleID)
	if err != nil {
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if sale == nil {
		return nil, fmt.Errorf("sale %s: %w", saleID, ErrOrderNotFound)
	}
	if sale.Status != models.SaleStatusCompleted {
		return nil, fmt.Errorf("sale is %s: %w", sale.Status, ErrInvalidState)
	}

	vouchers, err := s.voucherRepo.ListBySale(ctx, tenantID, saleID)
	if err != nil {
		return nil, fmt.Errorf("list related vouchers: %w", err)
	}

	reversedCount := 0
	for _, v := range vouchers {
		if v.PaidAt != nil && v.Status != models.VoucherStatusReversed {
			return nil, fmt.Errorf("voucher %s is still %s: %w", v.ID, v.Status, ErrInvalidState)
		}
		if v.Status == models.VoucherStatusReversed {
			reversedCount++
		}
	}
	if reversedCount == 0 {
		return nil, fmt.Errorf("no reversed vouchers on sale %s: %w", saleID, ErrInvalidState)
	}

	swapped, err := s.saleRepo.UpdateStatusCAS(ctx, tenantID, saleID, models.SaleStatusCompleted, models.SaleStatusReversed)
	if err != nil {
		return nil, fmt.Errorf("update sale status: %w", err)
	}
	if !swapped {
		return nil, fmt.Errorf("sale %s changed concurrently: %w", saleID, ErrInvalidState)
	}

	sale.Status = models.SaleStatusReversed
	sale.UpdatedAt = time.Now()
	return sale, nil
}

// FindRelatedVouchers resolves a voucher's parent sale through its sale item
// and returns the full sibling set, so callers can preview the cascade
// before confirming a cancellation.
func (s *orderService) FindRelatedVouchers(ctx context.Context, tenantID, voucherID uuid.UUID) ([]*VoucherDetails, error) {
	voucher, err := s.voucherRepo.GetByID(ctx, tenantID, voucherID)
	if err != nil {
		return nil, fmt.Errorf("get voucher: %w", err)
	}
	if voucher == nil {
		return nil, fmt.Errorf("voucher %s: %w", voucherID, ErrNotFound)
	}

	item, err := s.saleRepo.GetItemByID(ctx, tenantID, voucher.SaleItemID)
	if err != nil {
		return nil, fmt.Errorf("get sale item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("sale item %s: %w", voucher.SaleItemID, ErrNotFound)
	}

	siblings, err := s.voucherRepo.ListBySale(ctx, tenantID, item.SaleID)
	if err != nil {
		return nil, fmt.Errorf("list related vouchers: %w", err)
	}

	now := time.Now()
	details := make([]*VoucherDetails, 0, len(siblings))
	for _, v := range siblings {
		details = append(details, voucherDetails(v, now))
	}
	return details, nil
}
