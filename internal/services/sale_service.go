package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"saudemart/internal/common"
	"saudemart/internal/models"
	"saudemart/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/gommon/random"
)

// SaleItemInput is one requested line of a sale.
type SaleItemInput struct {
	ServiceID  uuid.UUID
	ProviderID uuid.UUID
	Value      float64
}

// CreateSaleRequest carries everything needed to create a sale.
type CreateSaleRequest struct {
	ClientID      uuid.UUID
	Items         []SaleItemInput
	PaymentMethod string
	Notes         *string
}

// SaleServiceInterface creates sales and their derived vouchers.
type SaleServiceInterface interface {
	CreateSale(ctx context.Context, tenantID uuid.UUID, req *CreateSaleRequest) (*models.Sale, []*models.Voucher, error)
	CreateSaleFromQuote(ctx context.Context, tenantID uuid.UUID, quote *models.Quote, paymentMethod string) (*models.Sale, []*models.Voucher, error)
	GetSale(ctx context.Context, tenantID, saleID uuid.UUID) (*models.Sale, error)
	ListSales(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Sale, error)
}

type saleService struct {
	saleRepo repositories.SaleRepository
	refData  RefDataService
}

// NewSaleService creates a new sale service instance
func NewSaleService(saleRepo repositories.SaleRepository, refData RefDataService) SaleServiceInterface {
	return &saleService{saleRepo: saleRepo, refData: refData}
}

// CreateSale creates a completed sale, its items and one issued voucher per
// item as a single atomic unit. A partial sale is never observable.
func (s *saleService) CreateSale(ctx context.Context, tenantID uuid.UUID, req *CreateSaleRequest) (*models.Sale, []*models.Voucher, error) {
	if req == nil || len(req.Items) == 0 {
		return nil, nil, fmt.Errorf("sale requires at least one item: %w", ErrInvalidState)
	}
	if req.PaymentMethod == "" {
		return nil, nil, fmt.Errorf("payment method is required: %w", ErrInvalidState)
	}
	if err := common.SanitizeHTMLField(req.Notes, "sale notes"); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", err.Error(), ErrInvalidState)
	}
	for _, item := range req.Items {
		if item.Value <= 0 {
			return nil, nil, fmt.Errorf("item value must be positive: %w", ErrInvalidState)
		}
	}

	if _, err := s.refData.GetClient(ctx, tenantID, req.ClientID); err != nil {
		return nil, nil, err
	}
	for _, item := range req.Items {
		if _, err := s.refData.GetProvider(ctx, tenantID, item.ProviderID); err != nil {
			return nil, nil, err
		}
		if _, err := s.refData.GetHealthService(ctx, tenantID, item.ServiceID); err != nil {
			return nil, nil, err
		}
	}

	sale, vouchers := assembleSale(tenantID, req)
	if err := s.saleRepo.CreateWithVouchers(ctx, sale, vouchers); err != nil {
		return nil, nil, fmt.Errorf("create sale: %w", err)
	}
	return sale, vouchers, nil
}

// CreateSaleFromQuote materializes a one-item sale from a pending quote. The
// quote's approval is part of the same transaction; if the quote stopped
// being pending first, nothing is created and ErrInvalidState is returned.
func (s *saleService) CreateSaleFromQuote(ctx context.Context, tenantID uuid.UUID, quote *models.Quote, paymentMethod string) (*models.Sale, []*models.Voucher, error) {
	req := &CreateSaleRequest{
		ClientID: quote.ClientID,
		Items: []SaleItemInput{{
			ServiceID:  quote.ServiceID,
			ProviderID: quote.ProviderID,
			Value:      quote.FinalValue,
		}},
		PaymentMethod: paymentMethod,
		Notes:         quote.Notes,
	}

	sale, vouchers := assembleSale(tenantID, req)
	if err := s.saleRepo.CreateFromQuote(ctx, quote.ID, sale, vouchers); err != nil {
		if errors.Is(err, repositories.ErrQuoteNotPending) {
			return nil, nil, fmt.Errorf("quote %s: %w", quote.ID, ErrInvalidState)
		}
		return nil, nil, fmt.Errorf("create sale from quote: %w", err)
	}
	return sale, vouchers, nil
}

// GetSale retrieves a sale with its items
func (s *saleService) GetSale(ctx context.Context, tenantID, saleID uuid.UUID) (*models.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, tenantID, saleID)
	if err != nil {
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if sale == nil {
		return nil, fmt.Errorf("sale %s: %w", saleID, ErrNotFound)
	}
	return sale, nil
}

// ListSales lists sales with pagination
func (s *saleService) ListSales(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Sale, error) {
	return s.saleRepo.List(ctx, tenantID, limit, offset)
}

func assembleSale(tenantID uuid.UUID, req *CreateSaleRequest) (*models.Sale, []*models.Voucher) {
	now := time.Now()
	sale := &models.Sale{
		ID:            uuid.New(),
		TenantID:      tenantID,
		ClientID:      req.ClientID,
		PaymentMethod: req.PaymentMethod,
		Status:        models.SaleStatusCompleted,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	vouchers := make([]*models.Voucher, 0, len(req.Items))
	for i, input := range req.Items {
		item := &models.SaleItem{
			ID:         uuid.New(),
			TenantID:   tenantID,
			SaleID:     sale.ID,
			ServiceID:  input.ServiceID,
			ProviderID: input.ProviderID,
			Value:      input.Value,
			CreatedAt:  now,
		}
		sale.Items = append(sale.Items, item)

		vouchers = append(vouchers, &models.Voucher{
			ID:         uuid.New(),
			TenantID:   tenantID,
			AuthCode:   newAuthCode(sale.ID, i),
			ClientID:   req.ClientID,
			ProviderID: input.ProviderID,
			ServiceID:  input.ServiceID,
			SaleItemID: item.ID,
			Value:      input.Value,
			Status:     models.VoucherStatusIssued,
			IssuedAt:   now,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	sale.Total = models.SaleItemsTotal(sale.Items)
	return sale, vouchers
}

// newAuthCode builds the human-presentable authentication code. The sale id
// fragment plus item index plus random entropy keeps collisions out of reach;
// the unique index on vouchers.auth_code is the hard guarantee.
func newAuthCode(saleID uuid.UUID, index int) string {
	fragment := strings.ToUpper(strings.ReplaceAll(saleID.String(), "-", "")[:8])
	return fmt.Sprintf("GUIA-%s-%02d-%s", fragment, index+1, strings.ToUpper(random.String(6)))
}
