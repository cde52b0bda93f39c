package services

import (
	"context"
	"fmt"
	"time"

	"saudemart/internal/common"
	"saudemart/internal/models"
	"saudemart/internal/repositories"

	"github.com/google/uuid"
)

// CreateQuoteRequest carries the inputs for a new quote.
type CreateQuoteRequest struct {
	ClientID    uuid.UUID
	ProviderID  uuid.UUID
	ServiceID   uuid.UUID
	CostValue   float64
	SaleValue   float64
	DiscountPct float64
	Notes       *string
}

// QuoteServiceInterface manages the quote lifecycle, including conversion
// into a sale.
type QuoteServiceInterface interface {
	CreateQuote(ctx context.Context, tenantID uuid.UUID, req *CreateQuoteRequest) (*models.Quote, error)
	GetQuote(ctx context.Context, tenantID, quoteID uuid.UUID) (*models.Quote, error)
	ListQuotes(ctx context.Context, tenantID, clientID uuid.UUID, limit, offset int) ([]*models.Quote, error)
	CancelQuote(ctx context.Context, tenantID, quoteID uuid.UUID) (*models.Quote, error)
	ConvertToSale(ctx context.Context, tenantID, quoteID uuid.UUID, paymentMethod string) (*models.Sale, []*models.Voucher, error)
}

type quoteService struct {
	quoteRepo   repositories.QuoteRepository
	saleService SaleServiceInterface
	refData     RefDataService
}

// NewQuoteService creates a new quote service instance
func NewQuoteService(quoteRepo repositories.QuoteRepository, saleService SaleServiceInterface, refData RefDataService) QuoteServiceInterface {
	return &quoteService{
		quoteRepo:   quoteRepo,
		saleService: saleService,
		refData:     refData,
	}
}

// CreateQuote computes the final value from the discount and opens the fixed
// validity window. The quote starts pending.
func (s *quoteService) CreateQuote(ctx context.Context, tenantID uuid.UUID, req *CreateQuoteRequest) (*models.Quote, error) {
	if req.SaleValue <= 0 {
		return nil, fmt.Errorf("sale value must be positive: %w", ErrInvalidState)
	}
	if req.DiscountPct < 0 || req.DiscountPct > 100 {
		return nil, fmt.Errorf("discount must be between 0 and 100: %w", ErrInvalidState)
	}
	if err := common.SanitizeHTMLField(req.Notes, "quote notes"); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), ErrInvalidState)
	}

	if _, err := s.refData.GetClient(ctx, tenantID, req.ClientID); err != nil {
		return nil, err
	}
	if _, err := s.refData.GetProvider(ctx, tenantID, req.ProviderID); err != nil {
		return nil, err
	}
	if _, err := s.refData.GetHealthService(ctx, tenantID, req.ServiceID); err != nil {
		return nil, err
	}

	now := time.Now()
	quote := &models.Quote{
		ID:          uuid.New(),
		TenantID:    tenantID,
		ClientID:    req.ClientID,
		ProviderID:  req.ProviderID,
		ServiceID:   req.ServiceID,
		CostValue:   req.CostValue,
		SaleValue:   req.SaleValue,
		DiscountPct: req.DiscountPct,
		FinalValue:  models.QuoteFinalValue(req.SaleValue, req.DiscountPct),
		ValidUntil:  now.AddDate(0, 0, models.QuoteValidityDays),
		Status:      models.QuoteStatusPending,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}
	return quote, nil
}

// GetQuote returns the quote with its effective status applied. The stored
// row is left alone; expiration is a property of reading, not of writing.
func (s *quoteService) GetQuote(ctx context.Context, tenantID, quoteID uuid.UUID) (*models.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, tenantID, quoteID)
	if err != nil {
		return nil, fmt.Errorf("get quote: %w", err)
	}
	if quote == nil {
		return nil, fmt.Errorf("quote %s: %w", quoteID, ErrNotFound)
	}
	quote.Status = models.EffectiveQuoteStatus(quote, time.Now())
	return quote, nil
}

// ListQuotes lists quotes with effective statuses applied. A non-nil
// clientID narrows the listing to that client.
func (s *quoteService) ListQuotes(ctx context.Context, tenantID, clientID uuid.UUID, limit, offset int) ([]*models.Quote, error) {
	var quotes []*models.Quote
	var err error
	if clientID != uuid.Nil {
		quotes, err = s.quoteRepo.ListByClient(ctx, tenantID, clientID, limit, offset)
	} else {
		quotes, err = s.quoteRepo.List(ctx, tenantID, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for _, quote := range quotes {
		quote.Status = models.EffectiveQuoteStatus(quote, now)
	}
	return quotes, nil
}

// CancelQuote cancels a quote that is still effectively pending.
func (s *quoteService) CancelQuote(ctx context.Context, tenantID, quoteID uuid.UUID) (*models.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, tenantID, quoteID)
	if err != nil {
		return nil, fmt.Errorf("get quote: %w", err)
	}
	if quote == nil {
		return nil, fmt.Errorf("quote %s: %w", quoteID, ErrNotFound)
	}

	now := time.Now()
	if models.EffectiveQuoteStatus(quote, now) != models.QuoteStatusPending {
		return nil, fmt.Errorf("quote is %s: %w", models.EffectiveQuoteStatus(quote, now), ErrInvalidState)
	}

	updated, err := s.quoteRepo.UpdateStatusIfPending(ctx, tenantID, quoteID, models.QuoteStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("cancel quote: %w", err)
	}
	if !updated {
		return nil, fmt.Errorf("quote %s changed concurrently: %w", quoteID, ErrInvalidState)
	}

	quote.Status = models.QuoteStatusCancelled
	quote.UpdatedAt = now
	return quote, nil
}

// ConvertToSale converts an effectively pending quote into a one-item sale.
// Sale, item, voucher and the quote's approval commit together or not at all.
func (s *quoteService) ConvertToSale(ctx context.Context, tenantID, quoteID uuid.UUID, paymentMethod string) (*models.Sale, []*models.Voucher, error) {
	quote, err := s.quoteRepo.GetByID(ctx, tenantID, quoteID)
	if err != nil {
		return nil, nil, fmt.Errorf("get quote: %w", err)
	}
	if quote == nil {
		return nil, nil, fmt.Errorf("quote %s: %w", quoteID, ErrNotFound)
	}

	if effective := models.EffectiveQuoteStatus(quote, time.Now()); effective != models.QuoteStatusPending {
		return nil, nil, fmt.Errorf("quote is %s: %w", effective, ErrInvalidState)
	}
	if paymentMethod == "" {
		return nil, nil, fmt.Errorf("payment method is required: %w", ErrInvalidState)
	}

	return s.saleService.CreateSaleFromQuote(ctx, tenantID, quote, paymentMethod)
}
