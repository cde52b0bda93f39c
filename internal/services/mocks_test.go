package services

import (
	"context"
	"time"

	"saudemart/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockVoucherRepository struct {
	mock.Mock
}

func (m *MockVoucherRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Voucher, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) GetByAuthCode(ctx context.Context, tenantID uuid.UUID, authCode string) (*models.Voucher, error) {
	args := m.Called(ctx, tenantID, authCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) ListBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]*models.Voucher, error) {
	args := m.Called(ctx, tenantID, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) ListByProvider(ctx context.Context, tenantID, providerID uuid.UUID, limit, offset int) ([]*models.Voucher, error) {
	args := m.Called(ctx, tenantID, providerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) ListIssuedOlderThan(ctx context.Context, cutoff time.Time) ([]*models.Voucher, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) UpdateStatusCAS(ctx context.Context, tenantID, id uuid.UUID, expected, next string, at time.Time) (bool, error) {
	args := m.Called(ctx, tenantID, id, expected, next, at)
	return args.Bool(0), args.Error(1)
}

type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) CreateWithVouchers(ctx context.Context, sale *models.Sale, vouchers []*models.Voucher) error {
	args := m.Called(ctx, sale, vouchers)
	return args.Error(0)
}

func (m *MockSaleRepository) CreateFromQuote(ctx context.Context, quoteID uuid.UUID, sale *models.Sale, vouchers []*models.Voucher) error {
	args := m.Called(ctx, quoteID, sale, vouchers)
	return args.Error(0)
}

func (m *MockSaleRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Sale, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sale), args.Error(1)
}

func (m *MockSaleRepository) GetItems(ctx context.Context, tenantID, saleID uuid.UUID) ([]*models.SaleItem, error) {
	args := m.Called(ctx, tenantID, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SaleItem), args.Error(1)
}

func (m *MockSaleRepository) GetItemByID(ctx context.Context, tenantID, itemID uuid.UUID) (*models.SaleItem, error) {
	args := m.Called(ctx, tenantID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SaleItem), args.Error(1)
}

func (m *MockSaleRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Sale, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Sale), args.Error(1)
}

func (m *MockSaleRepository) UpdateStatusCAS(ctx context.Context, tenantID, id uuid.UUID, expected, next string) (bool, error) {
	args := m.Called(ctx, tenantID, id, expected, next)
	return args.Bool(0), args.Error(1)
}

type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) Create(ctx context.Context, quote *models.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockQuoteRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Quote, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quote), args.Error(1)
}

func (m *MockQuoteRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Quote, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Quote), args.Error(1)
}

func (m *MockQuoteRepository) ListByClient(ctx context.Context, tenantID, clientID uuid.UUID, limit, offset int) ([]*models.Quote, error) {
	args := m.Called(ctx, tenantID, clientID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Quote), args.Error(1)
}

func (m *MockQuoteRepository) ListExpiredPending(ctx context.Context, now time.Time) ([]*models.Quote, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Quote), args.Error(1)
}

func (m *MockQuoteRepository) UpdateStatusIfPending(ctx context.Context, tenantID, id uuid.UUID, next string) (bool, error) {
	args := m.Called(ctx, tenantID, id, next)
	return args.Bool(0), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetClient(ctx context.Context, tenantID, clientID uuid.UUID) (*models.Client, error) {
	args := m.Called(ctx, tenantID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockCacheService) SetClient(ctx context.Context, tenantID uuid.UUID, client *models.Client, ttl time.Duration) error {
	args := m.Called(ctx, tenantID, client, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetProvider(ctx context.Context, tenantID, providerID uuid.UUID) (*models.Provider, error) {
	args := m.Called(ctx, tenantID, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Provider), args.Error(1)
}

func (m *MockCacheService) SetProvider(ctx context.Context, tenantID uuid.UUID, provider *models.Provider, ttl time.Duration) error {
	args := m.Called(ctx, tenantID, provider, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetHealthService(ctx context.Context, tenantID, serviceID uuid.UUID) (*models.HealthService, error) {
	args := m.Called(ctx, tenantID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HealthService), args.Error(1)
}

func (m *MockCacheService) SetHealthService(ctx context.Context, tenantID uuid.UUID, svc *models.HealthService, ttl time.Duration) error {
	args := m.Called(ctx, tenantID, svc, ttl)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateTenantCache(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

type MockRefDataService struct {
	mock.Mock
}

func (m *MockRefDataService) GetClient(ctx context.Context, tenantID, clientID uuid.UUID) (*models.Client, error) {
	args := m.Called(ctx, tenantID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockRefDataService) GetProvider(ctx context.Context, tenantID, providerID uuid.UUID) (*models.Provider, error) {
	args := m.Called(ctx, tenantID, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Provider), args.Error(1)
}

func (m *MockRefDataService) GetHealthService(ctx context.Context, tenantID, serviceID uuid.UUID) (*models.HealthService, error) {
	args := m.Called(ctx, tenantID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HealthService), args.Error(1)
}

func (m *MockRefDataService) ListClients(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Client, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Client), args.Error(1)
}

func (m *MockRefDataService) ListProviders(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Provider, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Provider), args.Error(1)
}

func (m *MockRefDataService) ListHealthServices(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.HealthService, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.HealthService), args.Error(1)
}

func (m *MockRefDataService) RefreshCache(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

type MockSaleService struct {
	mock.Mock
}

func (m *MockSaleService) CreateSale(ctx context.Context, tenantID uuid.UUID, req *CreateSaleRequest) (*models.Sale, []*models.Voucher, error) {
	args := m.Called(ctx, tenantID, req)
	var sale *models.Sale
	if args.Get(0) != nil {
		sale = args.Get(0).(*models.Sale)
	}
	var vouchers []*models.Voucher
	if args.Get(1) != nil {
		vouchers = args.Get(1).([]*models.Voucher)
	}
	return sale, vouchers, args.Error(2)
}

func (m *MockSaleService) CreateSaleFromQuote(ctx context.Context, tenantID uuid.UUID, quote *models.Quote, paymentMethod string) (*models.Sale, []*models.Voucher, error) {
	args := m.Called(ctx, tenantID, quote, paymentMethod)
	var sale *models.Sale
	if args.Get(0) != nil {
		sale = args.Get(0).(*models.Sale)
	}
	var vouchers []*models.Voucher
	if args.Get(1) != nil {
		vouchers = args.Get(1).([]*models.Voucher)
	}
	return sale, vouchers, args.Error(2)
}

func (m *MockSaleService) GetSale(ctx context.Context, tenantID, saleID uuid.UUID) (*models.Sale, error) {
	args := m.Called(ctx, tenantID, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sale), args.Error(1)
}

func (m *MockSaleService) ListSales(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Sale, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Sale), args.Error(1)
}
