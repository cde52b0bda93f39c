package services

import (
	"context"
	"testing"

	"saudemart/internal/models"
	"saudemart/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SaleServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockSaleRepository
	mockRefData *MockRefDataService
	service     SaleServiceInterface
	tenantID    uuid.UUID
	clientID    uuid.UUID
	ctx         context.Context
}

func (suite *SaleServiceTestSuite) SetupTest() {
	suite.mockRepo = &MockSaleRepository{}
	suite.mockRefData = &MockRefDataService{}
	suite.service = NewSaleService(suite.mockRepo, suite.mockRefData)
	suite.tenantID = uuid.New()
	suite.clientID = uuid.New()
	suite.ctx = context.Background()

	suite.mockRepo.Test(suite.T())
	suite.mockRefData.Test(suite.T())
}

func (suite *SaleServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRefData.AssertExpectations(suite.T())
}

func TestSaleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}

func (suite *SaleServiceTestSuite) expectRefDataOK(providerID, serviceID uuid.UUID) {
	suite.mockRefData.On("GetClient", suite.ctx, suite.tenantID, suite.clientID).
		Return(&models.Client{ID: suite.clientID}, nil)
	suite.mockRefData.On("GetProvider", suite.ctx, suite.tenantID, providerID).
		Return(&models.Provider{ID: providerID}, nil)
	suite.mockRefData.On("GetHealthService", suite.ctx, suite.tenantID, serviceID).
		Return(&models.HealthService{ID: serviceID}, nil)
}

func (suite *SaleServiceTestSuite) TestCreateSale_TwoItems() {
	providerID := uuid.New()
	serviceID := uuid.New()
	suite.expectRefDataOK(providerID, serviceID)
	suite.mockRepo.On("CreateWithVouchers", suite.ctx, mock.AnythingOfType("*models.Sale"), mock.AnythingOfType("[]*models.Voucher")).Return(nil)

	req := &CreateSaleRequest{
		ClientID: suite.clientID,
		Items: []SaleItemInput{
			{ServiceID: serviceID, ProviderID: providerID, Value: 150.0},
			{ServiceID: serviceID, ProviderID: providerID, Value: 250.0},
		},
		PaymentMethod: "pix",
	}

	sale, vouchers, err := suite.service.CreateSale(suite.ctx, suite.tenantID, req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.SaleStatusCompleted, sale.Status)
	assert.InDelta(suite.T(), 400.0, sale.Total, 0.0001)
	assert.Len(suite.T(), sale.Items, 2)
	assert.Len(suite.T(), vouchers, 2)
	for _, v := range vouchers {
		assert.Equal(suite.T(), models.VoucherStatusIssued, v.Status)
		assert.Equal(suite.T(), suite.tenantID, v.TenantID)
		assert.Contains(suite.T(), v.AuthCode, "GUIA-")
	}
	assert.NotEqual(suite.T(), vouchers[0].AuthCode, vouchers[1].AuthCode)
	assert.Equal(suite.T(), sale.Items[0].ID, vouchers[0].SaleItemID)
	assert.Equal(suite.T(), sale.Items[1].ID, vouchers[1].SaleItemID)
}

func (suite *SaleServiceTestSuite) TestCreateSale_EmptyItems() {
	req := &CreateSaleRequest{ClientID: suite.clientID, PaymentMethod: "pix"}

	_, _, err := suite.service.CreateSale(suite.ctx, suite.tenantID, req)

	assert.ErrorIs(suite.T(), err, ErrInvalidState)
	suite.mockRepo.AssertNotCalled(suite.T(), "CreateWithVouchers", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestCreateSale_MissingPaymentMethod() {
	req := &CreateSaleRequest{
		ClientID: suite.clientID,
		Items:    []SaleItemInput{{ServiceID: uuid.New(), ProviderID: uuid.New(), Value: 100.0}},
	}

	_, _, err := suite.service.CreateSale(suite.ctx, suite.tenantID, req)

	assert.ErrorIs(suite.T(), err, ErrInvalidState)
}

func (suite *SaleServiceTestSuite) TestCreateSale_NonPositiveItemValue() {
	req := &CreateSaleRequest{
		ClientID:      suite.clientID,
		Items:         []SaleItemInput{{ServiceID: uuid.New(), ProviderID: uuid.New(), Value: 0}},
		PaymentMethod: "pix",
	}

	_, _, err := suite.service.CreateSale(suite.ctx, suite.tenantID, req)

	assert.ErrorIs(suite.T(), err, ErrInvalidState)
}

func (suite *SaleServiceTestSuite) TestCreateSale_UnknownClient() {
	suite.mockRefData.On("GetClient", suite.ctx, suite.tenantID, suite.clientID).Return(nil, ErrNotFound)

	req := &CreateSaleRequest{
		ClientID:      suite.clientID,
		Items:         []SaleItemInput{{ServiceID: uuid.New(), ProviderID: uuid.New(), Value: 100.0}},
		PaymentMethod: "pix",
	}

	_, _, err := suite.service.CreateSale(suite.ctx, suite.tenantID, req)

	assert.ErrorIs(suite.T(), err, ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "CreateWithVouchers", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestCreateSaleFromQuote() {
	quote := &models.Quote{
		ID:         uuid.New(),
		TenantID:   suite.tenantID,
		ClientID:   suite.clientID,
		ProviderID: uuid.New(),
		ServiceID:  uuid.New(),
		SaleValue:  200.0,
		FinalValue: 180.0,
		Status:     models.QuoteStatusPending,
	}
	suite.mockRepo.On("CreateFromQuote", suite.ctx, quote.ID, mock.AnythingOfType("*models.Sale"), mock.AnythingOfType("[]*models.Voucher")).Return(nil)

	sale, vouchers, err := suite.service.CreateSaleFromQuote(suite.ctx, suite.tenantID, quote, "cartao")

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), vouchers, 1)
	// the discounted value is what the sale carries
	assert.InDelta(suite.T(), 180.0, sale.Total, 0.0001)
	assert.InDelta(suite.T(), 180.0, vouchers[0].Value, 0.0001)
}

func (suite *SaleServiceTestSuite) TestCreateSaleFromQuote_QuoteNoLongerPending() {
	quote := &models.Quote{
		ID:         uuid.New(),
		TenantID:   suite.tenantID,
		ClientID:   suite.clientID,
		ProviderID: uuid.New(),
		ServiceID:  uuid.New(),
		FinalValue: 180.0,
		Status:     models.QuoteStatusPending,
	}
	suite.mockRepo.On("CreateFromQuote", suite.ctx, quote.ID, mock.AnythingOfType("*models.Sale"), mock.AnythingOfType("[]*models.Voucher")).
		Return(repositories.ErrQuoteNotPending)

	_, _, err := suite.service.CreateSaleFromQuote(suite.ctx, suite.tenantID, quote, "cartao")

	assert.ErrorIs(suite.T(), err, ErrInvalidState)
}

func (suite *SaleServiceTestSuite) TestGetSale_NotFound() {
	saleID := uuid.New()

	suite.mockRepo.On("GetByID", suite.ctx, suite.tenantID, saleID).Return(nil, nil)

	_, err := suite.service.GetSale(suite.ctx, suite.tenantID, saleID)

	assert.ErrorIs(suite.T(), err, ErrNotFound)
}
