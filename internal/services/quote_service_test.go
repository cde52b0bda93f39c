package services

import (
	"context"
	"testing"
	"time"

	"saudemart/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type QuoteServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockQuoteRepository
	mockSaleSvc *MockSaleService
	mockRefData *MockRefDataService
	service     QuoteServiceInterface
	tenantID    uuid.UUID
	ctx         context.Context
}

func (suite *QuoteServiceTestSuite) SetupTest() {
	suite.mockRepo = &MockQuoteRepository{}
	suite.mockSaleSvc = &MockSaleService{}
	suite.mockRefData = &MockRefDataService{}
	suite.service = NewQuoteService(suite.mockRepo, suite.mockSaleSvc, suite.mockRefData)
	suite.tenantID = uuid.New()
	suite.ctx = context.Background()

	suite.mockRepo.Test(suite.T())
	suite.mockSaleSvc.Test(suite.T())
	suite.mockRefData.Test(suite.T())
}

func (suite *QuoteServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockSaleSvc.AssertExpectations(suite.T())
	suite.mockRefData.AssertExpectations(suite.T())
}

func TestQuoteServiceTestSuite(t *testing.T) {
	suite.Run(t, new(QuoteServiceTestSuite))
}

func (suite *QuoteServiceTestSuite) pendingQuote() *models.Quote {
	return &models.Quote{
		ID:         uuid.New(),
		TenantID:   suite.tenantID,
		ClientID:   uuid.New(),
		ProviderID: uuid.New(),
		ServiceID:  uuid.New(),
		SaleValue:  200.0,
		FinalValue: 180.0,
		ValidUntil: time.Now().AddDate(0, 0, 3),
		Status:     models.QuoteStatusPending,
	}
}

func (suite *QuoteServiceTestSuite) TestCreateQuote() {
	clientID := uuid.New()
	providerID := uuid.New()
	serviceID := uuid.New()

	suite.mockRefData.On("GetClient", suite.ctx, suite.tenantID, clientID).Return(&models.Client{ID: clientID}, nil)
	suite.mockRefData.On("GetProvider", suite.ctx, suite.tenantID, providerID).Return(&models.Provider{ID: providerID}, nil)
	suite.mockRefData.On("GetHealthService", suite.ctx, suite.tenantID, serviceID).Return(&models.HealthService{ID: serviceID}, nil)
	suite.mockRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Quote")).Return(nil)

	before := time.Now()
	quote, err := suite.service.CreateQuote(suite.ctx, suite.tenantID, &CreateQuoteRequest{
		ClientID:    clientID,
		ProviderID:  providerID,
		ServiceID:   serviceID,
		CostValue:   120.0,
		SaleValue:   200.0,
		DiscountPct: 10.0,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.QuoteStatusPending, quote.Status)
	assert.InDelta(suite.T(), 180.0, quote.FinalValue, 0.0001)
	// validity window opens at creation
	expected := before.AddDate(0, 0, models.QuoteValidityDays)
	assert.WithinDuration(suite.T(), expected, quote.ValidUntil, time.Minute)
}

func (suite *QuoteServiceTestSuite) TestCreateQuote_NonPositiveValue() {
	_, err := suite.service.CreateQuote(suite.ctx, suite.tenantID, &CreateQuoteRequest{SaleValue: 0})

	assert.ErrorIs(suite.T(), err, ErrInvalidState)
}

func (suite *QuoteServiceTestSuite) TestCreateQuote_DiscountOutOfRange() {
	_, err := suite.service.CreateQuote(suite.ctx, suite.tenantID, &CreateQuoteRequest{SaleValue: 100, DiscountPct: 120})

	assert.ErrorIs(suite.T(), err, ErrInvalidState)
}

func (suite *QuoteServiceTestSuite) TestListQuotes_ClientFilter() {
	quote := suite.pendingQuote()

	suite.mockRepo.On("ListByClient", suite.ctx, suite.tenantID, quote.ClientID, 20, 0).Return([]*models.Quote{quote}, nil)

	quotes, err := suite.service.ListQuotes(suite.ctx, suite.tenantID, quote.ClientID, 20, 0)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), quotes, 1)
	suite.mockRepo.AssertNotCalled(suite.T(), "List")
}

func (suite *QuoteServiceTestSuite) TestGetQuote_ExpiredOnRead() {
	quote := suite.pendingQuote()
	quote.ValidUntil = time.Now().AddDate(0, 0, -1)

	suite.mockRepo.On("GetByID", suite.ctx, suite.tenantID, quote.ID).Return(quote, nil)

	got, err := suite.service.GetQuote(suite.ctx, suite.tenantID, quote.ID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.QuoteStatusExpired, got.Status)
}

func (suite *QuoteServiceTestSuite) TestCancelQuote() {
	quote := suite.pendingQuote()

	suite.mockRepo.On("GetByID", suite.ctx, suite.tenantID, quote.ID).Return(quote, nil)
	suite.mockRepo.On("UpdateStatusIfPending", suite.ctx, suite.tenantID, quote.ID, models.QuoteStatusCancelled).Return(true, nil)

	cancelled, err := suite.service.CancelQuote(suite.ctx, suite.tenantID, quote.ID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.QuoteStatusCancelled, cancelled.Status)
}

func (suite *QuoteServiceTestSuite) TestCancelQuote_AlreadyExpired() {
	quote := suite.pendingQuote()
	quote.ValidUntil = time.Now().AddDate(0, 0, -1)

	suite.mockRepo.On("GetByID", suite.ctx, suite.tenantID, quote.ID).Return(quote, nil)

	_, err := suite.service.CancelQuote(suite.ctx, suite.tenantID, quote.ID)

	assert.ErrorIs(suite.T(), err, ErrInvalidState)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateStatusIfPending", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *QuoteServiceTestSuite) TestCancelQuote_LostRace() {
	quote := suite.pendingQuote()

	suite.mockRepo.On("GetByID", suite.ctx, suite.tenantID, quote.ID).Return(quote, nil)
	suite.mockRepo.On("UpdateStatusIfPending", suite.ctx, suite.tenantID, quote.ID, models.QuoteStatusCancelled).Return(false, nil)

	_, err := suite.service.CancelQuote(suite.ctx, suite.tenantID, quote.ID)

	assert.ErrorIs(suite.T(), err, ErrInvalidState)
}

func (suite *QuoteServiceTestSuite) TestConvertToSale() {
	quote := suite.pendingQuote()
	sale := &models.Sale{ID: uuid.New(), TenantID: suite.tenantID, Total: quote.FinalValue}
	vouchers := []*models.Voucher{{ID: uuid.New(), Status: models.VoucherStatusIssued}}

	suite.mockRepo.On("GetByID", suite.ctx, suite.tenantID, quote.ID).Return(quote, nil)
	suite.mockSaleSvc.On("CreateSaleFromQuote", suite.ctx, suite.tenantID, quote, "pix").Return(sale, vouchers, nil)

	gotSale, gotVouchers, err := suite.service.ConvertToSale(suite.ctx, suite.tenantID, quote.ID, "pix")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), sale.ID, gotSale.ID)
	assert.Len(suite.T(), gotVouchers, 1)
}

func (suite *QuoteServiceTestSuite) TestConvertToSale_Expired() {
	quote := suite.pendingQuote()
	quote.ValidUntil = time.Now().AddDate(0, 0, -1)

	suite.mockRepo.On("GetByID", suite.ctx, suite.tenantID, quote.ID).Return(quote, nil)

	_, _, err := suite.service.ConvertToSale(suite.ctx, suite.tenantID, quote.ID, "pix")

	assert.ErrorIs(suite.T(), err, ErrInvalidState)
	suite.mockSaleSvc.AssertNotCalled(suite.T(), "CreateSaleFromQuote", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *QuoteServiceTestSuite) TestConvertToSale_MissingPaymentMethod() {
	quote := suite.pendingQuote()

	suite.mockRepo.On("GetByID", suite.ctx, suite.tenantID, quote.ID).Return(quote, nil)

	_, _, err := suite.service.ConvertToSale(suite.ctx, suite.tenantID, quote.ID, "")

	assert.ErrorIs(suite.T(), err, ErrInvalidState)
}

func (suite *QuoteServiceTestSuite) TestConvertToSale_NotFound() {
	quoteID := uuid.New()

	suite.mockRepo.On("GetByID", suite.ctx, suite.tenantID, quoteID).Return(nil, nil)

	_, _, err := suite.service.ConvertToSale(suite.ctx, suite.tenantID, quoteID, "pix")

	assert.ErrorIs(suite.T(), err, ErrNotFound)
}
