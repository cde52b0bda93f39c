package services

import (
	"context"
	"errors"
	"testing"

	"saudemart/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type RefDataServiceTestSuite struct {
	suite.Suite
	mockCache *MockCacheService
	service   RefDataService
	tenantID  uuid.UUID
	ctx       context.Context
}

func (suite *RefDataServiceTestSuite) SetupTest() {
	suite.mockCache = &MockCacheService{}
	// repos stay nil: these tests must be served from the cache alone
	suite.service = NewRefDataService(nil, nil, nil, suite.mockCache)
	suite.tenantID = uuid.New()
	suite.ctx = context.Background()

	suite.mockCache.Test(suite.T())
}

func (suite *RefDataServiceTestSuite) TearDownTest() {
	suite.mockCache.AssertExpectations(suite.T())
}

func TestRefDataServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RefDataServiceTestSuite))
}

func (suite *RefDataServiceTestSuite) TestGetClient_CacheHit() {
	client := &models.Client{ID: uuid.New(), TenantID: suite.tenantID, Name: "Clinica Boa Vista"}

	suite.mockCache.On("GetClient", suite.ctx, suite.tenantID, client.ID).Return(client, nil)

	got, err := suite.service.GetClient(suite.ctx, suite.tenantID, client.ID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), client, got)
}

func (suite *RefDataServiceTestSuite) TestRefreshCache() {
	suite.mockCache.On("InvalidateTenantCache", suite.ctx, suite.tenantID).Return(nil)

	err := suite.service.RefreshCache(suite.ctx, suite.tenantID)

	assert.NoError(suite.T(), err)
}

func (suite *RefDataServiceTestSuite) TestRefreshCache_CacheError() {
	suite.mockCache.On("InvalidateTenantCache", suite.ctx, suite.tenantID).Return(errors.New("scan failed"))

	err := suite.service.RefreshCache(suite.ctx, suite.tenantID)

	assert.ErrorContains(suite.T(), err, "invalidate tenant cache")
}

func (suite *RefDataServiceTestSuite) TestRefreshCache_NoCacheConfigured() {
	service := NewRefDataService(nil, nil, nil, nil)

	err := service.RefreshCache(suite.ctx, suite.tenantID)

	assert.NoError(suite.T(), err)
}
