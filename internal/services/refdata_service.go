package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"saudemart/internal/caching"
	"saudemart/internal/models"
	"saudemart/internal/repositories"

	"github.com/google/uuid"
)

const refDataTTL = 10 * time.Minute

// RefDataService is the reference-data gateway: read-only, cache-fronted
// lookups of clients, providers and the service catalog. Cache failures are
// logged and fall through to the store; reference data is the only thing
// allowed in the cache.
type RefDataService interface {
	GetClient(ctx context.Context, tenantID, clientID uuid.UUID) (*models.Client, error)
	GetProvider(ctx context.Context, tenantID, providerID uuid.UUID) (*models.Provider, error)
	GetHealthService(ctx context.Context, tenantID, serviceID uuid.UUID) (*models.HealthService, error)
	ListClients(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Client, error)
	ListProviders(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Provider, error)
	ListHealthServices(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.HealthService, error)
	RefreshCache(ctx context.Context, tenantID uuid.UUID) error
}

type refDataService struct {
	clientRepo   repositories.ClientRepository
	providerRepo repositories.ProviderRepository
	serviceRepo  repositories.HealthServiceRepository
	cache        caching.CacheService
}

func NewRefDataService(clientRepo repositories.ClientRepository, providerRepo repositories.ProviderRepository, serviceRepo repositories.HealthServiceRepository, cache caching.CacheService) RefDataService {
	return &refDataService{
		clientRepo:   clientRepo,
		providerRepo: providerRepo,
		serviceRepo:  serviceRepo,
		cache:        cache,
	}
}

func (s *refDataService) GetClient(ctx context.Context, tenantID, clientID uuid.UUID) (*models.Client, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetClient(ctx, tenantID, clientID); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			log.Printf("WARN: client cache read failed: %v", err)
		}
	}

	client, err := s.clientRepo.GetByID(ctx, tenantID, clientID)
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("client %s: %w", clientID, ErrNotFound)
	}

	if s.cache != nil {
		if err := s.cache.SetClient(ctx, tenantID, client, refDataTTL); err != nil {
			log.Printf("WARN: client cache write failed: %v", err)
		}
	}
	return client, nil
}

func (s *refDataService) GetProvider(ctx context.Context, tenantID, providerID uuid.UUID) (*models.Provider, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetProvider(ctx, tenantID, providerID); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			log.Printf("WARN: provider cache read failed: %v", err)
		}
	}

	provider, err := s.providerRepo.GetByID(ctx, tenantID, providerID)
	if err != nil {
		return nil, fmt.Errorf("get provider: %w", err)
	}
	if provider == nil {
		return nil, fmt.Errorf("provider %s: %w", providerID, ErrNotFound)
	}

	if s.cache != nil {
		if err := s.cache.SetProvider(ctx, tenantID, provider, refDataTTL); err != nil {
			log.Printf("WARN: provider cache write failed: %v", err)
		}
	}
	return provider, nil
}

func (s *refDataService) GetHealthService(ctx context.Context, tenantID, serviceID uuid.UUID) (*models.HealthService, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetHealthService(ctx, tenantID, serviceID); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			log.Printf("WARN: service cache read failed: %v", err)
		}
	}

	svc, err := s.serviceRepo.GetByID(ctx, tenantID, serviceID)
	if err != nil {
		return nil, fmt.Errorf("get health service: %w", err)
	}
	if svc == nil {
		return nil, fmt.Errorf("health service %s: %w", serviceID, ErrNotFound)
	}

	if s.cache != nil {
		if err := s.cache.SetHealthService(ctx, tenantID, svc, refDataTTL); err != nil {
			log.Printf("WARN: service cache write failed: %v", err)
		}
	}
	return svc, nil
}

// Listings go straight to the store; only single-record lookups are cached.

func (s *refDataService) ListClients(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Client, error) {
	return s.clientRepo.List(ctx, tenantID, limit, offset)
}

func (s *refDataService) ListProviders(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Provider, error) {
	return s.providerRepo.List(ctx, tenantID, limit, offset)
}

func (s *refDataService) ListHealthServices(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.HealthService, error) {
	return s.serviceRepo.List(ctx, tenantID, limit, offset)
}

// RefreshCache drops every cached reference record of the tenant. Reference
// data is maintained upstream; this is the hook callers use after an edit
// there so stale entries do not outlive the TTL.
func (s *refDataService) RefreshCache(ctx context.Context, tenantID uuid.UUID) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.InvalidateTenantCache(ctx, tenantID); err != nil {
		return fmt.Errorf("invalidate tenant cache: %w", err)
	}
	return nil
}
