package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"saudemart/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CacheService caches read-only reference data (clients, providers, service
// catalog). Voucher, sale and quote status are deliberately never cached:
// the optimistic-concurrency checks depend on the store being the single
// source of status truth.
type CacheService interface {
	GetClient(ctx context.Context, tenantID, clientID uuid.UUID) (*models.Client, error)
	SetClient(ctx context.Context, tenantID uuid.UUID, client *models.Client, ttl time.Duration) error

	GetProvider(ctx context.Context, tenantID, providerID uuid.UUID) (*models.Provider, error)
	SetProvider(ctx context.Context, tenantID uuid.UUID, provider *models.Provider, ttl time.Duration) error

	GetHealthService(ctx context.Context, tenantID, serviceID uuid.UUID) (*models.HealthService, error)
	SetHealthService(ctx context.Context, tenantID uuid.UUID, svc *models.HealthService, ttl time.Duration) error

	InvalidateTenantCache(ctx context.Context, tenantID uuid.UUID) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	parsedAddr := addr
	if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
		parsedAddr = hostPort
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetClient(ctx context.Context, tenantID, clientID uuid.UUID) (*models.Client, error) {
	key := fmt.Sprintf("saudemart:client:%s:%s", tenantID.String(), clientID.String())
	var client models.Client
	if ok, err := r.getJSON(ctx, key, &client); !ok {
		return nil, err
	}
	return &client, nil
}

func (r *redisCacheService) SetClient(ctx context.Context, tenantID uuid.UUID, client *models.Client, ttl time.Duration) error {
	key := fmt.Sprintf("saudemart:client:%s:%s", tenantID.String(), client.ID.String())
	return r.setJSON(ctx, key, client, ttl)
}

func (r *redisCacheService) GetProvider(ctx context.Context, tenantID, providerID uuid.UUID) (*models.Provider, error) {
	key := fmt.Sprintf("saudemart:provider:%s:%s", tenantID.String(), providerID.String())
	var provider models.Provider
	if ok, err := r.getJSON(ctx, key, &provider); !ok {
		return nil, err
	}
	return &provider, nil
}

func (r *redisCacheService) SetProvider(ctx context.Context, tenantID uuid.UUID, provider *models.Provider, ttl time.Duration) error {
	key := fmt.Sprintf("saudemart:provider:%s:%s", tenantID.String(), provider.ID.String())
	return r.setJSON(ctx, key, provider, ttl)
}

func (r *redisCacheService) GetHealthService(ctx context.Context, tenantID, serviceID uuid.UUID) (*models.HealthService, error) {
	key := fmt.Sprintf("saudemart:service:%s:%s", tenantID.String(), serviceID.String())
	var svc models.HealthService
	if ok, err := r.getJSON(ctx, key, &svc); !ok {
		return nil, err
	}
	return &svc, nil
}

func (r *redisCacheService) SetHealthService(ctx context.Context, tenantID uuid.UUID, svc *models.HealthService, ttl time.Duration) error {
	key := fmt.Sprintf("saudemart:service:%s:%s", tenantID.String(), svc.ID.String())
	return r.setJSON(ctx, key, svc, ttl)
}

func (r *redisCacheService) InvalidateTenantCache(ctx context.Context, tenantID uuid.UUID) error {
	pattern := fmt.Sprintf("saudemart:*:%s:*", tenantID.String())
	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (r *redisCacheService) getJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil // cache miss
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (r *redisCacheService) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}
