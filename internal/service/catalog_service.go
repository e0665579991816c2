package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-survey/internal/config"
	"github.com/stemsi/exstem-survey/internal/survey"
)

// CatalogSource loads the catalog from durable storage.
type CatalogSource interface {
	ListCatalog(ctx context.Context) (survey.Catalog, error)
}

// CatalogCache stores the serialized catalog snapshot.
// Get returns redis.Nil when nothing is cached.
type CatalogCache interface {
	Get(ctx context.Context) ([]byte, error)
	Set(ctx context.Context, data []byte, ttl time.Duration) error
}

// redisCatalogCache keeps the snapshot under config.CacheKey.CatalogKey().
type redisCatalogCache struct {
	rdb *redis.Client
}

// NewRedisCatalogCache creates a CatalogCache backed by Redis.
func NewRedisCatalogCache(rdb *redis.Client) CatalogCache {
	return &redisCatalogCache{rdb: rdb}
}

func (c *redisCatalogCache) Get(ctx context.Context) ([]byte, error) {
	return c.rdb.Get(ctx, config.CacheKey.CatalogKey()).Bytes()
}

func (c *redisCatalogCache) Set(ctx context.Context, data []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, config.CacheKey.CatalogKey(), data, ttl).Err()
}

// CatalogService serves the question catalog snapshot, Redis first.
type CatalogService struct {
	source CatalogSource
	cache  CatalogCache
	ttl    time.Duration
	log    zerolog.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(source CatalogSource, cache CatalogCache, ttl time.Duration, log zerolog.Logger) *CatalogService {
	return &CatalogService{
		source: source,
		cache:  cache,
		ttl:    ttl,
		log:    log.With().Str("component", "catalog_service").Logger(),
	}
}

// Catalog returns the current snapshot. A cache miss or unreadable cache entry
// falls back to PostgreSQL and rewrites the cache.
func (s *CatalogService) Catalog(ctx context.Context) (survey.Catalog, error) {
	data, err := s.cache.Get(ctx)
	switch {
	case err == nil:
		var catalog survey.Catalog
		if err := json.Unmarshal(data, &catalog); err == nil && len(catalog) > 0 {
			return catalog, nil
		}
		s.log.Warn().Msg("Cached catalog unreadable, reloading")
	case errors.Is(err, redis.Nil):
		s.log.Debug().Msg("Catalog cache miss")
	default:
		s.log.Warn().Err(err).Msg("Catalog cache read failed, using database")
	}

	return s.Refresh(ctx)
}

// Refresh loads the catalog from PostgreSQL and rewrites the cache.
// Cache write failures are logged and do not fail the call.
func (s *CatalogService) Refresh(ctx context.Context) (survey.Catalog, error) {
	catalog, err := s.source.ListCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if len(catalog) == 0 {
		return nil, survey.ErrEmptyCatalog
	}

	data, err := json.Marshal(catalog)
	if err != nil {
		return nil, fmt.Errorf("marshal catalog: %w", err)
	}
	if err := s.cache.Set(ctx, data, s.ttl); err != nil {
		s.log.Warn().Err(err).Msg("Catalog cache write failed")
	}

	s.log.Debug().Int("questions", len(catalog)).Msg("Catalog cached")
	return catalog, nil
}

// Prewarm loads the catalog into Redis before the server takes traffic.
func (s *CatalogService) Prewarm(ctx context.Context) error {
	catalog, err := s.Refresh(ctx)
	if err != nil {
		return err
	}
	s.log.Info().Int("questions", len(catalog)).Msg("Catalog prewarmed")
	return nil
}
