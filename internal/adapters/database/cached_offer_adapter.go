package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/entities"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/providers"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/repositories"
)

// Cache key prefixes and TTLs for offer reads. Offer data only changes when a
// pipeline run replaces the table, so the TTLs are generous; the invalidation
// service clears everything under "offers:" on each run anyway.
const (
	offerListKeyPrefix   = "offers:list:"
	offerDestinationsKey = "offers:destinations"
	offerStatsKey        = "offers:stats"

	offerCacheTTLSeconds = 600
)

// CachedOfferAdapter wraps an OfferRepository with read-through caching.
// Writes go straight to the underlying repository.
type CachedOfferAdapter struct {
	repo  repositories.OfferRepository
	cache providers.CacheProvider
}

// NewCachedOfferAdapter creates a caching wrapper around an offer repository
func NewCachedOfferAdapter(repo repositories.OfferRepository, cache providers.CacheProvider) repositories.OfferRepository {
	return &CachedOfferAdapter{repo: repo, cache: cache}
}

// InitSchema delegates to the underlying repository
func (c *CachedOfferAdapter) InitSchema(ctx context.Context) error {
	return c.repo.InitSchema(ctx)
}

// ReplaceAll delegates to the underlying repository. Invalidation happens via
// the pipeline event, not here, so that every API replica clears its cache.
func (c *CachedOfferAdapter) ReplaceAll(ctx context.Context, offers []*entities.TripOffer) error {
	return c.repo.ReplaceAll(ctx, offers)
}

// List retrieves offers matching the filter, serving from cache when possible
func (c *CachedOfferAdapter) List(ctx context.Context, filter repositories.OfferFilter) ([]*entities.TripOffer, error) {
	key, ok := listCacheKey(filter)
	if ok {
		if cached, err := c.cache.Get(ctx, key); err == nil {
			var offers []*entities.TripOffer
			if err := json.Unmarshal(cached, &offers); err == nil {
				return offers, nil
			}
			log.Warn().Str("key", key).Msg("discarding malformed cached offer list")
		}
	}

	offers, err := c.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if ok {
		c.storeAsync(key, offers)
	}
	return offers, nil
}

// Destinations retrieves the distinct destination names, cached
func (c *CachedOfferAdapter) Destinations(ctx context.Context) ([]string, error) {
	if cached, err := c.cache.Get(ctx, offerDestinationsKey); err == nil {
		var destinations []string
		if err := json.Unmarshal(cached, &destinations); err == nil {
			return destinations, nil
		}
	}

	destinations, err := c.repo.Destinations(ctx)
	if err != nil {
		return nil, err
	}

	c.storeAsync(offerDestinationsKey, destinations)
	return destinations, nil
}

// Stats summarizes the current store contents, cached
func (c *CachedOfferAdapter) Stats(ctx context.Context) (*repositories.StoreStats, error) {
	if cached, err := c.cache.Get(ctx, offerStatsKey); err == nil {
		var stats repositories.StoreStats
		if err := json.Unmarshal(cached, &stats); err == nil {
			return &stats, nil
		}
	}

	stats, err := c.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	c.storeAsync(offerStatsKey, stats)
	return stats, nil
}

// storeAsync writes to the cache off the request path. A failed write only
// costs a future cache miss.
func (c *CachedOfferAdapter) storeAsync(key string, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to marshal value for cache")
		return
	}
	go func() {
		if err := c.cache.Set(context.Background(), key, payload, offerCacheTTLSeconds); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to cache value")
		}
	}()
}

// listCacheKey derives a stable cache key from the filter. Returns false when
// the filter cannot be serialized, in which case the read bypasses the cache.
func listCacheKey(filter repositories.OfferFilter) (string, bool) {
	payload, err := json.Marshal(filter)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%s%s", offerListKeyPrefix, payload), true
}
