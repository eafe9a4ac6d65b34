package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/providers"
)

// offerCachePattern covers every cached offer read.
const offerCachePattern = "offers:*"

// CacheInvalidationService clears cached offer reads whenever a pipeline run
// replaces the store. Invalidation is keyed on run completion, not time, so
// every API replica drops its snapshot at the same moment.
type CacheInvalidationService struct {
	bus   providers.EventBus
	cache providers.CacheProvider
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(bus providers.EventBus, cache providers.CacheProvider) *CacheInvalidationService {
	return &CacheInvalidationService{bus: bus, cache: cache}
}

// Start subscribes to pipeline-run events and invalidates the offer cache on
// each one. It returns after subscribing; the invalidation loop runs until the
// context is cancelled.
func (s *CacheInvalidationService) Start(ctx context.Context) error {
	events, err := s.bus.Subscribe(ctx, providers.EventChannelPipelineRuns)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-events:
				if !ok {
					return
				}
				if err := s.cache.DeletePattern(ctx, offerCachePattern); err != nil {
					log.Warn().Err(err).Str("run_id", event.RunID).Msg("failed to invalidate offer cache")
					continue
				}
				log.Info().Str("run_id", event.RunID).Int("offers", event.Offers).
					Msg("invalidated offer cache after pipeline run")
			}
		}
	}()

	return nil
}
