package events

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/entities"
	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/providers"
	apperrors "github.com/JhoJha/Viajes-Economicos-Chaskiway/pkg/errors"
)

// RedisEventBus implements EventBus using Redis pub/sub
type RedisEventBus struct {
	client *redis.Client

	mu   sync.Mutex
	subs []*redis.PubSub
}

// NewRedisEventBus creates a new Redis-backed event bus
func NewRedisEventBus(client *redis.Client) providers.EventBus {
	return &RedisEventBus{client: client}
}

// Publish publishes an event to all subscribers of the channel
func (b *RedisEventBus) Publish(ctx context.Context, channel string, event *entities.PipelineEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return apperrors.NewInternalError("failed to marshal pipeline event", err)
	}
	if err := b.client.Publish(ctx, channel, payload).Err(); err != nil {
		return apperrors.NewExternalError("failed to publish pipeline event", err)
	}
	log.Debug().Str("channel", channel).Str("run_id", event.RunID).Msg("published pipeline event")
	return nil
}

// Subscribe subscribes to events on a channel. The returned channel is closed
// when the subscription or the context ends.
func (b *RedisEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.PipelineEvent, error) {
	sub := b.client.Subscribe(ctx, channel)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, apperrors.NewExternalError("failed to subscribe to channel", err)
	}

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	out := make(chan *entities.PipelineEvent)
	go func() {
		defer close(out)
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var event entities.PipelineEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Warn().Err(err).Str("channel", channel).Msg("discarding malformed pipeline event")
					continue
				}
				select {
				case out <- &event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// Close closes all active subscriptions
func (b *RedisEventBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	var firstErr error
	for _, sub := range b.subs {
		if err := sub.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	b.subs = nil
	return firstErr
}
