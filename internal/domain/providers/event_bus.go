package providers

import (
	"context"

	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/entities"
)

// EventChannelPipelineRuns carries completed-pipeline announcements.
const EventChannelPipelineRuns = "pipeline:runs"

// EventBus publishes and subscribes to pipeline events
type EventBus interface {
	// Publish publishes an event to all subscribers of the channel
	Publish(ctx context.Context, channel string, event *entities.PipelineEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.PipelineEvent, error)

	// Close closes the event bus and all subscriptions
	Close() error
}
