package entities

import (
	"time"
)

// PipelineEvent announces that an ETL run has replaced the offer store.
// Cached snapshots are invalidated when one of these arrives.
type PipelineEvent struct {
	RunID       string    `json:"run_id"`
	Offers      int       `json:"offers"`
	CompletedAt time.Time `json:"completed_at"`
}
