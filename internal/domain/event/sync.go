package event

import "time"

const (
	SyncStatusSuccess = "success"
	SyncStatusFailed  = "failed"
)

type SyncReport struct {
	SyncedAt     time.Time         `json:"synced_at"`
	WorkerCount  int               `json:"worker_count"`
	SuccessCount int               `json:"success_count"`
	FailedCount  int               `json:"failed_count"`
	Results      []SportSyncResult `json:"results"`
}

type SportSyncResult struct {
	Sport      string   `json:"sport"`
	Kind       string   `json:"kind"`
	Status     string   `json:"status"`
	Count      int      `json:"count"`
	Mock       bool     `json:"mock"`
	Sources    []string `json:"sources,omitempty"`
	DurationMs int64    `json:"duration_ms"`
	Message    string   `json:"message,omitempty"`
}
