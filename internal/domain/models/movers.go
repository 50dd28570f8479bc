package models

import "time"

// ProviderAttempt records how one tier of the fallback chain behaved.
type ProviderAttempt struct {
	Provider   string `json:"provider"`
	Records    int    `json:"records"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"durationMs"`
}

// MoversResult is the output of one scanner run.
type MoversResult struct {
	RunID      string            `json:"runId"`
	Session    Session           `json:"session"`
	ObservedAt time.Time         `json:"observedAt"`
	Threshold  float64           `json:"threshold"`
	Provider   string            `json:"provider,omitempty"`
	Exhausted  bool              `json:"exhausted"`
	Movers     []Quote           `json:"movers"`
	Attempts   []ProviderAttempt `json:"attempts"`
}

// SessionInfo describes the session at a point in time.
type SessionInfo struct {
	Session     Session   `json:"session"`
	ObservedAt  time.Time `json:"observedAt"`
	MinuteOfDay int       `json:"minuteOfDay"`
}
