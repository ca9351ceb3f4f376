package messaging

import "time"

// EventType identifies a session lifecycle transition
type EventType string

const (
	EventStarted       EventType = "started"
	EventPaused        EventType = "paused"
	EventResumed       EventType = "resumed"
	EventSolutionFound EventType = "solution_found"
)

// MiningEvent is published whenever the gateway observes a session transition.
// Events are keyed by SessionID so one session's history stays ordered
// within a partition.
type MiningEvent struct {
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`

	// Set for paused events, and for resumed events with the originating handle
	StateFile string `json:"state_file,omitempty"`

	// Set for started events
	Hash      string `json:"hash,omitempty"`
	Target    string `json:"target,omitempty"`
	TimeLimit int64  `json:"time_limit,omitempty"`

	// Set for solution_found events
	Nonce       string  `json:"nonce,omitempty"`
	TotalHashes uint64  `json:"total_hashes,omitempty"`
	HashRate    float64 `json:"hash_rate,omitempty"`
	Message     string  `json:"message,omitempty"`

	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
