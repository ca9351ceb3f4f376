package postgres

import (
	"time"
)

// Session states as stored in mining_sessions.state
const (
	StateRunning = "running"
	StatePaused  = "paused"
	StateSolved  = "solved"
)

// SessionRecord is one row of mining_sessions. Resumed sessions get their own
// row whose ResumedFrom names the state file they were restored from.
type SessionRecord struct {
	ID          int64      `db:"id" json:"-"`
	SessionID   string     `db:"session_id" json:"session_id"`
	Hash        string     `db:"hash" json:"hash,omitempty"`
	Addr1       string     `db:"addr1" json:"addr1,omitempty"`
	Addr2       string     `db:"addr2" json:"addr2,omitempty"`
	Value       int64      `db:"value" json:"value"`
	Timestamp   int64      `db:"timestamp" json:"timestamp"`
	Target      string     `db:"target" json:"target,omitempty"`
	TimeLimit   int64      `db:"time_limit" json:"time_limit"`
	Flag        int32      `db:"flag" json:"flag"`
	State       string     `db:"state" json:"state"`
	StateFile   *string    `db:"state_file" json:"state_file,omitempty"`
	ResumedFrom *string    `db:"resumed_from" json:"resumed_from,omitempty"`
	Nonce       *string    `db:"nonce" json:"nonce,omitempty"`
	StartedAt   time.Time  `db:"started_at" json:"started_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
	SolvedAt    *time.Time `db:"solved_at" json:"solved_at,omitempty"`
}
