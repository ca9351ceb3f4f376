// Package miner is the gateway's adapter to the remote MinerService.
// It owns the wire contract, the gRPC connection and the classification of
// remote failures into gateway error types.
package miner

import (
	"context"
)

// Service defines the four operations the gateway forwards to the miner.
// Implementations return *errors.ServiceError values whose type decides the
// HTTP status the gateway answers with.
type Service interface {
	// StartMining begins a new session and returns its id.
	StartMining(ctx context.Context, params StartParams) (string, error)

	// PauseMining pauses a session and returns the opaque state-file handle.
	PauseMining(ctx context.Context, sessionID string) (string, error)

	// ResumeMining restores a paused session and returns the new session id.
	ResumeMining(ctx context.Context, stateFile string) (string, error)

	// GetStatus reports the live progress of a session.
	GetStatus(ctx context.Context, sessionID string) (*Status, error)
}

// StartParams is a fully defaulted and validated start request.
type StartParams struct {
	Hash      string
	Addr1     string
	Addr2     string
	Value     int64
	Timestamp int64
	Target    string
	TimeLimit int64
	Flag      int32
}

// Status is the miner's view of one session.
type Status struct {
	IsMining     bool
	CurrentNonce string
	TotalHashes  uint64
	HashRate     float64
	Message      string
}
