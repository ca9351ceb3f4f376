package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrSessionNotFound is returned when no history row matches
var ErrSessionNotFound = errors.New("session not found")

const schema = `
CREATE TABLE IF NOT EXISTS mining_sessions (
	id               BIGSERIAL PRIMARY KEY,
	session_id       TEXT        NOT NULL UNIQUE,
	hash             TEXT        NOT NULL DEFAULT '',
	addr1            TEXT        NOT NULL DEFAULT '',
	addr2            TEXT        NOT NULL DEFAULT '',
	value            BIGINT      NOT NULL DEFAULT 0,
	header_timestamp BIGINT      NOT NULL DEFAULT 0,
	target           TEXT        NOT NULL DEFAULT '',
	time_limit       BIGINT      NOT NULL DEFAULT 0,
	flag             INTEGER     NOT NULL DEFAULT 0,
	state            TEXT        NOT NULL,
	state_file       TEXT,
	resumed_from     TEXT,
	nonce            TEXT,
	started_at       TIMESTAMPTZ NOT NULL,
	updated_at       TIMESTAMPTZ NOT NULL,
	solved_at        TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS mining_sessions_started_at_idx ON mining_sessions (started_at DESC);
CREATE INDEX IF NOT EXISTS mining_sessions_state_file_idx ON mining_sessions (state_file);
`

const sessionColumns = `id, session_id, hash, addr1, addr2, value, header_timestamp, target,
	time_limit, flag, state, state_file, resumed_from, nonce, started_at, updated_at, solved_at`

// SessionRepository handles mining session history
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// EnsureSchema creates the history table if it does not exist
func (r *SessionRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create mining_sessions: %w", err)
	}
	return nil
}

// CreateSession records a freshly started session. History writes are not
// ordered, so a pause or solution may already have created the row; its
// state is kept and only the work parameters are filled in.
func (r *SessionRepository) CreateSession(ctx context.Context, rec *SessionRecord) error {
	query := `
		INSERT INTO mining_sessions (session_id, hash, addr1, addr2, value, header_timestamp, target,
		                             time_limit, flag, state, started_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		ON CONFLICT (session_id) DO UPDATE
		SET hash = EXCLUDED.hash, addr1 = EXCLUDED.addr1, addr2 = EXCLUDED.addr2,
		    value = EXCLUDED.value, header_timestamp = EXCLUDED.header_timestamp,
		    target = EXCLUDED.target, time_limit = EXCLUDED.time_limit, flag = EXCLUDED.flag,
		    started_at = LEAST(mining_sessions.started_at, EXCLUDED.started_at),
		    updated_at = GREATEST(mining_sessions.updated_at, EXCLUDED.updated_at)
		RETURNING id, state, started_at, updated_at`

	now := time.Now().UTC()

	err := r.db.QueryRowContext(ctx, query,
		rec.SessionID, rec.Hash, rec.Addr1, rec.Addr2, rec.Value, rec.Timestamp, rec.Target,
		rec.TimeLimit, rec.Flag, StateRunning, now,
	).Scan(&rec.ID, &rec.State, &rec.StartedAt, &rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// CreateResumedSession records the session produced by resuming stateFile.
// The work parameters are copied from the session that was paused into
// stateFile when it is known.
func (r *SessionRepository) CreateResumedSession(ctx context.Context, sessionID, stateFile string) error {
	now := time.Now().UTC()

	copyQuery := `
		INSERT INTO mining_sessions (session_id, hash, addr1, addr2, value, header_timestamp, target,
		                             time_limit, flag, state, resumed_from, started_at, updated_at)
		SELECT $1::text, hash, addr1, addr2, value, header_timestamp, target, time_limit, flag,
		       $2::text, $3::text, $4::timestamptz, $4::timestamptz
		FROM mining_sessions
		WHERE state_file = $3
		ORDER BY updated_at DESC
		LIMIT 1
		ON CONFLICT (session_id) DO UPDATE
		SET state = EXCLUDED.state, resumed_from = EXCLUDED.resumed_from, updated_at = EXCLUDED.updated_at`

	res, err := r.db.ExecContext(ctx, copyQuery, sessionID, StateRunning, stateFile, now)
	if err != nil {
		return fmt.Errorf("failed to create resumed session: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}

	bareQuery := `
		INSERT INTO mining_sessions (session_id, state, resumed_from, started_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (session_id) DO UPDATE
		SET state = EXCLUDED.state, resumed_from = EXCLUDED.resumed_from, updated_at = EXCLUDED.updated_at`

	if _, err := r.db.ExecContext(ctx, bareQuery, sessionID, StateRunning, stateFile, now); err != nil {
		return fmt.Errorf("failed to create resumed session: %w", err)
	}
	return nil
}

// MarkPaused stores the state file a session was paused into. A session
// whose start is not recorded yet gets a row without work parameters.
func (r *SessionRepository) MarkPaused(ctx context.Context, sessionID, stateFile string) error {
	query := `
		INSERT INTO mining_sessions (session_id, state, state_file, started_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (session_id) DO UPDATE
		SET state = EXCLUDED.state, state_file = EXCLUDED.state_file, updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query, sessionID, StatePaused, stateFile, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to mark session paused: %w", err)
	}
	return nil
}

// MarkSolved records the solving nonce. It reports whether this call made
// the transition, so repeated status polls record a solution once. Like
// MarkPaused it creates the row when the start is not recorded yet.
func (r *SessionRepository) MarkSolved(ctx context.Context, sessionID, nonce string) (bool, error) {
	query := `
		INSERT INTO mining_sessions (session_id, state, nonce, solved_at, started_at, updated_at)
		VALUES ($1, $2, $3, $4, $4, $4)
		ON CONFLICT (session_id) DO UPDATE
		SET state = EXCLUDED.state, nonce = EXCLUDED.nonce,
		    solved_at = EXCLUDED.solved_at, updated_at = EXCLUDED.updated_at
		WHERE mining_sessions.state <> EXCLUDED.state`

	res, err := r.db.ExecContext(ctx, query, sessionID, StateSolved, nonce, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("failed to mark session solved: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to mark session solved: %w", err)
	}
	return n > 0, nil
}

// GetSession retrieves one session by id
func (r *SessionRepository) GetSession(ctx context.Context, sessionID string) (*SessionRecord, error) {
	query := `SELECT ` + sessionColumns + ` FROM mining_sessions WHERE session_id = $1`

	rec, err := scanSession(r.db.QueryRowContext(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return rec, nil
}

// ListSessions returns sessions, newest first
func (r *SessionRepository) ListSessions(ctx context.Context, limit, offset int) ([]*SessionRecord, error) {
	query := `SELECT ` + sessionColumns + `
		FROM mining_sessions
		ORDER BY started_at DESC, id DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	sessions := make([]*SessionRecord, 0, limit)
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sessions: %w", err)
	}

	return sessions, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*SessionRecord, error) {
	rec := &SessionRecord{}
	var (
		stateFile   sql.NullString
		resumedFrom sql.NullString
		nonce       sql.NullString
		solvedAt    sql.NullTime
	)

	err := row.Scan(
		&rec.ID, &rec.SessionID, &rec.Hash, &rec.Addr1, &rec.Addr2, &rec.Value, &rec.Timestamp,
		&rec.Target, &rec.TimeLimit, &rec.Flag, &rec.State, &stateFile, &resumedFrom, &nonce,
		&rec.StartedAt, &rec.UpdatedAt, &solvedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.StateFile = nullString(stateFile)
	rec.ResumedFrom = nullString(resumedFrom)
	rec.Nonce = nullString(nonce)
	if solvedAt.Valid {
		t := solvedAt.Time
		rec.SolvedAt = &t
	}
	return rec, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
