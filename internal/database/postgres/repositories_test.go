package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"
)

func TestNullString(t *testing.T) {
	if nullString(sql.NullString{}) != nil {
		t.Error("invalid NullString should map to nil")
	}

	got := nullString(sql.NullString{String: "state.bin", Valid: true})
	if got == nil || *got != "state.bin" {
		t.Errorf("nullString() = %v, want state.bin", got)
	}
}

// newTestRepository connects to MINEGATE_TEST_POSTGRES_URL or skips
func newTestRepository(t *testing.T) *SessionRepository {
	t.Helper()

	url := os.Getenv("MINEGATE_TEST_POSTGRES_URL")
	if url == "" || testing.Short() {
		t.Skip("Skipping integration test: MINEGATE_TEST_POSTGRES_URL not set")
	}

	ctx := context.Background()
	client, err := NewClient(ctx, DefaultConfig(url))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	repo := NewSessionRepository(client.DB())
	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
	return repo
}

func TestSessionRepository_Lifecycle(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	suffix := time.Now().UnixNano()
	sessionID := fmt.Sprintf("test-%d", suffix)
	stateFile := fmt.Sprintf("state_%d.bin", suffix)
	resumedID := sessionID + "-r"

	rec := &SessionRecord{
		SessionID: sessionID,
		Hash:      "00ff",
		Value:     42,
		Target:    "000000ff",
		TimeLimit: 60,
		Flag:      1,
	}
	if err := repo.CreateSession(ctx, rec); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if rec.ID == 0 {
		t.Error("CreateSession() should assign an id")
	}

	if err := repo.MarkPaused(ctx, sessionID, stateFile); err != nil {
		t.Fatalf("MarkPaused() error = %v", err)
	}

	if err := repo.CreateResumedSession(ctx, resumedID, stateFile); err != nil {
		t.Fatalf("CreateResumedSession() error = %v", err)
	}

	resumed, err := repo.GetSession(ctx, resumedID)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if resumed.Hash != "00ff" || resumed.Value != 42 || resumed.State != StateRunning {
		t.Errorf("resumed session did not inherit parameters: %+v", resumed)
	}
	if resumed.ResumedFrom == nil || *resumed.ResumedFrom != stateFile {
		t.Errorf("ResumedFrom = %v, want %s", resumed.ResumedFrom, stateFile)
	}

	first, err := repo.MarkSolved(ctx, resumedID, "12345")
	if err != nil || !first {
		t.Fatalf("MarkSolved() = %v, %v; want true", first, err)
	}
	again, err := repo.MarkSolved(ctx, resumedID, "12345")
	if err != nil || again {
		t.Errorf("second MarkSolved() = %v, %v; want false", again, err)
	}

	sessions, err := repo.ListSessions(ctx, 10, 0)
	if err != nil {
		t.Fatalf("ListSessions() error = %v", err)
	}
	if len(sessions) == 0 {
		t.Error("ListSessions() returned no rows")
	}

	if _, err := repo.GetSession(ctx, "does-not-exist"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("GetSession(missing) error = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionRepository_PauseRecordedBeforeStart(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	suffix := time.Now().UnixNano()
	sessionID := fmt.Sprintf("early-pause-%d", suffix)
	stateFile := fmt.Sprintf("state_%d.bin", suffix)

	if err := repo.MarkPaused(ctx, sessionID, stateFile); err != nil {
		t.Fatalf("MarkPaused() error = %v", err)
	}

	rec := &SessionRecord{SessionID: sessionID, Hash: "00ff", Value: 7, Target: "000000ff"}
	if err := repo.CreateSession(ctx, rec); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if rec.State != StatePaused {
		t.Errorf("CreateSession() state = %q, want the pause to survive", rec.State)
	}

	got, err := repo.GetSession(ctx, sessionID)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if got.State != StatePaused || got.StateFile == nil || *got.StateFile != stateFile {
		t.Errorf("pause lost: %+v", got)
	}
	if got.Hash != "00ff" || got.Value != 7 {
		t.Errorf("work parameters not filled in: %+v", got)
	}
}

func TestSessionRepository_SolutionRecordedBeforeStart(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	sessionID := fmt.Sprintf("early-solution-%d", time.Now().UnixNano())

	first, err := repo.MarkSolved(ctx, sessionID, "99")
	if err != nil || !first {
		t.Fatalf("MarkSolved() = %v, %v; want true", first, err)
	}
	again, err := repo.MarkSolved(ctx, sessionID, "99")
	if err != nil || again {
		t.Errorf("second MarkSolved() = %v, %v; want false", again, err)
	}

	if err := repo.CreateSession(ctx, &SessionRecord{SessionID: sessionID, Hash: "aa"}); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	got, err := repo.GetSession(ctx, sessionID)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if got.State != StateSolved || got.Nonce == nil || *got.Nonce != "99" || got.Hash != "aa" {
		t.Errorf("unexpected record: %+v", got)
	}
}

func TestSessionRepository_ResumeUnknownStateFile(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	sessionID := fmt.Sprintf("orphan-%d", time.Now().UnixNano())
	if err := repo.CreateResumedSession(ctx, sessionID, "unknown.bin"); err != nil {
		t.Fatalf("CreateResumedSession() error = %v", err)
	}

	rec, err := repo.GetSession(ctx, sessionID)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if rec.Hash != "" || rec.ResumedFrom == nil || *rec.ResumedFrom != "unknown.bin" {
		t.Errorf("unexpected orphan record: %+v", rec)
	}
}
