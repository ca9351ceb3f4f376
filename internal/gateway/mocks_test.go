package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bardlex/minegate/internal/database/postgres"
	"github.com/bardlex/minegate/internal/messaging"
	"github.com/bardlex/minegate/internal/miner"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var fixedNow = time.Unix(1_700_000_000, 0)

// mockMiner implements miner.Service with canned replies
type mockMiner struct {
	mu sync.Mutex

	startID   string
	startErr  error
	pauseFile string
	pauseErr  error
	resumeID  string
	resumeErr error

	// statusFn is called with the 1-based status call number
	statusFn func(n int) (*miner.Status, error)

	panicOnStart bool

	startParams []miner.StartParams
	pauseIDs    []string
	resumeFiles []string
	statusIDs   []string
}

func (m *mockMiner) StartMining(_ context.Context, params miner.StartParams) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.panicOnStart {
		panic("miner exploded")
	}
	m.startParams = append(m.startParams, params)
	return m.startID, m.startErr
}

func (m *mockMiner) PauseMining(_ context.Context, sessionID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauseIDs = append(m.pauseIDs, sessionID)
	return m.pauseFile, m.pauseErr
}

func (m *mockMiner) ResumeMining(_ context.Context, stateFile string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resumeFiles = append(m.resumeFiles, stateFile)
	return m.resumeID, m.resumeErr
}

func (m *mockMiner) GetStatus(_ context.Context, sessionID string) (*miner.Status, error) {
	m.mu.Lock()
	m.statusIDs = append(m.statusIDs, sessionID)
	n := len(m.statusIDs)
	fn := m.statusFn
	m.mu.Unlock()

	if fn == nil {
		return &miner.Status{}, nil
	}
	return fn(n)
}

func (m *mockMiner) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.startParams) + len(m.pauseIDs) + len(m.resumeFiles) + len(m.statusIDs)
}

// mockEvents records published events
type mockEvents struct {
	mu     sync.Mutex
	events []*messaging.MiningEvent
	err    error
}

func (m *mockEvents) PublishEvent(_ context.Context, event *messaging.MiningEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return m.err
}

func (m *mockEvents) types() []messaging.EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]messaging.EventType, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.Type)
	}
	return out
}

// mockHistory is an in-memory HistoryStore
type mockHistory struct {
	mu        sync.Mutex
	started   []*postgres.SessionRecord
	paused    map[string]string
	resumed   map[string]string
	solved    map[string]string
	sessions  []*postgres.SessionRecord
	lastLimit int
	lastOff   int
	err       error
}

func newMockHistory() *mockHistory {
	return &mockHistory{
		paused:  make(map[string]string),
		resumed: make(map[string]string),
		solved:  make(map[string]string),
	}
}

func (m *mockHistory) RecordStart(_ context.Context, rec *postgres.SessionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = append(m.started, rec)
	return m.err
}

func (m *mockHistory) RecordPause(_ context.Context, sessionID, stateFile string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused[sessionID] = stateFile
	return m.err
}

func (m *mockHistory) RecordResume(_ context.Context, sessionID, stateFile string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resumed[sessionID] = stateFile
	return m.err
}

func (m *mockHistory) RecordSolution(_ context.Context, sessionID, nonce string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.solved[sessionID] = nonce
	return m.err
}

func (m *mockHistory) ListSessions(_ context.Context, limit, offset int) ([]*postgres.SessionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastLimit, m.lastOff = limit, offset
	if m.err != nil {
		return nil, m.err
	}
	return m.sessions, nil
}

func (m *mockHistory) GetSession(_ context.Context, sessionID string) (*postgres.SessionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, s := range m.sessions {
		if s.SessionID == sessionID {
			return s, nil
		}
	}
	return nil, postgres.ErrSessionNotFound
}

// mockIdempotency is an in-memory IdempotencyStore
type mockIdempotency struct {
	mu        sync.Mutex
	keys      map[string]string
	lookupErr error
	ttl       time.Duration
}

func (m *mockIdempotency) LookupStart(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lookupErr != nil {
		return "", m.lookupErr
	}
	return m.keys[key], nil
}

func (m *mockIdempotency) StoreStart(_ context.Context, key, sessionID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.keys == nil {
		m.keys = make(map[string]string)
	}
	m.keys[key] = sessionID
	m.ttl = ttl
	return nil
}

// mockLimiter allows limit hits per subject
type mockLimiter struct {
	mu   sync.Mutex
	hits map[string]int
	err  error
}

func (m *mockLimiter) Allow(_ context.Context, subject string, limit int, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	if m.hits == nil {
		m.hits = make(map[string]int)
	}
	m.hits[subject]++
	return m.hits[subject] <= limit, nil
}

// mockMetrics counts observations
type mockMetrics struct {
	mu       sync.Mutex
	requests []string
	statuses []string
}

func (m *mockMetrics) WriteRequestMetric(method, route string, status int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, method+" "+route)
}

func (m *mockMetrics) WriteStatusMetric(sessionID string, _, _ bool, _ uint64, _ float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses = append(m.statuses, sessionID)
}

// newTestRouter builds a router around opts with a fixed clock
func newTestRouter(t *testing.T, opts Options) (*Handler, *gin.Engine) {
	t.Helper()
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	h := NewHandler(opts)
	router, err := NewRouter(h)
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}
	t.Cleanup(h.Wait)
	return h, router
}

func do(router http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func readError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body %q is not JSON: %v", rec.Body.String(), err)
	}
	return body
}
