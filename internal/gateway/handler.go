// Package gateway is the HTTP face of minegate. It validates requests,
// forwards them to the miner service and maps the outcome onto HTTP.
package gateway

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/bardlex/minegate/internal/database/postgres"
	"github.com/bardlex/minegate/internal/messaging"
	"github.com/bardlex/minegate/internal/miner"
	"github.com/bardlex/minegate/pkg/log"
)

// Header names used by the gateway
const (
	HeaderRequestID          = "X-Request-ID"
	HeaderIdempotencyKey     = "Idempotency-Key"
	HeaderIdempotentReplayed = "Idempotent-Replayed"
)

const (
	defaultWatchInterval = time.Second
	sideEffectTimeout    = 10 * time.Second
	storeTimeout         = 2 * time.Second
	healthTimeout        = 2 * time.Second

	// Solutions announced within this window are not announced again
	announcedCapacity = 10000
	announcedTTL      = 24 * time.Hour
)

// Options wires a Handler. Only Miner is required; every nil integration is
// skipped.
type Options struct {
	Logger *log.Logger
	Miner  miner.Service

	Events         EventPublisher
	History        HistoryStore
	Idempotency    IdempotencyStore
	IdempotencyTTL time.Duration
	Limiter        RateLimiter
	RateLimit      int // requests per minute per client, 0 disables
	Metrics        MetricsRecorder

	HealthChecks map[string]HealthCheck
	MinerState   func() string

	WatchInterval time.Duration
	CORSOrigins   []string

	ServiceName string
	Version     string

	// Now replaces time.Now in tests
	Now func() time.Time
}

// Handler serves the gateway's HTTP operations
type Handler struct {
	logger   *log.Logger
	miner    miner.Service
	validate *validator.Validate

	events         EventPublisher
	history        HistoryStore
	idempotency    IdempotencyStore
	idempotencyTTL time.Duration
	limiter        RateLimiter
	rateLimit      int
	metrics        MetricsRecorder

	healthChecks map[string]HealthCheck
	minerState   func() string

	watchInterval time.Duration
	upgrader      websocket.Upgrader
	corsOrigins   []string

	serviceName string
	version     string
	now         func() time.Time

	// sessions whose solution was already announced
	announceMu sync.Mutex
	announced  *expirable.LRU[string, struct{}]

	// open status watches and background side effects
	watches sync.WaitGroup
	wg      sync.WaitGroup
}

// NewHandler creates a handler from opts
func NewHandler(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = log.Nop()
	}

	h := &Handler{
		logger:         logger.WithComponent("gateway"),
		miner:          opts.Miner,
		validate:       newValidator(),
		events:         opts.Events,
		history:        opts.History,
		idempotency:    opts.Idempotency,
		idempotencyTTL: opts.IdempotencyTTL,
		limiter:        opts.Limiter,
		rateLimit:      opts.RateLimit,
		metrics:        opts.Metrics,
		healthChecks:   opts.HealthChecks,
		minerState:     opts.MinerState,
		watchInterval:  opts.WatchInterval,
		corsOrigins:    opts.CORSOrigins,
		serviceName:    opts.ServiceName,
		version:        opts.Version,
		now:            opts.Now,
		announced:      expirable.NewLRU[string, struct{}](announcedCapacity, nil, announcedTTL),
	}

	if h.watchInterval <= 0 {
		h.watchInterval = defaultWatchInterval
	}
	if h.idempotencyTTL <= 0 {
		h.idempotencyTTL = 24 * time.Hour
	}
	if h.now == nil {
		h.now = time.Now
	}
	if h.serviceName == "" {
		h.serviceName = "minegate"
	}

	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}

	return h
}

// Wait blocks until every open watch has ended and every background side
// effect has finished. Watches end when their request context does, so the
// HTTP server's base context must be cancelled first.
func (h *Handler) Wait() {
	h.watches.Wait()
	h.wg.Wait()
}

// StartResponse is the body of a successful start or resume
type StartResponse struct {
	SessionID string `json:"session_id"`
}

// PauseResponse is the body of a successful pause
type PauseResponse struct {
	StateFile string `json:"state_file"`
}

// StartMining handles POST /mine/start
func (h *Handler) StartMining(c *gin.Context) {
	const op = "start_mining"
	ctx := c.Request.Context()

	var req StartRequest
	if err := h.bindJSON(c, op, &req); err != nil {
		h.respondError(c, err)
		return
	}

	key := strings.TrimSpace(c.GetHeader(HeaderIdempotencyKey))
	if key != "" && h.idempotency != nil {
		sessionID, err := h.idempotency.LookupStart(ctx, key)
		if err != nil {
			h.logger.WithContext(ctx).WithError(err).Warn("idempotency lookup failed", "key", key)
		} else if sessionID != "" {
			c.Header(HeaderIdempotentReplayed, "true")
			c.JSON(http.StatusOK, StartResponse{SessionID: sessionID})
			return
		}
	}

	params := req.Params(h.now())
	sessionID, err := h.miner.StartMining(ctx, params)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if key != "" && h.idempotency != nil {
		storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storeTimeout)
		if err := h.idempotency.StoreStart(storeCtx, key, sessionID, h.idempotencyTTL); err != nil {
			h.logger.WithContext(ctx).WithError(err).Warn("idempotency store failed", "key", key)
		}
		cancel()
	}

	h.logger.WithContext(ctx).WithSession(sessionID).Info("mining started")

	if h.history != nil {
		rec := &postgres.SessionRecord{
			SessionID: sessionID,
			Hash:      params.Hash,
			Addr1:     params.Addr1,
			Addr2:     params.Addr2,
			Value:     params.Value,
			Timestamp: params.Timestamp,
			Target:    params.Target,
			TimeLimit: params.TimeLimit,
			Flag:      params.Flag,
		}
		h.sideEffect(ctx, "record_start", func(ctx context.Context) error {
			return h.history.RecordStart(ctx, rec)
		})
	}
	h.publish(ctx, &messaging.MiningEvent{
		Type:      messaging.EventStarted,
		SessionID: sessionID,
		Hash:      params.Hash,
		Target:    params.Target,
		TimeLimit: params.TimeLimit,
	})

	c.JSON(http.StatusOK, StartResponse{SessionID: sessionID})
}

// PauseMining handles POST /mine/:session_id/pause
func (h *Handler) PauseMining(c *gin.Context) {
	const op = "pause_mining"
	ctx := c.Request.Context()

	sessionID := c.Param("session_id")
	if err := checkIdentifier(op, sessionID); err != nil {
		h.respondError(c, err)
		return
	}

	stateFile, err := h.miner.PauseMining(ctx, sessionID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.WithContext(ctx).WithSession(sessionID).Info("mining paused", "state_file", stateFile)

	if h.history != nil {
		h.sideEffect(ctx, "record_pause", func(ctx context.Context) error {
			return h.history.RecordPause(ctx, sessionID, stateFile)
		})
	}
	h.publish(ctx, &messaging.MiningEvent{
		Type:      messaging.EventPaused,
		SessionID: sessionID,
		StateFile: stateFile,
	})

	c.JSON(http.StatusOK, PauseResponse{StateFile: stateFile})
}

// ResumeMining handles POST /mine/resume
func (h *Handler) ResumeMining(c *gin.Context) {
	const op = "resume_mining"
	ctx := c.Request.Context()

	var req ResumeRequest
	if err := h.bindJSON(c, op, &req); err != nil {
		h.respondError(c, err)
		return
	}

	stateFile := *req.StateFile
	if err := checkIdentifier(op, stateFile); err != nil {
		h.respondError(c, err)
		return
	}

	sessionID, err := h.miner.ResumeMining(ctx, stateFile)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.WithContext(ctx).WithSession(sessionID).Info("mining resumed", "state_file", stateFile)

	if h.history != nil {
		h.sideEffect(ctx, "record_resume", func(ctx context.Context) error {
			return h.history.RecordResume(ctx, sessionID, stateFile)
		})
	}
	h.publish(ctx, &messaging.MiningEvent{
		Type:      messaging.EventResumed,
		SessionID: sessionID,
		StateFile: stateFile,
	})

	c.JSON(http.StatusOK, StartResponse{SessionID: sessionID})
}

// GetStatus handles GET /mine/:session_id/status
func (h *Handler) GetStatus(c *gin.Context) {
	const op = "get_status"
	ctx := c.Request.Context()

	sessionID := c.Param("session_id")
	if err := checkIdentifier(op, sessionID); err != nil {
		h.respondError(c, err)
		return
	}

	view, err := h.fetchStatus(ctx, sessionID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// fetchStatus queries the miner and runs the status side effects
func (h *Handler) fetchStatus(ctx context.Context, sessionID string) (StatusView, error) {
	st, err := h.miner.GetStatus(ctx, sessionID)
	if err != nil {
		return StatusView{}, err
	}

	view := NewStatusView(st)

	if h.metrics != nil {
		h.metrics.WriteStatusMetric(sessionID, view.IsMining, view.SolutionFound, view.TotalHashes, view.HashRate)
	}
	if view.SolutionFound {
		h.announceSolution(ctx, sessionID, view)
	}

	return view, nil
}

// announceSolution records and publishes a found solution once per session
func (h *Handler) announceSolution(ctx context.Context, sessionID string, view StatusView) {
	if !h.firstAnnouncement(sessionID) {
		return
	}

	nonce := *view.SolutionNonce
	h.logger.WithContext(ctx).WithSession(sessionID).Info("solution found", "nonce", nonce)

	if h.history != nil {
		h.sideEffect(ctx, "record_solution", func(ctx context.Context) error {
			return h.history.RecordSolution(ctx, sessionID, nonce)
		})
	}
	h.publish(ctx, &messaging.MiningEvent{
		Type:        messaging.EventSolutionFound,
		SessionID:   sessionID,
		Nonce:       nonce,
		TotalHashes: view.TotalHashes,
		HashRate:    view.HashRate,
		Message:     view.Message,
	})
}

// firstAnnouncement remembers sessionID and reports whether it was not
// already announced within announcedTTL
func (h *Handler) firstAnnouncement(sessionID string) bool {
	h.announceMu.Lock()
	defer h.announceMu.Unlock()

	if _, seen := h.announced.Peek(sessionID); seen {
		return false
	}
	h.announced.Add(sessionID, struct{}{})
	return true
}

// publish sends event in the background when events are enabled
func (h *Handler) publish(ctx context.Context, event *messaging.MiningEvent) {
	if h.events == nil {
		return
	}
	event.RequestID = log.RequestIDFromContext(ctx)
	h.sideEffect(ctx, "publish_"+string(event.Type), func(ctx context.Context) error {
		return h.events.PublishEvent(ctx, event)
	})
}

// sideEffect runs fn detached from the request. Failures are logged only.
func (h *Handler) sideEffect(ctx context.Context, name string, fn func(context.Context) error) {
	ctx = context.WithoutCancel(ctx)

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()

		ctx, cancel := context.WithTimeout(ctx, sideEffectTimeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			h.logger.WithContext(ctx).WithError(err).Warn("side effect failed", "operation", name)
		}
	}()
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Version string            `json:"version,omitempty"`
	Miner   string            `json:"miner,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:  "healthy",
		Service: h.serviceName,
		Version: h.version,
		Checks:  make(map[string]string, len(h.healthChecks)),
	}
	if h.minerState != nil {
		resp.Miner = h.minerState()
	}

	for name, check := range h.healthChecks {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		err := check(ctx)
		cancel()

		if err != nil {
			resp.Status = "degraded"
			resp.Checks[name] = err.Error()
			continue
		}
		resp.Checks[name] = "ok"
	}

	status := http.StatusOK
	if resp.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
