// Package influx records gateway request and session metrics in InfluxDB.
// Writes are asynchronous and batched by the client library.
package influx

import (
	"context"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/influxdata/influxdb-client-go/v2/domain"

	"github.com/bardlex/minegate/pkg/errors"
	"github.com/bardlex/minegate/pkg/log"
)

// Measurement names
const (
	MeasurementRequests = "gateway_requests"
	MeasurementStatus   = "session_status"
)

// Client wraps InfluxDB operations for time-series metrics
type Client struct {
	client   influxdb2.Client
	writeAPI api.WriteAPI
	bucket   string
	org      string
}

// Config holds InfluxDB connection configuration
type Config struct {
	URL    string
	Token  string
	Org    string
	Bucket string

	// BatchSize and FlushInterval tune the async writer; zero keeps 500 points and 1s
	BatchSize     uint
	FlushInterval time.Duration
}

// NewClient creates a new InfluxDB client. Failed async writes are logged.
func NewClient(ctx context.Context, cfg *Config, logger *log.Logger) (*Client, error) {
	batchSize := cfg.BatchSize
	if batchSize == 0 {
		batchSize = 500
	}
	flushInterval := cfg.FlushInterval
	if flushInterval <= 0 {
		flushInterval = time.Second
	}

	client := influxdb2.NewClientWithOptions(cfg.URL, cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(batchSize).
			SetFlushInterval(uint(flushInterval.Milliseconds())).
			SetApplicationName("minegate"))

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	c := &Client{client: client, bucket: cfg.Bucket, org: cfg.Org}
	if err := c.Health(healthCtx); err != nil {
		client.Close()
		return nil, err
	}

	c.writeAPI = client.WriteAPI(cfg.Org, cfg.Bucket)

	errLogger := logger.WithComponent("influx")
	errs := c.writeAPI.Errors()
	go func() {
		for err := range errs {
			errLogger.WithError(err).Warn("influx write failed", "bucket", cfg.Bucket)
		}
	}()

	return c, nil
}

// Close flushes pending points and closes the connection
func (c *Client) Close() {
	if c.writeAPI != nil {
		c.writeAPI.Flush()
	}
	c.client.Close()
}

// Health checks InfluxDB connectivity
func (c *Client) Health(ctx context.Context) error {
	health, err := c.client.Health(ctx)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeStorage, "influx_health", "InfluxDB is unreachable")
	}

	if health.Status != domain.HealthCheckStatusPass {
		se := errors.New(errors.ErrorTypeStorage, "influx_health", "InfluxDB reports unhealthy").
			WithContext("status", string(health.Status))
		if health.Message != nil {
			se.WithContext("detail", *health.Message)
		}
		return se
	}

	return nil
}

// Flush forces a write of all pending points
func (c *Client) Flush() {
	c.writeAPI.Flush()
}

// WriteRequestMetric records one served HTTP request
func (c *Client) WriteRequestMetric(method, route string, status int, duration time.Duration) {
	c.writeAPI.WritePoint(requestPoint(method, route, status, duration, time.Now()))
}

// WriteStatusMetric records one status observation of a session
func (c *Client) WriteStatusMetric(sessionID string, isMining, solutionFound bool, totalHashes uint64, hashRate float64) {
	c.writeAPI.WritePoint(statusPoint(sessionID, isMining, solutionFound, totalHashes, hashRate, time.Now()))
}

func requestPoint(method, route string, status int, duration time.Duration, ts time.Time) *write.Point {
	return write.NewPointWithMeasurement(MeasurementRequests).
		AddTag("method", method).
		AddTag("route", route).
		AddTag("status", strconv.Itoa(status)).
		AddField("duration_ms", float64(duration.Nanoseconds())/1e6).
		AddField("count", 1).
		SetTime(ts)
}

func statusPoint(sessionID string, isMining, solutionFound bool, totalHashes uint64, hashRate float64, ts time.Time) *write.Point {
	return write.NewPointWithMeasurement(MeasurementStatus).
		AddTag("session_id", sessionID).
		AddField("is_mining", isMining).
		AddField("solution_found", solutionFound).
		AddField("total_hashes", totalHashes).
		AddField("hash_rate", hashRate).
		SetTime(ts)
}
