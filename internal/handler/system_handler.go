package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-survey/internal/config"
	"github.com/stemsi/exstem-survey/internal/response"
)

const metricsInterval = 7 * time.Second

// HealthChecker pings the backing stores.
type HealthChecker interface {
	Check(ctx context.Context) (map[string]string, error)
}

// SessionCounter reports how many sessions are open.
type SessionCounter interface {
	Len() int
}

// SystemHandler serves health and runtime metrics.
type SystemHandler struct {
	checker   HealthChecker
	sessions  SessionCounter
	rdb       *redis.Client
	startTime time.Time
	log       zerolog.Logger
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(checker HealthChecker, sessions SessionCounter, rdb *redis.Client, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		checker:   checker,
		sessions:  sessions,
		rdb:       rdb,
		startTime: time.Now(),
		log:       log.With().Str("component", "system_handler").Logger(),
	}
}

// Health godoc
// GET /health
// 200 when PostgreSQL and Redis answer, 503 otherwise.
func (h *SystemHandler) Health(c *gin.Context) {
	status, err := h.checker.Check(c.Request.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("Health check failed")
		response.FailWithData(c, http.StatusServiceUnavailable, response.ErrServiceUnavailable, status)
		return
	}
	status["status"] = "ok"
	response.Success(c, http.StatusOK, status)
}

type systemMetrics struct {
	Timestamp    int64  `json:"timestamp"`
	Uptime       string `json:"uptime"`
	OpenSessions int    `json:"open_sessions"`

	Goroutines int    `json:"goroutines"`
	HeapAlloc  uint64 `json:"heap_alloc"`
	HeapSys    uint64 `json:"heap_sys"`
	NumGC      uint32 `json:"num_gc"`
	GoVersion  string `json:"go_version"`

	QueuePending int64 `json:"queue_pending"`
	QueueFailed  int64 `json:"queue_failed"`
}

// MetricsSSE godoc
// GET /api/v1/system/metrics
// Streams runtime and queue metrics as server-sent events.
func (h *SystemHandler) MetricsSSE(c *gin.Context) {
	reqCtx := c.Request.Context()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	ticker := time.NewTicker(metricsInterval)
	defer ticker.Stop()

	h.writeMetrics(c)
	for {
		select {
		case <-reqCtx.Done():
			return
		case <-ticker.C:
			h.writeMetrics(c)
		}
	}
}

func (h *SystemHandler) writeMetrics(c *gin.Context) {
	data, err := json.Marshal(h.collect(c.Request.Context()))
	if err != nil {
		return
	}
	c.Writer.Write([]byte("data: "))
	c.Writer.Write(data)
	c.Writer.Write([]byte("\n\n"))
	c.Writer.Flush()
}

func (h *SystemHandler) collect(ctx context.Context) systemMetrics {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	m := systemMetrics{
		Timestamp:    time.Now().Unix(),
		Uptime:       time.Since(h.startTime).Truncate(time.Second).String(),
		OpenSessions: h.sessions.Len(),
		Goroutines:   runtime.NumGoroutine(),
		HeapAlloc:    ms.HeapAlloc,
		HeapSys:      ms.HeapSys,
		NumGC:        ms.NumGC,
		GoVersion:    runtime.Version(),
	}

	pipe := h.rdb.Pipeline()
	pending := pipe.LLen(ctx, config.WorkerKey.PersistResponsesQueue)
	failed := pipe.LLen(ctx, config.WorkerKey.FailedResponsesQueue)
	if _, err := pipe.Exec(ctx); err == nil {
		m.QueuePending, _ = pending.Result()
		m.QueueFailed, _ = failed.Result()
	}
	return m
}
