// Package api exposes the live monitoring state over a read-only JSON
// API, for operators who want the dashboard numbers without the TUI.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ALOKESHWARGOUD/repscan/internal/intercept"
	"github.com/ALOKESHWARGOUD/repscan/internal/scanner"
	"github.com/ALOKESHWARGOUD/repscan/internal/threat"
	"github.com/ALOKESHWARGOUD/repscan/internal/velocity"
)

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 15 * time.Second
)

// Handler serves the monitoring endpoints. All endpoints are read-only
// views over the in-memory state owned by the scanner loop.
type Handler struct {
	store *intercept.Store
	vel   *velocity.Tracker
	scan  *scanner.Scanner
	log   *zap.Logger
}

func NewHandler(store *intercept.Store, vel *velocity.Tracker, scan *scanner.Scanner, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{store: store, vel: vel, scan: scan, log: log}
}

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/status", handler.GetStatus)     // GET /api/v1/status
		v1.GET("/signals", handler.ListSignals)  // GET /api/v1/signals
		v1.GET("/velocity", handler.GetVelocity) // GET /api/v1/velocity
		v1.GET("/threats", handler.GetThreats)   // GET /api/v1/threats
	}
}

// NewServer builds the HTTP server around a release-mode gin engine.
func NewServer(addr string, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	SetupRoutes(router, handler)

	return &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, srv *http.Server, log *zap.Logger) error {
	errc := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("api shutdown", zap.Error(err))
		}
		return nil
	}
}

// StatusResponse summarizes the monitor's current state.
type StatusResponse struct {
	Keyword     string  `json:"keyword"`
	Scanning    bool    `json:"scanning"`
	Simulated   bool    `json:"simulated"`
	SignalCount int     `json:"signal_count"`
	Velocity    float64 `json:"velocity"`
}

// GetStatus handles GET /api/v1/status.
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Keyword:     h.scan.Keyword(),
		Scanning:    h.scan.Scanning(),
		Simulated:   h.scan.Simulated(),
		SignalCount: h.store.Len(),
		Velocity:    h.vel.Average(),
	})
}

// SignalsResponse wraps the intercepted signal list, newest first.
type SignalsResponse struct {
	Signals []intercept.Signal `json:"signals"`
	Total   int                `json:"total"`
}

// ListSignals handles GET /api/v1/signals.
func (h *Handler) ListSignals(c *gin.Context) {
	signals := h.store.All()
	c.JSON(http.StatusOK, SignalsResponse{
		Signals: signals,
		Total:   len(signals),
	})
}

// VelocityResponse carries the rolling rate window and its average.
type VelocityResponse struct {
	Samples []velocity.Sample `json:"samples"`
	Average float64           `json:"average"`
}

// GetVelocity handles GET /api/v1/velocity.
func (h *Handler) GetVelocity(c *gin.Context) {
	c.JSON(http.StatusOK, VelocityResponse{
		Samples: h.vel.Samples(),
		Average: h.vel.Average(),
	})
}

// GetThreats handles GET /api/v1/threats. The rollup is computed on
// demand from the current store contents.
func (h *Handler) GetThreats(c *gin.Context) {
	report := threat.Aggregate(h.store.All())
	c.JSON(http.StatusOK, report)
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "repscan",
	})
}
