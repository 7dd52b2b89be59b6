// Package healthcheck provides readiness check functionality following the
// Health Check API pattern for cloud-native applications
package healthcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Status represents the health status
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// Check represents the result of one health check
type Check struct {
	Name        string        `json:"name"`
	Status      Status        `json:"status"`
	Message     string        `json:"message,omitempty"`
	LastChecked time.Time     `json:"last_checked"`
	Duration    time.Duration `json:"-"`
	Metadata    any           `json:"metadata,omitempty"`
}

// Response represents the health check response
type Response struct {
	Status        Status        `json:"status"`
	Version       string        `json:"version"`
	Timestamp     time.Time     `json:"timestamp"`
	Checks        []Check       `json:"checks"`
	TotalDuration time.Duration `json:"-"`
}

// Checker defines the interface for health checks
type Checker interface {
	Check(ctx context.Context) Check
}

// HealthCheck runs registered checkers concurrently and caches the result
// for a short while so frequent polling cannot hammer dependencies
type HealthCheck struct {
	version  string
	checkers map[string]Checker
	logger   *zap.Logger
	timeout  time.Duration
	mu       sync.RWMutex
	cache    *Response
	cacheTTL time.Duration
}

// New creates a new health check instance
func New(version string, logger *zap.Logger) *HealthCheck {
	return &HealthCheck{
		version:  version,
		checkers: make(map[string]Checker),
		logger:   logger.Named("healthcheck"),
		timeout:  5 * time.Second,
		cacheTTL: 2 * time.Second,
	}
}

// Register registers a health checker
func (h *HealthCheck) Register(name string, checker Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers[name] = checker
	h.cache = nil
}

// SetCacheTTL sets the cache TTL for health check responses
func (h *HealthCheck) SetCacheTTL(ttl time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cacheTTL = ttl
}

// ReadinessHandler answers 200 when every check is healthy or degraded and
// 503 when any check is unhealthy
func (h *HealthCheck) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := h.Check(r.Context())

		status := http.StatusOK
		if response.Status == StatusUnhealthy {
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode readiness response", zap.Error(err))
		}
	}
}

// Check performs all health checks
func (h *HealthCheck) Check(ctx context.Context) Response {
	h.mu.RLock()
	if h.cache != nil && time.Since(h.cache.Timestamp) < h.cacheTTL {
		cached := *h.cache
		h.mu.RUnlock()
		return cached
	}
	checkers := make(map[string]Checker, len(h.checkers))
	for name, checker := range h.checkers {
		checkers[name] = checker
	}
	h.mu.RUnlock()

	start := time.Now()
	response := Response{
		Version:   h.version,
		Timestamp: start,
		Status:    StatusHealthy,
		Checks:    make([]Check, 0, len(checkers)),
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	var wg sync.WaitGroup
	checksChan := make(chan Check, len(checkers))
	for name, checker := range checkers {
		wg.Add(1)
		go func(n string, c Checker) {
			defer wg.Done()
			check := c.Check(checkCtx)
			check.Name = n
			checksChan <- check
		}(name, checker)
	}
	wg.Wait()
	close(checksChan)

	for check := range checksChan {
		response.Checks = append(response.Checks, check)

		switch {
		case check.Status == StatusUnhealthy:
			response.Status = StatusUnhealthy
			h.logger.Warn("Health check failed",
				zap.String("check", check.Name),
				zap.String("message", check.Message),
			)
		case check.Status == StatusDegraded && response.Status == StatusHealthy:
			response.Status = StatusDegraded
		}
	}
	sort.Slice(response.Checks, func(i, j int) bool {
		return response.Checks[i].Name < response.Checks[j].Name
	})
	response.TotalDuration = time.Since(start)

	h.mu.Lock()
	h.cache = &response
	h.mu.Unlock()

	return response
}

// DatabaseChecker pings the GORM connection pool
type DatabaseChecker struct {
	db *gorm.DB
}

// NewDatabaseChecker creates a new database checker
func NewDatabaseChecker(db *gorm.DB) *DatabaseChecker {
	return &DatabaseChecker{db: db}
}

// Check performs database health check
func (d *DatabaseChecker) Check(ctx context.Context) Check {
	start := time.Now()
	check := Check{LastChecked: start}

	sqlDB, err := d.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	check.Duration = time.Since(start)

	if err != nil {
		check.Status = StatusUnhealthy
		check.Message = err.Error()
		return check
	}

	stats := sqlDB.Stats()
	check.Status = StatusHealthy
	check.Metadata = map[string]any{
		"open_conns": stats.OpenConnections,
		"in_use":     stats.InUse,
		"idle":       stats.Idle,
		"max_open":   stats.MaxOpenConnections,
		"wait_count": stats.WaitCount,
	}

	if stats.MaxOpenConnections > 0 && float64(stats.InUse)/float64(stats.MaxOpenConnections) > 0.9 {
		check.Status = StatusDegraded
		check.Message = "High connection pool utilization"
	}
	return check
}

// PingChecker reports unhealthy when ping fails
type PingChecker struct {
	ping func(ctx context.Context) error
}

// NewPingChecker creates a checker around a ping function
func NewPingChecker(ping func(ctx context.Context) error) *PingChecker {
	return &PingChecker{ping: ping}
}

// Check performs the ping
func (p *PingChecker) Check(ctx context.Context) Check {
	start := time.Now()
	err := p.ping(ctx)
	check := Check{
		Status:      StatusHealthy,
		LastChecked: start,
		Duration:    time.Since(start),
	}
	if err != nil {
		check.Status = StatusUnhealthy
		check.Message = err.Error()
	}
	return check
}

// CustomChecker allows for custom health check logic
type CustomChecker struct {
	check func(ctx context.Context) (Status, string, any)
}

// NewCustomChecker creates a new custom checker
func NewCustomChecker(check func(ctx context.Context) (Status, string, any)) *CustomChecker {
	return &CustomChecker{check: check}
}

// Check performs custom health check
func (c *CustomChecker) Check(ctx context.Context) Check {
	start := time.Now()
	status, message, metadata := c.check(ctx)

	return Check{
		Status:      status,
		Message:     message,
		Metadata:    metadata,
		LastChecked: start,
		Duration:    time.Since(start),
	}
}

// MarshalJSON reports the duration in milliseconds
func (c Check) MarshalJSON() ([]byte, error) {
	type Alias Check
	return json.Marshal(&struct {
		Duration float64 `json:"duration_ms"`
		Alias
	}{
		Duration: float64(c.Duration.Microseconds()) / 1000,
		Alias:    Alias(c),
	})
}

// MarshalJSON reports the total duration in milliseconds
func (r Response) MarshalJSON() ([]byte, error) {
	type Alias Response
	return json.Marshal(&struct {
		TotalDuration float64 `json:"total_duration_ms"`
		Alias
	}{
		TotalDuration: float64(r.TotalDuration.Microseconds()) / 1000,
		Alias:         Alias(r),
	})
}

// Counter is anything that can report how many items it serves
type Counter interface {
	Count() int
}

// CatalogChecker reports unhealthy while the catalog is empty
func CatalogChecker(catalog Counter) *CustomChecker {
	return NewCustomChecker(func(context.Context) (Status, string, any) {
		count := catalog.Count()
		if count == 0 {
			return StatusUnhealthy, "catalog has no recipes", nil
		}
		return StatusHealthy, "", map[string]any{"recipes": count}
	})
}
