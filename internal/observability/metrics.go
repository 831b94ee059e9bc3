package observability

import (
	"strconv"
	"sync"
	"time"
)

// RouteStats accumulates counters for one method+path+status combination.
type RouteStats struct {
	Count         int64         `json:"count"`
	Errors        int64         `json:"errors"`
	TotalDuration time.Duration `json:"totalDurationNs"`
}

// Metrics keeps in-memory per-route counters. Good enough for the ops
// endpoint; anything longer-lived belongs in an external collector.
type Metrics struct {
	mu      sync.Mutex
	started time.Time
	routes  map[string]*RouteStats
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		started: time.Now(),
		routes:  make(map[string]*RouteStats),
	}
}

// RecordRequest counts one handled request and its latency.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := routeKey(path, method, strconv.Itoa(status))
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := m.statsLocked(key)
	stats.Count++
	stats.TotalDuration += duration
}

// RecordError counts one request that resolved to a domain error.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := routeKey(path, method, code)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statsLocked(key).Errors++
}

// Snapshot copies the counters for reporting, with process uptime.
func (m *Metrics) Snapshot() (time.Duration, map[string]RouteStats) {
	if m == nil {
		return 0, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]RouteStats, len(m.routes))
	for key, stats := range m.routes {
		out[key] = *stats
	}
	return time.Since(m.started), out
}

func (m *Metrics) statsLocked(key string) *RouteStats {
	stats, ok := m.routes[key]
	if !ok {
		stats = &RouteStats{}
		m.routes[key] = stats
	}
	return stats
}

func routeKey(path, method, suffix string) string {
	return path + "|" + method + "|" + suffix
}
