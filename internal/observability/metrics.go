package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics keeps process-local request and error tallies for the portal API,
// keyed by route, method and outcome. Counters reset on restart.
type Metrics struct {
	mu        sync.Mutex
	requests  map[string]int64
	durations map[string]time.Duration
	errors    map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requests:  make(map[string]int64),
		durations: make(map[string]time.Duration),
		errors:    make(map[string]int64),
	}
}

// RecordRequest tallies one handled request and accumulates its latency.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := outcomeKey(path, method, strconv.Itoa(status))
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[key]++
	m.durations[key] += duration
}

// RecordError tallies one domain error by its error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[outcomeKey(path, method, code)]++
}

// RequestCount returns the tally for one route outcome.
func (m *Metrics) RequestCount(path, method string, status int) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[outcomeKey(path, method, strconv.Itoa(status))]
}

// ErrorCount returns the tally for one route error code.
func (m *Metrics) ErrorCount(path, method, code string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errors[outcomeKey(path, method, code)]
}

func outcomeKey(path, method, outcome string) string {
	return path + "|" + method + "|" + outcome
}
