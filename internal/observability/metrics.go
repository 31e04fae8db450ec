package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	errorCount   map[string]int64
	workflow     map[string]int64
}

// Workflow counter names.
const (
	MetricTransitionCommitted      = "transition_committed"
	MetricTransitionConflict       = "transition_conflict"
	MetricTransitionRejected       = "transition_rejected"
	MetricNotificationSent         = "notification_sent"
	MetricNotificationFailed       = "notification_failed"
	MetricNotificationRecordFailed = "notification_record_failed"
)

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
		workflow:     make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// Inc increments a workflow counter.
func (m *Metrics) Inc(name string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workflow[name]++
}

// Count returns the current value of a workflow counter.
func (m *Metrics) Count(name string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.workflow[name]
}

// Snapshot copies every counter for the readiness endpoint.
func (m *Metrics) Snapshot() map[string]int64 {
	out := map[string]int64{}
	if m == nil {
		return out
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range m.requestCount {
		out["request|"+k] = v
	}
	for k, v := range m.errorCount {
		out["error|"+k] = v
	}
	for k, v := range m.workflow {
		out[k] = v
	}
	return out
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
