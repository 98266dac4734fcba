package observability

import (
	"testing"
	"time"
)

func TestMetricsTallies(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/api/v1/students", "GET", 200, 12*time.Millisecond)
	m.RecordRequest("/api/v1/students", "GET", 200, 8*time.Millisecond)
	m.RecordRequest("/api/v1/students", "POST", 201, 30*time.Millisecond)
	m.RecordError("/api/v1/auth/login", "POST", "UNAUTHORIZED")

	if got := m.RequestCount("/api/v1/students", "GET", 200); got != 2 {
		t.Fatalf("RequestCount = %d, want 2", got)
	}
	if got := m.RequestCount("/api/v1/students", "POST", 201); got != 1 {
		t.Fatalf("RequestCount = %d, want 1", got)
	}
	if got := m.RequestCount("/api/v1/students", "GET", 500); got != 0 {
		t.Fatalf("RequestCount for unseen outcome = %d, want 0", got)
	}
	if got := m.ErrorCount("/api/v1/auth/login", "POST", "UNAUTHORIZED"); got != 1 {
		t.Fatalf("ErrorCount = %d, want 1", got)
	}
}

func TestMetricsNilReceiver(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "INTERNAL_ERROR")
	if m.RequestCount("/", "GET", 200) != 0 || m.ErrorCount("/", "GET", "INTERNAL_ERROR") != 0 {
		t.Fatal("nil metrics must read as zero")
	}
}
