package telemetry

import (
	"testing"
	"time"
)

func TestNewMemoryMonitor_Defaults(t *testing.T) {
	m := NewMemoryMonitor(MemoryMonitorConfig{})

	if m.config.PressureThreshold != 0.8 {
		t.Errorf("PressureThreshold = %f, want 0.8", m.config.PressureThreshold)
	}
}

func TestNewMemoryMonitor_RejectsOutOfRangeThreshold(t *testing.T) {
	for _, v := range []float64{-0.5, 0, 1, 1.5} {
		m := NewMemoryMonitor(MemoryMonitorConfig{PressureThreshold: v})
		if m.config.PressureThreshold != 0.8 {
			t.Errorf("PressureThreshold(%f) = %f, want 0.8", v, m.config.PressureThreshold)
		}
	}
}

func TestMemoryMonitor_Sample(t *testing.T) {
	m := NewMemoryMonitor(MemoryMonitorConfig{})

	s := m.Sample()

	if s.HeapAlloc == 0 {
		t.Error("HeapAlloc should be nonzero in a running process")
	}
	if s.Limit == 0 {
		t.Error("Limit should resolve to a nonzero fallback")
	}
	if s.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
	if got := len(m.Samples()); got != 1 {
		t.Errorf("retained samples = %d, want 1", got)
	}
}

func TestMemoryMonitor_RingIsBounded(t *testing.T) {
	m := NewMemoryMonitor(MemoryMonitorConfig{})

	for i := 0; i < maxMemorySamples+50; i++ {
		m.record(MemorySample{Timestamp: time.Now(), HeapAlloc: uint64(i)})
	}

	samples := m.Samples()
	if len(samples) != maxMemorySamples {
		t.Fatalf("retained samples = %d, want %d", len(samples), maxMemorySamples)
	}
	// The ring keeps the newest samples
	if samples[len(samples)-1].HeapAlloc != uint64(maxMemorySamples+49) {
		t.Errorf("newest sample HeapAlloc = %d, want %d", samples[len(samples)-1].HeapAlloc, maxMemorySamples+49)
	}
	if samples[0].HeapAlloc != 50 {
		t.Errorf("oldest sample HeapAlloc = %d, want 50", samples[0].HeapAlloc)
	}
}

func TestMemoryMonitor_Pressure(t *testing.T) {
	m := NewMemoryMonitor(MemoryMonitorConfig{})

	if m.Pressure() != 0 {
		t.Errorf("Pressure with no samples = %f, want 0", m.Pressure())
	}

	m.record(MemorySample{HeapAlloc: 40, Limit: 100})
	if m.Pressure() != 0.4 {
		t.Errorf("Pressure = %f, want 0.4", m.Pressure())
	}
	if m.IsMemoryPressureHigh() {
		t.Error("pressure 0.4 should not be high")
	}

	m.record(MemorySample{HeapAlloc: 90, Limit: 100})
	if !m.IsMemoryPressureHigh() {
		t.Error("pressure 0.9 should be high")
	}
}

func TestMemoryMonitor_PressureUsesLatestSample(t *testing.T) {
	m := NewMemoryMonitor(MemoryMonitorConfig{})

	m.record(MemorySample{HeapAlloc: 90, Limit: 100})
	m.record(MemorySample{HeapAlloc: 10, Limit: 100})

	if m.IsMemoryPressureHigh() {
		t.Error("pressure should follow the most recent sample")
	}
}

func TestMemoryMonitor_Reset(t *testing.T) {
	m := NewMemoryMonitor(MemoryMonitorConfig{})

	m.Sample()
	m.Reset()

	if got := len(m.Samples()); got != 0 {
		t.Errorf("retained samples after Reset = %d, want 0", got)
	}
	if m.Pressure() != 0 {
		t.Errorf("Pressure after Reset = %f, want 0", m.Pressure())
	}
}

func TestMemoryMonitor_ExplicitLimit(t *testing.T) {
	m := NewMemoryMonitor(MemoryMonitorConfig{Limit: 1 << 40})

	s := m.Sample()
	if s.Limit != 1<<40 {
		t.Errorf("Limit = %d, want configured override", s.Limit)
	}
}
