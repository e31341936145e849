package telemetry

import (
	"math"
	"runtime"
	"runtime/debug"
	"sync"
	"time"
)

// maxMemorySamples bounds the sample ring.
const maxMemorySamples = 100

// MemorySample is one observation of heap usage.
type MemorySample struct {
	Timestamp time.Time
	HeapAlloc uint64
	HeapSys   uint64
	Limit     uint64
}

// Pressure returns the used/limit ratio of the sample, or 0 when the
// limit is unknown.
func (s MemorySample) Pressure() float64 {
	if s.Limit == 0 {
		return 0
	}
	return float64(s.HeapAlloc) / float64(s.Limit)
}

// MemoryMonitorConfig configures the memory monitor.
type MemoryMonitorConfig struct {
	// PressureThreshold is the used/limit ratio above which memory
	// pressure is reported as high. Value should be between 0 and 1.
	// Default: 0.8
	PressureThreshold float64

	// Limit overrides the detected memory limit in bytes.
	// Default: 0 (use the runtime's soft memory limit, falling back to
	// bytes obtained from the OS when no limit is set)
	Limit uint64
}

// MemoryMonitor keeps a bounded ring of recent heap usage samples.
//
// Contract:
// - Concurrency: all methods are safe for concurrent use.
// - Observation-only: the monitor never triggers GC or frees memory.
type MemoryMonitor struct {
	config MemoryMonitorConfig

	mu      sync.Mutex
	samples []MemorySample // oldest first, len <= maxMemorySamples
}

// NewMemoryMonitor creates a memory monitor.
func NewMemoryMonitor(config MemoryMonitorConfig) *MemoryMonitor {
	if config.PressureThreshold <= 0 || config.PressureThreshold >= 1 {
		config.PressureThreshold = 0.8
	}

	return &MemoryMonitor{config: config}
}

// Sample records one heap observation and returns it. Only the last
// 100 samples are retained.
func (m *MemoryMonitor) Sample() MemorySample {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	limit := m.config.Limit
	if limit == 0 {
		if soft := debug.SetMemoryLimit(-1); soft < math.MaxInt64 {
			limit = uint64(soft)
		} else {
			limit = stats.Sys
		}
	}

	s := MemorySample{
		Timestamp: time.Now(),
		HeapAlloc: stats.HeapAlloc,
		HeapSys:   stats.HeapSys,
		Limit:     limit,
	}
	m.record(s)
	return s
}

func (m *MemoryMonitor) record(s MemorySample) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.samples = append(m.samples, s)
	if len(m.samples) > maxMemorySamples {
		m.samples = m.samples[1:]
	}
}

// Pressure returns the used/limit ratio of the most recent sample, or 0
// when nothing has been sampled yet.
func (m *MemoryMonitor) Pressure() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.samples) == 0 {
		return 0
	}
	return m.samples[len(m.samples)-1].Pressure()
}

// IsMemoryPressureHigh reports whether the most recent sample's
// used/limit ratio exceeds the configured threshold.
func (m *MemoryMonitor) IsMemoryPressureHigh() bool {
	return m.Pressure() > m.config.PressureThreshold
}

// Samples returns a copy of the retained samples, oldest first.
func (m *MemoryMonitor) Samples() []MemorySample {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]MemorySample, len(m.samples))
	copy(out, m.samples)
	return out
}

// Reset drops all retained samples.
func (m *MemoryMonitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.samples = nil
}
