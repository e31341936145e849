package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// PerformanceMetrics records named start/stop timers and labeled
// numeric values, and mirrors both onto an OpenTelemetry meter so an
// external dashboard can scrape them.
//
// Contract:
// - Concurrency: all methods are safe for concurrent use.
// - Observation-only: recording never fails the observed operation.
type PerformanceMetrics struct {
	startedAt time.Time

	mu      sync.Mutex
	started map[string]time.Time
	timings map[string][]time.Duration
	values  map[string]float64

	durationHist metric.Float64Histogram
	valueGauge   metric.Float64Gauge
}

// NewPerformanceMetrics creates a recorder. A nil meter disables the
// OpenTelemetry mirror and keeps the recordings in-process only.
func NewPerformanceMetrics(meter metric.Meter) (*PerformanceMetrics, error) {
	if meter == nil {
		meter = noop.NewMeterProvider().Meter("clientops")
	}

	durationHist, err := meter.Float64Histogram(
		"client.op.duration_ms",
		metric.WithDescription("Duration of named client-side operations"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	valueGauge, err := meter.Float64Gauge(
		"client.op.value",
		metric.WithDescription("Labeled numeric observations from the client"),
	)
	if err != nil {
		return nil, err
	}

	return &PerformanceMetrics{
		startedAt:    time.Now(),
		started:      make(map[string]time.Time),
		timings:      make(map[string][]time.Duration),
		values:       make(map[string]float64),
		durationHist: durationHist,
		valueGauge:   valueGauge,
	}, nil
}

// StartTimer begins (or restarts) the named timer.
func (p *PerformanceMetrics) StartTimer(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.started[name] = time.Now()
}

// StopTimer ends the named timer and records its duration. Stopping a
// timer that was never started records nothing and returns 0.
func (p *PerformanceMetrics) StopTimer(ctx context.Context, name string) time.Duration {
	p.mu.Lock()
	start, ok := p.started[name]
	if !ok {
		p.mu.Unlock()
		return 0
	}
	delete(p.started, name)

	d := time.Since(start)
	p.timings[name] = append(p.timings[name], d)
	p.mu.Unlock()

	p.durationHist.Record(ctx, float64(d)/float64(time.Millisecond),
		metric.WithAttributes(attribute.String("op", name)))

	return d
}

// RecordValue stores a labeled numeric observation, overwriting any
// previous value under the same name.
func (p *PerformanceMetrics) RecordValue(ctx context.Context, name string, value float64) {
	p.mu.Lock()
	p.values[name] = value
	p.mu.Unlock()

	p.valueGauge.Record(ctx, value,
		metric.WithAttributes(attribute.String("op", name)))
}

// Timings returns a copy of the recorded durations for name.
func (p *PerformanceMetrics) Timings(name string) []time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]time.Duration, len(p.timings[name]))
	copy(out, p.timings[name])
	return out
}

// Value returns the last recorded value for name.
func (p *PerformanceMetrics) Value(name string) (float64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	v, ok := p.values[name]
	return v, ok
}

// Uptime returns the elapsed time since the recorder was constructed.
func (p *PerformanceMetrics) Uptime() time.Duration {
	return time.Since(p.startedAt)
}

// Reset drops recorded timers and values. Uptime is unaffected.
func (p *PerformanceMetrics) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.started = make(map[string]time.Time)
	p.timings = make(map[string][]time.Duration)
	p.values = make(map[string]float64)
}
