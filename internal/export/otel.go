package export

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the counters and histograms a batch export run
// publishes, grounded on the teacher's internal/storage/dolt meter
// wiring (otel.Meter(...) plus Int64Counter/Float64Histogram). Nil
// fields are safe to record on: NewMetrics always returns a usable
// set, even when the global MeterProvider is the no-op default.
type Metrics struct {
	schemasTotal   metric.Int64Counter
	schemasFailed  metric.Int64Counter
	compressMillis metric.Float64Histogram
	mipGap         metric.Float64Histogram
}

// NewMetrics registers export's instruments against the global
// MeterProvider. Call once per process (or per batch run); recording
// against the returned value is cheap and concurrency-safe.
func NewMetrics() *Metrics {
	m := otel.Meter("github.com/steveyegge/schemacompress/export")

	metrics := &Metrics{}
	metrics.schemasTotal, _ = m.Int64Counter("schemacompress.export.schemas_total",
		metric.WithDescription("Schemas attempted in a batch export run"),
		metric.WithUnit("{schema}"),
	)
	metrics.schemasFailed, _ = m.Int64Counter("schemacompress.export.schemas_failed",
		metric.WithDescription("Schemas that failed precondition checks or the solve"),
		metric.WithUnit("{schema}"),
	)
	metrics.compressMillis, _ = m.Float64Histogram("schemacompress.export.compress_ms",
		metric.WithDescription("Wall-clock time spent compressing one schema"),
		metric.WithUnit("ms"),
	)
	metrics.mipGap, _ = m.Float64Histogram("schemacompress.export.mip_gap",
		metric.WithDescription("Reported MIP gap of a solved schema's incumbent"),
	)
	return metrics
}

// RecordEntry folds one schema's outcome into the metrics: the
// attempt counter always increments, the failure counter only on
// failure, and the histograms only when the values are meaningful.
func (m *Metrics) RecordEntry(ctx context.Context, e Entry, elapsedMillis float64) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes()
	if m.schemasTotal != nil {
		m.schemasTotal.Add(ctx, 1, attrs)
	}
	if !e.Solved || e.Error != "" {
		if m.schemasFailed != nil {
			m.schemasFailed.Add(ctx, 1, attrs)
		}
	}
	if m.compressMillis != nil {
		m.compressMillis.Record(ctx, elapsedMillis, attrs)
	}
	if e.Solved && m.mipGap != nil {
		m.mipGap.Record(ctx, e.MIPGap, attrs)
	}
}
