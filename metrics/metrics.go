// Package metrics adapts a segment.Segment stream to Prometheus
// instrumentation, per spec.md §5's explicit note that observability is
// an external consumer's concern, never the parser's: nothing in
// package parser or serializer imports this package. A Collector
// subscribes downstream of a parser or transform chain and exports
// counters/histograms for bytes read, diagnostics by severity, and
// parse duration. Grounded on the ecosystem's client_golang idiom (see
// DESIGN.md: no pack example wires client_golang against real traffic,
// only lists it in go.mod, so this package follows the library's own
// documented constructor/Register shape rather than a pack file).
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ajis-lang/ajis-go/segment"
)

func kindLabel(k segment.Kind) string {
	switch k {
	case segment.ContainerStart:
		return "container_start"
	case segment.ContainerEnd:
		return "container_end"
	case segment.PropertyName:
		return "property_name"
	case segment.Value:
		return "value"
	case segment.Progress:
		return "progress"
	case segment.Diagnostic:
		return "diagnostic"
	default:
		return "unknown"
	}
}

// Collector exports Prometheus metrics for one or more parse sessions.
// It is safe to Register once and reuse across many Observe calls.
type Collector struct {
	bytesRead       prometheus.Counter
	diagnostics     *prometheus.CounterVec
	parseDuration   prometheus.Histogram
	segmentsEmitted *prometheus.CounterVec
}

// NewCollector builds a Collector with the given namespace/subsystem
// prefix (e.g. "ajis", "parser").
func NewCollector(namespace, subsystem string) *Collector {
	return &Collector{
		bytesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "bytes_read_total",
			Help:      "Cumulative bytes consumed from the byte source, per Progress segments.",
		}),
		diagnostics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "diagnostics_total",
			Help:      "Diagnostics observed, labeled by severity and code.",
		}, []string{"severity", "code"}),
		parseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "parse_duration_seconds",
			Help:      "Wall-clock duration of one complete document parse.",
			Buckets:   prometheus.DefBuckets,
		}),
		segmentsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "segments_emitted_total",
			Help:      "Segments emitted, labeled by kind.",
		}, []string{"kind"}),
	}
}

// MustRegister registers every metric with reg, panicking on a
// duplicate-registration error (the standard client_golang idiom for
// process-lifetime collectors registered exactly once at startup).
func (c *Collector) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(c.bytesRead, c.diagnostics, c.parseDuration, c.segmentsEmitted)
}

// Observe updates counters from a single segment. Callers typically
// call this from the consuming side of a parser.Next loop, never from
// inside the parser itself.
func (c *Collector) Observe(seg segment.Segment) {
	c.segmentsEmitted.WithLabelValues(kindLabel(seg.Kind)).Inc()

	switch seg.Kind {
	case segment.Progress:
		if seg.BytesRead > 0 {
			c.bytesRead.Add(float64(seg.BytesRead))
		}
	case segment.Diagnostic:
		c.diagnostics.WithLabelValues(seg.Diag.Severity.String(), string(seg.Diag.Code)).Inc()
	}
}

// TimeParse returns a func to be deferred at the start of a parse call;
// calling it records the elapsed duration in parseDuration.
func (c *Collector) TimeParse() func() {
	start := time.Now()
	return func() { c.parseDuration.Observe(time.Since(start).Seconds()) }
}
