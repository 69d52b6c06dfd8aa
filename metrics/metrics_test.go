package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajis-lang/ajis-go"
	"github.com/ajis-lang/ajis-go/diag"
	"github.com/ajis-lang/ajis-go/metrics"
	"github.com/ajis-lang/ajis-go/segment"
)

func gatherCounter(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		var total float64
		for _, m := range fam.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		return total
	}
	return 0
}

func TestCollectorObserveBytesRead(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := metrics.NewCollector("ajis", "test")
	c.MustRegister(reg)

	c.Observe(segment.Segment{Kind: segment.Progress, BytesRead: 1024})
	c.Observe(segment.Segment{Kind: segment.Progress, BytesRead: 2048})

	assert.Equal(t, float64(2048), gatherCounter(t, reg, "ajis_test_bytes_read_total"))
}

func TestCollectorObserveDiagnostics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := metrics.NewCollector("ajis", "test")
	c.MustRegister(reg)

	c.Observe(segment.Segment{
		Kind: segment.Diagnostic,
		Diag: diag.New(diag.UnexpectedToken, diag.Error, ajis.Position{}),
	})

	assert.Equal(t, float64(1), gatherCounter(t, reg, "ajis_test_diagnostics_total"))
}

func TestCollectorTimeParse(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := metrics.NewCollector("ajis", "test")
	c.MustRegister(reg)

	stop := c.TimeParse()
	stop()

	families, err := reg.Gather()
	require.NoError(t, err)
	var found bool
	for _, fam := range families {
		if fam.GetName() == "ajis_test_parse_duration_seconds" {
			found = true
		}
	}
	assert.True(t, found)
}
