package ajisio_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajis-lang/ajis-go"
	"github.com/ajis-lang/ajis-go/ajisio"
)

func TestGzipRoundTrip(t *testing.T) {
	t.Parallel()

	want := []byte(`{"a":1,"b":[2,3,4]}`)

	var compressed bytes.Buffer
	sink, err := ajisio.NewGzipSink(&compressed, 0)
	require.NoError(t, err)
	_, err = sink.Write(want)
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	src, err := ajisio.OpenGzipSource(&compressed)
	require.NoError(t, err)
	defer src.Close()

	got, err := io.ReadAll(src)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestBufferSize(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		profile ajis.Profile
		check   func(*testing.T, int)
	}{
		"low memory takes the floor": {
			profile: ajis.LowMemory,
			check: func(t *testing.T, n int) {
				t.Helper()
				assert.Equal(t, 4*1024, n)
			},
		},
		"universal is balanced": {
			profile: ajis.Universal,
			check: func(t *testing.T, n int) {
				t.Helper()
				assert.Equal(t, 64*1024, n)
			},
		},
		"high throughput is never below balanced": {
			profile: ajis.HighThroughput,
			check: func(t *testing.T, n int) {
				t.Helper()
				assert.GreaterOrEqual(t, n, 64*1024)
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			n := ajisio.BufferSize(tc.profile)
			tc.check(t, n)
		})
	}
}
