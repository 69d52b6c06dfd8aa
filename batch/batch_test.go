package batch_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajis-lang/ajis-go"
	"github.com/ajis-lang/ajis-go/batch"
	"github.com/ajis-lang/ajis-go/segment"
)

func readers(docs []string) []io.Reader {
	out := make([]io.Reader, len(docs))
	for i, d := range docs {
		out[i] = strings.NewReader(d)
	}
	return out
}

func TestParseAllPreservesOrder(t *testing.T) {
	t.Parallel()

	docs := []string{`{"n":1}`, `{"n":2}`, `[1,2,3]`, `"plain string"`}

	results := batch.ParseAll(readers(docs), ajis.DefaultSettings(), nil, 2)
	require.Len(t, results, len(docs))
	for i, r := range results {
		assert.Nil(t, r.Fatal, "document %d", i)
		assert.NotEmpty(t, r.Segments, "document %d", i)
	}
	require.Len(t, results[0].Segments, 4)
	require.Len(t, results[1].Segments, 4)
	assert.Equal(t, "1", string(results[0].Segments[2].NumberText.Bytes))
	assert.Equal(t, "2", string(results[1].Segments[2].NumberText.Bytes))
	assert.Equal(t, segment.Array, results[2].Segments[0].ContainerKind)
	assert.Equal(t, segment.Str, results[3].Segments[0].ValueKind)
}

func TestParseAllSequentialWhenConcurrencyZero(t *testing.T) {
	t.Parallel()

	docs := []string{`1`, `2`, `3`}
	results := batch.ParseAll(readers(docs), ajis.DefaultSettings(), nil, 0)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Nil(t, r.Fatal)
	}
}

func TestParseAllReportsFatalPerDocument(t *testing.T) {
	t.Parallel()

	docs := []string{`{"ok":1}`, `{not json`}
	results := batch.ParseAll(readers(docs), ajis.DefaultSettings(), nil, 2)
	require.Len(t, results, 2)
	assert.Nil(t, results[0].Fatal)
	require.NotNil(t, results[1].Fatal)
}

func TestSerializeAllRoundTripsParseOutput(t *testing.T) {
	t.Parallel()

	docs := []string{`{"a":1}`, `[1,2,3]`}
	parsed := batch.ParseAll(readers(docs), ajis.DefaultSettings(), nil, 2)

	toSerialize := make([][]segment.Segment, len(parsed))
	for i, r := range parsed {
		toSerialize[i] = r.Segments
	}

	out := batch.SerializeAll(toSerialize, ajis.DefaultSettings(), 2)
	require.Len(t, out, len(docs))
	for i, r := range out {
		require.NoError(t, r.Err)
		assert.NotEmpty(t, r.Output)
		assert.Equal(t, docs[i], string(r.Output))
	}
}
