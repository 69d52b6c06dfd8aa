// Package ajisio supplies the byte Source/Sink decorators spec.md §5
// describes around the parser and serializer: transparent gzip framing
// and profile-aware buffer sizing. Buffer sizing follows
// minio-simdjson-go's cpuid.CPU.Has/Supports gating of wider code paths
// on cache-rich CPUs (see stage1_find_marks_amd64.go,
// simdjson_amd64.go) — here used to pick a read-buffer window instead
// of a SIMD path, since this package has no assembly of its own.
package ajisio

import (
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/cpuid/v2"

	"github.com/ajis-lang/ajis-go"
)

// BufferSize picks a read-buffer window for profile, per spec.md §5's
// advisory (never semantics-changing) resource hint: LowMemory always
// takes the conservative floor, HighThroughput widens the window when
// the running CPU has enough cache to make the larger window pay for
// itself, Universal is a fixed balanced default.
func BufferSize(profile ajis.Profile) int {
	const (
		floor   = 4 * 1024
		balanced = 64 * 1024
		wide    = 1024 * 1024
	)
	switch profile {
	case ajis.LowMemory:
		return floor
	case ajis.HighThroughput:
		if cpuid.CPU.Cache.L3 >= 8*1024*1024 || cpuid.CPU.Cache.L2 >= 1024*1024 {
			return wide
		}
		return balanced
	default:
		return balanced
	}
}

// GzipSource wraps an underlying reader that holds gzip-framed AJIS
// text, decompressing transparently as the parser's Reader pulls bytes.
type GzipSource struct {
	gz *gzip.Reader
}

// OpenGzipSource opens r as a gzip stream. The returned *GzipSource must
// be closed once the parse completes to release the decompressor.
func OpenGzipSource(r io.Reader) (*GzipSource, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	return &GzipSource{gz: gz}, nil
}

// Read implements io.Reader.
func (s *GzipSource) Read(p []byte) (int, error) { return s.gz.Read(p) }

// Close releases the decompressor.
func (s *GzipSource) Close() error { return s.gz.Close() }

// GzipSink wraps an underlying writer, gzip-framing every byte the
// serializer writes.
type GzipSink struct {
	gz *gzip.Writer
}

// NewGzipSink wraps w at the given compression level (gzip.DefaultCompression
// if level is 0). The returned *GzipSink must be closed to flush the
// final gzip footer.
func NewGzipSink(w io.Writer, level int) (*GzipSink, error) {
	if level == 0 {
		level = gzip.DefaultCompression
	}
	gz, err := gzip.NewWriterLevel(w, level)
	if err != nil {
		return nil, err
	}
	return &GzipSink{gz: gz}, nil
}

// Write implements io.Writer.
func (s *GzipSink) Write(p []byte) (int, error) { return s.gz.Write(p) }

// Close flushes and closes the gzip stream.
func (s *GzipSink) Close() error { return s.gz.Close() }
