// Package batch runs independent parse or serialize calls concurrently
// over a set of documents, grounded on sqldef/database/concurrent.go's
// errgroup.Group-with-SetLimit pattern (see DESIGN.md): each document is
// a wholly separate parser.Parser/serializer.Serializer instance (spec.md
// §5 requires no shared mutable state between concurrent parses), so the
// only coordination needed is bounding how many run at once and
// collecting results back in input order.
package batch

import (
	"bytes"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/ajis-lang/ajis-go"
	"github.com/ajis-lang/ajis-go/diag"
	"github.com/ajis-lang/ajis-go/parser"
	"github.com/ajis-lang/ajis-go/segment"
	"github.com/ajis-lang/ajis-go/serializer"
)

// ParseResult is one document's outcome: either a complete segment
// stream, or the fatal diagnostic that halted it.
type ParseResult struct {
	Segments []segment.Segment
	Fatal    *diag.Diagnostic
}

// ParseAll parses every document in sources independently and
// concurrently, honoring settings and cancel identically to a single
// parser.Open call. concurrency caps how many parses run at once; 0
// disables concurrency (sequential), negative means unbounded.
//
// Results are returned in the same order as sources, regardless of
// completion order, mirroring ConcurrentMapFuncWithError's ordering
// channel.
func ParseAll(sources []io.Reader, settings ajis.Settings, cancel <-chan struct{}, concurrency int) []ParseResult {
	results := make([]ParseResult, len(sources))

	eg := errgroup.Group{}
	switch {
	case concurrency == 0:
		eg.SetLimit(1)
	case concurrency > 0:
		eg.SetLimit(concurrency)
	}

	for i := range sources {
		i := i
		eg.Go(func() error {
			results[i] = parseOne(sources[i], settings, cancel)
			return nil
		})
	}
	_ = eg.Wait() // parseOne never returns a Go error; failures live in ParseResult.Fatal

	return results
}

func parseOne(src io.Reader, settings ajis.Settings, cancel <-chan struct{}) ParseResult {
	p := parser.Open(src, settings, cancel, 0)
	var segs []segment.Segment
	for {
		seg, res := p.Next()
		switch res {
		case parser.ResultSegment:
			segs = append(segs, seg)
		case parser.ResultEndOfStream, parser.ResultCancelled:
			return ParseResult{Segments: segs, Fatal: p.LastFatal()}
		}
	}
}

// SerializeResult is one document's serialized output, or the error
// that stopped it.
type SerializeResult struct {
	Output []byte
	Err    error
}

// SerializeAll serializes each of docs (independent segment streams)
// concurrently, with the same concurrency semantics as ParseAll.
func SerializeAll(docs [][]segment.Segment, settings ajis.Settings, concurrency int) []SerializeResult {
	results := make([]SerializeResult, len(docs))

	eg := errgroup.Group{}
	switch {
	case concurrency == 0:
		eg.SetLimit(1)
	case concurrency > 0:
		eg.SetLimit(concurrency)
	}

	for i := range docs {
		i := i
		eg.Go(func() error {
			results[i] = serializeOne(docs[i], settings)
			return nil
		})
	}
	_ = eg.Wait()

	return results
}

func serializeOne(doc []segment.Segment, settings ajis.Settings) SerializeResult {
	var buf bytes.Buffer
	s := serializer.Open(&buf, settings)
	for _, seg := range doc {
		if err := s.Write(seg); err != nil {
			return SerializeResult{Err: err}
		}
	}
	if err := s.Close(); err != nil {
		return SerializeResult{Err: err}
	}
	return SerializeResult{Output: buf.Bytes()}
}
