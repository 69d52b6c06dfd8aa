package transform

import "github.com/ajis-lang/ajis-go/segment"

// Source is the pull interface every transducer both consumes and
// produces, letting transforms compose by wrapping one another without
// materializing the whole stream (spec.md §4.5: "composes by
// streaming").
type Source interface {
	// Next returns the next segment and true, or a zero Segment and
	// false once the source is exhausted.
	Next() (segment.Segment, bool)
}

// SliceSource adapts an in-memory segment slice (e.g. buffered test
// fixtures, or the output of parser.Parser collected by a caller) to
// Source.
type SliceSource struct {
	segs []segment.Segment
	pos  int
}

// NewSliceSource wraps segs for streaming.
func NewSliceSource(segs []segment.Segment) *SliceSource {
	return &SliceSource{segs: segs}
}

// Next implements Source.
func (s *SliceSource) Next() (segment.Segment, bool) {
	if s.pos >= len(s.segs) {
		return segment.Segment{}, false
	}
	seg := s.segs[s.pos]
	s.pos++
	return seg, true
}

// ParserSource adapts anything shaped like *parser.Parser (a Next()
// (segment.Segment, parser.Result) pull producer) to Source without
// importing package parser, avoiding an import cycle since parser tests
// may want to drive transforms directly.
type ParserSource struct {
	next func() (segment.Segment, bool)
}

// NewParserSource wraps a parser-shaped pull function. ok should be
// false only at end of stream or cancellation; callers that need to
// distinguish should inspect the underlying parser after draining.
func NewParserSource(next func() (segment.Segment, bool)) *ParserSource {
	return &ParserSource{next: next}
}

// Next implements Source.
func (s *ParserSource) Next() (segment.Segment, bool) { return s.next() }

// Drain pulls every remaining segment from src into a slice. Useful in
// tests and for small documents; streaming consumers should call Next
// directly instead.
func Drain(src Source) []segment.Segment {
	var out []segment.Segment
	for {
		seg, ok := src.Next()
		if !ok {
			return out
		}
		out = append(out, seg)
	}
}

// frameTracker mirrors the parser's container-frame stack purely from
// the segment stream, so a transform downstream of the parser can still
// compute "current path" without re-parsing. It is shared by every
// transform in this package.
type frameTracker struct {
	cursor cursor
}

func (t *frameTracker) onContainerStart(isArray bool) {
	t.cursor.stack = append(t.cursor.stack, cursorFrame{isArray: isArray})
}

func (t *frameTracker) onContainerEnd() {
	if len(t.cursor.stack) == 0 {
		return
	}
	t.cursor.stack = t.cursor.stack[:len(t.cursor.stack)-1]
	t.advanceParent()
}

func (t *frameTracker) onPropertyName(name string) {
	if n := len(t.cursor.stack); n > 0 {
		t.cursor.stack[n-1].pendName = name
	}
}

// onValueConsumed is called after a primitive value (or a just-closed
// container) completes, to advance the parent array's index counter.
func (t *frameTracker) onValueConsumed() {
	t.advanceParent()
}

func (t *frameTracker) advanceParent() {
	if n := len(t.cursor.stack); n > 0 && t.cursor.stack[n-1].isArray {
		t.cursor.stack[n-1].index++
	}
}

func isContainerStart(seg segment.Segment) bool { return seg.Kind == segment.ContainerStart }
func isContainerEnd(seg segment.Segment) bool   { return seg.Kind == segment.ContainerEnd }
func isPrimitiveValue(seg segment.Segment) bool { return seg.Kind == segment.Value }

// matchDepthDelta reports how seg changes a buffering transform's
// "interior depth" counter when re-consuming a single value's segments
// from scratch (depth starts at 0 on the value's first segment): +1 on
// entering a container, -1 on leaving one, 0 for a lone primitive Value.
// A primitive's own first segment yields 0, so callers must special-case
// the zero-depth Value case as already complete rather than skip it.
func matchDepthDelta(seg segment.Segment) int {
	switch seg.Kind {
	case segment.ContainerStart:
		return 1
	case segment.ContainerEnd:
		return -1
	default:
		return 0
	}
}
