package transform

import (
	"github.com/ajis-lang/ajis-go/segment"
	"github.com/ajis-lang/ajis-go/token"
)

// SelectMode controls how Select emits the matched subtree.
type SelectMode int

const (
	// SelectBare emits the subtree itself as the new root document.
	SelectBare SelectMode = iota
	// SelectWrap emits {"<last path element>": <subtree>} as the new
	// root document.
	SelectWrap
)

type selectPhase int

const (
	phaseSearching selectPhase = iota
	phaseWrapOpen
	phaseWrapName
	phaseInSubtree
	phaseWrapClose
	phaseDone
)

// SelectSubtree emits a new root document built from the single
// subtree found at path; every segment outside that subtree is
// dropped, per spec.md §4.5.
type SelectSubtree struct {
	src  Source
	path Path
	mode SelectMode

	tracker  frameTracker
	phase    selectPhase
	depth    int
	lastName string
	queued   *segment.Segment
}

// Select wraps src, projecting the subtree at path as a new root.
func Select(src Source, path Path, mode SelectMode) *SelectSubtree {
	return &SelectSubtree{src: src, path: path, mode: mode}
}

// Next implements Source.
func (s *SelectSubtree) Next() (segment.Segment, bool) {
	switch s.phase {
	case phaseDone:
		return segment.Segment{}, false

	case phaseWrapOpen:
		s.phase = phaseWrapName
		return segment.Segment{Kind: segment.ContainerStart, ContainerKind: segment.Object, FrameID: 1}, true

	case phaseWrapName:
		s.phase = phaseInSubtree
		return segment.Segment{
			Kind: segment.PropertyName, FrameID: 1,
			Name: token.Slice{Bytes: []byte(s.lastName), Decoded: true},
		}, true

	case phaseWrapClose:
		s.phase = phaseDone
		return segment.Segment{Kind: segment.ContainerEnd, ContainerKind: segment.Object, FrameID: 1}, true

	case phaseInSubtree:
		if s.queued != nil {
			seg := *s.queued
			s.queued = nil
			return s.withinSubtree(seg)
		}
		seg, ok := s.src.Next()
		if !ok {
			s.phase = phaseDone
			return segment.Segment{}, false
		}
		return s.withinSubtree(seg)
	}

	// phaseSearching: look for the path match.
	for {
		seg, ok := s.src.Next()
		if !ok {
			s.phase = phaseDone
			return segment.Segment{}, false
		}
		if seg.Kind == segment.Progress || seg.Kind == segment.Diagnostic {
			continue
		}
		if seg.Kind == segment.PropertyName {
			// A PropertyName only sets up the path for the value that
			// follows it; the match (if any) is evaluated on that next
			// segment, not on the name itself.
			s.lastName = string(seg.Name.Bytes)
			s.tracker.onPropertyName(s.lastName)
			continue
		}

		if s.tracker.cursor.matches(s.path) {
			if s.mode == SelectWrap && len(s.path) > 0 {
				s.queued = &seg
				s.phase = phaseWrapOpen
				return s.Next()
			}
			s.phase = phaseInSubtree
			return s.withinSubtree(seg)
		}

		if isContainerStart(seg) {
			s.tracker.onContainerStart(seg.ContainerKind == segment.Array)
		} else if isContainerEnd(seg) {
			s.tracker.onContainerEnd()
		} else if isPrimitiveValue(seg) {
			s.tracker.onValueConsumed()
		}
	}
}

// withinSubtree is called for every segment of the matched subtree,
// starting with its first (a ContainerStart or a lone primitive
// Value), tracking nesting depth to find the matching end.
func (s *SelectSubtree) withinSubtree(seg segment.Segment) (segment.Segment, bool) {
	switch seg.Kind {
	case segment.ContainerStart:
		s.depth++
	case segment.ContainerEnd:
		s.depth--
	}

	atEnd := (seg.Kind == segment.ContainerEnd && s.depth == 0) ||
		(seg.Kind == segment.Value && s.depth == 0)

	if atEnd && s.mode == SelectWrap {
		s.phase = phaseWrapClose
	} else if atEnd {
		s.phase = phaseDone
	}

	return seg, true
}
