package transform

import "github.com/ajis-lang/ajis-go/segment"

// Predicate inspects one buffered array item's segments (read-only) and
// decides whether to keep it.
type Predicate func(item []segment.Segment) bool

// FilterArrayItems buffers one array item's segments at a time
// (bounded by one-item size, not the whole array), applies predicate
// after the item completes, and flushes or discards it, per spec.md
// §4.5.
type FilterArrayItems struct {
	src       Source
	arrayPath Path
	predicate Predicate

	tracker    frameTracker
	inArray    bool
	arrayDepth int // nesting depth of containers opened since entering the target array, 0 = not inside an item

	buffer []segment.Segment
	ready  []segment.Segment
}

// Filter wraps src, keeping only items of the array at arrayPath for
// which predicate returns true.
func Filter(src Source, arrayPath Path, predicate Predicate) *FilterArrayItems {
	return &FilterArrayItems{src: src, arrayPath: arrayPath, predicate: predicate}
}

// Next implements Source.
func (f *FilterArrayItems) Next() (segment.Segment, bool) {
	for {
		if len(f.ready) > 0 {
			seg := f.ready[0]
			f.ready = f.ready[1:]
			return seg, true
		}

		seg, ok := f.src.Next()
		if !ok {
			return segment.Segment{}, false
		}

		if seg.Kind == segment.Progress || seg.Kind == segment.Diagnostic {
			return seg, true
		}

		if seg.Kind == segment.PropertyName {
			f.tracker.onPropertyName(string(seg.Name.Bytes))
		}

		atTargetArray := f.tracker.cursor.matches(f.arrayPath)

		if !f.inArray {
			if atTargetArray && isContainerStart(seg) && seg.ContainerKind == segment.Array {
				f.inArray = true
				f.tracker.onContainerStart(true)
				return seg, true
			}
			if isContainerStart(seg) {
				f.tracker.onContainerStart(seg.ContainerKind == segment.Array)
			} else if isContainerEnd(seg) {
				f.tracker.onContainerEnd()
			} else if isPrimitiveValue(seg) {
				f.tracker.onValueConsumed()
			}
			return seg, true
		}

		// Inside the target array: buffer one item at a time.
		if len(f.buffer) == 0 && isContainerEnd(seg) {
			// The array itself is closing with no pending item.
			f.inArray = false
			f.tracker.onContainerEnd()
			return seg, true
		}

		f.buffer = append(f.buffer, seg)
		f.arrayDepth += matchDepthDelta(seg)
		itemDone := (seg.Kind == segment.Value && f.arrayDepth == 0) ||
			(seg.Kind == segment.ContainerEnd && f.arrayDepth == 0)

		if !itemDone {
			continue
		}

		item := f.buffer
		f.buffer = nil
		f.tracker.onValueConsumed()
		if f.predicate(item) {
			f.ready = item
		}
	}
}
