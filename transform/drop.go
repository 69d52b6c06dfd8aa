package transform

import "github.com/ajis-lang/ajis-go/segment"

// DropByPath skips the value (primitive or entire subtree) at path,
// per spec.md §4.5. Subtree skipping counts nested container starts so
// it exits exactly at the matching end; no segments are emitted while
// skipping.
type DropByPath struct {
	src  Source
	path Path

	tracker  frameTracker
	skipping bool
	skipDepth int
}

// Drop wraps src, dropping the single value found at path.
func Drop(src Source, path Path) *DropByPath {
	return &DropByPath{src: src, path: path}
}

// Next implements Source.
func (d *DropByPath) Next() (segment.Segment, bool) {
	for {
		seg, ok := d.src.Next()
		if !ok {
			return segment.Segment{}, false
		}

		if seg.Kind == segment.Progress || seg.Kind == segment.Diagnostic {
			return seg, true
		}

		if d.skipping {
			d.consumeWhileSkipping(seg)
			if d.skipping {
				continue
			}
			// The matching end just closed the skipped subtree; resume
			// normal emission starting with the next segment.
			continue
		}

		if seg.Kind == segment.PropertyName {
			d.tracker.onPropertyName(string(seg.Name.Bytes))
			// If this name's value is about to match the drop path,
			// the name itself must go too, since Drop removes the
			// whole property, not just its value.
			if d.tracker.cursor.matches(d.path) {
				continue
			}
			return seg, true
		}

		atTarget := d.tracker.cursor.matches(d.path)
		if atTarget && (isContainerStart(seg) || isPrimitiveValue(seg)) {
			if isContainerStart(seg) {
				d.skipping = true
				d.skipDepth = 1
				continue
			}
			// Primitive at the target path: drop it, but still advance
			// the parent array index as if it had been emitted.
			d.tracker.onValueConsumed()
			continue
		}

		if isContainerStart(seg) {
			d.tracker.onContainerStart(seg.ContainerKind == segment.Array)
		} else if isContainerEnd(seg) {
			d.tracker.onContainerEnd()
		} else if isPrimitiveValue(seg) {
			d.tracker.onValueConsumed()
		}

		return seg, true
	}
}

func (d *DropByPath) consumeWhileSkipping(seg segment.Segment) {
	switch seg.Kind {
	case segment.ContainerStart:
		d.skipDepth++
	case segment.ContainerEnd:
		d.skipDepth--
		if d.skipDepth == 0 {
			d.skipping = false
			d.tracker.onValueConsumed()
		}
	}
}
