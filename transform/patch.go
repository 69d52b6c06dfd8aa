package transform

import (
	"errors"

	"github.com/ajis-lang/ajis-go/segment"
	"github.com/ajis-lang/ajis-go/token"
)

func bytesSlice(s string) token.Slice {
	return token.Slice{Bytes: []byte(s), Decoded: true}
}

// ErrPatchTargetMissing is returned by Patch.Err when a FailOnMissing
// PatchSet or PatchInsert patch's target path never appeared in the
// stream. PatchRemove never reports it.
var ErrPatchTargetMissing = errors.New("transform: patch target missing")

// PatchOp selects a Patch transform's behavior.
type PatchOp int

const (
	// PatchSet replaces an existing property's (or array item's) value.
	PatchSet PatchOp = iota
	// PatchInsert adds a new property to an Object that does not yet
	// have it.
	PatchInsert
	// PatchRemove deletes an existing property or array item; identical
	// to DropByPath.
	PatchRemove
)

// MissingTargetPolicy controls Patch's behavior when the target of
// path never appears.
type MissingTargetPolicy int

const (
	// FailOnMissing reports ErrPatchTargetMissing through Err once the
	// stream ends without the target having been found (PatchSet and
	// PatchInsert only; PatchRemove passes the stream through unchanged).
	FailOnMissing MissingTargetPolicy = iota
	// NoOpOnMissing silently passes the stream through unchanged.
	NoOpOnMissing
)

// Patch applies one patch operation to a segment stream, per spec.md
// §4.5.
type Patch struct {
	src    Source
	path   Path
	op     PatchOp
	value  []segment.Segment
	policy MissingTargetPolicy

	drop *DropByPath // used for PatchRemove

	tracker   frameTracker
	done      bool
	found     bool
	err       error
	injecting []segment.Segment

	// For PatchSet: once the target's value segments begin, they are
	// replaced wholesale by value and the original's are discarded.
	replacing bool
	repDepth  int

	// For PatchInsert: the parent path (path minus its last element)
	// identifies the Object frame to insert into just before its
	// ContainerEnd.
	parentPath Path
}

// NewPatch builds a Patch. value is the replacement/inserted segment
// sequence for a single value (e.g. [{Kind: Value, ValueKind: Num,
// NumberText: ...}] for a scalar, or a full ContainerStart..ContainerEnd
// run for an object/array).
func NewPatch(src Source, path Path, op PatchOp, value []segment.Segment, policy MissingTargetPolicy) *Patch {
	p := &Patch{src: src, path: path, op: op, value: value, policy: policy}
	if op == PatchRemove {
		p.drop = Drop(src, path)
	}
	if op == PatchInsert && len(path) > 0 {
		p.parentPath = path[:len(path)-1]
	}
	return p
}

// Err returns the reason Next stopped early, if any (only meaningful
// after Next has returned false).
func (p *Patch) Err() error { return p.err }

// Next implements Source.
func (p *Patch) Next() (segment.Segment, bool) {
	if p.op == PatchRemove {
		return p.drop.Next()
	}
	if p.op == PatchInsert {
		return p.nextInsert()
	}
	return p.nextSet()
}

func (p *Patch) nextSet() (segment.Segment, bool) {
	for {
		if len(p.injecting) > 0 {
			seg := p.injecting[0]
			p.injecting = p.injecting[1:]
			return seg, true
		}
		if p.replacing {
			seg, ok := p.src.Next()
			if !ok {
				p.done = true
				return segment.Segment{}, false
			}
			p.repDepth += matchDepthDelta(seg)
			done := (seg.Kind == segment.Value && p.repDepth == 0) ||
				(seg.Kind == segment.ContainerEnd && p.repDepth == 0)
			if !done {
				continue // discard original value's interior segments
			}
			p.replacing = false
			p.tracker.onValueConsumed()
			continue
		}

		seg, ok := p.src.Next()
		if !ok {
			if p.policy == FailOnMissing && !p.found {
				p.err = ErrPatchTargetMissing
			}
			return segment.Segment{}, false
		}
		if seg.Kind == segment.Progress || seg.Kind == segment.Diagnostic {
			return seg, true
		}
		if seg.Kind == segment.PropertyName {
			p.tracker.onPropertyName(string(seg.Name.Bytes))
		}

		if !p.replacing && p.tracker.cursor.matches(p.path) &&
			(isContainerStart(seg) || isPrimitiveValue(seg)) {
			p.found = true
			p.replacing = true
			p.repDepth = matchDepthDelta(seg)
			p.injecting = append(p.injecting, p.value...)
			if p.repDepth == 0 {
				p.replacing = false
				p.tracker.onValueConsumed()
			}
			continue
		}

		if isContainerStart(seg) {
			p.tracker.onContainerStart(seg.ContainerKind == segment.Array)
		} else if isContainerEnd(seg) {
			p.tracker.onContainerEnd()
		} else if isPrimitiveValue(seg) {
			p.tracker.onValueConsumed()
		}
		return seg, true
	}
}

func (p *Patch) nextInsert() (segment.Segment, bool) {
	if len(p.injecting) > 0 {
		seg := p.injecting[0]
		p.injecting = p.injecting[1:]
		return seg, true
	}
	if p.done {
		return segment.Segment{}, false
	}

	seg, ok := p.src.Next()
	if !ok {
		p.done = true
		if p.policy == FailOnMissing && !p.found {
			p.err = ErrPatchTargetMissing
		}
		return segment.Segment{}, false
	}
	if seg.Kind == segment.Progress || seg.Kind == segment.Diagnostic {
		return seg, true
	}
	if seg.Kind == segment.PropertyName {
		p.tracker.onPropertyName(string(seg.Name.Bytes))
	}

	atParent := isContainerEnd(seg) && p.tracker.cursor.matchesContainer(p.parentPath)
	if atParent {
		p.found = true
		last := len(p.path) - 1
		name := p.path[last].Name
		p.injecting = append(p.injecting,
			segment.Segment{Kind: segment.PropertyName, Name: bytesSlice(name)})
		p.injecting = append(p.injecting, p.value...)
		p.injecting = append(p.injecting, seg)
		p.tracker.onContainerEnd()
		return p.nextInsert()
	}

	if isContainerStart(seg) {
		p.tracker.onContainerStart(seg.ContainerKind == segment.Array)
	} else if isContainerEnd(seg) {
		p.tracker.onContainerEnd()
	} else if isPrimitiveValue(seg) {
		p.tracker.onValueConsumed()
	}
	return seg, true
}
