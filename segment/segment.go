// Package segment defines the pipeline's atomic unit (spec.md §3.5) and
// the container-frame bookkeeping the parser and serializer both use to
// track nesting.
package segment

import (
	"github.com/ajis-lang/ajis-go"
	"github.com/ajis-lang/ajis-go/diag"
	"github.com/ajis-lang/ajis-go/token"
)

// ContainerKind distinguishes object and array frames.
type ContainerKind int

const (
	Object ContainerKind = iota
	Array
)

func (k ContainerKind) String() string {
	if k == Object {
		return "Object"
	}
	return "Array"
}

// Expecting names the grammar state a Frame is in, per spec.md §3.4.
type Expecting int

const (
	// ExpectValue: a value is expected next (array frame, or object
	// frame right after a colon).
	ExpectValue Expecting = iota
	// ExpectPropertyName: a key string or the closing brace of an empty
	// object is expected (object frame, freshly opened).
	ExpectPropertyName
	// ExpectPropertyNameAfterComma: like ExpectPropertyName, but the
	// closing brace is only valid here when trailing commas are
	// allowed; otherwise it is TRAILING_COMMA_DISALLOWED.
	ExpectPropertyNameAfterComma
	// ExpectValueAfterComma: like ExpectValue for an array frame, but
	// the closing bracket is only valid here when trailing commas are
	// allowed.
	ExpectValueAfterComma
	// ExpectColon: a ':' is expected (object frame, after a key).
	ExpectColon
	// ExpectCommaOrEnd: a ',' or the frame's closer is expected.
	ExpectCommaOrEnd
	// ExpectEnd: the frame is done (terminal; not stored on a live
	// frame, used by consumers inspecting a finished Frame snapshot).
	ExpectEnd
)

// Frame is a parser-stack record representing one active container.
type Frame struct {
	Kind       ContainerKind
	FrameID    uint64
	ParentID   uint64
	ItemCount  uint64
	Expecting  Expecting
}

// ValueKind tags a primitive Value segment's payload.
type ValueKind int

const (
	Null ValueKind = iota
	Bool
	Num
	Str
)

// Kind tags a Segment's variant.
type Kind int

const (
	ContainerStart Kind = iota
	ContainerEnd
	PropertyName
	Value
	Progress
	Diagnostic
)

// Segment is the pipeline's atomic unit, per spec.md §3.5. Only the
// fields relevant to Kind are meaningful; the rest are zero.
type Segment struct {
	Kind Kind

	// ContainerStart / ContainerEnd
	ContainerKind ContainerKind
	FrameID       uint64
	ParentID      uint64

	// PropertyName
	Name      token.Slice
	NameFlags token.StringFlags

	// Value
	ValueKind   ValueKind
	Bool        bool
	NumberText  token.Slice
	NumberFlags token.NumberFlags
	StringText  token.Slice
	StringFlags token.StringFlags

	// Progress
	BytesRead      uint64
	TotalBytesHint uint64

	// Diagnostic
	Diag diag.Diagnostic

	// Pos is the source position this segment's content starts at; it is
	// always populated for non-meta segments and equals Diag.Position
	// for Diagnostic segments.
	Pos ajis.Position
}
