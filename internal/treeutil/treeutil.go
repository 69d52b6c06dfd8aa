// Package treeutil materializes a segment.Segment stream into an
// in-memory tree for test assertions, adapted from mcvoid-json/json.go's
// Value (tagged struct, ordered object pairs instead of a map so
// duplicate-key and member-order behavior stay inspectable). It is not
// part of the public API: production code stays streaming end to end,
// per spec.md §5's bounded-memory requirement.
package treeutil

import (
	"fmt"

	"github.com/ajis-lang/ajis-go/diag"
	"github.com/ajis-lang/ajis-go/segment"
)

// Kind mirrors segment.ValueKind plus the two container kinds, so one
// Node type can represent an entire materialized document.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Pair is one ordered object member; treeutil never collapses duplicate
// keys into a map, so a test can assert on exactly what the segment
// stream produced.
type Pair struct {
	Name  string
	Value *Node
}

// Node is one materialized value.
type Node struct {
	Kind    Kind
	Bool    bool
	Number  string // decimal/source text, never parsed to float64: tests compare text, not value
	String  string
	Array   []*Node
	Object  []Pair
}

// ErrUnbalanced reports a segment stream whose containers never closed
// or closed without ever having been opened.
var ErrUnbalanced = fmt.Errorf("treeutil: unbalanced segment stream")

// Build materializes segs into a single root Node. A Diagnostic segment
// with Fatal severity aborts materialization and returns its error; a
// recoverable Diagnostic is recorded but does not stop the build so a
// test can still inspect the output that did complete.
func Build(segs []segment.Segment) (*Node, []diag.Diagnostic, error) {
	b := &builder{}
	for _, seg := range segs {
		switch seg.Kind {
		case segment.Diagnostic:
			b.diags = append(b.diags, seg.Diag)
			if seg.Diag.Severity.Fatal() {
				return nil, b.diags, seg.Diag
			}
		case segment.Progress:
			continue
		default:
			if err := b.feed(seg); err != nil {
				return nil, b.diags, err
			}
		}
	}
	if len(b.stack) != 0 {
		return nil, b.diags, ErrUnbalanced
	}
	return b.root, b.diags, nil
}

type frame struct {
	node     *Node
	pendName string
}

type builder struct {
	root     *Node
	stack    []frame
	diags    []diag.Diagnostic
	pendName string
	haveName bool
}

func (b *builder) feed(seg segment.Segment) error {
	switch seg.Kind {
	case segment.ContainerStart:
		kind := KindArray
		if seg.ContainerKind == segment.Object {
			kind = KindObject
		}
		n := &Node{Kind: kind}
		b.attach(n)
		b.stack = append(b.stack, frame{node: n})
	case segment.ContainerEnd:
		if len(b.stack) == 0 {
			return ErrUnbalanced
		}
		b.stack = b.stack[:len(b.stack)-1]
	case segment.PropertyName:
		b.pendName = string(seg.Name.Bytes)
		b.haveName = true
	case segment.Value:
		b.attach(valueNode(seg))
	}
	return nil
}

func valueNode(seg segment.Segment) *Node {
	switch seg.ValueKind {
	case segment.Bool:
		return &Node{Kind: KindBool, Bool: seg.Bool}
	case segment.Num:
		return &Node{Kind: KindNumber, Number: string(seg.NumberText.Bytes)}
	case segment.Str:
		return &Node{Kind: KindString, String: string(seg.StringText.Bytes)}
	default:
		return &Node{Kind: KindNull}
	}
}

func (b *builder) attach(n *Node) {
	if len(b.stack) == 0 {
		b.root = n
		return
	}
	top := b.stack[len(b.stack)-1].node
	switch top.Kind {
	case KindArray:
		top.Array = append(top.Array, n)
	case KindObject:
		name := b.pendName
		b.haveName = false
		top.Object = append(top.Object, Pair{Name: name, Value: n})
	}
}
