// Package transform implements the segment-in, segment-out transducers
// of spec.md §4.5: drop-by-path, rename-keys, select-subtree,
// filter-array-items, and patch. Each is built around a shared "current
// path" tracker (name/index components, mirroring the parser's frame
// stack) adapted from mcvoid-json/json.go's Value.Key/Value.Index
// fluent accessors (see DESIGN.md).
package transform

import (
	"strconv"
	"strings"
)

// PathElem is one component of a dotted/bracketed path: either a
// property name or an array index (Index >= 0), or the wildcard `[*]`
// (Wildcard true, used only by filter-array-items).
type PathElem struct {
	Name     string
	Index    int
	IsIndex  bool
	Wildcard bool
}

// Path is a parsed path expression, per spec.md §4.5's grammar: segments
// separated by '.', array index as '[n]', names as UTF-8 literals,
// '[*]' allowed only where the transform documents it.
type Path []PathElem

// ParsePath parses "a.b[0].c" / "items[*]" style expressions.
func ParsePath(expr string) (Path, error) {
	var path Path
	for _, part := range strings.Split(expr, ".") {
		if part == "" {
			continue
		}
		name, indices, err := splitIndices(part)
		if err != nil {
			return nil, err
		}
		if name != "" {
			path = append(path, PathElem{Name: name})
		}
		path = append(path, indices...)
	}
	return path, nil
}

func splitIndices(part string) (string, []PathElem, error) {
	br := strings.IndexByte(part, '[')
	if br < 0 {
		return part, nil, nil
	}
	name := part[:br]
	rest := part[br:]
	var elems []PathElem
	for len(rest) > 0 {
		if rest[0] != '[' {
			return "", nil, &PathError{Expr: part}
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return "", nil, &PathError{Expr: part}
		}
		inner := rest[1:end]
		if inner == "*" {
			elems = append(elems, PathElem{Wildcard: true, IsIndex: true})
		} else {
			n, err := strconv.Atoi(inner)
			if err != nil || n < 0 {
				return "", nil, &PathError{Expr: part}
			}
			elems = append(elems, PathElem{Index: n, IsIndex: true})
		}
		rest = rest[end+1:]
	}
	return name, elems, nil
}

// PathError reports a malformed path expression.
type PathError struct{ Expr string }

func (e *PathError) Error() string { return "transform: malformed path expression: " + e.Expr }

// cursor tracks the "current path" as segments stream past, mirroring
// the producing parser's frame stack one level at a time.
type cursor struct {
	stack []cursorFrame
}

type cursorFrame struct {
	isArray  bool
	index    int
	pendName string
}

func (c *cursor) matches(p Path) bool {
	if len(c.stack) == 0 {
		return len(p) == 0
	}
	if len(p) != len(c.stack) {
		return false
	}
	for i, f := range c.stack {
		elem := p[i]
		if f.isArray {
			if !elem.IsIndex {
				return false
			}
			if !elem.Wildcard && elem.Index != f.index {
				return false
			}
		} else {
			if elem.IsIndex || elem.Name != f.pendName {
				return false
			}
		}
	}
	return true
}

// matchesContainer reports whether the container currently on top of
// the stack (about to receive its ContainerEnd) is the one identified
// by p — i.e. the stack holds exactly len(p)+1 frames, the first
// len(p) of which match p elementwise, with the top frame (the
// container itself) unconstrained. An empty p identifies the
// outermost (root) container.
func (c *cursor) matchesContainer(p Path) bool {
	if len(c.stack) != len(p)+1 {
		return false
	}
	for i, elem := range p {
		f := c.stack[i]
		if f.isArray {
			if !elem.IsIndex || (!elem.Wildcard && elem.Index != f.index) {
				return false
			}
		} else if elem.IsIndex || elem.Name != f.pendName {
			return false
		}
	}
	return true
}

