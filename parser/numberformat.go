package parser

import (
	"strings"

	"github.com/ajis-lang/ajis-go/token"
)

// separatorGroupingOK reports whether raw's digit separators follow the
// advisory grouping sizes from spec.md §4.2: decimal/octal groups of 3,
// binary groups of 4, hex groups of 2 or 4 consistently within the
// token; the first (leftmost) group of each digit run may be shorter
// than the rest. Only called when the lexer already reported at least
// one separator, so this never rejects a separator-free token.
//
// A mismatch is advisory, not fatal: the caller still emits the Value
// segment and merely adds a NUMBER_SEPARATOR_GROUPING warning alongside
// it.
func separatorGroupingOK(raw []byte, base token.NumberBase) bool {
	s := strings.TrimPrefix(string(raw), "-")
	allowed := allowedGroupSizes(base)

	if base != token.Base10 {
		if len(s) >= 2 {
			s = s[2:] // strip 0b/0o/0x
		}
		return groupingValid(s, allowed)
	}

	intPart := s
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, s = s[:i], s[i+1:]
	} else {
		s = ""
	}
	if !groupingValid(intPart, allowed) {
		return false
	}

	fracPart := s
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		fracPart, s = s[:i], strings.TrimLeft(s[i+1:], "+-")
	} else {
		s = ""
	}
	if !groupingValid(fracPart, allowed) {
		return false
	}
	return groupingValid(s, allowed)
}

func allowedGroupSizes(base token.NumberBase) []int {
	switch base {
	case token.Base2:
		return []int{4}
	case token.Base16:
		return []int{2, 4}
	default: // Base10, Base8
		return []int{3}
	}
}

// groupingValid splits digits (already validated for separator
// placement by the lexer) on '_' and checks every group but the first
// against one consistent size from size.
func groupingValid(digits string, size []int) bool {
	if digits == "" || !strings.Contains(digits, "_") {
		return true
	}
	groups := strings.Split(digits, "_")
	rest := groups[1:]
	for _, want := range size {
		if len(groups[0]) <= want && allGroupsSize(rest, want) {
			return true
		}
	}
	return false
}

func allGroupsSize(groups []string, size int) bool {
	for _, g := range groups {
		if len(g) != size {
			return false
		}
	}
	return true
}
