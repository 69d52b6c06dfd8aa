// Package ajis defines the shared value types for the AJIS pipeline:
// positions, parse modes, formatting, and the settings that freeze the
// lexical and structural rules for one parse or serialize call.
package ajis

import "fmt"

// Position is a monotonic (byte_offset, line, column) triple. byte_offset
// counts raw UTF-8 bytes from the start of the stream; line counts \n,
// \r, or \r\n as one newline; column is a 1-based Unicode-scalar count on
// the current line.
type Position struct {
	Offset int64
	Line   int
	Column int
}

// String renders the position as "offset:line:column" for diagnostics
// and error messages.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d:%d", p.Offset, p.Line, p.Column)
}

// Less reports whether p sorts strictly before q by offset, satisfying
// the position-monotonicity invariant used by tests that check segment
// ordering.
func (p Position) Less(q Position) bool {
	return p.Offset < q.Offset
}
