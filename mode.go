package ajis

// Mode governs the lexical tolerances the Lexer and Parser apply.
type Mode int

const (
	// StrictJson accepts only RFC 8259 JSON.
	StrictJson Mode = iota
	// AjisCanonical accepts directives and multi-line strings; each other
	// AJIS extension is accepted when its Allow* flag is set (as
	// AjisSettings does).
	AjisCanonical
	// Lax tolerates the same things as AjisCanonical, gated by the same
	// Allow* flags; LaxSettings turns all of them on and allows
	// duplicate keys.
	Lax
)

var modeStrings = [...]string{"StrictJson", "AjisCanonical", "Lax"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeStrings) {
		return "<unknown mode>"
	}
	return modeStrings[m]
}

// DuplicateKeyPolicy controls how the parser reacts to a repeated
// property name within one object frame.
type DuplicateKeyPolicy int

const (
	// DuplicateKeysAllow silently keeps every occurrence.
	DuplicateKeysAllow DuplicateKeyPolicy = iota
	// DuplicateKeysWarn emits a DUPLICATE_KEY diagnostic but continues.
	DuplicateKeysWarn
	// DuplicateKeysReject turns a repeat into a fatal diagnostic.
	DuplicateKeysReject
)

// StringRepresentation selects whether String segment payloads carry the
// raw source bytes or decoded (escape-processed) text.
type StringRepresentation int

const (
	// RawSlice keeps the exact source bytes, escapes unprocessed.
	RawSlice StringRepresentation = iota
	// Decoded processes escapes into their Unicode scalar values.
	Decoded
)

// NumberRepresentation selects whether Number segment payloads carry the
// raw source bytes or a canonical decimal text form.
type NumberRepresentation int

const (
	// NumberRawSlice keeps the exact source bytes (base prefix, digit
	// separators and all).
	NumberRawSlice NumberRepresentation = iota
	// NumberCanonicalText names a canonical decimal text form. The
	// parser does not consult NumberRepresentation: Number payloads
	// always carry the raw source bytes.
	NumberCanonicalText
)

// Formatting selects the serializer's output shape.
type Formatting int

const (
	// Compact writes no insignificant whitespace.
	Compact Formatting = iota
	// Pretty indents nested containers by Indent spaces per level.
	Pretty
	// Canonical sorts object members, normalizes numbers, and always
	// double-quotes property names.
	Canonical
)

// Profile is an advisory hint about the expected workload shape; it may
// influence buffer sizing (see package ajisio) but never changes
// observable parse/serialize semantics.
type Profile int

const (
	// Universal is a balanced default.
	Universal Profile = iota
	// LowMemory favors the smallest possible working set.
	LowMemory
	// HighThroughput favors larger buffers when the runtime environment
	// supports it.
	HighThroughput
)
