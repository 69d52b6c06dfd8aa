// Package diag models AJIS diagnostics as data: a stable code, a
// severity, a precise position, and a localizable message key, per the
// wire form in spec.md §6. Diagnostics are values, never exceptions —
// the parser and serializer return them, they do not panic or wrap
// control flow in errors.
package diag

// Code is a stable diagnostic identifier, e.g. "AJIS1003". Codes never
// change meaning across versions; message text is not normative.
type Code string

// Kind groups codes by the taxonomy in spec.md §7. It has no effect on
// wire output; it exists so callers can filter diagnostics by category.
type Kind int

const (
	KindEncoding Kind = iota
	KindLexical
	KindSyntactic
	KindSemantic
	KindResource
	KindIO
	KindStreamMisuse
	KindControl
)

// Encoding
const (
	EncodingInvalid Code = "AJIS1001"
)

// Lexical
const (
	StringUnterminated     Code = "AJIS1101"
	StringUnescapedControl Code = "AJIS1102"
	StringBadEscape        Code = "AJIS1103"
	StringBadUnicode       Code = "AJIS1104"
	NumberLeadingZero      Code = "AJIS1110"
	NumberBadDigit         Code = "AJIS1111"
	NumberEmptyFraction    Code = "AJIS1112"
	NumberEmptyExponent    Code = "AJIS1113"
	NumberBadBasePrefix    Code = "AJIS1114"
	NumberSeparatorPlace   Code = "AJIS1115"
	CommentUnterminated    Code = "AJIS1120"
	DirectiveMalformed     Code = "AJIS1121"
	TokenTooLarge          Code = "AJIS1130"
)

// Syntactic
const (
	UnexpectedToken        Code = "AJIS1201"
	ContainerMismatch      Code = "AJIS1202"
	MissingColon           Code = "AJIS1203"
	MissingComma           Code = "AJIS1204"
	TrailingCommaDisallow  Code = "AJIS1205"
	DepthExceeded          Code = "AJIS1206"
	UnexpectedEOF          Code = "AJIS1207"
	ExtraDataAfterRoot     Code = "AJIS1208"
)

// Semantic (warning by default)
const (
	DuplicateKey            Code = "AJIS1301"
	NumberSeparatorGrouping Code = "AJIS1302"
)

// Resource
const (
	PropertyNameTooLarge Code = "AJIS1401"
)

// I/O
const (
	IORead  Code = "AJIS1501"
	IOWrite Code = "AJIS1502"
)

// Serializer stream misuse
const (
	SegmentStreamUnbalanced Code = "AJIS1601"
	CanonicalDuplicateKeys  Code = "AJIS1602"
)

// KindOf returns the taxonomy Kind a code belongs to, for callers that
// want to bucket diagnostics without a switch over every code.
func KindOf(c Code) Kind {
	switch c {
	case EncodingInvalid:
		return KindEncoding
	case StringUnterminated, StringUnescapedControl, StringBadEscape, StringBadUnicode,
		NumberLeadingZero, NumberBadDigit, NumberEmptyFraction, NumberEmptyExponent,
		NumberBadBasePrefix, NumberSeparatorPlace, CommentUnterminated, DirectiveMalformed:
		return KindLexical
	case UnexpectedToken, ContainerMismatch, MissingColon, MissingComma,
		TrailingCommaDisallow, UnexpectedEOF, ExtraDataAfterRoot:
		return KindSyntactic
	case DuplicateKey, NumberSeparatorGrouping:
		return KindSemantic
	case PropertyNameTooLarge, DepthExceeded, TokenTooLarge:
		return KindResource
	case IORead, IOWrite:
		return KindIO
	case SegmentStreamUnbalanced, CanonicalDuplicateKeys:
		return KindStreamMisuse
	default:
		return KindSyntactic
	}
}
