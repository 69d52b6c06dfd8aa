// Package token defines the lexer's output alphabet: byte slices into
// the reader's window, and the tagged Token variant built from them.
package token

import "github.com/ajis-lang/ajis-go"

// Slice is a (begin, length) reference into the source buffer, per
// spec.md §3.2. Its lifetime is tied to the current lexer step;
// consumers must copy Bytes before the next Advance if they need to
// retain it past that point.
type Slice struct {
	Bytes   []byte
	Decoded bool // false = Raw (exact source bytes), true = escapes processed
}

// String is a convenience accessor; it allocates, so hot paths should
// prefer Bytes directly.
func (s Slice) String() string {
	return string(s.Bytes)
}

// Kind tags a Token's variant.
type Kind int

const (
	Punct Kind = iota
	String
	Number
	Literal
	Comment
	Directive
	EOF
)

// PunctKind enumerates the structural punctuation characters.
type PunctKind int

const (
	LBrace PunctKind = iota // {
	RBrace                  // }
	LBrack                  // [
	RBrack                  // ]
	Colon                   // :
	Comma                   // ,
)

// QuoteStyle tags how a String token was delimited.
type QuoteStyle int

const (
	DoubleQuote QuoteStyle = iota
	SingleQuote
	Identifier // unquoted property name
)

// NumberBase tags the radix a Number token was written in.
type NumberBase int

const (
	Base10 NumberBase = 10
	Base2  NumberBase = 2
	Base8  NumberBase = 8
	Base16 NumberBase = 16
)

// LiteralKind enumerates the bare-word literals.
type LiteralKind int

const (
	LiteralTrue LiteralKind = iota
	LiteralFalse
	LiteralNull
	LiteralNaN
	LiteralPosInf
	LiteralNegInf
)

// CommentStyle tags whether a Comment token is a line or block comment.
type CommentStyle int

const (
	LineComment CommentStyle = iota
	BlockComment
)

// StringFlags annotates a String token per spec.md §3.3.
type StringFlags struct {
	HasEscapes   bool
	HasNonASCII  bool
	QuoteStyle   QuoteStyle
}

// NumberFlags annotates a Number token per spec.md §3.3.
type NumberFlags struct {
	Base          NumberBase
	HasSeparators bool
	HasFraction   bool
	HasExponent   bool
}

// DirectiveParam is one key=value pair of a directive's parameter list.
type DirectiveParam struct {
	Key   Slice
	Value Slice
}

// Token is the lexer's tagged-variant output. Every token carries its
// start Position; payload fields are only meaningful for the matching
// Kind.
type Token struct {
	Kind  Kind
	Start ajis.Position

	Punct PunctKind

	Text        Slice
	StringFlags StringFlags
	NumberFlags NumberFlags

	Literal LiteralKind

	CommentStyle CommentStyle

	DirectiveNamespace Slice
	DirectiveCommand   Slice
	DirectiveParams    []DirectiveParam
}
