// Package lexer implements the mode-aware token producer described in
// spec.md §4.2. It classifies bytes the way a hand-rolled JSON scanner
// does (see DESIGN.md for the mcvoid-json grounding), but as direct
// per-token-kind scan functions rather than one shared transition
// table, since AJIS's lexical modes are considerably richer than plain
// JSON's.
package lexer

import (
	"errors"
	"io"

	"github.com/ajis-lang/ajis-go"
	"github.com/ajis-lang/ajis-go/diag"
	"github.com/ajis-lang/ajis-go/reader"
	"github.com/ajis-lang/ajis-go/token"
)

// Lexer produces the next Token for the given Settings (already
// Normalize()'d by the caller).
type Lexer struct {
	r        *reader.Reader
	settings ajis.Settings
}

// New wraps r, producing tokens per settings.
func New(r *reader.Reader, settings ajis.Settings) *Lexer {
	return &Lexer{r: r, settings: settings.Normalize()}
}

// Next returns the next Token. At true end-of-stream it returns a Token
// with Kind == token.EOF and a nil error. Lexical failures are returned
// as a diag.Diagnostic (which implements error); I/O failures from the
// underlying source are wrapped as diag.IORead.
func (l *Lexer) Next() (token.Token, error) {
	if err := l.skipInsignificant(); err != nil {
		return token.Token{}, err
	}

	start := l.r.Position()

	if l.r.AtEOF() {
		return token.Token{Kind: token.EOF, Start: start}, nil
	}

	b, _ := l.r.PeekByte(0)

	switch {
	case b == '{':
		return l.punct(token.LBrace, 1)
	case b == '}':
		return l.punct(token.RBrace, 1)
	case b == '[':
		return l.punct(token.LBrack, 1)
	case b == ']':
		return l.punct(token.RBrack, 1)
	case b == ':':
		return l.punct(token.Colon, 1)
	case b == ',':
		return l.punct(token.Comma, 1)
	case b == '"':
		return l.scanString(start, token.DoubleQuote)
	case b == '\'' && l.settings.AllowSingleQuotes:
		return l.scanString(start, token.SingleQuote)
	case b == '/' && (l.settings.AllowLineComments || l.settings.AllowBlockComments):
		return l.scanComment(start)
	case b == '#' && l.settings.Mode != ajis.StrictJson:
		return l.scanDirective(start)
	case b == '-' || (b >= '0' && b <= '9'):
		return l.scanNumber(start)
	case isIdentStart(b):
		return l.scanIdentLike(start)
	default:
		return token.Token{}, diag.New(diag.UnexpectedToken, diag.Error, start, string(rune(b)))
	}
}

// PeekAtEOF consumes only insignificant whitespace and reports whether
// the stream is now at true end-of-stream, without lexing (and thus
// without consuming) whatever non-whitespace token might follow.
func (l *Lexer) PeekAtEOF() (bool, error) {
	if err := l.skipInsignificant(); err != nil {
		return false, err
	}
	return l.r.AtEOF(), nil
}

func (l *Lexer) punct(kind token.PunctKind, width int) (token.Token, error) {
	start := l.r.Position()
	if err := l.r.Advance(width); err != nil {
		return token.Token{}, wrapIO(err, start)
	}
	return token.Token{Kind: token.Punct, Start: start, Punct: kind}, nil
}

// skipInsignificant consumes whitespace. Comments and directives are
// tokens in their own right (per spec.md §4.2: "emit comments/directives
// as tokens so the parser can route them"), so they are not skipped
// here.
func (l *Lexer) skipInsignificant() error {
	for {
		b, ok := l.r.PeekByte(0)
		if !ok {
			return nil
		}
		switch b {
		case ' ', '\t', '\n', '\r':
			if _, _, err := l.r.AdvanceChar(); err != nil {
				return wrapIO(err, l.r.Position())
			}
		default:
			return nil
		}
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

// scanIdentLike handles bare-word literals (true, false, null, NaN,
// Infinity) and, when enabled, unquoted property names. It reads the
// whole identifier first, then classifies it, so an unrecognized word
// in a mode without unquoted names is still one UNEXPECTED_TOKEN rather
// than a cascade of single-character errors.
func (l *Lexer) scanIdentLike(start ajis.Position) (token.Token, error) {
	l.r.BeginToken()
	for {
		b, ok := l.r.PeekByte(0)
		if !ok || !isIdentCont(b) {
			break
		}
		if err := l.r.Advance(1); err != nil {
			return token.Token{}, wrapIO(err, l.r.Position())
		}
	}
	word := string(l.r.TokenSlice())

	switch word {
	case "true":
		return token.Token{Kind: token.Literal, Start: start, Literal: token.LiteralTrue}, nil
	case "false":
		return token.Token{Kind: token.Literal, Start: start, Literal: token.LiteralFalse}, nil
	case "null":
		return token.Token{Kind: token.Literal, Start: start, Literal: token.LiteralNull}, nil
	case "NaN":
		if l.settings.AllowNanInfinity {
			return token.Token{Kind: token.Literal, Start: start, Literal: token.LiteralNaN}, nil
		}
	case "Infinity":
		if l.settings.AllowNanInfinity {
			return token.Token{Kind: token.Literal, Start: start, Literal: token.LiteralPosInf}, nil
		}
	}

	if l.settings.AllowUnquotedPropertyNames && word != "" {
		return token.Token{
			Kind:  token.String,
			Start: start,
			Text:  token.Slice{Bytes: []byte(word), Decoded: true},
			StringFlags: token.StringFlags{
				QuoteStyle: token.Identifier,
			},
		}, nil
	}

	return token.Token{}, diag.New(diag.UnexpectedToken, diag.Error, start, word)
}

func wrapIO(err error, pos ajis.Position) error {
	if err == nil {
		return nil
	}
	var d diag.Diagnostic
	if errors.As(err, &d) {
		return d
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return diag.New(diag.UnexpectedEOF, diag.Error, pos)
	}
	return diag.New(diag.IORead, diag.Error, pos, err.Error())
}
