package lexer

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/ajis-lang/ajis-go"
	"github.com/ajis-lang/ajis-go/diag"
	"github.com/ajis-lang/ajis-go/token"
)

// scanString scans a quoted string (or, via the identifier path in
// lexer.go, an unquoted name). style selects the delimiter byte ('"' or
// '\'').
func (l *Lexer) scanString(start ajis.Position, style token.QuoteStyle) (token.Token, error) {
	delim := byte('"')
	if style == token.SingleQuote {
		delim = '\''
	}

	// Consume the opening delimiter.
	if err := l.r.Advance(1); err != nil {
		return token.Token{}, wrapIO(err, l.r.Position())
	}

	var decoded []byte
	var raw []byte
	hasEscapes := false
	hasNonASCII := false

	for {
		b, ok := l.r.PeekByte(0)
		if !ok {
			return token.Token{}, diag.New(diag.StringUnterminated, diag.Error, start)
		}

		if b == delim {
			if err := l.r.Advance(1); err != nil {
				return token.Token{}, wrapIO(err, l.r.Position())
			}
			break
		}

		if b == '\\' {
			hasEscapes = true
			escStart := l.r.Position()
			decodedRune, rawBytes, ok2, err := l.scanEscape()
			if err != nil {
				return token.Token{}, err
			}
			if !ok2 {
				return token.Token{}, diag.New(diag.StringBadEscape, diag.Error, escStart)
			}
			raw = append(raw, rawBytes...)
			if decodedRune >= 0 {
				var buf [utf8.UTFMax]byte
				n := utf8.EncodeRune(buf[:], decodedRune)
				decoded = append(decoded, buf[:n]...)
			}
			continue
		}

		if b < 0x20 {
			// Control character: only \n, \r are ever acceptable, and
			// only as literal bytes inside a multiline string when the
			// mode allows it.
			allowMultiline := l.settings.Mode != ajis.StrictJson
			if (b == '\n' || b == '\r') && allowMultiline {
				r, _, err := l.r.AdvanceChar()
				if err != nil {
					return token.Token{}, wrapIO(err, l.r.Position())
				}
				raw = append(raw, byte(r))
				decoded = append(decoded, byte(r))
				continue
			}
			return token.Token{}, diag.New(diag.StringUnescapedControl, diag.Error, l.r.Position())
		}

		r, n, err := l.r.AdvanceChar()
		if err != nil {
			return token.Token{}, wrapIO(err, l.r.Position())
		}
		if r > 127 {
			hasNonASCII = true
		}
		var buf [utf8.UTFMax]byte
		w := utf8.EncodeRune(buf[:], r)
		_ = n
		raw = append(raw, buf[:w]...)
		decoded = append(decoded, buf[:w]...)
	}

	if l.settings.MaxTokenBytes > 0 && uint64(len(raw)) > l.settings.MaxTokenBytes {
		return token.Token{}, diag.New(diag.TokenTooLarge, diag.Error, start)
	}

	flags := token.StringFlags{
		HasEscapes:  hasEscapes,
		HasNonASCII: hasNonASCII,
		QuoteStyle:  style,
	}

	bytesOut := raw
	isDecoded := false
	if l.settings.StringRepresentation == ajis.Decoded {
		bytesOut = decoded
		isDecoded = true
	}

	return token.Token{
		Kind:        token.String,
		Start:       start,
		Text:        token.Slice{Bytes: bytesOut, Decoded: isDecoded},
		StringFlags: flags,
	}, nil
}

// scanEscape consumes one backslash escape sequence (the caller has
// already peeked the leading '\\'). It returns the decoded rune (or -1
// if the escape contributes no decoded rune by itself, as with the
// first half of a surrogate pair that is resolved by the caller loop —
// in this lexer every recognized escape yields exactly one rune, so -1
// is unused but kept for clarity of intent), the raw bytes consumed,
// whether the escape was recognized, and any I/O error.
func (l *Lexer) scanEscape() (rune, []byte, bool, error) {
	start := l.r.Position()
	if err := l.r.Advance(1); err != nil { // consume '\\'
		return 0, nil, false, wrapIO(err, start)
	}
	b, ok := l.r.PeekByte(0)
	if !ok {
		return 0, nil, false, diag.New(diag.StringUnterminated, diag.Error, start)
	}

	simple := map[byte]rune{
		'"': '"', '\'': '\'', '\\': '\\', '/': '/',
		'b': '\b', 'f': '\f', 'n': '\n', 'r': '\r', 't': '\t',
	}
	if b == '\'' && !l.settings.AllowSingleQuotes {
		// \' is only a recognized escape when single-quoted strings are
		// enabled; spec.md's escape list doesn't name it, but a
		// single-quote delimiter needs some way to embed a literal one.
	} else if r, known := simple[b]; known {
		if err := l.r.Advance(1); err != nil {
			return 0, nil, false, wrapIO(err, l.r.Position())
		}
		return r, append([]byte{'\\'}, b), true, nil
	}

	if b == 'u' {
		if err := l.r.Advance(1); err != nil {
			return 0, nil, false, wrapIO(err, l.r.Position())
		}
		hi, rawHi, err := l.scanHex4()
		if err != nil {
			return 0, nil, false, err
		}
		if utf16.IsSurrogate(rune(hi)) {
			// Expect a second \uXXXX low surrogate.
			b1, ok1 := l.r.PeekByte(0)
			b2, ok2 := l.r.PeekByte(1)
			if ok1 && ok2 && b1 == '\\' && b2 == 'u' {
				if err := l.r.Advance(2); err != nil {
					return 0, nil, false, wrapIO(err, l.r.Position())
				}
				lo, rawLo, err := l.scanHex4()
				if err != nil {
					return 0, nil, false, err
				}
				combined := utf16.DecodeRune(rune(hi), rune(lo))
				if combined == utf8.RuneError {
					return 0, nil, false, diag.New(diag.StringBadUnicode, diag.Error, start)
				}
				raw := append([]byte{'\\', 'u'}, rawHi...)
				raw = append(raw, '\\', 'u')
				raw = append(raw, rawLo...)
				return combined, raw, true, nil
			}
			return 0, nil, false, diag.New(diag.StringBadUnicode, diag.Error, start)
		}
		return rune(hi), append([]byte{'\\', 'u'}, rawHi...), true, nil
	}

	return 0, nil, false, nil
}

// scanHex4 reads exactly 4 case-insensitive hex digits and returns
// their value plus the raw bytes consumed.
func (l *Lexer) scanHex4() (uint32, []byte, error) {
	start := l.r.Position()
	var v uint32
	var raw []byte
	for i := 0; i < 4; i++ {
		b, ok := l.r.PeekByte(0)
		if !ok {
			return 0, nil, diag.New(diag.StringBadUnicode, diag.Error, start)
		}
		d, ok := hexDigit(b)
		if !ok {
			return 0, nil, diag.New(diag.StringBadUnicode, diag.Error, start)
		}
		if err := l.r.Advance(1); err != nil {
			return 0, nil, wrapIO(err, l.r.Position())
		}
		v = v<<4 | uint32(d)
		raw = append(raw, b)
	}
	return v, raw, nil
}

func hexDigit(b byte) (uint32, bool) {
	switch {
	case b >= '0' && b <= '9':
		return uint32(b - '0'), true
	case b >= 'a' && b <= 'f':
		return uint32(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return uint32(b-'A') + 10, true
	default:
		return 0, false
	}
}
