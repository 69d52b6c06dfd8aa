package lexer

import (
	"github.com/ajis-lang/ajis-go"
	"github.com/ajis-lang/ajis-go/diag"
	"github.com/ajis-lang/ajis-go/token"
)

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isBinDigit(b byte) bool { return b == '0' || b == '1' }

func isOctDigit(b byte) bool { return b >= '0' && b <= '7' }

func isHexDigit(b byte) bool {
	_, ok := hexDigit(b)
	return ok
}

// scanNumber scans a decimal literal, -Infinity (when enabled), or a
// multi-base literal (when enabled), per spec.md §4.2.
func (l *Lexer) scanNumber(start ajis.Position) (token.Token, error) {
	l.r.BeginToken()
	negative := false

	if b, ok := l.r.PeekByte(0); ok && b == '-' {
		if err := l.r.Advance(1); err != nil {
			return token.Token{}, wrapIO(err, l.r.Position())
		}
		negative = true
	}

	if negative && l.settings.AllowNanInfinity {
		if b, ok := l.r.PeekByte(0); ok && b == 'I' {
			if ok2, err := l.consumeLiteralWord("Infinity"); err != nil {
				return token.Token{}, err
			} else if ok2 {
				l.r.TokenSlice() // discard, identity not needed for a literal
				return token.Token{Kind: token.Literal, Start: start, Literal: token.LiteralNegInf}, nil
			}
		}
	}

	// Multi-base literals: 0b, 0o, 0x.
	if l.settings.AllowMultiBaseNumbers && !negative {
		if b0, ok0 := l.r.PeekByte(0); ok0 && b0 == '0' {
			if b1, ok1 := l.r.PeekByte(1); ok1 {
				var base token.NumberBase
				var digitOK func(byte) bool
				switch b1 {
				case 'b', 'B':
					base, digitOK = token.Base2, isBinDigit
				case 'o', 'O':
					base, digitOK = token.Base8, isOctDigit
				case 'x', 'X':
					base, digitOK = token.Base16, isHexDigit
				}
				if base != 0 {
					return l.scanBasedNumber(start, base, digitOK)
				}
			}
		}
	}

	return l.scanDecimalNumber(start, negative)
}

// consumeLiteralWord advances past exactly word if the upcoming bytes
// match it and are not followed by an identifier-continuation byte; it
// leaves the reader unchanged (net of what it consumed) and returns
// false without consuming anything past a mismatch... in practice this
// lexer only calls it after confirming the first byte, and number
// tokens never need to backtrack past a partial match, so a failed
// match simply becomes an invalid-digit error from the caller's later
// parsing — acceptable because -I other than -Infinity is not valid
// AJIS input in any mode.
func (l *Lexer) consumeLiteralWord(word string) (bool, error) {
	for i := 0; i < len(word); i++ {
		b, ok := l.r.PeekByte(i)
		if !ok || b != word[i] {
			return false, nil
		}
	}
	if err := l.r.Advance(len(word)); err != nil {
		return false, wrapIO(err, l.r.Position())
	}
	return true, nil
}

func (l *Lexer) scanBasedNumber(start ajis.Position, base token.NumberBase, digitOK func(byte) bool) (token.Token, error) {
	// consume "0x"/"0o"/"0b"
	if err := l.r.Advance(2); err != nil {
		return token.Token{}, wrapIO(err, l.r.Position())
	}

	hasSeparators, err := l.scanDigitRun(start, digitOK)
	if err != nil {
		return token.Token{}, err
	}

	raw := l.r.TokenSlice()
	if l.settings.MaxTokenBytes > 0 && uint64(len(raw)) > l.settings.MaxTokenBytes {
		return token.Token{}, diag.New(diag.TokenTooLarge, diag.Error, start)
	}

	return token.Token{
		Kind:  token.Number,
		Start: start,
		Text:  token.Slice{Bytes: raw, Decoded: false},
		NumberFlags: token.NumberFlags{
			Base:          base,
			HasSeparators: hasSeparators,
		},
	}, nil
}

func (l *Lexer) scanDecimalNumber(start ajis.Position, negative bool) (token.Token, error) {
	leadingZero := false
	hasSeparators := false

	b, ok := l.r.PeekByte(0)
	if !ok || !isDigit(b) {
		return token.Token{}, diag.New(diag.NumberBadDigit, diag.Error, l.r.Position())
	}
	if b == '0' {
		leadingZero = true
		if err := l.r.Advance(1); err != nil {
			return token.Token{}, wrapIO(err, l.r.Position())
		}
	} else {
		sep, err := l.scanDigitRun(start, isDigit)
		if err != nil {
			return token.Token{}, err
		}
		hasSeparators = hasSeparators || sep
	}

	if leadingZero {
		if nb, ok := l.r.PeekByte(0); ok && isDigit(nb) {
			return token.Token{}, diag.New(diag.NumberLeadingZero, diag.Error, start)
		}
	}

	hasFraction := false
	if b, ok := l.r.PeekByte(0); ok && b == '.' {
		hasFraction = true
		if err := l.r.Advance(1); err != nil {
			return token.Token{}, wrapIO(err, l.r.Position())
		}
		fb, fok := l.r.PeekByte(0)
		if !fok || !isDigit(fb) {
			return token.Token{}, diag.New(diag.NumberEmptyFraction, diag.Error, start)
		}
		sep, err := l.scanDigitRun(start, isDigit)
		if err != nil {
			return token.Token{}, err
		}
		hasSeparators = hasSeparators || sep
	}

	hasExponent := false
	if b, ok := l.r.PeekByte(0); ok && (b == 'e' || b == 'E') {
		hasExponent = true
		if err := l.r.Advance(1); err != nil {
			return token.Token{}, wrapIO(err, l.r.Position())
		}
		if b, ok := l.r.PeekByte(0); ok && (b == '+' || b == '-') {
			if err := l.r.Advance(1); err != nil {
				return token.Token{}, wrapIO(err, l.r.Position())
			}
		}
		eb, eok := l.r.PeekByte(0)
		if !eok || !isDigit(eb) {
			return token.Token{}, diag.New(diag.NumberEmptyExponent, diag.Error, start)
		}
		sep, err := l.scanDigitRun(start, isDigit)
		if err != nil {
			return token.Token{}, err
		}
		hasSeparators = hasSeparators || sep
	}

	raw := l.r.TokenSlice()
	if l.settings.MaxTokenBytes > 0 && uint64(len(raw)) > l.settings.MaxTokenBytes {
		return token.Token{}, diag.New(diag.TokenTooLarge, diag.Error, start)
	}

	return token.Token{
		Kind:  token.Number,
		Start: start,
		Text:  token.Slice{Bytes: raw, Decoded: false},
		NumberFlags: token.NumberFlags{
			Base:          token.Base10,
			HasSeparators: hasSeparators,
			HasFraction:   hasFraction,
			HasExponent:   hasExponent,
		},
	}, nil
}

// scanDigitRun consumes a run of digitOK bytes, optionally interspersed
// with '_' separators when enabled. It enforces "never leading/
// trailing/adjacent" strictly (that is a hard syntax rule, not the
// advisory grouping-size check) and reports hasSeparators.
func (l *Lexer) scanDigitRun(start ajis.Position, digitOK func(byte) bool) (bool, error) {
	hasSeparators := false
	sawDigit := false
	lastWasSeparator := false
	first := true

	for {
		b, ok := l.r.PeekByte(0)
		if !ok {
			break
		}
		if digitOK(b) {
			if err := l.r.Advance(1); err != nil {
				return false, wrapIO(err, l.r.Position())
			}
			sawDigit = true
			lastWasSeparator = false
			first = false
			continue
		}
		if b == '_' && l.settings.AllowDigitSeparators {
			if first || lastWasSeparator {
				return false, diag.New(diag.NumberSeparatorPlace, diag.Error, l.r.Position())
			}
			if err := l.r.Advance(1); err != nil {
				return false, wrapIO(err, l.r.Position())
			}
			hasSeparators = true
			lastWasSeparator = true
			continue
		}
		break
	}

	if lastWasSeparator {
		return false, diag.New(diag.NumberSeparatorPlace, diag.Error, l.r.Position())
	}
	if !sawDigit {
		return false, diag.New(diag.NumberBadDigit, diag.Error, start)
	}
	return hasSeparators, nil
}
