package lexer

import (
	"bytes"

	"github.com/ajis-lang/ajis-go"
	"github.com/ajis-lang/ajis-go/diag"
	"github.com/ajis-lang/ajis-go/token"
)

// scanDirective scans "#namespace command key=value key2=value2" up to
// end of line. The caller has already confirmed the leading '#' and
// that the mode is not StrictJson.
func (l *Lexer) scanDirective(start ajis.Position) (token.Token, error) {
	if err := l.r.Advance(1); err != nil { // consume '#'
		return token.Token{}, wrapIO(err, l.r.Position())
	}

	namespace, err := l.scanDirectiveWord()
	if err != nil {
		return token.Token{}, err
	}
	if len(namespace) == 0 {
		return token.Token{}, diag.New(diag.DirectiveMalformed, diag.Error, start)
	}

	if !l.skipLineWhitespace() {
		return token.Token{}, diag.New(diag.DirectiveMalformed, diag.Error, start)
	}

	command, err := l.scanDirectiveWord()
	if err != nil {
		return token.Token{}, err
	}
	if len(command) == 0 {
		return token.Token{}, diag.New(diag.DirectiveMalformed, diag.Error, start)
	}

	var params []token.DirectiveParam
	for l.skipLineWhitespace() {
		word, err := l.scanDirectiveWord()
		if err != nil {
			return token.Token{}, err
		}
		if len(word) == 0 {
			break
		}
		idx := bytes.IndexByte(word, '=')
		if idx < 0 {
			return token.Token{}, diag.New(diag.DirectiveMalformed, diag.Error, start)
		}
		params = append(params, token.DirectiveParam{
			Key:   token.Slice{Bytes: word[:idx]},
			Value: token.Slice{Bytes: word[idx+1:]},
		})
	}

	return token.Token{
		Kind:               token.Directive,
		Start:              start,
		DirectiveNamespace: token.Slice{Bytes: namespace},
		DirectiveCommand:   token.Slice{Bytes: command},
		DirectiveParams:    params,
	}, nil
}

// scanDirectiveWord consumes bytes up to (not including) the next
// whitespace byte or end of line/stream.
func (l *Lexer) scanDirectiveWord() ([]byte, error) {
	l.r.BeginToken()
	for {
		b, ok := l.r.PeekByte(0)
		if !ok || b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			break
		}
		if err := l.r.Advance(1); err != nil {
			return nil, wrapIO(err, l.r.Position())
		}
	}
	return l.r.TokenSlice(), nil
}

// skipLineWhitespace consumes spaces/tabs (not newlines, since a
// directive ends at end-of-line) and reports whether the directive
// continues (true) or has reached end-of-line/stream (false).
func (l *Lexer) skipLineWhitespace() bool {
	for {
		b, ok := l.r.PeekByte(0)
		if !ok || b == '\n' || b == '\r' {
			return false
		}
		if b == ' ' || b == '\t' {
			l.r.Advance(1)
			continue
		}
		return true
	}
}
