package lexer

import (
	"github.com/ajis-lang/ajis-go"
	"github.com/ajis-lang/ajis-go/diag"
	"github.com/ajis-lang/ajis-go/token"
)

// scanComment scans either a "// ..." line comment or a "/* ... */"
// block comment. The caller has already confirmed the leading '/' and
// that at least one comment style is enabled.
func (l *Lexer) scanComment(start ajis.Position) (token.Token, error) {
	l.r.BeginToken()
	if err := l.r.Advance(1); err != nil { // consume '/'
		return token.Token{}, wrapIO(err, l.r.Position())
	}
	b, ok := l.r.PeekByte(0)
	if !ok {
		return token.Token{}, diag.New(diag.UnexpectedToken, diag.Error, start, "/")
	}

	switch {
	case b == '/' && l.settings.AllowLineComments:
		return l.scanLineComment(start)
	case b == '*' && l.settings.AllowBlockComments:
		return l.scanBlockComment(start)
	default:
		return token.Token{}, diag.New(diag.UnexpectedToken, diag.Error, start, "/")
	}
}

func (l *Lexer) scanLineComment(start ajis.Position) (token.Token, error) {
	if err := l.r.Advance(1); err != nil { // consume second '/'
		return token.Token{}, wrapIO(err, l.r.Position())
	}
	for {
		b, ok := l.r.PeekByte(0)
		if !ok || b == '\n' || b == '\r' {
			break
		}
		if err := l.r.Advance(1); err != nil {
			return token.Token{}, wrapIO(err, l.r.Position())
		}
	}
	raw := l.r.TokenSlice()
	return token.Token{
		Kind:         token.Comment,
		Start:        start,
		Text:         token.Slice{Bytes: raw},
		CommentStyle: token.LineComment,
	}, nil
}

func (l *Lexer) scanBlockComment(start ajis.Position) (token.Token, error) {
	if err := l.r.Advance(1); err != nil { // consume '*'
		return token.Token{}, wrapIO(err, l.r.Position())
	}
	for {
		b0, ok0 := l.r.PeekByte(0)
		if !ok0 {
			return token.Token{}, diag.New(diag.CommentUnterminated, diag.Error, start)
		}
		if b0 == '*' {
			if b1, ok1 := l.r.PeekByte(1); ok1 && b1 == '/' {
				if err := l.r.Advance(2); err != nil {
					return token.Token{}, wrapIO(err, l.r.Position())
				}
				break
			}
		}
		if _, _, err := l.r.AdvanceChar(); err != nil {
			return token.Token{}, wrapIO(err, l.r.Position())
		}
	}
	raw := l.r.TokenSlice()
	return token.Token{
		Kind:         token.Comment,
		Start:        start,
		Text:         token.Slice{Bytes: raw},
		CommentStyle: token.BlockComment,
	}, nil
}
