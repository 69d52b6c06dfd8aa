package parser

import (
	"github.com/ajis-lang/ajis-go"
	"github.com/ajis-lang/ajis-go/diag"
	"github.com/ajis-lang/ajis-go/segment"
	"github.com/ajis-lang/ajis-go/token"
)

// dispatch runs the grammar for one already-lexed non-meta token.
func (p *Parser) dispatch(tok token.Token) {
	top := p.top()

	if top == nil {
		// Root position: exactly one value is expected. Once consumed,
		// step() routes here no further by checking awaitingRoot/frames
		// before calling dispatch again.
		p.awaitingRoot = false
		p.beginValue(tok)
		return
	}

	switch top.Kind {
	case segment.Object:
		p.dispatchObject(top, tok)
	case segment.Array:
		p.dispatchArray(top, tok)
	}
}

func (p *Parser) dispatchObject(f *segment.Frame, tok token.Token) {
	switch f.Expecting {
	case segment.ExpectPropertyName:
		if isPunct(tok, token.RBrace) {
			p.endContainer(segment.Object, tok)
			return
		}
		p.readPropertyName(f, tok)

	case segment.ExpectPropertyNameAfterComma:
		if isPunct(tok, token.RBrace) {
			if p.settings.AllowTrailingCommas {
				p.endContainer(segment.Object, tok)
			} else {
				p.reportFatal(diag.New(diag.TrailingCommaDisallow, diag.Error, tok.Start))
			}
			return
		}
		p.readPropertyName(f, tok)

	case segment.ExpectColon:
		if !isPunct(tok, token.Colon) {
			p.reportFatal(diag.New(diag.MissingColon, diag.Error, tok.Start))
			return
		}
		f.Expecting = segment.ExpectValue

	case segment.ExpectValue:
		p.beginValue(tok)
		if f.Expecting == segment.ExpectValue {
			f.Expecting = segment.ExpectCommaOrEnd
		}

	case segment.ExpectCommaOrEnd:
		switch {
		case isPunct(tok, token.RBrace):
			p.endContainer(segment.Object, tok)
		case isPunct(tok, token.Comma):
			f.Expecting = segment.ExpectPropertyNameAfterComma
		default:
			p.reportFatal(diag.New(diag.MissingComma, diag.Error, tok.Start))
		}
	}
}

func (p *Parser) dispatchArray(f *segment.Frame, tok token.Token) {
	switch f.Expecting {
	case segment.ExpectValue:
		if isPunct(tok, token.RBrack) {
			p.endContainer(segment.Array, tok)
			return
		}
		p.beginValue(tok)
		if f.Expecting == segment.ExpectValue {
			f.Expecting = segment.ExpectCommaOrEnd
		}

	case segment.ExpectValueAfterComma:
		if isPunct(tok, token.RBrack) {
			if p.settings.AllowTrailingCommas {
				p.endContainer(segment.Array, tok)
			} else {
				p.reportFatal(diag.New(diag.TrailingCommaDisallow, diag.Error, tok.Start))
			}
			return
		}
		p.beginValue(tok)
		if f.Expecting == segment.ExpectValueAfterComma {
			f.Expecting = segment.ExpectCommaOrEnd
		}

	case segment.ExpectCommaOrEnd:
		switch {
		case isPunct(tok, token.RBrack):
			p.endContainer(segment.Array, tok)
		case isPunct(tok, token.Comma):
			f.Expecting = segment.ExpectValueAfterComma
		default:
			p.reportFatal(diag.New(diag.MissingComma, diag.Error, tok.Start))
		}
	}
}

func isPunct(tok token.Token, kind token.PunctKind) bool {
	return tok.Kind == token.Punct && tok.Punct == kind
}

// beginValue handles any value-starting token: a primitive becomes a
// Value segment; '{' or '[' push a new frame and emit ContainerStart.
// It never changes the caller's f.Expecting, for a primitive or a
// container start alike; callers then set it to ExpectCommaOrEnd, and
// for a container start endContainer sets it again when the child
// frame closes.
func (p *Parser) beginValue(tok token.Token) {
	switch {
	case isPunct(tok, token.LBrace):
		f, ok := p.pushFrame(segment.Object, segment.ExpectPropertyName)
		if !ok {
			p.reportFatal(diag.New(diag.DepthExceeded, diag.Error, tok.Start))
			return
		}
		p.queue = append(p.queue, segment.Segment{
			Kind: segment.ContainerStart, ContainerKind: segment.Object,
			FrameID: f.FrameID, ParentID: f.ParentID, Pos: tok.Start,
		})

	case isPunct(tok, token.LBrack):
		f, ok := p.pushFrame(segment.Array, segment.ExpectValue)
		if !ok {
			p.reportFatal(diag.New(diag.DepthExceeded, diag.Error, tok.Start))
			return
		}
		p.queue = append(p.queue, segment.Segment{
			Kind: segment.ContainerStart, ContainerKind: segment.Array,
			FrameID: f.FrameID, ParentID: f.ParentID, Pos: tok.Start,
		})

	case tok.Kind == token.String:
		p.queue = append(p.queue, segment.Segment{
			Kind: segment.Value, ValueKind: segment.Str,
			StringText: tok.Text, StringFlags: tok.StringFlags, Pos: tok.Start,
		})

	case tok.Kind == token.Number:
		if tok.NumberFlags.HasSeparators && !separatorGroupingOK(tok.Text.Bytes, tok.NumberFlags.Base) {
			p.reportFatal(diag.New(diag.NumberSeparatorGrouping, diag.Warning, tok.Start))
		}
		// The lexer's number bytes alias the reader window; copy them so
		// the segment stays valid after later Next calls.
		text := tok.Text
		text.Bytes = append([]byte(nil), tok.Text.Bytes...)
		p.queue = append(p.queue, segment.Segment{
			Kind: segment.Value, ValueKind: segment.Num,
			NumberText: text, NumberFlags: tok.NumberFlags, Pos: tok.Start,
		})

	case tok.Kind == token.Literal:
		p.emitLiteralValue(tok)

	default:
		p.reportFatal(diag.New(diag.UnexpectedToken, diag.Error, tok.Start))
	}
}

func (p *Parser) emitLiteralValue(tok token.Token) {
	switch tok.Literal {
	case token.LiteralNull:
		p.queue = append(p.queue, segment.Segment{Kind: segment.Value, ValueKind: segment.Null, Pos: tok.Start})
	case token.LiteralTrue:
		p.queue = append(p.queue, segment.Segment{Kind: segment.Value, ValueKind: segment.Bool, Bool: true, Pos: tok.Start})
	case token.LiteralFalse:
		p.queue = append(p.queue, segment.Segment{Kind: segment.Value, ValueKind: segment.Bool, Bool: false, Pos: tok.Start})
	case token.LiteralNaN:
		p.queue = append(p.queue, segment.Segment{
			Kind: segment.Value, ValueKind: segment.Num,
			NumberText: token.Slice{Bytes: []byte("NaN")}, Pos: tok.Start,
		})
	case token.LiteralPosInf:
		p.queue = append(p.queue, segment.Segment{
			Kind: segment.Value, ValueKind: segment.Num,
			NumberText: token.Slice{Bytes: []byte("Infinity")}, Pos: tok.Start,
		})
	case token.LiteralNegInf:
		p.queue = append(p.queue, segment.Segment{
			Kind: segment.Value, ValueKind: segment.Num,
			NumberText: token.Slice{Bytes: []byte("-Infinity")}, Pos: tok.Start,
		})
	}
}

// endContainer closes the frame on top of the stack, which must match
// kind, and updates the (now) parent frame's Expecting state.
func (p *Parser) endContainer(kind segment.ContainerKind, tok token.Token) {
	top := p.top()
	if top == nil || top.Kind != kind {
		p.reportFatal(diag.New(diag.ContainerMismatch, diag.Error, tok.Start))
		return
	}
	f := p.popFrame()
	p.queue = append(p.queue, segment.Segment{
		Kind: segment.ContainerEnd, ContainerKind: kind,
		FrameID: f.FrameID, ParentID: f.ParentID, Pos: tok.Start,
	})
	if parent := p.top(); parent != nil {
		parent.Expecting = segment.ExpectCommaOrEnd
	}
}

func (p *Parser) readPropertyName(f *segment.Frame, tok token.Token) {
	if tok.Kind != token.String {
		p.reportFatal(diag.New(diag.UnexpectedToken, diag.Error, tok.Start))
		return
	}
	p.emitPropertyName(f, tok)
	if !p.halted {
		f.Expecting = segment.ExpectColon
	}
}

func (p *Parser) emitPropertyName(f *segment.Frame, tok token.Token) {
	name := string(tok.Text.Bytes)
	if p.settings.MaxPropertyNameBytes > 0 && uint64(len(tok.Text.Bytes)) > p.settings.MaxPropertyNameBytes {
		p.reportFatal(diag.New(diag.PropertyNameTooLarge, diag.Error, tok.Start, name))
		return
	}

	if p.settings.DuplicateKeys != ajis.DuplicateKeysAllow {
		if p.dupKeys == nil {
			p.dupKeys = map[uint64]map[string]struct{}{}
		}
		set, ok := p.dupKeys[f.FrameID]
		if !ok {
			set = map[string]struct{}{}
			p.dupKeys[f.FrameID] = set
		}
		if _, seen := set[name]; seen {
			sev := diag.Warning
			if p.settings.DuplicateKeys == ajis.DuplicateKeysReject {
				sev = diag.Error
			}
			p.reportFatal(diag.New(diag.DuplicateKey, sev, tok.Start, name))
			if p.halted {
				return
			}
		}
		set[name] = struct{}{}
	}

	p.queue = append(p.queue, segment.Segment{
		Kind: segment.PropertyName, FrameID: f.FrameID,
		Name: tok.Text, NameFlags: tok.StringFlags, Pos: tok.Start,
	})
}
