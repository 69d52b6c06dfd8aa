// Package parser implements the container-stack grammar engine of
// spec.md §4.3: it drives a lexer.Lexer, validates AJIS grammar against
// a bounded frame stack, and emits an ordered segment.Segment stream.
package parser

import (
	"context"
	"io"
	"log/slog"

	"github.com/ajis-lang/ajis-go"
	"github.com/ajis-lang/ajis-go/diag"
	"github.com/ajis-lang/ajis-go/lexer"
	"github.com/ajis-lang/ajis-go/reader"
	"github.com/ajis-lang/ajis-go/segment"
	"github.com/ajis-lang/ajis-go/token"
)

// Result tags what Next returned: a real segment, end of stream, or an
// observed cancellation (per spec.md §5, cancellation is a completion
// status, not an error).
type Result int

const (
	ResultSegment Result = iota
	ResultEndOfStream
	ResultCancelled
)

// Parser is a single-threaded, cooperative pull parser: one call to
// Next runs just enough of the grammar to produce (or rule out) the
// next segment, per spec.md §5's "bounded CPU per segment" guarantee.
type Parser struct {
	lex      *lexer.Lexer
	r        *reader.Reader
	settings ajis.Settings

	frames      []segment.Frame
	nextFrameID uint64
	dupKeys     map[uint64]map[string]struct{}

	queue []segment.Segment

	awaitingRoot bool
	rootDone     bool
	halted       bool
	lastFatal    *diag.Diagnostic

	lastProgressMark uint64
	totalBytesHint   uint64

	cancel <-chan struct{}
	logger *slog.Logger
}

// Option configures a Parser beyond the required Open arguments.
type Option func(*Parser)

// WithLogger attaches a logger for diagnostics: recoverable diagnostics
// log at Warn, fatal ones at Error. Never called from the per-token hot
// path, per spec.md §10.1. A nil logger (the default) disables logging
// entirely.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

// Open begins a parse of src under settings. cancel, if non-nil, is
// checked at each step; closing it (or sending on it) stops emission.
// totalBytesHint, if known, is reported verbatim in Progress segments
// so a consumer can render a percentage; pass 0 if unknown.
func Open(src io.Reader, settings ajis.Settings, cancel <-chan struct{}, totalBytesHint uint64, opts ...Option) *Parser {
	settings = settings.Normalize()
	rr := reader.New(src)
	p := &Parser{
		lex:            lexer.New(rr, settings),
		r:              rr,
		settings:       settings,
		awaitingRoot:   true,
		cancel:         cancel,
		totalBytesHint: totalBytesHint,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// LastFatal returns the terminal diagnostic that halted the parse, if
// any; subsequent calls to Next after a fatal diagnostic re-report
// EndOfStream, and LastFatal lets a caller recover why.
func (p *Parser) LastFatal() *diag.Diagnostic {
	return p.lastFatal
}

func (p *Parser) cancelled() bool {
	if p.cancel == nil {
		return false
	}
	select {
	case <-p.cancel:
		return true
	default:
		return false
	}
}

// Next produces the next segment. It loops internally over lexer
// tokens that don't themselves yield a segment (whitespace is handled
// by the lexer already; comments and directives are routed here and
// produce no segment) until one is ready, EOF is reached, the parse is
// halted by a fatal diagnostic, or cancellation is observed.
func (p *Parser) Next() (segment.Segment, Result) {
	for {
		if p.cancelled() {
			return segment.Segment{}, ResultCancelled
		}
		if len(p.queue) > 0 {
			seg := p.queue[0]
			p.queue = p.queue[1:]
			return seg, ResultSegment
		}
		if p.halted || p.rootDone {
			return segment.Segment{}, ResultEndOfStream
		}
		p.step()
	}
}

// step advances the grammar by exactly one lexer token, appending zero
// or more segments to the queue. Errors are reported as Diagnostic
// segments (and, if fatal, set p.halted) rather than as Go errors, per
// spec.md §7's "model both recoverable diagnostics and fatal errors as
// data."
func (p *Parser) step() {
	p.maybeEmitProgress()

	if !p.awaitingRoot && len(p.frames) == 0 {
		p.finishAfterRoot()
		return
	}

	tok, err := p.lex.Next()
	if err != nil {
		p.reportFatal(err)
		return
	}

	switch tok.Kind {
	case token.Comment, token.Directive:
		return // routed here, but contribute no segment
	case token.EOF:
		p.handleEOF(tok)
		return
	}

	p.dispatch(tok)
}

func (p *Parser) maybeEmitProgress() {
	if p.settings.EmitProgressEveryBytes == 0 {
		return
	}
	offset := uint64(p.r.Position().Offset)
	threshold := p.settings.EmitProgressEveryBytes
	if offset/threshold > p.lastProgressMark {
		p.lastProgressMark = offset / threshold
		p.queue = append(p.queue, segment.Segment{
			Kind:           segment.Progress,
			BytesRead:      offset,
			TotalBytesHint: p.totalBytesHint,
		})
	}
}

func (p *Parser) reportFatal(err error) {
	d := toDiagnostic(err, p.r.Position())
	p.queue = append(p.queue, segment.Segment{Kind: segment.Diagnostic, Diag: d, Pos: d.Position})
	if d.Severity.Fatal() {
		p.halted = true
		fatal := d
		p.lastFatal = &fatal
		p.logDiagnostic(d, slog.LevelError)
		return
	}
	p.logDiagnostic(d, slog.LevelWarn)
}

func (p *Parser) logDiagnostic(d diag.Diagnostic, level slog.Level) {
	if p.logger == nil {
		return
	}
	p.logger.Log(context.Background(), level, d.MessageKey,
		slog.String("code", string(d.Code)),
		slog.String("severity", d.Severity.String()),
		slog.Any("position", d.Position))
}

func toDiagnostic(err error, pos ajis.Position) diag.Diagnostic {
	if d, ok := err.(diag.Diagnostic); ok {
		return d
	}
	return diag.New(diag.IORead, diag.Error, pos, err.Error())
}

func (p *Parser) handleEOF(tok token.Token) {
	if p.awaitingRoot || len(p.frames) > 0 {
		p.reportFatal(diag.New(diag.UnexpectedEOF, diag.Error, tok.Start))
		return
	}
	p.finishAfterRoot()
}

// finishAfterRoot is called once the root value is complete. It peeks
// past trailing whitespace (never a full token) to decide whether the
// stream is cleanly exhausted or carries extra data, per spec.md §6's
// end-of-text boundary.
func (p *Parser) finishAfterRoot() {
	atEOF, err := p.lex.PeekAtEOF()
	if err != nil {
		p.reportFatal(err)
		return
	}
	if atEOF {
		p.rootDone = true
		return
	}
	if p.settings.RequireTrailingEOF {
		p.reportFatal(diag.New(diag.ExtraDataAfterRoot, diag.Error, p.r.Position()))
		return
	}
	// Extra data exists but isn't required to be absent: stop cleanly
	// without consuming it further.
	p.rootDone = true
}

func (p *Parser) pushFrame(kind segment.ContainerKind, expecting segment.Expecting) (segment.Frame, bool) {
	if uint32(len(p.frames)+1) > p.settings.EffectiveMaxDepth() {
		return segment.Frame{}, false
	}
	p.nextFrameID++
	parent := uint64(0)
	if len(p.frames) > 0 {
		parent = p.frames[len(p.frames)-1].FrameID
	}
	f := segment.Frame{
		Kind:      kind,
		FrameID:   p.nextFrameID,
		ParentID:  parent,
		Expecting: expecting,
	}
	p.frames = append(p.frames, f)
	return f, true
}

func (p *Parser) top() *segment.Frame {
	if len(p.frames) == 0 {
		return nil
	}
	return &p.frames[len(p.frames)-1]
}

func (p *Parser) popFrame() segment.Frame {
	f := p.frames[len(p.frames)-1]
	p.frames = p.frames[:len(p.frames)-1]
	delete(p.dupKeys, f.FrameID)
	return f
}
