// Package serializer implements the segment-to-text writer of spec.md
// §4.4: it consumes a segment.Segment stream and writes valid AJIS text
// in Compact, Pretty, or Canonical form, mirroring the parser's frame
// stack to decide comma/indent placement instead of recursing over a
// materialized tree (see mcvoid-json/json.go's Value.String for the
// teacher's recursive equivalent; DESIGN.md records the grounding).
package serializer

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"sort"
	"strconv"

	"github.com/ajis-lang/ajis-go"
	"github.com/ajis-lang/ajis-go/diag"
	"github.com/ajis-lang/ajis-go/segment"
	"github.com/ajis-lang/ajis-go/token"
)

type frame struct {
	kind    segment.ContainerKind
	members int
	// buffered holds pending canonical-mode object members (name+value
	// byte runs) until ContainerEnd, when they are sorted and flushed.
	buffered []canonicalMember
	// name holds this container's own quoted property name (captured at
	// ContainerStart, before any child PropertyName can overwrite
	// s.pendingName), so Canonical mode can attach the right name to the
	// right subtree however deeply the container nests. Nil when this
	// container is an array item or the document root.
	name []byte
}

type canonicalMember struct {
	name  []byte
	value []byte
}

// Serializer writes a segment stream to an underlying io.Writer.
type Serializer struct {
	w        *bufio.Writer
	settings ajis.Settings

	frames []frame
	// pendingName holds a just-seen PropertyName awaiting its value, so
	// Compact/Pretty can write "name: " (or "name":) as one unit and
	// Canonical can buffer (name, value) together.
	pendingName *segment.Segment

	wroteRoot bool
	err       error

	logger *slog.Logger
}

// Option configures a Serializer beyond the required Open arguments.
type Option func(*Serializer)

// WithLogger attaches a logger; Close logs a fatal write/balance failure
// at Error, per spec.md §10.1. A nil logger (the default) disables
// logging entirely.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Serializer) { s.logger = logger }
}

// Open wraps w for a single serialize call under settings.
func Open(w io.Writer, settings ajis.Settings, opts ...Option) *Serializer {
	settings = settings.Normalize()
	s := &Serializer{w: bufio.NewWriter(w), settings: settings}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Write consumes one segment. Diagnostic and Progress segments are
// ignored structurally, per spec.md §4.4. Call Close once the stream is
// exhausted to flush any buffered canonical output and the underlying
// writer.
func (s *Serializer) Write(seg segment.Segment) error {
	if s.err != nil {
		return s.err
	}
	switch seg.Kind {
	case segment.Progress, segment.Diagnostic:
		return nil
	case segment.ContainerStart:
		s.err = s.writeContainerStart(seg)
	case segment.ContainerEnd:
		s.err = s.writeContainerEnd(seg)
	case segment.PropertyName:
		name := seg
		s.pendingName = &name
	case segment.Value:
		s.err = s.writeValue(seg)
	}
	if s.err != nil {
		if d, ok := s.err.(diag.Diagnostic); ok {
			s.logFatal(d)
		}
	}
	return s.err
}

// Close flushes the underlying writer. It reports SEGMENT_STREAM_UNBALANCED
// if the frame stack was left non-empty (an unterminated container).
func (s *Serializer) Close() error {
	if s.err != nil {
		return s.err
	}
	if len(s.frames) > 0 {
		d := diag.New(diag.SegmentStreamUnbalanced, diag.Error, ajis.Position{})
		s.logFatal(d)
		return d
	}
	if err := s.w.Flush(); err != nil {
		d := diag.New(diag.IOWrite, diag.Error, ajis.Position{}, err.Error())
		s.logFatal(d)
		return d
	}
	return nil
}

func (s *Serializer) logFatal(d diag.Diagnostic) {
	if s.logger == nil {
		return
	}
	s.logger.Log(context.Background(), slog.LevelError, d.MessageKey,
		slog.String("code", string(d.Code)))
}

func (s *Serializer) top() *frame {
	if len(s.frames) == 0 {
		return nil
	}
	return &s.frames[len(s.frames)-1]
}

// beforeMember writes the comma/indent/colon punctuation that precedes
// one member or array item in Compact/Pretty modes; it is a no-op in
// Canonical mode, which buffers and writes its own punctuation at flush.
func (s *Serializer) beforeMember(f *frame) {
	if s.settings.Formatting == ajis.Canonical {
		return
	}
	if f.members > 0 {
		s.w.WriteByte(',')
	}
	if s.settings.Formatting == ajis.Pretty {
		s.w.WriteByte('\n')
		s.writeIndent(len(s.frames))
	}
}

func (s *Serializer) writeIndent(depth int) {
	n := s.settings.EffectiveIndent() * depth
	for i := 0; i < n; i++ {
		s.w.WriteByte(' ')
	}
}

func (s *Serializer) writeContainerStart(seg segment.Segment) error {
	f := s.top()
	if f != nil && f.kind == segment.Object && s.pendingName == nil {
		return diag.New(diag.SegmentStreamUnbalanced, diag.Error, seg.Pos)
	}

	nf := frame{kind: seg.ContainerKind}

	if s.settings.Formatting == ajis.Canonical {
		// Deferred: the opening brace/bracket is written when the
		// buffered subtree is flushed by its parent (or at root).
		// Capture the name now, before any descendant's own
		// PropertyName segments can overwrite s.pendingName.
		if f != nil && f.kind == segment.Object {
			nf.name = quoteName(s.pendingName.Name, s.pendingName.NameFlags)
			s.pendingName = nil
		}
	} else {
		if f != nil {
			s.beforeMember(f)
			if f.kind == segment.Object {
				s.writeName(*s.pendingName)
				s.pendingName = nil
			}
		}
		if seg.ContainerKind == segment.Object {
			s.w.WriteByte('{')
		} else {
			s.w.WriteByte('[')
		}
	}

	s.frames = append(s.frames, nf)
	s.wroteRoot = true
	return nil
}

func (s *Serializer) writeName(name segment.Segment) {
	s.w.Write(quoteName(name.Name, name.NameFlags))
	s.w.WriteByte(':')
	if s.settings.Formatting == ajis.Pretty {
		s.w.WriteByte(' ')
	}
}

func (s *Serializer) writeContainerEnd(seg segment.Segment) error {
	f := s.top()
	if f == nil || f.kind != seg.ContainerKind {
		return diag.New(diag.SegmentStreamUnbalanced, diag.Error, seg.Pos)
	}
	s.frames = s.frames[:len(s.frames)-1]

	if s.settings.Formatting == ajis.Canonical {
		buf, err := closeCanonical(*f, seg.ContainerKind)
		if err != nil {
			return err
		}
		return s.emitCanonicalValue(buf, f.name)
	}

	if f.members > 0 && s.settings.Formatting == ajis.Pretty {
		s.w.WriteByte('\n')
		s.writeIndent(len(s.frames))
	}
	if seg.ContainerKind == segment.Object {
		s.w.WriteByte('}')
	} else {
		s.w.WriteByte(']')
	}
	if parent := s.top(); parent != nil {
		parent.members++
	}
	return nil
}

func closeCanonical(f frame, kind segment.ContainerKind) ([]byte, error) {
	var out []byte
	if kind == segment.Object {
		members := f.buffered
		seen := map[string]struct{}{}
		for _, m := range members {
			if _, dup := seen[string(m.name)]; dup {
				return nil, diag.New(diag.CanonicalDuplicateKeys, diag.Error, ajis.Position{})
			}
			seen[string(m.name)] = struct{}{}
		}
		sort.Slice(members, func(i, j int) bool {
			return string(members[i].name) < string(members[j].name)
		})
		out = append(out, '{')
		for i, m := range members {
			if i > 0 {
				out = append(out, ',')
			}
			out = append(out, m.name...)
			out = append(out, ':')
			out = append(out, m.value...)
		}
		out = append(out, '}')
	} else {
		out = append(out, '[')
		for i, m := range f.buffered {
			if i > 0 {
				out = append(out, ',')
			}
			out = append(out, m.value...)
		}
		out = append(out, ']')
	}
	return out, nil
}

// emitCanonicalValue routes a fully-rendered subtree (or primitive) into
// its parent's buffer, or writes it directly at the root. name is the
// quoted property name the value was seen under, already resolved by the
// caller (a popped frame's own captured name, or the live pendingName for
// a primitive); nil when the parent is an array or this is the root.
func (s *Serializer) emitCanonicalValue(value []byte, name []byte) error {
	parent := s.top()
	if parent == nil {
		s.w.Write(value)
		return nil
	}
	m := canonicalMember{value: value}
	if parent.kind == segment.Object {
		if name == nil {
			return diag.New(diag.SegmentStreamUnbalanced, diag.Error, ajis.Position{})
		}
		m.name = name
	}
	parent.buffered = append(parent.buffered, m)
	return nil
}

func (s *Serializer) writeValue(seg segment.Segment) error {
	buf := renderValue(seg, s.settings.Formatting)

	if s.settings.Formatting == ajis.Canonical {
		var name []byte
		if s.pendingName != nil {
			name = quoteName(s.pendingName.Name, s.pendingName.NameFlags)
			s.pendingName = nil
		}
		return s.emitCanonicalValue(buf, name)
	}

	f := s.top()
	if f != nil {
		s.beforeMember(f)
		if f.kind == segment.Object {
			if s.pendingName == nil {
				return diag.New(diag.SegmentStreamUnbalanced, diag.Error, seg.Pos)
			}
			s.writeName(*s.pendingName)
			s.pendingName = nil
		}
		f.members++
	}
	s.w.Write(buf)
	s.wroteRoot = true
	return nil
}

func renderValue(seg segment.Segment, formatting ajis.Formatting) []byte {
	switch seg.ValueKind {
	case segment.Null:
		return []byte("null")
	case segment.Bool:
		if seg.Bool {
			return []byte("true")
		}
		return []byte("false")
	case segment.Num:
		if formatting == ajis.Canonical {
			return canonicalizeNumber(seg.NumberText.Bytes, seg.NumberFlags)
		}
		return renderNumber(seg.NumberText.Bytes, seg.NumberFlags)
	case segment.Str:
		if formatting == ajis.Canonical {
			// Canonical strings always re-escape from decoded content,
			// per spec.md §4.4's minimal-escape rule; a RawSlice
			// producer must hand the serializer decoded text for exact
			// canonical output.
			return quoteBytes(seg.StringText.Bytes, true)
		}
		return quoteStringValue(seg.StringText, seg.StringFlags)
	}
	return nil
}

// renderNumber reproduces the source bytes verbatim for RawSlice
// representation, per spec.md §4.4's "Number preservation contract".
// Canonical normalization happens in canonicalizeNumber, called only
// from the Canonical formatting path.
func renderNumber(raw []byte, flags token.NumberFlags) []byte {
	return raw
}

// quoteName renders a property name as a double-quoted string,
// regardless of how it was written in the source (spec.md §4.4:
// "always quoted in output"). Identifier-style names were never
// escaped to begin with, so their raw bytes are literal content that
// must be escaped the same way decoded text would be.
func quoteName(name token.Slice, flags token.StringFlags) []byte {
	if name.Decoded || flags.QuoteStyle == token.Identifier {
		return quoteBytes(name.Bytes, true)
	}
	return quoteBytes(name.Bytes, false)
}

// quoteStringValue writes a double-quoted string value. Decoded content
// (token.Slice.Decoded) must be re-escaped; raw double-quoted source
// bytes already carry valid escapes and are copied through unchanged.
// Single-quoted or unquoted-identifier source text is decoded-adjacent
// enough (no unescaped '"' survives lexing it) that it is also copied
// through as-is.
func quoteStringValue(text token.Slice, flags token.StringFlags) []byte {
	if text.Decoded {
		return quoteBytes(text.Bytes, true)
	}
	return quoteBytes(text.Bytes, false)
}

// quoteBytes double-quotes content, escaping only what spec.md §4.4
// requires to stay minimal: '"', '\\', and C0 controls as \uXXXX. If
// assumeRaw is false the content is already-escaped source bytes and is
// copied through unchanged (RawSlice representation, non-canonical
// formatting).
func quoteBytes(content []byte, assumeRaw bool) []byte {
	out := make([]byte, 0, len(content)+2)
	out = append(out, '"')
	if !assumeRaw {
		out = append(out, content...)
		out = append(out, '"')
		return out
	}
	for _, b := range content {
		switch {
		case b == '"':
			out = append(out, '\\', '"')
		case b == '\\':
			out = append(out, '\\', '\\')
		case b < 0x20:
			out = append(out, []byte(`\u00`)...)
			const hex = "0123456789abcdef"
			out = append(out, hex[b>>4], hex[b&0xf])
		default:
			out = append(out, b)
		}
	}
	out = append(out, '"')
	return out
}

// canonicalizeNumber normalizes a number token's bytes to the decimal
// form spec.md §4.4 requires: any base is converted to base 10, no
// leading '+'/leading zeros, fractional form keeps at least one digit
// after '.', exponent is lowercase 'e' with no leading '+'.
func canonicalizeNumber(raw []byte, flags token.NumberFlags) []byte {
	if flags.Base != 10 {
		return canonicalizeBasedInteger(raw, flags)
	}
	s := stripSeparators(raw)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return []byte(s)
	}
	out := strconv.FormatFloat(f, 'g', -1, 64)
	return []byte(normalizeExponent(out))
}

func stripSeparators(raw []byte) string {
	out := make([]byte, 0, len(raw))
	for _, b := range raw {
		if b != '_' {
			out = append(out, b)
		}
	}
	return string(out)
}

func canonicalizeBasedInteger(raw []byte, flags token.NumberFlags) []byte {
	s := stripSeparators(raw)
	negative := false
	if len(s) > 0 && s[0] == '-' {
		negative = true
		s = s[1:]
	}
	if len(s) > 1 && s[0] == '0' {
		s = s[2:] // drop "0x"/"0o"/"0b" prefix
	}
	n, err := strconv.ParseUint(s, int(flags.Base), 64)
	if err != nil {
		return raw
	}
	out := strconv.FormatUint(n, 10)
	if negative {
		out = "-" + out
	}
	return []byte(out)
}

func normalizeExponent(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == 'e' || s[i] == 'E' {
			mantissa, exp := s[:i], s[i+1:]
			if len(exp) > 0 && exp[0] == '+' {
				exp = exp[1:]
			}
			return mantissa + "e" + exp
		}
	}
	return s
}
