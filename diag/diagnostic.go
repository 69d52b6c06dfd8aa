package diag

import (
	"errors"
	"fmt"

	"github.com/ajis-lang/ajis-go"
)

// Severity classifies a Diagnostic per spec.md §6's wire form.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
	Critical
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	case Critical:
		return "Critical"
	default:
		return "<unknown severity>"
	}
}

// Fatal reports whether the severity halts the producing pipeline stage.
func (s Severity) Fatal() bool {
	return s >= Error
}

// Diagnostic is the wire form described in spec.md §6: a stable code,
// severity, exact position, localizable message key, and ordered
// argument list for message interpolation.
type Diagnostic struct {
	Code       Code
	Severity   Severity
	Position   ajis.Position
	MessageKey string
	Args       []string
}

// New builds a Diagnostic whose MessageKey defaults to the code itself;
// callers that want localization should set MessageKey explicitly or go
// through a Catalog.
func New(code Code, severity Severity, pos ajis.Position, args ...string) Diagnostic {
	return Diagnostic{
		Code:       code,
		Severity:   severity,
		Position:   pos,
		MessageKey: string(code),
		Args:       args,
	}
}

// Error implements the error interface so a fatal Diagnostic can be
// returned/wrapped through ordinary Go error plumbing (e.g. IO errors
// surfacing with the low-level cause attached as an arg, per spec.md §7).
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s at %s", d.Code, d.MessageKey, d.Position)
}

// ErrCancelled is an error value for an observed caller-supplied
// cancellation signal; spec.md §5 treats cancellation as a completion
// status, not an error. parser.Parser reports cancellation as
// ResultCancelled and does not return this value.
var ErrCancelled = errors.New("ajis: cancelled")
