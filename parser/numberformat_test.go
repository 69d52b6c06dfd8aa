package parser_test

import (
	"strings"
	"testing"

	"github.com/ajis-lang/ajis-go"
	"github.com/ajis-lang/ajis-go/diag"
	"github.com/ajis-lang/ajis-go/parser"
	"github.com/ajis-lang/ajis-go/segment"
)

func drainSegments(t *testing.T, src string) []segment.Segment {
	t.Helper()
	p := parser.Open(strings.NewReader(src), ajis.AjisSettings(), nil, 0)
	var segs []segment.Segment
	for {
		seg, res := p.Next()
		if res == parser.ResultEndOfStream {
			break
		}
		if res == parser.ResultCancelled {
			t.Fatalf("unexpected cancellation")
		}
		segs = append(segs, seg)
	}
	if fatal := p.LastFatal(); fatal != nil {
		t.Fatalf("parse failed: %v", fatal)
	}
	return segs
}

func diagnosticCodes(segs []segment.Segment) []diag.Code {
	var codes []diag.Code
	for _, seg := range segs {
		if seg.Kind == segment.Diagnostic {
			codes = append(codes, seg.Diag.Code)
		}
	}
	return codes
}

func TestNumberSeparatorGroupingWarning(t *testing.T) {
	tests := []struct {
		name, src  string
		wantWarned bool
	}{
		{"well-grouped decimal", "1_000_000", false},
		{"shorter first group allowed", "1_000", false},
		{"uneven decimal grouping", "10_00", true},
		{"consistent hex grouping", "0xFFFF_FFFF", false},
		{"inconsistent hex grouping", "0xF_FFFF_FF", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codes := diagnosticCodes(drainSegments(t, tt.src))
			gotWarned := false
			for _, c := range codes {
				if c == diag.NumberSeparatorGrouping {
					gotWarned = true
				}
			}
			if gotWarned != tt.wantWarned {
				t.Errorf("NUMBER_SEPARATOR_GROUPING emitted = %v, want %v (codes: %v)", gotWarned, tt.wantWarned, codes)
			}
		})
	}
}

func TestNumberSeparatorGroupingWarningDoesNotHaltParse(t *testing.T) {
	segs := drainSegments(t, `[10_00, 1]`)
	var values int
	for _, seg := range segs {
		if seg.Kind == segment.Value {
			values++
		}
	}
	if values != 2 {
		t.Errorf("got %d values, want 2 (grouping warning must not drop or halt parsing)", values)
	}
}
