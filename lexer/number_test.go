package lexer_test

import (
	"strings"
	"testing"

	"github.com/ajis-lang/ajis-go"
	"github.com/ajis-lang/ajis-go/lexer"
	"github.com/ajis-lang/ajis-go/reader"
	"github.com/ajis-lang/ajis-go/token"
)

func scanOne(t *testing.T, src string) token.Token {
	t.Helper()
	settings := ajis.AjisSettings()
	l := lexer.New(reader.New(strings.NewReader(src)), settings)
	tok, err := l.Next()
	if err != nil {
		t.Fatalf("lex %q: %v", src, err)
	}
	return tok
}

func TestDecimalSeparatorFlag(t *testing.T) {
	tests := []struct {
		name, src     string
		wantSeparated bool
	}{
		{"plain integer", "1000000", false},
		{"grouped integer", "1_000_000", true},
		{"separator in fraction", "1.000_001", true},
		{"separator in exponent", "1e1_0", true},
		{"plain float", "1.5", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := scanOne(t, tt.src)
			if tok.NumberFlags.Base != token.Base10 {
				t.Fatalf("Base = %v, want Base10", tok.NumberFlags.Base)
			}
			if tok.NumberFlags.HasSeparators != tt.wantSeparated {
				t.Errorf("HasSeparators = %v, want %v", tok.NumberFlags.HasSeparators, tt.wantSeparated)
			}
		})
	}
}

func TestMultiBaseSeparatorFlagUnaffected(t *testing.T) {
	tok := scanOne(t, "0x65_518")
	if !tok.NumberFlags.HasSeparators {
		t.Errorf("HasSeparators = false, want true for 0x65_518")
	}
	if tok.NumberFlags.Base != token.Base16 {
		t.Errorf("Base = %v, want Base16", tok.NumberFlags.Base)
	}
}
