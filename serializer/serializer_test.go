package serializer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ajis-lang/ajis-go"
	"github.com/ajis-lang/ajis-go/parser"
	"github.com/ajis-lang/ajis-go/serializer"
)

func drain(t *testing.T, src string, settings ajis.Settings) []byte {
	t.Helper()
	var out bytes.Buffer
	ser := serializer.Open(&out, settings)
	p := parser.Open(strings.NewReader(src), settings, nil, 0)
	for {
		seg, res := p.Next()
		if res == parser.ResultEndOfStream {
			break
		}
		if res == parser.ResultCancelled {
			t.Fatalf("unexpected cancellation")
		}
		if err := ser.Write(seg); err != nil {
			t.Fatalf("serializer.Write: %v", err)
		}
	}
	if fatal := p.LastFatal(); fatal != nil {
		t.Fatalf("parse failed: %v", fatal)
	}
	if err := ser.Close(); err != nil {
		t.Fatalf("serializer.Close: %v", err)
	}
	return out.Bytes()
}

func TestCompactRoundTrip(t *testing.T) {
	tests := []struct {
		name, input, want string
	}{
		{"object", `{"a": 1}`, `{"a":1}`},
		{"array", `[1, 2, 3]`, `[1,2,3]`},
		{"nested", `{"a": [1, {"b": true}]}`, `{"a":[1,{"b":true}]}`},
		{"empty object", `{}`, `{}`},
		{"empty array", `[]`, `[]`},
		{"string escapes", `"a\nb"`, `"a\nb"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := ajis.DefaultSettings()
			settings.Formatting = ajis.Compact
			got := drain(t, tt.input, settings)
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrettyIndent(t *testing.T) {
	settings := ajis.DefaultSettings()
	settings.Formatting = ajis.Pretty
	settings.Indent = 2
	got := drain(t, `{"a":1}`, settings)
	want := "{\n  \"a\": 1\n}"
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCanonicalSortsKeys(t *testing.T) {
	settings := ajis.AjisSettings()
	settings.Formatting = ajis.Canonical
	got := drain(t, `{"b":2,"a":1}`, settings)
	want := `{"a":1,"b":2}`
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCanonicalNormalizesHexNumber(t *testing.T) {
	settings := ajis.AjisSettings()
	settings.Formatting = ajis.Canonical
	got := drain(t, `0xFF`, settings)
	want := `255`
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCanonicalNestedObject(t *testing.T) {
	settings := ajis.AjisSettings()
	settings.Formatting = ajis.Canonical
	got := drain(t, `{"a":{"b":1}}`, settings)
	want := `{"a":{"b":1}}`
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCanonicalDeeplyNestedObjects(t *testing.T) {
	settings := ajis.AjisSettings()
	settings.Formatting = ajis.Canonical
	got := drain(t, `{"z":{"y":{"x":1,"w":2},"v":3},"a":1}`, settings)
	want := `{"a":1,"z":{"v":3,"y":{"w":2,"x":1}}}`
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCanonicalIdempotent(t *testing.T) {
	settings := ajis.AjisSettings()
	settings.Formatting = ajis.Canonical
	first := drain(t, `{"z":1,"a":[1,2,3]}`, settings)
	second := drain(t, string(first), settings)
	if string(first) != string(second) {
		t.Errorf("canonical output not idempotent: %q vs %q", first, second)
	}
}
