package transform_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ajis-lang/ajis-go"
	"github.com/ajis-lang/ajis-go/parser"
	"github.com/ajis-lang/ajis-go/segment"
	"github.com/ajis-lang/ajis-go/serializer"
	"github.com/ajis-lang/ajis-go/token"
	"github.com/ajis-lang/ajis-go/transform"
)

func parseAll(t *testing.T, src string) []segment.Segment {
	t.Helper()
	settings := ajis.DefaultSettings()
	p := parser.Open(strings.NewReader(src), settings, nil, 0)
	var out []segment.Segment
	for {
		seg, res := p.Next()
		if res == parser.ResultEndOfStream {
			break
		}
		out = append(out, seg)
	}
	if fatal := p.LastFatal(); fatal != nil {
		t.Fatalf("parse failed: %v", fatal)
	}
	return out
}

func render(t *testing.T, segs []segment.Segment) string {
	t.Helper()
	var out bytes.Buffer
	settings := ajis.DefaultSettings()
	ser := serializer.Open(&out, settings)
	for _, s := range segs {
		if err := ser.Write(s); err != nil {
			t.Fatalf("serializer.Write: %v", err)
		}
	}
	if err := ser.Close(); err != nil {
		t.Fatalf("serializer.Close: %v", err)
	}
	return out.String()
}

func TestDropByPath(t *testing.T) {
	for _, test := range []struct {
		name, input, path, want string
	}{
		{"top level scalar", `{"a":1,"b":2}`, "b", `{"a":1}`},
		{"subtree", `{"a":{"x":1},"b":2}`, "a", `{"b":2}`},
		{"array item", `[1,2,3]`, "[1]", `[1,3]`},
	} {
		t.Run(test.name, func(t *testing.T) {
			path, err := transform.ParsePath(test.path)
			if err != nil {
				t.Fatalf("ParsePath: %v", err)
			}
			segs := parseAll(t, test.input)
			src := transform.NewSliceSource(segs)
			got := render(t, transform.Drain(transform.Drop(src, path)))
			if got != test.want {
				t.Errorf("got %q, want %q", got, test.want)
			}
		})
	}
}

func TestRenameKeys(t *testing.T) {
	segs := parseAll(t, `{"a":1,"b":2}`)
	src := transform.NewSliceSource(segs)
	upper := transform.Rename(src, func(name []byte) []byte {
		return bytes.ToUpper(name)
	})
	got := render(t, transform.Drain(upper))
	want := `{"A":1,"B":2}`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSelectSubtree(t *testing.T) {
	for _, test := range []struct {
		name, input, path string
		mode              transform.SelectMode
		want              string
	}{
		{"bare", `{"a":{"x":1,"y":2},"b":3}`, "a", transform.SelectBare, `{"x":1,"y":2}`},
		{"wrap", `{"a":{"x":1},"b":2}`, "a", transform.SelectWrap, `{"a":{"x":1}}`},
		{"scalar bare", `{"a":1,"b":2}`, "b", transform.SelectBare, `2`},
	} {
		t.Run(test.name, func(t *testing.T) {
			path, err := transform.ParsePath(test.path)
			if err != nil {
				t.Fatalf("ParsePath: %v", err)
			}
			segs := parseAll(t, test.input)
			src := transform.NewSliceSource(segs)
			got := render(t, transform.Drain(transform.Select(src, path, test.mode)))
			if got != test.want {
				t.Errorf("got %q, want %q", got, test.want)
			}
		})
	}
}

func TestFilterArrayItems(t *testing.T) {
	segs := parseAll(t, `{"items":[1,2,3,4,5]}`)
	src := transform.NewSliceSource(segs)
	path, err := transform.ParsePath("items")
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	even := transform.Filter(src, path, func(item []segment.Segment) bool {
		if len(item) != 1 || item[0].Kind != segment.Value {
			return false
		}
		n := item[0].NumberText.String()
		return n == "2" || n == "4"
	})
	got := render(t, transform.Drain(even))
	want := `{"items":[2,4]}`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPatchSet(t *testing.T) {
	segs := parseAll(t, `{"a":1,"b":2}`)
	src := transform.NewSliceSource(segs)
	path, err := transform.ParsePath("a")
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	value := []segment.Segment{{Kind: segment.Value, ValueKind: segment.Num,
		NumberText: numberSlice("99")}}
	p := transform.NewPatch(src, path, transform.PatchSet, value, transform.FailOnMissing)
	got := render(t, transform.Drain(p))
	want := `{"a":99,"b":2}`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPatchInsert(t *testing.T) {
	segs := parseAll(t, `{"a":1}`)
	src := transform.NewSliceSource(segs)
	path, err := transform.ParsePath("c")
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	value := []segment.Segment{{Kind: segment.Value, ValueKind: segment.Bool, Bool: true}}
	p := transform.NewPatch(src, path, transform.PatchInsert, value, transform.FailOnMissing)
	got := render(t, transform.Drain(p))
	want := `{"a":1,"c":true}`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPatchRemove(t *testing.T) {
	segs := parseAll(t, `{"a":1,"b":2}`)
	src := transform.NewSliceSource(segs)
	path, err := transform.ParsePath("a")
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	p := transform.NewPatch(src, path, transform.PatchRemove, nil, transform.FailOnMissing)
	got := render(t, transform.Drain(p))
	want := `{"b":2}`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParsePathMalformed(t *testing.T) {
	if _, err := transform.ParsePath("items[x]"); err == nil {
		t.Errorf("expected error for malformed index")
	}
}

func numberSlice(s string) token.Slice {
	return token.Slice{Bytes: []byte(s)}
}
