package ajis_test

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ajis-lang/ajis-go"
	"github.com/ajis-lang/ajis-go/parser"
	"github.com/ajis-lang/ajis-go/serializer"
)

// A parse runs under one of the three settings presets, or your own.
// AjisSettings() turns on every AJIS extension: trailing commas, single
// quotes, unquoted keys, comments, multi-base numbers, digit
// separators, NaN/Infinity.
func Example() {
	src := `{
		// a band, with a trailing comma the spec tolerates
		name: 'The Beatles',
		members: 4,
		year_formed: 1996,
	}`

	p := parser.Open(strings.NewReader(src), ajis.AjisSettings(), nil, 0)

	var out bytes.Buffer
	s := serializer.Open(&out, ajis.AjisSettings())

loop:
	for {
		seg, res := p.Next()
		switch res {
		case parser.ResultSegment:
			if err := s.Write(seg); err != nil {
				fmt.Println("write error:", err)
				return
			}
		case parser.ResultEndOfStream, parser.ResultCancelled:
			break loop
		}
	}

	if d := p.LastFatal(); d != nil {
		fmt.Println("parse error:", d)
		return
	}
	if err := s.Close(); err != nil {
		fmt.Println("close error:", err)
		return
	}
	fmt.Println(out.String())

	// Output:
	// {"name":"The Beatles","members":4,"year_formed":1996}
}
