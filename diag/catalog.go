package diag

import (
	"fmt"
	"strings"
)

// Catalog maps a message key and locale to a human-readable format
// string, fulfilling the "message_key: string" localization requirement
// of spec.md §6 without hardcoding English into Diagnostic values
// themselves. Render is safe for concurrent use once all Add calls have
// finished; Add itself is not synchronized.
type Catalog struct {
	messages map[string]map[Code]string
	fallback string
}

// NewCatalog builds a Catalog whose fallback locale (used when a
// requested locale has no entry for a code) is "en", pre-populated with
// the default English wording for every known code.
func NewCatalog() *Catalog {
	c := &Catalog{
		messages: map[string]map[Code]string{
			"en": defaultEnglish(),
		},
		fallback: "en",
	}
	return c
}

// Add registers or overrides the message format for a code in a locale.
// Format strings use "%s" placeholders consumed positionally by
// Diagnostic.Args.
func (c *Catalog) Add(locale string, code Code, format string) {
	locale = strings.ToLower(locale)
	m, ok := c.messages[locale]
	if !ok {
		m = map[Code]string{}
		c.messages[locale] = m
	}
	m[code] = format
}

// Render formats d.Args into the message for d.Code in the given locale,
// falling back to the catalog's fallback locale, then to d.MessageKey
// verbatim if no format is registered anywhere.
func (c *Catalog) Render(locale string, d Diagnostic) string {
	locale = strings.ToLower(locale)
	if m, ok := c.messages[locale]; ok {
		if format, ok := m[d.Code]; ok {
			return renderArgs(format, d.Args)
		}
	}
	if m, ok := c.messages[c.fallback]; ok {
		if format, ok := m[d.Code]; ok {
			return renderArgs(format, d.Args)
		}
	}
	return d.MessageKey
}

func renderArgs(format string, args []string) string {
	anys := make([]any, len(args))
	for i, a := range args {
		anys[i] = a
	}
	return fmt.Sprintf(format, anys...)
}

func defaultEnglish() map[Code]string {
	return map[Code]string{
		EncodingInvalid:         "invalid UTF-8 byte at %s",
		StringUnterminated:      "unterminated string starting at %s",
		StringUnescapedControl:  "unescaped control character in string at %s",
		StringBadEscape:         "invalid escape sequence at %s",
		StringBadUnicode:        "invalid \\u escape at %s",
		NumberLeadingZero:       "number has a disallowed leading zero at %s",
		NumberBadDigit:          "invalid digit in number at %s",
		NumberEmptyFraction:     "number has an empty fractional part at %s",
		NumberEmptyExponent:     "number has an empty exponent at %s",
		NumberBadBasePrefix:     "invalid base prefix at %s",
		NumberSeparatorPlace:    "misplaced digit separator at %s",
		CommentUnterminated:     "unterminated comment starting at %s",
		DirectiveMalformed:      "malformed directive at %s",
		TokenTooLarge:           "token exceeds the configured size limit at %s",
		UnexpectedToken:         "unexpected token at %s",
		ContainerMismatch:       "mismatched closing bracket at %s",
		MissingColon:            "expected ':' at %s",
		MissingComma:            "expected ',' at %s",
		TrailingCommaDisallow:   "trailing comma is not allowed in this mode at %s",
		DepthExceeded:           "maximum nesting depth exceeded at %s",
		UnexpectedEOF:           "unexpected end of input at %s",
		ExtraDataAfterRoot:      "unexpected data after the root value at %s",
		DuplicateKey:            "duplicate object key %s at %s",
		NumberSeparatorGrouping: "digit separator grouping is unusual at %s",
		PropertyNameTooLarge:    "property name exceeds the configured size limit at %s",
		IORead:                  "read error: %s",
		IOWrite:                 "write error: %s",
		SegmentStreamUnbalanced: "unbalanced segment stream at %s",
		CanonicalDuplicateKeys:  "canonical output requires unique object keys at %s",
	}
}
