// Package ajisconfig loads ajis.Settings from a YAML or JSON document,
// grounded on MacroPower-x/magicschema's goccy/go-yaml and
// google/jsonschema-go usage (see DESIGN.md). Field names are the
// lowerCamel spelling of their ajis.Settings counterparts; mode/policy/
// formatting/profile enums are spelled as their String() form so a
// config file reads like "mode: ajisCanonical" rather than a bare
// integer.
package ajisconfig

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/ajis-lang/ajis-go"
)

// Document is the on-disk shape of a settings file. An absent or empty
// mode, duplicateKeys, formatting or profile, and a zero maxDepth or
// indent, keep their ajis.DefaultSettings values; every other field is
// copied as is, and its Go zero value equals the default.
type Document struct {
	Mode string `yaml:"mode" json:"mode"`

	AllowTrailingCommas        bool `yaml:"allowTrailingCommas" json:"allowTrailingCommas"`
	AllowSingleQuotes          bool `yaml:"allowSingleQuotes" json:"allowSingleQuotes"`
	AllowUnquotedPropertyNames bool `yaml:"allowUnquotedPropertyNames" json:"allowUnquotedPropertyNames"`
	AllowLineComments          bool `yaml:"allowLineComments" json:"allowLineComments"`
	AllowBlockComments         bool `yaml:"allowBlockComments" json:"allowBlockComments"`
	AllowMultiBaseNumbers      bool `yaml:"allowMultiBaseNumbers" json:"allowMultiBaseNumbers"`
	AllowDigitSeparators       bool `yaml:"allowDigitSeparators" json:"allowDigitSeparators"`
	AllowNanInfinity           bool `yaml:"allowNanInfinity" json:"allowNanInfinity"`

	DuplicateKeys string `yaml:"duplicateKeys" json:"duplicateKeys"`

	MaxDepth             uint32 `yaml:"maxDepth" json:"maxDepth"`
	MaxTokenBytes        uint64 `yaml:"maxTokenBytes" json:"maxTokenBytes"`
	MaxPropertyNameBytes uint64 `yaml:"maxPropertyNameBytes" json:"maxPropertyNameBytes"`

	Formatting string `yaml:"formatting" json:"formatting"`
	Indent     int    `yaml:"indent" json:"indent"`

	EmitProgressEveryBytes uint64 `yaml:"emitProgressEveryBytes" json:"emitProgressEveryBytes"`

	Profile string `yaml:"profile" json:"profile"`

	RequireTrailingEOF bool `yaml:"requireTrailingEOF" json:"requireTrailingEOF"`
}

// Load parses a YAML (or JSON, which is a YAML subset) config document
// into ajis.Settings, starting from ajis.DefaultSettings and overlaying
// whatever the document specifies.
func Load(data []byte) (ajis.Settings, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return ajis.Settings{}, fmt.Errorf("ajisconfig: parse: %w", err)
	}
	return doc.toSettings()
}

func (d Document) toSettings() (ajis.Settings, error) {
	s := ajis.DefaultSettings()

	if d.Mode != "" {
		mode, err := parseMode(d.Mode)
		if err != nil {
			return ajis.Settings{}, err
		}
		s.Mode = mode
	}

	s.AllowTrailingCommas = d.AllowTrailingCommas
	s.AllowSingleQuotes = d.AllowSingleQuotes
	s.AllowUnquotedPropertyNames = d.AllowUnquotedPropertyNames
	s.AllowLineComments = d.AllowLineComments
	s.AllowBlockComments = d.AllowBlockComments
	s.AllowMultiBaseNumbers = d.AllowMultiBaseNumbers
	s.AllowDigitSeparators = d.AllowDigitSeparators
	s.AllowNanInfinity = d.AllowNanInfinity

	if d.DuplicateKeys != "" {
		dk, err := parseDuplicateKeys(d.DuplicateKeys)
		if err != nil {
			return ajis.Settings{}, err
		}
		s.DuplicateKeys = dk
	}

	if d.MaxDepth != 0 {
		s.MaxDepth = d.MaxDepth
	}
	s.MaxTokenBytes = d.MaxTokenBytes
	s.MaxPropertyNameBytes = d.MaxPropertyNameBytes

	if d.Formatting != "" {
		f, err := parseFormatting(d.Formatting)
		if err != nil {
			return ajis.Settings{}, err
		}
		s.Formatting = f
	}
	if d.Indent != 0 {
		s.Indent = d.Indent
	}

	s.EmitProgressEveryBytes = d.EmitProgressEveryBytes

	if d.Profile != "" {
		p, err := parseProfile(d.Profile)
		if err != nil {
			return ajis.Settings{}, err
		}
		s.Profile = p
	}

	s.RequireTrailingEOF = d.RequireTrailingEOF

	return s.Normalize(), nil
}

func parseMode(s string) (ajis.Mode, error) {
	switch s {
	case "strictJson":
		return ajis.StrictJson, nil
	case "ajisCanonical":
		return ajis.AjisCanonical, nil
	case "lax":
		return ajis.Lax, nil
	}
	return 0, fmt.Errorf("ajisconfig: unknown mode %q", s)
}

func parseDuplicateKeys(s string) (ajis.DuplicateKeyPolicy, error) {
	switch s {
	case "allow":
		return ajis.DuplicateKeysAllow, nil
	case "warn":
		return ajis.DuplicateKeysWarn, nil
	case "reject":
		return ajis.DuplicateKeysReject, nil
	}
	return 0, fmt.Errorf("ajisconfig: unknown duplicateKeys policy %q", s)
}

func parseFormatting(s string) (ajis.Formatting, error) {
	switch s {
	case "compact":
		return ajis.Compact, nil
	case "pretty":
		return ajis.Pretty, nil
	case "canonical":
		return ajis.Canonical, nil
	}
	return 0, fmt.Errorf("ajisconfig: unknown formatting %q", s)
}

func parseProfile(s string) (ajis.Profile, error) {
	switch s {
	case "universal":
		return ajis.Universal, nil
	case "lowMemory":
		return ajis.LowMemory, nil
	case "highThroughput":
		return ajis.HighThroughput, nil
	}
	return 0, fmt.Errorf("ajisconfig: unknown profile %q", s)
}

// falseSchema returns a schema that validates nothing, the same
// Not-wrapping trick magicschema/helpers.go uses since the JSON Schema
// boolean form has no direct Go struct representation.
func falseSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}

// Schema returns the JSON Schema a config document must validate
// against, built from jsonschema.Schema the way magicschema/helpers.go
// composes sub-schemas, rather than hand-rolled JSON text.
func Schema() *jsonschema.Schema {
	enum := func(values ...string) *jsonschema.Schema {
		s := &jsonschema.Schema{Type: "string"}
		for _, v := range values {
			s.Enum = append(s.Enum, any(v))
		}
		return s
	}
	boolSchema := &jsonschema.Schema{Type: "boolean"}
	uintSchema := &jsonschema.Schema{Type: "integer", Minimum: jsonschema.Ptr(0.0)}

	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"mode":                       enum("strictJson", "ajisCanonical", "lax"),
			"allowTrailingCommas":        boolSchema,
			"allowSingleQuotes":          boolSchema,
			"allowUnquotedPropertyNames": boolSchema,
			"allowLineComments":          boolSchema,
			"allowBlockComments":         boolSchema,
			"allowMultiBaseNumbers":      boolSchema,
			"allowDigitSeparators":       boolSchema,
			"allowNanInfinity":           boolSchema,
			"duplicateKeys":              enum("allow", "warn", "reject"),
			"maxDepth":                   uintSchema,
			"maxTokenBytes":              uintSchema,
			"maxPropertyNameBytes":       uintSchema,
			"formatting":                 enum("compact", "pretty", "canonical"),
			"indent":                     &jsonschema.Schema{Type: "integer", Minimum: jsonschema.Ptr(1.0), Maximum: jsonschema.Ptr(8.0)},
			"emitProgressEveryBytes":     uintSchema,
			"profile":                    enum("universal", "lowMemory", "highThroughput"),
			"requireTrailingEOF":         boolSchema,
		},
		AdditionalProperties: falseSchema(),
	}
}
