package ajisconfig_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajis-lang/ajis-go"
	"github.com/ajis-lang/ajis-go/ajisconfig"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		yaml   string
		check  func(*testing.T, ajis.Settings)
	}{
		"defaults when empty": {
			yaml: ``,
			check: func(t *testing.T, s ajis.Settings) {
				t.Helper()
				assert.Equal(t, ajis.StrictJson, s.Mode)
				assert.Equal(t, ajis.Compact, s.Formatting)
			},
		},
		"ajis canonical mode": {
			yaml: "mode: ajisCanonical\nallowTrailingCommas: true\nduplicateKeys: reject\n",
			check: func(t *testing.T, s ajis.Settings) {
				t.Helper()
				assert.Equal(t, ajis.AjisCanonical, s.Mode)
				assert.True(t, s.AllowTrailingCommas)
				assert.Equal(t, ajis.DuplicateKeysReject, s.DuplicateKeys)
			},
		},
		"pretty formatting with indent": {
			yaml: "formatting: pretty\nindent: 4\n",
			check: func(t *testing.T, s ajis.Settings) {
				t.Helper()
				assert.Equal(t, ajis.Pretty, s.Formatting)
				assert.Equal(t, 4, s.Indent)
			},
		},
		"high throughput profile": {
			yaml: "profile: highThroughput\n",
			check: func(t *testing.T, s ajis.Settings) {
				t.Helper()
				assert.Equal(t, ajis.HighThroughput, s.Profile)
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s, err := ajisconfig.Load([]byte(tc.yaml))
			require.NoError(t, err)
			tc.check(t, s)
		})
	}
}

func TestLoadRejectsUnknownEnumValues(t *testing.T) {
	t.Parallel()

	tcs := map[string]string{
		"bad mode":          "mode: bogus\n",
		"bad duplicateKeys": "duplicateKeys: bogus\n",
		"bad formatting":    "formatting: bogus\n",
		"bad profile":       "profile: bogus\n",
	}

	for name, input := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := ajisconfig.Load([]byte(input))
			require.Error(t, err)
		})
	}
}

// StrictJson mode always wins over extension flags once Normalize runs,
// mirroring ajis.Settings.Normalize's own invariant.
func TestLoadNormalizesStrictJson(t *testing.T) {
	t.Parallel()

	s, err := ajisconfig.Load([]byte("mode: strictJson\nallowSingleQuotes: true\n"))
	require.NoError(t, err)
	assert.False(t, s.AllowSingleQuotes)
}

func TestSchemaRejectsAdditionalProperties(t *testing.T) {
	t.Parallel()

	schema := ajisconfig.Schema()
	require.NotNil(t, schema.Properties["mode"])
	require.NotNil(t, schema.AdditionalProperties)
}
