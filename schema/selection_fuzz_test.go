package schema_test

import (
	"encoding/json"
	"slices"
	"strings"
	"testing"

	"github.com/huangsam/gamepulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionJSONRoundTrip(t *testing.T) {
	for _, sel := range []schema.Selection{
		schema.DefaultSelection(schema.RetentionReport),
		schema.DefaultSelection(schema.GunPopularityReport),
		{Countries: schema.SpecificCountries(), Range: schema.NewLevelRange(15, 5)},
	} {
		data, err := json.Marshal(sel)
		require.NoError(t, err)

		var decoded schema.Selection
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, sel, decoded, string(data))
	}
}

// FuzzParseCountrySelection checks that parsed selections are normalized and
// survive a text round trip.
func FuzzParseCountrySelection(f *testing.F) {
	seeds := []string{"all", "US,IN", "all,us", " br , ,BR", "", "ALL", ",,,"}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		sel := schema.ParseCountrySelection([]string{input})
		codes := sel.Codes()
		if sel.IsAll() {
			require.Empty(t, codes)
		}
		require.True(t, slices.IsSorted(codes), "codes must be sorted: %v", codes)
		for i, c := range codes {
			require.Equal(t, strings.ToUpper(c), c)
			require.NotEmpty(t, c)
			require.NotContains(t, c, ",")
			if i > 0 {
				require.NotEqual(t, codes[i-1], c)
			}
			require.True(t, sel.Matches(c))
		}

		text, err := sel.MarshalText()
		require.NoError(t, err)
		var decoded schema.CountrySelection
		require.NoError(t, decoded.UnmarshalText(text))
		require.Equal(t, sel, decoded)
	})
}
