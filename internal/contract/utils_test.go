package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/gamepulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeriesColor(t *testing.T) {
	assert.Equal(t, RetainedColor, SeriesColor(schema.RetainedColor))
	assert.Equal(t, LostColor, SeriesColor(schema.LostColor))
	assert.Equal(t, NeutralColor, SeriesColor(schema.Color("")))
}

func TestColorize(t *testing.T) {
	t.Run("disabled returns plain text", func(t *testing.T) {
		assert.Equal(t, "####", Colorize(schema.LostColor, "####", false))
	})

	t.Run("enabled keeps the text", func(t *testing.T) {
		assert.Contains(t, Colorize(schema.RetainedColor, "####", true), "####")
	})
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		width    int
		expected string
	}{
		{"fits", "Rifle", 10, "Rifle"},
		{"exact", "Rifle", 5, "Rifle"},
		{"truncated", "Sniper Rifle", 8, "Snipe..."},
		{"tiny width untouched", "Sniper Rifle", 3, "Sniper Rifle"},
		{"multibyte", "Пистолет", 6, "Пис..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateLabel(tt.label, tt.width))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
		wantErr  bool
	}{
		{"yes", true, false},
		{"YES", true, false},
		{"true", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
