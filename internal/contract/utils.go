package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/gamepulse/schema"
)

// Color variables for console output.
var (
	RetainedColor = color.New(color.FgHiGreen)         // RetainedColor marks players that stayed.
	LostColor     = color.New(color.FgHiRed)           // LostColor marks players that churned or lost.
	NeutralColor  = color.New(color.FgCyan)            // NeutralColor is used for series without a semantic color.
	HeaderColor   = color.New(color.FgWhite, color.Bold)
)

// SeriesColor maps a semantic chart color onto a console color.
func SeriesColor(c schema.Color) *color.Color {
	switch c {
	case schema.RetainedColor:
		return RetainedColor
	case schema.LostColor:
		return LostColor
	default:
		return NeutralColor
	}
}

// Colorize renders text in the console color of a chart series.
// Plain text is returned when colors are disabled.
func Colorize(c schema.Color, text string, enabled bool) string {
	if !enabled {
		return text
	}
	return SeriesColor(c).Sprint(text)
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// TruncateLabel truncates a chart label to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and at least one character.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return label
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
