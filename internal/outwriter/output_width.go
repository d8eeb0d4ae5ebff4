package outwriter

import (
	"os"

	"github.com/huangsam/gamepulse/internal/contract"
	"golang.org/x/term"
)

// Layout of a chart line: label, separator, bar, then the value text.
const (
	defaultTermWidth = 80
	chartSeparator   = 3  // " | "
	chartValueWidth  = 22 // value text after the bar, e.g. " 1234.5 / 100.0"
	minBarWidth      = 10
	maxBarWidth      = 60
)

// GetTerminalWidth returns the width override from config, or the detected
// width of stdout when no override is set.
func GetTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		// Conservative default for narrow terminals and CI
		return defaultTermWidth
	}
	return detectedWidth
}

// GetMaxBarWidth calculates how many cells a chart bar may use after the
// label column and the value text.
func GetMaxBarWidth(cfg *contract.Config, labelWidth int) int {
	available := GetTerminalWidth(cfg) - labelWidth - chartSeparator - chartValueWidth
	if available < minBarWidth {
		return minBarWidth
	}
	if available > maxBarWidth {
		return maxBarWidth
	}
	return available
}
