package report

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color palette - lime accent on grays.
const (
	ColorLime     = "154" // Primary accent: topic headers, ranks
	ColorLimeDim  = "106" // Scores
	ColorWhite    = "255" // Module titles
	ColorGray     = "245" // URLs, keyword labels
	ColorDarkGray = "238" // Paths
	ColorYellow   = "220" // No hits
)

// Styles holds the text report styles.
type Styles struct {
	Topic   lipgloss.Style
	Rank    lipgloss.Style
	Title   lipgloss.Style
	Score   lipgloss.Style
	URL     lipgloss.Style
	Path    lipgloss.Style
	NoHits  lipgloss.Style
	Section lipgloss.Style
	Keyword lipgloss.Style
}

// DefaultStyles returns the colored styles.
func DefaultStyles() Styles {
	return Styles{
		Topic:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLime)),
		Rank:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLime)),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWhite)),
		Score:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLimeDim)),
		URL:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Path:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		NoHits:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
		Section: lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color(ColorGray)),
		Keyword: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLime)),
	}
}

// NoColorStyles returns unstyled components for plain output.
func NoColorStyles() Styles {
	return Styles{
		Topic:   lipgloss.NewStyle(),
		Rank:    lipgloss.NewStyle(),
		Title:   lipgloss.NewStyle(),
		Score:   lipgloss.NewStyle(),
		URL:     lipgloss.NewStyle(),
		Path:    lipgloss.NewStyle(),
		NoHits:  lipgloss.NewStyle(),
		Section: lipgloss.NewStyle(),
		Keyword: lipgloss.NewStyle(),
	}
}

// GetStyles returns the appropriate styles based on color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}

// UseColor resolves a color mode (auto, always, never) for w. In auto mode
// color is used only when w is a terminal and NO_COLOR is unset.
func UseColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return IsTTY(w) && !DetectNoColor()
	}
}

// IsTTY checks if output is a terminal.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// DetectNoColor checks if NO_COLOR environment variable is set.
func DetectNoColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}
