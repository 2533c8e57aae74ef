package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Devdeep8/let-s-do-it/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorCyan    = lipgloss.AdaptiveColor{Dark: "#66D9E8", Light: "#0B7285"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// Styles are rebuilt by Apply whenever the palette changes.
var (
	// HeaderStyle is used for the top bar and the application title.
	HeaderStyle lipgloss.Style

	// StatusBarStyle is used for the bottom status bar.
	StatusBarStyle lipgloss.Style

	// PanelStyle wraps each dashboard panel.
	PanelStyle lipgloss.Style

	// PanelTitleStyle renders a panel heading.
	PanelTitleStyle lipgloss.Style

	// FocusedPanelStyle highlights the panel receiving key input.
	FocusedPanelStyle lipgloss.Style

	ListItemStyle     lipgloss.Style
	SelectedItemStyle lipgloss.Style
	DimmedStyle       lipgloss.Style

	// HelpStyle is used for keyboard shortcut hints and help text.
	HelpStyle lipgloss.Style

	// BigNumberStyle renders countdown figures.
	BigNumberStyle lipgloss.Style

	// UnitStyle labels a countdown figure.
	UnitStyle lipgloss.Style

	QuoteStyle   lipgloss.Style
	ErrorStyle   lipgloss.Style
	SuccessStyle lipgloss.Style
)

func init() {
	build()
}

func build() {
	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorWhite).
		Background(ColorBlue).
		Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(ColorWhite).
		Background(ColorSubtle).
		Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	FocusedPanelStyle = PanelStyle.BorderForeground(ColorBlue)

	PanelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorMagenta)

	ListItemStyle = lipgloss.NewStyle().
		PaddingLeft(2)

	SelectedItemStyle = lipgloss.NewStyle().
		PaddingLeft(1).
		Bold(true).
		Foreground(ColorBlue).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(ColorBlue)

	DimmedStyle = lipgloss.NewStyle().
		Foreground(ColorGray).
		Strikethrough(true)

	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true)

	BigNumberStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorWhite)

	UnitStyle = lipgloss.NewStyle().
		Foreground(ColorMagenta)

	QuoteStyle = lipgloss.NewStyle().
		Italic(true).
		Foreground(ColorCyan)

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorRed)

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorGreen)
}

// Apply switches to the named palette. "default" uses the full color
// palette; "mono" renders everything in grays.
func Apply(name string) error {
	switch name {
	case "", "default":
		ColorBlue = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
		ColorGreen = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
		ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
		ColorRed = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
		ColorOrange = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
		ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
		ColorCyan = lipgloss.AdaptiveColor{Dark: "#66D9E8", Light: "#0B7285"}
	case "mono":
		gray := lipgloss.AdaptiveColor{Dark: "#CED4DA", Light: "#343A40"}
		ColorBlue, ColorGreen, ColorYellow = gray, gray, gray
		ColorRed, ColorOrange, ColorMagenta, ColorCyan = gray, gray, gray, gray
	default:
		return fmt.Errorf("unknown theme %q", name)
	}
	build()
	return nil
}

// CategoryStyle returns a color-coded style for the given task category.
func CategoryStyle(c model.Category) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch c {
	case model.CategoryDevelopment:
		return base.Foreground(ColorBlue)
	case model.CategoryLearning:
		return base.Foreground(ColorMagenta)
	case model.CategoryPersonal:
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}

// CategoryIcon returns the single-glyph marker for a category.
func CategoryIcon(c model.Category) string {
	switch c {
	case model.CategoryDevelopment:
		return "</>"
	case model.CategoryLearning:
		return "📚"
	case model.CategoryPersonal:
		return "♥"
	default:
		return "•"
	}
}

// ProgressStyle returns a color that reflects how far along a percentage is.
func ProgressStyle(pct float64) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch {
	case pct >= 100:
		return base.Foreground(ColorGreen)
	case pct >= 50:
		return base.Foreground(ColorBlue)
	case pct >= 25:
		return base.Foreground(ColorYellow)
	default:
		return base.Foreground(ColorOrange)
	}
}
