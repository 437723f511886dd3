package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	JellyfinPurple = lipgloss.Color("#AA5CC3")
	JellyfinBlue   = lipgloss.Color("#00A4DC")
	SlateDark      = lipgloss.Color("#1F2937")
	SlateLight     = lipgloss.Color("#374151")
	DimGray        = lipgloss.Color("#6B7280")
	LightGray      = lipgloss.Color("#9CA3AF")
	White          = lipgloss.Color("#F9FAFB")
	Green          = lipgloss.Color("#10B981")
	Red            = lipgloss.Color("#EF4444")
)

// Borders
var (
	ActiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(JellyfinPurple)

	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(JellyfinPurple)

	LinkStyle = lipgloss.NewStyle().
			Foreground(JellyfinBlue).
			Underline(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)
)

// Header styles. The transparent header is drawn straight over the backdrop.
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(SlateDark).
			Bold(true).
			Padding(0, 1)

	TransparentHeaderStyle = lipgloss.NewStyle().
				Foreground(White).
				Bold(true).
				Padding(0, 1)
)

// Panel styles
var (
	InspectorStyle = lipgloss.NewStyle().
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(DimGray).
			Width(10)
)

// List item styles
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray)
)

// Badge styles
var (
	BadgeStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(JellyfinPurple).
			Padding(0, 1)

	DimBadgeStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Background(SlateLight).
			Padding(0, 1)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(JellyfinPurple)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Spinner and filter styles
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(JellyfinPurple)

	FilterStyle = lipgloss.NewStyle().
			Foreground(JellyfinPurple)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(JellyfinPurple).
				Bold(true)
)

// Truncate shortens s to width cells with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 1 {
		return string(runes[:width])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// Pad pads s with spaces to width cells
func Pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
