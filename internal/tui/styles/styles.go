package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Amber     = lipgloss.Color("#E5A00D")
	DimGray   = lipgloss.Color("#6B7280")
	LightGray = lipgloss.Color("#9CA3AF")
	White     = lipgloss.Color("#F9FAFB")
	Red       = lipgloss.Color("#EF4444")
	Green     = lipgloss.Color("#10B981")
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
			Foreground(Amber)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(Amber).
			Bold(true)

	MatchStyle = lipgloss.NewStyle().
			Foreground(Amber).
			Underline(true)

	FavoriteStyle = lipgloss.NewStyle().
			Foreground(Amber)

	DetailBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1)
)

// FavoriteMarker is rendered next to favorited rows
const FavoriteMarker = "★"
