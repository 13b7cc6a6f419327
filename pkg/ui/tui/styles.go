package tui

import "github.com/charmbracelet/lipgloss"

// Palette follows the Twitter brand colors on a dark background
var (
	twitterBlue = lipgloss.Color("#1DA1F2")
	skyBlue     = lipgloss.Color("#8ED0F9")
	mintGreen   = lipgloss.Color("#17BF63")
	amber       = lipgloss.Color("#FFAD1F")
	alertRed    = lipgloss.Color("#E0245E")
	inkBg       = lipgloss.Color("#15202B")
	panelBg     = lipgloss.Color("#192734")
	dimWhite    = lipgloss.Color("#AAB8C2")
	mutedGray   = lipgloss.Color("#657786")
)

var (
	baseStyle = lipgloss.NewStyle().Background(inkBg).Foreground(dimWhite)
	logoStyle = lipgloss.NewStyle().Foreground(twitterBlue).Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(twitterBlue).
			Background(panelBg).
			Padding(1, 2)
	titleStyle = lipgloss.NewStyle().
			Background(twitterBlue).
			Foreground(inkBg).
			Bold(true).
			Padding(0, 1)

	statsLabelStyle = lipgloss.NewStyle().Foreground(skyBlue).Bold(true)
	statsValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5F8FA"))
	rateStyle       = lipgloss.NewStyle().Foreground(skyBlue)

	successStyle         = lipgloss.NewStyle().Foreground(mintGreen).Bold(true)
	errorStyle           = lipgloss.NewStyle().Foreground(alertRed).Bold(true)
	warningStyle         = lipgloss.NewStyle().Foreground(amber).Bold(true)
	rateLimitNormalStyle = lipgloss.NewStyle().Foreground(mintGreen)

	logTimestampStyle = lipgloss.NewStyle().Foreground(mutedGray)
	logMessageStyle   = lipgloss.NewStyle().Foreground(dimWhite)
	helpStyle         = lipgloss.NewStyle().Foreground(mutedGray).Padding(1, 0, 0, 2)
)

func phaseStyle(p Phase) lipgloss.Style {
	switch p {
	case PhaseDone:
		return successStyle
	case PhaseFailed:
		return errorStyle
	case PhaseCoolingDown:
		return warningStyle
	default:
		return statsValueStyle
	}
}
