package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func (m *Model) View() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	now := time.Now()
	width := (m.width - 4) / 2

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderStatsPanel(width, now),
		m.renderCooldownPanel(width, now),
	)
	right := m.renderLogsPanel(width)

	sections := []string{
		m.renderHeader(),
		lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right),
	}

	if m.showHelp {
		sections = append(sections, m.renderHelp())
	} else {
		sections = append(sections, helpStyle.Render("Press ? for help, q to quit"))
	}

	return baseStyle.Width(m.width).Height(m.height).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)
}

func (m *Model) renderHeader() string {
	status := m.spinner.View()
	switch m.phase {
	case PhaseDone:
		status = successStyle.Render("✓")
	case PhaseFailed:
		status = errorStyle.Render("✗")
	case PhaseCoolingDown:
		status = warningStyle.Render("⏸")
	}

	title := fmt.Sprintf("%s %s %s", status, logoStyle.Render("twfollowers"), statsValueStyle.Render("@"+m.username))
	return lipgloss.NewStyle().Padding(1, 2).Render(title)
}

func (m *Model) renderStatsPanel(width int, now time.Time) string {
	title := titleStyle.Render(" FETCH ")
	elapsed := m.elapsed(now)

	stats := []string{
		stat("State:", phaseStyle(m.phase).Render(m.phase.String())),
		stat("Elapsed:", statsValueStyle.Render(formatDuration(elapsed))),
		stat("Pages:", statsValueStyle.Render(fmt.Sprintf("%d", m.pages))),
		stat("Followers:", statsValueStyle.Render(fmt.Sprintf("%d", m.followers))),
		stat("Last page:", statsValueStyle.Render(fmt.Sprintf("%d users", m.lastPage))),
		stat("Rate:", rateStyle.Render(FormatRate(m.followers, elapsed))),
	}
	if m.outputPath != "" {
		stats = append(stats, stat("Output:", statsValueStyle.Render(m.outputPath)))
	}
	if m.err != nil {
		stats = append(stats, errorStyle.Render(m.err.Error()))
	}

	return panelStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinVertical(lipgloss.Left, stats...)),
	)
}

func (m *Model) renderCooldownPanel(width int, now time.Time) string {
	title := titleStyle.Render(" RATE LIMIT ")

	content := []string{
		stat("Waits:", statsValueStyle.Render(fmt.Sprintf("%d", m.waits))),
	}

	if m.phase == PhaseCoolingDown {
		remaining := m.coolUntil.Sub(now)
		if remaining < 0 {
			remaining = 0
		}
		bar := m.cooldown
		bar.Width = width - 8
		content = append(content,
			stat("Resuming in:", warningStyle.Render(formatDuration(remaining))),
			bar.ViewAs(m.cooldownProgress(now)),
		)
	} else {
		content = append(content, rateLimitNormalStyle.Render("Not limited"))
	}

	return panelStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(content, "\n")),
	)
}

func (m *Model) renderLogsPanel(width int) string {
	title := titleStyle.Render(" ACTIVITY ")

	start := len(m.logMessages) - 10
	if start < 0 {
		start = 0
	}

	maxMsgLen := width - 25
	if maxMsgLen < 10 {
		maxMsgLen = 10
	}

	var logs []string
	for _, log := range m.logMessages[start:] {
		message := log.Message
		if len(message) > maxMsgLen {
			message = message[:maxMsgLen-3] + "..."
		}
		logs = append(logs, fmt.Sprintf("%s %s %s",
			logTimestampStyle.Render(log.Time.Format("15:04:05")),
			lipgloss.NewStyle().Foreground(log.Color).Bold(true).Render(fmt.Sprintf("[%-7s]", log.Level)),
			logMessageStyle.Render(message),
		))
	}

	content := strings.Join(logs, "\n")
	if content == "" {
		content = lipgloss.NewStyle().Foreground(dimWhite).Render("Waiting for the first page...")
	}

	return panelStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, content),
	)
}

func (m *Model) renderHelp() string {
	help := `
  Keys:
    q/esc    - Stop fetching and quit
    ctrl+l   - Clear activity
    ?        - Toggle this help

  States:
    ` + successStyle.Render("FETCHING") + `  - Requesting pages
    ` + warningStyle.Render("RATE LIMITED") + ` - Waiting before retrying the same page
    ` + errorStyle.Render("FAILED") + `    - Nothing was written
`
	return panelStyle.Width(m.width).Render(help)
}

func stat(label, value string) string {
	return fmt.Sprintf("%s %s", statsLabelStyle.Render(label), value)
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		return "00:00"
	}

	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
