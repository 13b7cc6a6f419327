package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// PageFetchedMsg is sent after each followers page
type PageFetchedMsg struct {
	Page  int
	Users int
	Total int
}

// RateLimitedMsg is sent when the fetcher starts a cooldown
type RateLimitedMsg struct {
	Wait    time.Duration
	Attempt int
}

// FinishedMsg is sent once the fetch has ended, successfully or not
type FinishedMsg struct {
	Followers  int
	OutputPath string
	Err        error
}

// LogMsg adds a line to the activity panel
type LogMsg struct {
	Level   string
	Message string
}

// TickMsg drives the cooldown countdown
type TickMsg time.Time

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.mu.Lock()
		m.width = msg.Width
		m.height = msg.Height
		m.mu.Unlock()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case TickMsg:
		return m, tickCmd()

	case PageFetchedMsg:
		m.RecordPage(msg.Page, msg.Users, msg.Total)
		m.AddLogMessage("INFO", fmt.Sprintf("Page %d: %d followers (%d total)", msg.Page, msg.Users, msg.Total))
		return m, nil

	case RateLimitedMsg:
		m.RecordRateLimit(msg.Wait, msg.Attempt)
		m.AddLogMessage("WARN", fmt.Sprintf("Rate limited, waiting %s", formatDuration(msg.Wait)))
		return m, nil

	case FinishedMsg:
		m.Finish(msg.Followers, msg.OutputPath, msg.Err)
		if msg.Err != nil {
			m.AddLogMessage("ERROR", msg.Err.Error())
		} else {
			m.AddLogMessage("SUCCESS", fmt.Sprintf("Saved %d followers to %s", msg.Followers, msg.OutputPath))
		}
		return m, quitAfter(finishLinger)

	case LogMsg:
		m.AddLogMessage(msg.Level, msg.Message)
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c", "esc":
		if phase := m.Phase(); phase != PhaseDone && phase != PhaseFailed && m.onQuit != nil {
			m.onQuit()
		}
		return m, tea.Quit

	case "?":
		m.mu.Lock()
		m.showHelp = !m.showHelp
		m.mu.Unlock()
		return m, nil

	case "ctrl+l":
		m.mu.Lock()
		m.logMessages = []LogMessage{}
		m.mu.Unlock()
		return m, nil
	}

	return m, nil
}

// finishLinger keeps the final state on screen before the dashboard closes
const finishLinger = 3 * time.Second

func quitAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return tea.QuitMsg{}
	})
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
