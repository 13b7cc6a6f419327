package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TUI is a full-screen dashboard for a follower fetch.
// It satisfies fetcher.Observer, so it can be passed to fetcher.WithObserver.
type TUI struct {
	program *tea.Program
	model   *Model
}

// NewTUI creates a dashboard for username. onQuit runs if the user quits mid-fetch.
func NewTUI(username string, onQuit func()) *TUI {
	model := NewModel(username)
	model.onQuit = onQuit

	return &TUI{
		program: tea.NewProgram(model, tea.WithAltScreen()),
		model:   model,
	}
}

// Start runs the dashboard until the user quits or the fetch has finished
func (t *TUI) Start() error {
	_, err := t.program.Run()
	return err
}

// Send delivers msg to the running program
func (t *TUI) Send(msg tea.Msg) {
	if t.program != nil {
		t.program.Send(msg)
	}
}

// PageFetched records a completed page
func (t *TUI) PageFetched(page, users, total int) {
	t.Send(PageFetchedMsg{Page: page, Users: users, Total: total})
}

// RateLimited starts the cooldown display
func (t *TUI) RateLimited(wait time.Duration, attempt int) {
	t.Send(RateLimitedMsg{Wait: wait, Attempt: attempt})
}

// Finish shows the outcome, the dashboard closes shortly after
func (t *TUI) Finish(followers int, outputPath string, err error) {
	t.Send(FinishedMsg{Followers: followers, OutputPath: outputPath, Err: err})
}

// Log adds a formatted line to the activity panel
func (t *TUI) Log(level, format string, args ...interface{}) {
	t.Send(LogMsg{Level: level, Message: fmt.Sprintf(format, args...)})
}

// Model exposes the underlying model
func (t *TUI) Model() *Model {
	return t.model
}
