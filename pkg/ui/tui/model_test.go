package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sized(t *testing.T, m *Model) {
	t.Helper()
	_, cmd := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	assert.Nil(t, cmd)
}

func TestModelTracksPages(t *testing.T) {
	m := NewModel("alice")
	assert.Equal(t, PhaseFetching, m.Phase())

	m.Update(PageFetchedMsg{Page: 1, Users: 200, Total: 200})
	m.Update(PageFetchedMsg{Page: 2, Users: 37, Total: 237})

	pages, followers, waits := m.Counts()
	assert.Equal(t, 2, pages)
	assert.Equal(t, 237, followers)
	assert.Equal(t, 0, waits)
	assert.Len(t, m.logMessages, 2)
}

func TestModelRateLimitCooldown(t *testing.T) {
	m := NewModel("alice")

	m.Update(RateLimitedMsg{Wait: time.Minute, Attempt: 1})
	assert.Equal(t, PhaseCoolingDown, m.Phase())

	_, _, waits := m.Counts()
	assert.Equal(t, 1, waits)

	start := m.coolStart
	assert.InDelta(t, 0.5, m.cooldownProgress(start.Add(30*time.Second)), 0.001)
	assert.Equal(t, 1.0, m.cooldownProgress(start.Add(2*time.Minute)))
	assert.Equal(t, 0.0, m.cooldownProgress(start.Add(-time.Second)))

	m.Update(PageFetchedMsg{Page: 1, Users: 5, Total: 5})
	assert.Equal(t, PhaseFetching, m.Phase())
}

func TestModelFinish(t *testing.T) {
	m := NewModel("alice")

	_, cmd := m.Update(FinishedMsg{Followers: 3, OutputPath: "followers.txt"})
	assert.NotNil(t, cmd)
	assert.Equal(t, PhaseDone, m.Phase())
	assert.Equal(t, "followers.txt", m.outputPath)

	failed := NewModel("bob")
	failed.Update(FinishedMsg{Err: errors.New("auth error: authentication failed")})
	assert.Equal(t, PhaseFailed, failed.Phase())
	require.NotEmpty(t, failed.logMessages)
	assert.Equal(t, "ERROR", failed.logMessages[len(failed.logMessages)-1].Level)
}

func TestModelQuitCancelsRunningFetch(t *testing.T) {
	m := NewModel("alice")
	cancelled := false
	m.onQuit = func() { cancelled = true }

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.True(t, cancelled)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	done := NewModel("alice")
	done.onQuit = func() { t.Fatal("quit after completion must not cancel") }
	done.Update(FinishedMsg{Followers: 1, OutputPath: "out.txt"})
	done.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
}

func TestModelLogTrimming(t *testing.T) {
	m := NewModel("alice")
	for i := 0; i < 60; i++ {
		m.AddLogMessage("INFO", "line")
	}
	assert.Len(t, m.logMessages, m.maxLogMessages)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Empty(t, m.logMessages)
}

func TestView(t *testing.T) {
	m := NewModel("alice")
	assert.Equal(t, "Initializing...", m.View())

	sized(t, m)
	m.Update(PageFetchedMsg{Page: 1, Users: 200, Total: 200})
	view := m.View()
	assert.Contains(t, view, "@alice")
	assert.Contains(t, view, "FETCHING")
	assert.Contains(t, view, "Not limited")

	m.Update(RateLimitedMsg{Wait: time.Minute, Attempt: 1})
	assert.Contains(t, m.View(), "Resuming in:")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.Contains(t, m.View(), "Stop fetching and quit")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00", formatDuration(-time.Second))
	assert.Equal(t, "01:05", formatDuration(65*time.Second))
	assert.Equal(t, "01:00:00", formatDuration(time.Hour))
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "0.0/min", FormatRate(0, time.Minute))
	assert.Equal(t, "0.0/min", FormatRate(10, 0))
	assert.Equal(t, "120.0/min", FormatRate(240, 2*time.Minute))
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "RATE LIMITED", PhaseCoolingDown.String())
	assert.Equal(t, "UNKNOWN", Phase(42).String())
}

func TestNewTUIWiresQuitHandler(t *testing.T) {
	quit := false
	dash := NewTUI("jack", func() { quit = true })

	m := dash.Model()
	require.NotNil(t, m)
	assert.Equal(t, PhaseFetching, m.Phase())

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.True(t, quit)
}
