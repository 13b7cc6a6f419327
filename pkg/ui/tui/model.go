package tui

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Phase is what the dashboard is currently showing
type Phase int

const (
	PhaseFetching Phase = iota
	PhaseCoolingDown
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseFetching:
		return "FETCHING"
	case PhaseCoolingDown:
		return "RATE LIMITED"
	case PhaseDone:
		return "DONE"
	case PhaseFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Model is the dashboard state for one follower fetch
type Model struct {
	spinner  spinner.Model
	cooldown progress.Model

	username   string
	phase      Phase
	pages      int
	followers  int
	lastPage   int
	waits      int
	coolStart  time.Time
	coolUntil  time.Time
	startTime  time.Time
	finishTime time.Time
	outputPath string
	err        error

	width          int
	height         int
	showHelp       bool
	logMessages    []LogMessage
	maxLogMessages int

	// onQuit is called when the user quits before the fetch finishes
	onQuit func()

	mu sync.RWMutex
}

// LogMessage is one line of the activity panel
type LogMessage struct {
	Time    time.Time
	Level   string
	Message string
	Color   lipgloss.Color
}

// NewModel creates the dashboard for username
func NewModel(username string) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(twitterBlue)

	p := progress.New(progress.WithGradient(string(amber), string(twitterBlue)))
	p.Width = 40

	return &Model{
		spinner:        s,
		cooldown:       p,
		username:       username,
		phase:          PhaseFetching,
		startTime:      time.Now(),
		logMessages:    []LogMessage{},
		maxLogMessages: 50,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tickCmd())
}

// RecordPage accounts for one fetched page
func (m *Model) RecordPage(page, users, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.phase = PhaseFetching
	m.pages = page
	m.lastPage = users
	m.followers = total
	m.coolUntil = time.Time{}
}

// RecordRateLimit switches the dashboard to the cooldown view
func (m *Model) RecordRateLimit(wait time.Duration, attempt int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	m.phase = PhaseCoolingDown
	m.waits++
	m.coolStart = now
	m.coolUntil = now.Add(wait)
}

// Finish records the outcome of the fetch
func (m *Model) Finish(followers int, outputPath string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.finishTime = time.Now()
	m.err = err
	if err != nil {
		m.phase = PhaseFailed
		return
	}
	m.phase = PhaseDone
	m.followers = followers
	m.outputPath = outputPath
}

func (m *Model) AddLogMessage(level, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	color := dimWhite
	switch level {
	case "ERROR":
		color = alertRed
	case "WARN":
		color = amber
	case "SUCCESS":
		color = mintGreen
	case "INFO":
		color = skyBlue
	}

	m.logMessages = append(m.logMessages, LogMessage{
		Time:    time.Now(),
		Level:   level,
		Message: message,
		Color:   color,
	})

	if len(m.logMessages) > m.maxLogMessages {
		m.logMessages = m.logMessages[len(m.logMessages)-m.maxLogMessages:]
	}
}

// Phase returns the current phase
func (m *Model) Phase() Phase {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.phase
}

// Counts returns pages fetched, followers collected and rate limit waits so far
func (m *Model) Counts() (pages, followers, waits int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pages, m.followers, m.waits
}

// cooldownProgress returns how much of the current cooldown has elapsed, from 0 to 1
func (m *Model) cooldownProgress(now time.Time) float64 {
	total := m.coolUntil.Sub(m.coolStart)
	if total <= 0 {
		return 1
	}
	done := now.Sub(m.coolStart)
	if done <= 0 {
		return 0
	}
	if done >= total {
		return 1
	}
	return float64(done) / float64(total)
}

func (m *Model) elapsed(now time.Time) time.Duration {
	if !m.finishTime.IsZero() {
		return m.finishTime.Sub(m.startTime)
	}
	return now.Sub(m.startTime)
}

// FormatRate formats a followers-per-minute figure
func FormatRate(followers int, elapsed time.Duration) string {
	if elapsed <= 0 || followers == 0 {
		return "0.0/min"
	}
	return fmt.Sprintf("%.1f/min", float64(followers)/elapsed.Minutes())
}
