package ui

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressDisplay prints one line per fetched page and a notice per cooldown.
// It satisfies fetcher.Observer.
type ProgressDisplay struct {
	mu        sync.Mutex
	username  string
	pages     int
	followers int
	waits     int
	startTime time.Time
	notifier  *Notifier
	w         io.Writer
}

// NewProgressDisplay creates a display for username; notifier may be nil
func NewProgressDisplay(username string, notifier *Notifier) *ProgressDisplay {
	return &ProgressDisplay{
		username:  username,
		startTime: time.Now(),
		notifier:  notifier,
	}
}

// SetWriter overrides the destination, defaults to the package output
func (p *ProgressDisplay) SetWriter(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.w = w
}

func (p *ProgressDisplay) writer() io.Writer {
	if p.w != nil {
		return p.w
	}
	return out()
}

func (p *ProgressDisplay) PageFetched(page, users, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pages = page
	p.followers = total

	fmt.Fprintf(p.writer(), "%s page %d • %s • %s\n",
		Cyan("@"+p.username),
		page,
		Yellow(fmt.Sprintf("+%d", users)),
		Green(fmt.Sprintf("%d followers", total)),
	)
}

func (p *ProgressDisplay) RateLimited(wait time.Duration, attempt int) {
	p.mu.Lock()
	p.waits++
	fmt.Fprintf(p.writer(), "%s Rate limit reached, waiting %s before retrying (pause %d)\n",
		Yellow("⚠"),
		formatDuration(wait),
		attempt,
	)
	p.mu.Unlock()

	p.notifier.RateLimited(p.username, wait)
}

// Complete prints the final summary and sends the completion notification
func (p *ProgressDisplay) Complete(followers int, path string) {
	p.mu.Lock()
	elapsed := time.Since(p.startTime)
	fmt.Fprintf(p.writer(), "\n%s Exported %d followers of @%s to %s\n",
		Green("✓"), followers, p.username, path)
	fmt.Fprintf(p.writer(), "  %s %d pages, %d rate limit pauses, %s\n",
		Dim("•"), p.pages, p.waits, formatDuration(elapsed))
	p.mu.Unlock()

	p.notifier.Completed(p.username, followers, path)
}

// Fail sends the failure notification; the error itself is printed by the caller
func (p *ProgressDisplay) Fail(err error) {
	p.notifier.Failed(p.username, err)
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}
}
