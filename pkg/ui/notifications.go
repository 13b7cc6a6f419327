package ui

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"twfollowers/pkg/config"
)

// NotificationSender delivers a desktop notification
type NotificationSender interface {
	Send(title, message string) error
}

// LinuxNotificationSender uses notify-send
type LinuxNotificationSender struct{}

func (l *LinuxNotificationSender) Send(title, message string) error {
	return exec.Command("notify-send", title, message).Run()
}

// MacOSNotificationSender uses osascript
type MacOSNotificationSender struct{}

func (m *MacOSNotificationSender) Send(title, message string) error {
	script := fmt.Sprintf(`display notification %q with title %q`, message, title)
	return exec.Command("osascript", "-e", script).Run()
}

// WindowsNotificationSender uses a PowerShell toast
type WindowsNotificationSender struct{}

func (w *WindowsNotificationSender) Send(title, message string) error {
	script := fmt.Sprintf(`
		[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
		[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] | Out-Null
		$xml = @"
<toast>
	<visual>
		<binding template="ToastText02">
			<text id="1">%s</text>
			<text id="2">%s</text>
		</binding>
	</visual>
</toast>
"@
		$doc = [Windows.Data.Xml.Dom.XmlDocument]::new()
		$doc.LoadXml($xml)
		$toast = [Windows.UI.Notifications.ToastNotification]::new($doc)
		[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier("twfollowers").Show($toast)
	`, xmlEscape(title), xmlEscape(message))

	return exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", script).Run()
}

func xmlEscape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;").Replace(s)
}

// Notifier sends desktop notifications for the events enabled in NotificationConfig
type Notifier struct {
	sender NotificationSender
	cfg    config.NotificationConfig
}

// NewNotifier picks the sender for the current platform.
// A disabled config yields a Notifier that never sends.
func NewNotifier(cfg config.NotificationConfig) *Notifier {
	var sender NotificationSender

	switch runtime.GOOS {
	case "linux":
		sender = &LinuxNotificationSender{}
	case "darwin":
		sender = &MacOSNotificationSender{}
	case "windows":
		sender = &WindowsNotificationSender{}
	}

	return NewNotifierWithSender(cfg, sender)
}

// NewNotifierWithSender uses an explicit sender
func NewNotifierWithSender(cfg config.NotificationConfig, sender NotificationSender) *Notifier {
	return &Notifier{sender: sender, cfg: cfg}
}

func (n *Notifier) send(enabled bool, title, message string) {
	if n.sender == nil || !n.cfg.Enabled || !enabled {
		return
	}
	// Delivery failures are ignored
	_ = n.sender.Send(title, message)
}

// Completed reports a successful export
func (n *Notifier) Completed(username string, followers int, path string) {
	if n == nil {
		return
	}
	n.send(n.cfg.OnComplete, "Followers exported",
		fmt.Sprintf("@%s: %d followers written to %s", username, followers, path))
}

// Failed reports a terminal error
func (n *Notifier) Failed(username string, err error) {
	if n == nil {
		return
	}
	n.send(n.cfg.OnError, "Follower export failed",
		fmt.Sprintf("@%s: %v", username, err))
}

// RateLimited reports a cooldown
func (n *Notifier) RateLimited(username string, wait time.Duration) {
	if n == nil {
		return
	}
	n.send(n.cfg.OnRateLimit, "Rate limited",
		fmt.Sprintf("@%s: pausing for %s", username, wait))
}
