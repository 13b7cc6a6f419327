package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"twfollowers/pkg/config"
)

func newBufferLogger(t *testing.T, level string) (Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l, err := NewWithWriter(level, &buf)
	require.NoError(t, err)
	return l, &buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.LoggingConfig
		wantErr bool
	}{
		{"info level", &config.LoggingConfig{Level: "info"}, false},
		{"debug level", &config.LoggingConfig{Level: "debug"}, false},
		{"invalid level", &config.LoggingConfig{Level: "invalid"}, true},
		{"file output", &config.LoggingConfig{Level: "info", File: filepath.Join(t.TempDir(), "logs", "run.log")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zerolog.Level
		wantErr  bool
	}{
		{"debug", zerolog.DebugLevel, false},
		{"DEBUG", zerolog.DebugLevel, false},
		{"info", zerolog.InfoLevel, false},
		{"", zerolog.InfoLevel, false},
		{"warning", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"disabled", zerolog.Disabled, false},
		{"loud", zerolog.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			level, err := parseLogLevel(tt.level)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestDefaultFields(t *testing.T) {
	l, buf := newBufferLogger(t, "info")
	l.Info("hello")

	entry := lastEntry(t, buf)
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "twfollowers", entry["app"])
	assert.NotEmpty(t, entry["run_id"])
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newBufferLogger(t, "warn")
	l.Debug("hidden debug")
	l.Info("hidden info")
	l.Warn("visible warn")

	output := buf.String()
	assert.NotContains(t, output, "hidden")
	assert.Contains(t, output, "visible warn")
}

func TestWithFieldsDoesNotMutateParent(t *testing.T) {
	l, buf := newBufferLogger(t, "debug")

	child := l.WithField("username", "alice").WithFields(map[string]interface{}{
		"page":  2,
		"wait":  time.Minute,
		"final": true,
	})
	child.Info("child message")

	entry := lastEntry(t, buf)
	assert.Equal(t, "alice", entry["username"])
	assert.Equal(t, float64(2), entry["page"])
	assert.Equal(t, true, entry["final"])

	l.Info("parent message")
	entry = lastEntry(t, buf)
	assert.NotContains(t, entry, "username")
}

func TestWithError(t *testing.T) {
	l, buf := newBufferLogger(t, "debug")
	assert.Same(t, l, l.WithError(nil))

	l.WithError(errors.New("boom")).Error("request failed")
	entry := lastEntry(t, buf)
	assert.Equal(t, "boom", entry["error"])
}

func TestStructuredLogging(t *testing.T) {
	l, buf := newBufferLogger(t, "debug")
	l.WithField("component", "fetcher").WarnWithFields("paused", map[string]interface{}{
		"cursor": int64(1234),
	})

	entry := lastEntry(t, buf)
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "fetcher", entry["component"])
	assert.Equal(t, float64(1234), entry["cursor"])
}

func TestHelpers(t *testing.T) {
	tl := NewTestLogger()

	LogRequest(tl, "GET", "http://example.com", 200, 10*time.Millisecond)
	LogRequest(tl, "GET", "http://example.com", 429, 0)
	LogRequest(tl, "GET", "http://example.com", 503, 0)
	LogRateLimit(tl, "alice", 42, time.Minute, 1)
	LogPage(tl, "alice", 1, -1, 200, 200)

	assert.Len(t, tl.GetMessagesByLevel("DEBUG"), 1)
	assert.Len(t, tl.GetMessagesByLevel("WARN"), 2)
	assert.Len(t, tl.GetMessagesByLevel("ERROR"), 1)

	pages := tl.GetMessagesByLevel("INFO")
	require.Len(t, pages, 1)
	assert.Equal(t, int64(-1), pages[0].Field("cursor"))
	assert.Equal(t, 200, pages[0].Field("total"))
}

func TestTestLoggerSharesMessages(t *testing.T) {
	tl := NewTestLogger()
	tl.WithField("a", 1).WithError(errors.New("x")).Error("child")
	tl.Info("parent")

	messages := tl.GetMessages()
	require.Len(t, messages, 2)
	assert.Equal(t, 1, messages[0].Field("a"))
	assert.EqualError(t, messages[0].Error, "x")
	assert.Nil(t, messages[1].Error)
	assert.True(t, tl.HasMessage("parent"))
	assert.True(t, tl.HasError())

	tl.Clear()
	assert.Empty(t, tl.GetMessages())
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.WithField("k", "v").WithError(errors.New("ignored")).Error("nothing")
	assert.NotNil(t, l.GetZerolog())
}

func TestGlobalLogger(t *testing.T) {
	require.NoError(t, Initialize(&config.LoggingConfig{Level: "disabled"}))
	assert.NotNil(t, GetLogger())

	Debug("debug message")
	Info("info message")
	WithField("key", "value").Info("with field")
	WithError(errors.New("e")).Error("with error")
}
