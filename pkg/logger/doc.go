// Package logger provides the structured logging interface used across twfollowers.
//
// It wraps zerolog. Console output is colored and written to stderr, an
// optional log file receives the same events as JSON. Every logger carries
// an app name and a per-process run_id so that lines from one fetch can be
// grouped.
//
//	log, err := logger.New(&cfg.Logging)
//	log.WithField("username", "alice").Info("Starting fetch")
//
// TestLogger captures messages in memory for assertions in tests.
package logger
