package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"twfollowers/pkg/models"
)

// DefaultSeparator joins the fields of one record
const DefaultSeparator = "|"

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// Manager writes follower lists to a delimited text file
type Manager struct {
	path      string
	separator string
}

// NewManager creates a storage manager writing to path, creating its directory when needed
func NewManager(path, separator string) (*Manager, error) {
	if path == "" {
		return nil, fmt.Errorf("output path is required")
	}
	if separator == "" {
		separator = DefaultSeparator
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Manager{path: path, separator: separator}, nil
}

// Format renders the header row and one line per follower.
// Lines are joined by "\n" without a trailing newline.
func (m *Manager) Format(list models.FollowerList) string {
	rows := list.Rows()
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		fields := make([]string, len(row))
		for i, field := range row {
			fields[i] = lineBreaks.Replace(field)
		}
		lines = append(lines, strings.Join(fields, m.separator))
	}
	return strings.Join(lines, "\n")
}

// SaveFollowers replaces the output file with the formatted list.
// The data is written to a temporary file in the same directory and renamed over the target.
func (m *Manager) SaveFollowers(list models.FollowerList) error {
	tempFile, err := os.CreateTemp(filepath.Dir(m.path), "."+filepath.Base(m.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tempName := tempFile.Name()

	_, err = tempFile.WriteString(m.Format(list))
	closeErr := tempFile.Close()

	if err != nil {
		os.Remove(tempName)
		return fmt.Errorf("failed to write followers: %w", err)
	}
	if closeErr != nil {
		os.Remove(tempName)
		return fmt.Errorf("failed to close file: %w", closeErr)
	}

	if err := os.Chmod(tempName, 0644); err != nil {
		os.Remove(tempName)
		return fmt.Errorf("failed to set file permissions: %w", err)
	}

	if err := os.Rename(tempName, m.path); err != nil {
		os.Remove(tempName)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// Path returns the output file path
func (m *Manager) Path() string {
	return m.path
}
