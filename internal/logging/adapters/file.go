package adapters

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"resumeforge/internal/logging/types"
)

// FileAdapter implements the LogAdapter interface for file output with
// simple size-based rotation
type FileAdapter struct {
	name     string
	filePath string
	format   string
	maxSize  int64 // bytes; 0 disables rotation
	file     *os.File
	written  int64
	mu       sync.Mutex
}

// FileConfig represents configuration for the file adapter
type FileConfig struct {
	FilePath string `yaml:"file_path"`
	Format   string `yaml:"format"` // json or text
	MaxSize  int64  `yaml:"max_size"`
}

// NewFileAdapter creates a new file adapter
func NewFileAdapter(name string, config FileConfig) (*FileAdapter, error) {
	if err := os.MkdirAll(filepath.Dir(config.FilePath), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	file, err := os.OpenFile(config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat log file: %w", err)
	}

	return &FileAdapter{
		name:     name,
		filePath: config.FilePath,
		format:   config.Format,
		maxSize:  config.MaxSize,
		file:     file,
		written:  info.Size(),
	}, nil
}

// Write writes a log entry to the file
func (a *FileAdapter) Write(entry *types.LogEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	line, err := a.formatEntry(entry)
	if err != nil {
		return fmt.Errorf("failed to format log entry: %w", err)
	}

	if a.maxSize > 0 && a.written+int64(len(line))+1 > a.maxSize {
		if err := a.rotate(); err != nil {
			return err
		}
	}

	n, err := fmt.Fprintln(a.file, line)
	a.written += int64(n)
	return err
}

// Close closes the underlying file
func (a *FileAdapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.file == nil {
		return nil
	}
	err := a.file.Close()
	a.file = nil
	return err
}

// Name returns the name of the adapter
func (a *FileAdapter) Name() string {
	return a.name
}

func (a *FileAdapter) formatEntry(entry *types.LogEntry) (string, error) {
	if a.format == "text" {
		out := fmt.Sprintf("%s [%s] %s",
			entry.Timestamp.Format(time.RFC3339),
			entry.Level.String(),
			entry.Message,
		)
		for k, v := range entry.Fields {
			out += fmt.Sprintf(" %s=%v", k, v)
		}
		return out, nil
	}

	logData := map[string]interface{}{
		"level":   entry.Level.String(),
		"message": entry.Message,
		"time":    entry.Timestamp.Format(time.RFC3339),
	}
	for k, v := range entry.Fields {
		logData[k] = v
	}

	data, err := json.Marshal(logData)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// rotate renames the current file with a timestamp suffix and reopens a
// fresh one at the configured path
func (a *FileAdapter) rotate() error {
	if err := a.file.Close(); err != nil {
		return fmt.Errorf("close log file for rotation: %w", err)
	}

	rotated := fmt.Sprintf("%s.%s", a.filePath, time.Now().Format("20060102T150405"))
	if err := os.Rename(a.filePath, rotated); err != nil {
		return fmt.Errorf("rotate log file: %w", err)
	}

	file, err := os.OpenFile(a.filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("reopen log file: %w", err)
	}

	a.file = file
	a.written = 0
	return nil
}
