// Package testhelpers provides shared fakes for package tests.
package testhelpers

import (
	"sync"

	"github.com/jonesrussell/north-cloud/intel-watcher/internal/logger"
)

// LogEntry is one captured log call.
type LogEntry struct {
	Level   string
	Message string
	Fields  []logger.Field
}

// CapturingLogger records log calls so tests can assert on them.
type CapturingLogger struct {
	mu      sync.Mutex
	entries []LogEntry
	with    []logger.Field
}

// NewCapturingLogger creates an empty CapturingLogger.
func NewCapturingLogger() *CapturingLogger {
	return &CapturingLogger{}
}

func (l *CapturingLogger) record(level, msg string, fields []logger.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	all := make([]logger.Field, 0, len(l.with)+len(fields))
	all = append(all, l.with...)
	all = append(all, fields...)
	l.entries = append(l.entries, LogEntry{Level: level, Message: msg, Fields: all})
}

func (l *CapturingLogger) Debug(msg string, fields ...logger.Field) { l.record("debug", msg, fields) }
func (l *CapturingLogger) Info(msg string, fields ...logger.Field)  { l.record("info", msg, fields) }
func (l *CapturingLogger) Warn(msg string, fields ...logger.Field)  { l.record("warn", msg, fields) }
func (l *CapturingLogger) Error(msg string, fields ...logger.Field) { l.record("error", msg, fields) }

// With returns the same logger; attached fields are prepended to later
// entries. Good enough for assertions, not a faithful child logger.
func (l *CapturingLogger) With(fields ...logger.Field) logger.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.with = append(l.with, fields...)
	return l
}

func (l *CapturingLogger) Sync() error { return nil }

// Entries returns a copy of the captured entries.
func (l *CapturingLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// HasEntry reports whether an entry at level carries the message and a
// string field with the given key and value.
func (l *CapturingLogger) HasEntry(level, msg, fieldKey, fieldValue string) bool {
	for _, entry := range l.Entries() {
		if entry.Level != level || entry.Message != msg {
			continue
		}
		for _, field := range entry.Fields {
			if field.Key == fieldKey && field.String == fieldValue {
				return true
			}
		}
	}
	return false
}
