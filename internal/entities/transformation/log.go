package transformation

import "time"

// LogCategory classifies session log entries
type LogCategory string

// Log categories
const (
	LogCategoryMove   LogCategory = "MOVE"
	LogCategoryCard   LogCategory = "CARD"
	LogCategorySystem LogCategory = "SYSTEM"
	LogCategoryError  LogCategory = "ERROR"
)

// IsValid reports whether c is a known category
func (c LogCategory) IsValid() bool {
	switch c {
	case LogCategoryMove, LogCategoryCard, LogCategorySystem, LogCategoryError:
		return true
	default:
		return false
	}
}

// LogEntry is one immutable line of the session log
type LogEntry struct {
	ID        string      `json:"id"`
	Category  LogCategory `json:"category"`
	Message   string      `json:"message"`
	Detail    string      `json:"detail,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
