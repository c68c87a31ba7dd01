package domain

import "time"

// LogEntry is a row of the append-only operator log.
type LogEntry struct {
	ID          int64
	Level       string
	Message     string
	CreatedDate time.Time
}
