package app

import (
	"fmt"
	"time"
)

// LogLevel is the severity of one session log entry.
type LogLevel string

const (
	LevelInfo    LogLevel = "INFO"
	LevelSuccess LogLevel = "SUCCESS"
	LevelError   LogLevel = "ERROR"
)

// Log is one append-only, timestamped session log entry. Logs are
// application state, shown in the UI; they are not an error channel.
type Log struct {
	Level     LogLevel  `yaml:"level"`
	Message   string    `yaml:"message"`
	CreatedAt time.Time `yaml:"created_at"`
}

func NewLog(level LogLevel, message string) Log {
	return Log{
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	}
}

func (l Log) String() string {
	return fmt.Sprintf("[%s] %-7s %s", l.CreatedAt.Format(time.RFC3339), l.Level, l.Message)
}
