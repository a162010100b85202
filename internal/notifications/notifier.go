package notifications

import (
	"context"
	"time"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a short message shown to the person entering records.
type Notice struct {
	Level    Level
	Message  string
	PostedAt time.Time
}

// Notifier delivers a notice somewhere visible, such as a terminal.
type Notifier interface {
	Notify(ctx context.Context, n Notice) error
}
