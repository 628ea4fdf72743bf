package notify

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Notifier shows transient success/error messages to the operator.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier() LogNotifier {
	return LogNotifier{logger: log.With().Str("component", "notifier").Logger()}
}

func (n LogNotifier) Success(message string) {
	n.logger.Info().Msg(message)
}

func (n LogNotifier) Error(message string) {
	n.logger.Error().Msg(message)
}

// Level is the severity of a recorded notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one recorded message.
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Recorder keeps notifications in memory so they can be returned to a
// caller (HTTP response, CLI output) after an operation.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Success(message string) {
	r.add(LevelSuccess, message)
}

func (r *Recorder) Error(message string) {
	r.add(LevelError, message)
}

func (r *Recorder) add(level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, Notification{Level: level, Message: message})
}

// Drain returns and clears the recorded notifications.
func (r *Recorder) Drain() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.items
	r.items = nil
	return items
}

// Tee fans notifications out to several notifiers.
type Tee []Notifier

func (t Tee) Success(message string) {
	for _, n := range t {
		n.Success(message)
	}
}

func (t Tee) Error(message string) {
	for _, n := range t {
		n.Error(message)
	}
}
