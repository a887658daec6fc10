// Package notify is the transient user-facing status surface.
// Calls are fire-and-forget; no return value is consumed.
package notify

import "log/slog"

type Notifier interface {
	Success(message string)
	Error(message string)
}

// SlogNotifier records notifications in the service log. The HTTP layer
// additionally carries the messages back in responses.
type SlogNotifier struct {
	log *slog.Logger
}

func NewSlogNotifier(log *slog.Logger) *SlogNotifier {
	return &SlogNotifier{log: log}
}

func (n *SlogNotifier) Success(message string) {
	n.log.Info("notify", slog.String("kind", "success"), slog.String("message", message))
}

func (n *SlogNotifier) Error(message string) {
	n.log.Warn("notify", slog.String("kind", "error"), slog.String("message", message))
}
