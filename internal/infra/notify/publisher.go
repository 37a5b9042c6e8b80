package notify

import (
	"context"
	"io"
	"time"
)

//go:generate mockgen -source=publisher.go -destination=publisher_mock.go -package=notify

const TopicNotificationFired = "notification.fired"

// FiredNotification is the payload published when an armed one-shot comes
// due. The push gateway consumes it and fans out to the user's devices.
type FiredNotification struct {
	Identifier string            `json:"identifier"`
	Title      string            `json:"title"`
	Body       string            `json:"body"`
	Data       map[string]string `json:"data,omitempty"`
	PlaySound  bool              `json:"play_sound"`
	FiredAt    time.Time         `json:"fired_at"`
}

type Publisher interface {
	PublishNotification(ctx context.Context, notification *FiredNotification) error
	io.Closer
}
