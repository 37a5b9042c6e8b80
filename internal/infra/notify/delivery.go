package notify

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/domain"
)

//go:generate mockgen -source=delivery.go -destination=delivery_mock.go -package=notify

var ErrPermissionDenied = errors.New("notification permission not granted")

// Delivery is the notification capability the scheduler arms one-shots
// against. On the mobile client this is the OS notification API; here it is
// an in-process timer that hands fired payloads to the push pipeline.
type Delivery interface {
	// RequestPermission reports whether notifications may be delivered.
	// Scheduling while not granted fails with ErrPermissionDenied.
	RequestPermission(ctx context.Context) (bool, error)
	// ScheduleOneShot arms a single notification at fireAt and returns its
	// opaque identifier.
	ScheduleOneShot(ctx context.Context, content domain.Content, fireAt time.Time) (string, error)
	// Cancel disarms the identifier. Unknown or already-fired identifiers
	// are a no-op.
	Cancel(ctx context.Context, identifier string) error
	CancelAll(ctx context.Context) error
	io.Closer
}
