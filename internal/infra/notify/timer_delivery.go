package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/domain"
)

type armedNotification struct {
	timer   *time.Timer
	content domain.Content
	fireAt  time.Time
}

// TimerDelivery arms one-shot notifications on in-process timers and
// publishes the payload to the delivery channel when they come due. Fired
// and cancelled one-shots simply disappear from the armed set; there is no
// retry, matching the fire-once contract of the mobile notification API.
type TimerDelivery struct {
	mu        sync.Mutex
	granted   bool
	armed     map[string]*armedNotification
	publisher Publisher
}

// NewTimerDelivery wires the delivery port to a publisher. A nil publisher
// behaves like a device where notification permission was denied.
func NewTimerDelivery(publisher Publisher) *TimerDelivery {
	return &TimerDelivery{
		armed:     make(map[string]*armedNotification),
		publisher: publisher,
	}
}

func (d *TimerDelivery) RequestPermission(_ context.Context) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.granted = d.publisher != nil
	if !d.granted {
		slog.Warn("notification delivery channel unavailable, permission denied")
	}

	return d.granted, nil
}

func (d *TimerDelivery) ScheduleOneShot(_ context.Context, content domain.Content, fireAt time.Time) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.granted {
		return "", ErrPermissionDenied
	}

	identifier := uuid.NewString()

	delay := time.Until(fireAt)
	if delay < 0 {
		delay = 0
	}

	d.armed[identifier] = &armedNotification{
		timer: time.AfterFunc(delay, func() {
			d.fire(identifier)
		}),
		content: content,
		fireAt:  fireAt,
	}

	slog.Debug("one-shot notification armed",
		"identifier", identifier,
		"fire_at", fireAt,
		"title", content.Title,
	)

	return identifier, nil
}

func (d *TimerDelivery) fire(identifier string) {
	d.mu.Lock()
	a, ok := d.armed[identifier]
	delete(d.armed, identifier)
	publisher := d.publisher
	d.mu.Unlock()

	if !ok || publisher == nil {
		return
	}

	notification := &FiredNotification{
		Identifier: identifier,
		Title:      a.content.Title,
		Body:       a.content.Body,
		Data:       a.content.Data,
		PlaySound:  a.content.PlaySound,
		FiredAt:    time.Now(),
	}

	if err := publisher.PublishNotification(context.Background(), notification); err != nil {
		slog.Error("failed to publish fired notification",
			"identifier", identifier,
			"error", err,
		)

		return
	}

	slog.Info("notification fired",
		"identifier", identifier,
		"title", a.content.Title,
	)
}

func (d *TimerDelivery) Cancel(_ context.Context, identifier string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	a, ok := d.armed[identifier]
	if !ok {
		// Already fired or never existed.
		return nil
	}

	a.timer.Stop()
	delete(d.armed, identifier)

	slog.Debug("one-shot notification cancelled",
		"identifier", identifier,
	)

	return nil
}

func (d *TimerDelivery) CancelAll(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for identifier, a := range d.armed {
		a.timer.Stop()
		delete(d.armed, identifier)
	}

	return nil
}

func (d *TimerDelivery) Close() error {
	if err := d.CancelAll(context.Background()); err != nil {
		return err
	}

	d.mu.Lock()
	publisher := d.publisher
	d.publisher = nil
	d.granted = false
	d.mu.Unlock()

	if publisher != nil {
		return publisher.Close()
	}

	return nil
}

// ArmedCount reports how many one-shots are currently armed. Test helper.
func (d *TimerDelivery) ArmedCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.armed)
}
