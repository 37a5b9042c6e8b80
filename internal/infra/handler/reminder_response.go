package handler

import (
	"time"

	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/app"
)

type ScheduleReminderResponse struct {
	Status         string     `json:"status"`
	NotificationID string     `json:"notification_id,omitempty"`
	FireAt         *time.Time `json:"fire_at,omitempty"`
}

type OneShotResponse struct {
	NotificationID string    `json:"notification_id"`
	FireAt         time.Time `json:"fire_at"`
}

type StreakNotificationResponse struct {
	Scheduled      bool       `json:"scheduled"`
	NotificationID string     `json:"notification_id,omitempty"`
	FireAt         *time.Time `json:"fire_at,omitempty"`
}

type RescheduleAllResponse struct {
	Scheduled int32 `json:"scheduled"`
	Skipped   int32 `json:"skipped"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func FromScheduleDTO(output app.ScheduleReminderOutput) ScheduleReminderResponse {
	resp := ScheduleReminderResponse{
		Status: string(output.Status),
	}

	if output.Scheduled() {
		fireAt := output.FireAt
		resp.NotificationID = output.NotificationID
		resp.FireAt = &fireAt
	}

	return resp
}

func FromOneShotDTO(output app.OneShotOutput) OneShotResponse {
	return OneShotResponse{
		NotificationID: output.NotificationID,
		FireAt:         output.FireAt,
	}
}

func FromStreakDTO(output app.StreakNotificationOutput) StreakNotificationResponse {
	resp := StreakNotificationResponse{
		Scheduled: output.Scheduled,
	}

	if output.Scheduled {
		fireAt := output.FireAt
		resp.NotificationID = output.NotificationID
		resp.FireAt = &fireAt
	}

	return resp
}

func FromRescheduleDTO(output app.RescheduleAllOutput) RescheduleAllResponse {
	return RescheduleAllResponse{
		Scheduled: output.Scheduled,
		Skipped:   output.Skipped,
	}
}
