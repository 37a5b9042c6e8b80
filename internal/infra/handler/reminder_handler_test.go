package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/app"
	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/domain"
	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/infra/habits"
	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/infra/handler"
	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/infra/notify"
	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/infra/registry"
	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/infra/storage"
)

type routerFixture struct {
	router   *gin.Engine
	delivery *notify.MockDelivery
	registry domain.NotificationRegistry
	kv       *storage.MemoryKV
}

func setupTestRouter(t *testing.T) *routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	delivery := notify.NewMockDelivery(ctrl)
	kv := storage.NewMemoryKV()
	reg := registry.NewNotificationRegistry(kv)
	source := habits.NewStore(kv)

	// Monday 2024-01-01 07:00 local time.
	clock := func() time.Time {
		return time.Date(2024, time.January, 1, 7, 0, 0, 0, time.Local)
	}

	useCase := app.NewReminderUseCaseWithClock(reg, delivery, source, clock)
	h := handler.NewReminderHandler(useCase)

	router := gin.New()
	api := router.Group("/api/v1")
	h.RegisterRoutes(api)

	return &routerFixture{
		router:   router,
		delivery: delivery,
		registry: reg,
		kv:       kv,
	}
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestScheduleReminderHandlerSuccess(t *testing.T) {
	f := setupTestRouter(t)

	f.delivery.EXPECT().
		ScheduleOneShot(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("notif-1", nil)

	rec := performJSON(t, f.router, http.MethodPut, "/api/v1/habits/h1/reminder", map[string]any{
		"title":            "Morning run",
		"frequency":        []string{"Mon", "Wed", "Fri"},
		"reminder_enabled": true,
		"reminder_time":    "08:00",
		"is_new_habit":     true,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.ScheduleReminderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "scheduled", resp.Status)
	assert.Equal(t, "notif-1", resp.NotificationID)
	require.NotNil(t, resp.FireAt)
	assert.Equal(t, time.Date(2024, time.January, 1, 8, 0, 0, 0, time.Local).Unix(), resp.FireAt.Unix())
}

func TestScheduleReminderHandlerDisabled(t *testing.T) {
	f := setupTestRouter(t)

	rec := performJSON(t, f.router, http.MethodPut, "/api/v1/habits/h1/reminder", map[string]any{
		"title":            "Morning run",
		"frequency":        []string{"Mon"},
		"reminder_enabled": false,
		"reminder_time":    "08:00",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.ScheduleReminderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "reminders_disabled", resp.Status)
	assert.Empty(t, resp.NotificationID)
	assert.Nil(t, resp.FireAt)
}

func TestScheduleReminderHandlerValidation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{
			name: "missing title",
			body: map[string]any{
				"frequency":        []string{"Mon"},
				"reminder_enabled": true,
				"reminder_time":    "08:00",
			},
		},
		{
			name: "malformed reminder time",
			body: map[string]any{
				"title":            "Run",
				"frequency":        []string{"Mon"},
				"reminder_enabled": true,
				"reminder_time":    "8 o'clock",
			},
		},
		{
			name: "unknown weekday token",
			body: map[string]any{
				"title":            "Run",
				"frequency":        []string{"Monday"},
				"reminder_enabled": true,
				"reminder_time":    "08:00",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupTestRouter(t)

			rec := performJSON(t, f.router, http.MethodPut, "/api/v1/habits/h1/reminder", tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp handler.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "validation_error", resp.Error)
		})
	}
}

func TestScheduleReminderHandlerPermissionDenied(t *testing.T) {
	f := setupTestRouter(t)

	f.delivery.EXPECT().
		ScheduleOneShot(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", notify.ErrPermissionDenied)

	rec := performJSON(t, f.router, http.MethodPut, "/api/v1/habits/h1/reminder", map[string]any{
		"title":            "Morning run",
		"frequency":        []string{"Mon"},
		"reminder_enabled": true,
		"reminder_time":    "08:00",
	})

	require.Equal(t, http.StatusForbidden, rec.Code)

	var resp handler.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "permission_denied", resp.Error)
}

func TestCancelHabitReminderHandler(t *testing.T) {
	f := setupTestRouter(t)
	ctx := context.Background()

	id, err := domain.HabitIDFromString("h1")
	require.NoError(t, err)
	require.NoError(t, f.registry.Set(ctx, id, []string{"notif-1"}))

	f.delivery.EXPECT().Cancel(gomock.Any(), "notif-1").Return(nil)

	rec := performJSON(t, f.router, http.MethodDelete, "/api/v1/habits/h1/reminder", nil)

	require.Equal(t, http.StatusNoContent, rec.Code)

	registered, err := f.registry.Get(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, registered)
}

func TestSnoozeHandler(t *testing.T) {
	f := setupTestRouter(t)

	f.delivery.EXPECT().
		ScheduleOneShot(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("snooze-1", nil)

	rec := performJSON(t, f.router, http.MethodPost, "/api/v1/habits/h1/snooze", map[string]any{
		"title":   "Morning run",
		"minutes": 10,
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp handler.OneShotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "snooze-1", resp.NotificationID)
}

func TestSnoozeHandlerMissingMinutes(t *testing.T) {
	f := setupTestRouter(t)

	rec := performJSON(t, f.router, http.MethodPost, "/api/v1/habits/h1/snooze", map[string]any{
		"title": "Morning run",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStreakHandler(t *testing.T) {
	f := setupTestRouter(t)

	f.delivery.EXPECT().
		ScheduleOneShot(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("streak-1", nil)

	rec := performJSON(t, f.router, http.MethodPost, "/api/v1/habits/h1/streak", map[string]any{
		"title":        "Morning run",
		"streak_count": 7,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.StreakNotificationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Scheduled)
	assert.Equal(t, "streak-1", resp.NotificationID)
}

func TestStreakHandlerSkipsShortStreak(t *testing.T) {
	f := setupTestRouter(t)

	rec := performJSON(t, f.router, http.MethodPost, "/api/v1/habits/h1/streak", map[string]any{
		"title":        "Morning run",
		"streak_count": 2,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.StreakNotificationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Scheduled)
}

func TestCancelAllRemindersHandler(t *testing.T) {
	f := setupTestRouter(t)

	f.delivery.EXPECT().CancelAll(gomock.Any()).Return(nil)

	rec := performJSON(t, f.router, http.MethodDelete, "/api/v1/reminders", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRescheduleAllRemindersHandler(t *testing.T) {
	f := setupTestRouter(t)
	ctx := context.Background()

	stored := `[
		{"id":"h1","title":"Morning run","frequency":["Mon","Fri"],"reminderEnabled":true,"reminderTime":"08:00"},
		{"id":"h2","title":"Read","frequency":["Sun"],"reminderEnabled":false,"reminderTime":"21:00"}
	]`
	require.NoError(t, f.kv.Set(ctx, habits.StorageKey, stored))

	f.delivery.EXPECT().CancelAll(gomock.Any()).Return(nil)
	f.delivery.EXPECT().
		ScheduleOneShot(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("notif-1", nil)

	rec := performJSON(t, f.router, http.MethodPost, "/api/v1/reminders/reschedule", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.RescheduleAllResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int32(1), resp.Scheduled)
	assert.Equal(t, int32(1), resp.Skipped)
}
