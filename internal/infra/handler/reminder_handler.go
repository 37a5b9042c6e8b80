package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/app"
)

type ReminderHandler struct {
	useCase app.ReminderUseCase
}

func NewReminderHandler(useCase app.ReminderUseCase) *ReminderHandler {
	return &ReminderHandler{
		useCase: useCase,
	}
}

func (h *ReminderHandler) ScheduleReminder(c *gin.Context) {
	habitID := c.Param("id")

	slog.Info("handling schedule reminder request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"habit_id", habitID,
	)

	var req ScheduleReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("request validation failed",
			"error", err,
			"path", c.Request.URL.Path,
		)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Field:   "",
		})

		return
	}

	input := app.ScheduleReminderInput{
		HabitID:         habitID,
		Title:           req.Title,
		Description:     req.Description,
		Frequency:       req.Frequency,
		ReminderEnabled: req.ReminderEnabled,
		TimeOfDay:       req.ReminderTime,
		IsNewHabit:      req.IsNewHabit,
	}

	output, err := h.useCase.ScheduleReminder(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)

		return
	}

	slog.Info("reminder scheduling handled",
		"habit_id", habitID,
		"status", output.Status,
	)
	c.JSON(http.StatusOK, FromScheduleDTO(output))
}

func (h *ReminderHandler) CancelHabitReminder(c *gin.Context) {
	habitID := c.Param("id")

	slog.Info("handling cancel reminder request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"habit_id", habitID,
	)

	input := app.CancelHabitReminderInput{
		HabitID: habitID,
	}

	if err := h.useCase.CancelHabitReminder(c.Request.Context(), input); err != nil {
		h.handleError(c, err)

		return
	}

	slog.Info("reminder canceled",
		"habit_id", habitID,
	)
	c.Status(http.StatusNoContent)
}

func (h *ReminderHandler) ScheduleSnooze(c *gin.Context) {
	habitID := c.Param("id")

	slog.Info("handling snooze request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"habit_id", habitID,
	)

	var req SnoozeReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("request validation failed",
			"error", err,
			"path", c.Request.URL.Path,
		)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Field:   "",
		})

		return
	}

	input := app.ScheduleSnoozeInput{
		HabitID: habitID,
		Title:   req.Title,
		Minutes: req.Minutes,
	}

	output, err := h.useCase.ScheduleSnoozeReminder(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)

		return
	}

	slog.Info("snooze scheduled",
		"habit_id", habitID,
		"notification_id", output.NotificationID,
	)
	c.JSON(http.StatusCreated, FromOneShotDTO(output))
}

func (h *ReminderHandler) ScheduleStreakNotification(c *gin.Context) {
	habitID := c.Param("id")

	slog.Info("handling streak notification request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"habit_id", habitID,
	)

	var req StreakNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("request validation failed",
			"error", err,
			"path", c.Request.URL.Path,
		)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Field:   "",
		})

		return
	}

	input := app.StreakNotificationInput{
		HabitID:     habitID,
		Title:       req.Title,
		StreakCount: req.StreakCount,
		IsNewHabit:  req.IsNewHabit,
	}

	output, err := h.useCase.ScheduleStreakNotification(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)

		return
	}

	slog.Info("streak notification handled",
		"habit_id", habitID,
		"scheduled", output.Scheduled,
	)
	c.JSON(http.StatusOK, FromStreakDTO(output))
}

func (h *ReminderHandler) CancelAllReminders(c *gin.Context) {
	slog.Info("handling cancel all reminders request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)

	if err := h.useCase.CancelAllReminders(c.Request.Context()); err != nil {
		h.handleError(c, err)

		return
	}

	slog.Info("all reminders canceled")
	c.Status(http.StatusNoContent)
}

func (h *ReminderHandler) RescheduleAllReminders(c *gin.Context) {
	slog.Info("handling reschedule all reminders request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)

	output, err := h.useCase.RescheduleAllReminders(c.Request.Context())
	if err != nil {
		h.handleError(c, err)

		return
	}

	slog.Info("reminders rescheduled",
		"scheduled", output.Scheduled,
		"skipped", output.Skipped,
	)
	c.JSON(http.StatusOK, FromRescheduleDTO(output))
}

func (h *ReminderHandler) handleError(c *gin.Context, err error) {
	var validationErr *app.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: validationErr.Message,
			Field:   validationErr.Field,
		})

		return
	}

	if errors.Is(err, app.ErrPermissionDenied) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "permission_denied",
			Message: "notification permission not granted",
			Field:   "",
		})

		return
	}

	if errors.Is(err, app.ErrDeliveryFailure) {
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "delivery_failure",
			Message: "failed to arm notification",
			Field:   "",
		})

		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "an internal error occurred",
		Field:   "",
	})
}

func (h *ReminderHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.PUT("/:id/reminder", h.ScheduleReminder)
		habits.DELETE("/:id/reminder", h.CancelHabitReminder)
		habits.POST("/:id/snooze", h.ScheduleSnooze)
		habits.POST("/:id/streak", h.ScheduleStreakNotification)
	}

	reminders := router.Group("/reminders")
	{
		reminders.DELETE("", h.CancelAllReminders)
		reminders.POST("/reschedule", h.RescheduleAllReminders)
	}
}
