package domain

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Content is the payload handed to the notification delivery port when a
// one-shot reminder is armed.
type Content struct {
	Title     string
	Body      string
	Data      map[string]string
	PlaySound bool
}

const (
	DataKeyHabitID = "habit_id"
	DataKeyDay     = "day"
	DataKeyType    = "type"

	NotificationTypeSnooze = "snooze"
	NotificationTypeStreak = "achievement"
)

var motivationalMessages = []string{
	"You're on a roll! Keep it up!",
	"Building this habit will change your life!",
	"Small steps lead to big results!",
	"Consistency is key to success!",
	"You've got this! Stay committed!",
	"Every effort counts towards your goal!",
	"Progress happens one day at a time!",
	"Your future self will thank you for this!",
	"Discipline equals freedom!",
	"The best time to start was yesterday. The next best time is now!",
}

func RandomMotivationalMessage() string {
	return motivationalMessages[rand.IntN(len(motivationalMessages))]
}

func MotivationalMessages() []string {
	messages := make([]string, len(motivationalMessages))
	copy(messages, motivationalMessages)

	return messages
}

// ReminderContent builds the payload for a scheduled habit reminder. The
// weekday lands in the data map so a tap on the notification can route back
// to the right day in the tracker.
func ReminderContent(habit Habit, day time.Weekday, message string) Content {
	body := message
	if habit.Description() != "" {
		body = habit.Description() + "\n\n" + message
	}

	return Content{
		Title: "Time for: " + habit.Title(),
		Body:  body,
		Data: map[string]string{
			DataKeyHabitID: habit.ID().String(),
			DataKeyDay:     WeekdayToken(day),
		},
		PlaySound: true,
	}
}

func SnoozeContent(habit Habit) Content {
	return Content{
		Title: "Reminder: " + habit.Title(),
		Body:  "Time to get back to your habit!",
		Data: map[string]string{
			DataKeyHabitID: habit.ID().String(),
			DataKeyType:    NotificationTypeSnooze,
		},
		PlaySound: true,
	}
}

func StreakContent(habit Habit, streakCount int) Content {
	return Content{
		Title: fmt.Sprintf("%d Day Streak! 🔥", streakCount),
		Body:  fmt.Sprintf("Amazing! You've kept up your %q habit for %d days in a row!", habit.Title(), streakCount),
		Data: map[string]string{
			DataKeyHabitID: habit.ID().String(),
			DataKeyType:    NotificationTypeStreak,
		},
		PlaySound: true,
	}
}
