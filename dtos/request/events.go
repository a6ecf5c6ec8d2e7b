package request

import "time"

// ReminderDueEvent is the message the scheduler publishes to Kafka and the
// notifier turns into an SMS.
type ReminderDueEvent struct {
	ReminderId uint      `json:"reminder_id"`
	UserId     uint      `json:"user_id"`
	Phone      string    `json:"phone"`
	Kind       string    `json:"kind"`
	Message    string    `json:"message"`
	DueAt      time.Time `json:"due_at"`
}
