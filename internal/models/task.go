package models

import "time"

// Task statuses. Every task is in exactly one of these states.
const (
	StatusToDo       = "To Do"
	StatusInProgress = "In Progress"
	StatusDone       = "Done"
)

// ValidStatus reports whether s is one of the enumerated task statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task represents a single task owned by a user.
type Task struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  *string    `json:"description"`
	Status       string     `json:"status"`
	Deadline     *time.Time `json:"deadline"`
	ReminderTime *time.Time `json:"reminder_time"`
	UserID       string     `json:"user_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
