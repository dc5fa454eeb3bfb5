package task

import (
	"encoding/json"
	"time"

	"tutortrack/core/constants"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// SessionReminderPayload is the body of a reminder:session task
type SessionReminderPayload struct {
	EventID   uuid.UUID `json:"event_id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
}

// NewSessionReminderTask builds the asynq task for an upcoming session
func NewSessionReminderTask(eventID, userID uuid.UUID, title string, startTime time.Time) (*asynq.Task, error) {
	payload, err := json.Marshal(SessionReminderPayload{
		EventID:   eventID,
		UserID:    userID,
		Title:     title,
		StartTime: startTime,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constants.TaskSessionReminder, payload), nil
}
