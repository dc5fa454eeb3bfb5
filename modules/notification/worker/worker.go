package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"tutortrack/core/constants"
	"tutortrack/core/logger"
	"tutortrack/modules/notification/dto"
	"tutortrack/modules/notification/entity"
	"tutortrack/modules/notification/service"
	"tutortrack/modules/notification/task"

	"github.com/hibiken/asynq"
)

// Worker consumes background tasks and turns them into notification rows
type Worker struct {
	service *service.NotificationService
}

func NewWorker(svc *service.NotificationService) *Worker {
	return &Worker{service: svc}
}

// Register attaches the task handlers to the asynq mux
func (w *Worker) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(constants.TaskSessionReminder, w.HandleSessionReminder)
}

// HandleSessionReminder writes a reminder notification for an upcoming
// session. The task was scheduled at event creation; by the time it fires
// the event may be gone, which is not an error worth retrying.
func (w *Worker) HandleSessionReminder(ctx context.Context, t *asynq.Task) error {
	var payload task.SessionReminderPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logger.Error("NotificationWorker:HandleSessionReminder - Payload", err)
		return fmt.Errorf("unmarshal session reminder payload: %w: %v", asynq.SkipRetry, err)
	}

	appErr := w.service.Create(ctx, &dto.CreateNotificationRequest{
		UserID:  payload.UserID,
		Kind:    entity.KindSessionReminder,
		Title:   "Upcoming session",
		Message: fmt.Sprintf("%s starts at %s", payload.Title, payload.StartTime.Format("15:04 on 2006-01-02")),
		Payload: map[string]interface{}{
			"event_id":   payload.EventID.String(),
			"start_time": payload.StartTime,
		},
	})
	if appErr != nil {
		logger.Error("NotificationWorker:HandleSessionReminder", appErr)
		return appErr
	}

	logger.Info("NotificationWorker:HandleSessionReminder", "event_id", payload.EventID, "user_id", payload.UserID)
	return nil
}
