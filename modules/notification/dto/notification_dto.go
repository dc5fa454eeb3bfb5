package dto

import (
	"time"

	"tutortrack/core/dto"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	ID        uuid.UUID              `json:"id"`
	Kind      string                 `json:"kind"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	ReadAt    *time.Time             `json:"read_at,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type PaginatedNotificationResponse = dto.Pagination[NotificationResponse]

type MarkAsReadRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required"`
}

type CreateNotificationRequest struct {
	UserID  uuid.UUID              `json:"user_id"`
	Kind    string                 `json:"kind"`
	Title   string                 `json:"title"`
	Message string                 `json:"message"`
	Payload map[string]interface{} `json:"payload"`
}
