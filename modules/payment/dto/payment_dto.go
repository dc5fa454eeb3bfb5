package dto

import (
	"time"

	"tutortrack/core/dto"

	"github.com/google/uuid"
)

type PaymentRequest struct {
	PupilID     uuid.UUID  `json:"pupil_id" validate:"required"`
	Amount      float64    `json:"amount" validate:"required"`
	Month       int        `json:"month" validate:"required"`
	Year        int        `json:"year" validate:"required"`
	PaymentDate *time.Time `json:"payment_date"`
	PaymentMode string     `json:"payment_mode"`
	Notes       *string    `json:"notes"`
}

// PaymentFilter narrows the payment listing; zero values mean no filter
type PaymentFilter struct {
	PupilID *uuid.UUID
	Month   *int
	Year    *int
}

type PaymentResponse struct {
	ID          uuid.UUID  `json:"id"`
	PupilID     uuid.UUID  `json:"pupil_id"`
	Amount      float64    `json:"amount"`
	Month       int        `json:"month"`
	Year        int        `json:"year"`
	PaymentDate *time.Time `json:"payment_date,omitempty"`
	PaymentMode string     `json:"payment_mode"`
	Notes       *string    `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type PaginatedPaymentResponse = dto.Pagination[PaymentResponse]
