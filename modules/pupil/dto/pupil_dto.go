package dto

import (
	"time"

	"tutortrack/core/dto"

	"github.com/google/uuid"
)

type PupilRequest struct {
	FullName    string     `json:"full_name"`
	Email       *string    `json:"email"`
	Mobile      *string    `json:"mobile"`
	FatherName  *string    `json:"father_name"`
	MotherName  *string    `json:"mother_name"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      *string    `json:"gender"`
	EnrolledOn  *time.Time `json:"enrolled_on"`
}

type PupilResponse struct {
	ID          uuid.UUID  `json:"id"`
	FullName    string     `json:"full_name"`
	Email       *string    `json:"email,omitempty"`
	Mobile      *string    `json:"mobile,omitempty"`
	FatherName  *string    `json:"father_name,omitempty"`
	MotherName  *string    `json:"mother_name,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Gender      *string    `json:"gender,omitempty"`
	EnrolledOn  *time.Time `json:"enrolled_on,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type PaginatedPupilResponse = dto.Pagination[PupilResponse]
