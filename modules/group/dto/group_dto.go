package dto

import (
	"time"

	"tutortrack/core/dto"

	"github.com/google/uuid"
)

type GroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type GroupResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PaginatedGroupResponse = dto.Pagination[GroupResponse]

type AddPupilsToGroupRequest struct {
	PupilIDs []uuid.UUID `json:"pupil_ids" validate:"required"`
}

type GroupPupilResponse struct {
	ID        uuid.UUID `json:"id"`
	PupilID   uuid.UUID `json:"pupil_id"`
	PupilName string    `json:"pupil_name"`
	AddedAt   time.Time `json:"added_at"`
}

type GroupPupilsResponse struct {
	GroupID uuid.UUID            `json:"group_id"`
	Group   *GroupResponse       `json:"group,omitempty"`
	Pupils  []GroupPupilResponse `json:"pupils"`
}
