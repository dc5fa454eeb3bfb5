package entity

import (
	"time"

	"tutortrack/core/entity"

	"github.com/google/uuid"
)

type Group struct {
	OwnerID     uuid.UUID `db:"owner_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`

	entity.BaseEntity
}

// GroupPupil is one membership row of the group_pupils junction table
type GroupPupil struct {
	ID      uuid.UUID `db:"id"`
	GroupID uuid.UUID `db:"group_id"`
	PupilID uuid.UUID `db:"pupil_id"`
	AddedAt time.Time `db:"added_at"`
}

// GroupPupilWithName joins the membership row with the pupil's name for
// listing endpoints
type GroupPupilWithName struct {
	GroupPupil
	PupilName string `db:"pupil_name"`
}

type PaginatedGroupEntity = entity.Pagination[Group]
