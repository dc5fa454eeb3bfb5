package entity

import (
	"time"

	"tutortrack/core/entity"

	"github.com/google/uuid"
)

// Gender values accepted for a pupil
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderOther  = "Other"
)

// ValidGender reports whether g is one of the accepted gender values
func ValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

type Pupil struct {
	OwnerID     uuid.UUID  `db:"owner_id"`
	FullName    string     `db:"full_name"`
	Email       *string    `db:"email"`
	Mobile      *string    `db:"mobile"`
	FatherName  *string    `db:"father_name"`
	MotherName  *string    `db:"mother_name"`
	DateOfBirth *time.Time `db:"date_of_birth"`
	Gender      *string    `db:"gender"`
	EnrolledOn  *time.Time `db:"enrolled_on"`

	entity.BaseEntity
}

type PaginatedPupilEntity = entity.Pagination[Pupil]
