package entity

import (
	"time"

	"tutortrack/core/entity"
)

type User struct {
	GoogleUserID  string     `db:"google_user_id"`
	Email         string     `db:"email"`
	FullName      string     `db:"full_name"`
	ProfilePicURL *string    `db:"profile_pic_url"`
	LastLoginAt   *time.Time `db:"last_login_at"`
	entity.BaseEntity
}
