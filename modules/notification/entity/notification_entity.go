package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"tutortrack/core/entity"

	"github.com/google/uuid"
)

// Notification kinds
const (
	KindSessionReminder = "session_reminder"
)

type Notification struct {
	UserID  uuid.UUID  `db:"user_id"`
	Kind    string     `db:"kind"`
	Title   string     `db:"title"`
	Message string     `db:"message"`
	Payload JSONB      `db:"payload"`
	ReadAt  *time.Time `db:"read_at"`

	entity.BaseEntity
}

// IsRead reports whether the notification has been acknowledged
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}

type JSONB map[string]interface{}

func (a JSONB) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *JSONB) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &a)
}

type PaginatedNotificationEntity = entity.Pagination[Notification]
