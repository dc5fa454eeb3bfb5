package entity

import (
	"time"

	"github.com/google/uuid"
)

// EventType distinguishes one-off from recurring events
type EventType string

const (
	EventTypeOnce   EventType = "once"
	EventTypeRepeat EventType = "repeat"
)

// RepeatPattern is the recurrence cadence of an event template
type RepeatPattern string

const (
	RepeatPatternNone       RepeatPattern = "none"
	RepeatPatternDaily      RepeatPattern = "daily"
	RepeatPatternWeekly     RepeatPattern = "weekly"
	RepeatPatternMonthly    RepeatPattern = "monthly"
	RepeatPatternCustomDays RepeatPattern = "custom_days"
)

// Valid reports whether p is a known pattern
func (p RepeatPattern) Valid() bool {
	switch p {
	case RepeatPatternNone, RepeatPatternDaily, RepeatPatternWeekly, RepeatPatternMonthly, RepeatPatternCustomDays:
		return true
	}
	return false
}

// Repeats reports whether the pattern generates more than one occurrence
func (p RepeatPattern) Repeats() bool {
	return p != RepeatPatternNone && p != ""
}

// UsesWeekdaySet reports whether the pattern is driven by explicit weekdays
func (p RepeatPattern) UsesWeekdaySet() bool {
	return p == RepeatPatternWeekly || p == RepeatPatternCustomDays
}

// Event is the stored template a calendar occurrence is derived from.
// start_time/end_time carry both the anchor date and the time-of-day; only
// the date part shifts when occurrences are generated.
type Event struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	OwnerID       uuid.UUID     `db:"owner_id" json:"owner_id"`
	Title         string        `db:"title" json:"title"`
	Description   *string       `db:"description" json:"description,omitempty"`
	EventType     EventType     `db:"event_type" json:"event_type"`
	StartTime     time.Time     `db:"start_time" json:"start_time"`
	EndTime       time.Time     `db:"end_time" json:"end_time"`
	RepeatPattern RepeatPattern `db:"repeat_pattern" json:"repeat_pattern"`
	RepeatUntil   *time.Time    `db:"repeat_until" json:"repeat_until,omitempty"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// EventRepeatDay is one weekday association of a weekly/custom_days event.
// DayOfWeek uses 0=Sunday..6=Saturday, which matches Go's time.Weekday.
type EventRepeatDay struct {
	ID        uuid.UUID `db:"id" json:"id"`
	EventID   uuid.UUID `db:"event_id" json:"event_id"`
	DayOfWeek int       `db:"day_of_week" json:"day_of_week"`
}

// EventPupil links a pupil to an event
type EventPupil struct {
	ID      uuid.UUID `db:"id" json:"id"`
	EventID uuid.UUID `db:"event_id" json:"event_id"`
	PupilID uuid.UUID `db:"pupil_id" json:"pupil_id"`
	AddedAt time.Time `db:"added_at" json:"added_at"`
}

// Occurrence is a concrete calendar instance derived from a template for a
// queried window. Occurrences are never persisted; they are recomputed from
// the template on every query.
type Occurrence struct {
	ID                  uuid.UUID     `json:"id"`
	OwnerID             uuid.UUID     `json:"owner_id"`
	Title               string        `json:"title"`
	Description         *string       `json:"description,omitempty"`
	EventType           EventType     `json:"event_type"`
	StartTime           time.Time     `json:"start_time"`
	EndTime             time.Time     `json:"end_time"`
	RepeatPattern       RepeatPattern `json:"repeat_pattern"`
	RepeatUntil         *time.Time    `json:"repeat_until,omitempty"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
	IsGeneratedInstance bool          `json:"is_generated_instance"`
	OriginalDate        time.Time     `json:"original_date"`
	InstanceDate        *time.Time    `json:"instance_date,omitempty"`
}
