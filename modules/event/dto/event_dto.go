package dto

import (
	"time"

	"tutortrack/modules/event/entity"

	"github.com/google/uuid"
)

// ===================== Request DTOs =====================

// CreateEventRequest for creating a single or recurring event
type CreateEventRequest struct {
	Title         string     `json:"title" validate:"required"`
	Description   string     `json:"description"`
	EventType     string     `json:"event_type" validate:"required"` // once | repeat
	StartTime     time.Time  `json:"start_time" validate:"required"`
	EndTime       time.Time  `json:"end_time" validate:"required"`
	RepeatPattern string     `json:"repeat_pattern"` // none | daily | weekly | monthly | custom_days
	RepeatUntil   *time.Time `json:"repeat_until"`
	RepeatDays    []int      `json:"repeat_days"` // 0=Sunday..6=Saturday
}

// UpdateEventRequest patches an event; nil fields are left unchanged
type UpdateEventRequest struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	EventType     *string    `json:"event_type"`
	StartTime     *time.Time `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	RepeatPattern *string    `json:"repeat_pattern"`
	RepeatUntil   *time.Time `json:"repeat_until"`
	RepeatDays    []int      `json:"repeat_days"` // nil = keep, [] = clear
}

// MutationScope selects whether a mutation hits the whole series or only
// occurrences from the operation date onward
type MutationScope string

const (
	ScopeAll    MutationScope = "all"
	ScopeFuture MutationScope = "future"
)

// ParseScope maps the query parameter to a scope, defaulting to all
func ParseScope(s string) (MutationScope, bool) {
	switch s {
	case "", string(ScopeAll):
		return ScopeAll, true
	case string(ScopeFuture):
		return ScopeFuture, true
	}
	return "", false
}

// ReplaceRepeatDaysRequest replaces the weekday set of an event
type ReplaceRepeatDaysRequest struct {
	Days []int `json:"days" validate:"required"`
}

// EventPupilsRequest adds or removes pupils on an event
type EventPupilsRequest struct {
	PupilIDs []uuid.UUID `json:"pupil_ids" validate:"required"`
}

// ===================== Response DTOs =====================

// EventResponse for a stored template
type EventResponse struct {
	ID            string     `json:"id"`
	OwnerID       string     `json:"owner_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	EventType     string     `json:"event_type"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       time.Time  `json:"end_time"`
	RepeatPattern string     `json:"repeat_pattern"`
	RepeatUntil   *time.Time `json:"repeat_until,omitempty"`
	RepeatDays    []int      `json:"repeat_days,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// OccurrenceResponse for one expanded calendar instance
type OccurrenceResponse struct {
	ID                  string     `json:"id"`
	OwnerID             string     `json:"owner_id"`
	Title               string     `json:"title"`
	Description         string     `json:"description,omitempty"`
	EventType           string     `json:"event_type"`
	StartTime           time.Time  `json:"start_time"`
	EndTime             time.Time  `json:"end_time"`
	RepeatPattern       string     `json:"repeat_pattern"`
	RepeatUntil         *time.Time `json:"repeat_until,omitempty"`
	IsGeneratedInstance bool       `json:"is_generated_instance"`
	OriginalDate        string     `json:"original_date"`
	InstanceDate        string     `json:"instance_date,omitempty"`
}

// RepeatDayResponse for one stored weekday row
type RepeatDayResponse struct {
	ID        string `json:"id"`
	EventID   string `json:"event_id"`
	DayOfWeek int    `json:"day_of_week"`
}

// EventPupilResponse for one pupil assignment
type EventPupilResponse struct {
	ID      string    `json:"id"`
	EventID string    `json:"event_id"`
	PupilID string    `json:"pupil_id"`
	AddedAt time.Time `json:"added_at"`
}

// ===================== Mapper Functions =====================

const dateLayout = "2006-01-02"

// ToEventResponse maps entity to DTO
func ToEventResponse(e *entity.Event, repeatDays []entity.EventRepeatDay) *EventResponse {
	resp := &EventResponse{
		ID:            e.ID.String(),
		OwnerID:       e.OwnerID.String(),
		Title:         e.Title,
		EventType:     string(e.EventType),
		StartTime:     e.StartTime,
		EndTime:       e.EndTime,
		RepeatPattern: string(e.RepeatPattern),
		RepeatUntil:   e.RepeatUntil,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
	if e.Description != nil {
		resp.Description = *e.Description
	}
	for _, rd := range repeatDays {
		resp.RepeatDays = append(resp.RepeatDays, rd.DayOfWeek)
	}
	return resp
}

// ToOccurrenceResponse maps an expanded occurrence to a DTO
func ToOccurrenceResponse(o *entity.Occurrence) *OccurrenceResponse {
	resp := &OccurrenceResponse{
		ID:                  o.ID.String(),
		OwnerID:             o.OwnerID.String(),
		Title:               o.Title,
		EventType:           string(o.EventType),
		StartTime:           o.StartTime,
		EndTime:             o.EndTime,
		RepeatPattern:       string(o.RepeatPattern),
		RepeatUntil:         o.RepeatUntil,
		IsGeneratedInstance: o.IsGeneratedInstance,
		OriginalDate:        o.OriginalDate.Format(dateLayout),
	}
	if o.Description != nil {
		resp.Description = *o.Description
	}
	if o.InstanceDate != nil {
		resp.InstanceDate = o.InstanceDate.Format(dateLayout)
	}
	return resp
}

// ToRepeatDayResponse maps a weekday row to a DTO
func ToRepeatDayResponse(rd *entity.EventRepeatDay) *RepeatDayResponse {
	return &RepeatDayResponse{
		ID:        rd.ID.String(),
		EventID:   rd.EventID.String(),
		DayOfWeek: rd.DayOfWeek,
	}
}

// ToEventPupilResponse maps a pupil assignment to a DTO
func ToEventPupilResponse(ep *entity.EventPupil) *EventPupilResponse {
	return &EventPupilResponse{
		ID:      ep.ID.String(),
		EventID: ep.EventID.String(),
		PupilID: ep.PupilID.String(),
		AddedAt: ep.AddedAt,
	}
}
