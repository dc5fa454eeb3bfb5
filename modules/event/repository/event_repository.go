package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"tutortrack/core/database"
	"tutortrack/core/logger"
	"tutortrack/modules/event/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// EventRepository handles event, repeat day and event-pupil database operations
type EventRepository struct {
	DB database.Database
}

// NewEventRepository creates a new repository instance
func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{DB: db}
}

// EventFilter narrows window queries
type EventFilter struct {
	EventType *entity.EventType
	OwnerID   *uuid.UUID
}

// EventRepositoryInterface defines the repository contract
type EventRepositoryInterface interface {
	// Templates
	CreateEvent(ctx context.Context, event *entity.Event, repeatDays []int) (*entity.Event, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	GetEventsOverlapping(ctx context.Context, windowStart, windowEnd time.Time, filter EventFilter) ([]entity.Event, error)
	UpdateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error)
	UpdateEventWithRepeatDays(ctx context.Context, event *entity.Event, days []int) (*entity.Event, error)
	SplitSeries(ctx context.Context, frozen *entity.Event, successor *entity.Event, successorDays []int) (*entity.Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error

	// Repeat days
	GetRepeatDays(ctx context.Context, eventID uuid.UUID) ([]entity.EventRepeatDay, error)
	AddRepeatDays(ctx context.Context, eventID uuid.UUID, days []int) ([]entity.EventRepeatDay, error)
	ReplaceRepeatDays(ctx context.Context, eventID uuid.UUID, days []int) ([]entity.EventRepeatDay, error)
	DeleteRepeatDays(ctx context.Context, eventID uuid.UUID, ids []uuid.UUID) (int64, error)

	// Event pupils
	GetEventPupils(ctx context.Context, eventID uuid.UUID) ([]entity.EventPupil, error)
	AddEventPupils(ctx context.Context, eventID uuid.UUID, pupilIDs []uuid.UUID) ([]entity.EventPupil, error)
	RemoveEventPupils(ctx context.Context, eventID uuid.UUID, pupilIDs []uuid.UUID) (int64, error)
}

const eventColumns = `id, owner_id, title, description, event_type, start_time, end_time, repeat_pattern, repeat_until, created_at, updated_at`

// ===================== Templates =====================

func (r *EventRepository) CreateEvent(ctx context.Context, event *entity.Event, repeatDays []int) (*entity.Event, error) {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("EventRepository:CreateEvent - BeginTx", err)
		return nil, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO events (owner_id, title, description, event_type, start_time, end_time, repeat_pattern, repeat_until)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + eventColumns

	var created entity.Event
	err = tx.GetContext(ctx, &created, query,
		event.OwnerID, event.Title, event.Description, event.EventType,
		event.StartTime, event.EndTime, event.RepeatPattern, event.RepeatUntil)
	if err != nil {
		logger.Error("EventRepository:CreateEvent", err)
		return nil, err
	}

	if err := insertRepeatDays(ctx, tx, created.ID, repeatDays); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("EventRepository:CreateEvent - Commit", err)
		return nil, err
	}

	return &created, nil
}

func (r *EventRepository) GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var event entity.Event
	err := r.DB.GetContext(ctx, &event, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetEventByID", err)
		return nil, err
	}

	return &event, nil
}

// GetEventsOverlapping returns templates that could produce an occurrence
// inside [windowStart, windowEnd]: single events anchored in the window, and
// recurring events that start before the window ends and are not capped
// before the window starts.
func (r *EventRepository) GetEventsOverlapping(ctx context.Context, windowStart, windowEnd time.Time, filter EventFilter) ([]entity.Event, error) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.EventType != nil {
		conditions = append(conditions, fmt.Sprintf("event_type = $%d", argIndex))
		args = append(args, *filter.EventType)
		argIndex++
	}
	if filter.OwnerID != nil {
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", argIndex))
		args = append(args, *filter.OwnerID)
		argIndex++
	}

	windowStartArg := argIndex
	windowEndArg := argIndex + 1
	args = append(args, windowStart, windowEnd)

	overlap := fmt.Sprintf(`(
			(repeat_pattern = 'none' AND start_time >= $%d AND start_time < $%d + interval '1 day')
			OR
			(repeat_pattern <> 'none' AND start_time < $%d + interval '1 day'
				AND (repeat_until IS NULL OR repeat_until >= $%d))
		)`, windowStartArg, windowEndArg, windowEndArg, windowStartArg)
	conditions = append(conditions, overlap)

	query := `SELECT ` + eventColumns + ` FROM events WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY start_time ASC`

	var events []entity.Event
	err := r.DB.SelectContext(ctx, &events, query, args...)
	if err != nil {
		logger.Error("EventRepository:GetEventsOverlapping", err)
		return nil, err
	}

	return events, nil
}

func (r *EventRepository) UpdateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	query := `
		UPDATE events
		SET title = $2, description = $3, event_type = $4, start_time = $5, end_time = $6,
		    repeat_pattern = $7, repeat_until = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + eventColumns

	var updated entity.Event
	err := r.DB.GetContext(ctx, &updated, query,
		event.ID, event.Title, event.Description, event.EventType,
		event.StartTime, event.EndTime, event.RepeatPattern, event.RepeatUntil)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:UpdateEvent", err)
		return nil, err
	}

	return &updated, nil
}

// UpdateEventWithRepeatDays updates the template and replaces its weekday
// set in one transaction, so readers never observe the old fields with the
// new days or vice versa.
func (r *EventRepository) UpdateEventWithRepeatDays(ctx context.Context, event *entity.Event, days []int) (*entity.Event, error) {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("EventRepository:UpdateEventWithRepeatDays - BeginTx", err)
		return nil, err
	}
	defer tx.Rollback()

	query := `
		UPDATE events
		SET title = $2, description = $3, event_type = $4, start_time = $5, end_time = $6,
		    repeat_pattern = $7, repeat_until = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + eventColumns

	var updated entity.Event
	err = tx.GetContext(ctx, &updated, query,
		event.ID, event.Title, event.Description, event.EventType,
		event.StartTime, event.EndTime, event.RepeatPattern, event.RepeatUntil)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:UpdateEventWithRepeatDays", err)
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM event_repeat_days WHERE event_id = $1`, event.ID); err != nil {
		logger.Error("EventRepository:UpdateEventWithRepeatDays - Clear", err)
		return nil, err
	}
	if err := insertRepeatDays(ctx, tx, event.ID, days); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("EventRepository:UpdateEventWithRepeatDays - Commit", err)
		return nil, err
	}

	return &updated, nil
}

// SplitSeries freezes the original template and inserts its successor in one
// transaction. A partially applied split would silently drop a whole series
// from future expansions, so both writes stand or fall together.
func (r *EventRepository) SplitSeries(ctx context.Context, frozen *entity.Event, successor *entity.Event, successorDays []int) (*entity.Event, error) {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("EventRepository:SplitSeries - BeginTx", err)
		return nil, err
	}
	defer tx.Rollback()

	freezeQuery := `
		UPDATE events
		SET repeat_until = $2, updated_at = NOW()
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, freezeQuery, frozen.ID, frozen.RepeatUntil); err != nil {
		logger.Error("EventRepository:SplitSeries - Freeze", err)
		return nil, err
	}

	insertQuery := `
		INSERT INTO events (owner_id, title, description, event_type, start_time, end_time, repeat_pattern, repeat_until)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + eventColumns

	var created entity.Event
	err = tx.GetContext(ctx, &created, insertQuery,
		successor.OwnerID, successor.Title, successor.Description, successor.EventType,
		successor.StartTime, successor.EndTime, successor.RepeatPattern, successor.RepeatUntil)
	if err != nil {
		logger.Error("EventRepository:SplitSeries - Insert", err)
		return nil, err
	}

	if err := insertRepeatDays(ctx, tx, created.ID, successorDays); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("EventRepository:SplitSeries - Commit", err)
		return nil, err
	}

	return &created, nil
}

func (r *EventRepository) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("EventRepository:DeleteEvent - BeginTx", err)
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM event_repeat_days WHERE event_id = $1`, id); err != nil {
		logger.Error("EventRepository:DeleteEvent - RepeatDays", err)
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM event_pupils WHERE event_id = $1`, id); err != nil {
		logger.Error("EventRepository:DeleteEvent - EventPupils", err)
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id); err != nil {
		logger.Error("EventRepository:DeleteEvent", err)
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("EventRepository:DeleteEvent - Commit", err)
		return err
	}

	return nil
}

// ===================== Repeat days =====================

func (r *EventRepository) GetRepeatDays(ctx context.Context, eventID uuid.UUID) ([]entity.EventRepeatDay, error) {
	query := `
		SELECT id, event_id, day_of_week
		FROM event_repeat_days
		WHERE event_id = $1
		ORDER BY day_of_week
	`

	var days []entity.EventRepeatDay
	err := r.DB.SelectContext(ctx, &days, query, eventID)
	if err != nil {
		logger.Error("EventRepository:GetRepeatDays", err)
		return nil, err
	}

	return days, nil
}

func (r *EventRepository) AddRepeatDays(ctx context.Context, eventID uuid.UUID, days []int) ([]entity.EventRepeatDay, error) {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("EventRepository:AddRepeatDays - BeginTx", err)
		return nil, err
	}
	defer tx.Rollback()

	if err := insertRepeatDays(ctx, tx, eventID, days); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("EventRepository:AddRepeatDays - Commit", err)
		return nil, err
	}

	return r.GetRepeatDays(ctx, eventID)
}

// ReplaceRepeatDays swaps the full weekday set atomically
func (r *EventRepository) ReplaceRepeatDays(ctx context.Context, eventID uuid.UUID, days []int) ([]entity.EventRepeatDay, error) {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("EventRepository:ReplaceRepeatDays - BeginTx", err)
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM event_repeat_days WHERE event_id = $1`, eventID); err != nil {
		logger.Error("EventRepository:ReplaceRepeatDays - Clear", err)
		return nil, err
	}
	if err := insertRepeatDays(ctx, tx, eventID, days); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("EventRepository:ReplaceRepeatDays - Commit", err)
		return nil, err
	}

	return r.GetRepeatDays(ctx, eventID)
}

func (r *EventRepository) DeleteRepeatDays(ctx context.Context, eventID uuid.UUID, ids []uuid.UUID) (int64, error) {
	query := `DELETE FROM event_repeat_days WHERE event_id = $1 AND id = ANY($2)`

	res, err := r.DB.SQLx().ExecContext(ctx, query, eventID, pq.Array(ids))
	if err != nil {
		logger.Error("EventRepository:DeleteRepeatDays", err)
		return 0, err
	}

	affected, _ := res.RowsAffected()
	return affected, nil
}

// insertRepeatDays inserts a weekday set inside an open transaction
func insertRepeatDays(ctx context.Context, tx interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}, eventID uuid.UUID, days []int) error {
	if len(days) == 0 {
		return nil
	}

	query := `
		INSERT INTO event_repeat_days (event_id, day_of_week)
		VALUES ($1, $2)
		ON CONFLICT (event_id, day_of_week) DO NOTHING
	`
	for _, day := range days {
		if _, err := tx.ExecContext(ctx, query, eventID, day); err != nil {
			logger.Error("EventRepository:insertRepeatDays", err)
			return err
		}
	}
	return nil
}

// ===================== Event pupils =====================

func (r *EventRepository) GetEventPupils(ctx context.Context, eventID uuid.UUID) ([]entity.EventPupil, error) {
	query := `
		SELECT id, event_id, pupil_id, added_at
		FROM event_pupils
		WHERE event_id = $1
		ORDER BY added_at
	`

	var pupils []entity.EventPupil
	err := r.DB.SelectContext(ctx, &pupils, query, eventID)
	if err != nil {
		logger.Error("EventRepository:GetEventPupils", err)
		return nil, err
	}

	return pupils, nil
}

func (r *EventRepository) AddEventPupils(ctx context.Context, eventID uuid.UUID, pupilIDs []uuid.UUID) ([]entity.EventPupil, error) {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("EventRepository:AddEventPupils - BeginTx", err)
		return nil, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO event_pupils (event_id, pupil_id)
		VALUES ($1, $2)
		ON CONFLICT (event_id, pupil_id) DO NOTHING
	`
	for _, pupilID := range pupilIDs {
		if _, err := tx.ExecContext(ctx, query, eventID, pupilID); err != nil {
			logger.Error("EventRepository:AddEventPupils - Insert", err)
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("EventRepository:AddEventPupils - Commit", err)
		return nil, err
	}

	return r.GetEventPupils(ctx, eventID)
}

func (r *EventRepository) RemoveEventPupils(ctx context.Context, eventID uuid.UUID, pupilIDs []uuid.UUID) (int64, error) {
	query := `DELETE FROM event_pupils WHERE event_id = $1 AND pupil_id = ANY($2)`

	res, err := r.DB.SQLx().ExecContext(ctx, query, eventID, pq.Array(pupilIDs))
	if err != nil {
		logger.Error("EventRepository:RemoveEventPupils", err)
		return 0, err
	}

	affected, _ := res.RowsAffected()
	return affected, nil
}
