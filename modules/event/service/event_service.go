package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tutortrack/core/cache"
	"tutortrack/core/constants"
	"tutortrack/core/errors"
	"tutortrack/core/logger"
	"tutortrack/core/queue"
	"tutortrack/modules/event/dto"
	"tutortrack/modules/event/entity"
	"tutortrack/modules/event/repository"
	notificationtask "tutortrack/modules/notification/task"

	"github.com/google/uuid"
)

// EventService handles event business logic: template CRUD, occurrence
// expansion over query windows, and the series mutation protocol.
type EventService struct {
	repo     repository.EventRepositoryInterface
	expander *RecurrenceExpander
	cache    cache.Cache
	queue    queue.Queue
}

// OccurrenceQuery bounds a calendar query
type OccurrenceQuery struct {
	WindowStart time.Time
	WindowEnd   time.Time
	EventType   *entity.EventType
	OwnerID     *uuid.UUID
}

// EventServiceInterface defines the service contract
type EventServiceInterface interface {
	CreateEvent(ctx context.Context, ownerID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError)
	GetEventByID(ctx context.Context, id uuid.UUID) (*dto.EventResponse, *errors.AppError)
	GetEventsInWindow(ctx context.Context, q OccurrenceQuery) ([]dto.EventResponse, *errors.AppError)
	GetOccurrences(ctx context.Context, q OccurrenceQuery) ([]dto.OccurrenceResponse, *errors.AppError)
	UpdateEvent(ctx context.Context, eventID uuid.UUID, ownerID uuid.UUID, req *dto.UpdateEventRequest, scope dto.MutationScope, asOf time.Time) (*dto.EventResponse, *errors.AppError)
	DeleteEvent(ctx context.Context, eventID uuid.UUID, ownerID uuid.UUID, scope dto.MutationScope, asOf time.Time) *errors.AppError

	GetRepeatDays(ctx context.Context, eventID uuid.UUID) ([]dto.RepeatDayResponse, *errors.AppError)
	AddRepeatDays(ctx context.Context, eventID uuid.UUID, days []int) ([]dto.RepeatDayResponse, *errors.AppError)
	ReplaceRepeatDays(ctx context.Context, eventID uuid.UUID, days []int) ([]dto.RepeatDayResponse, *errors.AppError)
	DeleteRepeatDays(ctx context.Context, eventID uuid.UUID, ids []uuid.UUID) *errors.AppError

	GetEventPupils(ctx context.Context, eventID uuid.UUID) ([]dto.EventPupilResponse, *errors.AppError)
	AddEventPupils(ctx context.Context, eventID uuid.UUID, pupilIDs []uuid.UUID) ([]dto.EventPupilResponse, *errors.AppError)
	RemoveEventPupils(ctx context.Context, eventID uuid.UUID, pupilIDs []uuid.UUID) *errors.AppError
}

// NewEventService creates a new event service. cache and taskQueue may be
// nil; the service then skips occurrence caching and reminder scheduling.
func NewEventService(repo repository.EventRepositoryInterface, c cache.Cache, taskQueue queue.Queue) EventServiceInterface {
	return &EventService{
		repo:     repo,
		expander: NewRecurrenceExpander(),
		cache:    c,
		queue:    taskQueue,
	}
}

// DefaultWindow is the query window used when the caller supplies none: the
// first through last calendar day of now's month.
func DefaultWindow(now time.Time) (time.Time, time.Time) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)
	return first, last
}

// ===================== Template CRUD =====================

func (s *EventService) CreateEvent(ctx context.Context, ownerID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError) {
	eventType := entity.EventType(req.EventType)
	pattern := entity.RepeatPattern(req.RepeatPattern)
	if pattern == "" {
		pattern = entity.RepeatPatternNone
	}

	if appErr := validateTemplate(eventType, pattern, req.StartTime, req.EndTime, req.RepeatDays); appErr != nil {
		return nil, appErr
	}
	if pattern == entity.RepeatPatternWeekly && len(req.RepeatDays) == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Weekly repeat pattern requires repeat days", nil)
	}

	event := &entity.Event{
		OwnerID:       ownerID,
		Title:         req.Title,
		EventType:     eventType,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		RepeatPattern: pattern,
		RepeatUntil:   req.RepeatUntil,
	}
	if req.Description != "" {
		event.Description = &req.Description
	}

	var days []int
	if pattern.UsesWeekdaySet() {
		days = req.RepeatDays
	}

	created, err := s.repo.CreateEvent(ctx, event, days)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create event", err)
	}

	s.bumpVersions(ctx, ownerID)
	s.scheduleReminder(ctx, created)

	repeatDays, _ := s.repo.GetRepeatDays(ctx, created.ID)
	return dto.ToEventResponse(created, repeatDays), nil
}

func (s *EventService) GetEventByID(ctx context.Context, id uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	event, err := s.repo.GetEventByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	repeatDays, _ := s.repo.GetRepeatDays(ctx, id)
	return dto.ToEventResponse(event, repeatDays), nil
}

func (s *EventService) GetEventsInWindow(ctx context.Context, q OccurrenceQuery) ([]dto.EventResponse, *errors.AppError) {
	events, err := s.repo.GetEventsOverlapping(ctx, q.WindowStart, q.WindowEnd, repository.EventFilter{
		EventType: q.EventType,
		OwnerID:   q.OwnerID,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get events", err)
	}

	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		repeatDays, _ := s.repo.GetRepeatDays(ctx, events[i].ID)
		result = append(result, *dto.ToEventResponse(&events[i], repeatDays))
	}
	return result, nil
}

// GetOccurrences expands every overlapping template into its concrete
// occurrences inside the window and merges them into one ascending list.
// Expansion is pure, so a whole window's result is cached in redis keyed by
// a per-owner version stamp that every mutation bumps.
func (s *EventService) GetOccurrences(ctx context.Context, q OccurrenceQuery) ([]dto.OccurrenceResponse, *errors.AppError) {
	cacheKey := s.occurrenceCacheKey(ctx, q)
	if cacheKey != "" {
		var cached []dto.OccurrenceResponse
		if hit, err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	events, err := s.repo.GetEventsOverlapping(ctx, q.WindowStart, q.WindowEnd, repository.EventFilter{
		EventType: q.EventType,
		OwnerID:   q.OwnerID,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get events", err)
	}

	var all []entity.Occurrence
	for i := range events {
		var days []int
		if events[i].RepeatPattern.UsesWeekdaySet() {
			repeatDays, err := s.repo.GetRepeatDays(ctx, events[i].ID)
			if err != nil {
				return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get repeat days", err)
			}
			for _, rd := range repeatDays {
				days = append(days, rd.DayOfWeek)
			}
		}

		occurrences, appErr := s.expander.Expand(&events[i], days, q.WindowStart, q.WindowEnd)
		if appErr != nil {
			logger.Warn("EventService:GetOccurrences:SkipMalformed", "event_id", events[i].ID, "error", appErr.Message)
			continue
		}
		all = append(all, occurrences...)
	}

	// Each template's occurrences are already ordered; the merged list
	// needs one global sort by start time
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].StartTime.Before(all[j].StartTime)
	})

	result := make([]dto.OccurrenceResponse, 0, len(all))
	for i := range all {
		result = append(result, *dto.ToOccurrenceResponse(&all[i]))
	}

	if cacheKey != "" {
		if err := s.cache.SetJSON(ctx, cacheKey, result, constants.OccurrenceCacheTTL); err != nil {
			logger.Warn("EventService:GetOccurrences:CacheSet", "error", err)
		}
	}

	return result, nil
}

// UpdateEvent applies a patch to a template. Scope all mutates the template
// in place; scope future freezes the template at asOf-1 and spawns a
// successor carrying the patch, so past occurrences keep their history.
func (s *EventService) UpdateEvent(ctx context.Context, eventID uuid.UUID, ownerID uuid.UUID, req *dto.UpdateEventRequest, scope dto.MutationScope, asOf time.Time) (*dto.EventResponse, *errors.AppError) {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	if event.OwnerID != ownerID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Not authorized to update this event", nil)
	}

	for _, day := range req.RepeatDays {
		if day < 0 || day > 6 {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Repeat days must be between 0 (Sunday) and 6 (Saturday)", nil)
		}
	}

	if scope == dto.ScopeFuture {
		return s.updateFuture(ctx, event, req, asOf)
	}
	return s.updateAll(ctx, event, req)
}

func (s *EventService) updateAll(ctx context.Context, event *entity.Event, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError) {
	patched := *event
	applyPatch(&patched, req)

	if appErr := validateTemplate(patched.EventType, patched.RepeatPattern, patched.StartTime, patched.EndTime, req.RepeatDays); appErr != nil {
		return nil, appErr
	}

	var updated *entity.Event
	var err error
	if req.RepeatDays != nil && patched.RepeatPattern.UsesWeekdaySet() {
		updated, err = s.repo.UpdateEventWithRepeatDays(ctx, &patched, req.RepeatDays)
	} else {
		updated, err = s.repo.UpdateEvent(ctx, &patched)
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update event", err)
	}
	if updated == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	s.bumpVersions(ctx, event.OwnerID)

	repeatDays, _ := s.repo.GetRepeatDays(ctx, updated.ID)
	return dto.ToEventResponse(updated, repeatDays), nil
}

func (s *EventService) updateFuture(ctx context.Context, event *entity.Event, req *dto.UpdateEventRequest, asOf time.Time) (*dto.EventResponse, *errors.AppError) {
	if !event.RepeatPattern.Repeats() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Future scope requires a repeating event", nil)
	}

	frozen := freezeSeries(*event, asOf)
	successor := forkSuccessor(*event, req, asOf)

	if appErr := validateTemplate(successor.EventType, successor.RepeatPattern, successor.StartTime, successor.EndTime, nil); appErr != nil {
		return nil, appErr
	}

	// The weekday set travels to the successor only when explicitly
	// re-supplied; the original keeps its rows for history
	var successorDays []int
	if req.RepeatDays != nil && successor.RepeatPattern == entity.RepeatPatternWeekly {
		successorDays = req.RepeatDays
	}

	created, err := s.repo.SplitSeries(ctx, &frozen, &successor, successorDays)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to split event series", err)
	}

	s.bumpVersions(ctx, event.OwnerID)

	repeatDays, _ := s.repo.GetRepeatDays(ctx, created.ID)
	return dto.ToEventResponse(created, repeatDays), nil
}

// DeleteEvent removes a template (scope all) or truncates its series at
// asOf (scope future), leaving past occurrences queryable.
func (s *EventService) DeleteEvent(ctx context.Context, eventID uuid.UUID, ownerID uuid.UUID, scope dto.MutationScope, asOf time.Time) *errors.AppError {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "Failed to get event", err)
	}
	if event == nil {
		return errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	if event.OwnerID != ownerID {
		return errors.NewAppError(errors.ErrForbidden, "Not authorized to delete this event", nil)
	}

	if scope == dto.ScopeFuture {
		if !event.RepeatPattern.Repeats() {
			return errors.NewAppError(errors.ErrInvalidInput, "Future scope requires a repeating event", nil)
		}
		truncated := truncateSeries(*event, asOf)
		if _, err := s.repo.UpdateEvent(ctx, &truncated); err != nil {
			return errors.NewAppError(errors.ErrUpdateFailed, "Failed to truncate event series", err)
		}
	} else {
		if err := s.repo.DeleteEvent(ctx, eventID); err != nil {
			return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete event", err)
		}
	}

	s.bumpVersions(ctx, ownerID)
	return nil
}

// ===================== Repeat days =====================

func (s *EventService) GetRepeatDays(ctx context.Context, eventID uuid.UUID) ([]dto.RepeatDayResponse, *errors.AppError) {
	if appErr := s.requireEvent(ctx, eventID); appErr != nil {
		return nil, appErr
	}

	days, err := s.repo.GetRepeatDays(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get repeat days", err)
	}
	return toRepeatDayResponses(days), nil
}

func (s *EventService) AddRepeatDays(ctx context.Context, eventID uuid.UUID, days []int) ([]dto.RepeatDayResponse, *errors.AppError) {
	if appErr := s.validateRepeatDaysInput(ctx, eventID, days); appErr != nil {
		return nil, appErr
	}

	stored, err := s.repo.AddRepeatDays(ctx, eventID, days)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to add repeat days", err)
	}

	s.bumpAllVersions(ctx)
	return toRepeatDayResponses(stored), nil
}

func (s *EventService) ReplaceRepeatDays(ctx context.Context, eventID uuid.UUID, days []int) ([]dto.RepeatDayResponse, *errors.AppError) {
	if appErr := s.validateRepeatDaysInput(ctx, eventID, days); appErr != nil {
		return nil, appErr
	}

	stored, err := s.repo.ReplaceRepeatDays(ctx, eventID, days)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to replace repeat days", err)
	}

	s.bumpAllVersions(ctx)
	return toRepeatDayResponses(stored), nil
}

func (s *EventService) DeleteRepeatDays(ctx context.Context, eventID uuid.UUID, ids []uuid.UUID) *errors.AppError {
	if appErr := s.requireEvent(ctx, eventID); appErr != nil {
		return appErr
	}

	affected, err := s.repo.DeleteRepeatDays(ctx, eventID, ids)
	if err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete repeat days", err)
	}
	if affected == 0 {
		return errors.NewAppError(errors.ErrNotFound, "No matching repeat days found", nil)
	}

	s.bumpAllVersions(ctx)
	return nil
}

// ===================== Event pupils =====================

func (s *EventService) GetEventPupils(ctx context.Context, eventID uuid.UUID) ([]dto.EventPupilResponse, *errors.AppError) {
	if appErr := s.requireEvent(ctx, eventID); appErr != nil {
		return nil, appErr
	}

	pupils, err := s.repo.GetEventPupils(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get event pupils", err)
	}
	return toEventPupilResponses(pupils), nil
}

func (s *EventService) AddEventPupils(ctx context.Context, eventID uuid.UUID, pupilIDs []uuid.UUID) ([]dto.EventPupilResponse, *errors.AppError) {
	if appErr := s.requireEvent(ctx, eventID); appErr != nil {
		return nil, appErr
	}
	if len(pupilIDs) == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "No pupil IDs provided", nil)
	}

	stored, err := s.repo.AddEventPupils(ctx, eventID, pupilIDs)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to add pupils to event", err)
	}
	return toEventPupilResponses(stored), nil
}

func (s *EventService) RemoveEventPupils(ctx context.Context, eventID uuid.UUID, pupilIDs []uuid.UUID) *errors.AppError {
	if appErr := s.requireEvent(ctx, eventID); appErr != nil {
		return appErr
	}

	affected, err := s.repo.RemoveEventPupils(ctx, eventID, pupilIDs)
	if err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to remove pupils from event", err)
	}
	if affected == 0 {
		return errors.NewAppError(errors.ErrNotFound, "No pupil assignments found", nil)
	}
	return nil
}

// ===================== Helpers =====================

// validateTemplate checks the shared template invariants
func validateTemplate(eventType entity.EventType, pattern entity.RepeatPattern, start, end time.Time, days []int) *errors.AppError {
	if eventType != entity.EventTypeOnce && eventType != entity.EventTypeRepeat {
		return errors.NewAppError(errors.ErrInvalidInput, "Event type must be once or repeat", nil)
	}
	if !pattern.Valid() {
		return errors.NewAppError(errors.ErrInvalidInput, "Unknown repeat pattern", nil)
	}
	if !start.Before(end) {
		return errors.NewAppError(errors.ErrInvalidInput, "Start time must be before end time", nil)
	}
	if eventType == entity.EventTypeOnce && pattern.Repeats() {
		return errors.NewAppError(errors.ErrInvalidInput, "A one-off event cannot have a repeat pattern", nil)
	}
	if eventType == entity.EventTypeRepeat && !pattern.Repeats() {
		return errors.NewAppError(errors.ErrInvalidInput, "A repeating event requires a repeat pattern", nil)
	}
	for _, day := range days {
		if day < 0 || day > 6 {
			return errors.NewAppError(errors.ErrInvalidInput, "Repeat days must be between 0 (Sunday) and 6 (Saturday)", nil)
		}
	}
	if len(days) > 0 && !pattern.UsesWeekdaySet() {
		return errors.NewAppError(errors.ErrInvalidInput, "Repeat days are only valid for weekly or custom_days patterns", nil)
	}
	return nil
}

func (s *EventService) validateRepeatDaysInput(ctx context.Context, eventID uuid.UUID, days []int) *errors.AppError {
	if appErr := s.requireEvent(ctx, eventID); appErr != nil {
		return appErr
	}
	for _, day := range days {
		if day < 0 || day > 6 {
			return errors.NewAppError(errors.ErrInvalidInput, "Repeat days must be between 0 (Sunday) and 6 (Saturday)", nil)
		}
	}
	return nil
}

func (s *EventService) requireEvent(ctx context.Context, eventID uuid.UUID) *errors.AppError {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "Failed to get event", err)
	}
	if event == nil {
		return errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	return nil
}

// occurrenceCacheKey builds a version-stamped cache key, empty when caching
// is unavailable
func (s *EventService) occurrenceCacheKey(ctx context.Context, q OccurrenceQuery) string {
	if s.cache == nil {
		return ""
	}

	ownerKey := "all"
	if q.OwnerID != nil {
		ownerKey = q.OwnerID.String()
	}
	version, err := s.cache.EventsVersion(ctx, ownerKey)
	if err != nil {
		return ""
	}

	typeKey := "any"
	if q.EventType != nil {
		typeKey = string(*q.EventType)
	}

	return fmt.Sprintf("%s%s:v%d:%s:%s:%s",
		constants.RedisKeyOccurrences, ownerKey, version,
		q.WindowStart.Format("2006-01-02"), q.WindowEnd.Format("2006-01-02"), typeKey)
}

func (s *EventService) bumpVersions(ctx context.Context, ownerID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.BumpEventsVersion(ctx, ownerID.String()); err != nil {
		logger.Warn("EventService:BumpVersions", "error", err)
	}
	if err := s.cache.BumpEventsVersion(ctx, "all"); err != nil {
		logger.Warn("EventService:BumpVersions", "error", err)
	}
}

// bumpAllVersions is used by sub-resource mutations that do not know the
// owner without an extra read
func (s *EventService) bumpAllVersions(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.BumpEventsVersion(ctx, "all"); err != nil {
		logger.Warn("EventService:BumpAllVersions", "error", err)
	}
}

// scheduleReminder enqueues a session reminder for one-off events that
// start far enough in the future
func (s *EventService) scheduleReminder(ctx context.Context, event *entity.Event) {
	if s.queue == nil || event.EventType != entity.EventTypeOnce {
		return
	}

	remindAt := event.StartTime.Add(-constants.SessionReminderLead)
	if remindAt.Before(time.Now()) {
		return
	}

	task, err := notificationtask.NewSessionReminderTask(event.ID, event.OwnerID, event.Title, event.StartTime)
	if err != nil {
		logger.Warn("EventService:ScheduleReminder:Task", "error", err)
		return
	}
	if err := s.queue.EnqueueAt(ctx, remindAt, task); err != nil {
		logger.Warn("EventService:ScheduleReminder:Enqueue", "error", err)
	}
}

func toRepeatDayResponses(days []entity.EventRepeatDay) []dto.RepeatDayResponse {
	result := make([]dto.RepeatDayResponse, 0, len(days))
	for i := range days {
		result = append(result, *dto.ToRepeatDayResponse(&days[i]))
	}
	return result
}

func toEventPupilResponses(pupils []entity.EventPupil) []dto.EventPupilResponse {
	result := make([]dto.EventPupilResponse, 0, len(pupils))
	for i := range pupils {
		result = append(result, *dto.ToEventPupilResponse(&pupils[i]))
	}
	return result
}
