package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"tutortrack/modules/event/dto"
	"tutortrack/modules/event/entity"
	"tutortrack/modules/event/repository"

	"github.com/google/uuid"
)

// fakeEventRepo keeps templates in memory and mirrors the repository's
// window-overlap predicate, so service tests exercise the real protocol
// logic without a database.
type fakeEventRepo struct {
	events map[uuid.UUID]*entity.Event
	days   map[uuid.UUID][]entity.EventRepeatDay
	pupils map[uuid.UUID][]entity.EventPupil
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events: map[uuid.UUID]*entity.Event{},
		days:   map[uuid.UUID][]entity.EventRepeatDay{},
		pupils: map[uuid.UUID][]entity.EventPupil{},
	}
}

func (f *fakeEventRepo) CreateEvent(_ context.Context, event *entity.Event, repeatDays []int) (*entity.Event, error) {
	stored := *event
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.events[stored.ID] = &stored
	f.storeDays(stored.ID, repeatDays)
	result := stored
	return &result, nil
}

func (f *fakeEventRepo) GetEventByID(_ context.Context, id uuid.UUID) (*entity.Event, error) {
	ev, ok := f.events[id]
	if !ok {
		return nil, nil
	}
	result := *ev
	return &result, nil
}

func (f *fakeEventRepo) GetEventsOverlapping(_ context.Context, windowStart, windowEnd time.Time, filter repository.EventFilter) ([]entity.Event, error) {
	endExclusive := windowEnd.AddDate(0, 0, 1)

	var out []entity.Event
	for _, ev := range f.events {
		if filter.OwnerID != nil && ev.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.EventType != nil && ev.EventType != *filter.EventType {
			continue
		}
		if ev.RepeatPattern == entity.RepeatPatternNone {
			if ev.StartTime.Before(windowStart) || !ev.StartTime.Before(endExclusive) {
				continue
			}
		} else {
			if !ev.StartTime.Before(endExclusive) {
				continue
			}
			if ev.RepeatUntil != nil && ev.RepeatUntil.Before(windowStart) {
				continue
			}
		}
		out = append(out, *ev)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (f *fakeEventRepo) UpdateEvent(_ context.Context, event *entity.Event) (*entity.Event, error) {
	if _, ok := f.events[event.ID]; !ok {
		return nil, nil
	}
	stored := *event
	stored.UpdatedAt = time.Now()
	f.events[event.ID] = &stored
	result := stored
	return &result, nil
}

func (f *fakeEventRepo) UpdateEventWithRepeatDays(ctx context.Context, event *entity.Event, days []int) (*entity.Event, error) {
	updated, err := f.UpdateEvent(ctx, event)
	if updated == nil || err != nil {
		return updated, err
	}
	f.days[event.ID] = nil
	f.storeDays(event.ID, days)
	return updated, nil
}

func (f *fakeEventRepo) SplitSeries(_ context.Context, frozen *entity.Event, successor *entity.Event, successorDays []int) (*entity.Event, error) {
	original, ok := f.events[frozen.ID]
	if !ok {
		return nil, nil
	}
	original.RepeatUntil = frozen.RepeatUntil

	created := *successor
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.events[created.ID] = &created
	f.storeDays(created.ID, successorDays)

	result := created
	return &result, nil
}

func (f *fakeEventRepo) DeleteEvent(_ context.Context, id uuid.UUID) error {
	delete(f.events, id)
	delete(f.days, id)
	delete(f.pupils, id)
	return nil
}

func (f *fakeEventRepo) GetRepeatDays(_ context.Context, eventID uuid.UUID) ([]entity.EventRepeatDay, error) {
	days := append([]entity.EventRepeatDay(nil), f.days[eventID]...)
	sort.Slice(days, func(i, j int) bool { return days[i].DayOfWeek < days[j].DayOfWeek })
	return days, nil
}

func (f *fakeEventRepo) AddRepeatDays(ctx context.Context, eventID uuid.UUID, days []int) ([]entity.EventRepeatDay, error) {
	f.storeDays(eventID, days)
	return f.GetRepeatDays(ctx, eventID)
}

func (f *fakeEventRepo) ReplaceRepeatDays(ctx context.Context, eventID uuid.UUID, days []int) ([]entity.EventRepeatDay, error) {
	f.days[eventID] = nil
	f.storeDays(eventID, days)
	return f.GetRepeatDays(ctx, eventID)
}

func (f *fakeEventRepo) DeleteRepeatDays(_ context.Context, eventID uuid.UUID, ids []uuid.UUID) (int64, error) {
	drop := map[uuid.UUID]bool{}
	for _, id := range ids {
		drop[id] = true
	}

	var kept []entity.EventRepeatDay
	var removed int64
	for _, d := range f.days[eventID] {
		if drop[d.ID] {
			removed++
			continue
		}
		kept = append(kept, d)
	}
	f.days[eventID] = kept
	return removed, nil
}

func (f *fakeEventRepo) GetEventPupils(_ context.Context, eventID uuid.UUID) ([]entity.EventPupil, error) {
	return append([]entity.EventPupil(nil), f.pupils[eventID]...), nil
}

func (f *fakeEventRepo) AddEventPupils(ctx context.Context, eventID uuid.UUID, pupilIDs []uuid.UUID) ([]entity.EventPupil, error) {
	existing := map[uuid.UUID]bool{}
	for _, p := range f.pupils[eventID] {
		existing[p.PupilID] = true
	}
	for _, pupilID := range pupilIDs {
		if existing[pupilID] {
			continue
		}
		f.pupils[eventID] = append(f.pupils[eventID], entity.EventPupil{
			ID:      uuid.New(),
			EventID: eventID,
			PupilID: pupilID,
			AddedAt: time.Now(),
		})
	}
	return f.GetEventPupils(ctx, eventID)
}

func (f *fakeEventRepo) RemoveEventPupils(_ context.Context, eventID uuid.UUID, pupilIDs []uuid.UUID) (int64, error) {
	drop := map[uuid.UUID]bool{}
	for _, id := range pupilIDs {
		drop[id] = true
	}

	var kept []entity.EventPupil
	var removed int64
	for _, p := range f.pupils[eventID] {
		if drop[p.PupilID] {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	f.pupils[eventID] = kept
	return removed, nil
}

func (f *fakeEventRepo) storeDays(eventID uuid.UUID, days []int) {
	existing := map[int]bool{}
	for _, d := range f.days[eventID] {
		existing[d.DayOfWeek] = true
	}
	for _, day := range days {
		if existing[day] {
			continue
		}
		f.days[eventID] = append(f.days[eventID], entity.EventRepeatDay{
			ID:        uuid.New(),
			EventID:   eventID,
			DayOfWeek: day,
		})
	}
}

// ===================== Helpers =====================

func newTestService(repo repository.EventRepositoryInterface) EventServiceInterface {
	return NewEventService(repo, nil, nil)
}

func createWeeklyMondays(t *testing.T, svc EventServiceInterface, ownerID uuid.UUID) *dto.EventResponse {
	t.Helper()
	created, appErr := svc.CreateEvent(context.Background(), ownerID, &dto.CreateEventRequest{
		Title:         "Weekly math",
		EventType:     "repeat",
		StartTime:     time.Date(2024, 3, 4, 16, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC),
		RepeatPattern: "weekly",
		RepeatDays:    []int{1},
	})
	if appErr != nil {
		t.Fatalf("create weekly event: %v", appErr)
	}
	return created
}

func occurrencesByDate(t *testing.T, svc EventServiceInterface, ownerID uuid.UUID, windowStart, windowEnd time.Time) map[string]dto.OccurrenceResponse {
	t.Helper()
	occurrences, appErr := svc.GetOccurrences(context.Background(), OccurrenceQuery{
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		OwnerID:     &ownerID,
	})
	if appErr != nil {
		t.Fatalf("get occurrences: %v", appErr)
	}

	byDate := map[string]dto.OccurrenceResponse{}
	for _, occ := range occurrences {
		key := occ.InstanceDate
		if key == "" {
			key = occ.OriginalDate
		}
		byDate[key] = occ
	}
	return byDate
}

// ===================== Tests =====================

func TestCreateEventValidation(t *testing.T) {
	svc := newTestService(newFakeEventRepo())
	ownerID := uuid.New()

	cases := []struct {
		name string
		req  dto.CreateEventRequest
	}{
		{
			name: "weekly without repeat days",
			req: dto.CreateEventRequest{
				Title:         "No days",
				EventType:     "repeat",
				StartTime:     time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
				EndTime:       time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
				RepeatPattern: "weekly",
			},
		},
		{
			name: "one-off with repeat pattern",
			req: dto.CreateEventRequest{
				Title:         "Mismatch",
				EventType:     "once",
				StartTime:     time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
				EndTime:       time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
				RepeatPattern: "daily",
			},
		},
		{
			name: "start after end",
			req: dto.CreateEventRequest{
				Title:     "Inverted",
				EventType: "once",
				StartTime: time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "weekday out of range",
			req: dto.CreateEventRequest{
				Title:         "Bad day",
				EventType:     "repeat",
				StartTime:     time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
				EndTime:       time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
				RepeatPattern: "weekly",
				RepeatDays:    []int{7},
			},
		},
		{
			name: "days on non-weekday pattern",
			req: dto.CreateEventRequest{
				Title:         "Daily with days",
				EventType:     "repeat",
				StartTime:     time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
				EndTime:       time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
				RepeatPattern: "daily",
				RepeatDays:    []int{1},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, appErr := svc.CreateEvent(context.Background(), ownerID, &tc.req); appErr == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestUpdateEventFutureScopeSplitsSeries(t *testing.T) {
	repo := newFakeEventRepo()
	svc := newTestService(repo)
	ownerID := uuid.New()

	created := createWeeklyMondays(t, svc, ownerID)
	originalID := uuid.MustParse(created.ID)

	// 2024-06-10 is a Monday
	asOf := time.Date(2024, 6, 10, 8, 30, 0, 0, time.UTC)
	successor, appErr := svc.UpdateEvent(context.Background(), originalID, ownerID,
		&dto.UpdateEventRequest{Title: strPtr("Weekly math (new book)")}, dto.ScopeFuture, asOf)
	if appErr != nil {
		t.Fatalf("update future: %v", appErr)
	}

	if successor.ID == created.ID {
		t.Fatalf("future update must return a new template, not the original")
	}
	wantStart := time.Date(2024, 6, 10, 16, 0, 0, 0, time.UTC)
	if !successor.StartTime.Equal(wantStart) {
		t.Fatalf("expected successor start %v, got %v", wantStart, successor.StartTime)
	}

	original, appErr := svc.GetEventByID(context.Background(), originalID)
	if appErr != nil {
		t.Fatalf("get original: %v", appErr)
	}
	if original.RepeatUntil == nil || !original.RepeatUntil.Equal(date(2024, 6, 9)) {
		t.Fatalf("original must be frozen at 2024-06-09, got %v", original.RepeatUntil)
	}

	// Mondays before the pivot keep the old title; Mondays on and after it
	// come from the successor
	byDate := occurrencesByDate(t, svc, ownerID, date(2024, 6, 3), date(2024, 6, 17))
	if got := byDate["2024-06-03"].Title; got != "Weekly math" {
		t.Fatalf("pre-pivot occurrence must keep old title, got %q", got)
	}
	for _, d := range []string{"2024-06-10", "2024-06-17"} {
		occ, ok := byDate[d]
		if !ok {
			t.Fatalf("expected an occurrence on %s", d)
		}
		if occ.Title != "Weekly math (new book)" {
			t.Fatalf("post-pivot occurrence on %s must carry the patch, got %q", d, occ.Title)
		}
	}
}

func TestUpdateEventFutureScopeRejectsSingleEvent(t *testing.T) {
	repo := newFakeEventRepo()
	svc := newTestService(repo)
	ownerID := uuid.New()

	created, appErr := svc.CreateEvent(context.Background(), ownerID, &dto.CreateEventRequest{
		Title:     "One-off",
		EventType: "once",
		StartTime: time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 6, 5, 10, 0, 0, 0, time.UTC),
	})
	if appErr != nil {
		t.Fatalf("create: %v", appErr)
	}

	_, appErr = svc.UpdateEvent(context.Background(), uuid.MustParse(created.ID), ownerID,
		&dto.UpdateEventRequest{Title: strPtr("Renamed")}, dto.ScopeFuture, date(2024, 6, 10))
	if appErr == nil {
		t.Fatalf("future scope on a non-repeating event must fail")
	}

	// The rejection must happen before any write
	unchanged, getErr := svc.GetEventByID(context.Background(), uuid.MustParse(created.ID))
	if getErr != nil {
		t.Fatalf("get: %v", getErr)
	}
	if unchanged.Title != "One-off" {
		t.Fatalf("template must be untouched after rejected mutation, got %q", unchanged.Title)
	}
}

func TestDeleteEventFutureScopeTruncates(t *testing.T) {
	repo := newFakeEventRepo()
	svc := newTestService(repo)
	ownerID := uuid.New()

	created := createWeeklyMondays(t, svc, ownerID)
	eventID := uuid.MustParse(created.ID)

	asOf := date(2024, 6, 10)
	if appErr := svc.DeleteEvent(context.Background(), eventID, ownerID, dto.ScopeFuture, asOf); appErr != nil {
		t.Fatalf("delete future: %v", appErr)
	}

	// Template survives as history
	remaining, appErr := svc.GetEventByID(context.Background(), eventID)
	if appErr != nil {
		t.Fatalf("template must still exist after a future-scope delete: %v", appErr)
	}
	if remaining.RepeatUntil == nil || !remaining.RepeatUntil.Equal(asOf) {
		t.Fatalf("expected repeat_until %v, got %v", asOf, remaining.RepeatUntil)
	}

	byDate := occurrencesByDate(t, svc, ownerID, date(2024, 6, 3), date(2024, 6, 30))
	if _, ok := byDate["2024-06-03"]; !ok {
		t.Fatalf("occurrences before the cap must survive")
	}
	if _, ok := byDate["2024-06-17"]; ok {
		t.Fatalf("occurrences past the cap must stop")
	}
}

func TestDeleteEventAllScopeRemovesTemplate(t *testing.T) {
	repo := newFakeEventRepo()
	svc := newTestService(repo)
	ownerID := uuid.New()

	created := createWeeklyMondays(t, svc, ownerID)
	eventID := uuid.MustParse(created.ID)

	if appErr := svc.DeleteEvent(context.Background(), eventID, ownerID, dto.ScopeAll, date(2024, 6, 10)); appErr != nil {
		t.Fatalf("delete all: %v", appErr)
	}
	if _, appErr := svc.GetEventByID(context.Background(), eventID); appErr == nil {
		t.Fatalf("template must be gone after scope-all delete")
	}
}

func TestMutationsRequireOwnership(t *testing.T) {
	repo := newFakeEventRepo()
	svc := newTestService(repo)
	ownerID := uuid.New()

	created := createWeeklyMondays(t, svc, ownerID)
	eventID := uuid.MustParse(created.ID)
	stranger := uuid.New()

	if _, appErr := svc.UpdateEvent(context.Background(), eventID, stranger,
		&dto.UpdateEventRequest{Title: strPtr("Hijacked")}, dto.ScopeAll, date(2024, 6, 10)); appErr == nil {
		t.Fatalf("update by a non-owner must fail")
	}
	if appErr := svc.DeleteEvent(context.Background(), eventID, stranger, dto.ScopeAll, date(2024, 6, 10)); appErr == nil {
		t.Fatalf("delete by a non-owner must fail")
	}
}

func TestUpdateAllReplacesWeekdaySet(t *testing.T) {
	repo := newFakeEventRepo()
	svc := newTestService(repo)
	ownerID := uuid.New()

	created := createWeeklyMondays(t, svc, ownerID)
	eventID := uuid.MustParse(created.ID)

	updated, appErr := svc.UpdateEvent(context.Background(), eventID, ownerID,
		&dto.UpdateEventRequest{RepeatDays: []int{2, 4}}, dto.ScopeAll, date(2024, 6, 10))
	if appErr != nil {
		t.Fatalf("update: %v", appErr)
	}

	if len(updated.RepeatDays) != 2 || updated.RepeatDays[0] != 2 || updated.RepeatDays[1] != 4 {
		t.Fatalf("expected weekday set [2 4], got %v", updated.RepeatDays)
	}
}

func TestGetOccurrencesMergesAcrossTemplates(t *testing.T) {
	repo := newFakeEventRepo()
	svc := newTestService(repo)
	ownerID := uuid.New()

	createWeeklyMondays(t, svc, ownerID)
	if _, appErr := svc.CreateEvent(context.Background(), ownerID, &dto.CreateEventRequest{
		Title:     "Parent meeting",
		EventType: "once",
		StartTime: time.Date(2024, 6, 5, 18, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 6, 5, 19, 0, 0, 0, time.UTC),
	}); appErr != nil {
		t.Fatalf("create one-off: %v", appErr)
	}

	occurrences, appErr := svc.GetOccurrences(context.Background(), OccurrenceQuery{
		WindowStart: date(2024, 6, 1),
		WindowEnd:   date(2024, 6, 14),
		OwnerID:     &ownerID,
	})
	if appErr != nil {
		t.Fatalf("get occurrences: %v", appErr)
	}

	// Mondays 06-03 and 06-10 interleaved with the one-off on 06-05
	wantTitles := []string{"Weekly math", "Parent meeting", "Weekly math"}
	if len(occurrences) != len(wantTitles) {
		t.Fatalf("expected %d occurrences, got %d", len(wantTitles), len(occurrences))
	}
	for i, occ := range occurrences {
		if occ.Title != wantTitles[i] {
			t.Fatalf("position %d: expected %q, got %q", i, wantTitles[i], occ.Title)
		}
		if i > 0 && occurrences[i-1].StartTime.After(occ.StartTime) {
			t.Fatalf("merged occurrences must be sorted ascending")
		}
	}
}

func TestDefaultWindowCoversCalendarMonth(t *testing.T) {
	start, end := DefaultWindow(time.Date(2024, 2, 14, 13, 0, 0, 0, time.UTC))
	if !start.Equal(date(2024, 2, 1)) {
		t.Fatalf("expected window start 2024-02-01, got %v", start)
	}
	if !end.Equal(date(2024, 2, 29)) {
		t.Fatalf("expected window end 2024-02-29, got %v", end)
	}
}
