package service

import (
	"reflect"
	"testing"
	"time"

	"tutortrack/modules/event/entity"

	"github.com/google/uuid"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func repeatingEvent(pattern entity.RepeatPattern, start, end time.Time, until *time.Time) *entity.Event {
	return &entity.Event{
		ID:            uuid.New(),
		OwnerID:       uuid.New(),
		Title:         "Math tuition",
		EventType:     entity.EventTypeRepeat,
		StartTime:     start,
		EndTime:       end,
		RepeatPattern: pattern,
		RepeatUntil:   until,
	}
}

func singleEvent(start, end time.Time) *entity.Event {
	ev := repeatingEvent(entity.RepeatPatternNone, start, end, nil)
	ev.EventType = entity.EventTypeOnce
	return ev
}

func instanceDates(t *testing.T, occurrences []entity.Occurrence) []string {
	t.Helper()
	dates := make([]string, 0, len(occurrences))
	for _, occ := range occurrences {
		if occ.InstanceDate == nil {
			t.Fatalf("expected generated instance, got none for %v", occ.StartTime)
		}
		dates = append(dates, occ.InstanceDate.Format("2006-01-02"))
	}
	return dates
}

func TestExpandSingleEvent(t *testing.T) {
	expander := NewRecurrenceExpander()
	ev := singleEvent(
		time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC),
	)

	inside, appErr := expander.Expand(ev, nil, date(2024, 3, 1), date(2024, 3, 31))
	if appErr != nil {
		t.Fatalf("expand: %v", appErr)
	}
	if len(inside) != 1 {
		t.Fatalf("expected 1 occurrence inside window, got %d", len(inside))
	}
	if inside[0].IsGeneratedInstance {
		t.Fatalf("single event occurrence must not be marked generated")
	}
	if !inside[0].StartTime.Equal(ev.StartTime) || !inside[0].EndTime.Equal(ev.EndTime) {
		t.Fatalf("single event occurrence must keep template times")
	}
	if !inside[0].OriginalDate.Equal(date(2024, 3, 10)) {
		t.Fatalf("expected original date 2024-03-10, got %v", inside[0].OriginalDate)
	}

	outside, appErr := expander.Expand(ev, nil, date(2024, 4, 1), date(2024, 4, 30))
	if appErr != nil {
		t.Fatalf("expand: %v", appErr)
	}
	if len(outside) != 0 {
		t.Fatalf("expected no occurrences outside window, got %d", len(outside))
	}
}

func TestExpandDailyBoundedByRepeatUntil(t *testing.T) {
	until := date(2024, 3, 12)
	ev := repeatingEvent(entity.RepeatPatternDaily,
		time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC),
		&until,
	)

	occurrences, appErr := NewRecurrenceExpander().Expand(ev, nil, date(2024, 3, 1), date(2024, 3, 31))
	if appErr != nil {
		t.Fatalf("expand: %v", appErr)
	}

	want := []string{"2024-03-10", "2024-03-11", "2024-03-12"}
	if got := instanceDates(t, occurrences); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected dates %v, got %v", want, got)
	}

	for _, occ := range occurrences {
		if occ.StartTime.Hour() != 9 || occ.EndTime.Hour() != 10 {
			t.Fatalf("occurrence must preserve time-of-day, got %v - %v", occ.StartTime, occ.EndTime)
		}
		if !occ.IsGeneratedInstance {
			t.Fatalf("daily occurrences must be marked generated")
		}
	}
}

func TestExpandWeeklyWithDaySet(t *testing.T) {
	// 2024-03-04 is a Monday; days 1,3 are Monday and Wednesday
	ev := repeatingEvent(entity.RepeatPatternWeekly,
		time.Date(2024, 3, 4, 16, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC),
		nil,
	)

	occurrences, appErr := NewRecurrenceExpander().Expand(ev, []int{1, 3}, date(2024, 3, 1), date(2024, 3, 15))
	if appErr != nil {
		t.Fatalf("expand: %v", appErr)
	}

	want := []string{"2024-03-04", "2024-03-06", "2024-03-11", "2024-03-13"}
	if got := instanceDates(t, occurrences); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected dates %v, got %v", want, got)
	}
}

func TestExpandWeeklyFallsBackToStartWeekday(t *testing.T) {
	ev := repeatingEvent(entity.RepeatPatternWeekly,
		time.Date(2024, 3, 4, 16, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC),
		nil,
	)

	occurrences, appErr := NewRecurrenceExpander().Expand(ev, nil, date(2024, 3, 1), date(2024, 3, 15))
	if appErr != nil {
		t.Fatalf("expand: %v", appErr)
	}

	// No stored days: only the start date's weekday (Monday) recurs
	want := []string{"2024-03-04", "2024-03-11"}
	if got := instanceDates(t, occurrences); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected dates %v, got %v", want, got)
	}
}

func TestExpandCustomDaysEmptySetYieldsNothing(t *testing.T) {
	ev := repeatingEvent(entity.RepeatPatternCustomDays,
		time.Date(2024, 3, 4, 16, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC),
		nil,
	)

	occurrences, appErr := NewRecurrenceExpander().Expand(ev, nil, date(2024, 3, 1), date(2024, 3, 31))
	if appErr != nil {
		t.Fatalf("expand: %v", appErr)
	}
	if len(occurrences) != 0 {
		t.Fatalf("custom_days with empty set must yield zero occurrences, got %d", len(occurrences))
	}
}

func TestExpandMonthlySkipsShortMonths(t *testing.T) {
	ev := repeatingEvent(entity.RepeatPatternMonthly,
		time.Date(2024, 1, 31, 11, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC),
		nil,
	)

	occurrences, appErr := NewRecurrenceExpander().Expand(ev, nil, date(2024, 1, 1), date(2024, 4, 30))
	if appErr != nil {
		t.Fatalf("expand: %v", appErr)
	}

	// February (29 days in 2024) and April (30 days) have no 31st and are
	// skipped entirely, never clamped
	want := []string{"2024-01-31", "2024-03-31"}
	if got := instanceDates(t, occurrences); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected dates %v, got %v", want, got)
	}
}

func TestExpandMonthlyFebruary29(t *testing.T) {
	ev := repeatingEvent(entity.RepeatPatternMonthly,
		time.Date(2023, 12, 29, 8, 0, 0, 0, time.UTC),
		time.Date(2023, 12, 29, 9, 0, 0, 0, time.UTC),
		nil,
	)

	occurrences, appErr := NewRecurrenceExpander().Expand(ev, nil, date(2024, 1, 1), date(2024, 3, 31))
	if appErr != nil {
		t.Fatalf("expand: %v", appErr)
	}

	// 2024 is a leap year, so February keeps its 29th
	want := []string{"2024-01-29", "2024-02-29", "2024-03-29"}
	if got := instanceDates(t, occurrences); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected dates %v, got %v", want, got)
	}
}

func TestExpandRejectsMalformedInput(t *testing.T) {
	expander := NewRecurrenceExpander()

	inverted := repeatingEvent(entity.RepeatPatternDaily,
		time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
		nil,
	)
	if _, appErr := expander.Expand(inverted, nil, date(2024, 3, 1), date(2024, 3, 31)); appErr == nil {
		t.Fatalf("expected validation error for start >= end")
	}

	valid := repeatingEvent(entity.RepeatPatternWeekly,
		time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
		nil,
	)
	if _, appErr := expander.Expand(valid, []int{7}, date(2024, 3, 1), date(2024, 3, 31)); appErr == nil {
		t.Fatalf("expected validation error for weekday outside 0..6")
	}
	if _, appErr := expander.Expand(valid, []int{-1}, date(2024, 3, 1), date(2024, 3, 31)); appErr == nil {
		t.Fatalf("expected validation error for negative weekday")
	}
}

func TestExpandIsDeterministic(t *testing.T) {
	ev := repeatingEvent(entity.RepeatPatternWeekly,
		time.Date(2024, 3, 4, 16, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC),
		nil,
	)
	expander := NewRecurrenceExpander()

	first, appErr := expander.Expand(ev, []int{1, 3}, date(2024, 3, 1), date(2024, 3, 31))
	if appErr != nil {
		t.Fatalf("expand: %v", appErr)
	}
	second, appErr := expander.Expand(ev, []int{1, 3}, date(2024, 3, 1), date(2024, 3, 31))
	if appErr != nil {
		t.Fatalf("expand: %v", appErr)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs must yield identical output")
	}
}

func TestExpandWindowMonotonicity(t *testing.T) {
	ev := repeatingEvent(entity.RepeatPatternDaily,
		time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		nil,
	)
	expander := NewRecurrenceExpander()

	narrow, appErr := expander.Expand(ev, nil, date(2024, 3, 10), date(2024, 3, 15))
	if appErr != nil {
		t.Fatalf("expand: %v", appErr)
	}
	wide, appErr := expander.Expand(ev, nil, date(2024, 3, 1), date(2024, 3, 31))
	if appErr != nil {
		t.Fatalf("expand: %v", appErr)
	}

	wideDates := map[string]bool{}
	for _, d := range instanceDates(t, wide) {
		wideDates[d] = true
	}
	for _, d := range instanceDates(t, narrow) {
		if !wideDates[d] {
			t.Fatalf("date %s from the narrow window missing from the wide window", d)
		}
	}
}

func TestExpandOccurrenceInvariants(t *testing.T) {
	windowStart := date(2024, 3, 1)
	windowEnd := date(2024, 3, 31)

	until := date(2024, 3, 20)
	events := []*entity.Event{
		repeatingEvent(entity.RepeatPatternDaily,
			time.Date(2024, 2, 20, 9, 0, 0, 0, time.UTC),
			time.Date(2024, 2, 20, 10, 30, 0, 0, time.UTC),
			&until),
		repeatingEvent(entity.RepeatPatternWeekly,
			time.Date(2024, 3, 4, 16, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC),
			nil),
		repeatingEvent(entity.RepeatPatternMonthly,
			time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
			nil),
	}

	expander := NewRecurrenceExpander()
	for _, ev := range events {
		occurrences, appErr := expander.Expand(ev, []int{1, 3}, windowStart, windowEnd)
		if appErr != nil {
			t.Fatalf("expand %s: %v", ev.RepeatPattern, appErr)
		}

		var prev time.Time
		for _, occ := range occurrences {
			if !occ.StartTime.Before(occ.EndTime) {
				t.Fatalf("%s: occurrence start must precede end: %v / %v", ev.RepeatPattern, occ.StartTime, occ.EndTime)
			}
			if occ.InstanceDate.Before(windowStart) || occ.InstanceDate.After(windowEnd) {
				t.Fatalf("%s: instance date %v escapes window", ev.RepeatPattern, occ.InstanceDate)
			}
			if occ.StartTime.Before(prev) {
				t.Fatalf("%s: occurrences must be ascending", ev.RepeatPattern)
			}
			prev = occ.StartTime
		}
	}
}
