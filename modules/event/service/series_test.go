package service

import (
	"testing"
	"time"

	"tutortrack/modules/event/dto"
	"tutortrack/modules/event/entity"
)

func strPtr(s string) *string { return &s }

func weeklyTemplate() entity.Event {
	return entity.Event{
		Title:         "Physics tuition",
		EventType:     entity.EventTypeRepeat,
		StartTime:     time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2024, 3, 4, 10, 30, 0, 0, time.UTC),
		RepeatPattern: entity.RepeatPatternWeekly,
	}
}

func TestFreezeSeriesCapsAtDayBefore(t *testing.T) {
	asOf := time.Date(2024, 6, 10, 14, 35, 0, 0, time.UTC)

	frozen := freezeSeries(weeklyTemplate(), asOf)

	if frozen.RepeatUntil == nil {
		t.Fatalf("freeze must set repeat_until")
	}
	if want := date(2024, 6, 9); !frozen.RepeatUntil.Equal(want) {
		t.Fatalf("expected repeat_until %v, got %v", want, *frozen.RepeatUntil)
	}
	if !frozen.StartTime.Equal(weeklyTemplate().StartTime) {
		t.Fatalf("freeze must not move the template anchor")
	}
}

func TestTruncateSeriesCapsAtDate(t *testing.T) {
	asOf := time.Date(2024, 6, 10, 14, 35, 0, 0, time.UTC)

	truncated := truncateSeries(weeklyTemplate(), asOf)

	if truncated.RepeatUntil == nil {
		t.Fatalf("truncate must set repeat_until")
	}
	if want := date(2024, 6, 10); !truncated.RepeatUntil.Equal(want) {
		t.Fatalf("expected repeat_until %v, got %v", want, *truncated.RepeatUntil)
	}
}

func TestForkSuccessorReanchorsAndKeepsDuration(t *testing.T) {
	original := weeklyTemplate()
	asOf := time.Date(2024, 6, 10, 23, 50, 0, 0, time.UTC)
	patch := &dto.UpdateEventRequest{Title: strPtr("Physics tuition (new room)")}

	successor := forkSuccessor(original, patch, asOf)

	wantStart := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	if !successor.StartTime.Equal(wantStart) {
		t.Fatalf("expected successor start %v, got %v", wantStart, successor.StartTime)
	}
	if got, want := successor.EndTime.Sub(successor.StartTime), 90*time.Minute; got != want {
		t.Fatalf("expected duration %v, got %v", want, got)
	}
	if successor.Title != "Physics tuition (new room)" {
		t.Fatalf("patch must apply to the successor, got %q", successor.Title)
	}
	if successor.RepeatPattern != entity.RepeatPatternWeekly {
		t.Fatalf("unpatched fields must carry over, got %v", successor.RepeatPattern)
	}
	if original.Title != "Physics tuition" {
		t.Fatalf("fork must not mutate the original")
	}
}

func TestForkSuccessorUsesPatchedTimeOfDay(t *testing.T) {
	original := weeklyTemplate()
	asOf := date(2024, 6, 10)
	newStart := time.Date(2024, 3, 4, 15, 30, 0, 0, time.UTC)
	patch := &dto.UpdateEventRequest{StartTime: &newStart}

	successor := forkSuccessor(original, patch, asOf)

	wantStart := time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)
	if !successor.StartTime.Equal(wantStart) {
		t.Fatalf("expected successor start %v, got %v", wantStart, successor.StartTime)
	}
	// Duration is still the original template's span
	wantEnd := wantStart.Add(90 * time.Minute)
	if !successor.EndTime.Equal(wantEnd) {
		t.Fatalf("expected successor end %v, got %v", wantEnd, successor.EndTime)
	}
}

func TestApplyPatchTouchesOnlySetFields(t *testing.T) {
	ev := weeklyTemplate()
	desc := "moved online"
	until := date(2024, 12, 31)
	patch := &dto.UpdateEventRequest{
		Description: &desc,
		RepeatUntil: &until,
	}

	applyPatch(&ev, patch)

	if ev.Description == nil || *ev.Description != "moved online" {
		t.Fatalf("description patch not applied")
	}
	if ev.RepeatUntil == nil || !ev.RepeatUntil.Equal(until) {
		t.Fatalf("repeat_until patch not applied")
	}
	if ev.Title != "Physics tuition" || ev.RepeatPattern != entity.RepeatPatternWeekly {
		t.Fatalf("unset fields must stay untouched")
	}
}
