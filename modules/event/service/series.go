package service

import (
	"time"

	"tutortrack/modules/event/dto"
	"tutortrack/modules/event/entity"
)

// Pure transforms behind the series mutation protocol. The "edit future
// occurrences only" operation is a manual copy-on-write: the original
// template is frozen so it stops generating from the pivot date, and a
// successor template carries the edit forward. Both transforms take the
// operation date explicitly so the logic never reads a global clock.

// freezeSeries caps the template at the day before asOf, so no occurrence
// on or after asOf is ever generated from it again. The template itself is
// otherwise untouched, which keeps past occurrences historically accurate.
func freezeSeries(ev entity.Event, asOf time.Time) entity.Event {
	until := dateOnly(asOf).AddDate(0, 0, -1)
	ev.RepeatUntil = &until
	return ev
}

// truncateSeries caps the template at asOf itself. Used by delete-future:
// occurrences before asOf stay expandable, occurrences from asOf on stop.
func truncateSeries(ev entity.Event, asOf time.Time) entity.Event {
	until := dateOnly(asOf)
	ev.RepeatUntil = &until
	return ev
}

// forkSuccessor builds the replacement template for an edit-future
// operation: a copy of the original with the patch applied, re-anchored so
// its series starts on asOf. Time-of-day comes from the (possibly patched)
// start time; the span between start and end is the original's, so the
// session duration survives the re-anchoring.
func forkSuccessor(original entity.Event, patch *dto.UpdateEventRequest, asOf time.Time) entity.Event {
	duration := original.EndTime.Sub(original.StartTime)

	successor := original
	applyPatch(&successor, patch)

	successor.StartTime = combine(dateOnly(asOf), successor.StartTime)
	successor.EndTime = successor.StartTime.Add(duration)

	return successor
}

// applyPatch copies the set fields of the patch onto the event
func applyPatch(ev *entity.Event, patch *dto.UpdateEventRequest) {
	if patch.Title != nil {
		ev.Title = *patch.Title
	}
	if patch.Description != nil {
		ev.Description = patch.Description
	}
	if patch.EventType != nil {
		ev.EventType = entity.EventType(*patch.EventType)
	}
	if patch.StartTime != nil {
		ev.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		ev.EndTime = *patch.EndTime
	}
	if patch.RepeatPattern != nil {
		ev.RepeatPattern = entity.RepeatPattern(*patch.RepeatPattern)
	}
	if patch.RepeatUntil != nil {
		ev.RepeatUntil = patch.RepeatUntil
	}
}
