package service

import (
	"time"

	"tutortrack/core/errors"
	"tutortrack/modules/event/entity"
)

// RecurrenceExpander turns an event template into the concrete occurrences
// that fall inside a query window. It is pure: no I/O, no clock reads, and
// the same inputs always produce the same output, so results are safe to
// cache and the expander safe to share across goroutines.
type RecurrenceExpander struct{}

// NewRecurrenceExpander creates an expander
func NewRecurrenceExpander() *RecurrenceExpander {
	return &RecurrenceExpander{}
}

// dateRule enumerates the candidate dates of one repeat pattern inside
// [from, to]. Each pattern keeps its own policy isolated behind this
// interface (notably monthly's skip-on-missing-day rule).
type dateRule interface {
	datesIn(from, to time.Time) []time.Time
}

// dailyRule emits every calendar date in range
type dailyRule struct{}

func (dailyRule) datesIn(from, to time.Time) []time.Time {
	var dates []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// weekdayRule emits dates whose weekday is in the set. Go's time.Weekday is
// already 0=Sunday..6=Saturday, matching the stored day_of_week values.
type weekdayRule struct {
	days map[time.Weekday]bool
}

func (r weekdayRule) datesIn(from, to time.Time) []time.Time {
	var dates []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if r.days[d.Weekday()] {
			dates = append(dates, d)
		}
	}
	return dates
}

// monthlyRule emits the template's day-of-month in every month it exists in.
// Months without that day (the 31st in a 30-day month, the 29th..31st in
// February) are skipped entirely, never clamped to the last valid day.
type monthlyRule struct {
	dayOfMonth int
}

func (r monthlyRule) datesIn(from, to time.Time) []time.Time {
	var dates []time.Time

	cursor := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, from.Location())
	for !cursor.After(to) {
		candidate := time.Date(cursor.Year(), cursor.Month(), r.dayOfMonth, 0, 0, 0, 0, cursor.Location())
		// time.Date normalizes overflow (Feb 30 -> Mar 2); a shifted month
		// means the day does not exist in this month
		if candidate.Month() == cursor.Month() && !candidate.Before(from) && !candidate.After(to) {
			dates = append(dates, candidate)
		}
		cursor = cursor.AddDate(0, 1, 0)
	}

	return dates
}

// Expand generates the occurrences of an event template within
// [windowStart, windowEnd] (inclusive, date precision), in ascending order.
// repeatDays is the stored weekday set for weekly/custom_days templates.
func (re *RecurrenceExpander) Expand(
	ev *entity.Event,
	repeatDays []int,
	windowStart time.Time,
	windowEnd time.Time,
) ([]entity.Occurrence, *errors.AppError) {

	if !ev.StartTime.Before(ev.EndTime) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Event start time must be before end time", nil)
	}
	for _, day := range repeatDays {
		if day < 0 || day > 6 {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Repeat days must be between 0 (Sunday) and 6 (Saturday)", nil)
		}
	}

	windowStart = dateOnly(windowStart)
	windowEnd = dateOnly(windowEnd)
	eventDate := dateOnly(ev.StartTime)

	// Single events: one occurrence when the anchor date is inside the window
	if !ev.RepeatPattern.Repeats() {
		if !eventDate.Before(windowStart) && !eventDate.After(windowEnd) {
			return []entity.Occurrence{re.occurrence(ev, eventDate, false)}, nil
		}
		return []entity.Occurrence{}, nil
	}

	// Recurring events: bound the iteration by the template's own lifespan
	from := windowStart
	if eventDate.After(from) {
		from = eventDate
	}
	to := windowEnd
	if ev.RepeatUntil != nil {
		if until := dateOnly(*ev.RepeatUntil); until.Before(to) {
			to = until
		}
	}

	rule := re.ruleFor(ev, repeatDays)
	dates := rule.datesIn(from, to)

	occurrences := make([]entity.Occurrence, 0, len(dates))
	for _, d := range dates {
		occurrences = append(occurrences, re.occurrence(ev, d, true))
	}
	return occurrences, nil
}

// ruleFor selects the date rule for the template's pattern
func (re *RecurrenceExpander) ruleFor(ev *entity.Event, repeatDays []int) dateRule {
	switch ev.RepeatPattern {
	case entity.RepeatPatternDaily:
		return dailyRule{}
	case entity.RepeatPatternWeekly:
		days := make(map[time.Weekday]bool, len(repeatDays))
		for _, d := range repeatDays {
			days[time.Weekday(d)] = true
		}
		if len(days) == 0 {
			// Weekly with no stored days falls back to the weekday of the
			// template's own start date
			days[ev.StartTime.Weekday()] = true
		}
		return weekdayRule{days: days}
	case entity.RepeatPatternCustomDays:
		// No fallback here: an empty set yields zero occurrences
		days := make(map[time.Weekday]bool, len(repeatDays))
		for _, d := range repeatDays {
			days[time.Weekday(d)] = true
		}
		return weekdayRule{days: days}
	case entity.RepeatPatternMonthly:
		return monthlyRule{dayOfMonth: ev.StartTime.Day()}
	default:
		return weekdayRule{days: nil}
	}
}

// occurrence projects the template onto one concrete date, preserving the
// template's time-of-day on both ends
func (re *RecurrenceExpander) occurrence(ev *entity.Event, date time.Time, generated bool) entity.Occurrence {
	occ := entity.Occurrence{
		ID:                  ev.ID,
		OwnerID:             ev.OwnerID,
		Title:               ev.Title,
		Description:         ev.Description,
		EventType:           ev.EventType,
		StartTime:           ev.StartTime,
		EndTime:             ev.EndTime,
		RepeatPattern:       ev.RepeatPattern,
		RepeatUntil:         ev.RepeatUntil,
		CreatedAt:           ev.CreatedAt,
		UpdatedAt:           ev.UpdatedAt,
		IsGeneratedInstance: generated,
		OriginalDate:        dateOnly(ev.StartTime),
	}

	if generated {
		instanceDate := date
		occ.InstanceDate = &instanceDate
		occ.StartTime = combine(date, ev.StartTime)
		occ.EndTime = combine(date, ev.EndTime)
	}

	return occ
}

// dateOnly truncates a timestamp to midnight in its own location
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// combine puts the time-of-day of tod onto the calendar date of date
func combine(date time.Time, tod time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		tod.Hour(), tod.Minute(), tod.Second(), tod.Nanosecond(), tod.Location())
}
