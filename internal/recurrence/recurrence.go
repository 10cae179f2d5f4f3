// Package recurrence computes the next due date for recurring tasks and
// expands virtual occurrences for calendar display.
package recurrence

import (
	"time"

	"taskboard/internal/model"
)

// expansionCap bounds the occurrence walk for open-ended rules.
const expansionCap = 1000

// Next computes the occurrence following due under the given rule. The
// second return is false when the rule is disabled or its pattern unknown.
func Next(r model.Recurrence, due time.Time) (time.Time, bool) {
	if !r.Enabled {
		return time.Time{}, false
	}
	interval := r.Interval
	if interval < 1 {
		interval = 1
	}

	switch r.Pattern {
	case model.RecurrenceDaily:
		return due.AddDate(0, 0, interval), true
	case model.RecurrenceWeekly:
		return nextWeekly(r, due, interval), true
	case model.RecurrenceMonthly:
		day := r.DayOfMonth
		if day < 1 {
			day = due.Day()
		}
		return addMonthsClamped(due, interval, day), true
	case model.RecurrenceYearly:
		return addMonthsClamped(due, 12*interval, due.Day()), true
	}
	return time.Time{}, false
}

// Done reports whether the rule terminates before the computed next
// occurrence: either the next date passes the end date, or the occurrence
// count after increment meets the maximum.
func Done(r model.Recurrence, next time.Time, count int) bool {
	if r.EndDate != nil && next.After(*r.EndDate) {
		return true
	}
	if r.MaxOccurrences > 0 && count >= r.MaxOccurrences {
		return true
	}
	return false
}

// Expand produces the virtual due dates of a recurring task inside
// [start, end), strictly after the task's stored due date so the real
// occurrence is never duplicated. The result is recomputed fresh per call.
func Expand(t model.Task, start, end time.Time) []time.Time {
	if !t.IsRecurring() || t.DueDate == nil || !start.Before(end) {
		return nil
	}

	r := *t.Recurrence
	var out []time.Time
	cur := *t.DueDate
	count := t.OccurrenceCount
	if count < 1 {
		count = 1
	}

	for i := 0; i < expansionCap; i++ {
		next, ok := Next(r, cur)
		if !ok || Done(r, next, count+1) {
			break
		}
		if !next.Before(end) {
			break
		}
		if !next.Before(start) {
			out = append(out, next)
		}
		cur = next
		count++
	}
	return out
}

func nextWeekly(r model.Recurrence, due time.Time, interval int) time.Time {
	if len(r.DaysOfWeek) == 0 {
		return due.AddDate(0, 0, 7*interval)
	}

	allowed := make(map[time.Weekday]bool, len(r.DaysOfWeek))
	for _, d := range r.DaysOfWeek {
		if d >= 0 && d <= 6 {
			allowed[time.Weekday(d)] = true
		}
	}
	if len(allowed) == 0 {
		return due.AddDate(0, 0, 7*interval)
	}

	candidate := due.AddDate(0, 0, 1)
	for i := 0; i < 7; i++ {
		if allowed[candidate.Weekday()] {
			break
		}
		candidate = candidate.AddDate(0, 0, 1)
	}

	// A candidate in a later calendar week skips the remaining interval;
	// a same-week candidate is the next occurrence regardless of interval.
	if interval > 1 && !weekStart(candidate).Equal(weekStart(due)) {
		candidate = candidate.AddDate(0, 0, 7*(interval-1))
	}
	return candidate
}

// weekStart truncates to the Sunday beginning the date's week.
func weekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// addMonthsClamped advances by the given number of months keeping the clock
// time, with the day clamped to the target month's length.
func addMonthsClamped(t time.Time, months, day int) time.Time {
	y, m, _ := t.Date()
	first := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month(), t.Location()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
