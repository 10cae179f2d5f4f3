package model

import (
	"time"
)

type RecurrencePattern string

const (
	RecurrenceDaily   RecurrencePattern = "daily"
	RecurrenceWeekly  RecurrencePattern = "weekly"
	RecurrenceMonthly RecurrencePattern = "monthly"
	RecurrenceYearly  RecurrencePattern = "yearly"
)

type Recurrence struct {
	Enabled  bool              `json:"enabled"`
	Pattern  RecurrencePattern `json:"pattern"`
	Interval int               `json:"interval"`
	// DaysOfWeek holds weekday numbers 0 (Sunday) through 6 (Saturday),
	// used by the weekly pattern.
	DaysOfWeek     []int      `json:"days_of_week,omitempty"`
	DayOfMonth     int        `json:"day_of_month,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	MaxOccurrences int        `json:"max_occurrences,omitempty"`
}

func (r Recurrence) Clone() Recurrence {
	out := r
	out.DaysOfWeek = append([]int(nil), r.DaysOfWeek...)
	if r.EndDate != nil {
		end := *r.EndDate
		out.EndDate = &end
	}
	return out
}
