package view

import (
	"time"

	"taskboard/internal/model"
	"taskboard/internal/recurrence"
)

type EntryKind string

const (
	// EntryReal is a stored task at its stored due date.
	EntryReal EntryKind = "real"
	// EntryVirtual is a synthetic projection of a recurring task's future
	// occurrence. It must never be persisted or mutated as a stored task.
	EntryVirtual EntryKind = "virtual"
)

type Entry struct {
	Kind EntryKind  `json:"kind"`
	Task model.Task `json:"task"`
	Due  time.Time  `json:"due"`
}

const dayKeyFormat = "2006-01-02"

// Calendar groups the board's tasks by due day over [start, end), expanding
// recurring tasks into virtual occurrences. Keys use the 2006-01-02 layout.
func Calendar(b model.Board, start, end time.Time) map[string][]Entry {
	out := make(map[string][]Entry)
	if !start.Before(end) {
		return out
	}

	add := func(e Entry) {
		key := e.Due.Format(dayKeyFormat)
		out[key] = append(out[key], e)
	}

	for i := range b.Columns {
		for _, t := range b.Columns[i].Tasks {
			if t.DueDate == nil {
				continue
			}
			if due := *t.DueDate; !due.Before(start) && due.Before(end) {
				add(Entry{Kind: EntryReal, Task: t, Due: due})
			}
			for _, occ := range recurrence.Expand(t, start, end) {
				virtual := t.Clone()
				due := occ
				virtual.DueDate = &due
				add(Entry{Kind: EntryVirtual, Task: virtual, Due: occ})
			}
		}
	}
	return out
}
