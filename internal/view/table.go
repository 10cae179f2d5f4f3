// Package view builds read-only projections of a board snapshot: flat table
// rows and calendar buckets with recurrence expansion.
package view

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/model"
	"taskboard/internal/query"
)

// Row is a task flattened out of its column for table display.
type Row struct {
	Task        model.Task `json:"task"`
	ColumnID    uuid.UUID  `json:"column_id"`
	ColumnTitle string     `json:"column_title"`
}

// Table flattens the board's columns into rows, filtered and sorted. With
// the manual sort key rows keep column order then stored task order.
func Table(b model.Board, f query.TaskFilter, key query.SortKey, now time.Time) []Row {
	rows := make([]Row, 0, 16)
	for i := range b.Columns {
		col := &b.Columns[i]
		for _, t := range query.Filter(col.Tasks, f, now) {
			rows = append(rows, Row{
				Task:        t,
				ColumnID:    col.ID,
				ColumnTitle: col.Title,
			})
		}
	}

	if less := query.Less(key); less != nil {
		sort.SliceStable(rows, func(i, j int) bool {
			return less(&rows[i].Task, &rows[j].Task)
		})
	}
	return rows
}
