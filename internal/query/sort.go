package query

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"taskboard/internal/model"
)

type SortKey string

const (
	SortManual    SortKey = "manual"
	SortTitle     SortKey = "title"
	SortCreatedAt SortKey = "createdAt"
	SortUpdatedAt SortKey = "updatedAt"
	SortDueDate   SortKey = "dueDate"
	SortPriority  SortKey = "priority"
)

// Sort returns a re-ordered copy of the tasks; the input is never mutated.
// Manual preserves the stored order, which is itself meaningful state.
func Sort(tasks []model.Task, key SortKey) []model.Task {
	out := copyTasks(tasks)
	if less := Less(key); less != nil {
		sort.SliceStable(out, func(i, j int) bool {
			return less(&out[i], &out[j])
		})
	}
	return out
}

// Less returns the comparator for the sort key, or nil for manual order and
// unknown keys.
func Less(key SortKey) func(a, b *model.Task) bool {
	switch key {
	case SortTitle:
		coll := collate.New(language.Und, collate.Loose)
		return func(a, b *model.Task) bool {
			return coll.CompareString(a.Title, b.Title) < 0
		}
	case SortCreatedAt:
		return func(a, b *model.Task) bool {
			return a.CreatedAt.After(b.CreatedAt)
		}
	case SortUpdatedAt:
		return func(a, b *model.Task) bool {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
	case SortDueDate:
		return func(a, b *model.Task) bool {
			// Tasks without a due date sort to the end, stable among
			// themselves.
			if a.DueDate == nil {
				return false
			}
			if b.DueDate == nil {
				return true
			}
			return a.DueDate.Before(*b.DueDate)
		}
	case SortPriority:
		return func(a, b *model.Task) bool {
			if wa, wb := a.Priority.Weight(), b.Priority.Weight(); wa != wb {
				return wa < wb
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
	default:
		return nil
	}
}
