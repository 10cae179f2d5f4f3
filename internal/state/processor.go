package state

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/model"
	"taskboard/internal/recurrence"
)

// defaultColumns are created with every new board. The last one is the
// terminal column.
var defaultColumns = []string{"To Do", "In Progress", "Complete"}

// Processor applies commands to board snapshots. The clock and id generator
// are injectable so command effects are deterministic under test.
type Processor struct {
	now   func() time.Time
	newID func() uuid.UUID
}

func NewProcessor(now func() time.Time, newID func() uuid.UUID) *Processor {
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = uuid.New
	}
	return &Processor{now: now, newID: newID}
}

// Apply transforms a snapshot with a single command. The input state is never
// mutated; on error the input state is returned unchanged.
func (p *Processor) Apply(s State, cmd Command) (State, error) {
	next := s.Clone()

	var err error
	switch c := cmd.(type) {
	case CreateBoard:
		next, err = p.createBoard(next, c)
	case SetCurrentBoard:
		next, err = p.setCurrentBoard(next, c)
	case UpdateBoard:
		next, err = p.updateBoard(next, c)
	case DeleteBoard:
		next, err = p.deleteBoard(next, c)
	case CreateColumn:
		next, err = p.createColumn(next, c)
	case UpdateColumn:
		next, err = p.updateColumn(next, c)
	case DeleteColumn:
		next, err = p.deleteColumn(next, c)
	case CreateTask:
		next, err = p.createTask(next, c)
	case UpdateTask:
		next, err = p.updateTask(next, c)
	case DeleteTask:
		next, err = p.deleteTask(next, c)
	case MoveTask:
		next, err = p.moveTask(next, c)
	case ClearCompletedTasks:
		next, err = p.clearCompletedTasks(next)
	case AddSubTask:
		next, err = p.addSubTask(next, c)
	case ToggleSubTask:
		next, err = p.toggleSubTask(next, c)
	case DeleteSubTask:
		next, err = p.deleteSubTask(next, c)
	case ImportBoards:
		next, err = p.importBoards(next, c)
	case CheckOverdueRecurringTasks:
		next, err = p.checkOverdueRecurringTasks(next)
	default:
		err = fmt.Errorf("unknown command type %T", cmd)
	}

	if err != nil {
		return s, err
	}
	return next, nil
}

func (p *Processor) createBoard(s State, c CreateBoard) (State, error) {
	if strings.TrimSpace(c.Title) == "" {
		return s, ErrBlankTitle
	}

	now := p.now()
	board := model.Board{
		ID:        p.newID(),
		Title:     c.Title,
		Columns:   make([]model.Column, 0, len(defaultColumns)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, title := range defaultColumns {
		board.Columns = append(board.Columns, model.Column{
			ID:            p.newID(),
			Title:         title,
			Tasks:         []model.Task{},
			DeletionState: model.ColumnActive,
		})
	}

	s.Boards = append(s.Boards, board)
	s.CurrentBoardID = board.ID
	return s, nil
}

func (p *Processor) setCurrentBoard(s State, c SetCurrentBoard) (State, error) {
	if s.BoardIndex(c.BoardID) < 0 {
		return s, ErrBoardNotFound
	}
	s.CurrentBoardID = c.BoardID
	return s, nil
}

func (p *Processor) updateBoard(s State, c UpdateBoard) (State, error) {
	i := s.BoardIndex(c.BoardID)
	if i < 0 {
		return s, ErrBoardNotFound
	}
	b := &s.Boards[i]

	if c.Patch.Title != nil {
		if strings.TrimSpace(*c.Patch.Title) == "" {
			return s, ErrBlankTitle
		}
		b.Title = *c.Patch.Title
	}
	if c.Patch.Labels != nil {
		b.Labels = append([]model.Label(nil), (*c.Patch.Labels)...)
	}
	b.UpdatedAt = p.now()
	return s, nil
}

func (p *Processor) deleteBoard(s State, c DeleteBoard) (State, error) {
	i := s.BoardIndex(c.BoardID)
	if i < 0 {
		return s, ErrBoardNotFound
	}

	s.Boards = append(s.Boards[:i], s.Boards[i+1:]...)
	if s.CurrentBoardID == c.BoardID {
		if len(s.Boards) > 0 {
			s.CurrentBoardID = s.Boards[0].ID
		} else {
			s.CurrentBoardID = uuid.Nil
		}
	}
	return s, nil
}

func (p *Processor) createColumn(s State, c CreateColumn) (State, error) {
	if strings.TrimSpace(c.Title) == "" {
		return s, ErrBlankTitle
	}
	i := s.BoardIndex(c.BoardID)
	if i < 0 {
		return s, ErrBoardNotFound
	}

	b := &s.Boards[i]
	b.Columns = append(b.Columns, model.Column{
		ID:            p.newID(),
		Title:         c.Title,
		Tasks:         []model.Task{},
		Color:         c.Color,
		DeletionState: model.ColumnActive,
	})
	b.UpdatedAt = p.now()
	return s, nil
}

func (p *Processor) updateColumn(s State, c UpdateColumn) (State, error) {
	b, col := s.FindColumn(c.ColumnID)
	if col == nil {
		return s, ErrColumnNotFound
	}

	if c.Patch.Title != nil {
		if strings.TrimSpace(*c.Patch.Title) == "" {
			return s, ErrBlankTitle
		}
		col.Title = *c.Patch.Title
	}
	if c.Patch.Color != nil {
		col.Color = *c.Patch.Color
	}
	if c.Patch.DeletionState != nil {
		col.DeletionState = *c.Patch.DeletionState
	}
	b.UpdatedAt = p.now()
	return s, nil
}

func (p *Processor) deleteColumn(s State, c DeleteColumn) (State, error) {
	b, col := s.FindColumn(c.ColumnID)
	if col == nil {
		return s, ErrColumnNotFound
	}

	i := b.ColumnIndex(c.ColumnID)
	b.Columns = append(b.Columns[:i], b.Columns[i+1:]...)
	b.UpdatedAt = p.now()
	return s, nil
}

func (p *Processor) createTask(s State, c CreateTask) (State, error) {
	if strings.TrimSpace(c.Fields.Title) == "" {
		return s, ErrBlankTitle
	}
	b, col := s.FindColumn(c.ColumnID)
	if col == nil {
		return s, ErrColumnNotFound
	}

	now := p.now()
	task := model.Task{
		ID:          p.newID(),
		Title:       c.Fields.Title,
		Description: c.Fields.Description,
		Priority:    c.Fields.Priority,
		Labels:      append([]model.Label(nil), c.Fields.Labels...),
		Files:       append([]model.FileAttachment(nil), c.Fields.Files...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if task.Priority == "" {
		task.Priority = model.PriorityNone
	}
	if c.Fields.DueDate != nil {
		due := *c.Fields.DueDate
		task.DueDate = &due
	}
	if c.Fields.Recurrence != nil {
		rec := c.Fields.Recurrence.Clone()
		task.Recurrence = &rec
		if rec.Enabled {
			rid := p.newID()
			task.RecurrenceID = &rid
			task.OccurrenceCount = 1
		}
	}

	col.Tasks = append(col.Tasks, task)
	b.UpdatedAt = now
	return s, nil
}

func (p *Processor) updateTask(s State, c UpdateTask) (State, error) {
	b, _, task := s.FindTask(c.TaskID)
	if task == nil {
		return s, ErrTaskNotFound
	}

	if c.Patch.Title != nil {
		if strings.TrimSpace(*c.Patch.Title) == "" {
			return s, ErrBlankTitle
		}
		task.Title = *c.Patch.Title
	}
	if c.Patch.Description != nil {
		task.Description = *c.Patch.Description
	}
	if c.Patch.ClearDueDate {
		task.DueDate = nil
	} else if c.Patch.DueDate != nil {
		due := *c.Patch.DueDate
		task.DueDate = &due
	}
	if c.Patch.Priority != nil {
		task.Priority = *c.Patch.Priority
	}
	if c.Patch.Labels != nil {
		task.Labels = append([]model.Label(nil), (*c.Patch.Labels)...)
	}
	if c.Patch.Files != nil {
		task.Files = append([]model.FileAttachment(nil), (*c.Patch.Files)...)
	}
	if c.Patch.ClearRecurrence {
		task.Recurrence = nil
	} else if c.Patch.Recurrence != nil {
		rec := c.Patch.Recurrence.Clone()
		task.Recurrence = &rec
		if rec.Enabled && task.RecurrenceID == nil {
			rid := p.newID()
			task.RecurrenceID = &rid
			task.OccurrenceCount = 1
		}
	}

	now := p.now()
	task.UpdatedAt = now
	b.UpdatedAt = now
	return s, nil
}

func (p *Processor) deleteTask(s State, c DeleteTask) (State, error) {
	b, col := s.FindColumn(c.ColumnID)
	if col == nil {
		return s, ErrColumnNotFound
	}
	i := col.TaskIndex(c.TaskID)
	if i < 0 {
		return s, ErrTaskNotFound
	}

	col.Tasks = append(col.Tasks[:i], col.Tasks[i+1:]...)
	b.UpdatedAt = p.now()
	return s, nil
}

func (p *Processor) moveTask(s State, c MoveTask) (State, error) {
	b, src := s.FindColumn(c.SourceColumnID)
	if src == nil {
		return s, ErrColumnNotFound
	}
	tgtIdx := b.ColumnIndex(c.TargetColumnID)
	if tgtIdx < 0 {
		return s, ErrColumnNotFound
	}
	tgt := &b.Columns[tgtIdx]

	taskIdx := src.TaskIndex(c.TaskID)
	if taskIdx < 0 {
		return s, ErrTaskNotFound
	}
	task := src.Tasks[taskIdx]

	now := p.now()
	intoTerminal := b.IsTerminalColumn(tgt.ID) && !b.IsTerminalColumn(src.ID)
	outOfTerminal := b.IsTerminalColumn(src.ID) && !b.IsTerminalColumn(tgt.ID)

	if intoTerminal {
		task.CompletedAt = &now
		if task.IsRecurring() && task.DueDate != nil {
			next, ok := recurrence.Next(*task.Recurrence, *task.DueDate)
			if ok && !recurrence.Done(*task.Recurrence, next, task.OccurrenceCount+1) {
				// The task reopens with a new deadline instead of staying
				// completed.
				task.DueDate = &next
				task.CompletedAt = nil
				task.OccurrenceCount++
			}
		}
	}
	if outOfTerminal {
		task.CompletedAt = nil
	}

	// Remove before computing the insertion index so a same-column reorder
	// targets the post-removal sequence.
	src.Tasks = append(src.Tasks[:taskIdx], src.Tasks[taskIdx+1:]...)

	at := c.TargetIndex
	if at < 0 {
		at = 0
	}
	if at > len(tgt.Tasks) {
		at = len(tgt.Tasks)
	}
	task.UpdatedAt = now
	tgt.Tasks = append(tgt.Tasks, model.Task{})
	copy(tgt.Tasks[at+1:], tgt.Tasks[at:])
	tgt.Tasks[at] = task

	b.UpdatedAt = now
	return s, nil
}

func (p *Processor) clearCompletedTasks(s State) (State, error) {
	b := s.CurrentBoard()
	if b == nil {
		return s, ErrBoardNotFound
	}
	if len(b.Columns) == 0 {
		return s, nil
	}

	terminal := &b.Columns[len(b.Columns)-1]
	kept := terminal.Tasks[:0:0]
	for _, t := range terminal.Tasks {
		if t.IsRecurring() {
			kept = append(kept, t)
		}
	}
	terminal.Tasks = kept
	b.UpdatedAt = p.now()
	return s, nil
}

func (p *Processor) addSubTask(s State, c AddSubTask) (State, error) {
	if strings.TrimSpace(c.Title) == "" {
		return s, ErrBlankTitle
	}
	b, _, task := s.FindTask(c.TaskID)
	if task == nil {
		return s, ErrTaskNotFound
	}

	now := p.now()
	task.SubTasks = append(task.SubTasks, model.SubTask{
		ID:        p.newID(),
		Title:     c.Title,
		CreatedAt: now,
	})
	task.UpdatedAt = now
	b.UpdatedAt = now
	return s, nil
}

func (p *Processor) toggleSubTask(s State, c ToggleSubTask) (State, error) {
	b, _, task := s.FindTask(c.TaskID)
	if task == nil {
		return s, ErrTaskNotFound
	}

	for i := range task.SubTasks {
		if task.SubTasks[i].ID == c.SubTaskID {
			task.SubTasks[i].Completed = !task.SubTasks[i].Completed
			now := p.now()
			task.UpdatedAt = now
			b.UpdatedAt = now
			return s, nil
		}
	}
	return s, ErrSubTaskNotFound
}

func (p *Processor) deleteSubTask(s State, c DeleteSubTask) (State, error) {
	b, _, task := s.FindTask(c.TaskID)
	if task == nil {
		return s, ErrTaskNotFound
	}

	for i := range task.SubTasks {
		if task.SubTasks[i].ID == c.SubTaskID {
			task.SubTasks = append(task.SubTasks[:i], task.SubTasks[i+1:]...)
			now := p.now()
			task.UpdatedAt = now
			b.UpdatedAt = now
			return s, nil
		}
	}
	return s, ErrSubTaskNotFound
}

func (p *Processor) importBoards(s State, c ImportBoards) (State, error) {
	imported := make([]model.Board, 0, len(c.Boards))
	for _, b := range c.Boards {
		imported = append(imported, b.Clone())
	}

	if c.ReplaceAll {
		s.Boards = imported
		if len(imported) > 0 {
			s.CurrentBoardID = imported[0].ID
		} else {
			s.CurrentBoardID = uuid.Nil
		}
		return s, nil
	}

	hadCurrent := s.BoardIndex(s.CurrentBoardID) >= 0
	for _, b := range imported {
		// A colliding id gets a fresh one so the existing board is never
		// overwritten.
		if s.BoardIndex(b.ID) >= 0 {
			b.ID = p.newID()
		}
		s.Boards = append(s.Boards, b)
	}
	if !hadCurrent && len(s.Boards) > 0 {
		s.CurrentBoardID = s.Boards[0].ID
	}
	return s, nil
}

func (p *Processor) checkOverdueRecurringTasks(s State) (State, error) {
	now := p.now()
	for i := range s.Boards {
		b := &s.Boards[i]
		if len(b.Columns) < 2 {
			continue
		}

		leftmost := &b.Columns[0]
		moved := false
		for j := 1; j < len(b.Columns); j++ {
			col := &b.Columns[j]
			kept := col.Tasks[:0:0]
			for _, t := range col.Tasks {
				if t.IsRecurring() && t.CompletedAt == nil &&
					t.DueDate != nil && t.DueDate.Before(now) {
					t.UpdatedAt = now
					leftmost.Tasks = append(leftmost.Tasks, t)
					moved = true
					continue
				}
				kept = append(kept, t)
			}
			col.Tasks = kept
		}
		if moved {
			b.UpdatedAt = now
		}
	}
	return s, nil
}
