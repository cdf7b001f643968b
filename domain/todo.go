package domain

import "time"

// ProgressStatus tracks how far a todo has advanced.
type ProgressStatus string

const (
	StatusNotStarted ProgressStatus = "not_started"
	StatusInProgress ProgressStatus = "in_progress"
	StatusCompleted  ProgressStatus = "completed"
)

func (s ProgressStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// RecurrenceType controls successor generation when a todo is completed.
type RecurrenceType string

const (
	RecurrenceNone    RecurrenceType = "none"
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
)

func (r RecurrenceType) Valid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// Recurring is true for every type except none.
func (r RecurrenceType) Recurring() bool {
	return r != "" && r != RecurrenceNone
}

// DueDateFilter selects a due-date bucket relative to today.
type DueDateFilter string

const (
	DueAll      DueDateFilter = "all"
	DueToday    DueDateFilter = "today"
	DueThisWeek DueDateFilter = "this_week"
	DueOverdue  DueDateFilter = "overdue"
	DueNone     DueDateFilter = "none"
)

func (f DueDateFilter) Valid() bool {
	switch f {
	case "", DueAll, DueToday, DueThisWeek, DueOverdue, DueNone:
		return true
	}
	return false
}

// Todo is a user-owned unit of work. Parent and predecessor links are ids into the same
// owner's set of todos, never embedded values.
type Todo struct {
	ID             string         `json:"id"`
	OwnerID        string         `json:"owner_id"`
	Name           string         `json:"name"`
	Detail         string         `json:"detail"`
	DueDate        *time.Time     `json:"due_date,omitempty"`
	ProgressStatus ProgressStatus `json:"progress_status"`
	RecurrenceType RecurrenceType `json:"recurrence_type"`
	ParentID       *string        `json:"parent_id,omitempty"`
	PreviousTodoID *string        `json:"previous_todo_id,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (t *Todo) IsCompleted() bool {
	return t != nil && t.ProgressStatus == StatusCompleted
}

func (t *Todo) IsSubtask() bool {
	return t != nil && t.ParentID != nil
}

// SubtaskProgress is computed from direct children on every single-todo read.
type SubtaskProgress struct {
	CompletedSubtaskCount  int `json:"completed_subtask_count"`
	TotalSubtaskCount      int `json:"total_subtask_count"`
	SubtaskProgressPercent int `json:"subtask_progress_percent"`
}

// NewSubtaskProgress derives the percentage, flooring, and 0 when there are no children.
func NewSubtaskProgress(completed, total int) SubtaskProgress {
	p := SubtaskProgress{CompletedSubtaskCount: completed, TotalSubtaskCount: total}
	if total > 0 {
		p.SubtaskProgressPercent = completed * 100 / total
	}
	return p
}

// TodoDetail is a todo together with its derived subtask progress.
type TodoDetail struct {
	Todo
	SubtaskProgress
}
