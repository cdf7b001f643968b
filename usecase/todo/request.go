package todo

import (
	"time"

	"github.com/fastygo/todo-service/domain"
	"github.com/fastygo/todo-service/pkg/optional"
)

// CreateRequest carries an already shape-validated create payload. Zero values take the
// documented defaults.
type CreateRequest struct {
	Name           string
	Detail         string
	DueDate        *time.Time
	ProgressStatus domain.ProgressStatus
	RecurrenceType domain.RecurrenceType
	ParentID       *string
}

// UpdateRequest is a partial update. Absent fields keep the stored value. Only DueDate
// accepts an explicit null, meaning "clear the due date".
type UpdateRequest struct {
	Name           optional.Field[string]
	Detail         optional.Field[string]
	DueDate        optional.Field[time.Time]
	ProgressStatus optional.Field[domain.ProgressStatus]
	RecurrenceType optional.Field[domain.RecurrenceType]
}

// ListRequest filters the owner's todos. Empty fields disable the filter.
type ListRequest struct {
	Keyword        string
	ProgressStatus domain.ProgressStatus
	DueDate        domain.DueDateFilter
}
