package repository

import (
	"context"
	"time"

	"github.com/fastygo/todo-service/domain"
)

// TodoFilter narrows ListByOwner. Zero values disable the corresponding filter.
type TodoFilter struct {
	OwnerID        string
	Keyword        string
	ProgressStatus domain.ProgressStatus
	DueDate        domain.DueDateFilter
	// Today anchors the due-date buckets.
	Today time.Time
}

// TodoRepository is the owner-scoped store used by the todo engine.
//
// FindByID returns (nil, nil) when the todo does not exist for the owner. Inside WithinTx
// it also locks the row until the transaction ends.
type TodoRepository interface {
	FindByID(ctx context.Context, id, ownerID string) (*domain.Todo, error)
	ListByOwner(ctx context.Context, filter TodoFilter) ([]domain.Todo, error)
	Insert(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	Update(ctx context.Context, todo *domain.Todo) error
	// InsertSuccessorIfAbsent creates the recurrence successor of source unless one already
	// references it. The bool reports whether a row was inserted.
	InsertSuccessorIfAbsent(ctx context.Context, source *domain.Todo, dueDate time.Time) (*domain.Todo, bool, error)
	CountDirectChildren(ctx context.Context, parentID, ownerID string) (int, error)
	CountCompletedDirectChildren(ctx context.Context, parentID, ownerID string) (int, error)
	ExistsIncompleteChild(ctx context.Context, parentID, ownerID string) (bool, error)
	Delete(ctx context.Context, id, ownerID string) error
	// ExistsByName only considers non-completed todos. An empty excludeID excludes nothing.
	ExistsByName(ctx context.Context, ownerID, name, excludeID string) (bool, error)
	WithinTx(ctx context.Context, fn func(repo TodoRepository) error) error
}
