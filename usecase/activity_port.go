package usecase

import (
	"context"

	"github.com/fastygo/todo-service/domain"
)

// ActivityRecorder receives todo history entries after a change has been committed.
// Implementations must not block the request on slow storage.
type ActivityRecorder interface {
	RecordTodo(ctx context.Context, action string, todo *domain.Todo) error
}
