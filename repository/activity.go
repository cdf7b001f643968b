package repository

import (
	"context"

	"github.com/fastygo/todo-service/domain"
)

// MaxActivityLimit caps one page of todo history.
const MaxActivityLimit = 200

type ActivityRepository interface {
	Append(ctx context.Context, activity domain.Activity) error
	ListByTodo(ctx context.Context, todoID, ownerID string, limit int) ([]domain.Activity, error)
}
