package activity

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/todo-service/domain"
	"github.com/fastygo/todo-service/repository"
)

const defaultLimit = 50

type UseCase struct {
	todos      repository.TodoRepository
	activities repository.ActivityRepository
	logger     *zap.Logger
}

func New(todos repository.TodoRepository, activities repository.ActivityRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		todos:      todos,
		activities: activities,
		logger:     logger,
	}
}

// List returns the newest history entries of a todo the owner can still read.
func (uc *UseCase) List(ctx context.Context, ownerID, todoID string, limit int) ([]domain.Activity, error) {
	todo, err := uc.todos.FindByID(ctx, todoID, ownerID)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, domain.ErrTodoNotFound
	}

	if limit <= 0 {
		limit = defaultLimit
	}
	entries, err := uc.activities.ListByTodo(ctx, todoID, ownerID, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.Activity{}
	}
	return entries, nil
}
