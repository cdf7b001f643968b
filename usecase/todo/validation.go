package todo

import (
	"context"
	"fmt"
	"time"

	"github.com/fastygo/todo-service/domain"
	"github.com/fastygo/todo-service/repository"
)

// validateNameUnique fails when another non-completed todo of the owner already uses name.
// excludeID is the todo being updated, or "" on create.
func validateNameUnique(ctx context.Context, repo repository.TodoRepository, ownerID, name, excludeID string) error {
	taken, err := repo.ExistsByName(ctx, ownerID, name, excludeID)
	if err != nil {
		return fmt.Errorf("check name uniqueness: %w", err)
	}
	if taken {
		return domain.ErrDuplicateName
	}
	return nil
}

// validateParent checks that parentID names an owned top-level todo. A nil parentID is valid
// and yields a nil parent.
func validateParent(ctx context.Context, repo repository.TodoRepository, ownerID string, parentID *string) (*domain.Todo, error) {
	if parentID == nil {
		return nil, nil
	}
	parent, err := repo.FindByID(ctx, *parentID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load parent todo: %w", err)
	}
	if parent == nil || parent.IsSubtask() {
		return nil, domain.ErrInvalidParent
	}
	return parent, nil
}

func validateSubtaskRecurrence(isSubtask bool, recurrence domain.RecurrenceType) error {
	if isSubtask && recurrence.Recurring() {
		return domain.ErrSubtaskRecurrence
	}
	return nil
}

// validateRecurrenceDueDate must receive the effective pair: on update, the values the todo
// will hold once the request is applied.
func validateRecurrenceDueDate(recurrence domain.RecurrenceType, dueDate *time.Time) error {
	if recurrence.Recurring() && dueDate == nil {
		return domain.RequiredFieldMissing("dueDate")
	}
	return nil
}

// validateCompletionGate blocks completing a parent while any direct child is incomplete.
// Subtasks never block on their siblings.
func validateCompletionGate(ctx context.Context, repo repository.TodoRepository, ownerID string, todo *domain.Todo) error {
	if todo.IsSubtask() {
		return nil
	}
	incomplete, err := repo.ExistsIncompleteChild(ctx, todo.ID, ownerID)
	if err != nil {
		return fmt.Errorf("check subtasks: %w", err)
	}
	if incomplete {
		return domain.ErrParentHasIncompleteSubtasks
	}
	return nil
}

func validateEnums(status domain.ProgressStatus, recurrence domain.RecurrenceType) error {
	if status != "" && !status.Valid() {
		return domain.InvalidFormat("progressStatus", "invalid_format")
	}
	if recurrence != "" && !recurrence.Valid() {
		return domain.InvalidFormat("recurrenceType", "invalid_format")
	}
	return nil
}

// validateUpdateShape rejects explicit nulls on fields that cannot be cleared, and
// unknown enum values.
func validateUpdateShape(req UpdateRequest) error {
	switch {
	case req.Name.IsNull():
		return domain.RequiredFieldMissing("name")
	case req.Detail.IsNull():
		return domain.RequiredFieldMissing("detail")
	case req.ProgressStatus.IsNull():
		return domain.RequiredFieldMissing("progressStatus")
	case req.RecurrenceType.IsNull():
		return domain.RequiredFieldMissing("recurrenceType")
	}
	status, _ := req.ProgressStatus.Value()
	recurrence, _ := req.RecurrenceType.Value()
	return validateEnums(status, recurrence)
}
