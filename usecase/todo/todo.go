package todo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/todo-service/domain"
	"github.com/fastygo/todo-service/pkg/logger"
	"github.com/fastygo/todo-service/repository"
	"github.com/fastygo/todo-service/usecase"
)

// UseCase is the todo business engine. It holds no per-request state; every operation is
// scoped to the owner passed in.
type UseCase struct {
	todos    repository.TodoRepository
	activity usecase.ActivityRecorder
	logger   *zap.Logger
	now      func() time.Time
}

type Option func(*UseCase)

// WithClock overrides the source of "today" used for due-date buckets and successor dates.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) {
		if now != nil {
			uc.now = now
		}
	}
}

func New(todos repository.TodoRepository, activity usecase.ActivityRecorder, logger *zap.Logger, opts ...Option) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	uc := &UseCase{
		todos:    todos,
		activity: activity,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

type recorded struct {
	action string
	todo   domain.Todo
}

func (uc *UseCase) Create(ctx context.Context, ownerID string, req CreateRequest) (*domain.TodoDetail, error) {
	recurrence := req.RecurrenceType
	if recurrence == "" {
		recurrence = domain.RecurrenceNone
	}
	status := req.ProgressStatus
	if status == "" {
		status = domain.StatusNotStarted
	}
	if err := validateEnums(status, recurrence); err != nil {
		return nil, err
	}

	dueDate := normalizeDate(req.DueDate)
	if err := validateRecurrenceDueDate(recurrence, dueDate); err != nil {
		return nil, err
	}

	var created *domain.Todo
	err := uc.todos.WithinTx(ctx, func(repo repository.TodoRepository) error {
		if _, err := validateParent(ctx, repo, ownerID, req.ParentID); err != nil {
			return err
		}
		if err := validateSubtaskRecurrence(req.ParentID != nil, recurrence); err != nil {
			return err
		}
		if err := validateNameUnique(ctx, repo, ownerID, req.Name, ""); err != nil {
			return err
		}

		todo, err := repo.Insert(ctx, &domain.Todo{
			OwnerID:        ownerID,
			Name:           req.Name,
			Detail:         req.Detail,
			DueDate:        dueDate,
			ProgressStatus: status,
			RecurrenceType: recurrence,
			ParentID:       req.ParentID,
		})
		if err != nil {
			return err
		}
		created = todo
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.record(ctx, recorded{action: domain.ActivityCreated, todo: *created})
	return &domain.TodoDetail{Todo: *created, SubtaskProgress: domain.NewSubtaskProgress(0, 0)}, nil
}

func (uc *UseCase) Get(ctx context.Context, ownerID, id string) (*domain.TodoDetail, error) {
	todo, err := uc.todos.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, domain.ErrTodoNotFound
	}

	progress, err := subtaskProgress(ctx, uc.todos, todo)
	if err != nil {
		return nil, err
	}
	return &domain.TodoDetail{Todo: *todo, SubtaskProgress: progress}, nil
}

// Update applies a partial update. Checks run in a fixed order and nothing is written
// before all of them pass. Completing a recurring todo with a due date creates its
// successor in the same transaction.
func (uc *UseCase) Update(ctx context.Context, ownerID, id string, req UpdateRequest) (*domain.TodoDetail, error) {
	var (
		result *domain.TodoDetail
		events []recorded
	)

	// Unlocked read: parent_id never changes, so it decides the lock order up front.
	current, err := uc.todos.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrTodoNotFound
	}

	err = uc.todos.WithinTx(ctx, func(repo repository.TodoRepository) error {
		events = events[:0]

		// Parent before child, the same order a cascading parent delete takes.
		if current.IsSubtask() {
			if _, err := repo.FindByID(ctx, *current.ParentID, ownerID); err != nil {
				return err
			}
		}
		todo, err := repo.FindByID(ctx, id, ownerID)
		if err != nil {
			return err
		}
		if todo == nil {
			return domain.ErrTodoNotFound
		}
		if err := validateUpdateShape(req); err != nil {
			return err
		}

		wasCompleted := todo.IsCompleted()

		if name, ok := req.Name.Value(); ok {
			if err := validateNameUnique(ctx, repo, ownerID, name, todo.ID); err != nil {
				return err
			}
		}

		effectiveDue := todo.DueDate
		if req.DueDate.Present() {
			effectiveDue = normalizeDate(req.DueDate.Ptr())
		}
		effectiveRecurrence := todo.RecurrenceType
		if recurrence, ok := req.RecurrenceType.Value(); ok {
			effectiveRecurrence = recurrence
		}

		if err := validateRecurrenceDueDate(effectiveRecurrence, effectiveDue); err != nil {
			return err
		}
		if err := validateSubtaskRecurrence(todo.IsSubtask(), effectiveRecurrence); err != nil {
			return err
		}
		if status, ok := req.ProgressStatus.Value(); ok && status == domain.StatusCompleted && !wasCompleted {
			if err := validateCompletionGate(ctx, repo, ownerID, todo); err != nil {
				return err
			}
		}

		applyUpdate(todo, req, effectiveDue)
		if err := repo.Update(ctx, todo); err != nil {
			return err
		}

		action := domain.ActivityUpdated
		if !wasCompleted && todo.IsCompleted() {
			action = domain.ActivityCompleted
		}
		events = append(events, recorded{action: action, todo: *todo})

		if !wasCompleted && todo.IsCompleted() && todo.RecurrenceType.Recurring() && todo.DueDate != nil {
			next := domain.NextOccurrence(todo.RecurrenceType, uc.today())
			successor, inserted, err := repo.InsertSuccessorIfAbsent(ctx, todo, next)
			if err != nil {
				return fmt.Errorf("create recurrence successor: %w", err)
			}
			if inserted {
				events = append(events, recorded{action: domain.ActivitySuccessor, todo: *successor})
			}
		}

		progress, err := subtaskProgress(ctx, repo, todo)
		if err != nil {
			return err
		}
		result = &domain.TodoDetail{Todo: *todo, SubtaskProgress: progress}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, ev := range events {
		uc.record(ctx, ev)
	}
	return result, nil
}

// Delete removes the todo. Subtasks go with it and successors lose their back-reference;
// both are enforced by the store.
func (uc *UseCase) Delete(ctx context.Context, ownerID, id string) error {
	var deleted *domain.Todo
	err := uc.todos.WithinTx(ctx, func(repo repository.TodoRepository) error {
		todo, err := repo.FindByID(ctx, id, ownerID)
		if err != nil {
			return err
		}
		if todo == nil {
			return domain.ErrTodoNotFound
		}
		if err := repo.Delete(ctx, id, ownerID); err != nil {
			return err
		}
		deleted = todo
		return nil
	})
	if err != nil {
		return err
	}

	uc.record(ctx, recorded{action: domain.ActivityDeleted, todo: *deleted})
	return nil
}

// List returns the owner's todos, newest first. Progress fields are not computed here.
func (uc *UseCase) List(ctx context.Context, ownerID string, req ListRequest) ([]domain.Todo, error) {
	if err := validateEnums(req.ProgressStatus, ""); err != nil {
		return nil, err
	}
	if !req.DueDate.Valid() {
		return nil, domain.InvalidFormat("dueDate", "invalid_format")
	}

	todos, err := uc.todos.ListByOwner(ctx, repository.TodoFilter{
		OwnerID:        ownerID,
		Keyword:        strings.TrimSpace(req.Keyword),
		ProgressStatus: req.ProgressStatus,
		DueDate:        req.DueDate,
		Today:          uc.today(),
	})
	if err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []domain.Todo{}
	}
	return todos, nil
}

func (uc *UseCase) today() time.Time {
	return domain.DateOf(uc.now())
}

func (uc *UseCase) record(ctx context.Context, ev recorded) {
	if uc.activity == nil {
		return
	}
	if err := uc.activity.RecordTodo(ctx, ev.action, &ev.todo); err != nil {
		logger.FromContext(ctx, uc.logger).Warn("failed to record todo activity",
			zap.String("todo_id", ev.todo.ID),
			zap.String("action", ev.action),
			zap.Error(err))
	}
}

func applyUpdate(todo *domain.Todo, req UpdateRequest, effectiveDue *time.Time) {
	if name, ok := req.Name.Value(); ok {
		todo.Name = name
	}
	if detail, ok := req.Detail.Value(); ok {
		todo.Detail = detail
	}
	if req.DueDate.Present() {
		todo.DueDate = effectiveDue
	}
	if status, ok := req.ProgressStatus.Value(); ok {
		todo.ProgressStatus = status
	}
	if recurrence, ok := req.RecurrenceType.Value(); ok {
		todo.RecurrenceType = recurrence
	}
}

func subtaskProgress(ctx context.Context, repo repository.TodoRepository, todo *domain.Todo) (domain.SubtaskProgress, error) {
	total, err := repo.CountDirectChildren(ctx, todo.ID, todo.OwnerID)
	if err != nil {
		return domain.SubtaskProgress{}, fmt.Errorf("count subtasks: %w", err)
	}
	if total == 0 {
		return domain.NewSubtaskProgress(0, 0), nil
	}
	completed, err := repo.CountCompletedDirectChildren(ctx, todo.ID, todo.OwnerID)
	if err != nil {
		return domain.SubtaskProgress{}, fmt.Errorf("count completed subtasks: %w", err)
	}
	return domain.NewSubtaskProgress(completed, total), nil
}

func normalizeDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := domain.DateOf(*t)
	return &d
}
