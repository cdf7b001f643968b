// Package memory keeps todos in a process-local arena with the same constraints as the
// Postgres schema: active-name uniqueness, one successor per source, cascading deletes.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fastygo/todo-service/domain"
	"github.com/fastygo/todo-service/repository"
)

// TodoRepository is safe for concurrent use. WithinTx holds the lock for the whole callback
// and restores the previous state when the callback fails.
type TodoRepository struct {
	mu    sync.Mutex
	state *arena
}

type arena struct {
	todos map[string]*domain.Todo
	seq   map[string]int64
	next  int64
	now   func() time.Time
}

// NewTodoRepository returns an empty repository stamping rows with time.Now.
func NewTodoRepository() *TodoRepository {
	return NewTodoRepositoryWithClock(time.Now)
}

// NewTodoRepositoryWithClock lets tests control created_at ordering.
func NewTodoRepositoryWithClock(now func() time.Time) *TodoRepository {
	if now == nil {
		now = time.Now
	}
	return &TodoRepository{state: &arena{
		todos: make(map[string]*domain.Todo),
		seq:   make(map[string]int64),
		now:   now,
	}}
}

var _ repository.TodoRepository = (*TodoRepository)(nil)

func (r *TodoRepository) FindByID(ctx context.Context, id, ownerID string) (*domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.findByID(id, ownerID), nil
}

func (r *TodoRepository) ListByOwner(ctx context.Context, filter repository.TodoFilter) ([]domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.list(filter), nil
}

func (r *TodoRepository) Insert(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.insert(todo)
}

func (r *TodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.update(todo)
}

func (r *TodoRepository) InsertSuccessorIfAbsent(ctx context.Context, source *domain.Todo, dueDate time.Time) (*domain.Todo, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.insertSuccessor(source, dueDate)
}

func (r *TodoRepository) CountDirectChildren(ctx context.Context, parentID, ownerID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.countChildren(parentID, ownerID, func(*domain.Todo) bool { return true }), nil
}

func (r *TodoRepository) CountCompletedDirectChildren(ctx context.Context, parentID, ownerID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.countChildren(parentID, ownerID, (*domain.Todo).IsCompleted), nil
}

func (r *TodoRepository) ExistsIncompleteChild(ctx context.Context, parentID, ownerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := r.state.countChildren(parentID, ownerID, func(t *domain.Todo) bool { return !t.IsCompleted() })
	return n > 0, nil
}

func (r *TodoRepository) Delete(ctx context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.delete(id, ownerID)
}

func (r *TodoRepository) ExistsByName(ctx context.Context, ownerID, name, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.activeNameTaken(ownerID, name, excludeID), nil
}

func (r *TodoRepository) WithinTx(ctx context.Context, fn func(repo repository.TodoRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := r.state.clone()
	if err := fn(&txRepository{state: r.state}); err != nil {
		r.state = snapshot
		return err
	}
	return nil
}

// Len reports the number of stored todos across all owners.
func (r *TodoRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.state.todos)
}

// txRepository runs against the arena while the parent lock is held.
type txRepository struct {
	state *arena
}

func (t *txRepository) FindByID(ctx context.Context, id, ownerID string) (*domain.Todo, error) {
	return t.state.findByID(id, ownerID), nil
}

func (t *txRepository) ListByOwner(ctx context.Context, filter repository.TodoFilter) ([]domain.Todo, error) {
	return t.state.list(filter), nil
}

func (t *txRepository) Insert(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	return t.state.insert(todo)
}

func (t *txRepository) Update(ctx context.Context, todo *domain.Todo) error {
	return t.state.update(todo)
}

func (t *txRepository) InsertSuccessorIfAbsent(ctx context.Context, source *domain.Todo, dueDate time.Time) (*domain.Todo, bool, error) {
	return t.state.insertSuccessor(source, dueDate)
}

func (t *txRepository) CountDirectChildren(ctx context.Context, parentID, ownerID string) (int, error) {
	return t.state.countChildren(parentID, ownerID, func(*domain.Todo) bool { return true }), nil
}

func (t *txRepository) CountCompletedDirectChildren(ctx context.Context, parentID, ownerID string) (int, error) {
	return t.state.countChildren(parentID, ownerID, (*domain.Todo).IsCompleted), nil
}

func (t *txRepository) ExistsIncompleteChild(ctx context.Context, parentID, ownerID string) (bool, error) {
	n := t.state.countChildren(parentID, ownerID, func(td *domain.Todo) bool { return !td.IsCompleted() })
	return n > 0, nil
}

func (t *txRepository) Delete(ctx context.Context, id, ownerID string) error {
	return t.state.delete(id, ownerID)
}

func (t *txRepository) ExistsByName(ctx context.Context, ownerID, name, excludeID string) (bool, error) {
	return t.state.activeNameTaken(ownerID, name, excludeID), nil
}

func (t *txRepository) WithinTx(ctx context.Context, fn func(repo repository.TodoRepository) error) error {
	return fn(t)
}

func (a *arena) findByID(id, ownerID string) *domain.Todo {
	todo, ok := a.todos[id]
	if !ok || todo.OwnerID != ownerID {
		return nil
	}
	return copyTodo(todo)
}

func (a *arena) list(filter repository.TodoFilter) []domain.Todo {
	today := filter.Today
	if today.IsZero() {
		today = a.now()
	}
	today = domain.DateOf(today)

	var out []domain.Todo
	for _, todo := range a.todos {
		if todo.OwnerID != filter.OwnerID {
			continue
		}
		if filter.ProgressStatus != "" && todo.ProgressStatus != filter.ProgressStatus {
			continue
		}
		if !matchesDueDate(todo.DueDate, filter.DueDate, today) {
			continue
		}
		// Literal substring match; the Postgres LIKE escaping is tested with containsPattern.
		if filter.Keyword != "" && !strings.Contains(todo.Name, filter.Keyword) && !strings.Contains(todo.Detail, filter.Keyword) {
			continue
		}
		out = append(out, *copyTodo(todo))
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return a.seq[out[i].ID] > a.seq[out[j].ID]
	})
	return out
}

func matchesDueDate(due *time.Time, filter domain.DueDateFilter, today time.Time) bool {
	switch filter {
	case domain.DueToday:
		return due != nil && domain.DateOf(*due).Equal(today)
	case domain.DueThisWeek:
		if due == nil {
			return false
		}
		d := domain.DateOf(*due)
		return !d.Before(today) && !d.After(today.AddDate(0, 0, 6))
	case domain.DueOverdue:
		return due != nil && domain.DateOf(*due).Before(today)
	case domain.DueNone:
		return due == nil
	default:
		return true
	}
}

func (a *arena) insert(todo *domain.Todo) (*domain.Todo, error) {
	if todo == nil {
		return nil, domain.ErrInvalidPayload
	}
	if !todo.IsCompleted() && a.activeNameTaken(todo.OwnerID, todo.Name, "") {
		return nil, domain.ErrDuplicateName
	}
	if todo.PreviousTodoID != nil && a.hasSuccessor(*todo.PreviousTodoID) {
		return nil, domain.NewError(domain.ErrCodeConflict, "successor already exists")
	}
	if todo.ID == "" {
		todo.ID = uuid.NewString()
	}
	now := a.now()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	a.next++
	a.seq[todo.ID] = a.next
	a.todos[todo.ID] = copyTodo(todo)
	return copyTodo(todo), nil
}

func (a *arena) update(todo *domain.Todo) error {
	if todo == nil {
		return domain.ErrInvalidPayload
	}
	current, ok := a.todos[todo.ID]
	if !ok || current.OwnerID != todo.OwnerID {
		return domain.ErrTodoNotFound
	}
	if !todo.IsCompleted() && a.activeNameTaken(todo.OwnerID, todo.Name, todo.ID) {
		return domain.ErrDuplicateName
	}
	todo.CreatedAt = current.CreatedAt
	todo.UpdatedAt = a.now()
	a.todos[todo.ID] = copyTodo(todo)
	return nil
}

func (a *arena) insertSuccessor(source *domain.Todo, dueDate time.Time) (*domain.Todo, bool, error) {
	if source == nil {
		return nil, false, domain.ErrInvalidPayload
	}
	if a.hasSuccessor(source.ID) {
		return nil, false, nil
	}
	due := domain.DateOf(dueDate)
	previous := source.ID
	created, err := a.insert(&domain.Todo{
		OwnerID:        source.OwnerID,
		Name:           source.Name,
		Detail:         source.Detail,
		DueDate:        &due,
		ProgressStatus: domain.StatusNotStarted,
		RecurrenceType: source.RecurrenceType,
		PreviousTodoID: &previous,
	})
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

func (a *arena) hasSuccessor(sourceID string) bool {
	for _, todo := range a.todos {
		if todo.PreviousTodoID != nil && *todo.PreviousTodoID == sourceID {
			return true
		}
	}
	return false
}

func (a *arena) countChildren(parentID, ownerID string, match func(*domain.Todo) bool) int {
	var n int
	for _, todo := range a.todos {
		if todo.OwnerID == ownerID && todo.ParentID != nil && *todo.ParentID == parentID && match(todo) {
			n++
		}
	}
	return n
}

func (a *arena) delete(id, ownerID string) error {
	target, ok := a.todos[id]
	if !ok || target.OwnerID != ownerID {
		return domain.ErrTodoNotFound
	}

	removed := []string{id}
	for childID, todo := range a.todos {
		if todo.ParentID != nil && *todo.ParentID == id {
			removed = append(removed, childID)
		}
	}
	for _, rid := range removed {
		delete(a.todos, rid)
		delete(a.seq, rid)
	}
	for _, todo := range a.todos {
		if todo.PreviousTodoID == nil {
			continue
		}
		for _, rid := range removed {
			if *todo.PreviousTodoID == rid {
				todo.PreviousTodoID = nil
				break
			}
		}
	}
	return nil
}

func (a *arena) activeNameTaken(ownerID, name, excludeID string) bool {
	for _, todo := range a.todos {
		if todo.OwnerID != ownerID || todo.Name != name || todo.IsCompleted() {
			continue
		}
		if excludeID != "" && todo.ID == excludeID {
			continue
		}
		return true
	}
	return false
}

func (a *arena) clone() *arena {
	c := &arena{
		todos: make(map[string]*domain.Todo, len(a.todos)),
		seq:   make(map[string]int64, len(a.seq)),
		next:  a.next,
		now:   a.now,
	}
	for id, todo := range a.todos {
		c.todos[id] = copyTodo(todo)
	}
	for id, s := range a.seq {
		c.seq[id] = s
	}
	return c
}

func copyTodo(t *domain.Todo) *domain.Todo {
	c := *t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	if t.ParentID != nil {
		p := *t.ParentID
		c.ParentID = &p
	}
	if t.PreviousTodoID != nil {
		p := *t.PreviousTodoID
		c.PreviousTodoID = &p
	}
	return &c
}
