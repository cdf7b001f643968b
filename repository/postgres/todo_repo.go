package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/todo-service/domain"
	"github.com/fastygo/todo-service/repository"
)

const (
	constraintActiveName   = "todos_owner_active_name_key"
	constraintPreviousTodo = "todos_previous_todo_id_key"
	constraintParentFK     = "todos_parent_id_fkey"
	todoColumns            = `id, owner_id, name, detail, due_date, progress_status, recurrence_type, parent_id, previous_todo_id, created_at, updated_at`
)

type todoRepository struct {
	pool *pgxpool.Pool
	db   querier
	inTx bool
}

// NewTodoRepository returns a Postgres-backed implementation of TodoRepository.
func NewTodoRepository(pool *pgxpool.Pool) repository.TodoRepository {
	return &todoRepository{pool: pool, db: pool}
}

func (r *todoRepository) WithinTx(ctx context.Context, fn func(repo repository.TodoRepository) error) error {
	if r.inTx {
		return fn(r)
	}
	return pgx.BeginTxFunc(ctx, r.pool, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		return fn(&todoRepository{pool: r.pool, db: tx, inTx: true})
	})
}

func (r *todoRepository) FindByID(ctx context.Context, id, ownerID string) (*domain.Todo, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	query := `
	SELECT ` + todoColumns + `
	FROM todos
	WHERE id = $1 AND owner_id = $2
	`
	if r.inTx {
		query += ` FOR UPDATE`
	}

	todo, err := scanTodo(r.db.QueryRow(ctx, query, id, ownerID))
	if errors.Is(err, domain.ErrTodoNotFound) {
		return nil, nil
	}
	return todo, err
}

// ListByOwner matches $3 with ESCAPE '\'; containsPattern escapes with the same character.
func (r *todoRepository) ListByOwner(ctx context.Context, filter repository.TodoFilter) ([]domain.Todo, error) {
	const query = `
	SELECT ` + todoColumns + `
	FROM todos
	WHERE owner_id = $1
	  AND ($2::text = '' OR progress_status = $2)
	  AND ($3::text = '' OR name LIKE $3 ESCAPE '\' OR detail LIKE $3 ESCAPE '\')
	  AND (
		$4::text IN ('', 'all')
		OR ($4 = 'today' AND due_date = $5::date)
		OR ($4 = 'this_week' AND due_date BETWEEN $5::date AND $5::date + 6)
		OR ($4 = 'overdue' AND due_date < $5::date)
		OR ($4 = 'none' AND due_date IS NULL)
	  )
	ORDER BY created_at DESC, id DESC
	`

	today := filter.Today
	if today.IsZero() {
		today = time.Now()
	}

	rows, err := r.db.Query(ctx, query,
		filter.OwnerID,
		string(filter.ProgressStatus),
		containsPattern(filter.Keyword),
		string(filter.DueDate),
		domain.DateOf(today),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var todos []domain.Todo
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *todo)
	}
	return todos, rows.Err()
}

func (r *todoRepository) Insert(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	if todo == nil {
		return nil, domain.ErrInvalidPayload
	}
	if todo.ID == "" {
		todo.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO todos (id, owner_id, name, detail, due_date, progress_status, recurrence_type, parent_id, previous_todo_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING created_at, updated_at
	`

	if err := r.db.QueryRow(ctx, query,
		todo.ID,
		todo.OwnerID,
		todo.Name,
		todo.Detail,
		nullDate(todo.DueDate),
		string(todo.ProgressStatus),
		string(todo.RecurrenceType),
		todo.ParentID,
		todo.PreviousTodoID,
	).Scan(&todo.CreatedAt, &todo.UpdatedAt); err != nil {
		return nil, translateWriteError(err)
	}

	return todo, nil
}

func (r *todoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	if todo == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE todos
	SET name = $3,
		detail = $4,
		due_date = $5,
		progress_status = $6,
		recurrence_type = $7,
		updated_at = NOW()
	WHERE id = $1 AND owner_id = $2
	RETURNING updated_at
	`

	if err := r.db.QueryRow(ctx, query,
		todo.ID,
		todo.OwnerID,
		todo.Name,
		todo.Detail,
		nullDate(todo.DueDate),
		string(todo.ProgressStatus),
		string(todo.RecurrenceType),
	).Scan(&todo.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTodoNotFound
		}
		return translateWriteError(err)
	}

	return nil
}

func (r *todoRepository) InsertSuccessorIfAbsent(ctx context.Context, source *domain.Todo, dueDate time.Time) (*domain.Todo, bool, error) {
	if source == nil {
		return nil, false, domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO todos (id, owner_id, name, detail, due_date, progress_status, recurrence_type, previous_todo_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (previous_todo_id) DO NOTHING
	RETURNING created_at, updated_at
	`

	due := domain.DateOf(dueDate)
	previous := source.ID
	successor := &domain.Todo{
		ID:             uuid.NewString(),
		OwnerID:        source.OwnerID,
		Name:           source.Name,
		Detail:         source.Detail,
		DueDate:        &due,
		ProgressStatus: domain.StatusNotStarted,
		RecurrenceType: source.RecurrenceType,
		PreviousTodoID: &previous,
	}

	err := r.db.QueryRow(ctx, query,
		successor.ID,
		successor.OwnerID,
		successor.Name,
		successor.Detail,
		due,
		string(successor.ProgressStatus),
		string(successor.RecurrenceType),
		previous,
	).Scan(&successor.CreatedAt, &successor.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, translateWriteError(err)
	}
	return successor, true, nil
}

func (r *todoRepository) CountDirectChildren(ctx context.Context, parentID, ownerID string) (int, error) {
	const query = `SELECT COUNT(*) FROM todos WHERE parent_id = $1 AND owner_id = $2`
	var n int
	err := r.db.QueryRow(ctx, query, parentID, ownerID).Scan(&n)
	return n, err
}

func (r *todoRepository) CountCompletedDirectChildren(ctx context.Context, parentID, ownerID string) (int, error) {
	const query = `SELECT COUNT(*) FROM todos WHERE parent_id = $1 AND owner_id = $2 AND progress_status = 'completed'`
	var n int
	err := r.db.QueryRow(ctx, query, parentID, ownerID).Scan(&n)
	return n, err
}

func (r *todoRepository) ExistsIncompleteChild(ctx context.Context, parentID, ownerID string) (bool, error) {
	const query = `
	SELECT EXISTS (
		SELECT 1 FROM todos
		WHERE parent_id = $1 AND owner_id = $2 AND progress_status <> 'completed'
	)
	`
	var exists bool
	err := r.db.QueryRow(ctx, query, parentID, ownerID).Scan(&exists)
	return exists, err
}

func (r *todoRepository) Delete(ctx context.Context, id, ownerID string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrTodoNotFound
	}

	const query = `DELETE FROM todos WHERE id = $1 AND owner_id = $2`
	tag, err := r.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func (r *todoRepository) ExistsByName(ctx context.Context, ownerID, name, excludeID string) (bool, error) {
	const query = `
	SELECT EXISTS (
		SELECT 1 FROM todos
		WHERE owner_id = $1
		  AND name = $2
		  AND progress_status <> 'completed'
		  AND ($3::text = '' OR id::text <> $3)
	)
	`
	var exists bool
	err := r.db.QueryRow(ctx, query, ownerID, name, excludeID).Scan(&exists)
	return exists, err
}

func translateWriteError(err error) error {
	if name, ok := constraintViolation(err, pgUniqueViolation); ok {
		switch name {
		case constraintActiveName:
			return domain.ErrDuplicateName
		case constraintPreviousTodo:
			return domain.WrapError(domain.ErrCodeConflict, "successor already exists", err)
		}
	}
	if name, ok := constraintViolation(err, pgForeignKeyViolation); ok && name == constraintParentFK {
		return domain.ErrInvalidParent
	}
	return err
}

func scanTodo(row rowScanner) (*domain.Todo, error) {
	var (
		todo       domain.Todo
		status     string
		recurrence string
	)

	if err := row.Scan(
		&todo.ID,
		&todo.OwnerID,
		&todo.Name,
		&todo.Detail,
		&todo.DueDate,
		&status,
		&recurrence,
		&todo.ParentID,
		&todo.PreviousTodoID,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, err
	}

	todo.ProgressStatus = domain.ProgressStatus(status)
	todo.RecurrenceType = domain.RecurrenceType(recurrence)
	if todo.DueDate != nil {
		d := domain.DateOf(*todo.DueDate)
		todo.DueDate = &d
	}
	return &todo, nil
}
