package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/todo-service/domain"
	"github.com/fastygo/todo-service/repository"
)

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository creates a Postgres-backed ActivityRepository implementation.
func NewActivityRepository(pool *pgxpool.Pool) repository.ActivityRepository {
	return &activityRepository{pool: pool}
}

// Append is idempotent on the activity id so that replayed journal entries are harmless.
func (r *activityRepository) Append(ctx context.Context, activity domain.Activity) error {
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO todo_activities (id, todo_id, owner_id, action, payload, created_at)
	VALUES ($1, $2, $3, $4, $5, COALESCE($6, NOW()))
	ON CONFLICT (id) DO NOTHING
	`

	var payload []byte
	if len(activity.Payload) > 0 {
		payload = []byte(activity.Payload)
	}

	_, err := r.pool.Exec(ctx, query,
		activity.ID,
		activity.TodoID,
		activity.OwnerID,
		activity.Action,
		payload,
		nullTime(activity.CreatedAt),
	)
	return err
}

func (r *activityRepository) ListByTodo(ctx context.Context, todoID, ownerID string, limit int) ([]domain.Activity, error) {
	const query = `
	SELECT id, todo_id, owner_id, action, payload, created_at
	FROM todo_activities
	WHERE todo_id = $1 AND owner_id = $2
	ORDER BY created_at DESC
	LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, todoID, ownerID, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		var (
			entry   domain.Activity
			payload []byte
		)
		if err := rows.Scan(&entry.ID, &entry.TodoID, &entry.OwnerID, &entry.Action, &payload, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entry.Payload = make([]byte, len(payload))
		copy(entry.Payload, payload)
		activities = append(activities, entry)
	}
	return activities, rows.Err()
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > repository.MaxActivityLimit {
		return repository.MaxActivityLimit
	}
	return limit
}
