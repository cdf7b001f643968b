package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/todo-service/domain"
	"github.com/fastygo/todo-service/internal/infrastructure/journal"
)

type healthStub struct {
	mu     sync.Mutex
	online bool
}

func (h *healthStub) IsOnline() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.online
}

func (h *healthStub) set(online bool) {
	h.mu.Lock()
	h.online = online
	h.mu.Unlock()
}

type activityRepoStub struct {
	mu       sync.Mutex
	appended []domain.Activity
	failures int
}

func (r *activityRepoStub) Append(_ context.Context, activity domain.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failures > 0 {
		r.failures--
		return errors.New("insert failed")
	}
	r.appended = append(r.appended, activity)
	return nil
}

func (r *activityRepoStub) ListByTodo(context.Context, string, string, int) ([]domain.Activity, error) {
	return nil, nil
}

func newProcessor(t *testing.T, health *healthStub, repo *activityRepoStub, cfg ProcessorConfig) *JournalProcessor {
	t.Helper()
	store, err := journal.Open(filepath.Join(t.TempDir(), "journal.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewJournalProcessor(store, health, repo, nil, cfg)
}

func TestRecord_WritesImmediatelyWhenOnline(t *testing.T) {
	repo := &activityRepoStub{}
	jp := newProcessor(t, &healthStub{online: true}, repo, ProcessorConfig{})

	require.NoError(t, jp.Record(context.Background(), domain.Activity{TodoID: "t1", Action: domain.ActivityCreated}))

	require.Len(t, repo.appended, 1)
	assert.NotEmpty(t, repo.appended[0].ID)
	assert.Equal(t, 0, jp.Backlog())
}

func TestRecord_JournalsWhileOfflineAndDrainsLater(t *testing.T) {
	repo := &activityRepoStub{}
	health := &healthStub{}
	jp := newProcessor(t, health, repo, ProcessorConfig{})
	ctx := context.Background()

	require.NoError(t, jp.Record(ctx, domain.Activity{TodoID: "t1", Action: domain.ActivityCreated}))
	require.NoError(t, jp.Record(ctx, domain.Activity{TodoID: "t1", Action: domain.ActivityCompleted}))
	assert.Equal(t, 2, jp.Backlog())

	require.NoError(t, jp.Drain(ctx))
	assert.Equal(t, 2, jp.Backlog(), "drain is skipped while offline")

	health.set(true)
	require.NoError(t, jp.Drain(ctx))
	assert.Equal(t, 0, jp.Backlog())
	require.Len(t, repo.appended, 2)
	assert.Equal(t, domain.ActivityCreated, repo.appended[0].Action)
	assert.Equal(t, domain.ActivityCompleted, repo.appended[1].Action)
}

func TestRecord_FallsBackWhenImmediateWriteFails(t *testing.T) {
	repo := &activityRepoStub{failures: 1}
	jp := newProcessor(t, &healthStub{online: true}, repo, ProcessorConfig{})

	require.NoError(t, jp.Record(context.Background(), domain.Activity{TodoID: "t1"}))
	assert.Equal(t, 1, jp.Backlog())
}

func TestDrain_DropsAfterMaxRetries(t *testing.T) {
	repo := &activityRepoStub{}
	health := &healthStub{}
	jp := newProcessor(t, health, repo, ProcessorConfig{MaxRetries: 2})
	ctx := context.Background()

	require.NoError(t, jp.Record(ctx, domain.Activity{TodoID: "t1"}))
	health.set(true)
	repo.failures = 2

	require.NoError(t, jp.Drain(ctx))
	assert.Equal(t, 1, jp.Backlog())
	require.NoError(t, jp.Drain(ctx))
	assert.Equal(t, 0, jp.Backlog())
	assert.Empty(t, repo.appended)
}

func TestActivityJournal_RecordTodo(t *testing.T) {
	repo := &activityRepoStub{}
	jp := newProcessor(t, &healthStub{online: true}, repo, ProcessorConfig{})
	recorder := NewActivityJournal(jp)

	due := time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC)
	err := recorder.RecordTodo(context.Background(), domain.ActivitySuccessor, &domain.Todo{
		ID: "t2", OwnerID: "u1", Name: "Daily Backup", DueDate: &due,
	})
	require.NoError(t, err)

	require.Len(t, repo.appended, 1)
	got := repo.appended[0]
	assert.Equal(t, "t2", got.TodoID)
	assert.Equal(t, "u1", got.OwnerID)
	assert.Equal(t, domain.ActivitySuccessor, got.Action)
	assert.Contains(t, string(got.Payload), `"Daily Backup"`)

	assert.ErrorIs(t, recorder.RecordTodo(context.Background(), domain.ActivityCreated, nil), domain.ErrInvalidPayload)
}
