package todo_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/todo-service/domain"
	"github.com/fastygo/todo-service/pkg/optional"
	"github.com/fastygo/todo-service/repository"
	"github.com/fastygo/todo-service/repository/memory"
	"github.com/fastygo/todo-service/usecase/todo"
)

const owner = "user-1"

type recordedActivity struct {
	action string
	todoID string
}

type recorderStub struct {
	mu      sync.Mutex
	entries []recordedActivity
	err     error
}

func (r *recorderStub) RecordTodo(_ context.Context, action string, t *domain.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, recordedActivity{action: action, todoID: t.ID})
	return r.err
}

func (r *recorderStub) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.action)
	}
	return out
}

type fixture struct {
	uc       *todo.UseCase
	repo     *memory.TodoRepository
	recorder *recorderStub
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	stamp := time.Date(2026, 1, 28, 8, 0, 0, 0, time.UTC)
	repo := memory.NewTodoRepositoryWithClock(func() time.Time {
		stamp = stamp.Add(time.Second)
		return stamp
	})
	recorder := &recorderStub{}
	uc := todo.New(repo, recorder, nil, todo.WithClock(func() time.Time {
		return time.Date(2026, 1, 28, 15, 30, 0, 0, time.UTC)
	}))
	return fixture{uc: uc, repo: repo, recorder: recorder}
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func (f fixture) create(t *testing.T, req todo.CreateRequest) *domain.TodoDetail {
	t.Helper()
	created, err := f.uc.Create(context.Background(), owner, req)
	require.NoError(t, err)
	return created
}

func complete() todo.UpdateRequest {
	return todo.UpdateRequest{ProgressStatus: optional.Of(domain.StatusCompleted)}
}

func TestCreate_Defaults(t *testing.T) {
	f := newFixture(t)

	created := f.create(t, todo.CreateRequest{Name: "Groceries"})

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, owner, created.OwnerID)
	assert.Equal(t, "", created.Detail)
	assert.Equal(t, domain.StatusNotStarted, created.ProgressStatus)
	assert.Equal(t, domain.RecurrenceNone, created.RecurrenceType)
	assert.Nil(t, created.DueDate)
	assert.Nil(t, created.ParentID)
	assert.Equal(t, domain.NewSubtaskProgress(0, 0), created.SubtaskProgress)
	assert.Equal(t, []string{domain.ActivityCreated}, f.recorder.actions())
}

func TestCreate_NameUniqueness(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.create(t, todo.CreateRequest{Name: "Groceries"})

	_, err := f.uc.Create(ctx, owner, todo.CreateRequest{Name: "Groceries"})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
	assert.True(t, domain.IsKind(err, domain.KindDuplicateName))

	_, err = f.uc.Create(ctx, "someone-else", todo.CreateRequest{Name: "Groceries"})
	require.NoError(t, err)

	_, err = f.uc.Update(ctx, owner, first.ID, complete())
	require.NoError(t, err)

	_, err = f.uc.Create(ctx, owner, todo.CreateRequest{Name: "Groceries"})
	assert.NoError(t, err)
}

func TestCreate_NestingDepth(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	parent := f.create(t, todo.CreateRequest{Name: "Release"})
	child := f.create(t, todo.CreateRequest{Name: "Tag", ParentID: &parent.ID})
	assert.Equal(t, parent.ID, *child.ParentID)

	_, err := f.uc.Create(ctx, owner, todo.CreateRequest{Name: "Grandchild", ParentID: &child.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidParent)

	missing := "00000000-0000-0000-0000-000000000000"
	_, err = f.uc.Create(ctx, owner, todo.CreateRequest{Name: "Orphan", ParentID: &missing})
	assert.ErrorIs(t, err, domain.ErrInvalidParent)

	_, err = f.uc.Create(ctx, "intruder", todo.CreateRequest{Name: "Hijack", ParentID: &parent.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidParent)
}

func TestCreate_ValidationOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	parent := f.create(t, todo.CreateRequest{Name: "Release"})
	child := f.create(t, todo.CreateRequest{Name: "Tag", ParentID: &parent.ID})

	tests := []struct {
		name string
		req  todo.CreateRequest
		want error
	}{
		{
			name: "recurrence without due date beats invalid parent",
			req:  todo.CreateRequest{Name: "Release", RecurrenceType: domain.RecurrenceDaily, ParentID: &child.ID},
			want: domain.RequiredFieldMissing("dueDate"),
		},
		{
			name: "invalid parent beats subtask recurrence",
			req:  todo.CreateRequest{Name: "Release", RecurrenceType: domain.RecurrenceDaily, DueDate: date(2026, 2, 1), ParentID: &child.ID},
			want: domain.ErrInvalidParent,
		},
		{
			name: "subtask recurrence beats duplicate name",
			req:  todo.CreateRequest{Name: "Tag", RecurrenceType: domain.RecurrenceWeekly, DueDate: date(2026, 2, 1), ParentID: &parent.ID},
			want: domain.ErrSubtaskRecurrence,
		},
		{
			name: "duplicate name last",
			req:  todo.CreateRequest{Name: "Tag", ParentID: &parent.ID},
			want: domain.ErrDuplicateName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Create(ctx, owner, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Equal(t, 2, f.repo.Len())
}

func TestCreate_RecurrenceRequiresDueDate(t *testing.T) {
	f := newFixture(t)

	for _, r := range []domain.RecurrenceType{domain.RecurrenceDaily, domain.RecurrenceWeekly, domain.RecurrenceMonthly} {
		_, err := f.uc.Create(context.Background(), owner, todo.CreateRequest{Name: "Repeat " + string(r), RecurrenceType: r})
		require.Error(t, err)

		var derr *domain.Error
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, domain.KindRequiredFieldMissing, derr.Kind)
		assert.Equal(t, "dueDate", derr.Field)
	}
	assert.Equal(t, 0, f.repo.Len())
}

func TestCreate_SubtaskRecurrenceRejected(t *testing.T) {
	f := newFixture(t)
	parent := f.create(t, todo.CreateRequest{Name: "Release"})

	for _, r := range []domain.RecurrenceType{domain.RecurrenceDaily, domain.RecurrenceWeekly, domain.RecurrenceMonthly} {
		_, err := f.uc.Create(context.Background(), owner, todo.CreateRequest{
			Name:           "Sub " + string(r),
			RecurrenceType: r,
			DueDate:        date(2026, 2, 1),
			ParentID:       &parent.ID,
		})
		assert.ErrorIs(t, err, domain.ErrSubtaskRecurrence)
	}
}

func TestCreate_RejectsUnknownEnums(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), owner, todo.CreateRequest{Name: "x", ProgressStatus: "paused"})
	assert.True(t, domain.IsKind(err, domain.KindInvalidFormat))

	_, err = f.uc.Create(context.Background(), owner, todo.CreateRequest{Name: "x", RecurrenceType: "yearly"})
	assert.True(t, domain.IsKind(err, domain.KindInvalidFormat))
}

func TestGet_ComputesSubtaskProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	parent := f.create(t, todo.CreateRequest{Name: "Release"})
	a := f.create(t, todo.CreateRequest{Name: "Tag", ParentID: &parent.ID})
	f.create(t, todo.CreateRequest{Name: "Notes", ParentID: &parent.ID})
	f.create(t, todo.CreateRequest{Name: "Announce", ParentID: &parent.ID})

	_, err := f.uc.Update(ctx, owner, a.ID, complete())
	require.NoError(t, err)

	got, err := f.uc.Get(ctx, owner, parent.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalSubtaskCount)
	assert.Equal(t, 1, got.CompletedSubtaskCount)
	assert.Equal(t, 33, got.SubtaskProgressPercent)

	leaf, err := f.uc.Get(ctx, owner, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.NewSubtaskProgress(0, 0), leaf.SubtaskProgress)

	_, err = f.uc.Get(ctx, "intruder", parent.ID)
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)
}

// lockTrace records row reads; reads inside WithinTx are the ones Postgres takes FOR UPDATE.
type lockTrace struct {
	*memory.TodoRepository

	mu    sync.Mutex
	calls []string
}

func (l *lockTrace) note(call string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

func (l *lockTrace) FindByID(ctx context.Context, id, ownerID string) (*domain.Todo, error) {
	l.note("read:" + id)
	return l.TodoRepository.FindByID(ctx, id, ownerID)
}

func (l *lockTrace) WithinTx(ctx context.Context, fn func(repo repository.TodoRepository) error) error {
	return l.TodoRepository.WithinTx(ctx, func(repo repository.TodoRepository) error {
		return fn(&lockedTx{TodoRepository: repo, trace: l})
	})
}

type lockedTx struct {
	repository.TodoRepository
	trace *lockTrace
}

func (t *lockedTx) FindByID(ctx context.Context, id, ownerID string) (*domain.Todo, error) {
	t.trace.note("lock:" + id)
	return t.TodoRepository.FindByID(ctx, id, ownerID)
}

func TestUpdate_LocksParentBeforeSubtask(t *testing.T) {
	trace := &lockTrace{TodoRepository: memory.NewTodoRepository()}
	uc := todo.New(trace, nil, nil)
	ctx := context.Background()

	parent, err := uc.Create(ctx, owner, todo.CreateRequest{Name: "Move house"})
	require.NoError(t, err)
	child, err := uc.Create(ctx, owner, todo.CreateRequest{Name: "Pack books", ParentID: &parent.ID})
	require.NoError(t, err)

	trace.calls = nil
	_, err = uc.Update(ctx, owner, child.ID, todo.UpdateRequest{ProgressStatus: optional.Of(domain.StatusCompleted)})
	require.NoError(t, err)

	assert.Equal(t, []string{"read:" + child.ID, "lock:" + parent.ID, "lock:" + child.ID}, trace.calls)
}

func TestUpdate_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Update(context.Background(), owner, "missing", complete())
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)
}

func TestUpdate_PartialPreservesOtherFields(t *testing.T) {
	f := newFixture(t)
	original := f.create(t, todo.CreateRequest{
		Name:           "Water plants",
		Detail:         "balcony",
		DueDate:        date(2026, 2, 3),
		ProgressStatus: domain.StatusInProgress,
		RecurrenceType: domain.RecurrenceWeekly,
	})

	updated, err := f.uc.Update(context.Background(), owner, original.ID, todo.UpdateRequest{
		Detail: optional.Of("balcony and kitchen"),
	})
	require.NoError(t, err)

	assert.Equal(t, "balcony and kitchen", updated.Detail)
	assert.Equal(t, original.Name, updated.Name)
	assert.Equal(t, original.DueDate, updated.DueDate)
	assert.Equal(t, original.ProgressStatus, updated.ProgressStatus)
	assert.Equal(t, original.RecurrenceType, updated.RecurrenceType)
	assert.Equal(t, []string{domain.ActivityCreated, domain.ActivityUpdated}, f.recorder.actions())
}

func TestUpdate_NullHandling(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	original := f.create(t, todo.CreateRequest{Name: "Dentist", DueDate: date(2026, 3, 2)})

	cleared, err := f.uc.Update(ctx, owner, original.ID, todo.UpdateRequest{DueDate: optional.Null[time.Time]()})
	require.NoError(t, err)
	assert.Nil(t, cleared.DueDate)

	tests := []struct {
		field string
		req   todo.UpdateRequest
	}{
		{"name", todo.UpdateRequest{Name: optional.Null[string]()}},
		{"detail", todo.UpdateRequest{Detail: optional.Null[string]()}},
		{"progressStatus", todo.UpdateRequest{ProgressStatus: optional.Null[domain.ProgressStatus]()}},
		{"recurrenceType", todo.UpdateRequest{RecurrenceType: optional.Null[domain.RecurrenceType]()}},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			_, err := f.uc.Update(ctx, owner, original.ID, tt.req)
			assert.ErrorIs(t, err, domain.RequiredFieldMissing(tt.field))
		})
	}
}

func TestUpdate_EffectiveRecurrenceDueDatePair(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	plain := f.create(t, todo.CreateRequest{Name: "Laundry"})
	_, err := f.uc.Update(ctx, owner, plain.ID, todo.UpdateRequest{RecurrenceType: optional.Of(domain.RecurrenceWeekly)})
	assert.ErrorIs(t, err, domain.RequiredFieldMissing("dueDate"))

	recurring := f.create(t, todo.CreateRequest{Name: "Rent", RecurrenceType: domain.RecurrenceMonthly, DueDate: date(2026, 2, 1)})
	_, err = f.uc.Update(ctx, owner, recurring.ID, todo.UpdateRequest{DueDate: optional.Null[time.Time]()})
	assert.ErrorIs(t, err, domain.RequiredFieldMissing("dueDate"))

	updated, err := f.uc.Update(ctx, owner, recurring.ID, todo.UpdateRequest{
		DueDate:        optional.Null[time.Time](),
		RecurrenceType: optional.Of(domain.RecurrenceNone),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.DueDate)
	assert.Equal(t, domain.RecurrenceNone, updated.RecurrenceType)
}

func TestUpdate_SubtaskRecurrenceRejected(t *testing.T) {
	f := newFixture(t)
	parent := f.create(t, todo.CreateRequest{Name: "Release"})
	child := f.create(t, todo.CreateRequest{Name: "Tag", ParentID: &parent.ID, DueDate: date(2026, 2, 1)})

	_, err := f.uc.Update(context.Background(), owner, child.ID, todo.UpdateRequest{RecurrenceType: optional.Of(domain.RecurrenceDaily)})
	assert.ErrorIs(t, err, domain.ErrSubtaskRecurrence)
}

func TestUpdate_NameUniquenessExcludesSelf(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.create(t, todo.CreateRequest{Name: "Alpha"})
	f.create(t, todo.CreateRequest{Name: "Beta"})

	_, err := f.uc.Update(ctx, owner, a.ID, todo.UpdateRequest{Name: optional.Of("Alpha")})
	require.NoError(t, err)

	_, err = f.uc.Update(ctx, owner, a.ID, todo.UpdateRequest{Name: optional.Of("Beta")})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestUpdate_CompletionGate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	parent := f.create(t, todo.CreateRequest{Name: "Release"})
	a := f.create(t, todo.CreateRequest{Name: "Tag", ParentID: &parent.ID})
	b := f.create(t, todo.CreateRequest{Name: "Announce", ParentID: &parent.ID})

	_, err := f.uc.Update(ctx, owner, parent.ID, complete())
	assert.ErrorIs(t, err, domain.ErrParentHasIncompleteSubtasks)

	_, err = f.uc.Update(ctx, owner, a.ID, complete())
	require.NoError(t, err, "subtasks never block on siblings")

	_, err = f.uc.Update(ctx, owner, parent.ID, complete())
	assert.ErrorIs(t, err, domain.ErrParentHasIncompleteSubtasks)

	_, err = f.uc.Update(ctx, owner, b.ID, complete())
	require.NoError(t, err)

	done, err := f.uc.Update(ctx, owner, parent.ID, complete())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, done.ProgressStatus)
	assert.Equal(t, 100, done.SubtaskProgressPercent)
}

func TestUpdate_DailyBackupSuccessor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	backup := f.create(t, todo.CreateRequest{
		Name:           "Daily Backup",
		RecurrenceType: domain.RecurrenceDaily,
		DueDate:        date(2026, 1, 28),
	})

	done, err := f.uc.Update(ctx, owner, backup.ID, complete())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, done.ProgressStatus)

	todos, err := f.uc.List(ctx, owner, todo.ListRequest{})
	require.NoError(t, err)
	require.Len(t, todos, 2)

	successor := todos[0]
	require.NotNil(t, successor.PreviousTodoID)
	assert.Equal(t, backup.ID, *successor.PreviousTodoID)
	assert.Equal(t, date(2026, 1, 29), successor.DueDate)
	assert.Equal(t, domain.StatusNotStarted, successor.ProgressStatus)
	assert.Equal(t, "Daily Backup", successor.Name)
	assert.Equal(t, domain.RecurrenceDaily, successor.RecurrenceType)
	assert.Nil(t, successor.ParentID)

	assert.Equal(t, []string{domain.ActivityCreated, domain.ActivityCompleted, domain.ActivitySuccessor}, f.recorder.actions())
}

func TestUpdate_SuccessorIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	backup := f.create(t, todo.CreateRequest{Name: "Backup", RecurrenceType: domain.RecurrenceDaily, DueDate: date(2026, 1, 28)})

	_, err := f.uc.Update(ctx, owner, backup.ID, complete())
	require.NoError(t, err)
	_, err = f.uc.Update(ctx, owner, backup.ID, complete())
	require.NoError(t, err)

	reopen := todo.UpdateRequest{ProgressStatus: optional.Of(domain.StatusInProgress)}

	// The active successor holds the name, so the source cannot become active again.
	_, err = f.uc.Update(ctx, owner, backup.ID, reopen)
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	todos, err := f.uc.List(ctx, owner, todo.ListRequest{})
	require.NoError(t, err)
	require.Len(t, todos, 2)
	successor := todos[0]
	require.NotNil(t, successor.PreviousTodoID)
	require.Equal(t, backup.ID, *successor.PreviousTodoID)

	_, err = f.uc.Update(ctx, owner, successor.ID, todo.UpdateRequest{Name: optional.Of("Backup (next)")})
	require.NoError(t, err)

	_, err = f.uc.Update(ctx, owner, backup.ID, reopen)
	require.NoError(t, err)
	_, err = f.uc.Update(ctx, owner, backup.ID, complete())
	require.NoError(t, err)

	assert.Equal(t, 2, f.repo.Len())
}

func TestUpdate_ConcurrentCompletionCreatesOneSuccessor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	backup := f.create(t, todo.CreateRequest{Name: "Backup", RecurrenceType: domain.RecurrenceWeekly, DueDate: date(2026, 1, 28)})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Update(ctx, owner, backup.ID, complete())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, f.repo.Len())
}

func TestUpdate_NoSuccessorWithoutRecurrence(t *testing.T) {
	f := newFixture(t)

	plain := f.create(t, todo.CreateRequest{Name: "Once", DueDate: date(2026, 1, 28)})
	_, err := f.uc.Update(context.Background(), owner, plain.ID, complete())
	require.NoError(t, err)

	assert.Equal(t, 1, f.repo.Len())
}

func TestUpdate_RecorderFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture(t)
	f.recorder.err = errors.New("journal closed")

	created := f.create(t, todo.CreateRequest{Name: "Resilient"})
	_, err := f.uc.Update(context.Background(), owner, created.ID, todo.UpdateRequest{Detail: optional.Of("still fine")})
	assert.NoError(t, err)
}

func TestDelete_CascadesToSubtasks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	parent := f.create(t, todo.CreateRequest{Name: "Release"})
	child := f.create(t, todo.CreateRequest{Name: "Tag", ParentID: &parent.ID})

	require.NoError(t, f.uc.Delete(ctx, owner, parent.ID))

	_, err := f.uc.Get(ctx, owner, parent.ID)
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)
	_, err = f.uc.Get(ctx, owner, child.ID)
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)

	assert.ErrorIs(t, f.uc.Delete(ctx, owner, parent.ID), domain.ErrTodoNotFound)
}

func TestDelete_KeepsSuccessor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	backup := f.create(t, todo.CreateRequest{Name: "Backup", RecurrenceType: domain.RecurrenceDaily, DueDate: date(2026, 1, 28)})
	_, err := f.uc.Update(ctx, owner, backup.ID, complete())
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(ctx, owner, backup.ID))

	todos, err := f.uc.List(ctx, owner, todo.ListRequest{})
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Nil(t, todos[0].PreviousTodoID)
}

func TestList_Filters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.create(t, todo.CreateRequest{Name: "Save 100% Coverage"})
	f.create(t, todo.CreateRequest{Name: "Save 100X Coverage"})
	f.create(t, todo.CreateRequest{Name: "Call mom", Detail: "about coverage", DueDate: date(2026, 1, 28), ProgressStatus: domain.StatusInProgress})
	f.create(t, todo.CreateRequest{Name: "Taxes", DueDate: date(2026, 1, 20)})

	names := func(req todo.ListRequest) []string {
		todos, err := f.uc.List(ctx, owner, req)
		require.NoError(t, err)
		out := []string{}
		for _, t := range todos {
			out = append(out, t.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Save 100% Coverage"}, names(todo.ListRequest{Keyword: "100%"}))
	assert.Equal(t, []string{"Call mom"}, names(todo.ListRequest{Keyword: "  coverage "}))
	assert.Len(t, names(todo.ListRequest{Keyword: "   "}), 4)
	assert.Equal(t, []string{"Call mom"}, names(todo.ListRequest{DueDate: domain.DueToday}))
	assert.Equal(t, []string{"Taxes"}, names(todo.ListRequest{DueDate: domain.DueOverdue}))
	assert.Equal(t, []string{"Save 100X Coverage", "Save 100% Coverage"}, names(todo.ListRequest{DueDate: domain.DueNone}))
	assert.Equal(t, []string{"Call mom"}, names(todo.ListRequest{ProgressStatus: domain.StatusInProgress}))

	empty, err := f.uc.List(ctx, "nobody", todo.ListRequest{})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = f.uc.List(ctx, owner, todo.ListRequest{DueDate: "tomorrow"})
	assert.True(t, domain.IsKind(err, domain.KindInvalidFormat))
}
