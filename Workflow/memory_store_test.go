package Workflow

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CareBridge/Models"
)

func TestMemoryStoreOptimisticUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	tasks := []Models.Task{{ID: "t1", Title: "A", Date: testDay}}
	require.NoError(t, s.CreateTasks(ctx, tasks))
	assert.EqualValues(t, 1, tasks[0].Version)

	a, err := s.GetTask(ctx, "t1")
	require.NoError(t, err)
	b, err := s.GetTask(ctx, "t1")
	require.NoError(t, err)

	a.Comments = "first"
	require.NoError(t, s.UpdateTask(ctx, &a))
	assert.EqualValues(t, 2, a.Version)

	b.Comments = "second"
	assert.ErrorIs(t, s.UpdateTask(ctx, &b), ErrConflict)

	got, err := s.GetTask(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "first", got.Comments)

	missing := Models.Task{ID: "nope"}
	assert.ErrorIs(t, s.UpdateTask(ctx, &missing), ErrTaskNotFound)
}

func TestMemoryStoreCreateTasksAllOrNone(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.CreateTasks(ctx, []Models.Task{{ID: "t1"}}))

	err := s.CreateTasks(ctx, []Models.Task{{ID: "t2"}, {ID: "t1"}})
	assert.ErrorIs(t, err, ErrConflict)
	err = s.CreateTasks(ctx, []Models.Task{{ID: "t3"}, {ID: "t3"}})
	assert.ErrorIs(t, err, ErrConflict)

	all, err := s.ListTasks(ctx, TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	done := at(t, "08:00")
	require.NoError(t, s.CreateTasks(ctx, []Models.Task{{ID: "t1", CompletedAt: &done}}))

	got, err := s.GetTask(ctx, "t1")
	require.NoError(t, err)
	*got.CompletedAt = got.CompletedAt.Add(1)
	got.Title = "mutated"

	again, err := s.GetTask(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, done, *again.CompletedAt)
	assert.Empty(t, again.Title)
}

func TestMemoryStoreFindOrCreateReportConcurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	ids := sequentialIDs("r")

	const callers = 32
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		seen    = map[string]bool{}
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, ok, err := s.FindOrCreateReport(ctx, shift, func() Models.DailyReport {
				return Models.DailyReport{ID: ids(), Content: "draft"}
			})
			assert.NoError(t, err)
			mu.Lock()
			defer mu.Unlock()
			if ok {
				created++
			}
			seen[r.ID] = true
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Len(t, seen, 1)
	all, err := s.ListReports(ctx, ReportFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, shift, all[0].Key())
	assert.EqualValues(t, 1, all[0].Version)
}

func TestMemoryStoreReportConflict(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	r, _, err := s.FindOrCreateReport(ctx, shift, func() Models.DailyReport { return Models.DailyReport{ID: "r1"} })
	require.NoError(t, err)

	stale := r
	r.Content = "fresh"
	require.NoError(t, s.UpdateReport(ctx, &r))
	stale.Content = "stale"
	assert.ErrorIs(t, s.UpdateReport(ctx, &stale), ErrConflict)

	flagged := true
	none, err := s.ListReports(ctx, ReportFilter{Flagged: &flagged})
	require.NoError(t, err)
	assert.Empty(t, none)
}
