package Workflow

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"CareBridge/Models"
)

const testDay = "2024-03-12"

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(hhmm string) *fakeClock {
	c := &fakeClock{}
	c.set(hhmm)
	return c
}

func (c *fakeClock) set(hhmm string) {
	t, err := time.ParseInLocation("2006-01-02 15:04", testDay+" "+hhmm, time.UTC)
	if err != nil {
		panic(err)
	}
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func sequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

type stubSummarizer struct {
	text  string
	err   error
	calls int
	got   []Models.Task
}

func (s *stubSummarizer) GenerateShiftSummary(_ context.Context, _, _ string, tasks []Models.Task) (string, error) {
	s.calls++
	s.got = tasks
	return s.text, s.err
}

type fixture struct {
	engine *Engine
	store  *MemoryStore
	clock  *fakeClock
	ctx    context.Context
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	store := NewMemoryStore()
	clock := newFakeClock("08:00")
	base := []Option{
		WithClock(clock.Now),
		WithLocation(time.UTC),
		WithIDGenerator(sequentialIDs("id")),
		WithDirectory(NewMemoryDirectory(Models.MockStaff, Models.MockClients)),
		WithLogger(zaptest.NewLogger(t)),
	}
	return &fixture{
		engine: NewEngine(store, append(base, opts...)...),
		store:  store,
		clock:  clock,
		ctx:    context.Background(),
	}
}

func (f *fixture) schedule(t *testing.T, staffID, clientID, day, hhmm, title string) Models.Task {
	t.Helper()
	task, err := f.engine.ScheduleTask(f.ctx, NewTask{
		StaffID: staffID, ClientID: clientID, Date: day, Time: hhmm, Title: title, Description: title + " notes",
	})
	require.NoError(t, err)
	return task
}

func (f *fixture) finalizedReport(t *testing.T, content string) Models.DailyReport {
	t.Helper()
	r, err := f.engine.UpsertReportContent(f.ctx, Models.ReportKey{StaffID: "s1", ClientID: "c1", Date: testDay}, content)
	require.NoError(t, err)
	r, err = f.engine.FinalizeReport(f.ctx, r.ID)
	require.NoError(t, err)
	return r
}
