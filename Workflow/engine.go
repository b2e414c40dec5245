// Package Workflow owns the shift task and daily report lifecycle: status
// transitions, arrival timing, roster duplication, report drafting and
// finalization, and the client feedback / agency reply loop.
package Workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"CareBridge/Models"
)

// maxAttempts bounds the optimistic read-modify-write retry loop.
const maxAttempts = 3

// DefaultSummaryTimeout caps a single call to the summary generator.
const DefaultSummaryTimeout = 20 * time.Second

// Engine applies workflow operations to an injected Store. It holds no entity
// state of its own; every mutation is a versioned read-modify-write.
type Engine struct {
	store          Store
	directory      Directory
	summarizer     Summarizer
	policy         TransitionPolicy
	now            func() time.Time
	newID          func() string
	location       *time.Location
	summaryTimeout time.Duration
	logger         *zap.Logger
}

type Option func(*Engine)

func WithDirectory(d Directory) Option { return func(e *Engine) { e.directory = d } }

func WithSummarizer(s Summarizer) Option { return func(e *Engine) { e.summarizer = s } }

func WithTransitionPolicy(p TransitionPolicy) Option { return func(e *Engine) { e.policy = p } }

func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

func WithIDGenerator(gen func() string) Option { return func(e *Engine) { e.newID = gen } }

// WithLocation sets the zone whose wall clock is used for timing classification.
func WithLocation(loc *time.Location) Option { return func(e *Engine) { e.location = loc } }

func WithSummaryTimeout(d time.Duration) Option { return func(e *Engine) { e.summaryTimeout = d } }

func WithLogger(l *zap.Logger) Option { return func(e *Engine) { e.logger = l } }

func NewEngine(store Store, opts ...Option) *Engine {
	e := &Engine{
		store:          store,
		directory:      NewMemoryDirectory(nil, nil),
		summarizer:     unavailableSummarizer{},
		policy:         Permissive,
		now:            time.Now,
		newID:          uuid.NewString,
		location:       time.Local,
		summaryTimeout: DefaultSummaryTimeout,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) clock() time.Time {
	return e.now().In(e.location)
}

// mutateTask loads a task, applies fn and saves it, retrying when another
// writer updated the task in between.
func (e *Engine) mutateTask(ctx context.Context, id string, fn func(t *Models.Task) error) (Models.Task, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		t, err := e.store.GetTask(ctx, id)
		if err != nil {
			return Models.Task{}, err
		}
		if err := fn(&t); err != nil {
			return t, err
		}
		err = e.store.UpdateTask(ctx, &t)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, ErrConflict) {
			return Models.Task{}, fmt.Errorf("update task %s: %w", id, err)
		}
		lastErr = err
		e.logger.Debug("task update conflict, retrying", zap.String("task_id", id), zap.Int("attempt", attempt+1))
	}
	return Models.Task{}, fmt.Errorf("update task %s: %w", id, lastErr)
}

func (e *Engine) mutateReport(ctx context.Context, id string, fn func(r *Models.DailyReport) error) (Models.DailyReport, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		r, err := e.store.GetReport(ctx, id)
		if err != nil {
			return Models.DailyReport{}, err
		}
		if err := fn(&r); err != nil {
			return r, err
		}
		err = e.store.UpdateReport(ctx, &r)
		if err == nil {
			return r, nil
		}
		if !errors.Is(err, ErrConflict) {
			return Models.DailyReport{}, fmt.Errorf("update report %s: %w", id, err)
		}
		lastErr = err
		e.logger.Debug("report update conflict, retrying", zap.String("report_id", id), zap.Int("attempt", attempt+1))
	}
	return Models.DailyReport{}, fmt.Errorf("update report %s: %w", id, lastErr)
}

// staffName and clientName never fail; unknown ids resolve to placeholders.
func (e *Engine) staffName(ctx context.Context, id string) string {
	if s, ok := e.directory.LookupStaff(ctx, id); ok {
		return s.Name
	}
	return Models.UnknownStaffName
}

func (e *Engine) clientName(ctx context.Context, id string) string {
	if c, ok := e.directory.LookupClient(ctx, id); ok {
		return c.Name
	}
	return Models.UnknownClientName
}
