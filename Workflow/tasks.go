package Workflow

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"CareBridge/Models"
)

// NewTask is the input for scheduling a task.
type NewTask struct {
	StaffID     string
	ClientID    string
	Date        string
	Time        string
	Title       string
	Description string
}

// ScheduleTask creates a yet-to-start task.
func (e *Engine) ScheduleTask(ctx context.Context, in NewTask) (Models.Task, error) {
	if strings.TrimSpace(in.StaffID) == "" || strings.TrimSpace(in.ClientID) == "" || strings.TrimSpace(in.Title) == "" {
		return Models.Task{}, fmt.Errorf("staff, client and title are required: %w", ErrEmptyText)
	}
	if err := ValidateDate(in.Date); err != nil {
		return Models.Task{}, err
	}
	if _, err := ParseClock(in.Time); err != nil {
		return Models.Task{}, err
	}

	t := Models.Task{
		ID:          e.newID(),
		StaffID:     in.StaffID,
		ClientID:    in.ClientID,
		Date:        in.Date,
		Time:        in.Time,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Status:      Models.TaskYetToStart,
	}
	batch := []Models.Task{t}
	if err := e.store.CreateTasks(ctx, batch); err != nil {
		return Models.Task{}, fmt.Errorf("create task: %w", err)
	}
	t = batch[0]
	e.logger.Info("task scheduled",
		zap.String("task_id", t.ID),
		zap.String("staff_id", t.StaffID),
		zap.String("client_id", t.ClientID),
		zap.String("date", t.Date))
	return t, nil
}

// SetTaskStatus moves a task to status. Completing stamps CompletedAt and
// TimingResult; any other target leaves them as they were, so a task moved
// out of completed keeps its earlier completion stamp.
func (e *Engine) SetTaskStatus(ctx context.Context, id string, status Models.TaskStatus) (Models.Task, error) {
	if !status.IsValid() {
		return Models.Task{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	t, err := e.mutateTask(ctx, id, func(t *Models.Task) error {
		if !e.policy(t.Status, status) {
			return fmt.Errorf("%w: %s -> %s", ErrTransitionDenied, t.Status, status)
		}
		t.Status = status
		if status == Models.TaskCompleted {
			now := e.clock()
			t.CompletedAt = &now
			timing, err := ClassifyTiming(t.Time, now)
			if err != nil {
				e.logger.Warn("unparseable scheduled time, classifying as on time",
					zap.String("task_id", t.ID), zap.String("time", t.Time), zap.Error(err))
			}
			t.TimingResult = timing
		}
		return nil
	})
	if err != nil {
		return t, err
	}

	fields := []zap.Field{zap.String("task_id", t.ID), zap.String("status", string(t.Status))}
	if status == Models.TaskCompleted {
		fields = append(fields, zap.String("timing", string(t.TimingResult)))
	}
	e.logger.Info("task status updated", fields...)
	return t, nil
}

// SetTaskComment replaces the staff member's notes on a task.
func (e *Engine) SetTaskComment(ctx context.Context, id, comment string) (Models.Task, error) {
	return e.mutateTask(ctx, id, func(t *Models.Task) error {
		t.Comments = comment
		return nil
	})
}

// DuplicateTasksToDate copies tasks onto targetDate as fresh, yet-to-start
// tasks. Sources are untouched. Every source must sit on a different day than
// targetDate; no ordering between the days is enforced.
func (e *Engine) DuplicateTasksToDate(ctx context.Context, tasks []Models.Task, targetDate string) ([]Models.Task, error) {
	if err := ValidateDate(targetDate); err != nil {
		return nil, err
	}

	copies := make([]Models.Task, 0, len(tasks))
	for _, src := range tasks {
		if src.Date == targetDate {
			return nil, fmt.Errorf("%w: task %s already on %s", ErrSameDate, src.ID, targetDate)
		}
		c := src
		c.ID = e.newID()
		c.Date = targetDate
		c.Status = Models.TaskYetToStart
		c.CompletedAt = nil
		c.TimingResult = ""
		c.Comments = ""
		c.Version = 0
		copies = append(copies, c)
	}
	if len(copies) == 0 {
		return copies, nil
	}

	if err := e.store.CreateTasks(ctx, copies); err != nil {
		return nil, fmt.Errorf("create duplicated tasks: %w", err)
	}
	e.logger.Info("roster duplicated", zap.Int("tasks", len(copies)), zap.String("target_date", targetDate))
	return copies, nil
}

// DuplicateRoster copies one staff member's tasks for a client from sourceDate onto targetDate.
func (e *Engine) DuplicateRoster(ctx context.Context, key Models.ReportKey, targetDate string) ([]Models.Task, error) {
	if err := ValidateDate(key.Date); err != nil {
		return nil, err
	}
	if key.Date == targetDate {
		return nil, ErrSameDate
	}
	tasks, err := e.Tasks(ctx, TaskFilter{StaffID: key.StaffID, ClientID: key.ClientID, Date: key.Date})
	if err != nil {
		return nil, err
	}
	return e.DuplicateTasksToDate(ctx, tasks, targetDate)
}

func (e *Engine) Task(ctx context.Context, id string) (Models.Task, error) {
	return e.store.GetTask(ctx, id)
}

func (e *Engine) Tasks(ctx context.Context, filter TaskFilter) ([]Models.Task, error) {
	tasks, err := e.store.ListTasks(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}
