package Workflow

import (
	"context"
	"sync"

	"CareBridge/Models"
)

// MemoryStore is a process-local Store. Records are copied in and out so
// callers never share memory with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	tasks   []Models.Task
	reports []Models.DailyReport
	taskIdx map[string]int
	repIdx  map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		taskIdx: make(map[string]int),
		repIdx:  make(map[string]int),
	}
}

func (s *MemoryStore) GetTask(_ context.Context, id string) (Models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.taskIdx[id]
	if !ok {
		return Models.Task{}, ErrTaskNotFound
	}
	return cloneTask(s.tasks[i]), nil
}

func (s *MemoryStore) ListTasks(_ context.Context, filter TaskFilter) ([]Models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Models.Task, 0)
	for _, t := range s.tasks {
		if filter.Match(t) {
			out = append(out, cloneTask(t))
		}
	}
	return out, nil
}

// CreateTasks inserts all tasks or none.
func (s *MemoryStore) CreateTasks(_ context.Context, tasks []Models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if _, exists := s.taskIdx[t.ID]; exists || seen[t.ID] {
			return ErrConflict
		}
		seen[t.ID] = true
	}
	for i := range tasks {
		tasks[i].Version = 1
		s.taskIdx[tasks[i].ID] = len(s.tasks)
		s.tasks = append(s.tasks, cloneTask(tasks[i]))
	}
	return nil
}

func (s *MemoryStore) UpdateTask(_ context.Context, t *Models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.taskIdx[t.ID]
	if !ok {
		return ErrTaskNotFound
	}
	if s.tasks[i].Version != t.Version {
		return ErrConflict
	}
	t.Version++
	s.tasks[i] = cloneTask(*t)
	return nil
}

func (s *MemoryStore) GetReport(_ context.Context, id string) (Models.DailyReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.repIdx[id]
	if !ok {
		return Models.DailyReport{}, ErrReportNotFound
	}
	return cloneReport(s.reports[i]), nil
}

func (s *MemoryStore) ListReports(_ context.Context, filter ReportFilter) ([]Models.DailyReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Models.DailyReport, 0)
	for _, r := range s.reports {
		if filter.Match(r) {
			out = append(out, cloneReport(r))
		}
	}
	return out, nil
}

// FindOrCreateReport holds the write lock across lookup and insert.
func (s *MemoryStore) FindOrCreateReport(_ context.Context, key Models.ReportKey, create func() Models.DailyReport) (Models.DailyReport, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reports {
		if r.Key() == key {
			return cloneReport(r), false, nil
		}
	}
	r := create()
	if _, exists := s.repIdx[r.ID]; exists {
		return Models.DailyReport{}, false, ErrConflict
	}
	r.StaffID, r.ClientID, r.Date = key.StaffID, key.ClientID, key.Date
	r.Version = 1
	s.repIdx[r.ID] = len(s.reports)
	s.reports = append(s.reports, cloneReport(r))
	return cloneReport(r), true, nil
}

func (s *MemoryStore) UpdateReport(_ context.Context, r *Models.DailyReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.repIdx[r.ID]
	if !ok {
		return ErrReportNotFound
	}
	if s.reports[i].Version != r.Version {
		return ErrConflict
	}
	r.Version++
	s.reports[i] = cloneReport(*r)
	return nil
}

func cloneTask(t Models.Task) Models.Task {
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		t.CompletedAt = &at
	}
	return t
}

func cloneReport(r Models.DailyReport) Models.DailyReport {
	if r.ClientFeedbackAt != nil {
		at := *r.ClientFeedbackAt
		r.ClientFeedbackAt = &at
	}
	if r.AdminReplyAt != nil {
		at := *r.AdminReplyAt
		r.AdminReplyAt = &at
	}
	return r
}
