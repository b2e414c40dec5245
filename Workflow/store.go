package Workflow

import (
	"context"

	"CareBridge/Models"
)

// TaskFilter narrows a task listing. Empty fields match everything.
type TaskFilter struct {
	StaffID  string
	ClientID string
	Date     string
}

func (f TaskFilter) Match(t Models.Task) bool {
	return (f.StaffID == "" || t.StaffID == f.StaffID) &&
		(f.ClientID == "" || t.ClientID == f.ClientID) &&
		(f.Date == "" || t.Date == f.Date)
}

// ReportFilter narrows a report listing. Nil booleans match everything.
type ReportFilter struct {
	StaffID   string
	ClientID  string
	Date      string
	Finalized *bool
	Flagged   *bool
}

func (f ReportFilter) Match(r Models.DailyReport) bool {
	return (f.StaffID == "" || r.StaffID == f.StaffID) &&
		(f.ClientID == "" || r.ClientID == f.ClientID) &&
		(f.Date == "" || r.Date == f.Date) &&
		(f.Finalized == nil || r.IsFinalized == *f.Finalized) &&
		(f.Flagged == nil || r.AdminFlagged == *f.Flagged)
}

// TaskStore persists tasks. Updates are optimistic: UpdateTask must fail with
// ErrConflict when the stored version differs from t.Version, and on success
// bump t.Version. CreateTasks inserts all tasks or none and sets each
// element's Version to the stored one.
type TaskStore interface {
	GetTask(ctx context.Context, id string) (Models.Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]Models.Task, error)
	CreateTasks(ctx context.Context, tasks []Models.Task) error
	UpdateTask(ctx context.Context, t *Models.Task) error
}

// ReportStore persists daily reports. FindOrCreateReport must be atomic per
// key: concurrent callers with the same key observe a single report.
// Listings are returned in creation order so the first match is canonical.
type ReportStore interface {
	GetReport(ctx context.Context, id string) (Models.DailyReport, error)
	ListReports(ctx context.Context, filter ReportFilter) ([]Models.DailyReport, error)
	FindOrCreateReport(ctx context.Context, key Models.ReportKey, create func() Models.DailyReport) (report Models.DailyReport, created bool, err error)
	UpdateReport(ctx context.Context, r *Models.DailyReport) error
}

// Store is everything the engine needs from its repository.
type Store interface {
	TaskStore
	ReportStore
}

// Directory resolves staff and client records. A missing record is reported
// with ok=false, never an error. Lists are ordered by id.
type Directory interface {
	LookupStaff(ctx context.Context, id string) (staff Models.Staff, ok bool)
	LookupClient(ctx context.Context, id string) (client Models.Client, ok bool)
	ListStaff(ctx context.Context) ([]Models.Staff, error)
	ListClients(ctx context.Context) ([]Models.Client, error)
}
