// Package Store persists the shift workflow in SQL through GORM.
package Store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"CareBridge/Models"
	"CareBridge/Workflow"
)

// GormStore implements Workflow.Store on a GORM database. Listings follow
// SQLite rowid order, which is insertion order.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the workflow tables and returns the store.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&taskRow{}, &reportRow{}, &Models.Staff{}, &Models.Client{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) GetTask(ctx context.Context, id string) (Models.Task, error) {
	var row taskRow
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Models.Task{}, Workflow.ErrTaskNotFound
	}
	if err != nil {
		return Models.Task{}, err
	}
	return row.task(), nil
}

func (s *GormStore) ListTasks(ctx context.Context, filter Workflow.TaskFilter) ([]Models.Task, error) {
	q := s.db.WithContext(ctx).Model(&taskRow{})
	if filter.StaffID != "" {
		q = q.Where("staff_id = ?", filter.StaffID)
	}
	if filter.ClientID != "" {
		q = q.Where("client_id = ?", filter.ClientID)
	}
	if filter.Date != "" {
		date, err := toDate(filter.Date)
		if err != nil {
			return nil, err
		}
		q = q.Where("date = ?", date)
	}

	var rows []taskRow
	if err := q.Order("rowid").Find(&rows).Error; err != nil {
		return nil, err
	}
	tasks := make([]Models.Task, 0, len(rows))
	for _, r := range rows {
		tasks = append(tasks, r.task())
	}
	return tasks, nil
}

func (s *GormStore) CreateTasks(ctx context.Context, tasks []Models.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	rows := make([]taskRow, 0, len(tasks))
	for _, t := range tasks {
		t.Version = 1
		row, err := newTaskRow(t)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
	if isDuplicate(err) {
		return Workflow.ErrConflict
	}
	if err != nil {
		return err
	}
	for i := range tasks {
		tasks[i].Version = 1
	}
	return nil
}

func (s *GormStore) UpdateTask(ctx context.Context, t *Models.Task) error {
	next := *t
	next.Version = t.Version + 1
	row, err := newTaskRow(next)
	if err != nil {
		return err
	}

	res := s.db.WithContext(ctx).Model(&taskRow{}).
		Where("id = ? AND version = ?", t.ID, t.Version).
		Select("*").Updates(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return s.missingOrConflict(ctx, &taskRow{}, t.ID, Workflow.ErrTaskNotFound)
	}
	t.Version = next.Version
	return nil
}

func (s *GormStore) GetReport(ctx context.Context, id string) (Models.DailyReport, error) {
	var row reportRow
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Models.DailyReport{}, Workflow.ErrReportNotFound
	}
	if err != nil {
		return Models.DailyReport{}, err
	}
	return row.report(), nil
}

func (s *GormStore) ListReports(ctx context.Context, filter Workflow.ReportFilter) ([]Models.DailyReport, error) {
	q := s.db.WithContext(ctx).Model(&reportRow{})
	if filter.StaffID != "" {
		q = q.Where("staff_id = ?", filter.StaffID)
	}
	if filter.ClientID != "" {
		q = q.Where("client_id = ?", filter.ClientID)
	}
	if filter.Date != "" {
		date, err := toDate(filter.Date)
		if err != nil {
			return nil, err
		}
		q = q.Where("date = ?", date)
	}
	if filter.Finalized != nil {
		q = q.Where("is_finalized = ?", *filter.Finalized)
	}
	if filter.Flagged != nil {
		q = q.Where("admin_flagged = ?", *filter.Flagged)
	}

	var rows []reportRow
	if err := q.Order("rowid").Find(&rows).Error; err != nil {
		return nil, err
	}
	reports := make([]Models.DailyReport, 0, len(rows))
	for _, r := range rows {
		reports = append(reports, r.report())
	}
	return reports, nil
}

// FindOrCreateReport relies on the unique (staff_id, client_id, date) index: a
// losing concurrent insert does nothing and the winner's row is read back.
func (s *GormStore) FindOrCreateReport(ctx context.Context, key Models.ReportKey, create func() Models.DailyReport) (Models.DailyReport, bool, error) {
	date, err := toDate(key.Date)
	if err != nil {
		return Models.DailyReport{}, false, err
	}

	var (
		out     Models.DailyReport
		created bool
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		byKey := func() *gorm.DB {
			return tx.Where("staff_id = ? AND client_id = ? AND date = ?", key.StaffID, key.ClientID, date)
		}

		var existing reportRow
		err := byKey().Take(&existing).Error
		if err == nil {
			out = existing.report()
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		r := create()
		r.StaffID, r.ClientID, r.Date = key.StaffID, key.ClientID, key.Date
		r.Version = 1
		row, err := newReportRow(r)
		if err != nil {
			return err
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 1 {
			out, created = r, true
			return nil
		}

		if err := byKey().Take(&existing).Error; err != nil {
			return err
		}
		out = existing.report()
		return nil
	})
	if err != nil {
		return Models.DailyReport{}, false, fmt.Errorf("find or create report: %w", err)
	}
	return out, created, nil
}

func (s *GormStore) UpdateReport(ctx context.Context, r *Models.DailyReport) error {
	next := *r
	next.Version = r.Version + 1
	row, err := newReportRow(next)
	if err != nil {
		return err
	}

	res := s.db.WithContext(ctx).Model(&reportRow{}).
		Where("id = ? AND version = ?", r.ID, r.Version).
		Select("*").Updates(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return s.missingOrConflict(ctx, &reportRow{}, r.ID, Workflow.ErrReportNotFound)
	}
	r.Version = next.Version
	return nil
}

// missingOrConflict tells a stale version apart from a missing row after an
// update matched nothing.
func (s *GormStore) missingOrConflict(ctx context.Context, model any, id string, notFound error) error {
	var n int64
	if err := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return Workflow.ErrConflict
}

func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}
