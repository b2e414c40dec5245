package Store

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"CareBridge/Models"
	"CareBridge/Workflow"
)

type taskRow struct {
	ID           string         `gorm:"primaryKey;size:64"`
	StaffID      string         `gorm:"index:idx_task_shift;not null"`
	ClientID     string         `gorm:"index:idx_task_shift;not null"`
	Date         datatypes.Date `gorm:"index:idx_task_shift;not null"`
	Time         datatypes.Time `gorm:"not null"`
	Title        string         `gorm:"not null"`
	Description  string
	Status       string `gorm:"not null"`
	Comments     string
	CompletedAt  *time.Time
	TimingResult string
	Version      int64 `gorm:"not null;default:1"`
}

func (taskRow) TableName() string { return "tasks" }

type reportRow struct {
	ID               string         `gorm:"primaryKey;size:64"`
	StaffID          string         `gorm:"uniqueIndex:idx_report_shift;not null"`
	ClientID         string         `gorm:"uniqueIndex:idx_report_shift;not null"`
	Date             datatypes.Date `gorm:"uniqueIndex:idx_report_shift;not null"`
	Content          string         `gorm:"type:text"`
	SubmittedAt      time.Time
	IsFinalized      bool `gorm:"index;not null;default:false"`
	Mood             string
	ClientFeedback   string `gorm:"type:text"`
	ClientFeedbackAt *time.Time
	AdminReply       string `gorm:"type:text"`
	AdminReplyAt     *time.Time
	AdminFlagged     bool  `gorm:"index;not null;default:false"`
	Version          int64 `gorm:"not null;default:1"`
}

func (reportRow) TableName() string { return "daily_reports" }

func toDate(day string) (datatypes.Date, error) {
	t, err := time.Parse(Models.DateLayout, day)
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("%w: %q", Workflow.ErrInvalidDate, day)
	}
	return datatypes.Date(t), nil
}

func fromDate(d datatypes.Date) string {
	return time.Time(d).Format(Models.DateLayout)
}

func toClock(hhmm string) (datatypes.Time, error) {
	minutes, err := Workflow.ParseClock(hhmm)
	if err != nil {
		return 0, err
	}
	return datatypes.NewTime(minutes/60, minutes%60, 0, 0), nil
}

func fromClock(t datatypes.Time) string {
	d := time.Duration(t)
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

func newTaskRow(t Models.Task) (taskRow, error) {
	date, err := toDate(t.Date)
	if err != nil {
		return taskRow{}, err
	}
	clock, err := toClock(t.Time)
	if err != nil {
		return taskRow{}, err
	}
	return taskRow{
		ID:           t.ID,
		StaffID:      t.StaffID,
		ClientID:     t.ClientID,
		Date:         date,
		Time:         clock,
		Title:        t.Title,
		Description:  t.Description,
		Status:       string(t.Status),
		Comments:     t.Comments,
		CompletedAt:  t.CompletedAt,
		TimingResult: string(t.TimingResult),
		Version:      t.Version,
	}, nil
}

func (r taskRow) task() Models.Task {
	return Models.Task{
		ID:           r.ID,
		StaffID:      r.StaffID,
		ClientID:     r.ClientID,
		Date:         fromDate(r.Date),
		Time:         fromClock(r.Time),
		Title:        r.Title,
		Description:  r.Description,
		Status:       Models.TaskStatus(r.Status),
		Comments:     r.Comments,
		CompletedAt:  r.CompletedAt,
		TimingResult: Models.TaskTiming(r.TimingResult),
		Version:      r.Version,
	}
}

func newReportRow(r Models.DailyReport) (reportRow, error) {
	date, err := toDate(r.Date)
	if err != nil {
		return reportRow{}, err
	}
	return reportRow{
		ID:               r.ID,
		StaffID:          r.StaffID,
		ClientID:         r.ClientID,
		Date:             date,
		Content:          r.Content,
		SubmittedAt:      r.SubmittedAt,
		IsFinalized:      r.IsFinalized,
		Mood:             string(r.Mood),
		ClientFeedback:   r.ClientFeedback,
		ClientFeedbackAt: r.ClientFeedbackAt,
		AdminReply:       r.AdminReply,
		AdminReplyAt:     r.AdminReplyAt,
		AdminFlagged:     r.AdminFlagged,
		Version:          r.Version,
	}, nil
}

func (r reportRow) report() Models.DailyReport {
	return Models.DailyReport{
		ID:               r.ID,
		StaffID:          r.StaffID,
		ClientID:         r.ClientID,
		Date:             fromDate(r.Date),
		Content:          r.Content,
		SubmittedAt:      r.SubmittedAt,
		IsFinalized:      r.IsFinalized,
		Mood:             Models.Mood(r.Mood),
		ClientFeedback:   r.ClientFeedback,
		ClientFeedbackAt: r.ClientFeedbackAt,
		AdminReply:       r.AdminReply,
		AdminReplyAt:     r.AdminReplyAt,
		AdminFlagged:     r.AdminFlagged,
		Version:          r.Version,
	}
}
