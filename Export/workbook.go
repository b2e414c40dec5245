package Export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"CareBridge/Workflow"
)

const (
	ReportsSheet = "Reports"
	TasksSheet   = "Tasks"
)

var reportHeaders = []string{
	"Report ID", "Date", "Staff", "Client", "Mood", "Submitted At", "Summary",
	"Feedback State", "Client Feedback", "Feedback At", "Agency Reply", "Reply At", "Flagged",
}

var taskHeaders = []string{
	"Report ID", "Task ID", "Date", "Scheduled", "Title", "Status", "Timing", "Completed At", "Comments",
}

// AuditWorkbook writes one Reports row per bundle and one Tasks row per task.
func AuditWorkbook(bundles []Workflow.Bundle) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ReportsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(TasksSheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6FA"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	if err := writeRow(f, ReportsSheet, 1, toCells(reportHeaders)); err != nil {
		return nil, err
	}
	if err := writeRow(f, TasksSheet, 1, toCells(taskHeaders)); err != nil {
		return nil, err
	}

	taskRow := 2
	for i, b := range bundles {
		r := b.Report
		values := []any{
			r.ID, r.Date, b.StaffName, b.ClientName, string(r.Mood), stamp(&r.SubmittedAt), r.Content,
			string(r.FeedbackState()), r.ClientFeedback, stamp(r.ClientFeedbackAt), r.AdminReply, stamp(r.AdminReplyAt), r.AdminFlagged,
		}
		if err := writeRow(f, ReportsSheet, i+2, values); err != nil {
			return nil, err
		}

		for _, t := range b.Tasks {
			values := []any{
				r.ID, t.ID, t.Date, t.Time, t.Title, string(t.Status), string(t.TimingResult), stamp(t.CompletedAt), t.Comments,
			}
			if err := writeRow(f, TasksSheet, taskRow, values); err != nil {
				return nil, err
			}
			taskRow++
		}
	}

	for sheet, cols := range map[string]int{ReportsSheet: len(reportHeaders), TasksSheet: len(taskHeaders)} {
		last, _ := excelize.ColumnNumberToName(cols)
		if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, "A", last, 18); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return &buf, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toCells(headers []string) []any {
	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	return cells
}

func stamp(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
