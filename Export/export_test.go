package Export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"CareBridge/Models"
	"CareBridge/Workflow"
)

func sampleBundle() Workflow.Bundle {
	done := time.Date(2024, 3, 12, 9, 50, 0, 0, time.UTC)
	replied := time.Date(2024, 3, 12, 20, 0, 0, 0, time.UTC)
	return Workflow.Bundle{
		Report: Models.DailyReport{
			ID: "r1", StaffID: "s1", ClientID: "c1", Date: "2024-03-12",
			Content: "Stable day", SubmittedAt: done, IsFinalized: true, Mood: Models.MoodStable,
			ClientFeedback: "Concerned about appetite", AdminReply: "Monitoring closely", AdminReplyAt: &replied,
		},
		StaffName:  "Dr. Chinedu Okafor",
		ClientName: "Chief Robert Thompson",
		Tasks: []Models.Task{
			{ID: "t1", Date: "2024-03-12", Time: "09:30", Title: "Medication Administration", Status: Models.TaskCompleted, CompletedAt: &done, TimingResult: Models.TimingLate},
			{ID: "t2", Date: "2024-03-12", Time: "11:00", Title: "Mobility Support Session", Status: Models.TaskInProgress},
		},
	}
}

func TestReportText(t *testing.T) {
	want := `CareBridge Hub - Shift Summary Report
Date: 2024-03-12
Client: Chief Robert Thompson
Worker: Dr. Chinedu Okafor
Status: stable
Report Summary:
Stable day
---
Completed Tasks:
- Medication Administration [Late] (09:50:00)
---
Client Feedback:
Concerned about appetite
---
Agency Response:
Monitoring closely`

	assert.Equal(t, want, ReportText(sampleBundle()))
}

func TestReportTextPlaceholders(t *testing.T) {
	b := Workflow.Bundle{
		Report:     Models.DailyReport{Date: "2024-03-12", Content: "Manual entry required."},
		ClientName: "Madam Elizabeth Solanke",
		Tasks:      []Models.Task{{Title: "Odd", Status: Models.TaskCompleted}},
	}
	text := ReportText(b)

	assert.Contains(t, text, "Worker: Unknown Staff\n")
	assert.Contains(t, text, "Status: N/A\n")
	assert.Contains(t, text, "- Odd [N/A] (N/A)")
	assert.Contains(t, text, "Client Feedback:\nNo feedback provided yet.\n")
	assert.Contains(t, text, "Agency Response:\nNo official agency response yet.")
}

func TestReportFileName(t *testing.T) {
	assert.Equal(t, "Report_Chief Robert Thompson_2024-03-12.txt", ReportFileName(sampleBundle()))

	b := sampleBundle()
	b.ClientName = "A/B"
	assert.Equal(t, "Report_A-B_2024-03-12.txt", ReportFileName(b))
}

func TestAuditWorkbook(t *testing.T) {
	second := sampleBundle()
	second.Report.ID = "r2"
	second.Report.AdminReply = ""
	second.Report.AdminReplyAt = nil
	second.Report.AdminFlagged = true
	second.Tasks = nil

	buf, err := AuditWorkbook([]Workflow.Bundle{sampleBundle(), second})
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ReportsSheet, TasksSheet}, f.GetSheetList())

	reports, err := f.GetRows(ReportsSheet)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, reportHeaders, reports[0])
	assert.Equal(t, "r1", reports[1][0])
	assert.Equal(t, "Dr. Chinedu Okafor", reports[1][2])
	assert.Equal(t, string(Models.FeedbackReplied), reports[1][7])
	assert.Equal(t, "2024-03-12 20:00:00", reports[1][11])
	assert.Equal(t, string(Models.FeedbackPendingReply), reports[2][7])

	tasks, err := f.GetRows(TasksSheet)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, taskHeaders, tasks[0])
	assert.Equal(t, []string{"r1", "t1", "2024-03-12", "09:30", "Medication Administration", "completed", "Late", "2024-03-12 09:50:00"}, tasks[1])
	assert.Equal(t, "in progress", tasks[2][5])
}

func TestAuditWorkbookEmpty(t *testing.T) {
	buf, err := AuditWorkbook(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ReportsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
