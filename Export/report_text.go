// Package Export renders finalized shift reports for download: a plain-text
// handover document for clients and an Excel workbook for agency audits.
package Export

import (
	"fmt"
	"strings"

	"CareBridge/Models"
	"CareBridge/Workflow"
)

const (
	noFeedback = "No feedback provided yet."
	noReply    = "No official agency response yet."
	notSet     = "N/A"
)

// ReportText renders the client-portal download. Only completed tasks are listed.
func ReportText(b Workflow.Bundle) string {
	r := b.Report
	var sb strings.Builder

	sb.WriteString("CareBridge Hub - Shift Summary Report\n")
	fmt.Fprintf(&sb, "Date: %s\n", r.Date)
	fmt.Fprintf(&sb, "Client: %s\n", b.ClientName)
	fmt.Fprintf(&sb, "Worker: %s\n", orDefault(b.StaffName, Models.UnknownStaffName))
	fmt.Fprintf(&sb, "Status: %s\n", orDefault(string(r.Mood), notSet))
	sb.WriteString("Report Summary:\n")
	sb.WriteString(r.Content)

	sb.WriteString("\n---\nCompleted Tasks:\n")
	lines := make([]string, 0, len(b.Tasks))
	for _, t := range b.Tasks {
		if !t.IsCompleted() {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s [%s] (%s)", t.Title, orDefault(string(t.TimingResult), notSet), completedClock(t)))
	}
	sb.WriteString(strings.Join(lines, "\n"))

	sb.WriteString("\n---\nClient Feedback:\n")
	sb.WriteString(orDefault(r.ClientFeedback, noFeedback))
	sb.WriteString("\n---\nAgency Response:\n")
	sb.WriteString(orDefault(r.AdminReply, noReply))
	return sb.String()
}

// ReportFileName is Report_<client>_<date>.txt with path separators removed.
func ReportFileName(b Workflow.Bundle) string {
	name := strings.NewReplacer("/", "-", "\\", "-").Replace(b.ClientName)
	return fmt.Sprintf("Report_%s_%s.txt", name, b.Report.Date)
}

func completedClock(t Models.Task) string {
	if t.CompletedAt == nil {
		return notSet
	}
	return t.CompletedAt.Format("15:04:05")
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
