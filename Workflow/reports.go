package Workflow

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"CareBridge/Models"
)

func validateKey(key Models.ReportKey) error {
	if strings.TrimSpace(key.StaffID) == "" || strings.TrimSpace(key.ClientID) == "" {
		return fmt.Errorf("staff and client are required: %w", ErrEmptyText)
	}
	return ValidateDate(key.Date)
}

// UpsertReportContent writes content to the shift's report, creating a draft
// if none exists. A finalized report is left untouched and ErrReportFinalized
// is returned.
func (e *Engine) UpsertReportContent(ctx context.Context, key Models.ReportKey, content string) (Models.DailyReport, error) {
	return e.upsertContent(ctx, key, content, "")
}

// upsertContent creates with mood when the report is new; existing moods are kept.
func (e *Engine) upsertContent(ctx context.Context, key Models.ReportKey, content string, mood Models.Mood) (Models.DailyReport, error) {
	if err := validateKey(key); err != nil {
		return Models.DailyReport{}, err
	}

	r, created, err := e.store.FindOrCreateReport(ctx, key, func() Models.DailyReport {
		return Models.DailyReport{
			ID:          e.newID(),
			StaffID:     key.StaffID,
			ClientID:    key.ClientID,
			Date:        key.Date,
			Content:     content,
			SubmittedAt: e.clock(),
			Mood:        mood,
		}
	})
	if err != nil {
		return Models.DailyReport{}, fmt.Errorf("find or create report: %w", err)
	}
	if created {
		e.logger.Info("report drafted", zap.String("report_id", r.ID), zap.String("staff_id", key.StaffID),
			zap.String("client_id", key.ClientID), zap.String("date", key.Date))
		return r, nil
	}

	return e.mutateReport(ctx, r.ID, func(r *Models.DailyReport) error {
		if r.IsFinalized {
			return ErrReportFinalized
		}
		r.Content = content
		return nil
	})
}

// SetReportMood records the overall condition on a draft report.
func (e *Engine) SetReportMood(ctx context.Context, id string, mood Models.Mood) (Models.DailyReport, error) {
	if !mood.IsValid() {
		return Models.DailyReport{}, fmt.Errorf("%w: %q", ErrInvalidMood, mood)
	}
	return e.mutateReport(ctx, id, func(r *Models.DailyReport) error {
		if r.IsFinalized {
			return ErrReportFinalized
		}
		r.Mood = mood
		return nil
	})
}

// FinalizeReport locks the report and publishes it to the client. Finalizing
// twice changes nothing and returns the report with ErrAlreadyFinalized.
func (e *Engine) FinalizeReport(ctx context.Context, id string) (Models.DailyReport, error) {
	r, err := e.mutateReport(ctx, id, func(r *Models.DailyReport) error {
		if r.IsFinalized {
			return ErrAlreadyFinalized
		}
		r.IsFinalized = true
		r.SubmittedAt = e.clock()
		return nil
	})
	if err != nil {
		return r, err
	}
	e.logger.Info("report finalized", zap.String("report_id", r.ID))
	return r, nil
}

// SubmitClientFeedback records the client's response to a published report and
// flags it for the agency. A later submission replaces the earlier one.
func (e *Engine) SubmitClientFeedback(ctx context.Context, id, feedback string) (Models.DailyReport, error) {
	if strings.TrimSpace(feedback) == "" {
		return Models.DailyReport{}, ErrEmptyText
	}
	r, err := e.mutateReport(ctx, id, func(r *Models.DailyReport) error {
		if !r.IsFinalized {
			return ErrReportNotFinalized
		}
		now := e.clock()
		r.ClientFeedback = feedback
		r.ClientFeedbackAt = &now
		r.AdminFlagged = true
		return nil
	})
	if err != nil {
		return r, err
	}
	e.logger.Info("client feedback flagged", zap.String("report_id", r.ID), zap.String("client_id", r.ClientID))
	return r, nil
}

// AcknowledgeFlag clears the flag without replying. A report that is not
// flagged is returned unchanged with ErrNotFlagged.
func (e *Engine) AcknowledgeFlag(ctx context.Context, id string) (Models.DailyReport, error) {
	return e.mutateReport(ctx, id, func(r *Models.DailyReport) error {
		if !r.AdminFlagged {
			return ErrNotFlagged
		}
		r.AdminFlagged = false
		return nil
	})
}

// SendAgencyReply publishes the agency's response and clears the flag. A later
// reply replaces the earlier one.
func (e *Engine) SendAgencyReply(ctx context.Context, id, reply string) (Models.DailyReport, error) {
	if strings.TrimSpace(reply) == "" {
		return Models.DailyReport{}, ErrEmptyText
	}
	r, err := e.mutateReport(ctx, id, func(r *Models.DailyReport) error {
		now := e.clock()
		r.AdminReply = reply
		r.AdminReplyAt = &now
		r.AdminFlagged = false
		return nil
	})
	if err != nil {
		return r, err
	}
	e.logger.Info("agency reply sent", zap.String("report_id", r.ID))
	return r, nil
}

func (e *Engine) Report(ctx context.Context, id string) (Models.DailyReport, error) {
	return e.store.GetReport(ctx, id)
}

func (e *Engine) Reports(ctx context.Context, filter ReportFilter) ([]Models.DailyReport, error) {
	reports, err := e.store.ListReports(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// CurrentReport returns the canonical report for a shift, if any.
func (e *Engine) CurrentReport(ctx context.Context, key Models.ReportKey) (Models.DailyReport, bool, error) {
	reports, err := e.Reports(ctx, ReportFilter{StaffID: key.StaffID, ClientID: key.ClientID, Date: key.Date})
	if err != nil {
		return Models.DailyReport{}, false, err
	}
	if len(reports) == 0 {
		return Models.DailyReport{}, false, nil
	}
	return reports[0], true, nil
}

// FlaggedReports lists reports with client feedback awaiting agency attention.
func (e *Engine) FlaggedReports(ctx context.Context) ([]Models.DailyReport, error) {
	flagged := true
	return e.Reports(ctx, ReportFilter{Flagged: &flagged})
}

// FinalizedReports lists published reports, most recent shift first.
func (e *Engine) FinalizedReports(ctx context.Context) ([]Models.DailyReport, error) {
	finalized := true
	reports, err := e.Reports(ctx, ReportFilter{Finalized: &finalized})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(reports, func(i, j int) bool { return reports[i].Date > reports[j].Date })
	return reports, nil
}

// ClientReport returns the first published report for a client on a day, the
// one shown in the client portal.
func (e *Engine) ClientReport(ctx context.Context, clientID, date string) (Models.DailyReport, error) {
	finalized := true
	reports, err := e.Reports(ctx, ReportFilter{ClientID: clientID, Date: date, Finalized: &finalized})
	if err != nil {
		return Models.DailyReport{}, err
	}
	if len(reports) == 0 {
		return Models.DailyReport{}, ErrReportNotFound
	}
	return reports[0], nil
}

// Bundle is a report together with everything needed to render it.
type Bundle struct {
	Report     Models.DailyReport
	StaffName  string
	ClientName string
	Tasks      []Models.Task
}

// Bundle gathers a report, its shift's tasks and display names.
func (e *Engine) Bundle(ctx context.Context, id string) (Bundle, error) {
	r, err := e.store.GetReport(ctx, id)
	if err != nil {
		return Bundle{}, err
	}
	return e.bundle(ctx, r)
}

func (e *Engine) bundle(ctx context.Context, r Models.DailyReport) (Bundle, error) {
	tasks, err := e.Tasks(ctx, TaskFilter{StaffID: r.StaffID, ClientID: r.ClientID, Date: r.Date})
	if err != nil {
		return Bundle{}, err
	}
	return Bundle{
		Report:     r,
		StaffName:  e.staffName(ctx, r.StaffID),
		ClientName: e.clientName(ctx, r.ClientID),
		Tasks:      tasks,
	}, nil
}

// FinalizedBundles bundles every published report, most recent shift first.
func (e *Engine) FinalizedBundles(ctx context.Context) ([]Bundle, error) {
	reports, err := e.FinalizedReports(ctx)
	if err != nil {
		return nil, err
	}
	bundles := make([]Bundle, 0, len(reports))
	for _, r := range reports {
		b, err := e.bundle(ctx, r)
		if err != nil {
			return nil, err
		}
		bundles = append(bundles, b)
	}
	return bundles, nil
}
