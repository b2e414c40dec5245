package Workflow

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"CareBridge/Models"
)

// Summarizer writes a narrative shift summary. It may fail or time out; the
// engine substitutes a fallback text and carries on.
type Summarizer interface {
	GenerateShiftSummary(ctx context.Context, staffName, clientName string, tasks []Models.Task) (string, error)
}

const (
	// FallbackSummary replaces the summary when the generator fails.
	FallbackSummary = "Manual entry required."
	// EmptySummary replaces a summary the generator returned blank.
	EmptySummary = "Summary generation failed."
)

var errSummarizerUnavailable = errors.New("no summary generator configured")

type unavailableSummarizer struct{}

func (unavailableSummarizer) GenerateShiftSummary(context.Context, string, string, []Models.Task) (string, error) {
	return "", errSummarizerUnavailable
}

// DraftShiftSummary asks the generator for a summary of the shift's tasks and
// writes it into the shift's report. A report created here starts with the
// good mood. A finalized report is rejected before the generator is called.
func (e *Engine) DraftShiftSummary(ctx context.Context, key Models.ReportKey) (Models.DailyReport, error) {
	if err := validateKey(key); err != nil {
		return Models.DailyReport{}, err
	}
	if current, ok, err := e.CurrentReport(ctx, key); err != nil {
		return Models.DailyReport{}, err
	} else if ok && current.IsFinalized {
		return current, ErrReportFinalized
	}

	tasks, err := e.Tasks(ctx, TaskFilter{StaffID: key.StaffID, ClientID: key.ClientID, Date: key.Date})
	if err != nil {
		return Models.DailyReport{}, err
	}

	summary := e.summarize(ctx, e.staffName(ctx, key.StaffID), e.clientName(ctx, key.ClientID), tasks)
	return e.upsertContent(ctx, key, summary, Models.MoodGood)
}

func (e *Engine) summarize(ctx context.Context, staffName, clientName string, tasks []Models.Task) string {
	callCtx, cancel := context.WithTimeout(ctx, e.summaryTimeout)
	defer cancel()

	text, err := e.summarizer.GenerateShiftSummary(callCtx, staffName, clientName, tasks)
	if err != nil {
		e.logger.Warn("shift summary unavailable, using fallback", zap.Error(err))
		return FallbackSummary
	}
	if strings.TrimSpace(text) == "" {
		return EmptySummary
	}
	return text
}
