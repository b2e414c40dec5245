// Package CronJobs runs the periodic flagged-feedback digest.
package CronJobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"CareBridge/Models"
	"CareBridge/Workflow"
)

// DigestItem is one report awaiting an agency reply.
type DigestItem struct {
	ReportID   string
	Date       string
	StaffName  string
	ClientName string
	Feedback   string
	FeedbackAt *time.Time
}

type Digest struct {
	GeneratedAt time.Time
	Items       []DigestItem
}

// Notifier delivers a non-empty digest.
type Notifier interface {
	NotifyFlagged(ctx context.Context, d Digest) error
}

// FlaggedSource is the read side of the workflow engine the digest needs.
type FlaggedSource interface {
	FlaggedReports(ctx context.Context) ([]Models.DailyReport, error)
	Bundle(ctx context.Context, id string) (Workflow.Bundle, error)
}

// FlagDigest periodically collects flagged reports and hands them to a
// Notifier. It never modifies reports.
type FlagDigest struct {
	cronScheduler *cron.Cron
	source        FlaggedSource
	notifier      Notifier
	schedule      string
	logger        *zap.Logger
	now           func() time.Time
	jobID         cron.EntryID
}

// NewFlagDigest schedules with a six-field (seconds first) cron expression.
func NewFlagDigest(source FlaggedSource, notifier Notifier, schedule string, loc *time.Location, logger *zap.Logger) *FlagDigest {
	cl := cronLogger{logger.Sugar()}
	return &FlagDigest{
		cronScheduler: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		source:   source,
		notifier: notifier,
		schedule: schedule,
		logger:   logger,
		now:      time.Now,
	}
}

func (d *FlagDigest) Start() error {
	var err error
	d.jobID, err = d.cronScheduler.AddFunc(d.schedule, func() {
		if _, err := d.Run(context.Background()); err != nil {
			d.logger.Error("flag digest failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("error scheduling flag digest: %w", err)
	}
	d.cronScheduler.Start()
	d.logger.Info("flag digest scheduled", zap.String("schedule", d.schedule))
	return nil
}

// Stop waits for a running digest to finish.
func (d *FlagDigest) Stop() {
	<-d.cronScheduler.Stop().Done()
	d.logger.Info("flag digest stopped")
}

// Run builds the digest and notifies when anything is flagged.
func (d *FlagDigest) Run(ctx context.Context) (Digest, error) {
	reports, err := d.source.FlaggedReports(ctx)
	if err != nil {
		return Digest{}, fmt.Errorf("list flagged reports: %w", err)
	}

	digest := Digest{GeneratedAt: d.now(), Items: make([]DigestItem, 0, len(reports))}
	for _, r := range reports {
		b, err := d.source.Bundle(ctx, r.ID)
		if err != nil {
			return Digest{}, fmt.Errorf("bundle report %s: %w", r.ID, err)
		}
		digest.Items = append(digest.Items, DigestItem{
			ReportID:   r.ID,
			Date:       r.Date,
			StaffName:  b.StaffName,
			ClientName: b.ClientName,
			Feedback:   r.ClientFeedback,
			FeedbackAt: r.ClientFeedbackAt,
		})
	}

	if len(digest.Items) == 0 {
		d.logger.Debug("no flagged reports")
		return digest, nil
	}
	if err := d.notifier.NotifyFlagged(ctx, digest); err != nil {
		return digest, fmt.Errorf("notify: %w", err)
	}
	d.logger.Info("flag digest sent", zap.Int("reports", len(digest.Items)))
	return digest, nil
}

// LogNotifier writes the digest to the log. Used when SMTP is not configured.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) NotifyFlagged(_ context.Context, d Digest) error {
	for _, it := range d.Items {
		n.Logger.Warn("report awaiting agency reply",
			zap.String("report_id", it.ReportID),
			zap.String("date", it.Date),
			zap.String("client", it.ClientName),
			zap.String("staff", it.StaffName),
			zap.String("feedback", it.Feedback))
	}
	return nil
}

// cronLogger routes cron's own logging through zap. The scheduler's
// lifecycle messages are dropped: "stop" is written by cron's run goroutine
// after Stop has already returned.
type cronLogger struct {
	s *zap.SugaredLogger
}

var cronLifecycle = map[string]bool{
	"start": true, "stop": true, "wake": true, "run": true,
	"schedule": true, "added": true, "removed": true,
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	if cronLifecycle[msg] {
		return
	}
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
