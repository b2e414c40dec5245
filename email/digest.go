package email

import (
	"context"
	"fmt"
	"strings"

	"CareBridge/CronJobs"
	"CareBridge/Models"
)

// DigestNotifier mails the flagged-feedback digest to the agency.
type DigestNotifier struct {
	Config Models.EmailConfig
	To     []string
	// Send defaults to SendEmail.
	Send func(Models.EmailConfig, Models.EmailMessage) error
}

func (n DigestNotifier) NotifyFlagged(ctx context.Context, d CronJobs.Digest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	send := n.Send
	if send == nil {
		send = SendEmail
	}
	return send(n.Config, DigestMessage(n.To, d))
}

// DigestMessage renders the digest as a plain-text email.
func DigestMessage(to []string, d CronJobs.Digest) Models.EmailMessage {
	var b strings.Builder
	fmt.Fprintf(&b, "%d report(s) have client feedback awaiting an agency reply.\n", len(d.Items))
	for _, it := range d.Items {
		b.WriteString("\n")
		fmt.Fprintf(&b, "Date: %s\nClient: %s\nWorker: %s\n", it.Date, it.ClientName, it.StaffName)
		if it.FeedbackAt != nil {
			fmt.Fprintf(&b, "Received: %s\n", it.FeedbackAt.Format("2006-01-02 15:04"))
		}
		fmt.Fprintf(&b, "Feedback: %s\nReport: %s\n", it.Feedback, it.ReportID)
	}

	return Models.EmailMessage{
		To:      to,
		Subject: fmt.Sprintf("CareBridge Hub: %d flagged report(s) - %s", len(d.Items), d.GeneratedAt.Format("2006-01-02")),
		Body:    b.String(),
	}
}
