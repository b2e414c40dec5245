package email

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CareBridge/CronJobs"
	"CareBridge/Models"
)

var cfg = Models.EmailConfig{SMTPServer: "smtp.carebridge.ng", SMTPPort: 587, FromEmail: "noreply@carebridge.ng", FromName: "CareBridge Hub"}

func TestBuildMessage(t *testing.T) {
	msg := buildMessage(cfg, Models.EmailMessage{
		To:      []string{"ops@carebridge.ng", "lead@carebridge.ng"},
		CC:      []string{"audit@carebridge.ng"},
		BCC:     []string{"hidden@carebridge.ng"},
		Subject: "Digest",
		Body:    "hello",
	})

	want := "Cc: audit@carebridge.ng\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"From: CareBridge Hub <noreply@carebridge.ng>\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Subject: Digest\r\n" +
		"To: ops@carebridge.ng, lead@carebridge.ng\r\n" +
		"\r\n" +
		"hello"
	assert.Equal(t, want, string(msg))
	assert.NotContains(t, string(msg), "hidden@")
}

func TestSendEmailRequiresRecipients(t *testing.T) {
	assert.Error(t, SendEmail(cfg, Models.EmailMessage{Subject: "x"}))
}

func TestDigestNotifier(t *testing.T) {
	at := time.Date(2024, 3, 12, 19, 5, 0, 0, time.UTC)
	digest := CronJobs.Digest{
		GeneratedAt: time.Date(2024, 3, 12, 18, 0, 0, 0, time.UTC),
		Items: []CronJobs.DigestItem{{
			ReportID: "r1", Date: "2024-03-12", StaffName: "Dr. Chinedu Okafor", ClientName: "Chief Robert Thompson",
			Feedback: "Concerned about appetite", FeedbackAt: &at,
		}},
	}

	var sent Models.EmailMessage
	n := DigestNotifier{Config: cfg, To: []string{"ops@carebridge.ng"}, Send: func(c Models.EmailConfig, m Models.EmailMessage) error {
		assert.Equal(t, cfg, c)
		sent = m
		return nil
	}}
	require.NoError(t, n.NotifyFlagged(context.Background(), digest))

	assert.Equal(t, []string{"ops@carebridge.ng"}, sent.To)
	assert.Equal(t, "CareBridge Hub: 1 flagged report(s) - 2024-03-12", sent.Subject)
	assert.Contains(t, sent.Body, "Client: Chief Robert Thompson\n")
	assert.Contains(t, sent.Body, "Received: 2024-03-12 19:05\n")
	assert.Contains(t, sent.Body, "Feedback: Concerned about appetite\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, n.NotifyFlagged(ctx, digest), context.Canceled)
}
