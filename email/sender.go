package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"sort"
	"strings"

	"CareBridge/Models"
)

// SendEmail sends an email using the provided configuration and message details
func SendEmail(config Models.EmailConfig, message Models.EmailMessage) error {
	if len(message.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}
	body := buildMessage(config, message)

	var auth smtp.Auth
	if config.Username != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.SMTPServer)
	}

	// Create recipient list (to, cc, bcc)
	var recipients []string
	recipients = append(recipients, message.To...)
	recipients = append(recipients, message.CC...)
	recipients = append(recipients, message.BCC...)

	serverAddr := fmt.Sprintf("%s:%d", config.SMTPServer, config.SMTPPort)

	if !config.TLSEnabled {
		return smtp.SendMail(serverAddr, auth, config.FromEmail, recipients, body)
	}

	conn, err := tls.Dial("tcp", serverAddr, &tls.Config{
		ServerName:         config.SMTPServer,
		InsecureSkipVerify: config.SkipTLSCheck,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, config.SMTPServer)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}
	if err = client.Mail(config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, recipient := range recipients {
		if err = client.Rcpt(recipient); err != nil {
			return fmt.Errorf("failed to add recipient %s: %w", recipient, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data connection: %w", err)
	}
	if _, err = w.Write(body); err != nil {
		return fmt.Errorf("failed to write email body: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data connection: %w", err)
	}
	return client.Quit()
}

// buildMessage renders headers in a fixed order followed by the body.
func buildMessage(config Models.EmailConfig, message Models.EmailMessage) []byte {
	headers := map[string]string{
		"From":    fmt.Sprintf("%s <%s>", config.FromName, config.FromEmail),
		"To":      strings.Join(message.To, ", "),
		"Subject": message.Subject,
	}
	if len(message.CC) > 0 {
		headers["Cc"] = strings.Join(message.CC, ", ")
	}
	headers["MIME-Version"] = "1.0"
	if message.IsHTML {
		headers["Content-Type"] = "text/html; charset=UTF-8"
	} else {
		headers["Content-Type"] = "text/plain; charset=UTF-8"
	}

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\r\n", k, headers[k])
	}
	b.WriteString("\r\n")
	b.WriteString(message.Body)
	return []byte(b.String())
}
