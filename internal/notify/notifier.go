// Package notify is the notification collaborator: assignment
// notifications are fire-and-forget, so a failure here is logged and
// never blocks or rolls back the caller.
package notify

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/google/uuid"
	"github.com/schul92/worshipteam-api/internal/config"
	"go.uber.org/zap"
)

type Notifier interface {
	SendAssignmentNotifications(ctx context.Context, serviceID uuid.UUID) error
}

// Recipient is one pending assignee of a newly published service.
type Recipient struct {
	Email       string
	Name        string
	ServiceName string
	RoleName    string
	TeamName    string
}

// RecipientSource resolves who should hear about a published service.
type RecipientSource interface {
	NotificationRecipients(ctx context.Context, serviceID uuid.UUID) ([]Recipient, error)
}

// EmailNotifier delivers assignment notifications over SMTP. When SMTP is
// not configured it silently does nothing, which keeps development setups
// working without a mail server.
type EmailNotifier struct {
	cfg    config.SMTPConfig
	source RecipientSource
	log    *zap.SugaredLogger
}

func NewEmailNotifier(cfg config.SMTPConfig, source RecipientSource, log *zap.SugaredLogger) *EmailNotifier {
	return &EmailNotifier{cfg: cfg, source: source, log: log}
}

// Nop is a Notifier that discards everything. Tests use it.
type Nop struct{}

func (Nop) SendAssignmentNotifications(ctx context.Context, serviceID uuid.UUID) error {
	return nil
}

func (n *EmailNotifier) IsConfigured() bool {
	return n.cfg.Host != "" && n.cfg.Username != "" && n.cfg.Password != "" && n.cfg.From != ""
}

func (n *EmailNotifier) SendAssignmentNotifications(ctx context.Context, serviceID uuid.UUID) error {
	recipients, err := n.source.NotificationRecipients(ctx, serviceID)
	if err != nil {
		return fmt.Errorf("failed to resolve notification recipients: %w", err)
	}

	for _, r := range recipients {
		if err := n.send(r); err != nil {
			n.log.Warnw("assignment notification failed",
				"service_id", serviceID, "email", r.Email, "error", err)
		}
	}
	return nil
}

func (n *EmailNotifier) send(r Recipient) error {
	if !n.IsConfigured() {
		return nil
	}

	subject := fmt.Sprintf("You've been scheduled for %s", r.ServiceName)
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>New Assignment</h2>
			<p>Hi %s,</p>
			<p>You've been assigned to <strong>%s</strong> for <strong>%s</strong> (%s).</p>
			<p>Please open the app to confirm or decline.</p>
		</body>
		</html>
	`, r.Name, r.RoleName, r.ServiceName, r.TeamName)

	addr := fmt.Sprintf("%s:%s", n.cfg.Host, n.cfg.Port)
	auth := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		n.cfg.From, r.Email, subject, body)

	return smtp.SendMail(addr, auth, n.cfg.From, []string{r.Email}, []byte(msg))
}
