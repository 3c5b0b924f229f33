package services

import (
	"fmt"
	"net/smtp"

	"github.com/cadencehq/cadence-api/internal/config"
)

type EmailService struct {
	cfg config.SMTPConfig
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.Username != "" && s.cfg.Password != "" && s.cfg.From != ""
}

func (s *EmailService) Send(to, subject, body string) error {
	if !s.IsConfigured() {
		return nil
	}

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.cfg.From, to, subject, body)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
}

// SendTimetablePublished notifies a faculty member that a timetable
// for one of their department's batches has been approved.
func (s *EmailService) SendTimetablePublished(to, batchName, dashboardURL string) error {
	subject := fmt.Sprintf("Timetable published for %s", batchName)
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Timetable Published</h2>
			<p>Hi,</p>
			<p>The timetable for <strong>%s</strong> has been approved and is now live.</p>
			<p><a href="%s">Open the dashboard to view it</a></p>
		</body>
		</html>
	`, batchName, dashboardURL)

	return s.Send(to, subject, body)
}
