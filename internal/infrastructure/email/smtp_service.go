package email

import (
	"context"
	"fmt"
	"net/smtp"
	"time"

	"library-backend/pkg/logger"
)

type PromotionEmailData struct {
	Email     string
	Username  string
	BookTitle string
	DueDate   time.Time
}

type DueReminderData struct {
	Email     string
	Username  string
	BookTitle string
	DueDate   time.Time
}

type EmailService interface {
	SendPromotionEmail(ctx context.Context, data PromotionEmailData) error
	SendDueReminderEmail(ctx context.Context, data DueReminderData) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

// NewSMTPEmailService targets a plain SMTP relay (mailhog in development).
func NewSMTPEmailService(host, port, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: host + ":" + port,
		smtpFrom: from,
	}
}

func (s *smtpEmailService) SendPromotionEmail(ctx context.Context, data PromotionEmailData) error {
	subject := fmt.Sprintf("Your turn: %q is ready for you", data.BookTitle)
	body := fmt.Sprintf(`Hi %s,

Good news! A copy of %q has been returned and you were first in the
waiting list, so we checked it out to you automatically.

Please return it by %s.

Happy reading,
The Library`, data.Username, data.BookTitle, data.DueDate.Format("Monday, 02 Jan 2006"))

	return s.send(data.Email, subject, body)
}

func (s *smtpEmailService) SendDueReminderEmail(ctx context.Context, data DueReminderData) error {
	subject := fmt.Sprintf("Reminder: %q is due soon", data.BookTitle)
	body := fmt.Sprintf(`Hi %s,

Just a reminder that %q is due back on %s.

Return it on time so the next reader doesn't have to wait.

The Library`, data.Username, data.BookTitle, data.DueDate.Format("Monday, 02 Jan 2006"))

	return s.send(data.Email, subject, body)
}

func (s *smtpEmailService) send(to, subject, body string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, to, subject, body))

	if err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{to}, msg); err != nil {
		logger.Info("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        to,
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
