package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Sender dispatches a single message. Failures are reported to the caller and
// never retried here; lifecycle transitions must not depend on the outcome.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type smtpSender struct {
	config *ConfigSource
}

func NewSMTPSender(config *ConfigSource) Sender {
	return &smtpSender{config: config}
}

func (s *smtpSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	cfg, err := s.config.Get(ctx)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.EmailUser)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}
