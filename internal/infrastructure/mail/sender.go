package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/nagampere/MLIT-Summary-Bot/internal/config"
	"github.com/nagampere/MLIT-Summary-Bot/internal/ports"
)

// Sender delivers the digest as plain-text email over SMTP.
type Sender struct {
	cfg config.SMTPConfig
}

var _ ports.Mailer = (*Sender)(nil)

// NewSender wires SMTP settings.
func NewSender(cfg config.SMTPConfig) *Sender {
	return &Sender{cfg: cfg}
}

// Send dials the SMTP server and sends one message. gomail carries no
// context support, so cancellation relies on its dial timeout.
func (s *Sender) Send(_ context.Context, subject, body string) error {
	if !s.cfg.Enabled() {
		return fmt.Errorf("smtp sender misconfigured")
	}

	from := s.cfg.From
	if from == "" {
		from = s.cfg.User
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", s.cfg.To)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	if s.cfg.Port == 465 {
		dialer.SSL = true
	}

	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("dial and send: %w", err)
	}
	return nil
}
