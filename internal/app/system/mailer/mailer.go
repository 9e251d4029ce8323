// internal/app/system/mailer/mailer.go
package mailer

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	mail "gopkg.in/mail.v2"
)

// ErrNotConfigured is returned by Send when no SMTP host is set.
var ErrNotConfigured = errors.New("mailer: smtp host not configured")

// Email is one outgoing message. HTMLBody is optional.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Config holds SMTP settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Pass     string
	From     string
	FromName string
}

// Mailer sends Email over SMTP.
type Mailer struct {
	dialer   *mail.Dialer
	from     string
	fromName string
	log      *zap.Logger
}

// New creates a Mailer. An empty Host yields a Mailer whose Send always
// fails with ErrNotConfigured, so callers can still run without SMTP.
func New(cfg Config, logger *zap.Logger) *Mailer {
	m := &Mailer{
		from:     cfg.From,
		fromName: cfg.FromName,
		log:      logger,
	}
	if strings.TrimSpace(cfg.Host) != "" {
		port := cfg.Port
		if port == 0 {
			port = 587
		}
		m.dialer = mail.NewDialer(cfg.Host, port, cfg.User, cfg.Pass)
	}
	return m
}

// Send delivers e.
func (m *Mailer) Send(e Email) error {
	if m.dialer == nil {
		return ErrNotConfigured
	}
	if err := m.dialer.DialAndSend(m.message(e)); err != nil {
		return err
	}
	m.log.Info("email sent", zap.String("to", e.To), zap.String("subject", e.Subject))
	return nil
}

func (m *Mailer) message(e Email) *mail.Message {
	msg := mail.NewMessage()
	if m.fromName != "" {
		msg.SetAddressHeader("From", m.from, m.fromName)
	} else {
		msg.SetHeader("From", m.from)
	}
	msg.SetHeader("To", e.To)
	msg.SetHeader("Subject", e.Subject)
	msg.SetBody("text/plain", e.TextBody)
	if e.HTMLBody != "" {
		msg.AddAlternative("text/html", e.HTMLBody)
	}
	return msg
}
