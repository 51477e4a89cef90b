package services

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"newsroom/internal/config"
	"newsroom/internal/logger"
	"newsroom/internal/models"
)

// ErrMailDisabled is returned when no SMTP relay is configured.
var ErrMailDisabled = fmt.Errorf("%w: mail is not configured", models.ErrNotificationFailure)

// Message is one outbound email.
type Message struct {
	Subject string
	Body    string
	From    string
	To      []string
}

// Mailer sends email. Send reports failures as errors wrapping
// models.ErrNotificationFailure and never panics.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// NewMailer picks the SMTP mailer when configured. Without SMTP settings,
// development builds log messages instead and other environments report
// every send as failed.
func NewMailer(cfg *config.Config) Mailer {
	if cfg.Mail.Enabled() {
		return NewSMTPMailer(cfg.Mail)
	}
	log := logger.Get()
	if cfg.IsDev() {
		log.Warn().Msg("SMTP not configured, mail will only be logged")
		return LogMailer{}
	}
	log.Warn().Msg("SMTP not configured, mail delivery disabled")
	return disabledMailer{}
}

type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string

	// sendMail is smtp.SendMail, replaceable in tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		sendMail: smtp.SendMail,
	}
}

func (s *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("%w: no recipients", models.ErrNotificationFailure)
	}

	var auth smtp.Auth
	if s.Username != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}
	addr := s.Host + ":" + s.Port

	done := make(chan error, 1)
	go func() {
		done <- s.sendMail(addr, auth, msg.From, msg.To, buildMessage(msg))
	}()

	log := logger.Get()
	select {
	case err := <-done:
		if err != nil {
			log.Error().Err(err).Strs("to", msg.To).Msg("failed to send email")
			return errors.Join(models.ErrNotificationFailure, err)
		}
		log.Info().Strs("to", msg.To).Str("subject", msg.Subject).Msg("email sent")
		return nil
	case <-ctx.Done():
		return errors.Join(models.ErrNotificationFailure, ctx.Err())
	}
}

func buildMessage(msg Message) []byte {
	var b strings.Builder
	b.WriteString("To: " + strings.Join(msg.To, ", ") + "\r\n")
	b.WriteString("From: " + msg.From + "\r\n")
	b.WriteString("Subject: " + sanitizeHeader(msg.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return []byte(b.String())
}

// sanitizeHeader strips line breaks so a subject cannot inject headers.
func sanitizeHeader(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

// LogMailer writes messages to the log and always succeeds.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, msg Message) error {
	logger.Get().Info().
		Str("from", msg.From).
		Strs("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.Body).
		Msg("mail (not delivered)")
	return nil
}

type disabledMailer struct{}

func (disabledMailer) Send(context.Context, Message) error {
	return ErrMailDisabled
}
