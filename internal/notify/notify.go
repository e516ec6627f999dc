// Package notify delivers account notifications.
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"marketplace/internal/model"

	"github.com/rs/zerolog/log"
)

// Notifier sends the welcome message for a newly registered user
type Notifier interface {
	SendWelcome(ctx context.Context, user *model.User) error
}

// LogNotifier only records that a welcome message would have been sent.
// Used when no SMTP server is configured.
type LogNotifier struct{}

func (LogNotifier) SendWelcome(_ context.Context, user *model.User) error {
	log.Info().Str("user_id", user.ID.String()).Str("email", user.Email).Msg("welcome notification (log only)")
	return nil
}

// SMTPConfig holds outbound mail settings
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier sends plain text mail through an SMTP relay
type SMTPNotifier struct {
	addr string
	from string
	auth smtp.Auth
	send sendFunc
}

func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPNotifier{
		addr: cfg.Host + ":" + cfg.Port,
		from: cfg.From,
		auth: auth,
		send: smtp.SendMail,
	}
}

func (n *SMTPNotifier) SendWelcome(ctx context.Context, user *model.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := welcomeMessage(n.from, user)
	done := make(chan error, 1)
	go func() {
		done <- n.send(n.addr, n.auth, n.from, []string{user.Email}, msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send welcome email to %s: %w", user.Email, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("welcome email to %s: %w", user.Email, ctx.Err())
	}
}

func welcomeMessage(from string, user *model.User) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + user.Email + "\r\n")
	b.WriteString("Subject: Bem-vindo ao marketplace\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString("Olá " + user.Name + ",\r\n\r\n")
	b.WriteString("Sua conta foi criada com sucesso.\r\n")
	return []byte(b.String())
}
