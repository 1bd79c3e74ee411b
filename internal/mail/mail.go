package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

// SMTPMailer sends plain-text mail. With no host configured it only logs.
type SMTPMailer struct {
	cfg  Config
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg Config) *SMTPMailer {
	if cfg.Sender == "" {
		cfg.Sender = "no-reply@localhost"
	}

	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.cfg.Host == "" {
		slog.WarnContext(ctx, "smtp host not set, skipping email", "to", to, "subject", subject)
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if m.cfg.Username != "" && m.cfg.Password != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))

	if err := m.send(addr, auth, m.cfg.Sender, []string{to}, m.message(to, subject, body)); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	slog.InfoContext(ctx, "email sent", "to", to, "addr", addr)

	return nil
}

func (m *SMTPMailer) message(to, subject, body string) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s\r\nTo: %s\r\nSubject: %s\r\n", m.cfg.Sender, to, subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))

	return []byte(b.String())
}
