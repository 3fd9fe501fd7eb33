// Package mail sends plain-text notification email over SMTP. Messages are
// composed with jordan-wright/email (MIME encoding of Polish subjects and
// bodies) and delivered over net/smtp with dial and I/O deadlines.
// Settings come from the environment; there is no queue and no retry.
package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	gosmtp "net/smtp"
	"time"

	"github.com/jordan-wright/email"

	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/config"
)

// ErrNotConfigured is returned by Send when no SMTP server is configured.
var ErrNotConfigured = errors.New("mail not configured")

// dialTimeout bounds the TCP/TLS connect to the SMTP server.
const dialTimeout = 10 * time.Second

// ioTimeout bounds the whole SMTP conversation when ctx has no deadline.
const ioTimeout = 30 * time.Second

// Message is a single plain-text email.
type Message struct {
	To      []string
	ReplyTo string
	Subject string
	Body    string
}

// Sender delivers messages. Implementations must be safe for concurrent use.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender implements Sender against the configured SMTP server.
type SMTPSender struct {
	cfg config.MailConfig
}

// NewSMTPSender creates a sender for the given settings. A sender with an
// empty server is valid and reports ErrNotConfigured on every Send.
func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// From returns the envelope and header sender address.
func (s *SMTPSender) From() string {
	return s.cfg.DefaultSender
}

// Compose renders msg as RFC 5322 bytes with the configured sender.
func (s *SMTPSender) Compose(msg Message) ([]byte, error) {
	e := email.NewEmail()
	e.From = s.cfg.DefaultSender
	e.To = msg.To
	if msg.ReplyTo != "" {
		e.ReplyTo = []string{msg.ReplyTo}
	}
	e.Subject = msg.Subject
	e.Text = []byte(msg.Body)

	raw, err := e.Bytes()
	if err != nil {
		return nil, fmt.Errorf("composing message: %w", err)
	}
	return raw, nil
}

// Send composes and delivers msg. The transport follows the config:
// implicit TLS when UseSSL, STARTTLS when UseTLS, plain otherwise.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if !s.cfg.Enabled() {
		return ErrNotConfigured
	}
	if len(msg.To) == 0 {
		return errors.New("message has no recipients")
	}

	raw, err := s.Compose(msg)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := s.deliver(ctx, msg.To, raw); err != nil {
		return err
	}

	slog.Debug("mail sent",
		slog.Any("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.Duration("took", time.Since(start)),
	)
	return nil
}

// deliver opens the SMTP session and runs MAIL/RCPT/DATA.
func (s *SMTPSender) deliver(ctx context.Context, to []string, raw []byte) error {
	addr := s.cfg.Addr()
	host := s.cfg.Server
	tlsConfig := &tls.Config{ServerName: host, MinVersion: tls.VersionTLS12}

	dialer := &net.Dialer{Timeout: dialTimeout}
	var (
		conn net.Conn
		err  error
	)
	if s.cfg.UseSSL {
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: tlsConfig}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", addr, err)
	}
	defer conn.Close()

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(ioTimeout)
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return fmt.Errorf("setting deadline: %w", err)
	}

	client, err := gosmtp.NewClient(conn, host)
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}
	defer client.Close()

	if !s.cfg.UseSSL && s.cfg.UseTLS {
		if err := client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("starting TLS: %w", err)
		}
	}

	if s.cfg.Username != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			auth := gosmtp.PlainAuth("", s.cfg.Username, s.cfg.Password, host)
			if err := client.Auth(auth); err != nil {
				return fmt.Errorf("authenticating: %w", err)
			}
		}
	}

	return sendMessage(client, s.cfg.DefaultSender, to, raw)
}

// sendMessage handles MAIL FROM, RCPT TO, DATA for an existing SMTP client.
func sendMessage(client *gosmtp.Client, from string, to []string, raw []byte) error {
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("MAIL FROM: %w", err)
	}
	for _, recipient := range to {
		if err := client.Rcpt(recipient); err != nil {
			return fmt.Errorf("RCPT TO %s: %w", recipient, err)
		}
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("writing message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing data: %w", err)
	}
	return client.Quit()
}
