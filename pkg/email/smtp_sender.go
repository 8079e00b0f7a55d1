package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"strconv"
	"time"

	"go-inquiry-backend/config"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

// SMTPSender delivers one message per SMTP session.
type SMTPSender struct {
	host     string
	port     int
	secure   bool
	username string
	password string
	rootCAs  *x509.CertPool
	now      func() time.Time
}

type SenderOption func(*SMTPSender)

// WithRootCAs replaces the system roots used to verify the server certificate.
func WithRootCAs(pool *x509.CertPool) SenderOption {
	return func(s *SMTPSender) { s.rootCAs = pool }
}

// NewSMTPSender creates a sender from the email section of the config.
func NewSMTPSender(cfg config.EmailConfig, opts ...SenderOption) *SMTPSender {
	s := &SMTPSender{
		host:     cfg.Host,
		port:     cfg.Port,
		secure:   cfg.Secure,
		username: cfg.User,
		password: cfg.Pass,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsConfigured checks if the sender has credentials and a host.
func (s *SMTPSender) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}

// Send transmits msg and returns the Message-ID it was sent with. Without
// implicit TLS the server must offer STARTTLS. Deadlines and cancellation on
// ctx are applied to the underlying connection.
func (s *SMTPSender) Send(ctx context.Context, msg Message) (string, error) {
	messageID := NewMessageID(msg.From)
	raw, err := Build(msg, messageID, s.now())
	if err != nil {
		return "", err
	}

	conn, err := s.dial(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to connect to %s: %w", s.host, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	// Plaintext sessions are never used; credentials only travel over TLS.
	var c *smtp.Client
	if s.secure {
		c = smtp.NewClient(conn)
	} else {
		c, err = smtp.NewClientStartTLS(conn, s.tlsConfig())
		if err != nil {
			return "", fmt.Errorf("starttls failed: %w", err)
		}
	}
	defer c.Close()

	if s.username != "" {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(sasl.NewPlainClient("", s.username, s.password)); err != nil {
				return "", fmt.Errorf("smtp auth failed: %w", err)
			}
		}
	}

	if err := c.SendMail(msg.From, []string{msg.To}, bytes.NewReader(raw)); err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	_ = c.Quit()

	return messageID, nil
}

func (s *SMTPSender) dial(ctx context.Context) (net.Conn, error) {
	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	if s.secure {
		d := &tls.Dialer{Config: s.tlsConfig()}
		return d.DialContext(ctx, "tcp", addr)
	}
	var d net.Dialer
	return d.DialContext(ctx, "tcp", addr)
}

func (s *SMTPSender) tlsConfig() *tls.Config {
	return &tls.Config{
		ServerName: s.host,
		RootCAs:    s.rootCAs,
		MinVersion: tls.VersionTLS12,
	}
}
