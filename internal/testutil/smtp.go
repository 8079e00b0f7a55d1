package testutil

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"io"
	"math/big"
	"net"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/emersion/go-smtp"
)

// ReceivedMessage is one message accepted by the in-memory server.
type ReceivedMessage struct {
	From string
	To   []string
	Data []byte
}

// MemoryBackend is a simple in-memory SMTP backend for testing.
type MemoryBackend struct {
	mu         sync.Mutex
	messages   []ReceivedMessage
	rejectRcpt map[string]bool
}

func (b *MemoryBackend) NewSession(*smtp.Conn) (smtp.Session, error) {
	return &memorySession{backend: b}, nil
}

// Messages returns a copy of all received messages.
func (b *MemoryBackend) Messages() []ReceivedMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]ReceivedMessage, len(b.messages))
	copy(out, b.messages)
	return out
}

// RejectRecipient makes RCPT TO fail for addr.
func (b *MemoryBackend) RejectRecipient(addr string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.rejectRcpt == nil {
		b.rejectRcpt = make(map[string]bool)
	}
	b.rejectRcpt[addr] = true
}

type memorySession struct {
	backend *MemoryBackend
	from    string
	to      []string
}

func (s *memorySession) Mail(from string, opts *smtp.MailOptions) error {
	s.from = from
	return nil
}

func (s *memorySession) Rcpt(to string, opts *smtp.RcptOptions) error {
	s.backend.mu.Lock()
	rejected := s.backend.rejectRcpt[to]
	s.backend.mu.Unlock()
	if rejected {
		return &smtp.SMTPError{
			Code:         550,
			EnhancedCode: smtp.EnhancedCode{5, 1, 1},
			Message:      "mailbox unavailable",
		}
	}
	s.to = append(s.to, to)
	return nil
}

func (s *memorySession) Data(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	s.backend.messages = append(s.backend.messages, ReceivedMessage{
		From: s.from,
		To:   s.to,
		Data: data,
	})
	return nil
}

func (s *memorySession) Reset() {
	s.from = ""
	s.to = nil
}

func (s *memorySession) Logout() error {
	return nil
}

// SMTPServer is an in-memory SMTP server on a random local port.
type SMTPServer struct {
	Backend *MemoryBackend
	Host    string
	Port    int

	// RootCAs trusts the server's self-signed certificate. Nil for
	// plaintext servers.
	RootCAs *x509.CertPool

	server *smtp.Server
}

// NewSMTPServer starts a server offering STARTTLS with a self-signed
// certificate for 127.0.0.1 and registers its shutdown with t.Cleanup.
func NewSMTPServer(t *testing.T) *SMTPServer {
	t.Helper()

	cert, pool := selfSignedCert(t)
	srv := newSMTPServer(t, &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	})
	srv.RootCAs = pool
	return srv
}

// NewPlaintextSMTPServer starts a server that never offers STARTTLS.
func NewPlaintextSMTPServer(t *testing.T) *SMTPServer {
	t.Helper()
	return newSMTPServer(t, nil)
}

func newSMTPServer(t *testing.T, tlsConfig *tls.Config) *SMTPServer {
	t.Helper()

	be := &MemoryBackend{}
	s := smtp.NewServer(be)
	s.Domain = "localhost"
	s.TLSConfig = tlsConfig
	s.ReadTimeout = 5 * time.Second
	s.WriteTimeout = 5 * time.Second

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	// Serve returns an error once Close runs; nothing to report.
	go func() { _ = s.Serve(listener) }()
	t.Cleanup(func() { _ = s.Close() })

	host, portStr, _ := net.SplitHostPort(listener.Addr().String())
	port, _ := strconv.Atoi(portStr)

	return &SMTPServer{Backend: be, Host: host, Port: port, server: s}
}

func selfSignedCert(t *testing.T) (tls.Certificate, *x509.CertPool) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "127.0.0.1"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		IPAddresses:           []net.IP{net.ParseIP("127.0.0.1")},
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("failed to create certificate: %v", err)
	}
	leaf, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatalf("failed to parse certificate: %v", err)
	}

	pool := x509.NewCertPool()
	pool.AddCert(leaf)
	return tls.Certificate{Certificate: [][]byte{der}, PrivateKey: key, Leaf: leaf}, pool
}

// ClosedPort returns a local port with nothing listening on it.
func ClosedPort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	_ = l.Close()
	return port
}
