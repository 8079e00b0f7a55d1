package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-inquiry-backend/config"
	"go-inquiry-backend/internal/domain"
	"go-inquiry-backend/internal/usecase"
	"go-inquiry-backend/pkg/email"
	"go-inquiry-backend/pkg/logger"
	"go-inquiry-backend/pkg/security/antivirus"
	"go-inquiry-backend/pkg/validation"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// Mock Repositories
type MockContactRepo struct {
	mock.Mock
}

func (m *MockContactRepo) Create(ctx context.Context, contact *domain.Contact) error {
	return m.Called(ctx, contact).Error(0)
}

type MockQuoteRepo struct {
	mock.Mock
}

func (m *MockQuoteRepo) Create(ctx context.Context, quote *domain.QuoteRequest) error {
	return m.Called(ctx, quote).Error(0)
}

type MockEmailLogRepo struct {
	mock.Mock
}

func (m *MockEmailLogRepo) Create(ctx context.Context, entry *domain.EmailLog) error {
	return m.Called(ctx, entry).Error(0)
}

type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) Archive(ctx context.Context, quoteNumber string, files []domain.Attachment) error {
	return m.Called(ctx, quoteNumber, files).Error(0)
}

type MockScanner struct {
	mock.Mock
}

func (m *MockScanner) Scan(ctx context.Context, filename string, data []byte) antivirus.ScanResult {
	return m.Called(ctx, filename, data).Get(0).(antivirus.ScanResult)
}

func (m *MockScanner) Name() string { return "mock" }

// fakeNotifier records every message and fails according to failWhen.
type fakeNotifier struct {
	mu       sync.Mutex
	sent     []email.Message
	calls    int
	failWhen func(call int, msg email.Message) error
	delay    time.Duration
}

func (f *fakeNotifier) Send(ctx context.Context, msg email.Message) (string, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.sent = append(f.sent, msg)
	failWhen := f.failWhen
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if failWhen != nil {
		if err := failWhen(call, msg); err != nil {
			return "", err
		}
	}
	return "<" + msg.To + "@test>", nil
}

func (f *fakeNotifier) messages() []email.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]email.Message, len(f.sent))
	copy(out, f.sent)
	return out
}

// messageTo finds the message addressed to addr.
func (f *fakeNotifier) messageTo(addr string) (email.Message, bool) {
	for _, m := range f.messages() {
		if m.To == addr {
			return m, true
		}
	}
	return email.Message{}, false
}

func failTo(addr string) func(int, email.Message) error {
	return func(_ int, msg email.Message) error {
		if msg.To == addr {
			return errors.New("550 mailbox unavailable")
		}
		return nil
	}
}

const (
	companyAddress = "office@gayatri.test"
	senderAddress  = "sales@gayatri.test"
)

var fixedNow = time.Date(2026, time.March, 14, 10, 30, 0, 0, time.UTC)

func testEmailConfig() config.EmailConfig {
	return config.EmailConfig{
		Host:           "smtp.gayatri.test",
		Port:           587,
		User:           senderAddress,
		Pass:           "secret",
		CompanyEmail:   companyAddress,
		CompanyName:    "Gayatri Electricals",
		SendTimeout:    time.Second,
		BrandName:      "Gayatri Electricals & Electronics",
		CompanyWebsite: "www.gayatrielectricals.com",
	}
}

func newDeps(notifier domain.Notifier, logs domain.EmailLogRepository) usecase.SubmissionDeps {
	return usecase.SubmissionDeps{
		Email:      testEmailConfig(),
		Validate:   validation.New(),
		Dispatcher: usecase.NewDispatcher(notifier, nil, time.Second),
		EmailLogs:  logs,
		Now:        func() time.Time { return fixedNow },
	}
}

// observedContext returns a context carrying an observer-backed logger.
func observedContext(t *testing.T) (context.Context, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return logger.WithLogger(context.Background(), zap.New(core)), logs
}
