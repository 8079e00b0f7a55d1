package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-inquiry-backend/config"
	"go-inquiry-backend/internal/domain"
	"go-inquiry-backend/internal/usecase"
	"go-inquiry-backend/pkg/email"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storeContact(id uint) func(mock.Arguments) {
	return func(args mock.Arguments) {
		args.Get(1).(*domain.Contact).ID = id
	}
}

func TestContactSubmit_Success(t *testing.T) {
	notifier := &fakeNotifier{}
	contacts := new(MockContactRepo)
	logs := new(MockEmailLogRepo)

	contacts.On("Create", mock.Anything, mock.AnythingOfType("*domain.Contact")).Run(storeContact(42)).Return(nil)
	logs.On("Create", mock.Anything, mock.AnythingOfType("*domain.EmailLog")).Return(nil).Twice()

	uc := usecase.NewContactUsecase(newDeps(notifier, logs), contacts)
	form := validContactForm()
	form.Email = "Jane@Example.com"

	res, err := uc.Submit(context.Background(), form, domain.SourceMeta{IPAddress: "10.0.0.1", UserAgent: "curl/8"})

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Contact form submitted successfully. We will get back to you soon!", res.Message)
	assert.Equal(t, domain.ContactDetails{NotificationSent: true, AutoReplySent: true, DatabaseAvailable: true}, res.Details)

	notify, ok := notifier.messageTo(companyAddress)
	require.True(t, ok)
	assert.Equal(t, "Admin", notify.ToName)
	assert.Equal(t, "jane@example.com", notify.ReplyTo)
	assert.Equal(t, "New Contact Form Submission from Jane Doe", notify.Subject)
	assert.Contains(t, notify.Text, "Reference: #42")
	assert.Contains(t, notify.Text, "Phone: Not provided")
	assert.Contains(t, notify.Text, "Company: Not provided")
	assert.Contains(t, notify.Text, "March 14, 2026 at 10:30 AM UTC")

	reply, ok := notifier.messageTo("jane@example.com")
	require.True(t, ok)
	assert.Equal(t, "Thank you for contacting Gayatri Electricals & Electronics", reply.Subject)
	assert.Equal(t, senderAddress, reply.From)
	assert.Contains(t, reply.Text, "Dear Jane Doe")
	assert.Contains(t, reply.Text, "Website: www.gayatrielectricals.com")

	saved := contacts.Calls[0].Arguments.Get(1).(*domain.Contact)
	assert.Equal(t, "jane@example.com", saved.Email)
	require.NotNil(t, saved.IPAddress)
	assert.Equal(t, "10.0.0.1", *saved.IPAddress)

	logs.AssertExpectations(t)
	for _, call := range logs.Calls {
		entry := call.Arguments.Get(1).(*domain.EmailLog)
		require.NotNil(t, entry.RelatedContactID)
		assert.EqualValues(t, 42, *entry.RelatedContactID)
		assert.Equal(t, domain.EmailStatusSent, entry.Status)
		assert.NotNil(t, entry.SentAt)
		assert.NotNil(t, entry.MessageID)
	}
}

func TestContactSubmit_StorageUnavailable(t *testing.T) {
	notifier := &fakeNotifier{}
	contacts := new(MockContactRepo)
	logs := new(MockEmailLogRepo)
	contacts.On("Create", mock.Anything, mock.Anything).Return(domain.ErrStorageUnavailable)

	uc := usecase.NewContactUsecase(newDeps(notifier, logs), contacts)
	ctx, observed := observedContext(t)

	res, err := uc.Submit(ctx, validContactForm(), domain.SourceMeta{})

	require.NoError(t, err)
	assert.True(t, res.Details.NotificationSent)
	assert.False(t, res.Details.DatabaseAvailable)
	assert.Len(t, notifier.messages(), 2)
	assert.NotContains(t, notifier.messages()[0].Text, "Reference: #")
	logs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Equal(t, 2, observed.FilterMessage("Email log (storage unavailable)").Len())
	assert.Equal(t, 1, observed.FilterMessage("Database not available, continuing with email-only mode").Len())
}

func TestContactSubmit_NoDatabaseConfigured(t *testing.T) {
	notifier := &fakeNotifier{}
	uc := usecase.NewContactUsecase(newDeps(notifier, nil), nil)

	res, err := uc.Submit(context.Background(), validContactForm(), domain.SourceMeta{})

	require.NoError(t, err)
	assert.False(t, res.Details.DatabaseAvailable)
	assert.True(t, res.Details.AutoReplySent)
}

func TestContactSubmit_NotificationFailure(t *testing.T) {
	notifier := &fakeNotifier{failWhen: failTo(companyAddress)}
	contacts := new(MockContactRepo)
	logs := new(MockEmailLogRepo)
	contacts.On("Create", mock.Anything, mock.Anything).Run(storeContact(7)).Return(nil)
	logs.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewContactUsecase(newDeps(notifier, logs), contacts)

	res, err := uc.Submit(context.Background(), validContactForm(), domain.SourceMeta{})

	assert.Nil(t, res)
	require.ErrorIs(t, err, domain.ErrNotificationFailed)
	assert.Contains(t, err.Error(), "550 mailbox unavailable")

	// The auto-reply was still attempted and both outcomes were logged.
	assert.Len(t, notifier.messages(), 2)
	require.Len(t, logs.Calls, 2)
	statuses := map[domain.EmailStatus]int{}
	for _, call := range logs.Calls {
		entry := call.Arguments.Get(1).(*domain.EmailLog)
		statuses[entry.Status]++
		if entry.Status == domain.EmailStatusFailed {
			require.NotNil(t, entry.ErrorMessage)
			assert.Contains(t, *entry.ErrorMessage, "550")
			assert.Nil(t, entry.SentAt)
		}
	}
	assert.Equal(t, map[domain.EmailStatus]int{domain.EmailStatusSent: 1, domain.EmailStatusFailed: 1}, statuses)
}

func TestContactSubmit_AutoReplyFailureStillSucceeds(t *testing.T) {
	form := validContactForm()
	form.Email = gofakeit.Email()
	notifier := &fakeNotifier{failWhen: func(_ int, msg email.Message) error {
		if msg.To != companyAddress {
			return errors.New("mailbox full")
		}
		return nil
	}}

	uc := usecase.NewContactUsecase(newDeps(notifier, nil), nil)

	res, err := uc.Submit(context.Background(), form, domain.SourceMeta{})

	require.NoError(t, err)
	assert.True(t, res.Details.NotificationSent)
	assert.False(t, res.Details.AutoReplySent)
}

func TestContactSubmit_FirstSendFailureDoesNotBlockSecond(t *testing.T) {
	notifier := &fakeNotifier{failWhen: func(call int, _ email.Message) error {
		if call == 1 {
			return errors.New("connection reset")
		}
		return nil
	}}

	uc := usecase.NewContactUsecase(newDeps(notifier, nil), nil)
	_, _ = uc.Submit(context.Background(), validContactForm(), domain.SourceMeta{})

	assert.Len(t, notifier.messages(), 2)
}

func TestContactSubmit_EmailNotConfigured(t *testing.T) {
	notifier := &fakeNotifier{}
	contacts := new(MockContactRepo)
	deps := newDeps(notifier, nil)
	deps.Email = config.EmailConfig{Host: "smtp.gmail.com", Port: 587}

	uc := usecase.NewContactUsecase(deps, contacts)

	res, err := uc.Submit(context.Background(), validContactForm(), domain.SourceMeta{})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrEmailNotConfigured)
	contacts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Empty(t, notifier.messages())
}

func TestContactSubmit_InvalidFormSendsNothing(t *testing.T) {
	notifier := &fakeNotifier{}
	contacts := new(MockContactRepo)
	uc := usecase.NewContactUsecase(newDeps(notifier, nil), contacts)

	form := validContactForm()
	form.Email = "jane-at-example"

	_, err := uc.Submit(context.Background(), form, domain.SourceMeta{})

	fields := validationFields(t, err)
	assert.True(t, fields.Has("email"))
	contacts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Empty(t, notifier.messages())
}

func TestContactSubmit_EmailLogFailureIsSwallowed(t *testing.T) {
	contacts := new(MockContactRepo)
	logs := new(MockEmailLogRepo)
	contacts.On("Create", mock.Anything, mock.Anything).Run(storeContact(3)).Return(nil)
	logs.On("Create", mock.Anything, mock.Anything).Return(errors.New("relation \"email_logs\" does not exist"))

	uc := usecase.NewContactUsecase(newDeps(&fakeNotifier{}, logs), contacts)
	ctx, observed := observedContext(t)

	res, err := uc.Submit(ctx, validContactForm(), domain.SourceMeta{})

	require.NoError(t, err)
	assert.True(t, res.Details.DatabaseAvailable)
	assert.Equal(t, 2, observed.FilterMessage("Email log save failed (continuing)").Len())
}

func TestContactSubmit_SendTimeout(t *testing.T) {
	notifier := &fakeNotifier{delay: time.Second}
	deps := newDeps(notifier, nil)
	deps.Dispatcher = usecase.NewDispatcher(notifier, nil, 20*time.Millisecond)

	uc := usecase.NewContactUsecase(deps, nil)

	_, err := uc.Submit(context.Background(), validContactForm(), domain.SourceMeta{})

	require.ErrorIs(t, err, domain.ErrNotificationFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestContactSubmit_ClientCancellationDoesNotAbortSend(t *testing.T) {
	notifier := &fakeNotifier{delay: 20 * time.Millisecond}
	uc := usecase.NewContactUsecase(newDeps(notifier, nil), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := uc.Submit(ctx, validContactForm(), domain.SourceMeta{})

	require.NoError(t, err)
	assert.True(t, res.Details.AutoReplySent)
}
