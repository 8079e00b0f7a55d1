package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go-inquiry-backend/internal/domain"
	"go-inquiry-backend/internal/usecase"
	"go-inquiry-backend/pkg/security/antivirus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storeQuote(id uint) func(mock.Arguments) {
	return func(args mock.Arguments) {
		args.Get(1).(*domain.QuoteRequest).ID = id
	}
}

func fixedSuffix(n int) usecase.QuoteOption {
	return usecase.WithQuoteSuffix(func(int) int { return n })
}

func quoteWithAttachment() *domain.QuoteForm {
	form := validQuoteForm()
	form.Attachments = []domain.UploadedFile{
		{Filename: "drawing.pdf", Size: int64(len(samplePDF)), Data: samplePDF},
	}
	return form
}

func TestQuoteSubmit_Success(t *testing.T) {
	notifier := &fakeNotifier{}
	quotes := new(MockQuoteRepo)
	logs := new(MockEmailLogRepo)
	archive := new(MockArchive)

	quotes.On("Create", mock.Anything, mock.AnythingOfType("*domain.QuoteRequest")).Run(storeQuote(11)).Return(nil)
	logs.On("Create", mock.Anything, mock.Anything).Return(nil).Twice()
	archive.On("Archive", mock.Anything, "GE20260314042", mock.Anything).Return(nil).Once()

	uc := usecase.NewQuoteUsecase(newDeps(notifier, logs), quotes, fixedSuffix(42), usecase.WithArchive(archive))

	res, err := uc.Submit(context.Background(), quoteWithAttachment(), domain.SourceMeta{IPAddress: "10.1.1.1"})

	require.NoError(t, err)
	assert.Equal(t, "GE20260314042", res.QuoteNumber)
	assert.Equal(t, "Quote request submitted successfully. We will get back to you within 2-3 business days.", res.Message)
	assert.Equal(t, domain.QuoteDetails{
		QuoteRequestSent:     true,
		ConfirmationSent:     true,
		AttachmentsProcessed: 1,
		DatabaseAvailable:    true,
	}, res.Details)

	saved := quotes.Calls[0].Arguments.Get(1).(*domain.QuoteRequest)
	assert.Equal(t, res.QuoteNumber, saved.QuoteNumber)
	assert.JSONEq(t, `[{"filename":"drawing.pdf","contentType":"application/pdf","size":`+fmt.Sprint(len(samplePDF))+`}]`, string(saved.Attachments))

	notify, ok := notifier.messageTo(companyAddress)
	require.True(t, ok)
	assert.Equal(t, "New Quote Request from Ravi Kumar - transformers - Quote #GE20260314042", notify.Subject)
	assert.Equal(t, "ravi@example.com", notify.ReplyTo)
	require.Len(t, notify.Attachments, 1)
	assert.Equal(t, samplePDF, notify.Attachments[0].Data)
	assert.Contains(t, notify.Text, "Quote Number: GE20260314042")
	assert.Contains(t, notify.Text, "Reference: #11")

	confirm, ok := notifier.messageTo("ravi@example.com")
	require.True(t, ok)
	assert.Equal(t, "Quote Request Received - Quote #GE20260314042 - Gayatri Electricals & Electronics", confirm.Subject)
	assert.Empty(t, confirm.Attachments)
	assert.Contains(t, confirm.Text, "GE20260314042")

	logs.AssertExpectations(t)
	for _, call := range logs.Calls {
		entry := call.Arguments.Get(1).(*domain.EmailLog)
		require.NotNil(t, entry.RelatedQuoteID)
		assert.EqualValues(t, 11, *entry.RelatedQuoteID)
		assert.Nil(t, entry.RelatedContactID)
	}
	archive.AssertExpectations(t)
}

func TestQuoteSubmit_OptionalFieldsShowPlaceholders(t *testing.T) {
	notifier := &fakeNotifier{}
	form := validQuoteForm()
	form.Quantity = ""
	form.BudgetRange = ""
	form.Timeline = ""

	uc := usecase.NewQuoteUsecase(newDeps(notifier, nil), nil)

	res, err := uc.Submit(context.Background(), form, domain.SourceMeta{})

	require.NoError(t, err)
	assert.Equal(t, 0, res.Details.AttachmentsProcessed)
	notify, ok := notifier.messageTo(companyAddress)
	require.True(t, ok)
	assert.Contains(t, notify.Text, "Not specified")
	assert.NotContains(t, notify.Text, "Reference: #")
}

func TestQuoteSubmit_MissingProductType(t *testing.T) {
	notifier := &fakeNotifier{}
	quotes := new(MockQuoteRepo)
	form := validQuoteForm()
	form.ProductType = ""

	uc := usecase.NewQuoteUsecase(newDeps(notifier, nil), quotes)

	_, err := uc.Submit(context.Background(), form, domain.SourceMeta{})

	fields := validationFields(t, err)
	assert.True(t, fields.Has("productType"))
	quotes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Empty(t, notifier.messages())
}

func TestQuoteSubmit_DuplicateQuoteNumberFallsBackToEmailOnly(t *testing.T) {
	notifier := &fakeNotifier{}
	quotes := new(MockQuoteRepo)
	logs := new(MockEmailLogRepo)
	quotes.On("Create", mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, domain.ErrDuplicateQuoteNumber))

	uc := usecase.NewQuoteUsecase(newDeps(notifier, logs), quotes, fixedSuffix(1))
	ctx, observed := observedContext(t)

	res, err := uc.Submit(ctx, validQuoteForm(), domain.SourceMeta{})

	require.NoError(t, err)
	assert.Equal(t, "GE20260314001", res.QuoteNumber)
	assert.False(t, res.Details.DatabaseAvailable)
	assert.Equal(t, 1, observed.FilterMessage("Quote number collision, continuing with email-only mode").Len())
	logs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestQuoteSubmit_NotificationFailure(t *testing.T) {
	notifier := &fakeNotifier{failWhen: failTo(companyAddress)}
	uc := usecase.NewQuoteUsecase(newDeps(notifier, nil), nil)

	res, err := uc.Submit(context.Background(), validQuoteForm(), domain.SourceMeta{})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrNotificationFailed)
	assert.Len(t, notifier.messages(), 2)
}

func TestQuoteSubmit_ConfirmationFailureStillSucceeds(t *testing.T) {
	notifier := &fakeNotifier{failWhen: failTo("ravi@example.com")}
	quotes := new(MockQuoteRepo)
	logs := new(MockEmailLogRepo)
	quotes.On("Create", mock.Anything, mock.Anything).Run(storeQuote(5)).Return(nil)
	logs.On("Create", mock.Anything, mock.Anything).Return(nil).Twice()

	uc := usecase.NewQuoteUsecase(newDeps(notifier, logs), quotes, fixedSuffix(3))

	res, err := uc.Submit(context.Background(), validQuoteForm(), domain.SourceMeta{})

	require.NoError(t, err)
	assert.Equal(t, "GE20260314003", res.QuoteNumber)
	assert.True(t, res.Details.QuoteRequestSent)
	assert.False(t, res.Details.ConfirmationSent)
	assert.True(t, res.Details.DatabaseAvailable)

	statuses := map[string]domain.EmailStatus{}
	for _, call := range logs.Calls {
		entry := call.Arguments.Get(1).(*domain.EmailLog)
		statuses[entry.RecipientEmail] = entry.Status
	}
	assert.Equal(t, domain.EmailStatusSent, statuses[companyAddress])
	assert.Equal(t, domain.EmailStatusFailed, statuses["ravi@example.com"])
}

func TestQuoteSubmit_StorageUnavailable(t *testing.T) {
	notifier := &fakeNotifier{}
	quotes := new(MockQuoteRepo)
	logs := new(MockEmailLogRepo)
	quotes.On("Create", mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: connection refused", domain.ErrStorageUnavailable))

	uc := usecase.NewQuoteUsecase(newDeps(notifier, logs), quotes, fixedSuffix(8))
	ctx, observed := observedContext(t)

	res, err := uc.Submit(ctx, validQuoteForm(), domain.SourceMeta{})

	require.NoError(t, err)
	assert.Equal(t, "GE20260314008", res.QuoteNumber)
	assert.False(t, res.Details.DatabaseAvailable)
	assert.True(t, res.Details.QuoteRequestSent)
	assert.True(t, res.Details.ConfirmationSent)
	notify, ok := notifier.messageTo(companyAddress)
	require.True(t, ok)
	assert.NotContains(t, notify.Text, "Reference: #")
	logs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Equal(t, 1, observed.FilterMessage("Database not available, continuing with email-only mode").Len())
	assert.Zero(t, observed.FilterMessage("Quote number collision, continuing with email-only mode").Len())
	assert.Equal(t, 2, observed.FilterMessage("Email log (storage unavailable)").Len())
}

func TestQuoteSubmit_EmailNotConfigured(t *testing.T) {
	quotes := new(MockQuoteRepo)
	deps := newDeps(&fakeNotifier{}, nil)
	deps.Email.Pass = ""

	uc := usecase.NewQuoteUsecase(deps, quotes)

	_, err := uc.Submit(context.Background(), validQuoteForm(), domain.SourceMeta{})

	assert.ErrorIs(t, err, domain.ErrEmailNotConfigured)
	quotes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestQuoteSubmit_InfectedAttachmentRejected(t *testing.T) {
	notifier := &fakeNotifier{}
	quotes := new(MockQuoteRepo)
	scanner := new(MockScanner)
	scanner.On("Scan", mock.Anything, "drawing.pdf", mock.Anything).
		Return(antivirus.ScanResult{Infected: true, ThreatName: "Eicar-Signature", ScannerName: "clamav"})

	uc := usecase.NewQuoteUsecase(newDeps(notifier, nil), quotes, usecase.WithScanner(scanner))

	_, err := uc.Submit(context.Background(), quoteWithAttachment(), domain.SourceMeta{})

	fields := validationFields(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "attachments", fields[0].Path)
	assert.Equal(t, "drawing.pdf was rejected by the malware scanner", fields[0].Msg)
	quotes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Empty(t, notifier.messages())
}

func TestQuoteSubmit_ScannerUnavailableAcceptsFile(t *testing.T) {
	notifier := &fakeNotifier{}
	scanner := new(MockScanner)
	scanner.On("Scan", mock.Anything, mock.Anything, mock.Anything).
		Return(antivirus.ScanResult{ScannerName: "clamav", Err: errors.New("dial tcp: connection refused")})

	uc := usecase.NewQuoteUsecase(newDeps(notifier, nil), nil, usecase.WithScanner(scanner))
	ctx, observed := observedContext(t)

	res, err := uc.Submit(ctx, quoteWithAttachment(), domain.SourceMeta{})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Details.AttachmentsProcessed)
	assert.Equal(t, 1, observed.FilterMessage("Attachment scan incomplete, accepting file").Len())
}

func TestQuoteSubmit_ArchiveFailureDoesNotFailRequest(t *testing.T) {
	archive := new(MockArchive)
	archive.On("Archive", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("AccessDenied"))

	uc := usecase.NewQuoteUsecase(newDeps(&fakeNotifier{}, nil), nil, usecase.WithArchive(archive))
	ctx, observed := observedContext(t)

	res, err := uc.Submit(ctx, quoteWithAttachment(), domain.SourceMeta{})

	require.NoError(t, err)
	assert.True(t, res.Success)
	archive.AssertNumberOfCalls(t, "Archive", 1)
	assert.Equal(t, 1, observed.FilterMessage("Attachment archive failed (continuing)").Len())
}

func TestQuoteSubmit_NoArchiveWithoutAttachments(t *testing.T) {
	archive := new(MockArchive)
	uc := usecase.NewQuoteUsecase(newDeps(&fakeNotifier{}, nil), nil, usecase.WithArchive(archive))

	_, err := uc.Submit(context.Background(), validQuoteForm(), domain.SourceMeta{})

	require.NoError(t, err)
	archive.AssertNotCalled(t, "Archive", mock.Anything, mock.Anything, mock.Anything)
}
