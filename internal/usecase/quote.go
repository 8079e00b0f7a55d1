package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go-inquiry-backend/internal/domain"
	"go-inquiry-backend/internal/metrics"
	"go-inquiry-backend/pkg/logger"
	"go-inquiry-backend/pkg/security/antivirus"
	"go-inquiry-backend/pkg/validation"

	"go.uber.org/zap"
)

const quoteSuccessMessage = "Quote request submitted successfully. We will get back to you within 2-3 business days."

type quoteUsecase struct {
	pipeline
	quotes  domain.QuoteRepository
	scanner antivirus.Scanner
	archive domain.AttachmentArchive
	suffix  func(n int) int
}

// QuoteOption customizes the quote usecase.
type QuoteOption func(*quoteUsecase)

// WithScanner scans every attachment before anything is stored or sent.
func WithScanner(s antivirus.Scanner) QuoteOption {
	return func(uc *quoteUsecase) { uc.scanner = s }
}

// WithArchive copies attachments to object storage after persistence.
func WithArchive(a domain.AttachmentArchive) QuoteOption {
	return func(uc *quoteUsecase) { uc.archive = a }
}

// WithQuoteSuffix overrides the random quote-number suffix source.
func WithQuoteSuffix(f func(n int) int) QuoteOption {
	return func(uc *quoteUsecase) { uc.suffix = f }
}

// NewQuoteUsecase creates the quote usecase. quotes may be nil when no
// database is configured.
func NewQuoteUsecase(deps SubmissionDeps, quotes domain.QuoteRepository, opts ...QuoteOption) domain.QuoteUsecase {
	uc := &quoteUsecase{
		pipeline: newPipeline(deps),
		quotes:   quotes,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *quoteUsecase) Submit(ctx context.Context, form *domain.QuoteForm, meta domain.SourceMeta) (*domain.QuoteResult, error) {
	log := logger.FromContext(ctx)

	sub, err := ValidateQuoteForm(uc.validate, form)
	if err != nil {
		metrics.RecordSubmission("quote", metrics.OutcomeInvalid)
		return nil, err
	}
	sub.Meta = meta

	if !uc.cfg.IsConfigured() {
		metrics.RecordSubmission("quote", metrics.OutcomeFailed)
		return nil, domain.ErrEmailNotConfigured
	}

	if err := uc.scan(ctx, sub.Attachments); err != nil {
		metrics.RecordSubmission("quote", metrics.OutcomeInvalid)
		return nil, err
	}

	// Computed once; every message and the stored row reuse it.
	sub.QuoteNumber = NewQuoteNumber(uc.now(), uc.suffix)
	log = log.With(zap.String("quote_number", sub.QuoteNumber))
	ctx = logger.WithLogger(ctx, log)

	quoteID := uc.persist(ctx, sub)
	persisted := quoteID != nil

	var archiveWG sync.WaitGroup
	if uc.archive != nil && len(sub.Attachments) > 0 {
		archiveWG.Add(1)
		go func() {
			defer archiveWG.Done()
			uc.archiveAttachments(ctx, sub)
		}()
	}

	at := uc.now()
	notifyMsg, notifyErr := uc.messages.QuoteNotification(sub, quoteID, at)
	confirmMsg, confirmErr := uc.messages.QuoteConfirmation(sub, quoteID, at)
	notify := newJob(domain.EmailTypeQuoteRequest, domain.TemplateQuoteRequest, notifyMsg, notifyErr)
	confirm := newJob(domain.EmailTypeAutoReply, domain.TemplateQuoteConfirmation, confirmMsg, confirmErr)

	uc.dispatch(ctx, notify, confirm)
	uc.recordOutcomes(ctx, logParent{persisted: persisted, quoteID: quoteID, meta: meta}, notify, confirm)
	archiveWG.Wait()

	log.Info("Quote request processed",
		zap.Uintp("quote_id", quoteID),
		zap.String("email", sub.Email),
		zap.String("product_type", string(sub.ProductType)),
		zap.Int("attachment_count", len(sub.Attachments)),
		zap.Bool("quote_email_sent", notify.outcome.Sent()),
		zap.Bool("confirmation_sent", confirm.outcome.Sent()),
		zap.Bool("database_available", persisted),
	)

	if !notify.outcome.Sent() {
		metrics.RecordSubmission("quote", metrics.OutcomeFailed)
		return nil, fmt.Errorf("%w: %w", domain.ErrNotificationFailed, notify.outcome.Err)
	}

	metrics.RecordSubmission("quote", metrics.OutcomeAccepted)
	return &domain.QuoteResult{
		Success:     true,
		Message:     quoteSuccessMessage,
		QuoteNumber: sub.QuoteNumber,
		Details: domain.QuoteDetails{
			QuoteRequestSent:     true,
			ConfirmationSent:     confirm.outcome.Sent(),
			AttachmentsProcessed: len(sub.Attachments),
			DatabaseAvailable:    persisted,
		},
	}, nil
}

// scan rejects infected files. An unreachable scanner lets files through.
func (uc *quoteUsecase) scan(ctx context.Context, files []domain.Attachment) error {
	if uc.scanner == nil || len(files) == 0 {
		return nil
	}

	log := logger.FromContext(ctx)
	c := validation.NewChecker(uc.validate)
	for _, f := range files {
		res := uc.scanner.Scan(ctx, f.Filename, f.Data)
		switch {
		case res.Err != nil:
			log.Warn("Attachment scan incomplete, accepting file",
				zap.String("filename", f.Filename),
				zap.String("scanner", res.ScannerName),
				zap.Error(res.Err),
			)
		case res.Infected:
			log.Warn("Attachment rejected by malware scan",
				zap.String("filename", f.Filename),
				zap.String("threat", res.ThreatName),
			)
			c.Add("attachments", f.Filename, f.Filename+" was rejected by the malware scanner")
		}
	}

	if errs := c.Errors(); len(errs) > 0 {
		return &domain.ValidationError{Fields: errs}
	}
	return nil
}

func (uc *quoteUsecase) persist(ctx context.Context, sub *domain.QuoteSubmission) *uint {
	log := logger.FromContext(ctx)
	if uc.quotes == nil {
		metrics.RecordStorageWrite("quote_requests", true, nil)
		log.Info("Database not configured, continuing with email-only mode")
		return nil
	}

	record, err := domain.NewQuoteRecord(sub)
	if err == nil {
		err = uc.quotes.Create(ctx, record)
	}
	metrics.RecordStorageWrite("quote_requests", false, err)

	switch {
	case errors.Is(err, domain.ErrDuplicateQuoteNumber):
		log.Error("Quote number collision, continuing with email-only mode", zap.Error(err))
		return nil
	case err != nil:
		log.Warn("Database not available, continuing with email-only mode", zap.Error(err))
		return nil
	}

	log.Info("Quote request saved to database", zap.Uint("quote_id", record.ID))
	return &record.ID
}

func (uc *quoteUsecase) archiveAttachments(ctx context.Context, sub *domain.QuoteSubmission) {
	log := logger.FromContext(ctx)
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.cfg.SendTimeout)
	defer cancel()

	if err := uc.archive.Archive(ctx, sub.QuoteNumber, sub.Attachments); err != nil {
		log.Warn("Attachment archive failed (continuing)", zap.Error(err))
		return
	}
	log.Info("Attachments archived", zap.Int("count", len(sub.Attachments)))
}
