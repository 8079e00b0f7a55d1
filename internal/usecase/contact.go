package usecase

import (
	"context"
	"fmt"

	"go-inquiry-backend/internal/domain"
	"go-inquiry-backend/internal/metrics"
	"go-inquiry-backend/pkg/logger"

	"go.uber.org/zap"
)

const contactSuccessMessage = "Contact form submitted successfully. We will get back to you soon!"

type contactUsecase struct {
	pipeline
	contacts domain.ContactRepository
}

// NewContactUsecase creates a new contact usecase. contacts may be nil when
// no database is configured.
func NewContactUsecase(deps SubmissionDeps, contacts domain.ContactRepository) domain.ContactUsecase {
	return &contactUsecase{
		pipeline: newPipeline(deps),
		contacts: contacts,
	}
}

// Submit runs validate, persist, build, dispatch, log in that order.
// Only a failed company notification fails the request.
func (uc *contactUsecase) Submit(ctx context.Context, form *domain.ContactForm, meta domain.SourceMeta) (*domain.ContactResult, error) {
	log := logger.FromContext(ctx)

	sub, err := ValidateContactForm(uc.validate, form)
	if err != nil {
		metrics.RecordSubmission("contact", metrics.OutcomeInvalid)
		return nil, err
	}
	sub.Meta = meta

	if !uc.cfg.IsConfigured() {
		metrics.RecordSubmission("contact", metrics.OutcomeFailed)
		return nil, domain.ErrEmailNotConfigured
	}

	contactID := uc.persist(ctx, sub)
	persisted := contactID != nil

	at := uc.now()
	notifyMsg, notifyErr := uc.messages.ContactNotification(sub, contactID, at)
	replyMsg, replyErr := uc.messages.ContactAutoReply(sub, contactID, at)
	notify := newJob(domain.EmailTypeContactForm, domain.TemplateContactForm, notifyMsg, notifyErr)
	reply := newJob(domain.EmailTypeAutoReply, domain.TemplateContactAutoReply, replyMsg, replyErr)

	uc.dispatch(ctx, notify, reply)
	uc.recordOutcomes(ctx, logParent{persisted: persisted, contactID: contactID, meta: meta}, notify, reply)

	log.Info("Contact form processed",
		zap.Uintp("contact_id", contactID),
		zap.String("email", sub.Email),
		zap.String("subject", sub.Subject),
		zap.Bool("notification_sent", notify.outcome.Sent()),
		zap.Bool("auto_reply_sent", reply.outcome.Sent()),
		zap.Bool("database_available", persisted),
	)

	if !notify.outcome.Sent() {
		metrics.RecordSubmission("contact", metrics.OutcomeFailed)
		return nil, fmt.Errorf("%w: %w", domain.ErrNotificationFailed, notify.outcome.Err)
	}

	metrics.RecordSubmission("contact", metrics.OutcomeAccepted)
	return &domain.ContactResult{
		Success: true,
		Message: contactSuccessMessage,
		Details: domain.ContactDetails{
			NotificationSent:  true,
			AutoReplySent:     reply.outcome.Sent(),
			DatabaseAvailable: persisted,
		},
	}, nil
}

// persist is best-effort: nil means the submission was not stored.
func (uc *contactUsecase) persist(ctx context.Context, sub *domain.ContactSubmission) *uint {
	log := logger.FromContext(ctx)
	if uc.contacts == nil {
		metrics.RecordStorageWrite("contacts", true, nil)
		log.Info("Database not configured, continuing with email-only mode")
		return nil
	}

	record := domain.NewContactRecord(sub)
	err := uc.contacts.Create(ctx, record)
	metrics.RecordStorageWrite("contacts", false, err)
	if err != nil {
		log.Warn("Database not available, continuing with email-only mode", zap.Error(err))
		return nil
	}

	log.Info("Contact saved to database", zap.Uint("contact_id", record.ID))
	return &record.ID
}
