package usecase

import (
	"context"
	"time"

	"go-inquiry-backend/config"
	"go-inquiry-backend/internal/domain"
	"go-inquiry-backend/internal/metrics"
	"go-inquiry-backend/pkg/email"
	"go-inquiry-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const emailLogTimeout = 5 * time.Second

// SubmissionDeps are shared by the contact and quote usecases. EmailLogs may
// be nil when no database is configured.
type SubmissionDeps struct {
	Email      config.EmailConfig
	Validate   *validator.Validate
	Dispatcher *Dispatcher
	EmailLogs  domain.EmailLogRepository
	Now        func() time.Time
}

// pipeline holds the steps both submission kinds share: message dispatch
// and outcome logging.
type pipeline struct {
	cfg        config.EmailConfig
	validate   *validator.Validate
	messages   messageBuilder
	dispatcher *Dispatcher
	emailLogs  domain.EmailLogRepository
	now        func() time.Time
}

func newPipeline(deps SubmissionDeps) pipeline {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return pipeline{
		cfg:        deps.Email,
		validate:   deps.Validate,
		messages:   messageBuilder{cfg: deps.Email},
		dispatcher: deps.Dispatcher,
		emailLogs:  deps.EmailLogs,
		now:        now,
	}
}

// dispatchJob is one outbound message and, after dispatch, its outcome.
type dispatchJob struct {
	emailType domain.EmailType
	template  string
	msg       email.Message
	buildErr  error
	outcome   Outcome
}

func newJob(emailType domain.EmailType, tmpl string, msg email.Message, buildErr error) *dispatchJob {
	return &dispatchJob{emailType: emailType, template: tmpl, msg: msg, buildErr: buildErr}
}

// dispatch sends all successfully built jobs concurrently. A job whose
// message failed to render counts as a failed send and does not block the rest.
func (p pipeline) dispatch(ctx context.Context, jobs ...*dispatchJob) {
	msgs := make([]email.Message, 0, len(jobs))
	ready := make([]*dispatchJob, 0, len(jobs))
	for _, j := range jobs {
		if j.buildErr != nil {
			j.outcome = Outcome{Err: j.buildErr}
			continue
		}
		msgs = append(msgs, j.msg)
		ready = append(ready, j)
	}

	for i, out := range p.dispatcher.Dispatch(ctx, msgs...) {
		ready[i].outcome = out
	}
}

// logParent identifies what the email log entries refer back to.
type logParent struct {
	persisted bool
	contactID *uint
	quoteID   *uint
	meta      domain.SourceMeta
}

// recordOutcomes writes one email_logs row per job when the parent was
// persisted, otherwise emits a log line. Write failures are swallowed.
func (p pipeline) recordOutcomes(ctx context.Context, parent logParent, jobs ...*dispatchJob) {
	log := logger.FromContext(ctx)
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), emailLogTimeout)
	defer cancel()

	for _, j := range jobs {
		metrics.RecordEmail(string(j.emailType), j.outcome.Sent(), j.outcome.Took)
		entry := p.emailLogEntry(parent, j)

		if !parent.persisted || p.emailLogs == nil {
			metrics.RecordStorageWrite("email_logs", true, nil)
			log.Info("Email log (storage unavailable)",
				zap.String("email_type", string(entry.EmailType)),
				zap.String("recipient", entry.RecipientEmail),
				zap.String("status", string(entry.Status)),
			)
			continue
		}

		err := p.emailLogs.Create(ctx, entry)
		metrics.RecordStorageWrite("email_logs", false, err)
		if err != nil {
			log.Warn("Email log save failed (continuing)", zap.Error(err))
		}
	}
}

func (p pipeline) emailLogEntry(parent logParent, j *dispatchJob) *domain.EmailLog {
	tmpl := j.template
	entry := &domain.EmailLog{
		EmailType:        j.emailType,
		SenderEmail:      p.cfg.User,
		SenderName:       domain.Nullable(p.cfg.CompanyName),
		RecipientEmail:   j.msg.To,
		RecipientName:    domain.Nullable(j.msg.ToName),
		Subject:          j.msg.Subject,
		TemplateUsed:     &tmpl,
		RelatedContactID: parent.contactID,
		RelatedQuoteID:   parent.quoteID,
		IPAddress:        domain.Nullable(parent.meta.IPAddress),
		UserAgent:        domain.Nullable(parent.meta.UserAgent),
	}

	if j.outcome.Sent() {
		sentAt := p.now()
		entry.Status = domain.EmailStatusSent
		entry.MessageID = domain.Nullable(j.outcome.MessageID)
		entry.SentAt = &sentAt
	} else {
		entry.Status = domain.EmailStatusFailed
		entry.ErrorMessage = domain.Nullable(j.outcome.Err.Error())
	}
	return entry
}
