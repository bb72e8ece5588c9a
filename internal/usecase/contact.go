package usecase

import (
	"context"
	"fmt"
	"strings"

	"beauty-solutions-backend/internal/domain"
	"beauty-solutions-backend/pkg/email"
	"beauty-solutions-backend/pkg/logger"
	"beauty-solutions-backend/pkg/metrics"
	"beauty-solutions-backend/pkg/security"
)

// ContactConfig holds the relay settings shared by every submission
type ContactConfig struct {
	AccessKey string
	Shape     PayloadShape
}

type contactUsecase struct {
	validator *SubmissionValidator
	relay     email.Relay
	cfg       ContactConfig
	audit     *security.SecurityLogger
	metrics   *metrics.Metrics
}

// NewContactUsecase creates a new contact usecase.
// audit and m may be nil.
func NewContactUsecase(relay email.Relay, cfg ContactConfig, audit *security.SecurityLogger, m *metrics.Metrics) domain.ContactUsecase {
	if audit == nil {
		audit = security.NewSecurityLogger(nil, "", "")
	}
	return &contactUsecase{
		validator: NewSubmissionValidator(),
		relay:     relay,
		cfg:       cfg,
		audit:     audit,
		metrics:   m,
	}
}

// SubmitContact validates the request and relays it with a single attempt
func (uc *contactUsecase) SubmitContact(ctx context.Context, req *domain.SubmissionRequest) (domain.Outcome, error) {
	meta := domain.RequestMetaFromContext(ctx)
	result := uc.validator.Validate(req)

	switch result.Kind {
	case domain.ValidationSpam:
		uc.audit.LogSpamDetected(ctx, req.Email, req.Message, meta.ClientIP, meta.UserAgent, meta.RequestID)
		return uc.finish(domain.OutcomeSpam, nil)

	case domain.ValidationInvalid:
		uc.audit.LogValidationFailed(ctx, meta.ClientIP, meta.RequestID, result.MissingFields)
		err := fmt.Errorf("%w: %s", domain.ErrMissingFields, strings.Join(result.MissingFields, ","))
		return uc.finish(domain.OutcomeMissingFields, err)
	}

	payload := BuildPayload(result.Submission, uc.cfg.AccessKey, uc.cfg.Shape)
	out := uc.relay.Send(ctx, payload)

	switch out.Status {
	case email.StatusDelivered:
		logger.Log.InfoContext(ctx, "Contact submission delivered",
			"provider", uc.relay.Name(),
			"request_id", meta.RequestID,
		)
		return uc.finish(domain.OutcomeSent, nil)

	case email.StatusRejected:
		logger.Log.WarnContext(ctx, "Relay provider rejected contact submission",
			"provider", uc.relay.Name(),
			"request_id", meta.RequestID,
			"message", out.Message,
			"error", out.Err,
		)
		uc.audit.LogRelayFailure(ctx, security.EventRelayRejected, uc.relay.Name(), meta.RequestID, out.Message)
		return uc.finish(domain.OutcomeRejected, &domain.RelayError{
			Outcome: domain.OutcomeRejected,
			Message: out.Message,
			Err:     out.Err,
		})

	default:
		logger.Log.ErrorContext(ctx, "Relay provider unreachable",
			"provider", uc.relay.Name(),
			"request_id", meta.RequestID,
			"error", out.Err,
		)
		uc.audit.LogRelayFailure(ctx, security.EventRelayUnavailable, uc.relay.Name(), meta.RequestID, errString(out.Err))
		return uc.finish(domain.OutcomeTransportError, &domain.RelayError{
			Outcome: domain.OutcomeTransportError,
			Message: out.Message,
			Err:     out.Err,
		})
	}
}

func (uc *contactUsecase) finish(outcome domain.Outcome, err error) (domain.Outcome, error) {
	uc.metrics.ObserveSubmission(outcome.String())
	return outcome, err
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
