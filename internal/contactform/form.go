package contactform

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"beauty-solutions-backend/internal/domain"
	"beauty-solutions-backend/internal/usecase"
	"beauty-solutions-backend/pkg/logger"
)

// Opener hands a mailto URI to the user's mail agent
type Opener interface {
	Open(uri string) error
}

// OpenerFunc adapts a function to Opener
type OpenerFunc func(uri string) error

func (f OpenerFunc) Open(uri string) error { return f(uri) }

// Config configures a Form
type Config struct {
	Mode         Mode
	CompanyEmail string
	// Contact is required in ModeRelay
	Contact domain.ContactUsecase
	// Opener is optional in ModeMailto; without it the URI is only returned
	Opener Opener
}

// Form holds the client-side state of one contact form.
// It can be resubmitted from any state.
type Form struct {
	cfg       Config
	validator *usecase.SubmissionValidator

	mu    sync.Mutex
	state State
}

// New creates a form in the idle state
func New(cfg Config) (*Form, error) {
	if cfg.CompanyEmail == "" {
		return nil, errors.New("contactform: company email is required")
	}

	switch cfg.Mode {
	case ModeRelay:
		if cfg.Contact == nil {
			return nil, errors.New("contactform: relay mode needs a contact usecase")
		}
	case ModeMailto:
	default:
		return nil, fmt.Errorf("contactform: unknown mode %q", cfg.Mode)
	}

	return &Form{
		cfg:       cfg,
		validator: usecase.NewSubmissionValidator(),
		state:     StateIdle,
	}, nil
}

// State returns the current UI state
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Submit runs one submission. Missing required fields leave the state
// unchanged and return domain.ErrMissingFields.
func (f *Form) Submit(ctx context.Context, req *domain.SubmissionRequest) (Outcome, error) {
	result := f.validator.Validate(req)
	if result.Kind == domain.ValidationInvalid {
		return Outcome{State: f.State(), StatusText: domain.MissingFieldsMessage}, domain.ErrMissingFields
	}

	f.setState(StateSending)

	if result.Kind == domain.ValidationSpam {
		return f.finish(Outcome{State: StateSent, StatusText: sentText}), nil
	}

	if f.cfg.Mode == ModeMailto {
		return f.handOff(result.Submission)
	}

	outcome, err := f.cfg.Contact.SubmitContact(ctx, req)
	if outcome.Succeeded() {
		return f.finish(Outcome{State: StateSent, StatusText: sentText}), nil
	}
	return f.finish(Outcome{State: StateError, StatusText: f.fallbackText()}), err
}

func (f *Form) handOff(sub *domain.Submission) (Outcome, error) {
	uri := BuildMailtoURI(f.cfg.CompanyEmail, sub)
	if f.cfg.Opener != nil {
		if err := f.cfg.Opener.Open(uri); err != nil {
			logger.Log.Warn("Failed to open mail agent", "error", err)
			return f.finish(Outcome{State: StateError, StatusText: f.fallbackText(), MailtoURI: uri}), err
		}
	}
	return f.finish(Outcome{State: StateSent, StatusText: handedOffText, MailtoURI: uri}), nil
}

func (f *Form) fallbackText() string {
	return fmt.Sprintf("Something went wrong. Please email us directly at %s.", f.cfg.CompanyEmail)
}

func (f *Form) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

func (f *Form) finish(out Outcome) Outcome {
	f.setState(out.State)
	return out
}

const (
	sentText      = "Thank you! Your message has been sent."
	handedOffText = "Your email app has been opened with your message. Send it from there to reach us."
)
