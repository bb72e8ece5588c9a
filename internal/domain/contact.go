package domain

import (
	"context"
	"errors"
)

// Placeholders substituted for optional fields before relay
const (
	CompanyPlaceholder  = "Not provided"
	InterestPlaceholder = "Not specified"
	ServicesPlaceholder = "—"
)

// User-facing messages
const (
	MissingFieldsMessage = "Name, email and message are required"
	SentMessage          = "Email sent successfully"
	InternalErrorMessage = "Internal server error"
)

// ErrMissingFields is returned when name, email or message is blank
var ErrMissingFields = errors.New(MissingFieldsMessage)

// SubmissionRequest represents a contact form submission.
// Website is the honeypot field and must stay empty for humans.
type SubmissionRequest struct {
	Name     string   `json:"name" form:"name" validate:"notblank"`
	Company  string   `json:"company" form:"company"`
	Email    string   `json:"email" form:"email" validate:"notblank"`
	Country  string   `json:"country" form:"country"`
	Phone    string   `json:"phone" form:"phone"`
	Interest string   `json:"interest" form:"interest"`
	Services []string `json:"services" form:"services"`
	Message  string   `json:"message" form:"message" validate:"notblank"`
	Website  string   `json:"website" form:"website"`
}

// Submission is a validated request with optional fields defaulted
type Submission struct {
	Name     string
	Company  string
	Email    string
	Country  string
	Phone    string
	Interest string
	Message  string
}

// ValidationKind classifies the result of validating a request
type ValidationKind int

const (
	ValidationValid ValidationKind = iota
	ValidationInvalid
	ValidationSpam
)

func (k ValidationKind) String() string {
	switch k {
	case ValidationValid:
		return "valid"
	case ValidationInvalid:
		return "invalid"
	case ValidationSpam:
		return "spam"
	}
	return "unknown"
}

// ValidationResult is the outcome of ValidateSubmission.
// Submission is only set when Kind is ValidationValid.
type ValidationResult struct {
	Kind          ValidationKind
	MissingFields []string
	Submission    *Submission
}

// RelayError carries a failed relay attempt out of the usecase.
// Outcome is OutcomeRejected or OutcomeTransportError; Message is safe to show.
type RelayError struct {
	Outcome Outcome
	Message string
	Err     error
}

func (e *RelayError) Error() string {
	if e.Err != nil {
		return e.Outcome.String() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Outcome.String() + ": " + e.Message
}

func (e *RelayError) Unwrap() error {
	return e.Err
}

// Outcome is the controller-level result surfaced to callers
type Outcome int

const (
	OutcomeSent Outcome = iota
	OutcomeSpam
	OutcomeMissingFields
	OutcomeRejected
	OutcomeTransportError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSent:
		return "sent"
	case OutcomeSpam:
		return "spam"
	case OutcomeMissingFields:
		return "missing_fields"
	case OutcomeRejected:
		return "rejected"
	case OutcomeTransportError:
		return "transport_error"
	}
	return "unknown"
}

// Succeeded reports whether the submitter should see a success state
func (o Outcome) Succeeded() bool {
	return o == OutcomeSent || o == OutcomeSpam
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SubmitContact validates the request and relays it to the email provider.
	// Spam submissions return OutcomeSpam with a nil error.
	SubmitContact(ctx context.Context, req *SubmissionRequest) (Outcome, error)
}
