package usecase

import (
	"strings"

	"beauty-solutions-backend/internal/domain"
	"beauty-solutions-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// SubmissionValidator checks the honeypot and required fields of a request
type SubmissionValidator struct {
	validate *validator.Validate
}

// NewSubmissionValidator creates a validator with the contact rules registered
func NewSubmissionValidator() *SubmissionValidator {
	return &SubmissionValidator{validate: validation.New()}
}

// Validate has no side effects. The honeypot is checked first so that bots
// get the same answer whatever else they filled in.
func (v *SubmissionValidator) Validate(req *domain.SubmissionRequest) domain.ValidationResult {
	if req == nil {
		return domain.ValidationResult{
			Kind:          domain.ValidationInvalid,
			MissingFields: []string{"name", "email", "message"},
		}
	}

	if strings.TrimSpace(req.Website) != "" {
		return domain.ValidationResult{Kind: domain.ValidationSpam}
	}

	if err := v.validate.Struct(req); err != nil {
		return domain.ValidationResult{
			Kind:          domain.ValidationInvalid,
			MissingFields: validation.FailedFields(err),
		}
	}

	return domain.ValidationResult{
		Kind:       domain.ValidationValid,
		Submission: normalize(req),
	}
}

// normalize applies the placeholders for optional fields.
// Name, email and message are copied verbatim.
func normalize(req *domain.SubmissionRequest) *domain.Submission {
	company := req.Company
	if strings.TrimSpace(company) == "" {
		company = domain.CompanyPlaceholder
	}

	return &domain.Submission{
		Name:     req.Name,
		Company:  company,
		Email:    req.Email,
		Country:  strings.TrimSpace(req.Country),
		Phone:    strings.TrimSpace(req.Phone),
		Interest: interestOf(req),
		Message:  req.Message,
	}
}

func interestOf(req *domain.SubmissionRequest) string {
	if strings.TrimSpace(req.Interest) != "" {
		return req.Interest
	}
	if req.Services == nil {
		return domain.InterestPlaceholder
	}

	selected := make([]string, 0, len(req.Services))
	for _, s := range req.Services {
		if s = strings.TrimSpace(s); s != "" {
			selected = append(selected, s)
		}
	}
	if len(selected) == 0 {
		return domain.ServicesPlaceholder
	}
	return strings.Join(selected, ", ")
}
