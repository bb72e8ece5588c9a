package contactform

import (
	"net/url"
	"strings"

	"beauty-solutions-backend/internal/domain"
)

// BuildMailtoURI encodes a validated submission as a mailto link addressed
// to the company. Placeholders match what the relay sends.
func BuildMailtoURI(companyEmail string, sub *domain.Submission) string {
	subject := "Project Inquiry from " + sub.Name

	lines := []string{
		"Name: " + sub.Name,
		"Company: " + sub.Company,
		"Email: " + sub.Email,
	}
	if sub.Country != "" {
		lines = append(lines, "Country: "+sub.Country)
	}
	lines = append(lines,
		"Phone: "+sub.Phone,
		"Interest: "+sub.Interest,
		"",
		"Message:",
		sub.Message,
	)

	return "mailto:" + companyEmail +
		"?subject=" + encodeComponent(subject) +
		"&body=" + encodeComponent(strings.Join(lines, "\n"))
}

// encodeComponent percent-encodes like encodeURIComponent; mail agents
// do not decode '+' as a space.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
