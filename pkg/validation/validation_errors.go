package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps request field names to user-friendly labels
var FieldLabels = map[string]string{
	"name":     "Name",
	"email":    "Email",
	"message":  "Message",
	"company":  "Company",
	"country":  "Country",
	"phone":    "Phone",
	"interest": "Interest",
	"services": "Services",
}

// FailedFields returns the field names that failed validation, in struct order.
// Non-validation errors yield nil.
func FailedFields(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	fields := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, e.Field())
	}
	return fields
}

// Labels converts field names to their user-facing labels
func Labels(fields []string) []string {
	labels := make([]string, 0, len(fields))
	for _, f := range fields {
		labels = append(labels, getFieldLabel(f))
	}
	return labels
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	if fieldName == "" {
		return "Field"
	}
	return strings.ToUpper(fieldName[:1]) + fieldName[1:]
}
