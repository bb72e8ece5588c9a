package usecase

import (
	"fmt"

	"beauty-solutions-backend/config"
	"beauty-solutions-backend/internal/domain"
	"beauty-solutions-backend/pkg/email"
)

// PayloadShape captures the per-deployment differences of the relay payload
type PayloadShape struct {
	SiteName    string
	FromName    bool   // adds from_name = name
	ReplyTo     bool   // adds replyto = email
	To          string // adds to when set
	InterestKey string // "interest" or "services"
}

// DefaultPayloadShape matches the server route of the website
func DefaultPayloadShape(siteName string) PayloadShape {
	return PayloadShape{
		SiteName:    siteName,
		FromName:    true,
		ReplyTo:     true,
		InterestKey: "interest",
	}
}

// BuildPayload is a pure function of the submission, the access key and the shape
func BuildPayload(sub *domain.Submission, accessKey string, shape PayloadShape) email.Payload {
	interestKey := shape.InterestKey
	if interestKey == "" {
		interestKey = "interest"
	}

	p := email.Payload{
		"subject":   fmt.Sprintf("New Contact from %s - %s", sub.Name, shape.SiteName),
		"name":      sub.Name,
		"email":     sub.Email,
		"company":   sub.Company,
		interestKey: sub.Interest,
		"message":   sub.Message,
	}
	if accessKey != "" {
		p["access_key"] = accessKey
	}
	if shape.FromName {
		p["from_name"] = sub.Name
	}
	if shape.ReplyTo {
		p["replyto"] = sub.Email
	}
	if shape.To != "" {
		p["to"] = shape.To
	}
	if sub.Country != "" {
		p["country"] = sub.Country
	}
	if sub.Phone != "" {
		p["phone"] = sub.Phone
	}
	return p
}

// ContactConfigFrom reads the access key and payload shape from the service config.
// Only the Web3Forms relay receives the access key.
func ContactConfigFrom(cfg *config.Config) ContactConfig {
	shape := PayloadShape{
		SiteName:    cfg.SiteName,
		FromName:    cfg.RelayFromName,
		ReplyTo:     cfg.RelayReplyTo,
		To:          cfg.RelayTo,
		InterestKey: cfg.RelayInterestField,
	}

	var accessKey string
	if cfg.RelayProvider == config.ProviderWeb3Forms {
		accessKey = cfg.Web3FormsAccessKey
	}
	return ContactConfig{AccessKey: accessKey, Shape: shape}
}
