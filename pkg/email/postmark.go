package email

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mrz1836/postmark"
)

// PostmarkRelay sends the rendered notification through Postmark's transactional API
type PostmarkRelay struct {
	client   *postmark.Client
	from     string
	to       string
	siteName string
}

// NewPostmarkRelay creates a Postmark-backed relay
func NewPostmarkRelay(serverToken, accountToken, from, to, siteName string, timeout time.Duration) (*PostmarkRelay, error) {
	if serverToken == "" {
		return nil, errors.New("postmark: server token is required")
	}
	if from == "" || to == "" {
		return nil, errors.New("postmark: sender and recipient are required")
	}

	client := postmark.NewClient(serverToken, accountToken)
	client.HTTPClient = &http.Client{Timeout: timeout}

	return &PostmarkRelay{
		client:   client,
		from:     from,
		to:       to,
		siteName: siteName,
	}, nil
}

func (r *PostmarkRelay) Name() string {
	return "postmark"
}

// Send makes one API call. API errors with a code are provider rejections.
func (r *PostmarkRelay) Send(ctx context.Context, payload Payload) Outcome {
	n, err := RenderNotification(payload, r.siteName)
	if err != nil {
		return transportError(err)
	}

	to := r.to
	if override := payload["to"]; override != "" {
		to = override
	}

	resp, err := r.client.SendEmail(ctx, postmark.Email{
		From:     r.from,
		To:       to,
		ReplyTo:  n.ReplyTo,
		Subject:  n.Subject,
		HTMLBody: n.HTML,
		TextBody: n.Text,
		Tag:      "contact-form",
	})
	if err != nil {
		return transportError(fmt.Errorf("postmark request failed: %w", err))
	}
	if resp.ErrorCode > 0 {
		return rejected(resp.Message, fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message))
	}
	return delivered()
}
