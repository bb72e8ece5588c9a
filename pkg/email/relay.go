package email

import (
	"context"
	"time"

	"beauty-solutions-backend/pkg/metrics"
)

// DefaultFailureMessage is reported when the provider gives no message of its own
const DefaultFailureMessage = "Failed to send email"

// Payload is the flat field mapping handed to a relay provider
type Payload map[string]string

// Status classifies a single relay attempt
type Status int

const (
	StatusDelivered Status = iota
	StatusRejected
	StatusTransportError
)

func (s Status) String() string {
	switch s {
	case StatusDelivered:
		return "delivered"
	case StatusRejected:
		return "rejected"
	case StatusTransportError:
		return "transport_error"
	}
	return "unknown"
}

// Outcome is the interpreted provider response.
// Message is the provider message for rejections and DefaultFailureMessage otherwise.
type Outcome struct {
	Status  Status
	Message string
	Err     error
}

func delivered() Outcome {
	return Outcome{Status: StatusDelivered}
}

func rejected(message string, err error) Outcome {
	if message == "" {
		message = DefaultFailureMessage
	}
	return Outcome{Status: StatusRejected, Message: message, Err: err}
}

func transportError(err error) Outcome {
	return Outcome{Status: StatusTransportError, Message: DefaultFailureMessage, Err: err}
}

// Relay delivers one contact submission to an email provider.
// Implementations make exactly one attempt and never retry.
type Relay interface {
	Send(ctx context.Context, payload Payload) Outcome
	Name() string
}

type instrumentedRelay struct {
	Relay
	metrics *metrics.Metrics
}

// WithMetrics records the duration and status of every Send
func WithMetrics(r Relay, m *metrics.Metrics) Relay {
	if m == nil {
		return r
	}
	return &instrumentedRelay{Relay: r, metrics: m}
}

func (r *instrumentedRelay) Send(ctx context.Context, payload Payload) Outcome {
	start := time.Now()
	out := r.Relay.Send(ctx, payload)
	r.metrics.ObserveRelay(r.Relay.Name(), out.Status.String(), time.Since(start))
	return out
}
