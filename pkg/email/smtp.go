package email

import (
	"context"
	"fmt"
	"time"

	mail "github.com/go-mail/mail"
)

// SMTPRelay delivers the rendered notification over SMTP
type SMTPRelay struct {
	dialer   *mail.Dialer
	from     string
	to       string
	siteName string
}

// NewSMTPRelay creates an SMTP relay. STARTTLS is negotiated when offered.
func NewSMTPRelay(host string, port int, username, password, from, to, siteName string, timeout time.Duration) *SMTPRelay {
	d := mail.NewDialer(host, port, username, password)
	d.Timeout = timeout
	return &SMTPRelay{
		dialer:   d,
		from:     from,
		to:       to,
		siteName: siteName,
	}
}

func (r *SMTPRelay) Name() string {
	return "smtp"
}

// Send dials once. Any SMTP failure is reported as a transport error.
func (r *SMTPRelay) Send(ctx context.Context, payload Payload) Outcome {
	if err := ctx.Err(); err != nil {
		return transportError(err)
	}

	n, err := RenderNotification(payload, r.siteName)
	if err != nil {
		return transportError(err)
	}

	to := r.to
	if override := payload["to"]; override != "" {
		to = override
	}

	m := mail.NewMessage()
	m.SetHeader("From", r.from)
	m.SetHeader("To", to)
	m.SetHeader("Reply-To", n.ReplyTo)
	m.SetHeader("Subject", n.Subject)
	m.SetBody("text/plain", n.Text)
	m.AddAlternative("text/html", n.HTML)

	if err := r.dialer.DialAndSend(m); err != nil {
		return transportError(fmt.Errorf("smtp send: %w", err))
	}
	return delivered()
}
