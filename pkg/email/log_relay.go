package email

import (
	"context"
	"log/slog"
)

// LogRelay writes submissions to the application log instead of sending them.
// Meant for local development.
type LogRelay struct {
	log *slog.Logger
}

func NewLogRelay(log *slog.Logger) *LogRelay {
	return &LogRelay{log: log.With("component", "log_relay")}
}

func (r *LogRelay) Name() string {
	return "log"
}

func (r *LogRelay) Send(ctx context.Context, payload Payload) Outcome {
	r.log.InfoContext(ctx, "contact submission captured",
		"subject", payload["subject"],
		"name", payload["name"],
		"email", payload["email"],
		"message_length", len(payload["message"]),
	)
	return delivered()
}
