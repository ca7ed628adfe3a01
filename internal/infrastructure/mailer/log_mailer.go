package mailer

import (
	"context"
	"log/slog"

	"github.com/moroapp/moro/internal/domain/port"
)

// Compile-time interface check.
var _ port.Mailer = (*LogMailer)(nil)

// LogMailer logs outgoing email instead of delivering it. Used in
// development and test environments where no mailer API key is configured.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the message and reports success.
func (m *LogMailer) Send(ctx context.Context, msg port.Email) error {
	m.logger.InfoContext(ctx, "email suppressed (log mailer)",
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}
