package mailer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edumeet/notifier/internal/usecase/mail"
)

// LogSender writes outbound email to the application log instead of
// delivering it. Used in development and tests.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a log-only sender
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the rendered message and returns a synthetic message ID
func (l *LogSender) Send(_ context.Context, msg mail.Message) (string, error) {
	id := fmt.Sprintf("log-%s", uuid.NewString())
	l.logger.Info("email delivery skipped (log provider)",
		zap.String("message_id", id),
		zap.String("from", msg.From),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("html_bytes", len(msg.HTML)),
		zap.Int("text_bytes", len(msg.Text)))
	return id, nil
}
