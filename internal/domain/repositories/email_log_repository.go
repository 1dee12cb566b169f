package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/edumeet/notifier/internal/domain/entities"
)

// EmailLogRepository defines the interface for email log data access
type EmailLogRepository interface {
	// Create creates a new email log record
	Create(ctx context.Context, log *entities.EmailLog) error

	// FindByID finds an email log by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.EmailLog, error)

	// MarkSent records a successful delivery
	MarkSent(ctx context.Context, id uuid.UUID, providerID string, attempts int) error

	// MarkFailed records a failed delivery
	MarkFailed(ctx context.Context, id uuid.UUID, attempts int, sendErr string) error

	// ListByRecipient returns email logs for a recipient, newest first
	ListByRecipient(ctx context.Context, recipient string, limit, offset int) ([]*entities.EmailLog, error)
}
