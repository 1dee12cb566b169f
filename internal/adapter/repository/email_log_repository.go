package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edumeet/notifier/internal/domain/entities"
)

// EmailLogRepository handles email log data operations
type EmailLogRepository struct {
	db *gorm.DB
}

// NewEmailLogRepository creates a new email log repository
func NewEmailLogRepository(db *gorm.DB) *EmailLogRepository {
	return &EmailLogRepository{db: db}
}

// Create creates a new email log record
func (r *EmailLogRepository) Create(ctx context.Context, log *entities.EmailLog) error {
	if log == nil {
		return errors.New("email log cannot be nil")
	}
	return r.db.WithContext(ctx).Create(log).Error
}

// FindByID retrieves an email log by ID
func (r *EmailLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.EmailLog, error) {
	var log entities.EmailLog
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&log).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrEmailLogNotFound
		}
		return nil, err
	}
	return &log, nil
}

// MarkSent records a successful delivery
func (r *EmailLogRepository) MarkSent(ctx context.Context, id uuid.UUID, providerID string, attempts int) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entities.EmailLog{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      entities.EmailStatusSent,
			"provider_id": providerID,
			"attempts":    attempts,
			"sent_at":     now,
			"updated_at":  now,
		}).Error
}

// MarkFailed records a failed delivery
func (r *EmailLogRepository) MarkFailed(ctx context.Context, id uuid.UUID, attempts int, sendErr string) error {
	return r.db.WithContext(ctx).
		Model(&entities.EmailLog{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     entities.EmailStatusFailed,
			"attempts":   attempts,
			"error":      sendErr,
			"updated_at": time.Now(),
		}).Error
}

// ListByRecipient returns email logs for a recipient, newest first
func (r *EmailLogRepository) ListByRecipient(ctx context.Context, recipient string, limit, offset int) ([]*entities.EmailLog, error) {
	if limit < 1 {
		limit = 20
	}
	var logs []*entities.EmailLog
	if err := r.db.WithContext(ctx).
		Where("recipient = ?", recipient).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
