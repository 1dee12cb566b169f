package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EmailKind identifies a transactional email template family.
type EmailKind string

// Email kinds
const (
	EmailKindPasswordReset   EmailKind = "password_reset"
	EmailKindActivation      EmailKind = "activation"
	EmailKindConfirmation    EmailKind = "confirmation"
	EmailKindPasswordChanged EmailKind = "password_changed_confirmation"
)

// IsValid reports whether the kind names a known template family.
func (k EmailKind) IsValid() bool {
	switch k {
	case EmailKindPasswordReset, EmailKindActivation, EmailKindConfirmation, EmailKindPasswordChanged:
		return true
	}
	return false
}

// EmailStatus is the delivery state of an email log record.
type EmailStatus string

// Email statuses
const (
	EmailStatusQueued EmailStatus = "queued"
	EmailStatusSent   EmailStatus = "sent"
	EmailStatusFailed EmailStatus = "failed"
)

// EmailLog records a rendered transactional email and its delivery outcome.
type EmailLog struct {
	ID         uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Kind       EmailKind   `json:"kind" gorm:"type:varchar(50);not null;index"`
	Recipient  string      `json:"recipient" gorm:"type:varchar(255);not null;index"`
	Subject    string      `json:"subject" gorm:"type:varchar(255)"`
	Status     EmailStatus `json:"status" gorm:"type:varchar(20);default:'queued'"`
	ProviderID string      `json:"provider_id,omitempty" gorm:"type:varchar(255)"`
	// Context snapshots the render inputs so a delivery can be audited or
	// re-rendered later.
	Context datatypes.JSON `json:"context,omitempty" gorm:"type:jsonb"`
	Attempts   int         `json:"attempts"`
	Error      string      `json:"error,omitempty" gorm:"type:text"`
	SentAt     *time.Time  `json:"sent_at,omitempty"`
	CreatedAt  time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (EmailLog) TableName() string {
	return "email_logs"
}

// NewEmailLog creates a queued email log record
func NewEmailLog(kind EmailKind, recipient, subject string) *EmailLog {
	return &EmailLog{
		ID:        uuid.New(),
		Kind:      kind,
		Recipient: recipient,
		Subject:   subject,
		Status:    EmailStatusQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}
