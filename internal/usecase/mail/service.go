package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/edumeet/notifier/internal/domain/entities"
	"github.com/edumeet/notifier/internal/domain/repositories"
	usecaseErrors "github.com/edumeet/notifier/internal/usecase/errors"
	"github.com/edumeet/notifier/internal/usecase/render"
)

// Message is a fully rendered email ready for delivery.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers a rendered message and returns the provider's message ID.
type Sender interface {
	Send(ctx context.Context, msg Message) (providerID string, err error)
}

// templateSpec binds an email kind to its templates and required context.
type templateSpec struct {
	subject  string
	htmlPath string
	textPath string
	required []string
}

var templateSpecs = map[entities.EmailKind]templateSpec{
	entities.EmailKindPasswordReset: {
		subject:  "Password reset on {{ site_name }}",
		htmlPath: "emails/password_reset.html",
		textPath: "emails/password_reset.txt",
		required: []string{"site_name", "protocol", "domain", "url", "user"},
	},
	entities.EmailKindActivation: {
		subject:  "Account activation on {{ site_name }}",
		htmlPath: "emails/activation.html",
		textPath: "emails/activation.txt",
		required: []string{"site_name", "protocol", "domain", "url", "user"},
	},
	entities.EmailKindConfirmation: {
		subject:  "{{ site_name }} - Your account has been successfully created and activated!",
		htmlPath: "emails/confirmation.html",
		textPath: "emails/confirmation.txt",
		required: []string{"site_name", "user"},
	},
	entities.EmailKindPasswordChanged: {
		subject:  "{{ site_name }} - Your password has been successfully changed!",
		htmlPath: "emails/password_changed_confirmation.html",
		textPath: "emails/password_changed_confirmation.txt",
		required: []string{"site_name", "user"},
	},
}

// Service handles transactional email business logic
type Service struct {
	logs        repositories.EmailLogRepository
	engine      *render.Engine
	sender      Sender
	logger      *zap.Logger
	from        string
	siteName    string
	protocol    string
	domain      string
	maxAttempts int
}

// NewService creates a new mail service
func NewService(
	logs repositories.EmailLogRepository,
	engine *render.Engine,
	sender Sender,
	logger *zap.Logger,
	from, siteName, protocol, domain string,
	maxAttempts int,
) *Service {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Service{
		logs:        logs,
		engine:      engine,
		sender:      sender,
		logger:      logger,
		from:        from,
		siteName:    siteName,
		protocol:    protocol,
		domain:      domain,
		maxAttempts: maxAttempts,
	}
}

// SendInput represents input for rendering and sending a transactional email
type SendInput struct {
	Kind      entities.EmailKind
	Recipient string
	Username  string
	URL       string
	Extra     map[string]any
}

// Render builds the subject, HTML and text bodies for an email without
// sending it.
func (s *Service) Render(input SendInput) (Message, error) {
	spec, ok := templateSpecs[input.Kind]
	if !ok {
		return Message{}, usecaseErrors.ErrUnknownEmailKind
	}

	ctx := render.Context{
		"site_name": s.siteName,
		"protocol":  s.protocol,
		"domain":    s.domain,
		"user":      map[string]any{"username": input.Username},
	}
	if input.URL != "" {
		ctx["url"] = input.URL
	}
	for k, v := range input.Extra {
		ctx[k] = v
	}

	if err := ctx.Require(spec.required...); err != nil {
		return Message{}, err
	}

	subject, err := s.engine.RenderString(spec.subject, ctx)
	if err != nil {
		return Message{}, err
	}
	htmlBody, err := s.engine.RenderTemplate(spec.htmlPath, ctx)
	if err != nil {
		return Message{}, err
	}
	textBody, err := s.engine.RenderTemplate(spec.textPath, ctx)
	if err != nil {
		return Message{}, err
	}

	return Message{
		From:    s.from,
		To:      input.Recipient,
		Subject: subject,
		HTML:    htmlBody,
		Text:    textBody,
	}, nil
}

// Send renders the email, records it, and delivers it with retries. The log
// record reflects the final outcome.
func (s *Service) Send(ctx context.Context, input SendInput) (*entities.EmailLog, error) {
	if !input.Kind.IsValid() {
		return nil, usecaseErrors.ErrUnknownEmailKind
	}
	if input.Recipient == "" {
		return nil, entities.ErrInvalidRecipient
	}

	msg, err := s.Render(input)
	if err != nil {
		return nil, err
	}

	log := entities.NewEmailLog(input.Kind, input.Recipient, msg.Subject)
	if snapshot, merr := json.Marshal(map[string]any{
		"username": input.Username,
		"url":      input.URL,
		"extra":    input.Extra,
	}); merr == nil {
		log.Context = datatypes.JSON(snapshot)
	}
	if err := s.logs.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("failed to create email log: %w", err)
	}

	attempts := 0
	var providerID string
	operation := func() error {
		attempts++
		id, sendErr := s.sender.Send(ctx, msg)
		if sendErr != nil {
			if s.logger != nil {
				s.logger.Warn("email delivery attempt failed",
					zap.String("email_id", log.ID.String()),
					zap.String("kind", string(input.Kind)),
					zap.Int("attempt", attempts),
					zap.Error(sendErr))
			}
			return sendErr
		}
		providerID = id
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(s.maxAttempts-1)),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		if markErr := s.logs.MarkFailed(ctx, log.ID, attempts, err.Error()); markErr != nil && s.logger != nil {
			s.logger.Error("failed to record email failure", zap.Error(markErr))
		}
		log.Status = entities.EmailStatusFailed
		log.Attempts = attempts
		log.Error = err.Error()
		return log, fmt.Errorf("%w: %v", usecaseErrors.ErrDeliveryFailed, err)
	}

	if err := s.logs.MarkSent(ctx, log.ID, providerID, attempts); err != nil && s.logger != nil {
		s.logger.Error("failed to record email delivery", zap.Error(err))
	}
	now := time.Now()
	log.Status = entities.EmailStatusSent
	log.ProviderID = providerID
	log.Attempts = attempts
	log.SentAt = &now

	if s.logger != nil {
		s.logger.Info("email sent",
			zap.String("email_id", log.ID.String()),
			zap.String("kind", string(input.Kind)),
			zap.Int("attempts", attempts))
	}
	return log, nil
}

// History returns delivery records for a recipient, newest first.
func (s *Service) History(ctx context.Context, recipient string, limit, offset int) ([]*entities.EmailLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.logs.ListByRecipient(ctx, recipient, limit, offset)
}
