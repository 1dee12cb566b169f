package mail

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edumeet/notifier/internal/domain/entities"
	usecaseErrors "github.com/edumeet/notifier/internal/usecase/errors"
	"github.com/edumeet/notifier/internal/usecase/render"
	"github.com/edumeet/notifier/templates"
)

type fakeEmailLogRepo struct {
	mu   sync.Mutex
	logs map[uuid.UUID]*entities.EmailLog
}

func newFakeEmailLogRepo() *fakeEmailLogRepo {
	return &fakeEmailLogRepo{logs: make(map[uuid.UUID]*entities.EmailLog)}
}

func (f *fakeEmailLogRepo) Create(_ context.Context, log *entities.EmailLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs[log.ID] = log
	return nil
}

func (f *fakeEmailLogRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.EmailLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	log, ok := f.logs[id]
	if !ok {
		return nil, entities.ErrEmailLogNotFound
	}
	return log, nil
}

func (f *fakeEmailLogRepo) MarkSent(_ context.Context, id uuid.UUID, providerID string, attempts int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	log, ok := f.logs[id]
	if !ok {
		return entities.ErrEmailLogNotFound
	}
	log.Status = entities.EmailStatusSent
	log.ProviderID = providerID
	log.Attempts = attempts
	return nil
}

func (f *fakeEmailLogRepo) MarkFailed(_ context.Context, id uuid.UUID, attempts int, sendErr string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	log, ok := f.logs[id]
	if !ok {
		return entities.ErrEmailLogNotFound
	}
	log.Status = entities.EmailStatusFailed
	log.Attempts = attempts
	log.Error = sendErr
	return nil
}

func (f *fakeEmailLogRepo) ListByRecipient(_ context.Context, recipient string, _, _ int) ([]*entities.EmailLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.EmailLog
	for _, log := range f.logs {
		if log.Recipient == recipient {
			out = append(out, log)
		}
	}
	return out, nil
}

type fakeSender struct {
	mu       sync.Mutex
	failures int
	calls    int
	last     Message
}

func (f *fakeSender) Send(_ context.Context, msg Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = msg
	if f.calls <= f.failures {
		return "", errors.New("connection refused")
	}
	return "provider-msg-001", nil
}

func newTestMailService(t *testing.T, sender Sender, maxAttempts int) (*Service, *fakeEmailLogRepo) {
	t.Helper()
	repo := newFakeEmailLogRepo()
	svc := NewService(
		repo,
		render.NewEngine(templates.FS),
		sender,
		zap.NewNop(),
		"EduMeet <no-reply@edumeet.example>",
		"EduMeet",
		"https",
		"edumeet.example",
		maxAttempts,
	)
	return svc, repo
}

func resetInput() SendInput {
	return SendInput{
		Kind:      entities.EmailKindPasswordReset,
		Recipient: "alice@example.com",
		Username:  "alice",
		URL:       "reset/confirm/NDI/c6f8-a31b22",
	}
}

func TestSendPasswordReset(t *testing.T) {
	sender := &fakeSender{}
	svc, repo := newTestMailService(t, sender, 3)

	log, err := svc.Send(context.Background(), resetInput())
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if log.Status != entities.EmailStatusSent {
		t.Fatalf("expected status sent, got %s", log.Status)
	}
	if log.ProviderID != "provider-msg-001" {
		t.Fatalf("provider ID not recorded: %q", log.ProviderID)
	}
	if log.Attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", log.Attempts)
	}

	if sender.last.Subject != "Password reset on EduMeet" {
		t.Fatalf("unexpected subject: %q", sender.last.Subject)
	}
	if !strings.Contains(sender.last.HTML, "https://edumeet.example/reset/confirm/NDI/c6f8-a31b22") {
		t.Fatal("HTML body missing reset link")
	}
	if !strings.Contains(sender.last.Text, "https://edumeet.example/reset/confirm/NDI/c6f8-a31b22") {
		t.Fatal("text body missing reset link")
	}

	stored, err := repo.FindByID(context.Background(), log.ID)
	if err != nil {
		t.Fatalf("log record not persisted: %v", err)
	}
	if stored.Status != entities.EmailStatusSent {
		t.Fatalf("persisted status %s, want sent", stored.Status)
	}
}

func TestSendRetriesTransientFailure(t *testing.T) {
	sender := &fakeSender{failures: 1}
	svc, _ := newTestMailService(t, sender, 3)

	log, err := svc.Send(context.Background(), resetInput())
	if err != nil {
		t.Fatalf("Send failed after retry: %v", err)
	}
	if log.Attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", log.Attempts)
	}
	if log.Status != entities.EmailStatusSent {
		t.Fatalf("expected status sent, got %s", log.Status)
	}
}

func TestSendExhaustsRetries(t *testing.T) {
	sender := &fakeSender{failures: 100}
	svc, repo := newTestMailService(t, sender, 2)

	log, err := svc.Send(context.Background(), resetInput())
	if !errors.Is(err, usecaseErrors.ErrDeliveryFailed) {
		t.Fatalf("expected ErrDeliveryFailed, got %v", err)
	}
	if log == nil {
		t.Fatal("expected a log record for the failed delivery")
	}
	if log.Status != entities.EmailStatusFailed {
		t.Fatalf("expected status failed, got %s", log.Status)
	}
	if log.Attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", log.Attempts)
	}

	stored, err := repo.FindByID(context.Background(), log.ID)
	if err != nil {
		t.Fatalf("log record not persisted: %v", err)
	}
	if stored.Error == "" {
		t.Fatal("provider error not recorded")
	}
}

func TestSendUnknownKind(t *testing.T) {
	svc, _ := newTestMailService(t, &fakeSender{}, 3)

	input := resetInput()
	input.Kind = entities.EmailKind("newsletter")

	if _, err := svc.Send(context.Background(), input); !errors.Is(err, usecaseErrors.ErrUnknownEmailKind) {
		t.Fatalf("expected ErrUnknownEmailKind, got %v", err)
	}
}

func TestSendMissingURL(t *testing.T) {
	svc, _ := newTestMailService(t, &fakeSender{}, 3)

	input := resetInput()
	input.URL = ""

	_, err := svc.Send(context.Background(), input)
	var missing *render.MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
	if len(missing.Fields) != 1 || missing.Fields[0] != "url" {
		t.Fatalf("unexpected missing fields: %v", missing.Fields)
	}
}

func TestRenderConfirmationNeedsNoURL(t *testing.T) {
	svc, _ := newTestMailService(t, &fakeSender{}, 3)

	msg, err := svc.Render(SendInput{
		Kind:      entities.EmailKindConfirmation,
		Recipient: "bob@example.com",
		Username:  "bob",
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(msg.Subject, "successfully created and activated") {
		t.Fatalf("unexpected subject: %q", msg.Subject)
	}
	if !strings.Contains(msg.HTML, "bob") {
		t.Fatal("HTML body missing username")
	}
}

func TestRenderPreviewDoesNotSend(t *testing.T) {
	sender := &fakeSender{}
	svc, _ := newTestMailService(t, sender, 3)

	if _, err := svc.Render(resetInput()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if sender.calls != 0 {
		t.Fatalf("Render must not deliver; sender called %d times", sender.calls)
	}
}
