package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/edumeet/notifier/internal/domain/entities"
	mailUsecase "github.com/edumeet/notifier/internal/usecase/mail"
	"github.com/edumeet/notifier/internal/usecase/render"
	pkgvalidator "github.com/edumeet/notifier/pkg/validator"
	"github.com/edumeet/notifier/templates"
)

type memoryEmailLogRepo struct {
	logs map[uuid.UUID]*entities.EmailLog
}

func (m *memoryEmailLogRepo) Create(_ context.Context, log *entities.EmailLog) error {
	m.logs[log.ID] = log
	return nil
}

func (m *memoryEmailLogRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.EmailLog, error) {
	log, ok := m.logs[id]
	if !ok {
		return nil, entities.ErrEmailLogNotFound
	}
	return log, nil
}

func (m *memoryEmailLogRepo) MarkSent(_ context.Context, id uuid.UUID, providerID string, attempts int) error {
	if log, ok := m.logs[id]; ok {
		log.Status = entities.EmailStatusSent
		log.ProviderID = providerID
		log.Attempts = attempts
	}
	return nil
}

func (m *memoryEmailLogRepo) MarkFailed(_ context.Context, id uuid.UUID, attempts int, sendErr string) error {
	if log, ok := m.logs[id]; ok {
		log.Status = entities.EmailStatusFailed
		log.Attempts = attempts
		log.Error = sendErr
	}
	return nil
}

func (m *memoryEmailLogRepo) ListByRecipient(_ context.Context, recipient string, _, _ int) ([]*entities.EmailLog, error) {
	var out []*entities.EmailLog
	for _, log := range m.logs {
		if log.Recipient == recipient {
			out = append(out, log)
		}
	}
	return out, nil
}

type recordingSender struct {
	calls int
	last  mailUsecase.Message
}

func (r *recordingSender) Send(_ context.Context, msg mailUsecase.Message) (string, error) {
	r.calls++
	r.last = msg
	return "provider-test-id", nil
}

func newMailTestEnv(t *testing.T) (*echo.Echo, *Mail, *recordingSender) {
	t.Helper()

	e := echo.New()
	e.Validator = pkgvalidator.New()

	sender := &recordingSender{}
	svc := mailUsecase.NewService(
		&memoryEmailLogRepo{logs: make(map[uuid.UUID]*entities.EmailLog)},
		render.NewEngine(templates.FS),
		sender,
		zap.NewNop(),
		"EduMeet <no-reply@edumeet.example>",
		"EduMeet",
		"https",
		"edumeet.example",
		1,
	)
	return e, NewMailHandler(svc, nil, zap.NewNop()), sender
}

func TestSendEmailEndpoint(t *testing.T) {
	e, h, sender := newMailTestEnv(t)

	body := `{"recipient":"alice@example.com","username":"alice","url":"reset/confirm/NDI/c6f8"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/emails/password_reset", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/emails/:kind")
	c.SetParamNames("kind")
	c.SetParamValues("password_reset")

	if err := h.SendEmail(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	if sender.calls != 1 {
		t.Fatalf("expected 1 delivery, got %d", sender.calls)
	}
	if !strings.Contains(rec.Body.String(), `"status":"sent"`) {
		t.Fatalf("response missing sent status: %s", rec.Body.String())
	}
}

func TestSendEmailUnknownKind(t *testing.T) {
	e, h, sender := newMailTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/emails/newsletter", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/emails/:kind")
	c.SetParamNames("kind")
	c.SetParamValues("newsletter")

	if err := h.SendEmail(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if sender.calls != 0 {
		t.Fatal("unknown kind must not trigger delivery")
	}
}

func TestSendEmailValidationFailure(t *testing.T) {
	e, h, sender := newMailTestEnv(t)

	// recipient is not an email address
	body := `{"recipient":"not-an-address","username":"alice","url":"reset/x"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/emails/password_reset", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/emails/:kind")
	c.SetParamNames("kind")
	c.SetParamValues("password_reset")

	if err := h.SendEmail(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if sender.calls != 0 {
		t.Fatal("invalid request must not trigger delivery")
	}
}

func TestPreviewEmailEndpoint(t *testing.T) {
	e, h, sender := newMailTestEnv(t)

	body := `{"recipient":"alice@example.com","username":"alice","url":"reset/confirm/NDI/c6f8"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/emails/password_reset/preview", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/emails/:kind/preview")
	c.SetParamNames("kind")
	c.SetParamValues("password_reset")

	if err := h.PreviewEmail(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if sender.calls != 0 {
		t.Fatal("preview must not deliver")
	}
	if !strings.Contains(rec.Body.String(), "Password reset on EduMeet") {
		t.Fatalf("preview missing rendered subject: %s", rec.Body.String())
	}
}

func TestPreviewEmailMissingURL(t *testing.T) {
	e, h, _ := newMailTestEnv(t)

	body := `{"recipient":"alice@example.com","username":"alice"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/emails/password_reset/preview", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/emails/:kind/preview")
	c.SetParamNames("kind")
	c.SetParamValues("password_reset")

	if err := h.PreviewEmail(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "url") {
		t.Fatalf("response does not name the missing field: %s", rec.Body.String())
	}
}
