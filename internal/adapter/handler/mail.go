package handler

import (
	stdErrors "errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	appErrors "github.com/edumeet/notifier/errors"
	mailDTO "github.com/edumeet/notifier/internal/adapter/dto/mail"
	"github.com/edumeet/notifier/internal/adapter/presenter"
	"github.com/edumeet/notifier/internal/domain/entities"
	usecaseErrors "github.com/edumeet/notifier/internal/usecase/errors"
	mailUsecase "github.com/edumeet/notifier/internal/usecase/mail"
	"github.com/edumeet/notifier/internal/usecase/render"
)

// Mail handles transactional email HTTP requests
type Mail struct {
	mailService *mailUsecase.Service
	dispatcher  *mailUsecase.Dispatcher
	logger      *zap.Logger
}

// NewMailHandler creates a new mail handler
func NewMailHandler(mailService *mailUsecase.Service, dispatcher *mailUsecase.Dispatcher, logger *zap.Logger) *Mail {
	return &Mail{
		mailService: mailService,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// SendEmail handles POST /emails/:kind
func (h *Mail) SendEmail(c echo.Context) error {
	kind := entities.EmailKind(c.Param("kind"))
	if !kind.IsValid() {
		return HandleError(h.logger, c, appErrors.ErrUnknownEmailKind(string(kind)))
	}

	var req mailDTO.SendEmailRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, appErrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, appErrors.ErrInvalidArgument(err.Error()))
	}

	input := mailUsecase.SendInput{
		Kind:      kind,
		Recipient: req.Recipient,
		Username:  req.Username,
		URL:       req.URL,
		Extra:     req.Extra,
	}

	// Background delivery on request; the caller polls GET /emails for the
	// delivery record.
	if h.dispatcher != nil && c.QueryParam("async") == "true" {
		jobID, err := h.dispatcher.Dispatch(input)
		if err != nil {
			return HandleError(h.logger, c, appErrors.ErrEmailDeliveryFailed(err))
		}
		return c.JSON(http.StatusAccepted, map[string]interface{}{
			"job_id": jobID.String(),
			"status": "queued",
		})
	}

	log, err := h.mailService.Send(c.Request().Context(), input)
	if err != nil {
		// A failed delivery still produced a log record; include it so the
		// caller can inspect attempts and the provider error.
		if log != nil && stdErrors.Is(err, usecaseErrors.ErrDeliveryFailed) {
			appErr := appErrors.ErrEmailDeliveryFailed(err).
				WithDetail("email_id", log.ID.String())
			return HandleError(h.logger, c, appErr)
		}
		return HandleError(h.logger, c, h.mapMailError(err, kind))
	}

	return c.JSON(http.StatusAccepted, presenter.ToEmailLogResponse(log))
}

// PreviewEmail handles POST /emails/:kind/preview and renders without sending
func (h *Mail) PreviewEmail(c echo.Context) error {
	kind := entities.EmailKind(c.Param("kind"))
	if !kind.IsValid() {
		return HandleError(h.logger, c, appErrors.ErrUnknownEmailKind(string(kind)))
	}

	var req mailDTO.SendEmailRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, appErrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, appErrors.ErrInvalidArgument(err.Error()))
	}

	msg, err := h.mailService.Render(mailUsecase.SendInput{
		Kind:      kind,
		Recipient: req.Recipient,
		Username:  req.Username,
		URL:       req.URL,
		Extra:     req.Extra,
	})
	if err != nil {
		return HandleError(h.logger, c, h.mapMailError(err, kind))
	}

	return HandleSuccess(h.logger, c, &mailDTO.PreviewResponse{
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	})
}

// History handles GET /emails and lists delivery records for a recipient
func (h *Mail) History(c echo.Context) error {
	var req mailDTO.HistoryRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, appErrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, appErrors.ErrInvalidArgument(err.Error()))
	}

	logs, err := h.mailService.History(c.Request().Context(), req.Recipient, req.Limit, req.Offset)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToEmailLogListResponse(logs))
}

// mapMailError translates usecase errors into transport errors
func (h *Mail) mapMailError(err error, kind entities.EmailKind) error {
	var missing *render.MissingFieldError
	switch {
	case stdErrors.Is(err, usecaseErrors.ErrUnknownEmailKind):
		return appErrors.ErrUnknownEmailKind(string(kind))
	case stdErrors.Is(err, entities.ErrInvalidRecipient):
		return appErrors.ErrInvalidArgument("recipient is required")
	case stdErrors.Is(err, usecaseErrors.ErrDeliveryFailed):
		return appErrors.ErrEmailDeliveryFailed(err)
	case stdErrors.As(err, &missing):
		return appErrors.ErrMissingContextField(strings.Join(missing.Fields, ", "))
	}
	return err
}
