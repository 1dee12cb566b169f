package handler

import (
	stdErrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	appErrors "github.com/edumeet/notifier/errors"
	reportDTO "github.com/edumeet/notifier/internal/adapter/dto/report"
	"github.com/edumeet/notifier/internal/adapter/presenter"
	"github.com/edumeet/notifier/internal/domain/entities"
	"github.com/edumeet/notifier/internal/domain/repositories"
	usecaseErrors "github.com/edumeet/notifier/internal/usecase/errors"
	"github.com/edumeet/notifier/internal/usecase/render"
	reportUsecase "github.com/edumeet/notifier/internal/usecase/report"
)

// archiveURLExpiry bounds presigned links handed out for archived documents.
const archiveURLExpiry = 24 * time.Hour

// Report handles report-related HTTP requests
type Report struct {
	reportService *reportUsecase.Service
	logger        *zap.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *reportUsecase.Service, logger *zap.Logger) *Report {
	return &Report{
		reportService: reportService,
		logger:        logger,
	}
}

// CreateReport handles POST /reports
func (h *Report) CreateReport(c echo.Context) error {
	var req reportDTO.CreateReportRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, appErrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, appErrors.ErrInvalidArgument(err.Error()))
	}

	input := reportUsecase.CreateReportInput{
		Title:               req.Title,
		MeetingLink:         req.MeetingLink,
		StartedAt:           req.StartedAt,
		DurationSeconds:     req.DurationSeconds,
		TranscriptBySpeaker: toTranscriptEntries(req.TranscriptBySpeaker),
		EmotionsByPerson:    toEmotionEntries(req.EmotionsByPerson),
		SpeakerChart:        req.SpeakerChart,
		SpeakerChartMime:    req.SpeakerChartMime,
		EmotionChart:        req.EmotionChart,
		EmotionChartMime:    req.EmotionChartMime,
	}

	created, html, err := h.reportService.CreateReport(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, h.mapReportError(err, ""))
	}

	response := &reportDTO.CreateReportResponse{
		Report: presenter.ToReportResponse(created),
		HTML:   html,
	}
	return c.JSON(http.StatusCreated, response)
}

// GetReport handles GET /reports/:id
func (h *Report) GetReport(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, appErrors.ErrInvalidArgument("report id must be a UUID"))
	}

	found, err := h.reportService.GetReport(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, h.mapReportError(err, id.String()))
	}

	return HandleSuccess(h.logger, c, presenter.ToReportResponse(found))
}

// ListReports handles GET /reports
func (h *Report) ListReports(c echo.Context) error {
	var req reportDTO.ListReportsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, appErrors.ErrInvalidPayload())
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	filters := repositories.ReportFilters{
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	reports, total, err := h.reportService.ListReports(c.Request().Context(), filters)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToReportListResponse(reports, total, req.Page, req.PageSize))
}

// ReportHTML handles GET /reports/:id/html and returns the rendered document
func (h *Report) ReportHTML(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, appErrors.ErrInvalidArgument("report id must be a UUID"))
	}

	html, err := h.reportService.ReportHTML(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, h.mapReportError(err, id.String()))
	}

	return c.HTML(http.StatusOK, html)
}

// ArchiveURL handles GET /reports/:id/archive
func (h *Report) ArchiveURL(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, appErrors.ErrInvalidArgument("report id must be a UUID"))
	}

	url, err := h.reportService.ArchiveURL(c.Request().Context(), id, archiveURLExpiry)
	if err != nil {
		return HandleError(h.logger, c, h.mapReportError(err, id.String()))
	}

	return HandleSuccess(h.logger, c, &reportDTO.ArchiveURLResponse{
		URL:       url,
		ExpiresIn: archiveURLExpiry.String(),
	})
}

// mapReportError translates usecase errors into transport errors
func (h *Report) mapReportError(err error, reportID string) error {
	var missing *render.MissingFieldError
	switch {
	case stdErrors.Is(err, entities.ErrReportNotFound):
		return appErrors.ErrReportNotFound(reportID)
	case stdErrors.Is(err, entities.ErrReportNotRendered):
		return appErrors.ErrReportNotRendered(reportID)
	case stdErrors.Is(err, usecaseErrors.ErrEmptyTitle),
		stdErrors.Is(err, usecaseErrors.ErrInvalidDuration):
		return appErrors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrArchiveFailed):
		return appErrors.ErrReportArchiveFailed(reportID, err)
	case stdErrors.As(err, &missing):
		return appErrors.ErrMissingContextField(strings.Join(missing.Fields, ", "))
	}
	return err
}

func toTranscriptEntries(in map[string][]reportDTO.TranscriptEntryRequest) map[string][]entities.TranscriptEntry {
	if in == nil {
		return nil
	}
	out := make(map[string][]entities.TranscriptEntry, len(in))
	for speaker, entries := range in {
		converted := make([]entities.TranscriptEntry, len(entries))
		for i, e := range entries {
			converted[i] = entities.TranscriptEntry{
				Timestamp: e.Timestamp,
				Text:      e.Text,
			}
		}
		out[speaker] = converted
	}
	return out
}

func toEmotionEntries(in map[string][]reportDTO.EmotionEntryRequest) map[string][]entities.EmotionEntry {
	if in == nil {
		return nil
	}
	out := make(map[string][]entities.EmotionEntry, len(in))
	for person, entries := range in {
		converted := make([]entities.EmotionEntry, len(entries))
		for i, e := range entries {
			converted[i] = entities.EmotionEntry{
				Timestamp:  e.Timestamp,
				Emotion:    e.Emotion,
				Confidence: e.Confidence,
			}
		}
		out[person] = converted
	}
	return out
}
