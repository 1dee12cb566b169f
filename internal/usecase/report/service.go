package report

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"html"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/edumeet/notifier/internal/domain/entities"
	"github.com/edumeet/notifier/internal/domain/repositories"
	usecaseErrors "github.com/edumeet/notifier/internal/usecase/errors"
	"github.com/edumeet/notifier/internal/usecase/render"
)

// reportTemplate is the document template for meeting reports.
const reportTemplate = "reports/meeting_report.html"

// Cache stores rendered documents. Failures are soft: callers log and
// re-render.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Archive stores rendered report documents durably.
type Archive interface {
	UploadHTML(ctx context.Context, objectName, content string) error
	PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// Service handles meeting report business logic
type Service struct {
	reports  repositories.ReportRepository
	engine   *render.Engine
	cache    Cache
	archive  Archive
	logger   *zap.Logger
	siteName string
	cacheTTL time.Duration
	strip    *bluemonday.Policy
}

// NewService creates a new report service
func NewService(
	reports repositories.ReportRepository,
	engine *render.Engine,
	cache Cache,
	archive Archive,
	logger *zap.Logger,
	siteName string,
	cacheTTL time.Duration,
) *Service {
	return &Service{
		reports:  reports,
		engine:   engine,
		cache:    cache,
		archive:  archive,
		logger:   logger,
		siteName: siteName,
		cacheTTL: cacheTTL,
		strip:    bluemonday.StrictPolicy(),
	}
}

// CreateReportInput represents input for creating a meeting report
type CreateReportInput struct {
	Title               string
	MeetingLink         string
	StartedAt           *time.Time
	DurationSeconds     int
	TranscriptBySpeaker map[string][]entities.TranscriptEntry
	EmotionsByPerson    map[string][]entities.EmotionEntry
	SpeakerChart        string
	SpeakerChartMime    string
	EmotionChart        string
	EmotionChartMime    string
}

// CreateReport validates the input, derives charts where the caller supplied
// none, persists the report, renders the document and archives it.
func (s *Service) CreateReport(ctx context.Context, input CreateReportInput) (*entities.MeetingReport, string, error) {
	if input.Title == "" {
		return nil, "", usecaseErrors.ErrEmptyTitle
	}
	if input.DurationSeconds < 0 {
		return nil, "", usecaseErrors.ErrInvalidDuration
	}

	report := entities.NewMeetingReport(input.Title)
	report.MeetingLink = input.MeetingLink
	report.DurationSeconds = input.DurationSeconds
	if input.StartedAt != nil {
		report.StartedAt = *input.StartedAt
	}
	report.TranscriptBySpeaker = s.sanitizeTranscript(input.TranscriptBySpeaker)
	report.EmotionsByPerson = s.sanitizeEmotions(input.EmotionsByPerson)

	report.SpeakerChart = input.SpeakerChart
	report.SpeakerChartMime = input.SpeakerChartMime
	report.EmotionChart = input.EmotionChart
	report.EmotionChartMime = input.EmotionChartMime

	// Derive charts from the data when the capture pipeline supplied none.
	if report.SpeakerChart == "" && report.HasTranscript() {
		if chart := renderPieChart("Speaker Contribution", speakerChartSlices(report.TranscriptBySpeaker)); chart != "" {
			report.SpeakerChart = chart
			report.SpeakerChartMime = ChartMimeSVG
		}
	}
	if report.EmotionChart == "" && report.HasEmotions() {
		if chart := renderPieChart("Emotion Distribution", emotionChartSlices(report.EmotionsByPerson)); chart != "" {
			report.EmotionChart = chart
			report.EmotionChartMime = ChartMimeSVG
		}
	}

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, "", fmt.Errorf("failed to create report: %w", err)
	}

	htmlDoc, err := s.Render(report)
	if err != nil {
		return nil, "", err
	}

	objectKey := fmt.Sprintf("reports/%s.html", report.ID)
	if err := s.archive.UploadHTML(ctx, objectKey, htmlDoc); err != nil {
		return nil, "", fmt.Errorf("%w: %v", usecaseErrors.ErrArchiveFailed, err)
	}
	if err := s.reports.MarkRendered(ctx, report.ID, objectKey); err != nil {
		return nil, "", fmt.Errorf("failed to mark report rendered: %w", err)
	}
	now := time.Now()
	report.HTMLObjectKey = objectKey
	report.RenderedAt = &now

	if err := s.cache.Set(ctx, s.cacheKey(report), htmlDoc, s.cacheTTL); err != nil && s.logger != nil {
		s.logger.Warn("failed to cache rendered report",
			zap.String("report_id", report.ID.String()),
			zap.Error(err))
	}

	return report, htmlDoc, nil
}

// GetReport retrieves a report by ID
func (s *Service) GetReport(ctx context.Context, id uuid.UUID) (*entities.MeetingReport, error) {
	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// ListReports retrieves reports with filters
func (s *Service) ListReports(ctx context.Context, filters repositories.ReportFilters) ([]*entities.MeetingReport, int64, error) {
	reports, total, err := s.reports.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, total, nil
}

// ReportHTML returns the rendered document for a stored report, consulting
// the cache first. Rendering is deterministic, so a cache hit is byte-equal
// to a fresh render.
func (s *Service) ReportHTML(ctx context.Context, id uuid.UUID) (string, error) {
	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return "", err
	}

	key := s.cacheKey(report)
	if cached, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		return cached, nil
	} else if err != nil && s.logger != nil {
		s.logger.Warn("report cache lookup failed", zap.Error(err))
	}

	htmlDoc, err := s.Render(report)
	if err != nil {
		return "", err
	}
	if err := s.cache.Set(ctx, key, htmlDoc, s.cacheTTL); err != nil && s.logger != nil {
		s.logger.Warn("failed to cache rendered report", zap.Error(err))
	}
	return htmlDoc, nil
}

// ArchiveURL returns a presigned URL for the archived document.
func (s *Service) ArchiveURL(ctx context.Context, id uuid.UUID, expiry time.Duration) (string, error) {
	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if report.HTMLObjectKey == "" {
		return "", entities.ErrReportNotRendered
	}
	return s.archive.PresignedURL(ctx, report.HTMLObjectKey, expiry)
}

// Render builds the template context from the stored report and executes the
// report document template.
func (s *Service) Render(report *entities.MeetingReport) (string, error) {
	ctx := render.Context{
		"meeting_title": report.Title,
		"date":          report.Date(),
		"duration":      report.Duration(),
		"meeting_link":  report.MeetingLink,
		"site_name":     s.siteName,
	}
	if report.HasTranscript() {
		ctx["transcript_by_speaker"] = report.TranscriptBySpeaker
	}
	if report.HasEmotions() {
		ctx["emotions_by_person"] = report.EmotionsByPerson
	}
	if report.SpeakerChart != "" {
		ctx["speaker_chart"] = report.SpeakerChart
		if report.SpeakerChartMime != "" {
			ctx["speaker_chart_mime"] = report.SpeakerChartMime
		}
	}
	if report.EmotionChart != "" {
		ctx["emotion_chart"] = report.EmotionChart
		if report.EmotionChartMime != "" {
			ctx["emotion_chart_mime"] = report.EmotionChartMime
		}
	}

	if err := ctx.Require("meeting_title", "date", "duration", "meeting_link"); err != nil {
		return "", err
	}

	return s.engine.RenderTemplate(reportTemplate, ctx)
}

// cacheKey derives a cache key from the report ID and a digest of the fields
// that influence the rendered output.
func (s *Service) cacheKey(report *entities.MeetingReport) string {
	payload, _ := json.Marshal(map[string]any{
		"title":      report.Title,
		"date":       report.Date(),
		"duration":   report.Duration(),
		"link":       report.MeetingLink,
		"transcript": report.TranscriptBySpeaker,
		"emotions":   report.EmotionsByPerson,
		"charts":     []string{report.SpeakerChart, report.EmotionChart},
		"site":       s.siteName,
	})
	digest := sha256.Sum256(payload)
	return fmt.Sprintf("report:html:%s:%s", report.ID, hex.EncodeToString(digest[:8]))
}

// sanitizeTranscript strips markup from utterance text. bluemonday escapes
// what it keeps, so the result is unescaped again; the template engine does
// the output escaping.
func (s *Service) sanitizeTranscript(in map[string][]entities.TranscriptEntry) map[string][]entities.TranscriptEntry {
	if in == nil {
		return nil
	}
	out := make(map[string][]entities.TranscriptEntry, len(in))
	for speaker, entries := range in {
		cleaned := make([]entities.TranscriptEntry, len(entries))
		for i, e := range entries {
			cleaned[i] = entities.TranscriptEntry{
				Timestamp: e.Timestamp,
				Text:      s.stripMarkup(e.Text),
			}
		}
		out[s.stripMarkup(speaker)] = cleaned
	}
	return out
}

func (s *Service) sanitizeEmotions(in map[string][]entities.EmotionEntry) map[string][]entities.EmotionEntry {
	if in == nil {
		return nil
	}
	out := make(map[string][]entities.EmotionEntry, len(in))
	for person, entries := range in {
		cleaned := make([]entities.EmotionEntry, len(entries))
		for i, e := range entries {
			cleaned[i] = entities.EmotionEntry{
				Timestamp:  e.Timestamp,
				Emotion:    s.stripMarkup(e.Emotion),
				Confidence: e.Confidence,
			}
		}
		out[s.stripMarkup(person)] = cleaned
	}
	return out
}

func (s *Service) stripMarkup(text string) string {
	return html.UnescapeString(s.strip.Sanitize(text))
}
