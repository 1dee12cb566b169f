package presenter

import (
	"github.com/edumeet/notifier/internal/adapter/dto/common"
	"github.com/edumeet/notifier/internal/adapter/dto/report"
	"github.com/edumeet/notifier/internal/domain/entities"
)

// ToReportResponse converts a MeetingReport entity to ReportResponse DTO
func ToReportResponse(r *entities.MeetingReport) *report.ReportResponse {
	if r == nil {
		return nil
	}

	return &report.ReportResponse{
		ID:              r.ID.String(),
		Title:           r.Title,
		MeetingLink:     r.MeetingLink,
		Date:            r.Date(),
		Duration:        r.Duration(),
		SpeakerCount:    len(r.TranscriptBySpeaker),
		HasTranscript:   r.HasTranscript(),
		HasEmotions:     r.HasEmotions(),
		HasSpeakerChart: r.SpeakerChart != "",
		HasEmotionChart: r.EmotionChart != "",
		ArchiveKey:      r.HTMLObjectKey,
		RenderedAt:      r.RenderedAt,
		CreatedAt:       r.CreatedAt,
	}
}

// ToReportListResponse converts a slice of MeetingReport entities to a
// paginated list response
func ToReportListResponse(reports []*entities.MeetingReport, total int64, page, pageSize int) *common.ListResponse {
	responses := make([]*report.ReportResponse, len(reports))
	for i, r := range reports {
		responses[i] = ToReportResponse(r)
	}

	if pageSize <= 0 {
		pageSize = len(responses)
		if pageSize == 0 {
			pageSize = 1
		}
	}
	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}

	return &common.ListResponse{
		Data: responses,
		Pagination: &common.PaginationResponse{
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
			TotalItems: total,
		},
	}
}
