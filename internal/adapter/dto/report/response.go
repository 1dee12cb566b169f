package report

import "time"

// ReportResponse represents a meeting report in responses
type ReportResponse struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	MeetingLink     string     `json:"meeting_link,omitempty"`
	Date            string     `json:"date"`
	Duration        string     `json:"duration"`
	SpeakerCount    int        `json:"speaker_count"`
	HasTranscript   bool       `json:"has_transcript"`
	HasEmotions     bool       `json:"has_emotions"`
	HasSpeakerChart bool       `json:"has_speaker_chart"`
	HasEmotionChart bool       `json:"has_emotion_chart"`
	ArchiveKey      string     `json:"archive_key,omitempty"`
	RenderedAt      *time.Time `json:"rendered_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// CreateReportResponse is returned after a report is created and rendered
type CreateReportResponse struct {
	Report *ReportResponse `json:"report"`
	HTML   string          `json:"html,omitempty"`
}

// ArchiveURLResponse carries a presigned URL for an archived document
type ArchiveURLResponse struct {
	URL       string `json:"url"`
	ExpiresIn string `json:"expires_in"`
}
