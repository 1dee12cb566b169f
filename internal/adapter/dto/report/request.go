package report

import "time"

// TranscriptEntryRequest is a single transcript utterance in the request
type TranscriptEntryRequest struct {
	Timestamp string `json:"timestamp" validate:"required"`
	Text      string `json:"text" validate:"required"`
}

// EmotionEntryRequest is a single emotion observation in the request
type EmotionEntryRequest struct {
	Timestamp  string  `json:"timestamp"`
	Emotion    string  `json:"emotion" validate:"required"`
	Confidence float64 `json:"confidence" validate:"min=0,max=100"`
}

// CreateReportRequest represents the request to create a meeting report
type CreateReportRequest struct {
	Title               string                              `json:"title" validate:"required,min=1,max=255"`
	MeetingLink         string                              `json:"meeting_link" validate:"omitempty,url"`
	StartedAt           *time.Time                          `json:"started_at,omitempty"`
	DurationSeconds     int                                 `json:"duration_seconds" validate:"min=0"`
	TranscriptBySpeaker map[string][]TranscriptEntryRequest `json:"transcript_by_speaker,omitempty"`
	EmotionsByPerson    map[string][]EmotionEntryRequest    `json:"emotions_by_person,omitempty"`
	SpeakerChart        string                              `json:"speaker_chart,omitempty" validate:"omitempty,base64"`
	SpeakerChartMime    string                              `json:"speaker_chart_mime,omitempty"`
	EmotionChart        string                              `json:"emotion_chart,omitempty" validate:"omitempty,base64"`
	EmotionChartMime    string                              `json:"emotion_chart_mime,omitempty"`
}

// ListReportsRequest represents query parameters for listing reports
type ListReportsRequest struct {
	Search   string `query:"search"`
	Page     int    `query:"page" validate:"min=0"`
	PageSize int    `query:"page_size" validate:"min=0,max=100"`
}
