package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TranscriptEntry is a single captured utterance attributed to a speaker.
type TranscriptEntry struct {
	Timestamp string `json:"timestamp"`
	Text      string `json:"text"`
}

// EmotionEntry is a single emotion observation for a person.
// Confidence is a percentage in [0, 100].
type EmotionEntry struct {
	Timestamp  string  `json:"timestamp"`
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
}

// MeetingReport is the stored meeting report model. Transcript and emotion
// data arrive from the capture pipeline; this service only renders them.
type MeetingReport struct {
	ID                  uuid.UUID                    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title               string                       `json:"meeting_title" gorm:"type:varchar(255);not null"`
	MeetingLink         string                       `json:"meeting_link" gorm:"type:text"`
	StartedAt           time.Time                    `json:"started_at"`
	DurationSeconds     int                          `json:"duration_seconds"`
	TranscriptBySpeaker map[string][]TranscriptEntry `json:"transcript_by_speaker,omitempty" gorm:"type:jsonb;serializer:json"`
	EmotionsByPerson    map[string][]EmotionEntry    `json:"emotions_by_person,omitempty" gorm:"type:jsonb;serializer:json"`
	SpeakerChart        string                       `json:"speaker_chart,omitempty" gorm:"type:text"`
	SpeakerChartMime    string                       `json:"speaker_chart_mime,omitempty" gorm:"type:varchar(50)"`
	EmotionChart        string                       `json:"emotion_chart,omitempty" gorm:"type:text"`
	EmotionChartMime    string                       `json:"emotion_chart_mime,omitempty" gorm:"type:varchar(50)"`
	HTMLObjectKey       string                       `json:"html_object_key,omitempty" gorm:"type:varchar(512)"`
	RenderedAt          *time.Time                   `json:"rendered_at,omitempty"`
	CreatedAt           time.Time                    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt           time.Time                    `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (MeetingReport) TableName() string {
	return "meeting_reports"
}

// NewMeetingReport creates a new meeting report
func NewMeetingReport(title string) *MeetingReport {
	return &MeetingReport{
		ID:        uuid.New(),
		Title:     title,
		StartedAt: time.Now(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// Date returns the meeting date formatted for the report document.
func (r *MeetingReport) Date() string {
	return r.StartedAt.Format("2006-01-02 15:04:05")
}

// Duration returns the recording duration formatted as HH:MM:SS.
func (r *MeetingReport) Duration() string {
	d := r.DurationSeconds
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", d/3600, (d%3600)/60, d%60)
}

// HasTranscript reports whether any speaker has at least one entry.
func (r *MeetingReport) HasTranscript() bool {
	for _, entries := range r.TranscriptBySpeaker {
		if len(entries) > 0 {
			return true
		}
	}
	return false
}

// HasEmotions reports whether any person has at least one observation.
func (r *MeetingReport) HasEmotions() bool {
	for _, entries := range r.EmotionsByPerson {
		if len(entries) > 0 {
			return true
		}
	}
	return false
}
