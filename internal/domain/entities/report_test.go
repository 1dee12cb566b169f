package entities

import (
	"testing"
	"time"
)

func TestMeetingReportDate(t *testing.T) {
	r := NewMeetingReport("Weekly Sync")
	r.StartedAt = time.Date(2025, 3, 14, 10, 5, 9, 0, time.UTC)

	if got := r.Date(); got != "2025-03-14 10:05:09" {
		t.Fatalf("unexpected date format: %q", got)
	}
}

func TestMeetingReportDuration(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{2712, "00:45:12"},
		{3600, "01:00:00"},
		{37230, "10:20:30"},
		{-5, "00:00:00"},
	}

	for _, tc := range cases {
		r := &MeetingReport{DurationSeconds: tc.seconds}
		if got := r.Duration(); got != tc.want {
			t.Fatalf("Duration(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestHasTranscript(t *testing.T) {
	r := NewMeetingReport("x")
	if r.HasTranscript() {
		t.Fatal("empty report must not have transcript")
	}

	r.TranscriptBySpeaker = map[string][]TranscriptEntry{"Alice": {}}
	if r.HasTranscript() {
		t.Fatal("speaker with no entries must not count")
	}

	r.TranscriptBySpeaker["Alice"] = []TranscriptEntry{{Timestamp: "00:00:01", Text: "hi"}}
	if !r.HasTranscript() {
		t.Fatal("expected transcript to be detected")
	}
}

func TestEmailKindIsValid(t *testing.T) {
	for _, kind := range []EmailKind{
		EmailKindPasswordReset,
		EmailKindActivation,
		EmailKindConfirmation,
		EmailKindPasswordChanged,
	} {
		if !kind.IsValid() {
			t.Fatalf("%s should be valid", kind)
		}
	}

	if EmailKind("newsletter").IsValid() {
		t.Fatal("newsletter must not be a valid kind")
	}
}
