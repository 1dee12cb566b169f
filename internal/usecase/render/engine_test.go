package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/edumeet/notifier/templates"
)

func resetContext() Context {
	return Context{
		"site_name": "EduMeet",
		"protocol":  "https",
		"domain":    "edumeet.example",
		"url":       "reset/confirm/NDI/c6f8-a31b22",
		"user":      map[string]any{"username": "alice"},
	}
}

func TestRenderPasswordResetHTML(t *testing.T) {
	e := NewEngine(templates.FS)

	out, err := e.RenderTemplate("emails/password_reset.html", resetContext())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	for _, want := range []string{
		"Password Reset Request",
		"Hi alice,",
		"https://edumeet.example/reset/confirm/NDI/c6f8-a31b22",
		"The EduMeet team",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}

	if got := strings.Count(out, "alice"); got != 1 {
		t.Fatalf("expected username to appear exactly once, got %d", got)
	}
}

func TestRenderPasswordResetText(t *testing.T) {
	e := NewEngine(templates.FS)

	ctx := resetContext()
	ctx["user"] = map[string]any{"username": "O'Brien"}

	out, err := e.RenderTemplate("emails/password_reset.txt", ctx)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	// Plain-text output must not be HTML-escaped.
	if !strings.Contains(out, "Hi O'Brien,") {
		t.Fatalf("text output escaped or dropped username:\n%s", out)
	}
	if strings.Contains(out, "&#39;") {
		t.Fatalf("text output contains HTML entities:\n%s", out)
	}
}

func TestRenderEscapesHTMLInUsername(t *testing.T) {
	e := NewEngine(templates.FS)

	ctx := resetContext()
	ctx["user"] = map[string]any{"username": `<script>alert("x")</script>`}

	out, err := e.RenderTemplate("emails/password_reset.html", ctx)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if strings.Contains(out, "<script>") {
		t.Fatalf("username was not escaped:\n%s", out)
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Fatalf("expected escaped markup in output:\n%s", out)
	}
}

func TestRequireReportsMissingFieldsSorted(t *testing.T) {
	ctx := Context{"site_name": "EduMeet", "domain": nil}

	err := ctx.Require("url", "domain", "site_name", "protocol")
	if err == nil {
		t.Fatal("expected error for missing fields")
	}

	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError, got %T", err)
	}

	want := []string{"domain", "protocol", "url"}
	if diff := cmp.Diff(want, missing.Fields); diff != "" {
		t.Fatalf("missing fields mismatch (-want +got):\n%s", diff)
	}
}

func reportContext() Context {
	return Context{
		"meeting_title": "Weekly Sync",
		"date":          "2025-03-14 10:00:00",
		"duration":      "00:45:12",
		"meeting_link":  "https://edumeet.example/rooms/weekly",
		"site_name":     "EduMeet",
	}
}

func TestMeetingReportFallbacks(t *testing.T) {
	e := NewEngine(templates.FS)

	out, err := e.RenderTemplate("reports/meeting_report.html", reportContext())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	for _, want := range []string{
		"Meeting Report: Weekly Sync",
		"No speaker data available",
		"No transcript available",
		"No emotion data available",
		"Generated by EduMeet",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q", want)
		}
	}
}

func TestMeetingReportTranscriptAndEmotions(t *testing.T) {
	e := NewEngine(templates.FS)

	ctx := reportContext()
	ctx["transcript_by_speaker"] = map[string][]map[string]any{
		"Bob":   {{"timestamp": "00:01:12", "text": "I had a question."}},
		"Alice": {{"timestamp": "00:00:05", "text": "Let's get started."}},
	}
	ctx["emotions_by_person"] = map[string][]map[string]any{
		"Alice": {
			{"timestamp": "00:00:05", "emotion": "neutral", "confidence": 91.0},
			{"timestamp": "00:03:41", "emotion": "happy", "confidence": 84.7},
		},
	}

	out, err := e.RenderTemplate("reports/meeting_report.html", ctx)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	for _, want := range []string{
		"[00:00:05]</span> Let&#39;s get started.",
		"[00:01:12]</span> I had a question.",
		"neutral (91.0%)",
		"happy (84.7%)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}

	// Speakers iterate in sorted order regardless of map insertion order.
	if strings.Index(out, ">Alice<") > strings.Index(out, ">Bob<") {
		t.Fatal("speakers not in sorted order")
	}
	if strings.Contains(out, "No transcript available") {
		t.Fatal("fallback shown despite transcript data")
	}
}

func TestMeetingReportRenderIsDeterministic(t *testing.T) {
	e := NewEngine(templates.FS)

	ctx := reportContext()
	ctx["transcript_by_speaker"] = map[string][]map[string]any{
		"Carol": {{"timestamp": "00:02:00", "text": "third"}},
		"Alice": {{"timestamp": "00:00:01", "text": "first"}},
		"Bob":   {{"timestamp": "00:01:00", "text": "second"}},
	}

	first, err := e.RenderTemplate("reports/meeting_report.html", ctx)
	if err != nil {
		t.Fatalf("first render failed: %v", err)
	}

	for i := 0; i < 10; i++ {
		again, err := e.RenderTemplate("reports/meeting_report.html", ctx)
		if err != nil {
			t.Fatalf("render %d failed: %v", i, err)
		}
		if again != first {
			t.Fatalf("render %d differs from first render", i)
		}
	}
}

func TestMeetingReportChartMimeDefault(t *testing.T) {
	e := NewEngine(templates.FS)

	ctx := reportContext()
	ctx["speaker_chart"] = "aGVsbG8="

	out, err := e.RenderTemplate("reports/meeting_report.html", ctx)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(out, "data:image/png;base64,aGVsbG8=") {
		t.Fatalf("expected PNG mime default:\n%s", out)
	}

	ctx["speaker_chart_mime"] = "image/svg+xml"
	out, err = e.RenderTemplate("reports/meeting_report.html", ctx)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(out, "data:image/svg+xml;base64,aGVsbG8=") {
		t.Fatalf("expected explicit mime to win:\n%s", out)
	}
}

func TestRenderStringSubject(t *testing.T) {
	e := NewEngine(templates.FS)

	out, err := e.RenderString("Password reset on {{ site_name }}", Context{"site_name": "EduMeet"})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if out != "Password reset on EduMeet" {
		t.Fatalf("unexpected subject: %q", out)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	e := NewEngine(templates.FS)

	if _, err := e.RenderTemplate("emails/nonexistent.html", Context{}); err == nil {
		t.Fatal("expected error for unknown template")
	}
}
