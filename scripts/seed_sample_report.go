package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/edumeet/notifier/internal/adapter/repository"
	"github.com/edumeet/notifier/internal/domain/entities"
	"github.com/edumeet/notifier/internal/infrastructure/database"
	"github.com/edumeet/notifier/pkg/config"
	pkgjwt "github.com/edumeet/notifier/pkg/jwt"
)

func main() {
	log.Println("🚀 Seeding sample report and service tokens...")

	// Load configuration from .env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Initialize JWT manager
	jwtManager := pkgjwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Generate service tokens for the known client services
	clients := []struct {
		Name   string
		Scopes []string
	}{
		{Name: "meetbot", Scopes: []string{"reports:write", "reports:read"}},
		{Name: "accounts", Scopes: []string{"emails:send"}},
		{Name: "dev-console", Scopes: []string{"reports:read", "reports:write", "emails:send"}},
	}

	log.Println("🔑 Generating service tokens...")
	for _, client := range clients {
		token, err := jwtManager.GenerateServiceToken(client.Name, client.Scopes...)
		if err != nil {
			log.Printf("❌ Failed to generate token for %s: %v", client.Name, err)
			continue
		}
		fmt.Printf("═══════════════════════════════════════════════════════\n")
		fmt.Printf("🟢 Client: %s (scopes: %v, expiry: %v)\n", client.Name, client.Scopes, cfg.JWT.Expiry)
		fmt.Printf("%s\n", token)
	}
	fmt.Printf("═══════════════════════════════════════════════════════\n")

	// Seed a sample meeting report with transcript and emotion data
	log.Println("📊 Creating sample meeting report...")

	started := time.Now().Add(-45 * time.Minute)
	sample := entities.NewMeetingReport("Weekly Physics Study Group")
	sample.MeetingLink = "https://edumeet.example/rooms/physics-101"
	sample.StartedAt = started
	sample.DurationSeconds = 2712
	sample.TranscriptBySpeaker = map[string][]entities.TranscriptEntry{
		"Alice": {
			{Timestamp: "00:00:05", Text: "Let's start with last week's assignment."},
			{Timestamp: "00:03:41", Text: "The second problem needs the momentum equation."},
		},
		"Bob": {
			{Timestamp: "00:01:12", Text: "I had trouble with question three."},
		},
	}
	sample.EmotionsByPerson = map[string][]entities.EmotionEntry{
		"Alice": {
			{Timestamp: "00:00:05", Emotion: "neutral", Confidence: 91.2},
			{Timestamp: "00:03:41", Emotion: "happy", Confidence: 84.7},
		},
		"Bob": {
			{Timestamp: "00:01:12", Emotion: "confused", Confidence: 77.5},
		},
	}

	reportRepo := repository.NewReportRepository(db)
	if err := reportRepo.Create(context.Background(), sample); err != nil {
		log.Fatalf("❌ Failed to create sample report: %v", err)
	}

	log.Printf("✅ Sample report created: %s", sample.ID)
	log.Printf("🔗 Render it: GET /v1/reports/%s/html", sample.ID)
}
