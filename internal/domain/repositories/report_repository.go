package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/edumeet/notifier/internal/domain/entities"
)

// ReportFilters holds filter options for listing reports
type ReportFilters struct {
	Search   string
	Page     int
	PageSize int
}

// ReportRepository defines the interface for meeting report data access
type ReportRepository interface {
	// Create creates a new meeting report
	Create(ctx context.Context, report *entities.MeetingReport) error

	// FindByID finds a meeting report by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.MeetingReport, error)

	// Update updates a meeting report
	Update(ctx context.Context, report *entities.MeetingReport) error

	// MarkRendered records the archive object key and render timestamp
	MarkRendered(ctx context.Context, id uuid.UUID, objectKey string) error

	// List returns a paginated list of reports
	List(ctx context.Context, filters ReportFilters) ([]*entities.MeetingReport, int64, error)

	// Delete deletes a meeting report
	Delete(ctx context.Context, id uuid.UUID) error
}
