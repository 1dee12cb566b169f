package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edumeet/notifier/internal/domain/entities"
	"github.com/edumeet/notifier/internal/domain/repositories"
)

// ReportRepository handles meeting report data operations
type ReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create creates a new meeting report
func (r *ReportRepository) Create(ctx context.Context, report *entities.MeetingReport) error {
	if report == nil {
		return errors.New("report cannot be nil")
	}
	return r.db.WithContext(ctx).Create(report).Error
}

// FindByID retrieves a meeting report by ID
func (r *ReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.MeetingReport, error) {
	var report entities.MeetingReport
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

// Update updates a meeting report
func (r *ReportRepository) Update(ctx context.Context, report *entities.MeetingReport) error {
	if report == nil {
		return errors.New("report cannot be nil")
	}
	return r.db.WithContext(ctx).
		Model(&entities.MeetingReport{}).
		Where("id = ?", report.ID).
		Save(report).Error
}

// MarkRendered records the archive object key and render timestamp
func (r *ReportRepository) MarkRendered(ctx context.Context, id uuid.UUID, objectKey string) error {
	return r.db.WithContext(ctx).
		Model(&entities.MeetingReport{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"html_object_key": objectKey,
			"rendered_at":     time.Now(),
			"updated_at":      time.Now(),
		}).Error
}

// List returns a paginated list of reports
func (r *ReportRepository) List(ctx context.Context, filters repositories.ReportFilters) ([]*entities.MeetingReport, int64, error) {
	query := r.db.WithContext(ctx).Model(&entities.MeetingReport{})

	if filters.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filters.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var reports []*entities.MeetingReport
	if err := query.
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&reports).Error; err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

// Delete deletes a meeting report
func (r *ReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.MeetingReport{}, id).Error
}
