package store

import (
	"context"
	"time"

	"github.com/fabianthdev/sidestore-id-backend/internal/models"

	"gorm.io/gorm"
)

// AuditLogFilters contains filter criteria for querying audit logs
type AuditLogFilters struct {
	EventType    models.EventType    `json:"event_type,omitempty"`
	ActorUserID  string              `json:"actor_user_id,omitempty"`
	ResourceType models.ResourceType `json:"resource_type,omitempty"`
	Success      *bool               `json:"success,omitempty"`
	StartTime    time.Time           `json:"start_time,omitzero"`
	EndTime      time.Time           `json:"end_time,omitzero"`
}

func (f AuditLogFilters) apply(query *gorm.DB) *gorm.DB {
	if f.EventType != "" {
		query = query.Where("event_type = ?", f.EventType)
	}
	if f.ActorUserID != "" {
		query = query.Where("actor_user_id = ?", f.ActorUserID)
	}
	if f.ResourceType != "" {
		query = query.Where("resource_type = ?", f.ResourceType)
	}
	if f.Success != nil {
		query = query.Where("success = ?", *f.Success)
	}
	if !f.StartTime.IsZero() {
		query = query.Where("event_time >= ?", f.StartTime)
	}
	if !f.EndTime.IsZero() {
		query = query.Where("event_time <= ?", f.EndTime)
	}
	return query
}

// CreateAuditLog inserts a single audit entry
func (s *Store) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

// CreateAuditLogBatch inserts audit entries in batches of 100
func (s *Store) CreateAuditLogBatch(ctx context.Context, entries []*models.AuditLog) error {
	if len(entries) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).CreateInBatches(entries, 100).Error
}

// GetAuditLogsPaginated returns matching audit entries, newest first
func (s *Store) GetAuditLogsPaginated(
	ctx context.Context,
	params PaginationParams,
	filters AuditLogFilters,
) ([]models.AuditLog, PaginationResult, error) {
	scoped := func() *gorm.DB {
		return filters.apply(s.db.WithContext(ctx).Model(&models.AuditLog{}))
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, PaginationResult{}, err
	}

	var logs []models.AuditLog
	err := scoped().
		Order("event_time DESC, id DESC").
		Offset(params.offset()).
		Limit(params.PageSize).
		Find(&logs).
		Error
	if err != nil {
		return nil, PaginationResult{}, err
	}

	return logs, CalculatePagination(total, params.Page, params.PageSize), nil
}

// DeleteOldAuditLogs removes entries created before cutoff
func (s *Store) DeleteOldAuditLogs(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.AuditLog{})
	return result.RowsAffected, result.Error
}
