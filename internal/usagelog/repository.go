// File: internal/usagelog/repository.go
package usagelog

import (
	"context"
	"fmt"
	"time"

	"github.com/LIMSONGJIN/metabank-api/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence for usage logs.
type Repository interface {
	Create(ctx context.Context, log *UsageLog) error
	FindByUser(ctx context.Context, userID uuid.UUID, limit int) ([]UsageLog, error)
	FindByClient(ctx context.Context, clientType domain.ClientType, limit int) ([]UsageLog, error)
	FindByFeature(ctx context.Context, featureType domain.FeatureType, limit int) ([]UsageLog, error)
	List(ctx context.Context, filter Filter, offset, limit int) ([]UsageLog, int64, error)
	Count(ctx context.Context) (int64, error)
	CountByClient(ctx context.Context) ([]ClientCount, error)
	CountByFeature(ctx context.Context) ([]FeatureCount, error)
	InRange(ctx context.Context, start, end *time.Time) ([]RangeRow, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM usage log repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, log *UsageLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("creating usage log: %w", err)
	}
	return nil
}

func (r *gormRepository) findWhere(ctx context.Context, limit int, query string, arg interface{}) ([]UsageLog, error) {
	var logs []UsageLog
	err := r.db.WithContext(ctx).
		Where(query, arg).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("listing usage logs: %w", err)
	}
	return logs, nil
}

func (r *gormRepository) FindByUser(ctx context.Context, userID uuid.UUID, limit int) ([]UsageLog, error) {
	return r.findWhere(ctx, limit, "user_id = ?", userID)
}

func (r *gormRepository) FindByClient(ctx context.Context, clientType domain.ClientType, limit int) ([]UsageLog, error) {
	return r.findWhere(ctx, limit, "client_type = ?", clientType)
}

func (r *gormRepository) FindByFeature(ctx context.Context, featureType domain.FeatureType, limit int) ([]UsageLog, error) {
	return r.findWhere(ctx, limit, "feature_type = ?", featureType)
}

func applyFilter(q *gorm.DB, filter Filter) *gorm.DB {
	if filter.ClientType != "" {
		q = q.Where("client_type = ?", filter.ClientType)
	}
	if filter.FeatureType != "" {
		q = q.Where("feature_type = ?", filter.FeatureType)
	}
	return q
}

// List returns one filtered page, newest first, with user summaries attached.
func (r *gormRepository) List(ctx context.Context, filter Filter, offset, limit int) ([]UsageLog, int64, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := applyFilter(db.Model(&UsageLog{}), filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting usage logs: %w", err)
	}

	var logs []UsageLog
	err := applyFilter(db.Model(&UsageLog{}), filter).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("listing usage logs: %w", err)
	}

	if err := r.attachUsers(ctx, logs); err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (r *gormRepository) attachUsers(ctx context.Context, logs []UsageLog) error {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, l := range logs {
		if l.UserID == nil {
			continue
		}
		if _, ok := seen[*l.UserID]; !ok {
			seen[*l.UserID] = struct{}{}
			ids = append(ids, *l.UserID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var users []UserSummary
	if err := r.db.WithContext(ctx).Select("id", "email", "name").Where("id IN ?", ids).Find(&users).Error; err != nil {
		return fmt.Errorf("loading log users: %w", err)
	}
	byID := make(map[uuid.UUID]*UserSummary, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	for i := range logs {
		if logs[i].UserID != nil {
			logs[i].User = byID[*logs[i].UserID]
		}
	}
	return nil
}

func (r *gormRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&UsageLog{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("counting usage logs: %w", err)
	}
	return total, nil
}

func (r *gormRepository) CountByClient(ctx context.Context) ([]ClientCount, error) {
	var rows []ClientCount
	err := r.db.WithContext(ctx).
		Model(&UsageLog{}).
		Select("client_type, COUNT(*) AS count").
		Group("client_type").
		Order("client_type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("grouping usage logs by client: %w", err)
	}
	return rows, nil
}

func (r *gormRepository) CountByFeature(ctx context.Context) ([]FeatureCount, error) {
	var rows []FeatureCount
	err := r.db.WithContext(ctx).
		Model(&UsageLog{}).
		Select("feature_type, COUNT(*) AS count").
		Group("feature_type").
		Order("feature_type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("grouping usage logs by feature: %w", err)
	}
	return rows, nil
}

// InRange returns logs created within [start, end]; nil bounds are open.
func (r *gormRepository) InRange(ctx context.Context, start, end *time.Time) ([]RangeRow, error) {
	q := r.db.WithContext(ctx).Model(&UsageLog{})
	if start != nil {
		q = q.Where("created_at >= ?", *start)
	}
	if end != nil {
		q = q.Where("created_at <= ?", *end)
	}

	var rows []RangeRow
	if err := q.Select("client_type", "feature_type", "created_at").Order("created_at ASC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing usage logs in range: %w", err)
	}
	return rows, nil
}
