package usagelog

import (
	"context"
	"time"

	"github.com/LIMSONGJIN/metabank-api/internal/common"
	"github.com/LIMSONGJIN/metabank-api/internal/domain"
	"github.com/LIMSONGJIN/metabank-api/internal/platform/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultUserLimit    = 50
	DefaultClientLimit  = 100
	DefaultFeatureLimit = 100
)

// Service records and reads feature usage.
type Service interface {
	CreateLog(ctx context.Context, entry Entry) (*UsageLog, error)
	GetLogsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]UsageLog, error)
	GetLogsByClient(ctx context.Context, clientType domain.ClientType, limit int) ([]UsageLog, error)
	GetLogsByFeature(ctx context.Context, featureType domain.FeatureType, limit int) ([]UsageLog, error)
	GetUsageStats(ctx context.Context) (*Stats, error)
	ListLogs(ctx context.Context, filter Filter, page, limit int) ([]UsageLog, common.Pagination, error)
	LogsInRange(ctx context.Context, start, end *time.Time) ([]RangeRow, error)
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new usage log service.
func NewService(repo Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{repo: repo, logger: logger.Named("usagelog")}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// CreateLog persists exactly one entry. A store failure is returned to the
// caller; nothing written earlier in the request is undone.
func (s *ServiceImplementation) CreateLog(ctx context.Context, entry Entry) (*UsageLog, error) {
	log := &UsageLog{
		UserID:      entry.UserID,
		ClientType:  entry.ClientType,
		FeatureType: entry.FeatureType,
		SessionID:   entry.SessionID,
		Metadata:    entry.Metadata,
		IPAddress:   optional(entry.IPAddress),
		UserAgent:   optional(entry.UserAgent),
	}
	if err := s.repo.Create(ctx, log); err != nil {
		s.logger.Error("Failed to write usage log",
			zap.Error(err),
			zap.String("clientType", string(entry.ClientType)),
			zap.String("featureType", string(entry.FeatureType)),
		)
		return nil, err
	}

	metrics.RecordFeatureInvocation(string(log.ClientType), string(log.FeatureType))
	return log, nil
}

func (s *ServiceImplementation) GetLogsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]UsageLog, error) {
	if limit <= 0 {
		limit = DefaultUserLimit
	}
	return s.repo.FindByUser(ctx, userID, limit)
}

func (s *ServiceImplementation) GetLogsByClient(ctx context.Context, clientType domain.ClientType, limit int) ([]UsageLog, error) {
	if limit <= 0 {
		limit = DefaultClientLimit
	}
	return s.repo.FindByClient(ctx, clientType, limit)
}

func (s *ServiceImplementation) GetLogsByFeature(ctx context.Context, featureType domain.FeatureType, limit int) ([]UsageLog, error) {
	if limit <= 0 {
		limit = DefaultFeatureLimit
	}
	return s.repo.FindByFeature(ctx, featureType, limit)
}

// GetUsageStats reads the total and both breakdowns concurrently.
func (s *ServiceImplementation) GetUsageStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByClient: []ClientCount{}, ByFeature: []FeatureCount{}}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, err := s.repo.Count(gctx)
		stats.Total = total
		return err
	})
	g.Go(func() error {
		rows, err := s.repo.CountByClient(gctx)
		if rows != nil {
			stats.ByClient = rows
		}
		return err
	})
	g.Go(func() error {
		rows, err := s.repo.CountByFeature(gctx)
		if rows != nil {
			stats.ByFeature = rows
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *ServiceImplementation) ListLogs(ctx context.Context, filter Filter, page, limit int) ([]UsageLog, common.Pagination, error) {
	page, limit = common.NormalizePage(page, limit)
	logs, total, err := s.repo.List(ctx, filter, common.Offset(page, limit), limit)
	if err != nil {
		return nil, common.Pagination{}, err
	}
	if logs == nil {
		logs = []UsageLog{}
	}
	return logs, common.NewPagination(total, page, limit), nil
}

func (s *ServiceImplementation) LogsInRange(ctx context.Context, start, end *time.Time) ([]RangeRow, error) {
	if start != nil && end != nil && end.Before(*start) {
		return nil, common.ErrBadRequest.WithMessage("endDate must not be before startDate")
	}
	rows, err := s.repo.InRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []RangeRow{}
	}
	return rows, nil
}
