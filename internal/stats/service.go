// Package stats aggregates users, results and usage into the admin overview.
package stats

import (
	"context"
	"time"

	"github.com/LIMSONGJIN/metabank-api/internal/result"
	"github.com/LIMSONGJIN/metabank-api/internal/usagelog"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type UserCounter interface {
	Count(ctx context.Context) (int64, error)
}

type ResultCounter interface {
	Counts(ctx context.Context) (*result.Counts, error)
}

type UsageReader interface {
	GetUsageStats(ctx context.Context) (*usagelog.Stats, error)
	LogsInRange(ctx context.Context, start, end *time.Time) ([]usagelog.RangeRow, error)
}

// UserTotals is the users block of the overview.
type UserTotals struct {
	Total int64 `json:"total"`
}

// UsageTotals is the usage block of the overview.
type UsageTotals struct {
	TotalLogs int64                   `json:"totalLogs"`
	ByClient  []usagelog.ClientCount  `json:"byClient"`
	ByFeature []usagelog.FeatureCount `json:"byFeature"`
}

// Overview is the body of GET /admin/stats.
type Overview struct {
	Users   UserTotals    `json:"users"`
	Results result.Counts `json:"results"`
	Usage   UsageTotals   `json:"usage"`
}

type Service interface {
	Overview(ctx context.Context) (*Overview, error)
	Range(ctx context.Context, start, end *time.Time) ([]usagelog.RangeRow, error)
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	users   UserCounter
	results ResultCounter
	usage   UsageReader
	logger  *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

func NewService(users UserCounter, results ResultCounter, usage UsageReader, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{users: users, results: results, usage: usage, logger: logger.Named("stats")}
}

// Overview reads every counter concurrently. Any failure fails the whole call.
func (s *ServiceImplementation) Overview(ctx context.Context) (*Overview, error) {
	var (
		users   int64
		counts  *result.Counts
		usageSt *usagelog.Stats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = s.users.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		counts, err = s.results.Counts(gctx)
		return err
	})
	g.Go(func() (err error) {
		usageSt, err = s.usage.GetUsageStats(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to build stats overview", zap.Error(err))
		return nil, err
	}

	return &Overview{
		Users:   UserTotals{Total: users},
		Results: *counts,
		Usage: UsageTotals{
			TotalLogs: usageSt.Total,
			ByClient:  usageSt.ByClient,
			ByFeature: usageSt.ByFeature,
		},
	}, nil
}

func (s *ServiceImplementation) Range(ctx context.Context, start, end *time.Time) ([]usagelog.RangeRow, error) {
	return s.usage.LogsInRange(ctx, start, end)
}
