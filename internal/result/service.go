package result

import (
	"context"
	"errors"

	"github.com/LIMSONGJIN/metabank-api/internal/common"
	"github.com/LIMSONGJIN/metabank-api/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service exposes typed result access for feature handlers and the admin console.
type Service interface {
	CreateVirtualFitting(ctx context.Context, r *VirtualFittingResult) error
	CreateMakeup(ctx context.Context, r *MakeupResult) error
	CreateHairFitting(ctx context.Context, r *HairFittingResult) error
	CreateVideo(ctx context.Context, r *VideoGenerationResult) error
	CreateVideoFor(ctx context.Context, source *VirtualFittingResult, r *VideoGenerationResult) error

	GetVirtualFitting(ctx context.Context, id uuid.UUID) (*VirtualFittingResult, error)
	FindAnyByID(ctx context.Context, id uuid.UUID) (*Found, error)

	ListVirtualFittings(ctx context.Context, filter Filter, page, limit int) ([]VirtualFittingResult, common.Pagination, error)
	ListMakeups(ctx context.Context, filter Filter, page, limit int) ([]MakeupResult, common.Pagination, error)
	ListHairFittings(ctx context.Context, filter Filter, page, limit int) ([]HairFittingResult, common.Pagination, error)
	ListVideos(ctx context.Context, filter Filter, page, limit int) ([]VideoGenerationResult, common.Pagination, error)

	Delete(ctx context.Context, kind domain.ResultKind, id uuid.UUID) error
	Counts(ctx context.Context) (*Counts, error)
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new result service.
func NewService(repo Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{repo: repo, logger: logger.Named("result")}
}

func (s *ServiceImplementation) CreateVirtualFitting(ctx context.Context, r *VirtualFittingResult) error {
	return s.repo.CreateVirtualFitting(ctx, r)
}

func (s *ServiceImplementation) CreateMakeup(ctx context.Context, r *MakeupResult) error {
	return s.repo.CreateMakeup(ctx, r)
}

func (s *ServiceImplementation) CreateHairFitting(ctx context.Context, r *HairFittingResult) error {
	return s.repo.CreateHairFitting(ctx, r)
}

// GetVirtualFitting reports a missing record as 404 "Virtual fitting result not found".
func (s *ServiceImplementation) GetVirtualFitting(ctx context.Context, id uuid.UUID) (*VirtualFittingResult, error) {
	vf, err := s.repo.FindVirtualFittingByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound.WithMessage("Virtual fitting result not found")
		}
		return nil, err
	}
	return vf, nil
}

// CreateVideo fails with 404 when the referenced virtual fitting does not exist.
func (s *ServiceImplementation) CreateVideo(ctx context.Context, r *VideoGenerationResult) error {
	source, err := s.GetVirtualFitting(ctx, r.VirtualFittingResultID)
	if err != nil {
		return err
	}
	return s.CreateVideoFor(ctx, source, r)
}

// CreateVideoFor stores r against a virtual fitting the caller has already loaded.
func (s *ServiceImplementation) CreateVideoFor(ctx context.Context, source *VirtualFittingResult, r *VideoGenerationResult) error {
	r.VirtualFittingResultID = source.ID
	return s.repo.CreateVideo(ctx, r)
}

func (s *ServiceImplementation) FindAnyByID(ctx context.Context, id uuid.UUID) (*Found, error) {
	return s.repo.FindAnyByID(ctx, id)
}

func (s *ServiceImplementation) ListVirtualFittings(ctx context.Context, filter Filter, page, limit int) ([]VirtualFittingResult, common.Pagination, error) {
	page, limit = common.NormalizePage(page, limit)
	recs, total, err := s.repo.ListVirtualFittings(ctx, filter, common.Offset(page, limit), limit)
	if err != nil {
		return nil, common.Pagination{}, err
	}
	if recs == nil {
		recs = []VirtualFittingResult{}
	}
	return recs, common.NewPagination(total, page, limit), nil
}

func (s *ServiceImplementation) ListMakeups(ctx context.Context, filter Filter, page, limit int) ([]MakeupResult, common.Pagination, error) {
	page, limit = common.NormalizePage(page, limit)
	recs, total, err := s.repo.ListMakeups(ctx, filter, common.Offset(page, limit), limit)
	if err != nil {
		return nil, common.Pagination{}, err
	}
	if recs == nil {
		recs = []MakeupResult{}
	}
	return recs, common.NewPagination(total, page, limit), nil
}

func (s *ServiceImplementation) ListHairFittings(ctx context.Context, filter Filter, page, limit int) ([]HairFittingResult, common.Pagination, error) {
	page, limit = common.NormalizePage(page, limit)
	recs, total, err := s.repo.ListHairFittings(ctx, filter, common.Offset(page, limit), limit)
	if err != nil {
		return nil, common.Pagination{}, err
	}
	if recs == nil {
		recs = []HairFittingResult{}
	}
	return recs, common.NewPagination(total, page, limit), nil
}

func (s *ServiceImplementation) ListVideos(ctx context.Context, filter Filter, page, limit int) ([]VideoGenerationResult, common.Pagination, error) {
	page, limit = common.NormalizePage(page, limit)
	recs, total, err := s.repo.ListVideos(ctx, filter, common.Offset(page, limit), limit)
	if err != nil {
		return nil, common.Pagination{}, err
	}
	if recs == nil {
		recs = []VideoGenerationResult{}
	}
	return recs, common.NewPagination(total, page, limit), nil
}

func (s *ServiceImplementation) Delete(ctx context.Context, kind domain.ResultKind, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, kind, id); err != nil {
		return err
	}
	s.logger.Info("Result deleted", zap.String("kind", string(kind)), zap.String("id", id.String()))
	return nil
}

// Counts reads the four table sizes concurrently.
func (s *ServiceImplementation) Counts(ctx context.Context) (*Counts, error) {
	var c Counts
	g, gctx := errgroup.WithContext(ctx)
	for kind, dst := range map[domain.ResultKind]*int64{
		domain.KindVirtualFitting: &c.VirtualFitting,
		domain.KindMakeup:         &c.Makeup,
		domain.KindHairFitting:    &c.HairFitting,
		domain.KindVideo:          &c.Videos,
	} {
		kind, dst := kind, dst
		g.Go(func() error {
			n, err := s.repo.Count(gctx, kind)
			*dst = n
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	c.Total = c.VirtualFitting + c.Makeup + c.HairFitting + c.Videos
	return &c, nil
}
