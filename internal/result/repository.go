// File: internal/result/repository.go
package result

import (
	"context"
	"errors"
	"fmt"

	"github.com/LIMSONGJIN/metabank-api/internal/common"
	"github.com/LIMSONGJIN/metabank-api/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Repository defines persistence for the four result kinds.
type Repository interface {
	CreateVirtualFitting(ctx context.Context, r *VirtualFittingResult) error
	CreateMakeup(ctx context.Context, r *MakeupResult) error
	CreateHairFitting(ctx context.Context, r *HairFittingResult) error
	CreateVideo(ctx context.Context, r *VideoGenerationResult) error

	FindVirtualFittingByID(ctx context.Context, id uuid.UUID) (*VirtualFittingResult, error)
	FindMakeupByID(ctx context.Context, id uuid.UUID) (*MakeupResult, error)
	FindHairFittingByID(ctx context.Context, id uuid.UUID) (*HairFittingResult, error)
	FindVideoByID(ctx context.Context, id uuid.UUID) (*VideoGenerationResult, error)
	FindAnyByID(ctx context.Context, id uuid.UUID) (*Found, error)

	ListVirtualFittings(ctx context.Context, filter Filter, offset, limit int) ([]VirtualFittingResult, int64, error)
	ListMakeups(ctx context.Context, filter Filter, offset, limit int) ([]MakeupResult, int64, error)
	ListHairFittings(ctx context.Context, filter Filter, offset, limit int) ([]HairFittingResult, int64, error)
	ListVideos(ctx context.Context, filter Filter, offset, limit int) ([]VideoGenerationResult, int64, error)

	Delete(ctx context.Context, kind domain.ResultKind, id uuid.UUID) error
	Count(ctx context.Context, kind domain.ResultKind) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM result repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func modelFor(kind domain.ResultKind) (interface{}, error) {
	switch kind {
	case domain.KindVirtualFitting:
		return &VirtualFittingResult{}, nil
	case domain.KindMakeup:
		return &MakeupResult{}, nil
	case domain.KindHairFitting:
		return &HairFittingResult{}, nil
	case domain.KindVideo:
		return &VideoGenerationResult{}, nil
	}
	return nil, common.ErrBadRequest.WithMessage("Invalid result type")
}

func (r *gormRepository) create(ctx context.Context, kind domain.ResultKind, record interface{}) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("creating %s result: %w", kind, err)
	}
	return nil
}

func (r *gormRepository) CreateVirtualFitting(ctx context.Context, rec *VirtualFittingResult) error {
	if rec.Items == nil {
		rec.Items = []string{}
	}
	return r.create(ctx, domain.KindVirtualFitting, rec)
}

func (r *gormRepository) CreateMakeup(ctx context.Context, rec *MakeupResult) error {
	return r.create(ctx, domain.KindMakeup, rec)
}

func (r *gormRepository) CreateHairFitting(ctx context.Context, rec *HairFittingResult) error {
	return r.create(ctx, domain.KindHairFitting, rec)
}

// CreateVideo relies on the caller having checked the referenced virtual fitting.
func (r *gormRepository) CreateVideo(ctx context.Context, rec *VideoGenerationResult) error {
	return r.create(ctx, domain.KindVideo, rec)
}

// first loads one row by id into dest and maps a missing row to ErrNotFound.
func first(q *gorm.DB, dest interface{}, id uuid.UUID, kind domain.ResultKind) error {
	err := q.Where("id = ?", id).First(dest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrNotFound.WithMessage("Result not found")
		}
		return fmt.Errorf("finding %s result %s: %w", kind, id, err)
	}
	return nil
}

func (r *gormRepository) FindVirtualFittingByID(ctx context.Context, id uuid.UUID) (*VirtualFittingResult, error) {
	var rec VirtualFittingResult
	q := r.db.WithContext(ctx).Preload("Videos", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC")
	})
	if err := first(q, &rec, id, domain.KindVirtualFitting); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *gormRepository) FindMakeupByID(ctx context.Context, id uuid.UUID) (*MakeupResult, error) {
	var rec MakeupResult
	if err := first(r.db.WithContext(ctx), &rec, id, domain.KindMakeup); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *gormRepository) FindHairFittingByID(ctx context.Context, id uuid.UUID) (*HairFittingResult, error) {
	var rec HairFittingResult
	if err := first(r.db.WithContext(ctx), &rec, id, domain.KindHairFitting); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *gormRepository) FindVideoByID(ctx context.Context, id uuid.UUID) (*VideoGenerationResult, error) {
	var rec VideoGenerationResult
	if err := first(r.db.WithContext(ctx).Preload("VirtualFittingResult"), &rec, id, domain.KindVideo); err != nil {
		return nil, err
	}
	return &rec, nil
}

// FindAnyByID probes all four tables concurrently, then resolves in the fixed
// order virtual-fitting, makeup, hair-fitting, video. A store failure in any
// probe fails the lookup.
func (r *gormRepository) FindAnyByID(ctx context.Context, id uuid.UUID) (*Found, error) {
	var (
		vf    *VirtualFittingResult
		mk    *MakeupResult
		hair  *HairFittingResult
		video *VideoGenerationResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		vf, err = r.FindVirtualFittingByID(gctx, id)
		return ignoreNotFound(err)
	})
	g.Go(func() (err error) {
		mk, err = r.FindMakeupByID(gctx, id)
		return ignoreNotFound(err)
	})
	g.Go(func() (err error) {
		hair, err = r.FindHairFittingByID(gctx, id)
		return ignoreNotFound(err)
	})
	g.Go(func() (err error) {
		video, err = r.FindVideoByID(gctx, id)
		return ignoreNotFound(err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	switch {
	case vf != nil:
		return &Found{Kind: domain.KindVirtualFitting, Record: vf}, nil
	case mk != nil:
		return &Found{Kind: domain.KindMakeup, Record: mk}, nil
	case hair != nil:
		return &Found{Kind: domain.KindHairFitting, Record: hair}, nil
	case video != nil:
		return &Found{Kind: domain.KindVideo, Record: video}, nil
	}
	return nil, common.ErrNotFound.WithMessage("Result not found")
}

func ignoreNotFound(err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	return err
}

func scoped(q *gorm.DB, filter Filter) *gorm.DB {
	if filter.ClientType != "" {
		q = q.Where("client_type = ?", filter.ClientType)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	return q
}

// page counts the filtered rows of model and loads one page into dest, newest first.
func (r *gormRepository) page(ctx context.Context, model, dest interface{}, filter Filter, offset, limit int, preload ...string) (int64, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := scoped(db.Model(model), filter).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("counting results: %w", err)
	}

	q := scoped(db.Model(model), filter)
	for _, p := range preload {
		q = q.Preload(p)
	}
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(dest).Error; err != nil {
		return 0, fmt.Errorf("listing results: %w", err)
	}
	return total, nil
}

func (r *gormRepository) ListVirtualFittings(ctx context.Context, filter Filter, offset, limit int) ([]VirtualFittingResult, int64, error) {
	filter.Status = ""
	var recs []VirtualFittingResult
	total, err := r.page(ctx, &VirtualFittingResult{}, &recs, filter, offset, limit, "Videos")
	return recs, total, err
}

func (r *gormRepository) ListMakeups(ctx context.Context, filter Filter, offset, limit int) ([]MakeupResult, int64, error) {
	filter.Status = ""
	var recs []MakeupResult
	total, err := r.page(ctx, &MakeupResult{}, &recs, filter, offset, limit)
	return recs, total, err
}

func (r *gormRepository) ListHairFittings(ctx context.Context, filter Filter, offset, limit int) ([]HairFittingResult, int64, error) {
	filter.Status = ""
	var recs []HairFittingResult
	total, err := r.page(ctx, &HairFittingResult{}, &recs, filter, offset, limit)
	return recs, total, err
}

func (r *gormRepository) ListVideos(ctx context.Context, filter Filter, offset, limit int) ([]VideoGenerationResult, int64, error) {
	var recs []VideoGenerationResult
	total, err := r.page(ctx, &VideoGenerationResult{}, &recs, filter, offset, limit, "VirtualFittingResult")
	return recs, total, err
}

// Delete removes one result. Deleting a virtual fitting also removes its videos.
func (r *gormRepository) Delete(ctx context.Context, kind domain.ResultKind, id uuid.UUID) error {
	model, err := modelFor(kind)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if kind == domain.KindVirtualFitting {
			if err := tx.Where("virtual_fitting_result_id = ?", id).Delete(&VideoGenerationResult{}).Error; err != nil {
				return fmt.Errorf("deleting videos of %s: %w", id, err)
			}
		}
		res := tx.Where("id = ?", id).Delete(model)
		if res.Error != nil {
			return fmt.Errorf("deleting %s result %s: %w", kind, id, res.Error)
		}
		if res.RowsAffected == 0 {
			return common.ErrNotFound.WithMessage("Result not found")
		}
		return nil
	})
}

func (r *gormRepository) Count(ctx context.Context, kind domain.ResultKind) (int64, error) {
	model, err := modelFor(kind)
	if err != nil {
		return 0, err
	}
	var total int64
	if err := r.db.WithContext(ctx).Model(model).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("counting %s results: %w", kind, err)
	}
	return total, nil
}
