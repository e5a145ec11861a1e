package fitting

import (
	"context"
	"fmt"

	"github.com/LIMSONGJIN/metabank-api/internal/common"
	"github.com/LIMSONGJIN/metabank-api/internal/domain"
	"github.com/LIMSONGJIN/metabank-api/internal/result"
	"github.com/LIMSONGJIN/metabank-api/internal/usagelog"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// ResultWriter is the part of result.Service the features write through.
type ResultWriter interface {
	CreateVirtualFitting(ctx context.Context, r *result.VirtualFittingResult) error
	CreateMakeup(ctx context.Context, r *result.MakeupResult) error
	CreateHairFitting(ctx context.Context, r *result.HairFittingResult) error
	CreateVideoFor(ctx context.Context, source *result.VirtualFittingResult, r *result.VideoGenerationResult) error
	GetVirtualFitting(ctx context.Context, id uuid.UUID) (*result.VirtualFittingResult, error)
}

// UsageRecorder is the part of usagelog.Service the features write through.
type UsageRecorder interface {
	CreateLog(ctx context.Context, entry usagelog.Entry) (*usagelog.UsageLog, error)
}

// Service runs a feature end to end: process, store the result, record usage.
// The result write and the usage log are independent; a failed log leaves
// the result in place and fails the request.
type Service interface {
	VirtualFitting(ctx context.Context, inv Invocation, req VirtualFittingRequest) (*FeatureResponse, error)
	Makeup(ctx context.Context, inv Invocation, req MakeupRequest) (*FeatureResponse, error)
	HairFitting(ctx context.Context, inv Invocation, req HairFittingRequest) (*FeatureResponse, error)
	GenerateVideo(ctx context.Context, inv Invocation, req VideoGenerationRequest) (*VideoResponse, error)
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	processor Processor
	results   ResultWriter
	usage     UsageRecorder
	logger    *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new fitting service.
func NewService(processor Processor, results ResultWriter, usage UsageRecorder, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		processor: processor,
		results:   results,
		usage:     usage,
		logger:    logger.Named("fitting"),
	}
}

func (s *ServiceImplementation) record(ctx context.Context, inv Invocation, feature domain.FeatureType, meta map[string]interface{}) error {
	_, err := s.usage.CreateLog(ctx, usagelog.Entry{
		UserID:      inv.UserID,
		ClientType:  inv.ClientType,
		FeatureType: feature,
		SessionID:   inv.SessionID,
		Metadata:    meta,
		IPAddress:   inv.IPAddress,
		UserAgent:   inv.UserAgent,
	})
	return err
}

func (s *ServiceImplementation) VirtualFitting(ctx context.Context, inv Invocation, req VirtualFittingRequest) (*FeatureResponse, error) {
	engine := req.Engine
	if engine == "" {
		engine = DefaultEngine
	}
	items := pq.StringArray(req.Items)
	if items == nil {
		items = pq.StringArray{}
	}

	out, err := s.processor.VirtualFitting(ctx, req.PoseImageURL, engine, items)
	if err != nil {
		return nil, fmt.Errorf("virtual fitting processor: %w", err)
	}

	rec := &result.VirtualFittingResult{
		UserID:         inv.UserID,
		ClientType:     inv.ClientType,
		PoseImageURL:   req.PoseImageURL,
		ResultImageURL: out.ResultImageURL,
		Engine:         engine,
		Items:          items,
	}
	if err := s.results.CreateVirtualFitting(ctx, rec); err != nil {
		return nil, err
	}

	if err := s.record(ctx, inv, domain.FeatureVirtualFitting, metadata(
		"resultId", rec.ID.String(),
		"engine", engine,
		"itemCount", len(items),
	)); err != nil {
		return nil, err
	}

	s.logger.Debug("Virtual fitting completed",
		zap.String("resultID", rec.ID.String()),
		zap.String("clientType", string(inv.ClientType)),
	)
	return newFeatureResponse(rec.ID, out), nil
}

func (s *ServiceImplementation) Makeup(ctx context.Context, inv Invocation, req MakeupRequest) (*FeatureResponse, error) {
	out, err := s.processor.Makeup(ctx, req.OriginalImageURL, req.Style)
	if err != nil {
		return nil, fmt.Errorf("makeup processor: %w", err)
	}

	rec := &result.MakeupResult{
		UserID:           inv.UserID,
		ClientType:       inv.ClientType,
		OriginalImageURL: req.OriginalImageURL,
		ResultImageURL:   out.ResultImageURL,
		Style:            req.Style,
	}
	if err := s.results.CreateMakeup(ctx, rec); err != nil {
		return nil, err
	}

	if err := s.record(ctx, inv, domain.FeatureMakeup, metadata(
		"resultId", rec.ID.String(),
		"style", req.Style,
	)); err != nil {
		return nil, err
	}
	return newFeatureResponse(rec.ID, out), nil
}

func (s *ServiceImplementation) HairFitting(ctx context.Context, inv Invocation, req HairFittingRequest) (*FeatureResponse, error) {
	out, err := s.processor.HairFitting(ctx, req.OriginalImageURL, req.HairStyle, req.HairColor)
	if err != nil {
		return nil, fmt.Errorf("hair fitting processor: %w", err)
	}

	rec := &result.HairFittingResult{
		UserID:           inv.UserID,
		ClientType:       inv.ClientType,
		OriginalImageURL: req.OriginalImageURL,
		ResultImageURL:   out.ResultImageURL,
		HairStyle:        req.HairStyle,
		HairColor:        req.HairColor,
	}
	if err := s.results.CreateHairFitting(ctx, rec); err != nil {
		return nil, err
	}

	if err := s.record(ctx, inv, domain.FeatureHairFitting, metadata(
		"resultId", rec.ID.String(),
		"hairStyle", req.HairStyle,
		"hairColor", req.HairColor,
	)); err != nil {
		return nil, err
	}
	return newFeatureResponse(rec.ID, out), nil
}

// GenerateVideo renders a video from an existing virtual fitting. An unknown
// or malformed reference is a 404 and records nothing.
func (s *ServiceImplementation) GenerateVideo(ctx context.Context, inv Invocation, req VideoGenerationRequest) (*VideoResponse, error) {
	vfID, err := uuid.Parse(req.VirtualFittingResultID)
	if err != nil {
		return nil, common.ErrNotFound.WithMessage("Virtual fitting result not found")
	}
	source, err := s.results.GetVirtualFitting(ctx, vfID)
	if err != nil {
		return nil, err
	}

	out, err := s.processor.GenerateVideo(ctx, source.ResultImageURL, req.Duration, req.Style)
	if err != nil {
		return nil, fmt.Errorf("video processor: %w", err)
	}

	thumb := out.ThumbnailURL
	rec := &result.VideoGenerationResult{
		UserID:       inv.UserID,
		ClientType:   inv.ClientType,
		VideoURL:     out.VideoURL,
		ThumbnailURL: &thumb,
		Duration:     req.Duration,
		Style:        req.Style,
		Status:       domain.VideoCompleted,
	}
	if err := s.results.CreateVideoFor(ctx, source, rec); err != nil {
		return nil, err
	}

	if err := s.record(ctx, inv, domain.FeatureVideoGeneration, metadata(
		"resultId", rec.ID.String(),
		"virtualFittingResultId", vfID.String(),
		"duration", req.Duration,
		"style", req.Style,
	)); err != nil {
		return nil, err
	}

	return &VideoResponse{
		Success:      true,
		VideoID:      rec.ID,
		VideoURL:     out.VideoURL,
		ThumbnailURL: out.ThumbnailURL,
		Status:       rec.Status,
	}, nil
}
