package fitting

import (
	"context"
	"time"
)

// Placeholder asset URLs returned until a real image pipeline is attached.
const (
	PlaceholderResultImage = "https://placeholder.com/result.jpg"
	PlaceholderMakeupImage = "https://placeholder.com/makeup-result.jpg"
	PlaceholderHairImage   = "https://placeholder.com/hair-result.jpg"
	PlaceholderVideo       = "https://placeholder.com/video.mp4"
	PlaceholderThumbnail   = "https://placeholder.com/thumbnail.jpg"
)

// ImageOutput is what a processor returns for image features.
type ImageOutput struct {
	ResultImageURL string
	ProcessedAt    time.Time
}

// VideoOutput is what a processor returns for video generation.
type VideoOutput struct {
	VideoURL     string
	ThumbnailURL string
}

// Processor renders feature outputs. Implementations talk to the AI backend.
type Processor interface {
	VirtualFitting(ctx context.Context, poseImageURL, engine string, items []string) (ImageOutput, error)
	Makeup(ctx context.Context, originalImageURL string, style *string) (ImageOutput, error)
	HairFitting(ctx context.Context, originalImageURL string, hairStyle, hairColor *string) (ImageOutput, error)
	GenerateVideo(ctx context.Context, sourceImageURL string, duration *int, style *string) (VideoOutput, error)
}

// PlaceholderProcessor answers every call immediately with fixed URLs.
type PlaceholderProcessor struct {
	now func() time.Time
}

var _ Processor = (*PlaceholderProcessor)(nil)

func NewPlaceholderProcessor() *PlaceholderProcessor {
	return &PlaceholderProcessor{now: time.Now}
}

func (p *PlaceholderProcessor) image(url string) ImageOutput {
	return ImageOutput{ResultImageURL: url, ProcessedAt: p.now().UTC()}
}

func (p *PlaceholderProcessor) VirtualFitting(ctx context.Context, poseImageURL, engine string, items []string) (ImageOutput, error) {
	return p.image(PlaceholderResultImage), ctx.Err()
}

func (p *PlaceholderProcessor) Makeup(ctx context.Context, originalImageURL string, style *string) (ImageOutput, error) {
	return p.image(PlaceholderMakeupImage), ctx.Err()
}

func (p *PlaceholderProcessor) HairFitting(ctx context.Context, originalImageURL string, hairStyle, hairColor *string) (ImageOutput, error) {
	return p.image(PlaceholderHairImage), ctx.Err()
}

func (p *PlaceholderProcessor) GenerateVideo(ctx context.Context, sourceImageURL string, duration *int, style *string) (VideoOutput, error) {
	return VideoOutput{VideoURL: PlaceholderVideo, ThumbnailURL: PlaceholderThumbnail}, ctx.Err()
}
