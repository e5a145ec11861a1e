package fitting

import (
	"github.com/LIMSONGJIN/metabank-api/internal/domain"

	"github.com/google/uuid"
)

// DefaultEngine is used when a virtual fitting request names no engine.
const DefaultEngine = "v2"

// processedAtLayout renders timestamps as UTC RFC 3339 with milliseconds.
const processedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// Invocation carries the request context every feature records.
type Invocation struct {
	UserID     *uuid.UUID
	ClientType domain.ClientType
	SessionID  *string
	IPAddress  string
	UserAgent  string
}

type VirtualFittingRequest struct {
	PoseImageURL string   `json:"poseImageUrl" binding:"required"`
	Engine       string   `json:"engine" binding:"omitempty,max=32"`
	Items        []string `json:"items"`
	SessionID    *string  `json:"sessionId"`
}

type MakeupRequest struct {
	OriginalImageURL string  `json:"originalImageUrl" binding:"required"`
	Style            *string `json:"style" binding:"omitempty,max=100"`
	SessionID        *string `json:"sessionId"`
}

type HairFittingRequest struct {
	OriginalImageURL string  `json:"originalImageUrl" binding:"required"`
	HairStyle        *string `json:"hairStyle" binding:"omitempty,max=100"`
	HairColor        *string `json:"hairColor" binding:"omitempty,max=100"`
	SessionID        *string `json:"sessionId"`
}

// VideoGenerationRequest keeps the reference as a string so that malformed
// ids resolve to the same 404 as unknown ones.
type VideoGenerationRequest struct {
	VirtualFittingResultID string  `json:"virtualFittingResultId" binding:"required"`
	Duration               *int    `json:"duration" binding:"omitempty,gt=0"`
	Style                  *string `json:"style" binding:"omitempty,max=100"`
	SessionID              *string `json:"sessionId"`
}

// FeatureResponse is returned by the image features.
type FeatureResponse struct {
	Success        bool      `json:"success"`
	ResultID       uuid.UUID `json:"resultId"`
	ResultImageURL string    `json:"resultImageUrl"`
	ProcessedAt    string    `json:"processedAt"`
}

// VideoResponse is returned by video generation.
type VideoResponse struct {
	Success      bool               `json:"success"`
	VideoID      uuid.UUID          `json:"videoId"`
	VideoURL     string             `json:"videoUrl"`
	ThumbnailURL string             `json:"thumbnailUrl"`
	Status       domain.VideoStatus `json:"status"`
}

func newFeatureResponse(id uuid.UUID, out ImageOutput) *FeatureResponse {
	return &FeatureResponse{
		Success:        true,
		ResultID:       id,
		ResultImageURL: out.ResultImageURL,
		ProcessedAt:    out.ProcessedAt.UTC().Format(processedAtLayout),
	}
}

// metadata drops nil optional values the way an omitted JSON field would be.
func metadata(pairs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		key := pairs[i].(string)
		switch v := pairs[i+1].(type) {
		case *string:
			if v != nil {
				m[key] = *v
			}
		case *int:
			if v != nil {
				m[key] = *v
			}
		default:
			m[key] = v
		}
	}
	return m
}
