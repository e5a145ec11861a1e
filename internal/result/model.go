// File: internal/result/model.go
package result

import (
	"github.com/LIMSONGJIN/metabank-api/internal/common"
	"github.com/LIMSONGJIN/metabank-api/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// VirtualFittingResult is the stored outcome of one virtual fitting.
type VirtualFittingResult struct {
	common.BaseModel
	UserID         *uuid.UUID        `gorm:"type:uuid;index" json:"userId"`
	ClientType     domain.ClientType `gorm:"type:varchar(32);not null;index" json:"clientType"`
	PoseImageURL   string            `gorm:"type:text;not null" json:"poseImageUrl"`
	ResultImageURL string            `gorm:"type:text;not null" json:"resultImageUrl"`
	Engine         string            `gorm:"type:varchar(32);not null" json:"engine"`
	Items          pq.StringArray    `gorm:"type:text[]" json:"items"`

	Videos []VideoGenerationResult `gorm:"foreignKey:VirtualFittingResultID;constraint:OnDelete:CASCADE" json:"videos,omitempty"`
}

func (VirtualFittingResult) TableName() string {
	return "virtual_fitting_results"
}

// MakeupResult is the stored outcome of one makeup simulation.
type MakeupResult struct {
	common.BaseModel
	UserID           *uuid.UUID        `gorm:"type:uuid;index" json:"userId"`
	ClientType       domain.ClientType `gorm:"type:varchar(32);not null;index" json:"clientType"`
	OriginalImageURL string            `gorm:"type:text;not null" json:"originalImageUrl"`
	ResultImageURL   string            `gorm:"type:text;not null" json:"resultImageUrl"`
	Style            *string           `gorm:"type:varchar(100)" json:"style"`
}

func (MakeupResult) TableName() string {
	return "makeup_results"
}

// HairFittingResult is the stored outcome of one hair fitting.
type HairFittingResult struct {
	common.BaseModel
	UserID           *uuid.UUID        `gorm:"type:uuid;index" json:"userId"`
	ClientType       domain.ClientType `gorm:"type:varchar(32);not null;index" json:"clientType"`
	OriginalImageURL string            `gorm:"type:text;not null" json:"originalImageUrl"`
	ResultImageURL   string            `gorm:"type:text;not null" json:"resultImageUrl"`
	HairStyle        *string           `gorm:"type:varchar(100)" json:"hairStyle"`
	HairColor        *string           `gorm:"type:varchar(100)" json:"hairColor"`
}

func (HairFittingResult) TableName() string {
	return "hair_fitting_results"
}

// VideoGenerationResult is a video rendered from a virtual fitting.
// VirtualFittingResultID must reference an existing VirtualFittingResult.
type VideoGenerationResult struct {
	common.BaseModel
	UserID                 *uuid.UUID         `gorm:"type:uuid;index" json:"userId"`
	ClientType             domain.ClientType  `gorm:"type:varchar(32);not null;index" json:"clientType"`
	VirtualFittingResultID uuid.UUID          `gorm:"type:uuid;not null;index" json:"virtualFittingResultId"`
	VideoURL               string             `gorm:"type:text;not null" json:"videoUrl"`
	ThumbnailURL           *string            `gorm:"type:text" json:"thumbnailUrl"`
	Duration               *int               `json:"duration"`
	Style                  *string            `gorm:"type:varchar(100)" json:"style"`
	Status                 domain.VideoStatus `gorm:"type:varchar(16);not null;index" json:"status"`

	VirtualFittingResult *VirtualFittingResult `gorm:"foreignKey:VirtualFittingResultID;constraint:OnDelete:CASCADE" json:"virtualFittingResult,omitempty"`
}

func (VideoGenerationResult) TableName() string {
	return "video_generation_results"
}

// Models lists every result table in migration order.
func Models() []interface{} {
	return []interface{}{
		&VirtualFittingResult{},
		&MakeupResult{},
		&HairFittingResult{},
		&VideoGenerationResult{},
	}
}

// Filter narrows admin listings. Zero values match everything.
type Filter struct {
	ClientType domain.ClientType
	Status     domain.VideoStatus
}

// Found is the outcome of a cross-kind lookup.
type Found struct {
	Kind   domain.ResultKind
	Record interface{}
}

// Counts holds the row count of each result table.
type Counts struct {
	VirtualFitting int64 `json:"virtualFitting"`
	Makeup         int64 `json:"makeup"`
	HairFitting    int64 `json:"hairFitting"`
	Videos         int64 `json:"videos"`
	Total          int64 `json:"total"`
}
