// File: internal/usagelog/model.go
package usagelog

import (
	"time"

	"github.com/LIMSONGJIN/metabank-api/internal/common"
	"github.com/LIMSONGJIN/metabank-api/internal/domain"

	"github.com/google/uuid"
)

// UsageLog is one recorded feature invocation.
type UsageLog struct {
	common.BaseModel
	UserID      *uuid.UUID             `gorm:"type:uuid;index" json:"userId"`
	ClientType  domain.ClientType      `gorm:"type:varchar(32);not null;index" json:"clientType"`
	FeatureType domain.FeatureType     `gorm:"type:varchar(32);not null;index" json:"featureType"`
	SessionID   *string                `gorm:"type:varchar(255)" json:"sessionId"`
	Metadata    map[string]interface{} `gorm:"type:jsonb;serializer:json" json:"metadata"`
	IPAddress   *string                `gorm:"type:varchar(64)" json:"ipAddress"`
	UserAgent   *string                `gorm:"type:text" json:"userAgent"`

	// User is attached by admin listings only.
	User *UserSummary `gorm:"-" json:"user,omitempty"`
}

// TableName specifies the table name for the UsageLog model.
func (UsageLog) TableName() string {
	return "usage_logs"
}

// UserSummary is the slice of a user shown next to a log entry.
type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Email *string   `json:"email"`
	Name  *string   `json:"name"`
}

func (UserSummary) TableName() string {
	return "users"
}

// Entry is the input of Service.CreateLog.
type Entry struct {
	UserID      *uuid.UUID
	ClientType  domain.ClientType
	FeatureType domain.FeatureType
	SessionID   *string
	Metadata    map[string]interface{}
	IPAddress   string
	UserAgent   string
}

// Filter narrows admin listings. Zero values match everything.
type Filter struct {
	ClientType  domain.ClientType
	FeatureType domain.FeatureType
}

// ClientCount is one bucket of the per-client breakdown.
type ClientCount struct {
	ClientType domain.ClientType `json:"clientType"`
	Count      int64             `json:"count"`
}

// FeatureCount is one bucket of the per-feature breakdown.
type FeatureCount struct {
	FeatureType domain.FeatureType `json:"featureType"`
	Count       int64              `json:"count"`
}

// Stats aggregates the whole usage log.
type Stats struct {
	Total     int64          `json:"total"`
	ByClient  []ClientCount  `json:"byClient"`
	ByFeature []FeatureCount `json:"byFeature"`
}

// RangeRow is the slim projection returned for date-range queries.
type RangeRow struct {
	ClientType  domain.ClientType  `json:"clientType"`
	FeatureType domain.FeatureType `json:"featureType"`
	CreatedAt   time.Time          `json:"createdAt"`
}
