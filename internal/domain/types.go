package domain

import (
	"strings"

	"github.com/google/uuid"
)

// ClientType identifies which client surface issued a request.
type ClientType string

const (
	ClientKiosk        ClientType = "KIOSK"
	ClientBogofitApp   ClientType = "BOGOFIT_APP"
	ClientShoppingMall ClientType = "SHOPPING_MALL_WEB"
	ClientBeautyFit    ClientType = "BEAUTY_FIT"
)

var clientTypes = []ClientType{ClientKiosk, ClientBogofitApp, ClientShoppingMall, ClientBeautyFit}

// ClientTypes lists the accepted client types in their canonical order.
func ClientTypes() []ClientType {
	out := make([]ClientType, len(clientTypes))
	copy(out, clientTypes)
	return out
}

// ParseClientType matches s exactly against the known client types.
func ParseClientType(s string) (ClientType, bool) {
	for _, ct := range clientTypes {
		if string(ct) == s {
			return ct, true
		}
	}
	return "", false
}

// ClientTypeList renders the accepted client types as "A, B, C".
func ClientTypeList() string {
	names := make([]string, len(clientTypes))
	for i, ct := range clientTypes {
		names[i] = string(ct)
	}
	return strings.Join(names, ", ")
}

// FeatureType identifies a fitting feature.
type FeatureType string

const (
	FeatureVirtualFitting  FeatureType = "VIRTUAL_FITTING"
	FeatureMakeup          FeatureType = "MAKEUP"
	FeatureHairFitting     FeatureType = "HAIR_FITTING"
	FeatureVideoGeneration FeatureType = "VIDEO_GENERATION"
)

var featureTypes = []FeatureType{FeatureVirtualFitting, FeatureMakeup, FeatureHairFitting, FeatureVideoGeneration}

// ParseFeatureType matches s exactly against the known feature types.
func ParseFeatureType(s string) (FeatureType, bool) {
	for _, ft := range featureTypes {
		if string(ft) == s {
			return ft, true
		}
	}
	return "", false
}

// Role is a user's authorization role.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole matches s exactly against USER and ADMIN.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// AuthProvider records how an account was created.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderKakao  AuthProvider = "KAKAO"
	ProviderGoogle AuthProvider = "GOOGLE"
	ProviderApple  AuthProvider = "APPLE"
)

// VideoStatus is the processing state of a generated video.
type VideoStatus string

const (
	VideoPending    VideoStatus = "PENDING"
	VideoProcessing VideoStatus = "PROCESSING"
	VideoCompleted  VideoStatus = "COMPLETED"
	VideoFailed     VideoStatus = "FAILED"
)

// ParseVideoStatus matches s exactly against the known video states.
func ParseVideoStatus(s string) (VideoStatus, bool) {
	switch VideoStatus(s) {
	case VideoPending, VideoProcessing, VideoCompleted, VideoFailed:
		return VideoStatus(s), true
	}
	return "", false
}

// ResultKind names one of the four result tables.
type ResultKind string

const (
	KindVirtualFitting ResultKind = "virtual-fitting"
	KindMakeup         ResultKind = "makeup"
	KindHairFitting    ResultKind = "hair-fitting"
	KindVideo          ResultKind = "video"
)

// ParseResultKind accepts the path segment used by the admin delete route.
func ParseResultKind(s string) (ResultKind, bool) {
	switch ResultKind(s) {
	case KindVirtualFitting, KindMakeup, KindHairFitting, KindVideo:
		return ResultKind(s), true
	}
	return "", false
}

// Identity is the authenticated caller extracted from a bearer token.
type Identity struct {
	UserID      uuid.UUID
	Email       string
	PhoneNumber string
	Role        Role
}

// IsAdmin reports whether the identity carries the ADMIN role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
