package fitting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LIMSONGJIN/metabank-api/internal/common"
	"github.com/LIMSONGJIN/metabank-api/internal/domain"
	"github.com/LIMSONGJIN/metabank-api/internal/result"
	"github.com/LIMSONGJIN/metabank-api/internal/usagelog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockResultWriter struct {
	mock.Mock
}

func assignID(m *common.BaseModel) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
}

func (m *MockResultWriter) CreateVirtualFitting(ctx context.Context, r *result.VirtualFittingResult) error {
	args := m.Called(ctx, r)
	assignID(&r.BaseModel)
	return args.Error(0)
}

func (m *MockResultWriter) CreateMakeup(ctx context.Context, r *result.MakeupResult) error {
	args := m.Called(ctx, r)
	assignID(&r.BaseModel)
	return args.Error(0)
}

func (m *MockResultWriter) CreateHairFitting(ctx context.Context, r *result.HairFittingResult) error {
	args := m.Called(ctx, r)
	assignID(&r.BaseModel)
	return args.Error(0)
}

func (m *MockResultWriter) CreateVideoFor(ctx context.Context, source *result.VirtualFittingResult, r *result.VideoGenerationResult) error {
	args := m.Called(ctx, source, r)
	r.VirtualFittingResultID = source.ID
	assignID(&r.BaseModel)
	return args.Error(0)
}

func (m *MockResultWriter) GetVirtualFitting(ctx context.Context, id uuid.UUID) (*result.VirtualFittingResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*result.VirtualFittingResult), args.Error(1)
}

type MockUsageRecorder struct {
	mock.Mock
}

func (m *MockUsageRecorder) CreateLog(ctx context.Context, entry usagelog.Entry) (*usagelog.UsageLog, error) {
	args := m.Called(ctx, entry)
	if args.Error(0) != nil {
		return nil, args.Error(0)
	}
	return &usagelog.UsageLog{ClientType: entry.ClientType, FeatureType: entry.FeatureType}, nil
}

func fixedProcessor(at time.Time) *PlaceholderProcessor {
	return &PlaceholderProcessor{now: func() time.Time { return at }}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int { return &i }

var processedAt = time.Date(2024, 3, 9, 12, 30, 15, 123000000, time.UTC)

func TestVirtualFitting_DefaultsAndLog(t *testing.T) {
	results := new(MockResultWriter)
	usage := new(MockUsageRecorder)
	svc := NewService(fixedProcessor(processedAt), results, usage, zap.NewNop())
	ctx := context.Background()

	var stored *result.VirtualFittingResult
	results.On("CreateVirtualFitting", ctx, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*result.VirtualFittingResult)
	}).Return(nil)

	var logged usagelog.Entry
	usage.On("CreateLog", ctx, mock.Anything).Run(func(args mock.Arguments) {
		logged = args.Get(1).(usagelog.Entry)
	}).Return(nil).Once()

	inv := Invocation{ClientType: domain.ClientBogofitApp, SessionID: strPtr("s1"), IPAddress: "10.0.0.1", UserAgent: "ua"}
	resp, err := svc.VirtualFitting(ctx, inv, VirtualFittingRequest{PoseImageURL: "a.jpg"})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, stored.ID, resp.ResultID)
	assert.Equal(t, PlaceholderResultImage, resp.ResultImageURL)
	assert.Equal(t, "2024-03-09T12:30:15.123Z", resp.ProcessedAt)

	assert.Equal(t, DefaultEngine, stored.Engine)
	assert.NotNil(t, stored.Items)
	assert.Empty(t, stored.Items)
	assert.Nil(t, stored.UserID)
	assert.Equal(t, domain.ClientBogofitApp, stored.ClientType)

	assert.Equal(t, domain.FeatureVirtualFitting, logged.FeatureType)
	assert.Equal(t, domain.ClientBogofitApp, logged.ClientType)
	assert.Nil(t, logged.UserID)
	assert.Equal(t, "s1", *logged.SessionID)
	assert.Equal(t, "10.0.0.1", logged.IPAddress)
	assert.Equal(t, map[string]interface{}{
		"resultId":  stored.ID.String(),
		"engine":    "v2",
		"itemCount": 0,
	}, logged.Metadata)

	usage.AssertNumberOfCalls(t, "CreateLog", 1)
}

func TestMakeupAndHair_MetadataOmitsNil(t *testing.T) {
	results := new(MockResultWriter)
	usage := new(MockUsageRecorder)
	svc := NewService(fixedProcessor(processedAt), results, usage, zap.NewNop())
	ctx := context.Background()
	uid := uuid.New()

	results.On("CreateMakeup", ctx, mock.Anything).Return(nil)
	results.On("CreateHairFitting", ctx, mock.Anything).Return(nil)

	var entries []usagelog.Entry
	usage.On("CreateLog", ctx, mock.Anything).Run(func(args mock.Arguments) {
		entries = append(entries, args.Get(1).(usagelog.Entry))
	}).Return(nil)

	inv := Invocation{UserID: &uid, ClientType: domain.ClientBeautyFit}
	mk, err := svc.Makeup(ctx, inv, MakeupRequest{OriginalImageURL: "face.jpg"})
	require.NoError(t, err)
	assert.Equal(t, PlaceholderMakeupImage, mk.ResultImageURL)

	hair, err := svc.HairFitting(ctx, inv, HairFittingRequest{OriginalImageURL: "face.jpg", HairColor: strPtr("brown")})
	require.NoError(t, err)
	assert.Equal(t, PlaceholderHairImage, hair.ResultImageURL)

	require.Len(t, entries, 2)
	assert.Equal(t, map[string]interface{}{"resultId": mk.ResultID.String()}, entries[0].Metadata)
	assert.Equal(t, domain.FeatureMakeup, entries[0].FeatureType)
	assert.Equal(t, uid, *entries[0].UserID)
	assert.Equal(t, map[string]interface{}{"resultId": hair.ResultID.String(), "hairColor": "brown"}, entries[1].Metadata)
	assert.Equal(t, domain.FeatureHairFitting, entries[1].FeatureType)
}

func TestGenerateVideo(t *testing.T) {
	results := new(MockResultWriter)
	usage := new(MockUsageRecorder)
	svc := NewService(fixedProcessor(processedAt), results, usage, zap.NewNop())
	ctx := context.Background()

	vf := &result.VirtualFittingResult{ResultImageURL: PlaceholderResultImage}
	vf.ID = uuid.New()
	results.On("GetVirtualFitting", ctx, vf.ID).Return(vf, nil)

	var stored *result.VideoGenerationResult
	results.On("CreateVideoFor", ctx, vf, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(2).(*result.VideoGenerationResult)
	}).Return(nil)

	var logged usagelog.Entry
	usage.On("CreateLog", ctx, mock.Anything).Run(func(args mock.Arguments) {
		logged = args.Get(1).(usagelog.Entry)
	}).Return(nil)

	resp, err := svc.GenerateVideo(ctx, Invocation{ClientType: domain.ClientShoppingMall}, VideoGenerationRequest{
		VirtualFittingResultID: vf.ID.String(),
		Duration:               intPtr(15),
		Style:                  strPtr("runway"),
	})
	require.NoError(t, err)

	assert.Equal(t, &VideoResponse{
		Success:      true,
		VideoID:      stored.ID,
		VideoURL:     PlaceholderVideo,
		ThumbnailURL: PlaceholderThumbnail,
		Status:       domain.VideoCompleted,
	}, resp)
	assert.Equal(t, vf.ID, stored.VirtualFittingResultID)
	results.AssertNumberOfCalls(t, "GetVirtualFitting", 1)
	assert.Equal(t, domain.FeatureVideoGeneration, logged.FeatureType)
	assert.Equal(t, map[string]interface{}{
		"resultId":               stored.ID.String(),
		"virtualFittingResultId": vf.ID.String(),
		"duration":               15,
		"style":                  "runway",
	}, logged.Metadata)
}

func TestGenerateVideo_UnknownReferenceRecordsNothing(t *testing.T) {
	results := new(MockResultWriter)
	usage := new(MockUsageRecorder)
	svc := NewService(fixedProcessor(processedAt), results, usage, zap.NewNop())
	ctx := context.Background()

	missing := uuid.New()
	results.On("GetVirtualFitting", ctx, missing).Return(nil, common.ErrNotFound.WithMessage("Virtual fitting result not found"))

	for _, ref := range []string{missing.String(), "not-a-uuid"} {
		_, err := svc.GenerateVideo(ctx, Invocation{ClientType: domain.ClientBogofitApp}, VideoGenerationRequest{VirtualFittingResultID: ref})
		require.Error(t, err)
		apiErr, ok := common.IsAPIError(err)
		require.True(t, ok, ref)
		assert.Equal(t, 404, apiErr.StatusCode)
		assert.Equal(t, "Virtual fitting result not found", apiErr.Message)
	}

	results.AssertNotCalled(t, "CreateVideoFor", mock.Anything, mock.Anything, mock.Anything)
	usage.AssertNotCalled(t, "CreateLog", mock.Anything, mock.Anything)
}

func TestFeature_FailuresPropagate(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("insert failed")

	t.Run("result write fails", func(t *testing.T) {
		results := new(MockResultWriter)
		usage := new(MockUsageRecorder)
		svc := NewService(fixedProcessor(processedAt), results, usage, zap.NewNop())
		results.On("CreateMakeup", ctx, mock.Anything).Return(storeErr)

		_, err := svc.Makeup(ctx, Invocation{ClientType: domain.ClientKiosk}, MakeupRequest{OriginalImageURL: "x"})
		assert.ErrorIs(t, err, storeErr)
		usage.AssertNotCalled(t, "CreateLog", mock.Anything, mock.Anything)
	})

	t.Run("usage log fails after result write", func(t *testing.T) {
		results := new(MockResultWriter)
		usage := new(MockUsageRecorder)
		svc := NewService(fixedProcessor(processedAt), results, usage, zap.NewNop())
		results.On("CreateHairFitting", ctx, mock.Anything).Return(nil)
		usage.On("CreateLog", ctx, mock.Anything).Return(storeErr)

		_, err := svc.HairFitting(ctx, Invocation{ClientType: domain.ClientKiosk}, HairFittingRequest{OriginalImageURL: "x"})
		assert.ErrorIs(t, err, storeErr)
		results.AssertNumberOfCalls(t, "CreateHairFitting", 1)
	})

	t.Run("processor honours cancellation", func(t *testing.T) {
		results := new(MockResultWriter)
		usage := new(MockUsageRecorder)
		svc := NewService(fixedProcessor(processedAt), results, usage, zap.NewNop())
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := svc.VirtualFitting(cctx, Invocation{ClientType: domain.ClientKiosk}, VirtualFittingRequest{PoseImageURL: "x"})
		assert.ErrorIs(t, err, context.Canceled)
		results.AssertNotCalled(t, "CreateVirtualFitting", mock.Anything, mock.Anything)
	})
}
