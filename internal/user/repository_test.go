package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LIMSONGJIN/metabank-api/internal/common"
	"github.com/LIMSONGJIN/metabank-api/internal/domain"
	"github.com/LIMSONGJIN/metabank-api/internal/platform/database"
	"github.com/LIMSONGJIN/metabank-api/internal/usagelog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}, &usagelog.UsageLog{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func strPtr(s string) *string { return &s }

func seedUser(t *testing.T, repo Repository, email string, at time.Time) *User {
	t.Helper()
	u := &User{Email: strPtr(email), Role: domain.RoleUser, Provider: domain.ProviderLocal}
	u.CreatedAt = at
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestRepository_CreateNormalizesEmailAndRejectsDuplicates(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))
	ctx := context.Background()

	u := &User{Email: strPtr("  Alice@Example.COM "), Role: domain.RoleUser, Provider: domain.ProviderLocal}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, "alice@example.com", *u.Email)

	err := repo.Create(ctx, &User{Email: strPtr("alice@example.com"), Role: domain.RoleUser, Provider: domain.ProviderLocal})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrConflict))
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "User already exists", apiErr.Message)
}

func TestRepository_FindByEmailOrPhone(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))
	ctx := context.Background()

	byPhone := &User{PhoneNumber: strPtr("010-1234-5678"), Role: domain.RoleUser, Provider: domain.ProviderLocal}
	require.NoError(t, repo.Create(ctx, byPhone))
	byEmail := seedUser(t, repo, "bob@example.com", time.Now())

	found, err := repo.FindByEmailOrPhone(ctx, strPtr("BOB@example.com"), nil)
	require.NoError(t, err)
	assert.Equal(t, byEmail.ID, found.ID)

	found, err = repo.FindByEmailOrPhone(ctx, nil, strPtr("010-1234-5678"))
	require.NoError(t, err)
	assert.Equal(t, byPhone.ID, found.ID)

	found, err = repo.FindByEmailOrPhone(ctx, strPtr("nobody@example.com"), strPtr("010-1234-5678"))
	require.NoError(t, err)
	assert.Equal(t, byPhone.ID, found.ID, "either identifier may match")

	_, err = repo.FindByEmailOrPhone(ctx, nil, nil)
	assert.True(t, errors.Is(err, common.ErrNotFound))

	_, err = repo.FindByEmailOrPhone(ctx, strPtr("nobody@example.com"), nil)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestRepository_ListIncludesUsageCounts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMRepository(db)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	older := seedUser(t, repo, "older@example.com", base)
	newer := seedUser(t, repo, "newer@example.com", base.Add(time.Hour))

	logs := usagelog.NewGORMRepository(db)
	for i := 0; i < 3; i++ {
		require.NoError(t, logs.Create(ctx, &usagelog.UsageLog{
			UserID:      &older.ID,
			ClientType:  domain.ClientKiosk,
			FeatureType: domain.FeatureMakeup,
		}))
	}

	users, total, err := repo.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, users, 2)
	assert.Equal(t, newer.ID, users[0].ID)
	assert.EqualValues(t, 0, users[0].UsageLogCount)
	assert.Equal(t, older.ID, users[1].ID)
	assert.EqualValues(t, 3, users[1].UsageLogCount)

	users, total, err = repo.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, users, 1)
	assert.Equal(t, older.ID, users[0].ID)
}

func TestRepository_UpdateRole(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))
	ctx := context.Background()
	u := seedUser(t, repo, "carol@example.com", time.Now())

	updated, err := repo.UpdateRole(ctx, u.ID, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)

	_, err = repo.UpdateRole(ctx, uuid.New(), domain.RoleAdmin)
	assert.True(t, errors.Is(err, common.ErrNotFound))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
