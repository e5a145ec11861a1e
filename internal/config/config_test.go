package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "7d", want: 7 * 24 * time.Hour},
		{in: "1d", want: 24 * time.Hour},
		{in: "12h", want: 12 * time.Hour},
		{in: "90m", want: 90 * time.Minute},
		{in: "", wantErr: true},
		{in: "0d", wantErr: true},
		{in: "-1h", wantErr: true},
		{in: "xd", wantErr: true},
		{in: "seven", wantErr: true},
		{in: "106751d", want: 106751 * 24 * time.Hour},
		{in: "106752d", wantErr: true},
		{in: "9999999999d", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, 30*time.Second, cfg.ServerTimeout)
	assert.Equal(t, time.Hour, cfg.DBConnMaxLifetime)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "0.0.0.0:3000", cfg.Addr())
	assert.False(t, cfg.IsRelease())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ,")
	v.Set("JWT_EXPIRES_IN", "2h")
	v.Set("DB_DRIVER", "sqlite")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, "sqlite", cfg.DBDriver)
}

func TestFromViper_ReleaseRequiresSecret(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("GIN_MODE", "release")

	_, err := fromViper(v)
	assert.Error(t, err)

	v.Set("JWT_SECRET", "s3cret")
	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.True(t, cfg.IsRelease())
}

func TestFromViper_GeneratesDevelopmentSecret(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.True(t, cfg.JWTSecretGenerated)

	v.Set("JWT_SECRET", "fixed")
	cfg, err = fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "fixed", cfg.JWTSecret)
	assert.False(t, cfg.JWTSecretGenerated)
}

func TestFromViper_RejectsUnknownDriver(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("DB_DRIVER", "mysql")

	_, err := fromViper(v)
	assert.Error(t, err)
}
