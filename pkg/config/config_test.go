package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-minimum-32-characters-long"

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "postgres://localhost/bookkeeper")
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 25, cfg.DBMaxConns)
	assert.Equal(t, 10*time.Minute, cfg.AccountCacheTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.False(t, cfg.TrustProxy)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "postgres://localhost/bookkeeper")
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("ENV", "production")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("ACCOUNT_CACHE_TTL", "30s")
	t.Setenv("DB_MAX_CONNS", "7")
	t.Setenv("TRUST_PROXY", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.TrustProxy)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.AccountCacheTTL)
	assert.Equal(t, 7, cfg.DBMaxConns)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"missing database url", Config{JWTSecret: testSecret, DBMaxConns: 1}, "DATABASE_URL is required"},
		{"missing secret", Config{DatabaseURL: "x", DBMaxConns: 1}, "JWT_SECRET is required"},
		{"short secret", Config{DatabaseURL: "x", JWTSecret: "short", DBMaxConns: 1}, "at least 32 characters"},
		{"bad pool size", Config{DatabaseURL: "x", JWTSecret: testSecret}, "DB_MAX_CONNS"},
		{"valid", Config{DatabaseURL: "x", JWTSecret: testSecret, DBMaxConns: 1}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
