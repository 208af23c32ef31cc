package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_KEY", testKey)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 8*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 60*time.Second, cfg.JWTClockSkew)
	assert.True(t, cfg.DBAutoMigrate)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_KEY", testKey)
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", "/tmp/bonus.db")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "/tmp/bonus.db", cfg.DBSQLitePath)
	assert.Equal(t, 30*time.Minute, cfg.JWTTTL)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_MissingKey(t *testing.T) {
	t.Setenv("JWT_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			DBDriver:          DriverPostgres,
			DBConnStr:         "postgres://u:p@localhost:5432/db",
			DBMaxOpenConns:    10,
			DBMaxIdleConns:    2,
			DBConnectAttempts: 1,
			JWTKey:            testKey,
			JWTIssuer:         "iss",
			JWTAudience:       "aud",
			JWTTTL:            time.Hour,
			RateLimitRPS:      10,
			RateLimitBurst:    20,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, true},
		{"short key", func(c *Config) { c.JWTKey = "short" }, true},
		{"idle above open", func(c *Config) { c.DBMaxIdleConns = 50 }, true},
		{"zero ttl", func(c *Config) { c.JWTTTL = 0 }, true},
		{"sqlite without path", func(c *Config) { c.DBDriver = DriverSQLite; c.DBSQLitePath = "" }, true},
		{"no rate limit", func(c *Config) { c.RateLimitRPS = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
