package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"DB_DRIVER", "BCRYPT_COST", "JWT_ACCESS_TTL", "AUTH_REQUIRED", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, time.Hour, cfg.AccessTTL)
	assert.False(t, cfg.AuthRequired)
	assert.Empty(t, cfg.CORSOrigins())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("JWT_ACCESS_TTL", "15m")
	t.Setenv("AUTH_REQUIRED", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("ELASTICSEARCH_ADDRS", "http://es1:9200,http://es2:9200")

	cfg := Load()
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "/tmp/x.db", cfg.SQLitePath)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.True(t, cfg.AuthRequired)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
	assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.ESAddrs())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("BCRYPT_COST", "lots")
	t.Setenv("AUTH_REQUIRED", "maybe")
	t.Setenv("JWT_ACCESS_TTL", "soon")

	cfg := Load()
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.False(t, cfg.AuthRequired)
	assert.Equal(t, time.Hour, cfg.AccessTTL)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5432", DBName: "accounts", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/accounts?sslmode=disable", cfg.PostgresDSN())
}
