package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"motorhub.backend/internal/config"
	"motorhub.backend/internal/infrastructure/feed"
	plog "motorhub.backend/pkg/logger"
	"motorhub.backend/pkg/redis"
	"motorhub.backend/pkg/tracing"
)

func withMainHooks(t *testing.T) {
	t.Helper()
	origLoadDotenv := loadDotenv
	origLoadCfg := loadCfg
	origInitLog := initLog
	origInitRedis := initRedis
	origInitTracing := initTracing
	origOpenDB := openDB
	origMigrate := migrate
	origRunServer := runServer

	t.Cleanup(func() {
		loadDotenv = origLoadDotenv
		loadCfg = origLoadCfg
		initLog = origInitLog
		initRedis = origInitRedis
		initTracing = origInitTracing
		openDB = origOpenDB
		migrate = origMigrate
		runServer = origRunServer
	})

	loadDotenv = func(...string) error { return nil }
	initLog = plog.Init
	initTracing = tracing.Init
	migrate = func(*gorm.DB) error { return nil }
}

func baseTestConfig(t *testing.T) func() *config.Config {
	blobDir := t.TempDir()
	return func() *config.Config {
		return &config.Config{
			Server: config.ServerConfig{
				Port:           "18080",
				Env:            "development",
				AllowedOrigins: []string{"http://localhost:3000"},
			},
			Database: config.DatabaseConfig{
				Host:        "localhost",
				Port:        5432,
				User:        "postgres",
				Password:    "postgres",
				DBName:      "motorhub",
				SSLMode:     "disable",
				AutoMigrate: true,
			},
			Redis: config.RedisConfig{
				URL:        "redis://localhost:6379",
				FeedPrefix: feed.DefaultPrefix,
			},
			JWT: config.JWTConfig{
				Secret:        "secret",
				AccessExpiry:  15 * time.Minute,
				RefreshExpiry: 24 * time.Hour,
			},
			Storage: config.StorageConfig{
				BlobDir:       blobDir,
				PublicBaseURL: "http://localhost:18080/blobs",
				MaxBytes:      1 << 20,
			},
			Telemetry: config.TelemetryConfig{MetricsEnabled: true},
		}
	}
}

func sqliteOpener(name string) func(config.DatabaseConfig) (*gorm.DB, error) {
	return func(config.DatabaseConfig) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	}
}

func TestRunMainProcess_RedisInitErrorInProduction(t *testing.T) {
	withMainHooks(t)
	base := baseTestConfig(t)
	loadCfg = func() *config.Config {
		cfg := base()
		cfg.Server.Env = "production"
		return cfg
	}
	initRedis = func(string, string) error { return errors.New("redis down") }

	err := runMainProcess()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}

func TestRunMainProcess_TracingInitError(t *testing.T) {
	withMainHooks(t)
	loadCfg = baseTestConfig(t)
	initTracing = func(context.Context, string, string) (func(context.Context) error, error) {
		return nil, errors.New("bad exporter")
	}

	require.Error(t, runMainProcess())
}

func TestRunMainProcess_DBOpenError(t *testing.T) {
	withMainHooks(t)
	loadCfg = baseTestConfig(t)
	initRedis = func(string, string) error { return errors.New("redis down") }
	openDB = func(config.DatabaseConfig) (*gorm.DB, error) { return nil, errors.New("db open failed") }

	err := runMainProcess()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database")
}

func TestRunMainProcess_MigrateError(t *testing.T) {
	withMainHooks(t)
	loadCfg = baseTestConfig(t)
	initRedis = func(string, string) error { return errors.New("redis down") }
	openDB = sqliteOpener("main_migrate_err")
	migrate = func(*gorm.DB) error { return errors.New("migration failed") }

	require.Error(t, runMainProcess())
}

func TestRunMainProcess_ServerRunError(t *testing.T) {
	withMainHooks(t)
	loadCfg = baseTestConfig(t)
	initRedis = func(string, string) error { return errors.New("redis down") }
	openDB = sqliteOpener("main_server_err")
	runServer = func(*http.Server) error { return errors.New("listen failed") }

	require.Error(t, runMainProcess())
}

func TestRunMainProcess_ServerClosedIsClean(t *testing.T) {
	withMainHooks(t)
	loadCfg = baseTestConfig(t)
	initRedis = func(string, string) error { return errors.New("redis down") }
	openDB = sqliteOpener("main_server_closed")
	runServer = func(*http.Server) error { return http.ErrServerClosed }

	require.NoError(t, runMainProcess())
}

func TestRunMainProcess_SuccessPathServesHealthAndMetrics(t *testing.T) {
	withMainHooks(t)
	loadCfg = baseTestConfig(t)
	openDB = sqliteOpener("main_success")

	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis not available in this environment: %v", err)
	}
	t.Cleanup(srv.Close)
	initRedis = func(string, string) error { return redis.Init("redis://"+srv.Addr(), "") }

	var handler http.Handler
	runServer = func(s *http.Server) error {
		assert.Equal(t, ":18080", s.Addr)
		handler = s.Handler
		return nil
	}

	require.NoError(t, runMainProcess())
	require.NotNil(t, handler)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "motorhub_http_requests_total")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
