package bootstrap

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nakama-dev/auth-backend/internal/application/auth"
	"github.com/nakama-dev/auth-backend/internal/config"
	"github.com/nakama-dev/auth-backend/internal/infrastructure/redis"
	"github.com/nakama-dev/auth-backend/internal/transport/http/router"
)

func devConfig() *config.Config {
	return &config.Config{
		Env:        "dev",
		HTTPAddr:   ":0",
		JWTSecret:  "test-secret",
		BcryptCost: 4,
	}
}

func testDeps(cfg *config.Config) Deps {
	return Deps{
		LoadConfig: func() (*config.Config, error) { return cfg, nil },
		NewRouter:  router.New,
	}
}

func TestNewServer_DevMemoryPath(t *testing.T) {
	srv, cleanup, err := NewServerWithDeps(testDeps(devConfig()))
	require.NoError(t, err)
	defer cleanup()

	require.NotNil(t, srv.Handler)
	assert.Equal(t, ":0", srv.Addr)

	// the wired stack serves a full register round trip from memory
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"name":"Alice","email":"alice@example.com","password":"secret123"}`))
	srv.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
}

func TestNewServer_ConfigFailure(t *testing.T) {
	deps := testDeps(nil)
	deps.LoadConfig = func() (*config.Config, error) { return nil, errors.New("bad env") }

	_, _, err := NewServerWithDeps(deps)
	require.Error(t, err)
}

func TestNewServer_DBFailureAborts(t *testing.T) {
	cfg := devConfig()
	cfg.DBAddr = "postgres://localhost:5432/auth"

	deps := testDeps(cfg)
	deps.NewDB = func(addr string, debug bool) (*sql.DB, error) {
		return nil, errors.New("conn refused")
	}

	_, _, err := NewServerWithDeps(deps)
	require.Error(t, err)
}

func TestNewServer_RedisDownDisablesCache(t *testing.T) {
	cfg := devConfig()
	cfg.RedisAddr = "127.0.0.1:1" // nothing listens here

	deps := testDeps(cfg)
	deps.NewRedis = func(addr, password string, db int) *redis.Client {
		return redis.New(addr, password, db)
	}

	srv, cleanup, err := NewServerWithDeps(deps)
	require.NoError(t, err, "redis being down must not block startup")
	defer cleanup()
	require.NotNil(t, srv.Handler)
}

func TestNewServer_PublisherFailure(t *testing.T) {
	failing := func(url string) (auth.EventPublisher, error) {
		return nil, errors.New("amqp dial failed")
	}

	t.Run("dev falls back to noop", func(t *testing.T) {
		cfg := devConfig()
		cfg.RabbitURL = "amqp://localhost:5672/"

		deps := testDeps(cfg)
		deps.NewPublisher = failing

		srv, cleanup, err := NewServerWithDeps(deps)
		require.NoError(t, err)
		defer cleanup()
		require.NotNil(t, srv.Handler)
	})

	t.Run("prod aborts", func(t *testing.T) {
		cfg := devConfig()
		cfg.Env = "prod"
		cfg.DBAddr = ""
		cfg.RabbitURL = "amqp://localhost:5672/"

		deps := testDeps(cfg)
		deps.NewPublisher = failing

		_, _, err := NewServerWithDeps(deps)
		require.Error(t, err)
	})
}

func TestNewServer_RouterFailureRunsCleanup(t *testing.T) {
	cfg := devConfig()
	deps := testDeps(cfg)
	deps.NewRouter = func(router.Deps) (http.Handler, error) {
		return nil, errors.New("router misconfigured")
	}

	_, _, err := NewServerWithDeps(deps)
	require.Error(t, err)
}
