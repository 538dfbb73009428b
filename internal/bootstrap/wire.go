package bootstrap

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/nakama-dev/auth-backend/internal/application/auth"
	"github.com/nakama-dev/auth-backend/internal/config"
	"github.com/nakama-dev/auth-backend/internal/infrastructure/db/postgres"
	"github.com/nakama-dev/auth-backend/internal/infrastructure/memory"
	rabbitmq_pub "github.com/nakama-dev/auth-backend/internal/infrastructure/messaging/rabbitmq"
	"github.com/nakama-dev/auth-backend/internal/infrastructure/redis"
	"github.com/nakama-dev/auth-backend/internal/infrastructure/security"
	"github.com/nakama-dev/auth-backend/internal/logger"
	http_handlers "github.com/nakama-dev/auth-backend/internal/transport/http/handlers"
	"github.com/nakama-dev/auth-backend/internal/transport/http/middleware"
	"github.com/nakama-dev/auth-backend/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing.
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(addr string, debug bool) (*sql.DB, error)

	NewRedis func(addr, password string, db int) *redis.Client

	NewPublisher func(rabbitURL string) (auth.EventPublisher, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	var cleanupFns []func()

	// 1) credential store: postgres when configured, in-memory in dev
	var users auth.UserRepo
	var sqlDB *sql.DB
	if cfg.DBAddr != "" {
		db, err := deps.NewDB(cfg.DBAddr, cfg.DBDebug)
		if err != nil {
			return nil, nil, err
		}
		sqlDB = db
		cleanupFns = append(cleanupFns, func() { _ = db.Close() })
		users = postgres.NewUserRepo(db)
	} else {
		logger.Logger.Warn().Msg("DB_ADDR not set; using in-memory store")
		users = memory.NewUserRepo()
	}

	// 2) redis (best-effort read cache for profile lookups)
	if cfg.RedisAddr != "" && deps.NewRedis != nil {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; cache disabled")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
			users = redis.NewCachedUserRepo(users, c, cfg.CacheTTL)
		}
	}

	// 3) publisher
	var pub auth.EventPublisher
	if cfg.RabbitURL != "" && deps.NewPublisher != nil {
		p, err := deps.NewPublisher(cfg.RabbitURL)
		if err != nil {
			if cfg.Env == "dev" {
				logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop publisher")
				pub = memory.NewNoopPublisher(logger.Logger)
			} else {
				runCleanup(cleanupFns)
				return nil, nil, err
			}
		} else {
			pub = p
			if c, ok := p.(interface{ Close() error }); ok {
				cleanupFns = append(cleanupFns, func() { _ = c.Close() })
			}
		}
	} else {
		pub = memory.NewNoopPublisher(logger.Logger)
	}

	// 4) security
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	signer := security.NewJWTSigner(cfg.JWTSecret, "auth-backend")

	// 5) service
	authSvc := auth.NewService(
		users,
		hasher,
		signer,
		signer,
		pub,
		auth.Config{TokenTTL: cfg.TokenTTL},
		logger.Logger,
	)

	// 6) handlers + router
	debug := cfg.Env != "prod"

	mux, err := deps.NewRouter(router.Deps{
		Health:      http_handlers.NewHealthHandler(sqlDB),
		Auth:        http_handlers.NewAuthHandler(authSvc, debug),
		RequestIDMW: middleware.RequestID,
		CORSMW:      middleware.CORS(nil),
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 7) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB: func(addr string, debug bool) (*sql.DB, error) {
			return config.NewDB(addr, debug)
		},
		NewRedis: func(addr, password string, db int) *redis.Client {
			return redis.New(addr, password, db)
		},
		NewPublisher: func(url string) (auth.EventPublisher, error) {
			return rabbitmq_pub.NewPublisher(url)
		},
		NewRouter: func(d router.Deps) (http.Handler, error) {
			return router.New(d)
		},
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
