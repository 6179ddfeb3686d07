package main

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"canteen/internal/cache"
	"canteen/internal/config"
	"canteen/internal/database"
	"canteen/internal/logger"
	"canteen/internal/service"
	"canteen/internal/worker"
)

func restoreGlobals() {
	loadConfig = config.Load
	setupLogger = logger.Setup
	newPgxPool = database.NewPgxPool
	newRedisClient = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackAllFn = database.RollbackAll
	ensureAdmin = service.EnsureAdmin
	newWorkerPool = worker.NewPool
	startServer = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc = func(code int) {}
}

func testConfig() *config.Config {
	return &config.Config{
		DatabaseURL:     "db",
		JWTSecret:       "secret",
		RedisAddr:       "127",
		RedisPassword:   "pw",
		RedisDB:         1,
		HTTPAddr:        ":0",
		WorkerCount:     2,
		LogLevel:        "info",
		LogFormat:       "text",
		JWTTTL:          time.Hour,
		RateLimitRPS:    5,
		RevenueCacheTTL: time.Minute,
	}
}

type stopPool struct{ stopped *bool }

func (p stopPool) Submit(t worker.Task) { t() }
func (p stopPool) Stop()                { *p.stopped = true }

func TestCustomValidator(t *testing.T) {
	cv := &CustomValidator{validator: validator.New()}
	type s struct {
		Name string `validate:"required"`
	}
	require.NoError(t, cv.Validate(&s{Name: "ok"}))
	require.Error(t, cv.Validate(&s{}))
}

func TestRunSuccess(t *testing.T) {
	t.Cleanup(restoreGlobals)
	called := make(map[string]bool)
	cfg := testConfig()
	cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword = "root", "root@example.com", "pw"

	loadConfig = func() (*config.Config, error) { return cfg, nil }
	setupLogger = func(level, format string) error { called["logger"] = true; return nil }
	newPgxPool = func(ctx context.Context, url string) (database.DB, error) {
		called["pgx"] = true
		require.Equal(t, "db", url)
		return &database.FakeDB{CloseFn: func() { called["dbClose"] = true }}, nil
	}
	newRedisClient = func(addr, pwd string, db int) (cache.Cache, error) {
		called["redis"] = true
		require.Equal(t, "127", addr)
		require.Equal(t, "pw", pwd)
		require.Equal(t, 1, db)
		return &cache.FakeCache{CloseFn: func() error { called["redisClose"] = true; return nil }}, nil
	}
	runMigrationsFn = func(url string) error { called["migrate"] = true; return nil }
	ensureAdmin = func(_ context.Context, _ database.DB, username, email, _ string) (bool, error) {
		called["admin"] = true
		require.Equal(t, "root", username)
		return true, nil
	}
	stopped := false
	newWorkerPool = func(n int) worker.Pool {
		require.Equal(t, 2, n)
		return stopPool{stopped: &stopped}
	}
	startServer = func(e *echo.Echo, addr string) error { called["start"] = true; return http.ErrServerClosed }

	require.NoError(t, run())
	for _, k := range []string{"logger", "pgx", "redis", "migrate", "admin", "start", "dbClose", "redisClose"} {
		require.True(t, called[k], k)
	}
	require.True(t, stopped)
}

func TestRunSkipsAdminSeed(t *testing.T) {
	t.Cleanup(restoreGlobals)
	loadConfig = func() (*config.Config, error) { return testConfig(), nil }
	setupLogger = func(string, string) error { return nil }
	newPgxPool = func(context.Context, string) (database.DB, error) { return &database.FakeDB{}, nil }
	newRedisClient = func(string, string, int) (cache.Cache, error) { return &cache.FakeCache{}, nil }
	runMigrationsFn = func(string) error { return nil }
	ensureAdmin = func(context.Context, database.DB, string, string, string) (bool, error) {
		t.Fatal("ensureAdmin should not run without ADMIN_* config")
		return false, nil
	}
	startServer = func(*echo.Echo, string) error { return nil }
	require.NoError(t, run())
}

func TestRunMigrateReset(t *testing.T) {
	t.Cleanup(restoreGlobals)
	cfg := testConfig()
	cfg.MigrateReset = true
	var order []string
	loadConfig = func() (*config.Config, error) { return cfg, nil }
	setupLogger = func(string, string) error { return nil }
	newPgxPool = func(context.Context, string) (database.DB, error) { return &database.FakeDB{}, nil }
	newRedisClient = func(string, string, int) (cache.Cache, error) { return &cache.FakeCache{}, nil }
	rollbackAllFn = func(string) error { order = append(order, "down"); return nil }
	runMigrationsFn = func(string) error { order = append(order, "up"); return nil }
	startServer = func(*echo.Echo, string) error { return nil }
	require.NoError(t, run())
	require.Equal(t, []string{"down", "up"}, order)

	rollbackAllFn = func(string) error { return errors.New("down") }
	require.Error(t, run())
}

func TestRunErrors(t *testing.T) {
	t.Cleanup(restoreGlobals)
	ok := func() {
		loadConfig = func() (*config.Config, error) { return testConfig(), nil }
		setupLogger = func(string, string) error { return nil }
		newPgxPool = func(context.Context, string) (database.DB, error) { return &database.FakeDB{}, nil }
		newRedisClient = func(string, string, int) (cache.Cache, error) { return &cache.FakeCache{}, nil }
		runMigrationsFn = func(string) error { return nil }
		startServer = func(*echo.Echo, string) error { return nil }
	}

	ok()
	loadConfig = func() (*config.Config, error) { return nil, errors.New("DATABASE_URL") }
	require.Error(t, run())

	ok()
	setupLogger = func(string, string) error { return errors.New("level") }
	require.Error(t, run())

	ok()
	newPgxPool = func(context.Context, string) (database.DB, error) { return nil, errors.New("pgx") }
	require.Error(t, run())

	ok()
	newRedisClient = func(string, string, int) (cache.Cache, error) { return nil, errors.New("redis") }
	require.Error(t, run())

	ok()
	runMigrationsFn = func(string) error { return errors.New("migrate") }
	require.Error(t, run())

	ok()
	startServer = func(*echo.Echo, string) error { return errors.New("bind: address in use") }
	require.Error(t, run())
}

func TestMainExit(t *testing.T) {
	t.Cleanup(restoreGlobals)
	loadConfig = func() (*config.Config, error) { return nil, errors.New("boom") }
	code := 0
	exitFunc = func(c int) { code = c }
	main()
	require.Equal(t, 1, code)
}
