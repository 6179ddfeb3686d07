package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"canteen/internal/cache"
	"canteen/internal/database"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestPingHandler(t *testing.T) {
	cases := []struct {
		name     string
		dbErr    error
		cacheErr error
		code     int
		body     string
	}{
		{"healthy", nil, nil, http.StatusOK, `"pong"`},
		{"database down", errors.New("dial tcp: refused"), nil, http.StatusInternalServerError, "database unhealthy"},
		{"redis down", nil, errors.New("i/o timeout"), http.StatusInternalServerError, "cache unhealthy"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cachePinged := false
			db := &database.FakeDB{PingFn: func(context.Context) error { return tc.dbErr }}
			cch := &cache.FakeCache{PingFn: func(context.Context) *redis.StatusCmd {
				cachePinged = true
				return redis.NewStatusResult("PONG", tc.cacheErr)
			}}

			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/api/ping", nil), rec)
			require.NoError(t, PingHandler(db, cch)(c))
			require.Equal(t, tc.code, rec.Code)
			require.Contains(t, rec.Body.String(), tc.body)
			// 資料庫失敗時不再檢查 Redis
			require.Equal(t, tc.dbErr == nil, cachePinged)
		})
	}
}
