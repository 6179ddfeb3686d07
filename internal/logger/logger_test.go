package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	t.Cleanup(func() {
		output = os.Stdout
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(logrus.InfoLevel)
		logrus.SetFormatter(&logrus.TextFormatter{})
	})

	require.NoError(t, Setup("debug", "text"))
	require.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	require.NoError(t, Setup("warn", "json"))
	require.Equal(t, logrus.WarnLevel, logrus.GetLevel())
	_, ok := logrus.StandardLogger().Formatter.(*logrus.JSONFormatter)
	require.True(t, ok)

	require.Error(t, Setup("loud", "text"))
	require.Error(t, Setup("info", "xml"))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	output = &buf
	t.Cleanup(func() {
		output = os.Stdout
		logrus.SetOutput(os.Stderr)
		logrus.SetFormatter(&logrus.TextFormatter{})
	})
	require.NoError(t, Setup("info", "json"))

	e := echo.New()
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return "req-1" },
	}))
	e.Use(RequestLogger())
	e.GET("/api/ping", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "pong"})
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "GET", entry["method"])
	require.Equal(t, "/api/ping", entry["uri"])
	require.Equal(t, float64(200), entry["status"])
	require.Equal(t, "req-1", entry["request_id"])
	require.Equal(t, "info", entry["level"])
}
