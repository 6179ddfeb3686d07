package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"canteen/internal/database"
	"canteen/internal/model"
	"canteen/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

func newJSONCtx(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func restore() {
	register = service.Register
	authenticate = service.Authenticate
	issueAccessToken = service.IssueAccessToken
}

func TestRegisterHandler(t *testing.T) {
	e := echo.New()
	e.Validator = &stubValidator{}

	t.Run("bind error", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newJSONCtx(e, "{")
		require.NoError(t, RegisterHandler(nil, false)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate", func(t *testing.T) {
		t.Cleanup(restore)
		register = func(context.Context, database.DB, service.RegisterInput, bool) (*model.User, error) {
			return nil, &service.Error{Kind: service.KindDuplicate, Message: "Username or email already exists"}
		}
		ctx, rec := newJSONCtx(e, `{"username":"a","email":"a@example.com","password":"pw"}`)
		require.NoError(t, RegisterHandler(nil, false)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "already exists")
	})

	t.Run("password over bcrypt limit", func(t *testing.T) {
		t.Cleanup(restore)
		// 驗證在碰資料庫之前就失敗，db 可為 nil
		body := `{"username":"a","email":"a@example.com","password":"` + strings.Repeat("x", 80) + `"}`
		ctx, rec := newJSONCtx(e, body)
		require.NoError(t, RegisterHandler(nil, false)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "at most 72 bytes")
	})

	t.Run("created", func(t *testing.T) {
		t.Cleanup(restore)
		var gotAllow bool
		var gotIn service.RegisterInput
		register = func(_ context.Context, _ database.DB, in service.RegisterInput, allow bool) (*model.User, error) {
			gotIn, gotAllow = in, allow
			return &model.User{ID: 1, Username: in.Username, Email: in.Email, PasswordHash: "hash"}, nil
		}
		ctx, rec := newJSONCtx(e, `{"username":"a","email":"a@example.com","password":"pw","is_admin":true}`)
		require.NoError(t, RegisterHandler(nil, false)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.True(t, gotIn.IsAdmin)
		require.False(t, gotAllow)
		require.Contains(t, rec.Body.String(), `"username":"a"`)
		require.NotContains(t, rec.Body.String(), "hash")
	})
}

func TestLoginHandler(t *testing.T) {
	e := echo.New()
	e.Validator = &stubValidator{}

	t.Run("validation error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{err: errors.New("email required")}
		defer func() { e.Validator = &stubValidator{} }()
		ctx, rec := newJSONCtx(e, `{}`)
		require.NoError(t, LoginHandler(nil, time.Hour)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad credentials", func(t *testing.T) {
		t.Cleanup(restore)
		authenticate = func(context.Context, database.Querier, string, string) (*model.User, error) {
			return nil, service.ErrInvalidCredentials
		}
		issued := false
		issueAccessToken = func(model.User, time.Duration) (string, error) { issued = true; return "tok", nil }
		ctx, rec := newJSONCtx(e, `{"email":"a@example.com","password":"bad"}`)
		require.NoError(t, LoginHandler(nil, time.Hour)(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.False(t, issued)
		require.NotContains(t, rec.Body.String(), "tok")
	})

	t.Run("issue error", func(t *testing.T) {
		t.Cleanup(restore)
		authenticate = func(context.Context, database.Querier, string, string) (*model.User, error) {
			return &model.User{ID: 1}, nil
		}
		issueAccessToken = func(model.User, time.Duration) (string, error) { return "", errors.New("JWT_SECRET not set") }
		ctx, rec := newJSONCtx(e, `{"email":"a@example.com","password":"pw"}`)
		require.NoError(t, LoginHandler(nil, time.Hour)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("ok", func(t *testing.T) {
		t.Cleanup(restore)
		authenticate = func(_ context.Context, _ database.Querier, email, pw string) (*model.User, error) {
			require.Equal(t, "a@example.com", email)
			return &model.User{ID: 1, IsAdmin: true}, nil
		}
		issueAccessToken = func(u model.User, ttl time.Duration) (string, error) {
			require.Equal(t, time.Hour, ttl)
			return "tok", nil
		}
		ctx, rec := newJSONCtx(e, `{"email":"a@example.com","password":"pw"}`)
		require.NoError(t, LoginHandler(nil, time.Hour)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"token":"tok"`)
		require.Contains(t, rec.Body.String(), `"is_admin":true`)
		require.Contains(t, rec.Body.String(), "expires_at")
	})
}
