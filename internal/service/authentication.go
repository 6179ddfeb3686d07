// File: internal/service/authentication.go
package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"canteen/internal/database"
	"canteen/internal/model"
	"canteen/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
)

var (
	parseWithClaims = jwt.ParseWithClaims
	userExists      = store.UserExists
	createUser      = store.CreateUser
	getUserByID     = store.GetUserByID
	getUserByEmail  = store.GetUserByEmail
)

// CustomClaims 定義 JWT 負載內容
type CustomClaims struct {
	UserID  int  `json:"user_id"`
	IsAdmin bool `json:"is_admin"`
	jwt.RegisteredClaims
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	IsAdmin  bool
}

// Register 建立新使用者；username 或 email 重複時回傳 KindDuplicate。
// IsAdmin 只有在 allowAdmin 為 true 時才會生效。
func Register(ctx context.Context, db database.DB, in RegisterInput, allowAdmin bool) (*model.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, newError(KindValidation, "username, email and password are required")
	}
	if len(in.Password) > MaxPasswordBytes {
		return nil, passwordTooLong()
	}

	exists, err := userExists(ctx, db, in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, newError(KindDuplicate, "Username or email already exists")
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		if KindOf(err) == KindValidation {
			return nil, err
		}
		return nil, fmt.Errorf("Register: %w", err)
	}

	if in.IsAdmin && !allowAdmin {
		logrus.WithField("username", in.Username).Warn("ignoring self-assigned admin flag at registration")
	}

	u, err := createUser(ctx, db, &model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		IsAdmin:      in.IsAdmin && allowAdmin,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, newError(KindDuplicate, "Username or email already exists")
		}
		return nil, err
	}
	return u, nil
}

// AuthenticateUser 根據使用者結構和明文密碼驗證，成功回傳使用者
func AuthenticateUser(ctx context.Context, user model.User, password string) (*model.User, error) {
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// Authenticate looks the user up by email; unknown email and wrong password
// both yield ErrInvalidCredentials.
func Authenticate(ctx context.Context, db database.Querier, email, password string) (*model.User, error) {
	u, err := getUserByEmail(ctx, db, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return AuthenticateUser(ctx, *u, password)
}

// IsAdmin 以資料庫中的角色為準，不信任 token 內的 is_admin
func IsAdmin(ctx context.Context, db database.Querier, userID int) (bool, error) {
	u, err := getUserByID(ctx, db, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return u.IsAdmin, nil
}

// EnsureAdmin seeds an admin account unless the username or email is taken.
func EnsureAdmin(ctx context.Context, db database.DB, username, email, password string) (bool, error) {
	exists, err := userExists(ctx, db, username, email)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	hash, err := HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("EnsureAdmin: %w", err)
	}
	if _, err := createUser(ctx, db, &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      true,
	}); err != nil {
		return false, err
	}
	logrus.WithFields(logrus.Fields{"username": username, "email": email}).Info("seeded admin account")
	return true, nil
}

// IssueAccessToken 依據使用者資訊與 TTL 產生 JWT
func IssueAccessToken(user model.User, ttl time.Duration) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", fmt.Errorf("JWT_SECRET not set")
	}

	now := timeNow()
	claims := CustomClaims{
		UserID:  user.ID,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyAccessToken 驗證並解析 JWT 令牌
func VerifyAccessToken(tokenString string) (*CustomClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}

	token, err := parseWithClaims(tokenString, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
