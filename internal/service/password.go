// File: internal/service/password.go
package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes bcrypt 只接受 72 bytes 以內的密碼
const MaxPasswordBytes = 72

var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
)

// HashPassword 接收明文密碼，回傳 bcrypt 哈希字串；
// 過長的密碼是使用者輸入錯誤，回傳 KindValidation
func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", passwordTooLong()
	}
	hashBytes, err := bcryptGenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", passwordTooLong()
		}
		return "", err
	}
	return string(hashBytes), nil
}

func passwordTooLong() error {
	return newError(KindValidation, "password must be at most %d bytes", MaxPasswordBytes)
}

// ComparePassword 比對明文密碼與 bcrypt 哈希，成功回傳 nil，失敗則回傳錯誤
func ComparePassword(hash, password string) error {
	return bcryptCompareHashAndPassword([]byte(hash), []byte(password))
}
