// File: internal/service/errors.go
package service

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Kind classifies a service failure; the HTTP layer maps it to a status code.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnprocessable
	KindAuthentication
	KindForbidden
	KindNotFound
	KindDuplicate
	KindConflict
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf 取出錯誤種類，非 *Error 一律視為 KindInternal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

var ErrInvalidCredentials = &Error{Kind: KindAuthentication, Message: "invalid credentials"}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Validation builds a KindValidation error for callers outside the service
// layer, such as request binding in handlers.
func Validation(format string, args ...any) error {
	return newError(KindValidation, format, args...)
}
