package service

import (
	"strings"
	"time"

	"canteen/internal/model"
)

var timeNow = time.Now

// Today is the server's current calendar date.
func Today() string {
	return timeNow().Format(model.DateLayout)
}

// ParseDate 驗證並正規化 YYYY-MM-DD 日期字串
func ParseDate(raw string) (string, error) {
	t, err := time.Parse(model.DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return "", newError(KindValidation, "invalid date format, expected YYYY-MM-DD")
	}
	return t.Format(model.DateLayout), nil
}
