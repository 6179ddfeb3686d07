// File: internal/handler/response.go
package handler

import (
	"net/http"
	"strconv"

	"canteen/internal/dto"
	"canteen/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// StatusFor maps a service error kind to its HTTP status.
func StatusFor(kind service.Kind) int {
	switch kind {
	case service.KindValidation, service.KindDuplicate:
		return http.StatusBadRequest
	case service.KindUnprocessable:
		return http.StatusUnprocessableEntity
	case service.KindAuthentication:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error 將 service 錯誤寫成 JSON 回應；500 只回傳通用訊息並記錄 log
func Error(c echo.Context, err error) error {
	status := StatusFor(service.KindOf(err))
	if status == http.StatusInternalServerError {
		logrus.WithError(err).WithFields(logrus.Fields{
			"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
			"method":     c.Request().Method,
			"path":       c.Path(),
		}).Error("unhandled error")
		return c.JSON(status, dto.HTTPError{Message: "internal server error"})
	}
	return c.JSON(status, dto.HTTPError{Message: err.Error()})
}

// Bind 綁定並驗證請求，失敗時回傳 KindValidation
func Bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return service.Validation("invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return service.Validation("%s", err.Error())
	}
	return nil
}

func ParamID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, service.Validation("invalid %s", name)
	}
	return id, nil
}
