// File: internal/handler/auth/register.go
package auth

import (
	"net/http"

	"canteen/internal/database"
	"canteen/internal/dto"
	"canteen/internal/handler"
	"canteen/internal/service"

	"github.com/labstack/echo/v4"
)

// RegisterHandler 註冊新使用者
// @Summary     Register a new user
// @Description 建立帳號；username 或 email 重複時回傳 400。is_admin 預設會被忽略
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.RegisterRequest true "註冊資料"
// @Success     201  {object} dto.UserResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     429  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /register [post]
func RegisterHandler(db database.DB, allowAdmin bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.RegisterRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.Error(c, err)
		}

		u, err := register(c.Request().Context(), db, service.RegisterInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
			IsAdmin:  req.IsAdmin,
		}, allowAdmin)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusCreated, userResponse(u))
	}
}
