// File: internal/handler/auth/login.go
package auth

import (
	"net/http"
	"time"

	"canteen/internal/database"
	"canteen/internal/dto"
	"canteen/internal/handler"

	"github.com/labstack/echo/v4"
)

// LoginHandler 使用 Email/Password 驗證並回傳 JWT
// @Summary     登入使用者
// @Description 使用 Email 與 Password 進行驗證，回傳存取令牌、角色與到期時間
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.LoginRequest true "登入資料"
// @Success     200  {object} dto.LoginResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     429  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /login [post]
func LoginHandler(db database.DB, ttl time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.LoginRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.Error(c, err)
		}

		// 帳號不存在與密碼錯誤回傳相同訊息
		user, err := authenticate(c.Request().Context(), db, req.Email, req.Password)
		if err != nil {
			return handler.Error(c, err)
		}

		expiresAt := time.Now().Add(ttl)
		token, err := issueAccessToken(*user, ttl)
		if err != nil {
			return handler.Error(c, err)
		}

		return c.JSON(http.StatusOK, dto.LoginResponse{
			Token:     token,
			IsAdmin:   user.IsAdmin,
			ExpiresAt: expiresAt.UTC().Truncate(time.Second),
		})
	}
}
