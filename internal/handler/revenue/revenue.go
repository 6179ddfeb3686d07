// File: internal/handler/revenue/revenue.go
package revenue

import (
	"net/http"

	"canteen/internal/database"
	"canteen/internal/handler"
	"canteen/internal/service"

	"github.com/labstack/echo/v4"
)

var buildRevenueReport = service.BuildRevenueReport

// ReportHandler 今日營收與每日營收統計
// @Summary     Revenue report
// @Description 依伺服器日期計算今日營收，並依訂單日期分組統計
// @Tags        revenue
// @Produce     json
// @Success     200 {object} model.RevenueReport
// @Failure     403 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /revenue [get]
func ReportHandler(db database.DB, rc *service.RevenueCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		r, err := buildRevenueReport(c.Request().Context(), db, rc)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, r)
	}
}
