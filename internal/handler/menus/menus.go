// File: internal/handler/menus/menus.go
package menus

import (
	"net/http"

	"canteen/internal/database"
	"canteen/internal/dto"
	"canteen/internal/handler"
	"canteen/internal/model"
	"canteen/internal/service"

	"github.com/labstack/echo/v4"
)

var (
	setDailyMenu       = service.SetDailyMenu
	getMenu            = service.GetMenu
	findMenu           = service.FindMenu
	removeMealFromMenu = service.RemoveMealFromMenu
	today              = service.Today
)

func menuResponse(v *model.MenuView) dto.MenuResponse {
	return dto.MenuResponse{Date: v.Date, MealOptions: v.MealOptions}
}

// SetDailyHandler 以整組取代指定日期的菜單
// @Summary     Set daily menu
// @Description 建立或整組取代某日菜單；不存在的餐點 id 會被略過
// @Tags        menus
// @Accept      json
// @Produce     json
// @Param       body body     dto.SetDailyMenuRequest true "日期與餐點"
// @Success     200  {object} dto.MenuResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     403  {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /menus/setDaily [post]
func SetDailyHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.SetDailyMenuRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.Error(c, err)
		}
		v, err := setDailyMenu(c.Request().Context(), db, req.Date, req.MealIDs)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, menuResponse(v))
	}
}

// CreateMenuHandler keeps the older payload shape ({date, meal_options}).
// @Summary     Create menu
// @Tags        menus
// @Accept      json
// @Produce     json
// @Param       body body     dto.CreateMenuRequest true "日期與餐點"
// @Success     201  {object} dto.MessageResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     403  {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /menus [post]
func CreateMenuHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.CreateMenuRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.Error(c, err)
		}
		if _, err := setDailyMenu(c.Request().Context(), db, req.Date, req.MealOptions); err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusCreated, dto.MessageResponse{Message: "Menu created successfully"})
	}
}

// TodayHandler 今日菜單，沒有時回傳空陣列
// @Summary     Today's menu
// @Tags        menus
// @Produce     json
// @Success     200 {array}  model.MealOption
// @Failure     401 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /menus/today [get]
func TodayHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		meals, err := getMenu(c.Request().Context(), db, today())
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, meals)
	}
}

// GetByDateHandler 查詢指定日期菜單，不存在回傳 404
// @Summary     Menu by date
// @Tags        menus
// @Produce     json
// @Param       date path     string true "YYYY-MM-DD"
// @Success     200  {object} dto.MenuResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     404  {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /menus/{date} [get]
func GetByDateHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		v, err := findMenu(c.Request().Context(), db, c.Param("date"))
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, menuResponse(v))
	}
}

// RemoveMealHandler 從今日 (或 ?date= 指定日期) 菜單移除餐點
// @Summary     Remove meal from menu
// @Tags        menus
// @Produce     json
// @Param       mealId path     int    true  "meal option id"
// @Param       date   query    string false "YYYY-MM-DD，預設今天"
// @Success     200    {object} dto.MessageResponse
// @Failure     400    {object} dto.HTTPError
// @Failure     404    {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /menus/removeMeal/{mealId} [delete]
func RemoveMealHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		mealID, err := handler.ParamID(c, "mealId")
		if err != nil {
			return handler.Error(c, err)
		}
		date := c.QueryParam("date")
		if date == "" {
			date = today()
		}
		if err := removeMealFromMenu(c.Request().Context(), db, date, mealID); err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Meal removed from menu"})
	}
}
