// File: internal/handler/meals/meals.go
package meals

import (
	"net/http"

	"canteen/internal/database"
	"canteen/internal/dto"
	"canteen/internal/handler"
	"canteen/internal/service"

	"github.com/labstack/echo/v4"
)

var (
	createMeal = service.CreateMeal
	listMeals  = service.ListMeals
	updateMeal = service.UpdateMeal
	deleteMeal = service.DeleteMeal
)

// CreateMealHandler 新增餐點
// @Summary     Create meal option
// @Tags        meal-options
// @Accept      json
// @Produce     json
// @Param       body body     dto.CreateMealOptionRequest true "餐點"
// @Success     201  {object} model.MealOption
// @Failure     400  {object} dto.HTTPError
// @Failure     403  {object} dto.HTTPError
// @Failure     422  {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /meal-options [post]
func CreateMealHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.CreateMealOptionRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.Error(c, err)
		}
		m, err := createMeal(c.Request().Context(), db, req.Name, dto.PriceText(req.Price))
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusCreated, m)
	}
}

// ListMealsHandler 列出所有餐點
// @Summary     List meal options
// @Tags        meal-options
// @Produce     json
// @Success     200 {array}  model.MealOption
// @Failure     403 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /meal-options [get]
func ListMealsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := listMeals(c.Request().Context(), db)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

// UpdateMealHandler 部分更新餐點；價格變動會影響營收，因此清除營收快取
// @Summary     Update meal option
// @Tags        meal-options
// @Accept      json
// @Produce     json
// @Param       id   path     int                         true "meal option id"
// @Param       body body     dto.UpdateMealOptionRequest true "欲更新欄位"
// @Success     200  {object} model.MealOption
// @Failure     400  {object} dto.HTTPError
// @Failure     404  {object} dto.HTTPError
// @Failure     422  {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /meal-options/{id} [put]
func UpdateMealHandler(db database.DB, rc *service.RevenueCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.Error(c, err)
		}
		var req dto.UpdateMealOptionRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.Error(c, err)
		}
		patch := service.MealPatch{Name: req.Name}
		if req.Price != nil {
			p := dto.PriceText(req.Price)
			patch.Price = &p
		}
		m, err := updateMeal(c.Request().Context(), db, id, patch)
		if err != nil {
			return handler.Error(c, err)
		}
		rc.Invalidate(c.Request().Context())
		return c.JSON(http.StatusOK, m)
	}
}

// DeleteMealHandler 刪除餐點；仍被訂單引用時回傳 409
// @Summary     Delete meal option
// @Tags        meal-options
// @Produce     json
// @Param       id  path     int true "meal option id"
// @Success     200 {object} dto.MessageResponse
// @Failure     404 {object} dto.HTTPError
// @Failure     409 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /meal-options/{id} [delete]
func DeleteMealHandler(db database.DB, rc *service.RevenueCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.Error(c, err)
		}
		if err := deleteMeal(c.Request().Context(), db, id); err != nil {
			return handler.Error(c, err)
		}
		rc.Invalidate(c.Request().Context())
		return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Meal option deleted successfully"})
	}
}
