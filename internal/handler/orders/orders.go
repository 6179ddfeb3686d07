// File: internal/handler/orders/orders.go
package orders

import (
	"net/http"

	"canteen/internal/database"
	"canteen/internal/dto"
	"canteen/internal/handler"
	"canteen/internal/middleware"
	"canteen/internal/service"

	"github.com/labstack/echo/v4"
)

var (
	placeOrder        = service.PlaceOrder
	updateOrder       = service.UpdateOrder
	deleteOrder       = service.DeleteOrder
	listOrdersForUser = service.ListOrdersForUser
	isAdmin           = service.IsAdmin
)

// CreateOrderHandler 建立訂單，日期省略時為今天
// @Summary     Place order
// @Tags        orders
// @Accept      json
// @Produce     json
// @Param       body body     dto.CreateOrderRequest true "訂單"
// @Success     201  {object} model.OrderView
// @Failure     400  {object} dto.HTTPError
// @Failure     404  {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /orders [post]
func CreateOrderHandler(db database.DB, rc *service.RevenueCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.CreateOrderRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.Error(c, err)
		}
		claims := middleware.Claims(c)
		v, err := placeOrder(c.Request().Context(), db, claims.UserID, service.PlaceOrderInput{
			MealOptionID: req.MealOptionID,
			Quantity:     req.Quantity,
			Date:         req.Date,
		})
		if err != nil {
			return handler.Error(c, err)
		}
		rc.Invalidate(c.Request().Context())
		return c.JSON(http.StatusCreated, v)
	}
}

// UpdateOrderHandler 只有訂單擁有者可修改
// @Summary     Update own order
// @Tags        orders
// @Accept      json
// @Produce     json
// @Param       id   path     int                    true "order id"
// @Param       body body     dto.UpdateOrderRequest true "欲更新欄位"
// @Success     200  {object} model.OrderView
// @Failure     400  {object} dto.HTTPError
// @Failure     403  {object} dto.HTTPError
// @Failure     404  {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /orders/{id} [put]
func UpdateOrderHandler(db database.DB, rc *service.RevenueCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.Error(c, err)
		}
		var req dto.UpdateOrderRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.Error(c, err)
		}
		claims := middleware.Claims(c)
		v, err := updateOrder(c.Request().Context(), db, id, claims.UserID, service.OrderPatch{
			MealOptionID: req.MealOptionID,
			Quantity:     req.Quantity,
		})
		if err != nil {
			return handler.Error(c, err)
		}
		rc.Invalidate(c.Request().Context())
		return c.JSON(http.StatusOK, v)
	}
}

// DeleteOrderHandler 擁有者或管理員可刪除
// @Summary     Delete order
// @Tags        orders
// @Produce     json
// @Param       id  path     int true "order id"
// @Success     200 {object} dto.MessageResponse
// @Failure     403 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /orders/{id} [delete]
func DeleteOrderHandler(db database.DB, rc *service.RevenueCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.Error(c, err)
		}
		claims := middleware.Claims(c)
		ctx := c.Request().Context()
		admin, err := isAdmin(ctx, db, claims.UserID)
		if err != nil {
			return handler.Error(c, err)
		}
		if err := deleteOrder(ctx, db, id, claims.UserID, admin); err != nil {
			return handler.Error(c, err)
		}
		rc.Invalidate(c.Request().Context())
		return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Order deleted successfully"})
	}
}

// ListMyOrdersHandler 列出自己的訂單
// @Summary     List own orders
// @Tags        orders
// @Produce     json
// @Success     200 {object} dto.OrderListResponse
// @Failure     401 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /orders [get]
func ListMyOrdersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := listOrdersForUser(c.Request().Context(), db, middleware.Claims(c).UserID)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, dto.OrderListResponse{Orders: list})
	}
}
