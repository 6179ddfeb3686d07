// File: internal/handler/orders/admin.go
package orders

import (
	"net/http"

	"canteen/internal/database"
	"canteen/internal/dto"
	"canteen/internal/handler"
	"canteen/internal/service"

	"github.com/labstack/echo/v4"
)

var (
	listAllOrders = service.ListAllOrders
	setStatus     = service.SetStatus
	bulkSetStatus = service.BulkSetStatus
	bulkDelete    = service.BulkDelete
)

// ListAllOrdersHandler 管理員查看所有訂單
// @Summary     List all orders
// @Tags        orders-admin
// @Produce     json
// @Success     200 {object} dto.OrderListResponse
// @Failure     403 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /orders/admin [get]
func ListAllOrdersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := listAllOrders(c.Request().Context(), db)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, dto.OrderListResponse{Orders: list})
	}
}

// SetStatusHandler 更新單筆訂單狀態
// @Summary     Set order status
// @Tags        orders-admin
// @Accept      json
// @Produce     json
// @Param       id   path     int                    true "order id"
// @Param       body body     dto.OrderStatusRequest true "狀態"
// @Success     200  {object} model.OrderView
// @Failure     400  {object} dto.HTTPError
// @Failure     404  {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /orders/{id}/status [put]
func SetStatusHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.Error(c, err)
		}
		var req dto.OrderStatusRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.Error(c, err)
		}
		v, err := setStatus(c.Request().Context(), db, id, req.Status)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, v)
	}
}

// BulkSetStatusHandler 批次更新狀態；不存在的訂單略過，只回傳已更新者
// @Summary     Bulk set order status
// @Description 先檢查所有 status (1 至 50 字元)，任一不合法則整批拒絕 (400) 且不更新任何訂單；
// @Description 不存在的 order_id 略過，回傳只包含已更新的訂單
// @Tags        orders-admin
// @Accept      json
// @Produce     json
// @Param       body body     dto.BulkOrderStatusRequest true "狀態清單"
// @Success     200  {object} dto.OrderListResponse
// @Failure     400  {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /orders/status [put]
func BulkSetStatusHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.BulkOrderStatusRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.Error(c, err)
		}
		updates := make([]service.StatusUpdate, 0, len(req.Updates))
		for _, u := range req.Updates {
			updates = append(updates, service.StatusUpdate{OrderID: u.OrderID, Status: u.Status})
		}
		list, err := bulkSetStatus(c.Request().Context(), db, updates)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, dto.OrderListResponse{Orders: list})
	}
}

// BulkDeleteHandler 批次刪除訂單
// @Summary     Bulk delete orders
// @Tags        orders-admin
// @Accept      json
// @Produce     json
// @Param       body body     dto.BulkDeleteOrdersRequest true "訂單 id"
// @Success     200  {object} dto.BulkDeleteOrdersResponse
// @Failure     400  {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /orders/admin [delete]
func BulkDeleteHandler(db database.DB, rc *service.RevenueCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.BulkDeleteOrdersRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.Error(c, err)
		}
		deleted, err := bulkDelete(c.Request().Context(), db, req.OrderIDs)
		if err != nil {
			return handler.Error(c, err)
		}
		if len(deleted) > 0 {
			rc.Invalidate(c.Request().Context())
		}
		return c.JSON(http.StatusOK, dto.BulkDeleteOrdersResponse{Deleted: deleted})
	}
}
