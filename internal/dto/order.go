// File: internal/dto/order.go
package dto

import "canteen/internal/model"

// swagger:model dto.CreateOrderRequest
type CreateOrderRequest struct {
	MealOptionID int `json:"meal_option_id" validate:"required" example:"1"`
	Quantity     int `json:"quantity" example:"2"`
	// 省略時為今天
	Date string `json:"date,omitempty" example:"2025-05-01"`
}

// swagger:model dto.UpdateOrderRequest
type UpdateOrderRequest struct {
	MealOptionID *int `json:"meal_option_id,omitempty" example:"2"`
	Quantity     *int `json:"quantity,omitempty" example:"3"`
}

// swagger:model dto.OrderStatusRequest
type OrderStatusRequest struct {
	Status string `json:"status" validate:"required" example:"Served"`
}

// swagger:model dto.OrderStatusItem
type OrderStatusItem struct {
	OrderID int    `json:"order_id" validate:"required" example:"1"`
	Status  string `json:"status" validate:"required" example:"Served"`
}

// swagger:model dto.BulkOrderStatusRequest
type BulkOrderStatusRequest struct {
	Updates []OrderStatusItem `json:"updates" validate:"required,dive"`
}

// swagger:model dto.BulkDeleteOrdersRequest
type BulkDeleteOrdersRequest struct {
	OrderIDs []int `json:"order_ids" validate:"required" example:"1,2,3"`
}

// swagger:model dto.BulkDeleteOrdersResponse
type BulkDeleteOrdersResponse struct {
	Deleted []int `json:"deleted" example:"1,3"`
}

// swagger:model dto.OrderListResponse
type OrderListResponse struct {
	Orders []model.OrderView `json:"orders"`
}
