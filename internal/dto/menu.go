// File: internal/dto/menu.go
package dto

import "canteen/internal/model"

// swagger:model dto.SetDailyMenuRequest
type SetDailyMenuRequest struct {
	Date    string `json:"date" validate:"required" example:"2025-05-01"`
	MealIDs []int  `json:"meal_ids" example:"1,2,3"`
}

// CreateMenuRequest is the older menu payload keyed by meal_options.
// swagger:model dto.CreateMenuRequest
type CreateMenuRequest struct {
	Date        string `json:"date" validate:"required" example:"2025-05-01"`
	MealOptions []int  `json:"meal_options" example:"1,2"`
}

// swagger:model dto.MenuResponse
type MenuResponse struct {
	Date        string             `json:"date" example:"2025-05-01"`
	MealOptions []model.MealOption `json:"meal_options"`
}
