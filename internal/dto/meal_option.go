// File: internal/dto/meal_option.go
package dto

import (
	"encoding/json"
	"strings"
)

// Price 保留原始 JSON，數字或字串皆可，由 service 驗證
// swagger:model dto.CreateMealOptionRequest
type CreateMealOptionRequest struct {
	Name  string          `json:"name" validate:"required,max=100" example:"Chicken Curry"`
	Price json.RawMessage `json:"price" validate:"required" swaggertype:"number" example:"8.50"`
}

// swagger:model dto.UpdateMealOptionRequest
type UpdateMealOptionRequest struct {
	Name  *string         `json:"name,omitempty" validate:"omitempty,max=100" example:"Veggie Curry"`
	Price json.RawMessage `json:"price,omitempty" swaggertype:"number" example:"7.00"`
}

// PriceText returns the raw price with surrounding quotes removed.
func PriceText(raw json.RawMessage) string {
	return strings.Trim(strings.TrimSpace(string(raw)), `"`)
}
