// File: internal/model/order.go
package model

import "time"

const StatusPending = "Pending"

type Order struct {
	ID           int       `db:"id" json:"id"`
	UserID       int       `db:"user_id" json:"user_id"`
	MealOptionID int       `db:"meal_option_id" json:"meal_option_id"`
	Date         string    `db:"date" json:"date"`
	Quantity     int       `db:"quantity" json:"quantity"`
	Status       string    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// OrderView joins an order with its owner and meal; TotalPrice is always
// computed from the current meal price, never stored.
type OrderView struct {
	Order
	Username   string  `db:"username" json:"user"`
	MealName   string  `db:"meal_name" json:"meal"`
	Price      float64 `db:"price" json:"price"`
	TotalPrice float64 `db:"total_price" json:"total_price"`
}
