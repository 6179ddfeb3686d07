// File: internal/model/menu.go
package model

// DateLayout is the ISO calendar date format used for menus, orders and revenue buckets.
const DateLayout = "2006-01-02"

type Menu struct {
	ID   int    `db:"id" json:"id"`
	Date string `db:"date" json:"date"`
}

// MenuView 某日菜單及其餐點
type MenuView struct {
	Menu
	MealOptions []MealOption `json:"meal_options"`
}
