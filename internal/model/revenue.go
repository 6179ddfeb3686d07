// File: internal/model/revenue.go
package model

type RevenueBucket struct {
	Date         string  `json:"date"`
	TotalRevenue float64 `json:"totalRevenue"`
	OrderCount   int     `json:"orderCount"`
}

type RevenueReport struct {
	Date              string          `json:"date"`
	TotalRevenueToday float64         `json:"totalRevenueToday"`
	RevenueData       []RevenueBucket `json:"revenueData"`
}
