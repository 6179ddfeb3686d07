package store

import (
	"context"
	"fmt"

	"canteen/internal/database"
	"canteen/internal/model"
)

// RevenueByDate buckets orders by their stored calendar date.
func RevenueByDate(ctx context.Context, db database.Querier) ([]model.RevenueBucket, error) {
	rows, err := db.Query(ctx,
		`SELECT to_char(o.date, 'YYYY-MM-DD') AS day,
		        SUM(o.quantity * m.price)::float8,
		        COUNT(*)
		 FROM orders o
		 JOIN meal_options m ON m.id = o.meal_option_id
		 GROUP BY o.date
		 ORDER BY o.date`,
	)
	if err != nil {
		return nil, fmt.Errorf("RevenueByDate: %w", err)
	}
	defer rows.Close()

	buckets := []model.RevenueBucket{}
	for rows.Next() {
		var b model.RevenueBucket
		if err := rows.Scan(&b.Date, &b.TotalRevenue, &b.OrderCount); err != nil {
			return nil, fmt.Errorf("RevenueByDate: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("RevenueByDate: %w", err)
	}
	return buckets, nil
}

func RevenueForDate(ctx context.Context, db database.Querier, date string) (float64, error) {
	var total float64
	err := db.QueryRow(ctx,
		`SELECT COALESCE(SUM(o.quantity * m.price), 0)::float8
		 FROM orders o
		 JOIN meal_options m ON m.id = o.meal_option_id
		 WHERE o.date = $1::date`,
		date,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("RevenueForDate: %w", err)
	}
	return total, nil
}
