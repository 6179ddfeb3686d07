// File: internal/service/revenue.go
package service

import (
	"context"

	"canteen/internal/database"
	"canteen/internal/model"
	"canteen/internal/store"
)

var (
	revenueByDate  = store.RevenueByDate
	revenueForDate = store.RevenueForDate
)

// RevenueToday 以伺服器時鐘決定今天，沒有訂單時為 0
func RevenueToday(ctx context.Context, db database.Querier) (string, float64, error) {
	date := Today()
	total, err := revenueForDate(ctx, db, date)
	if err != nil {
		return "", 0, err
	}
	return date, total, nil
}

// RevenueByDate returns one bucket per order date, oldest first.
func RevenueByDate(ctx context.Context, db database.Querier) ([]model.RevenueBucket, error) {
	return revenueByDate(ctx, db)
}

// BuildRevenueReport serves the report from rc when possible and refills it
// on a miss. A nil rc always reads the ledger.
func BuildRevenueReport(ctx context.Context, db database.Querier, rc *RevenueCache) (*model.RevenueReport, error) {
	if r, ok := rc.Get(ctx); ok {
		return r, nil
	}

	date, total, err := RevenueToday(ctx, db)
	if err != nil {
		return nil, err
	}
	buckets, err := RevenueByDate(ctx, db)
	if err != nil {
		return nil, err
	}
	report := &model.RevenueReport{
		Date:              date,
		TotalRevenueToday: total,
		RevenueData:       buckets,
	}
	rc.Put(ctx, report)
	return report, nil
}
