// File: internal/service/catalog.go
package service

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"canteen/internal/database"
	"canteen/internal/model"
	"canteen/internal/store"

	"github.com/jackc/pgx/v5"
)

var (
	createMealOption   = store.CreateMealOption
	getMealOption      = store.GetMealOption
	listMealOptions    = store.ListMealOptions
	updateMealOption   = store.UpdateMealOption
	deleteMealOption   = store.DeleteMealOption
	countOrdersForMeal = store.CountOrdersForMeal
)

// MealPatch 未設定 (nil) 的欄位保留原值
type MealPatch struct {
	Name  *string
	Price *string
}

// MaxPrice 為 NUMERIC(10,2) 可存的最大值
const MaxPrice = 99999999.99

// ParsePrice accepts a finite, non-negative decimal that fits the price
// column once rounded to cents.
func ParsePrice(raw string) (float64, error) {
	p, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, newError(KindUnprocessable, "price must be a number")
	}
	if p < 0 {
		return 0, newError(KindUnprocessable, "price must not be negative")
	}
	if math.Round(p*100)/100 > MaxPrice {
		return 0, newError(KindUnprocessable, "price must not exceed %.2f", MaxPrice)
	}
	return p, nil
}

func mealNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return newError(KindNotFound, "meal option not found")
	}
	return err
}

func CreateMeal(ctx context.Context, db database.DB, name, rawPrice string) (*model.MealOption, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newError(KindValidation, "name is required")
	}
	price, err := ParsePrice(rawPrice)
	if err != nil {
		return nil, err
	}
	m := &model.MealOption{Name: name, Price: price}
	if err := createMealOption(ctx, db, m); err != nil {
		return nil, err
	}
	return m, nil
}

func UpdateMeal(ctx context.Context, db database.DB, id int, patch MealPatch) (*model.MealOption, error) {
	var name *string
	if patch.Name != nil {
		n := strings.TrimSpace(*patch.Name)
		if n == "" {
			return nil, newError(KindValidation, "name must not be empty")
		}
		name = &n
	}
	var price *float64
	if patch.Price != nil {
		p, err := ParsePrice(*patch.Price)
		if err != nil {
			return nil, err
		}
		price = &p
	}

	var updated *model.MealOption
	err := database.WithTx(ctx, db, func(q database.Querier) error {
		m, err := getMealOption(ctx, q, id)
		if err != nil {
			return mealNotFound(err)
		}
		if name != nil {
			m.Name = *name
		}
		if price != nil {
			m.Price = *price
		}
		if err := updateMealOption(ctx, q, m); err != nil {
			return err
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteMeal refuses to remove a meal that orders still reference, since
// their totals are computed from the live price. Menu links cascade.
func DeleteMeal(ctx context.Context, db database.DB, id int) error {
	return database.WithTx(ctx, db, func(q database.Querier) error {
		if _, err := getMealOption(ctx, q, id); err != nil {
			return mealNotFound(err)
		}
		n, err := countOrdersForMeal(ctx, q, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return newError(KindConflict, "meal option is referenced by %d order(s)", n)
		}
		return deleteMealOption(ctx, q, id)
	})
}

func ListMeals(ctx context.Context, db database.Querier) ([]model.MealOption, error) {
	return listMealOptions(ctx, db)
}
