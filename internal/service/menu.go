// File: internal/service/menu.go
package service

import (
	"context"
	"errors"

	"canteen/internal/database"
	"canteen/internal/model"
	"canteen/internal/store"

	"github.com/jackc/pgx/v5"
)

var (
	upsertMenu            = store.UpsertMenu
	getMenuByDate         = store.GetMenuByDate
	replaceMenuMeals      = store.ReplaceMenuMeals
	listMenuMeals         = store.ListMenuMeals
	removeMenuMeal        = store.RemoveMenuMeal
	existingMealOptionIDs = store.ExistingMealOptionIDs
)

// uniqueIDs 去除重複與非正數 id，保留原順序
func uniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// SetDailyMenu replaces the whole meal set of the menu for date, creating the
// menu if needed. Ids missing from the catalog are dropped silently.
func SetDailyMenu(ctx context.Context, db database.DB, rawDate string, mealIDs []int) (*model.MenuView, error) {
	date, err := ParseDate(rawDate)
	if err != nil {
		return nil, err
	}
	ids := uniqueIDs(mealIDs)

	var view *model.MenuView
	err = database.WithTx(ctx, db, func(q database.Querier) error {
		menu, err := upsertMenu(ctx, q, date)
		if err != nil {
			return err
		}
		keep := []int{}
		if len(ids) > 0 {
			if keep, err = existingMealOptionIDs(ctx, q, ids); err != nil {
				return err
			}
		}
		if err := replaceMenuMeals(ctx, q, menu.ID, keep); err != nil {
			return err
		}
		meals, err := listMenuMeals(ctx, q, menu.ID)
		if err != nil {
			return err
		}
		view = &model.MenuView{Menu: *menu, MealOptions: meals}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// GetMenu 當日無菜單時回傳空集合而非錯誤
func GetMenu(ctx context.Context, db database.Querier, rawDate string) ([]model.MealOption, error) {
	view, err := FindMenu(ctx, db, rawDate)
	if err != nil {
		if KindOf(err) == KindNotFound {
			return []model.MealOption{}, nil
		}
		return nil, err
	}
	return view.MealOptions, nil
}

// FindMenu is the singleton lookup: a missing menu is KindNotFound.
func FindMenu(ctx context.Context, db database.Querier, rawDate string) (*model.MenuView, error) {
	date, err := ParseDate(rawDate)
	if err != nil {
		return nil, err
	}
	menu, err := getMenuByDate(ctx, db, date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, newError(KindNotFound, "no menu for %s", date)
		}
		return nil, err
	}
	meals, err := listMenuMeals(ctx, db, menu.ID)
	if err != nil {
		return nil, err
	}
	return &model.MenuView{Menu: *menu, MealOptions: meals}, nil
}

func RemoveMealFromMenu(ctx context.Context, db database.DB, rawDate string, mealID int) error {
	date, err := ParseDate(rawDate)
	if err != nil {
		return err
	}
	return database.WithTx(ctx, db, func(q database.Querier) error {
		menu, err := getMenuByDate(ctx, q, date)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return newError(KindNotFound, "no menu for %s", date)
			}
			return err
		}
		removed, err := removeMenuMeal(ctx, q, menu.ID, mealID)
		if err != nil {
			return err
		}
		if !removed {
			return newError(KindNotFound, "meal option %d is not on the menu for %s", mealID, date)
		}
		return nil
	})
}
