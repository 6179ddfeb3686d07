package store

import (
	"context"
	"fmt"

	"canteen/internal/database"
	"canteen/internal/model"
)

// UpsertMenu finds or creates the single menu row for date.
func UpsertMenu(ctx context.Context, db database.Querier, date string) (*model.Menu, error) {
	m := &model.Menu{}
	row := db.QueryRow(ctx,
		`INSERT INTO menus (date) VALUES ($1::date)
		 ON CONFLICT (date) DO UPDATE SET date = EXCLUDED.date
		 RETURNING id, to_char(date, 'YYYY-MM-DD')`,
		date,
	)
	if err := row.Scan(&m.ID, &m.Date); err != nil {
		return nil, fmt.Errorf("UpsertMenu: %w", err)
	}
	return m, nil
}

func GetMenuByDate(ctx context.Context, db database.Querier, date string) (*model.Menu, error) {
	m := &model.Menu{}
	row := db.QueryRow(ctx,
		`SELECT id, to_char(date, 'YYYY-MM-DD') FROM menus WHERE date = $1::date`,
		date,
	)
	if err := row.Scan(&m.ID, &m.Date); err != nil {
		return nil, fmt.Errorf("GetMenuByDate: %w", err)
	}
	return m, nil
}

// ReplaceMenuMeals 清空菜單後寫入新的餐點集合
func ReplaceMenuMeals(ctx context.Context, db database.Querier, menuID int, mealIDs []int) error {
	if _, err := db.Exec(ctx, `DELETE FROM meal_menu WHERE menu_id = $1`, menuID); err != nil {
		return fmt.Errorf("ReplaceMenuMeals: %w", err)
	}
	if len(mealIDs) == 0 {
		return nil
	}
	_, err := db.Exec(ctx,
		`INSERT INTO meal_menu (meal_option_id, menu_id)
		 SELECT unnest($1::int[]), $2
		 ON CONFLICT DO NOTHING`,
		mealIDs,
		menuID,
	)
	if err != nil {
		return fmt.Errorf("ReplaceMenuMeals: %w", err)
	}
	return nil
}

func ListMenuMeals(ctx context.Context, db database.Querier, menuID int) ([]model.MealOption, error) {
	rows, err := db.Query(ctx,
		`SELECT m.id, m.name, m.price, m.created_at
		 FROM meal_options m
		 JOIN meal_menu mm ON mm.meal_option_id = m.id
		 WHERE mm.menu_id = $1
		 ORDER BY m.id`,
		menuID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListMenuMeals: %w", err)
	}
	defer rows.Close()

	list := []model.MealOption{}
	for rows.Next() {
		var m model.MealOption
		if err := scanMealOption(rows, &m); err != nil {
			return nil, fmt.Errorf("ListMenuMeals: %w", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListMenuMeals: %w", err)
	}
	return list, nil
}

// RemoveMenuMeal reports whether the meal was on the menu.
func RemoveMenuMeal(ctx context.Context, db database.Querier, menuID, mealID int) (bool, error) {
	tag, err := db.Exec(ctx,
		`DELETE FROM meal_menu WHERE menu_id = $1 AND meal_option_id = $2`,
		menuID,
		mealID,
	)
	if err != nil {
		return false, fmt.Errorf("RemoveMenuMeal: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
