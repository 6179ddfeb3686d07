package store

import (
	"context"
	"fmt"

	"canteen/internal/database"
	"canteen/internal/model"
)

func scanMealOption(row interface{ Scan(dest ...any) error }, m *model.MealOption) error {
	return row.Scan(&m.ID, &m.Name, &m.Price, &m.CreatedAt)
}

func CreateMealOption(ctx context.Context, db database.Querier, m *model.MealOption) error {
	row := db.QueryRow(ctx,
		`INSERT INTO meal_options (name, price)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		m.Name,
		m.Price,
	)
	if err := row.Scan(&m.ID, &m.CreatedAt); err != nil {
		return fmt.Errorf("CreateMealOption: %w", err)
	}
	return nil
}

func GetMealOption(ctx context.Context, db database.Querier, id int) (*model.MealOption, error) {
	m := &model.MealOption{}
	row := db.QueryRow(ctx,
		`SELECT id, name, price, created_at FROM meal_options WHERE id = $1`,
		id,
	)
	if err := scanMealOption(row, m); err != nil {
		return nil, fmt.Errorf("GetMealOption: %w", err)
	}
	return m, nil
}

func ListMealOptions(ctx context.Context, db database.Querier) ([]model.MealOption, error) {
	rows, err := db.Query(ctx,
		`SELECT id, name, price, created_at FROM meal_options ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListMealOptions: %w", err)
	}
	defer rows.Close()

	list := []model.MealOption{}
	for rows.Next() {
		var m model.MealOption
		if err := scanMealOption(rows, &m); err != nil {
			return nil, fmt.Errorf("ListMealOptions: %w", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListMealOptions: %w", err)
	}
	return list, nil
}

func UpdateMealOption(ctx context.Context, db database.Querier, m *model.MealOption) error {
	_, err := db.Exec(ctx,
		`UPDATE meal_options SET name = $1, price = $2 WHERE id = $3`,
		m.Name,
		m.Price,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateMealOption: %w", err)
	}
	return nil
}

func DeleteMealOption(ctx context.Context, db database.Querier, id int) error {
	_, err := db.Exec(ctx, `DELETE FROM meal_options WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("DeleteMealOption: %w", err)
	}
	return nil
}

// CountOrdersForMeal 回傳引用此餐點的訂單數
func CountOrdersForMeal(ctx context.Context, db database.Querier, mealID int) (int, error) {
	var n int
	if err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE meal_option_id = $1`,
		mealID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountOrdersForMeal: %w", err)
	}
	return n, nil
}

// ExistingMealOptionIDs filters ids down to those present in the catalog.
func ExistingMealOptionIDs(ctx context.Context, db database.Querier, ids []int) ([]int, error) {
	rows, err := db.Query(ctx,
		`SELECT id FROM meal_options WHERE id = ANY($1) ORDER BY id`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("ExistingMealOptionIDs: %w", err)
	}
	defer rows.Close()

	found := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ExistingMealOptionIDs: %w", err)
		}
		found = append(found, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ExistingMealOptionIDs: %w", err)
	}
	return found, nil
}
