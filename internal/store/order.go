package store

import (
	"context"
	"fmt"

	"canteen/internal/database"
	"canteen/internal/model"
)

const orderViewSelect = `
	SELECT o.id, o.user_id, o.meal_option_id, to_char(o.date, 'YYYY-MM-DD'),
	       o.quantity, o.status, o.created_at,
	       u.username, m.name, m.price, o.quantity * m.price
	FROM orders o
	JOIN users u ON u.id = o.user_id
	JOIN meal_options m ON m.id = o.meal_option_id`

func scanOrderView(row interface{ Scan(dest ...any) error }, v *model.OrderView) error {
	return row.Scan(
		&v.ID,
		&v.UserID,
		&v.MealOptionID,
		&v.Date,
		&v.Quantity,
		&v.Status,
		&v.CreatedAt,
		&v.Username,
		&v.MealName,
		&v.Price,
		&v.TotalPrice,
	)
}

func CreateOrder(ctx context.Context, db database.Querier, o *model.Order) error {
	row := db.QueryRow(ctx,
		`INSERT INTO orders (user_id, meal_option_id, date, quantity, status)
		 VALUES ($1, $2, $3::date, $4, $5)
		 RETURNING id, created_at`,
		o.UserID,
		o.MealOptionID,
		o.Date,
		o.Quantity,
		o.Status,
	)
	if err := row.Scan(&o.ID, &o.CreatedAt); err != nil {
		return fmt.Errorf("CreateOrder: %w", err)
	}
	return nil
}

func GetOrder(ctx context.Context, db database.Querier, id int) (*model.Order, error) {
	o := &model.Order{}
	row := db.QueryRow(ctx,
		`SELECT id, user_id, meal_option_id, to_char(date, 'YYYY-MM-DD'), quantity, status, created_at
		 FROM orders WHERE id = $1`,
		id,
	)
	if err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.MealOptionID,
		&o.Date,
		&o.Quantity,
		&o.Status,
		&o.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("GetOrder: %w", err)
	}
	return o, nil
}

func GetOrderView(ctx context.Context, db database.Querier, id int) (*model.OrderView, error) {
	v := &model.OrderView{}
	row := db.QueryRow(ctx, orderViewSelect+` WHERE o.id = $1`, id)
	if err := scanOrderView(row, v); err != nil {
		return nil, fmt.Errorf("GetOrderView: %w", err)
	}
	return v, nil
}

func listOrderViews(ctx context.Context, db database.Querier, sql string, args ...any) ([]model.OrderView, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.OrderView{}
	for rows.Next() {
		var v model.OrderView
		if err := scanOrderView(rows, &v); err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func ListOrderViewsByUser(ctx context.Context, db database.Querier, userID int) ([]model.OrderView, error) {
	list, err := listOrderViews(ctx, db, orderViewSelect+` WHERE o.user_id = $1 ORDER BY o.date DESC, o.id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("ListOrderViewsByUser: %w", err)
	}
	return list, nil
}

func ListAllOrderViews(ctx context.Context, db database.Querier) ([]model.OrderView, error) {
	list, err := listOrderViews(ctx, db, orderViewSelect+` ORDER BY o.date DESC, o.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("ListAllOrderViews: %w", err)
	}
	return list, nil
}

// UpdateOrder 僅更新餐點與數量，狀態另由 UpdateOrderStatus 處理
func UpdateOrder(ctx context.Context, db database.Querier, o *model.Order) error {
	_, err := db.Exec(ctx,
		`UPDATE orders SET meal_option_id = $1, quantity = $2 WHERE id = $3`,
		o.MealOptionID,
		o.Quantity,
		o.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateOrder: %w", err)
	}
	return nil
}

// UpdateOrderStatus reports false when no order has the given id.
func UpdateOrderStatus(ctx context.Context, db database.Querier, id int, status string) (bool, error) {
	tag, err := db.Exec(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`,
		status,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("UpdateOrderStatus: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func DeleteOrder(ctx context.Context, db database.Querier, id int) (bool, error) {
	tag, err := db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("DeleteOrder: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteOrders 刪除存在的訂單並回傳實際刪除的 id，不存在者略過
func DeleteOrders(ctx context.Context, db database.Querier, ids []int) ([]int, error) {
	rows, err := db.Query(ctx,
		`DELETE FROM orders WHERE id = ANY($1) RETURNING id`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("DeleteOrders: %w", err)
	}
	defer rows.Close()

	deleted := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("DeleteOrders: %w", err)
		}
		deleted = append(deleted, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("DeleteOrders: %w", err)
	}
	return deleted, nil
}
