// File: internal/service/order.go
package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"unicode/utf8"

	"canteen/internal/database"
	"canteen/internal/metrics"
	"canteen/internal/model"
	"canteen/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
)

const maxStatusLength = 50

var (
	createOrder          = store.CreateOrder
	getOrder             = store.GetOrder
	getOrderView         = store.GetOrderView
	updateOrder          = store.UpdateOrder
	updateOrderStatus    = store.UpdateOrderStatus
	deleteOrder          = store.DeleteOrder
	deleteOrders         = store.DeleteOrders
	listOrderViewsByUser = store.ListOrderViewsByUser
	listAllOrderViews    = store.ListAllOrderViews
)

type PlaceOrderInput struct {
	MealOptionID int
	Quantity     int
	// Date 空字串表示今天
	Date string
}

// OrderPatch holds the owner-editable fields; nil means unchanged.
type OrderPatch struct {
	MealOptionID *int
	Quantity     *int
}

type StatusUpdate struct {
	OrderID int
	Status  string
}

func orderNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return newError(KindNotFound, "order not found")
	}
	return err
}

// MaxQuantity orders.quantity 為 INTEGER
const MaxQuantity = math.MaxInt32

func validateQuantity(q int) error {
	if q <= 0 {
		return newError(KindValidation, "quantity must be a positive integer")
	}
	if q > MaxQuantity {
		return newError(KindValidation, "quantity must not exceed %d", MaxQuantity)
	}
	return nil
}

// ValidateStatus 狀態為自由字串，限制 1 至 50 字元
func ValidateStatus(status string) (string, error) {
	s := strings.TrimSpace(status)
	if s == "" {
		return "", newError(KindValidation, "status is required")
	}
	if utf8.RuneCountInString(s) > maxStatusLength {
		return "", newError(KindValidation, "status must be at most %d characters", maxStatusLength)
	}
	return s, nil
}

func PlaceOrder(ctx context.Context, db database.DB, userID int, in PlaceOrderInput) (*model.OrderView, error) {
	if err := validateQuantity(in.Quantity); err != nil {
		return nil, err
	}
	date := Today()
	if in.Date != "" {
		d, err := ParseDate(in.Date)
		if err != nil {
			return nil, err
		}
		date = d
	}

	var view *model.OrderView
	err := database.WithTx(ctx, db, func(q database.Querier) error {
		if _, err := getMealOption(ctx, q, in.MealOptionID); err != nil {
			return mealNotFound(err)
		}
		o := &model.Order{
			UserID:       userID,
			MealOptionID: in.MealOptionID,
			Date:         date,
			Quantity:     in.Quantity,
			Status:       model.StatusPending,
		}
		if err := createOrder(ctx, q, o); err != nil {
			return err
		}
		v, err := getOrderView(ctx, q, o.ID)
		if err != nil {
			return err
		}
		view = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordOrderPlaced()
	return view, nil
}

// UpdateOrder lets only the owning user change meal or quantity.
func UpdateOrder(ctx context.Context, db database.DB, orderID, callerID int, patch OrderPatch) (*model.OrderView, error) {
	if patch.Quantity != nil {
		if err := validateQuantity(*patch.Quantity); err != nil {
			return nil, err
		}
	}

	var view *model.OrderView
	err := database.WithTx(ctx, db, func(q database.Querier) error {
		o, err := getOrder(ctx, q, orderID)
		if err != nil {
			return orderNotFound(err)
		}
		if o.UserID != callerID {
			return newError(KindForbidden, "you can only modify your own orders")
		}
		if patch.MealOptionID != nil {
			if _, err := getMealOption(ctx, q, *patch.MealOptionID); err != nil {
				return mealNotFound(err)
			}
			o.MealOptionID = *patch.MealOptionID
		}
		if patch.Quantity != nil {
			o.Quantity = *patch.Quantity
		}
		if err := updateOrder(ctx, q, o); err != nil {
			return err
		}
		v, err := getOrderView(ctx, q, o.ID)
		if err != nil {
			return err
		}
		view = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func DeleteOrder(ctx context.Context, db database.DB, orderID, callerID int, callerIsAdmin bool) error {
	return database.WithTx(ctx, db, func(q database.Querier) error {
		o, err := getOrder(ctx, q, orderID)
		if err != nil {
			return orderNotFound(err)
		}
		if !callerIsAdmin && o.UserID != callerID {
			return newError(KindForbidden, "you can only delete your own orders")
		}
		if _, err := deleteOrder(ctx, q, orderID); err != nil {
			return err
		}
		return nil
	})
}

func SetStatus(ctx context.Context, db database.DB, orderID int, status string) (*model.OrderView, error) {
	s, err := ValidateStatus(status)
	if err != nil {
		return nil, err
	}

	var view *model.OrderView
	err = database.WithTx(ctx, db, func(q database.Querier) error {
		ok, err := updateOrderStatus(ctx, q, orderID, s)
		if err != nil {
			return err
		}
		if !ok {
			return newError(KindNotFound, "order not found")
		}
		v, err := getOrderView(ctx, q, orderID)
		if err != nil {
			return err
		}
		view = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// BulkSetStatus applies every update whose order exists and skips the rest;
// only updated orders are returned. An invalid status rejects the batch.
func BulkSetStatus(ctx context.Context, db database.DB, updates []StatusUpdate) ([]model.OrderView, error) {
	clean := make([]StatusUpdate, 0, len(updates))
	for _, u := range updates {
		s, err := ValidateStatus(u.Status)
		if err != nil {
			return nil, err
		}
		clean = append(clean, StatusUpdate{OrderID: u.OrderID, Status: s})
	}

	updated := []model.OrderView{}
	err := database.WithTx(ctx, db, func(q database.Querier) error {
		for _, u := range clean {
			ok, err := updateOrderStatus(ctx, q, u.OrderID, u.Status)
			if err != nil {
				return err
			}
			if !ok {
				logrus.WithField("order_id", u.OrderID).Debug("bulk status: order not found, skipped")
				continue
			}
			v, err := getOrderView(ctx, q, u.OrderID)
			if err != nil {
				return err
			}
			updated = append(updated, *v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// BulkDelete 刪除存在的訂單，回傳實際刪除的 id
func BulkDelete(ctx context.Context, db database.DB, orderIDs []int) ([]int, error) {
	ids := uniqueIDs(orderIDs)
	if len(ids) == 0 {
		return []int{}, nil
	}
	var deleted []int
	err := database.WithTx(ctx, db, func(q database.Querier) error {
		d, err := deleteOrders(ctx, q, ids)
		if err != nil {
			return err
		}
		deleted = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	if skipped := len(ids) - len(deleted); skipped > 0 {
		logrus.WithField("skipped", skipped).Debug("bulk delete: missing orders skipped")
	}
	return deleted, nil
}

func ListOrdersForUser(ctx context.Context, db database.Querier, userID int) ([]model.OrderView, error) {
	return listOrderViewsByUser(ctx, db, userID)
}

func ListAllOrders(ctx context.Context, db database.Querier) ([]model.OrderView, error) {
	return listAllOrderViews(ctx, db)
}
