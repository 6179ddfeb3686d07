package service

import (
	"context"
	"encoding/json"
	"sort"
	"testing"
	"time"

	"canteen/internal/database"
	"canteen/internal/model"
	"canteen/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

func restoreGlobals() {
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	jsonMarshal = json.Marshal
	jsonUnmarshal = json.Unmarshal
	timeNow = time.Now
	parseWithClaims = jwt.ParseWithClaims

	userExists = store.UserExists
	createUser = store.CreateUser
	getUserByID = store.GetUserByID
	getUserByEmail = store.GetUserByEmail

	createMealOption = store.CreateMealOption
	getMealOption = store.GetMealOption
	listMealOptions = store.ListMealOptions
	updateMealOption = store.UpdateMealOption
	deleteMealOption = store.DeleteMealOption
	countOrdersForMeal = store.CountOrdersForMeal
	existingMealOptionIDs = store.ExistingMealOptionIDs

	upsertMenu = store.UpsertMenu
	getMenuByDate = store.GetMenuByDate
	replaceMenuMeals = store.ReplaceMenuMeals
	listMenuMeals = store.ListMenuMeals
	removeMenuMeal = store.RemoveMenuMeal

	createOrder = store.CreateOrder
	getOrder = store.GetOrder
	getOrderView = store.GetOrderView
	updateOrder = store.UpdateOrder
	updateOrderStatus = store.UpdateOrderStatus
	deleteOrder = store.DeleteOrder
	deleteOrders = store.DeleteOrders
	listOrderViewsByUser = store.ListOrderViewsByUser
	listAllOrderViews = store.ListAllOrderViews

	revenueByDate = store.RevenueByDate
	revenueForDate = store.RevenueForDate
}

// fixedClock 固定 timeNow 為指定日期中午
func fixedClock(t *testing.T, date string) {
	t.Helper()
	d, err := time.Parse(model.DateLayout, date)
	if err != nil {
		t.Fatal(err)
	}
	timeNow = func() time.Time { return d.Add(12 * time.Hour) }
}

// memLedger 是 store 層的記憶體版本，只用於 service 測試
type memLedger struct {
	nextID   int
	users    map[int]*model.User
	meals    map[int]*model.MealOption
	menus    map[string]*model.Menu
	menuMeal map[int][]int
	orders   map[int]*model.Order
}

func (l *memLedger) id() int {
	l.nextID++
	return l.nextID
}

func (l *memLedger) addMeal(name string, price float64) int {
	id := l.id()
	l.meals[id] = &model.MealOption{ID: id, Name: name, Price: price}
	return id
}

func (l *memLedger) addUser(name string) int {
	id := l.id()
	l.users[id] = &model.User{ID: id, Username: name, Email: name + "@example.com"}
	return id
}

func (l *memLedger) addOrder(userID, mealID int, date string, qty int) int {
	id := l.id()
	l.orders[id] = &model.Order{ID: id, UserID: userID, MealOptionID: mealID, Date: date, Quantity: qty, Status: model.StatusPending}
	return id
}

func (l *memLedger) view(id int) (*model.OrderView, error) {
	o, ok := l.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	m := l.meals[o.MealOptionID]
	v := &model.OrderView{Order: *o, MealName: m.Name, Price: m.Price, TotalPrice: float64(o.Quantity) * m.Price}
	if u, ok := l.users[o.UserID]; ok {
		v.Username = u.Username
	}
	return v, nil
}

func (l *memLedger) views(keep func(*model.Order) bool) []model.OrderView {
	ids := []int{}
	for id, o := range l.orders {
		if keep(o) {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	out := []model.OrderView{}
	for _, id := range ids {
		v, _ := l.view(id)
		out = append(out, *v)
	}
	return out
}

func (l *memLedger) mealList(ids []int) []model.MealOption {
	out := []model.MealOption{}
	for _, id := range ids {
		if m, ok := l.meals[id]; ok {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// installLedger 以記憶體資料替換所有 store 函式
func installLedger(t *testing.T) *memLedger {
	t.Helper()
	t.Cleanup(restoreGlobals)
	l := &memLedger{
		users:    map[int]*model.User{},
		meals:    map[int]*model.MealOption{},
		menus:    map[string]*model.Menu{},
		menuMeal: map[int][]int{},
		orders:   map[int]*model.Order{},
	}

	userExists = func(_ context.Context, _ database.Querier, username, email string) (bool, error) {
		for _, u := range l.users {
			if u.Username == username || u.Email == email {
				return true, nil
			}
		}
		return false, nil
	}
	createUser = func(_ context.Context, _ database.Querier, u *model.User) (*model.User, error) {
		u.ID = l.id()
		cp := *u
		l.users[u.ID] = &cp
		return u, nil
	}
	getUserByID = func(_ context.Context, _ database.Querier, id int) (*model.User, error) {
		if u, ok := l.users[id]; ok {
			cp := *u
			return &cp, nil
		}
		return nil, pgx.ErrNoRows
	}
	getUserByEmail = func(_ context.Context, _ database.Querier, email string) (*model.User, error) {
		for _, u := range l.users {
			if u.Email == email {
				cp := *u
				return &cp, nil
			}
		}
		return nil, pgx.ErrNoRows
	}

	createMealOption = func(_ context.Context, _ database.Querier, m *model.MealOption) error {
		m.ID = l.id()
		cp := *m
		l.meals[m.ID] = &cp
		return nil
	}
	getMealOption = func(_ context.Context, _ database.Querier, id int) (*model.MealOption, error) {
		if m, ok := l.meals[id]; ok {
			cp := *m
			return &cp, nil
		}
		return nil, pgx.ErrNoRows
	}
	listMealOptions = func(context.Context, database.Querier) ([]model.MealOption, error) {
		ids := []int{}
		for id := range l.meals {
			ids = append(ids, id)
		}
		return l.mealList(ids), nil
	}
	updateMealOption = func(_ context.Context, _ database.Querier, m *model.MealOption) error {
		if _, ok := l.meals[m.ID]; !ok {
			return pgx.ErrNoRows
		}
		cp := *m
		l.meals[m.ID] = &cp
		return nil
	}
	deleteMealOption = func(_ context.Context, _ database.Querier, id int) error {
		delete(l.meals, id)
		for menuID, ids := range l.menuMeal {
			kept := []int{}
			for _, mid := range ids {
				if mid != id {
					kept = append(kept, mid)
				}
			}
			l.menuMeal[menuID] = kept
		}
		return nil
	}
	countOrdersForMeal = func(_ context.Context, _ database.Querier, id int) (int, error) {
		n := 0
		for _, o := range l.orders {
			if o.MealOptionID == id {
				n++
			}
		}
		return n, nil
	}
	existingMealOptionIDs = func(_ context.Context, _ database.Querier, ids []int) ([]int, error) {
		out := []int{}
		for _, id := range ids {
			if _, ok := l.meals[id]; ok {
				out = append(out, id)
			}
		}
		return out, nil
	}

	upsertMenu = func(_ context.Context, _ database.Querier, date string) (*model.Menu, error) {
		if m, ok := l.menus[date]; ok {
			cp := *m
			return &cp, nil
		}
		m := &model.Menu{ID: l.id(), Date: date}
		l.menus[date] = m
		cp := *m
		return &cp, nil
	}
	getMenuByDate = func(_ context.Context, _ database.Querier, date string) (*model.Menu, error) {
		if m, ok := l.menus[date]; ok {
			cp := *m
			return &cp, nil
		}
		return nil, pgx.ErrNoRows
	}
	replaceMenuMeals = func(_ context.Context, _ database.Querier, menuID int, ids []int) error {
		l.menuMeal[menuID] = append([]int{}, ids...)
		return nil
	}
	listMenuMeals = func(_ context.Context, _ database.Querier, menuID int) ([]model.MealOption, error) {
		return l.mealList(l.menuMeal[menuID]), nil
	}
	removeMenuMeal = func(_ context.Context, _ database.Querier, menuID, mealID int) (bool, error) {
		ids := l.menuMeal[menuID]
		for i, id := range ids {
			if id == mealID {
				l.menuMeal[menuID] = append(ids[:i:i], ids[i+1:]...)
				return true, nil
			}
		}
		return false, nil
	}

	createOrder = func(_ context.Context, _ database.Querier, o *model.Order) error {
		o.ID = l.id()
		cp := *o
		l.orders[o.ID] = &cp
		return nil
	}
	getOrder = func(_ context.Context, _ database.Querier, id int) (*model.Order, error) {
		if o, ok := l.orders[id]; ok {
			cp := *o
			return &cp, nil
		}
		return nil, pgx.ErrNoRows
	}
	getOrderView = func(_ context.Context, _ database.Querier, id int) (*model.OrderView, error) {
		return l.view(id)
	}
	updateOrder = func(_ context.Context, _ database.Querier, o *model.Order) error {
		cp := *o
		l.orders[o.ID] = &cp
		return nil
	}
	updateOrderStatus = func(_ context.Context, _ database.Querier, id int, status string) (bool, error) {
		o, ok := l.orders[id]
		if !ok {
			return false, nil
		}
		o.Status = status
		return true, nil
	}
	deleteOrder = func(_ context.Context, _ database.Querier, id int) (bool, error) {
		_, ok := l.orders[id]
		delete(l.orders, id)
		return ok, nil
	}
	deleteOrders = func(_ context.Context, _ database.Querier, ids []int) ([]int, error) {
		out := []int{}
		for _, id := range ids {
			if _, ok := l.orders[id]; ok {
				delete(l.orders, id)
				out = append(out, id)
			}
		}
		return out, nil
	}
	listOrderViewsByUser = func(_ context.Context, _ database.Querier, userID int) ([]model.OrderView, error) {
		return l.views(func(o *model.Order) bool { return o.UserID == userID }), nil
	}
	listAllOrderViews = func(context.Context, database.Querier) ([]model.OrderView, error) {
		return l.views(func(*model.Order) bool { return true }), nil
	}

	revenueByDate = func(context.Context, database.Querier) ([]model.RevenueBucket, error) {
		byDate := map[string]*model.RevenueBucket{}
		for id := range l.orders {
			v, _ := l.view(id)
			b, ok := byDate[v.Date]
			if !ok {
				b = &model.RevenueBucket{Date: v.Date}
				byDate[v.Date] = b
			}
			b.TotalRevenue += v.TotalPrice
			b.OrderCount++
		}
		out := []model.RevenueBucket{}
		for _, b := range byDate {
			out = append(out, *b)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
		return out, nil
	}
	revenueForDate = func(_ context.Context, _ database.Querier, date string) (float64, error) {
		total := 0.0
		for id, o := range l.orders {
			if o.Date == date {
				v, _ := l.view(id)
				total += v.TotalPrice
			}
		}
		return total, nil
	}
	return l
}
