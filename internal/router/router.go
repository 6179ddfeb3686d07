// File: internal/router/router.go
package router

import (
	"canteen/internal/cache"
	"canteen/internal/config"
	"canteen/internal/database"
	"canteen/internal/handler"
	"canteen/internal/handler/auth"
	"canteen/internal/handler/meals"
	"canteen/internal/handler/menus"
	"canteen/internal/handler/orders"
	"canteen/internal/handler/revenue"
	"canteen/internal/metrics"
	"canteen/internal/middleware"
	"canteen/internal/service"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"
)

// Setup 註冊所有路由與中介層
// 中介層逐條掛在路由上，避免 Group.Use 額外註冊萬用路由
func Setup(e *echo.Echo, db database.DB, cch cache.Cache, rc *service.RevenueCache, cfg *config.Config) {
	authn := middleware.RequireAuth
	admin := middleware.RequireAdmin(db)
	limited := echomw.RateLimiter(echomw.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimitRPS)))

	api := e.Group("/api")

	// 健康檢查
	api.GET("/ping", handler.PingHandler(db, cch))

	// 註冊與登入 (限流)
	api.POST("/register", auth.RegisterHandler(db, cfg.AllowAdminRegistration), limited)
	api.POST("/login", auth.LoginHandler(db, cfg.JWTTTL), limited)

	// 餐點 (管理員)
	api.POST("/meal-options", meals.CreateMealHandler(db), admin)
	api.GET("/meal-options", meals.ListMealsHandler(db), admin)
	api.PUT("/meal-options/:id", meals.UpdateMealHandler(db, rc), admin)
	api.DELETE("/meal-options/:id", meals.DeleteMealHandler(db, rc), admin)

	// 菜單
	api.POST("/menus", menus.CreateMenuHandler(db), admin)
	api.POST("/menus/setDaily", menus.SetDailyHandler(db), admin)
	api.GET("/menus/today", menus.TodayHandler(db), authn)
	api.GET("/menus/:date", menus.GetByDateHandler(db), authn)
	api.DELETE("/menus/removeMeal/:mealId", menus.RemoveMealHandler(db), admin)

	// 訂單
	api.POST("/orders", orders.CreateOrderHandler(db, rc), authn)
	api.GET("/orders", orders.ListMyOrdersHandler(db), authn)
	api.PUT("/orders/:id", orders.UpdateOrderHandler(db, rc), authn)
	api.DELETE("/orders/:id", orders.DeleteOrderHandler(db, rc), authn)

	// 訂單管理 (管理員)
	api.GET("/orders/admin", orders.ListAllOrdersHandler(db), admin)
	api.DELETE("/orders/admin", orders.BulkDeleteHandler(db, rc), admin)
	api.PUT("/orders/status", orders.BulkSetStatusHandler(db), admin)
	api.PUT("/orders/:id/status", orders.SetStatusHandler(db), admin)

	// 營收
	api.GET("/revenue", revenue.ReportHandler(db, rc), admin)

	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
