package api

import (
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"repair-orders-backend/config"
	"repair-orders-backend/internal/mw"
	"repair-orders-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, cfg.Auth)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheStore := cache.New(cfg.Server.CacheTTL, 2*cfg.Server.CacheTTL)
	caching := mw.Cache(cacheStore, cfg.Server.CacheTTL)

	userGuard := mw.RequireRole(cfg.Auth.JWTSecret, mw.RoleUser)
	adminGuard := mw.RequireRole(cfg.Auth.JWTSecret, mw.RoleAdmin)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/auth/login", handler.Login)

		user := api.Group("/user", userGuard)
		{
			user.POST("/orders", handler.CreateOrder)
			user.GET("/orders", handler.ListMyOrders)
			user.GET("/orders/:id", handler.GetMyOrder)
		}

		admin := api.Group("/admin", adminGuard)
		{
			admin.GET("/engineers", handler.ListEngineers)
			admin.POST("/engineers", handler.CreateEngineer)
			admin.GET("/engineers/:id", handler.GetEngineer)
			admin.PUT("/engineers/:id", handler.UpdateEngineer)
			admin.DELETE("/engineers/:id", handler.DeleteEngineer)

			admin.GET("/orders/:id", handler.GetOrder)
			admin.PATCH("/orders/:id", handler.TransitionOrder)

			// The dashboard fans out several aggregate queries; cache it
			// briefly since it is a polling view.
			admin.GET("/dashboard", caching, handler.Dashboard)
		}
	}

	return r
}
