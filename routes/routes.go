package routes

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/vollnycoelho/yogaa/middlewares"
	"github.com/vollnycoelho/yogaa/models"
	"github.com/vollnycoelho/yogaa/utils"
)

type deps struct {
	store models.Storage
	auth  *middlewares.SessionAuth
	inv   *utils.CacheInvalidator
}

// RegisterRoutes wires the API surface: public catalog reads, rate-limited
// auth endpoints, the cookie-authenticated booking area and the admin-only
// management routes.
func RegisterRoutes(
	server *gin.Engine,
	store models.Storage,
	auth *middlewares.SessionAuth,
	rdb *redis.Client,
	inv *utils.CacheInvalidator,
) {
	d := &deps{store: store, auth: auth, inv: inv}

	globalLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     20,
		Burst:   40,
		IdleTTL: 3 * time.Minute,
	})
	server.Use(globalLimiter.Middleware(func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	}))

	// register/login get a much stricter per-IP budget
	authLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     0.5,
		Burst:   5,
		IdleTTL: 10 * time.Minute,
	})
	server.POST("/api/auth/register",
		authLimiter.Middleware(func(c *gin.Context) string { return "register:" + c.ClientIP() }),
		d.register,
	)
	server.POST("/api/auth/login",
		authLimiter.Middleware(func(c *gin.Context) string { return "login:" + c.ClientIP() }),
		d.login,
	)
	server.POST("/api/auth/logout", d.logout)

	// public catalog
	server.GET("/api/sessions", d.listSessions)
	server.GET("/api/sessions/:id", d.getSession)
	server.GET("/api/exercises", d.listExercises)
	server.GET("/api/announcements", d.listAnnouncements)

	authed := server.Group("/api")
	authed.Use(auth.Authenticate)

	userLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     5,
		Burst:   10,
		IdleTTL: 10 * time.Minute,
	})
	authed.Use(userLimiter.Middleware(func(c *gin.Context) string {
		return "u:" + c.GetString("userId")
	}))
	authed.Use(middlewares.Quota(rdb, middlewares.QuotaRule{
		Limit:  2000,
		Window: 24 * time.Hour,
		KeyFn: func(c *gin.Context) string {
			uid := c.GetString("userId")
			if uid == "" {
				return ""
			}
			return fmt.Sprintf("quota:user:%s:day", uid)
		},
	}))

	authed.GET("/auth/me", d.me)
	authed.GET("/bookings", d.listBookings)
	authed.POST("/bookings", d.createBooking)
	authed.DELETE("/bookings/:id", d.deleteBooking)

	admin := authed.Group("")
	admin.Use(auth.RequireAdmin)
	admin.POST("/sessions", d.createSession)
	admin.PATCH("/sessions/:id", d.updateSession)
	admin.DELETE("/sessions/:id", d.deleteSession)
	admin.POST("/exercises", d.createExercise)
	admin.DELETE("/exercises/:id", d.deleteExercise)
	admin.POST("/announcements", d.createAnnouncement)
	admin.DELETE("/announcements/:id", d.deleteAnnouncement)
}
