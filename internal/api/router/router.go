package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/anastheace/faultandtms/config"
	"github.com/anastheace/faultandtms/internal/api/handler"
	"github.com/anastheace/faultandtms/internal/api/middleware"
	"github.com/anastheace/faultandtms/internal/api/validator"
	"github.com/anastheace/faultandtms/internal/model"
	"github.com/anastheace/faultandtms/pkg/jwt"
	"github.com/anastheace/faultandtms/pkg/redis"
)

const (
	maxBodyBytes     = 1 << 20
	authRateLimit    = 10
	authRateLimitWin = time.Minute
)

// Setup builds the gin engine. rdb may be nil when Redis is disabled.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, db *gorm.DB, logger *zap.Logger) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	if err := validator.Register(); err != nil {
		return nil, err
	}

	// nil *redis.Client must not become a non-nil interface
	var blacklist middleware.TokenBlacklist
	var window middleware.SlidingWindow
	if rdb != nil {
		blacklist, window = rdb, rdb
	}

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── health ──
	r.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		body := gin.H{"status": "ok"}
		if db != nil {
			if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
				status = http.StatusServiceUnavailable
				body = gin.H{"status": "degraded", "database": "unreachable"}
			}
		}
		c.JSON(status, body)
	})

	admin := middleware.RoleAuth(model.RoleAdmin)
	staffOps := middleware.RoleAuth(model.RoleAdmin, model.RoleTechnician)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			limit := middleware.RateLimit(window, authRateLimit, authRateLimitWin)
			auth.POST("/login", limit, h.Auth.Login)
			auth.POST("/register", limit, h.Auth.Register)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, blacklist))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.GET("/auth/technicians", h.Auth.ListTechnicians)
			authorized.POST("/users", admin, h.Auth.CreateUser)

			tickets := authorized.Group("/tickets")
			{
				tickets.POST("", h.Ticket.CreateTicket)
				tickets.GET("", h.Ticket.ListTickets)
				tickets.GET("/:id", h.Ticket.GetTicket)
				tickets.PUT("/:id/status", staffOps, h.Ticket.UpdateStatus)
				tickets.PUT("/:id/assign", admin, h.Ticket.AssignTicket)
				tickets.POST("/:id/updates", staffOps, h.Ticket.AddUpdate)
			}

			usage := authorized.Group("/usage")
			{
				usage.POST("/login", h.Usage.CheckIn)
				usage.POST("/logout", h.Usage.CheckOut)
				usage.GET("/logs", staffOps, h.Usage.ListLogs)
			}
			authorized.GET("/computers", staffOps, h.Usage.ListComputers)

			maintenance := authorized.Group("/maintenance")
			{
				maintenance.GET("", staffOps, h.Maintenance.ListSchedules)
				maintenance.POST("", admin, h.Maintenance.CreateSchedule)
				maintenance.GET("/calendar", staffOps, h.Maintenance.Calendar)
				maintenance.PUT("/:id/status", staffOps, h.Maintenance.UpdateStatus)
			}

			authorized.GET("/dashboard/stats", admin, h.Dashboard.Stats)
			authorized.GET("/export/report", admin, h.Export.ExportReport)
		}
	}

	return r, nil
}
