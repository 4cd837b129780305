package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/cafebill-api/internal/config"
	"github.com/sangkips/cafebill-api/internal/domain/repository"
	"github.com/sangkips/cafebill-api/internal/presentation/http/handler"
	"github.com/sangkips/cafebill-api/internal/presentation/http/middleware"
	"github.com/sangkips/cafebill-api/pkg/utils"
)

// Handlers aggregates all HTTP handlers for route registration
type Handlers struct {
	Auth     *handler.AuthHandler
	Category *handler.CategoryHandler
	Item     *handler.ItemHandler
	Bill     *handler.BillHandler
	User     *handler.UserHandler
	Report   *handler.ReportHandler
	Printer  *handler.PrinterHandler
}

// Setup wires middleware and all API routes onto the engine
func Setup(
	router *gin.Engine,
	cfg *config.Config,
	jwtManager *utils.JWTManager,
	idempotencyRepo repository.IdempotencyRepository,
	h *Handlers,
) {
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))

	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(cfg.RateLimit.Requests) / float64(cfg.RateLimit.Duration),
		BurstSize:         cfg.RateLimit.Requests,
		CleanupInterval:   middleware.DefaultRateLimiterConfig().CleanupInterval,
		EntryTTL:          middleware.DefaultRateLimiterConfig().EntryTTL,
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.App.Name})
	})

	v1 := router.Group("/api/v1")
	v1.Use(rateLimiter.Middleware())

	// Public routes
	v1.GET("/menu", h.Category.Menu)
	v1.POST("/user/login", h.Auth.SendOTP)
	v1.POST("/user/verify-otp", h.Auth.VerifyOTP)
	v1.POST("/auth/sign-in", h.Auth.SignIn)
	v1.POST("/auth/refresh", h.Auth.Refresh)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(jwtManager))
	protected.Use(middleware.Idempotency(middleware.IdempotencyConfig{Repo: idempotencyRepo}))

	staff := middleware.RequireRole("admin", "staff")
	admin := middleware.RequireRole("admin")

	user := protected.Group("/user")
	{
		user.GET("/me", h.User.Me)
		user.PUT("/me", h.User.UpdateMe)
		user.GET("/all", admin, h.User.List)
		user.GET("/id/:id", admin, h.User.GetByID)
	}

	bill := protected.Group("/bill")
	bill.Use(staff)
	{
		bill.POST("", h.Bill.Create)
		bill.POST("/quote", h.Bill.Quote)
		bill.PUT("/:id", h.Bill.Update)
		bill.PATCH("/:id/status", h.Bill.UpdateStatus)
		bill.DELETE("/:id", h.Bill.Delete)
		bill.GET("/id/:billId", h.Bill.GetByID)
		bill.GET("/all", h.Bill.List)
		bill.GET("/users/search", h.Bill.SearchUsers)
		bill.GET("/user", h.Bill.GetUserByPhone)
	}

	category := protected.Group("/category")
	{
		category.GET("", h.Category.List)
		category.GET("/:id", h.Category.GetByID)
		category.POST("", admin, h.Category.Create)
		category.PUT("/:id", admin, h.Category.Update)
		category.DELETE("/:id", admin, h.Category.Delete)
	}

	item := protected.Group("/item")
	{
		item.GET("", h.Item.List)
		item.GET("/:id", h.Item.GetByID)
		item.POST("", admin, h.Item.Create)
		item.PUT("/:id", admin, h.Item.Update)
		item.DELETE("/:id", admin, h.Item.Delete)
	}

	report := protected.Group("/report")
	report.Use(admin)
	{
		report.GET("/dashboard", h.Report.Dashboard)
	}

	printer := protected.Group("/printer")
	printer.Use(staff)
	{
		printer.GET("/status", h.Printer.Status)
		printer.POST("/test", h.Printer.TestPrint)
		printer.GET("/receipt/:id", h.Printer.Receipt)
		printer.POST("/receipt/:id", h.Printer.PrintReceipt)
		printer.POST("/kot/:id", h.Printer.PrintKOT)
	}
}
