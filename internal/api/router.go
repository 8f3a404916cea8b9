package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/bookshelf/storefront/docs" // registers the OpenAPI document
	"github.com/bookshelf/storefront/internal/api/handler"
	"github.com/bookshelf/storefront/internal/api/middleware"
	"github.com/bookshelf/storefront/internal/core/domain"
	"github.com/bookshelf/storefront/internal/core/service"
	infrahttp "github.com/bookshelf/storefront/internal/infrastructure/http"
	"github.com/bookshelf/storefront/internal/infrastructure/http/handlers"
)

// Deps is everything the gateway router needs.
type Deps struct {
	Storefront *service.Storefront
	Log        zerolog.Logger
	// Checks feed /health/ready.
	Checks handlers.Checks
	// Registry receives the HTTP request metrics. Nil means a fresh registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the gateway Echo instance with all routes
// registered. The session must be initialized before it serves traffic.
func NewRouter(d Deps) *echo.Echo {
	e := infrahttp.NewEcho(d.Log, d.Checks)
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "gateway",
		Registerer: reg,
	}))
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Dependencies ---
	sf := d.Storefront
	authHandler := handler.NewAuthHandler(sf.Session)
	bookHandler := handler.NewBookHandler(sf.Catalog)
	cartHandler := handler.NewCartHandler(sf, sf.Cart)
	checkoutHandler := handler.NewCheckoutHandler(sf.Checkout)
	billHandler := handler.NewBillHandler(sf.Billing)
	accountHandler := handler.NewAccountHandler(sf.Account)
	requireSession := middleware.RequireSession(sf.Session)

	api := e.Group("/api")

	// --- Public routes ---
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/session", authHandler.Session)
	api.GET("/books", bookHandler.List)
	api.GET("/books/:id", bookHandler.Get)

	// --- Session routes ---
	user := api.Group("", requireSession)
	user.GET("/cart", cartHandler.Get)
	user.DELETE("/cart", cartHandler.Clear)
	user.POST("/cart/purchases", cartHandler.AddPurchase)
	user.POST("/cart/loans", cartHandler.AddLoan)
	user.DELETE("/cart/:kind/:book_id", cartHandler.Remove)
	user.GET("/checkout", checkoutHandler.Status)
	user.POST("/checkout", checkoutHandler.Submit)
	user.GET("/bills", billHandler.Mine)
	user.GET("/bills/:id", billHandler.Get)
	user.GET("/profile", accountHandler.Profile)
	user.PUT("/profile", accountHandler.UpdateProfile)
	user.DELETE("/profile", accountHandler.DeleteProfile)

	// --- Admin routes ---
	admin := api.Group("/admin", requireSession, middleware.RBAC(domain.RoleAdmin))
	admin.POST("/books", bookHandler.Create)
	admin.PUT("/books/:id", bookHandler.Update)
	admin.DELETE("/books/:id", bookHandler.Delete)
	admin.GET("/bills", billHandler.All)
	admin.GET("/users", accountHandler.ListUsers)
	admin.GET("/users/:id", accountHandler.GetUser)
	admin.DELETE("/users/:id", accountHandler.DeleteUser)
	admin.PUT("/users/:id/role", accountHandler.ChangeRole)
	admin.GET("/users/:id/bills", accountHandler.UserBills)
	admin.GET("/users/:id/books", accountHandler.UserBooks)

	return e
}
