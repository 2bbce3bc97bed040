package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"macrotracker/internal/config"
	"macrotracker/internal/logging"
	"macrotracker/internal/middleware"
	"macrotracker/internal/services"
	"macrotracker/internal/templates"
)

// Deps bundles what the router needs to build every handler.
type Deps struct {
	Config       *config.Config
	DB           Pinger
	Auth         *services.AuthService
	Users        *services.UserService
	Products     *services.ProductService
	Meals        *services.MealService
	Consumptions *services.ConsumptionService
	Totals       *services.TotalsService
	Audit        *services.AuditService
}

func NewRouter(d Deps) (*gin.Engine, error) {
	renderer, err := templates.New()
	if err != nil {
		return nil, err
	}

	cfg := d.Config
	secure := cfg.Session.SecureCookie

	authHandler := NewAuthHandler(d.Auth, d.Audit, secure)
	userHandler := NewUserHandler(d.Users, d.Audit)
	auditHandler := NewAuditHandler(d.Audit)
	dashboardHandler := NewDashboardHandler(d.Totals, d.Meals, d.Consumptions)
	productHandler := NewProductHandler(d.Products, d.Audit)
	mealHandler := NewMealHandler(d.Meals, d.Audit)
	consumptionHandler := NewConsumptionHandler(d.Consumptions, d.Audit)
	healthHandler := NewHealthHandler(d.DB)

	r := gin.New()
	r.HTMLRender = renderer
	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logging.HTTP().WithField("panic", recovered).
			WithField("request_id", middleware.GetRequestID(c)).
			Error("Recovered from panic")
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())

	r.GET("/healthz", healthHandler.Healthz)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", middleware.IPWhitelist(cfg.Metrics.AllowedNetworks), gin.WrapH(promhttp.Handler()))
	}

	flashes := middleware.Flashes(cfg.App.Secret, secure)
	optionalAuth := middleware.OptionalAuth(d.Auth, secure)

	panel := r.Group("/")
	panel.Use(flashes)
	panel.Use(middleware.CSRF(secure))

	panel.GET("/signup", authHandler.SignupPage)
	panel.POST("/signup", authHandler.Signup)
	panel.GET("/login", authHandler.LoginPage)
	panel.POST("/login", authHandler.Login)
	panel.GET("/logout", authHandler.Logout)
	panel.POST("/logout", authHandler.Logout)

	protected := panel.Group("/")
	protected.Use(middleware.Auth(d.Auth, secure))
	{
		protected.GET("/", dashboardHandler.Dashboard)
		protected.GET("/history", dashboardHandler.History)

		protected.GET("/products", productHandler.List)
		protected.GET("/products/new", productHandler.New)
		protected.POST("/products/new", productHandler.Create)
		protected.POST("/products/:id/delete", productHandler.Delete)

		protected.GET("/meals", mealHandler.List)
		protected.GET("/meals/new", mealHandler.New)
		protected.POST("/meals/new", mealHandler.Create)

		protected.GET("/consumptions/new", consumptionHandler.New)
		protected.POST("/consumptions/new", consumptionHandler.Create)
	}

	admin := panel.Group("/admin")
	admin.Use(optionalAuth, middleware.RequireAdmin())
	{
		admin.GET("/pending", userHandler.Pending)
		admin.POST("/approve/:id", userHandler.Approve)
		admin.GET("/users", userHandler.List)
		admin.GET("/audit", auditHandler.List)
	}

	r.NoRoute(flashes, optionalAuth, notFound)

	return r, nil
}
