package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"macrotracker/internal/config"
	"macrotracker/internal/database"
	"macrotracker/internal/logging"
	"macrotracker/internal/repository"
	"macrotracker/internal/services"
)

var rootCmd = &cobra.Command{
	Use:          "macrotracker",
	Short:        "Nutrition logging web application",
	Long:         "macrotracker serves the food log web panel and provides maintenance commands.",
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds the configuration, database and services shared by every command.
type app struct {
	cfg *config.Config
	db  *database.DB

	auth         *services.AuthService
	users        *services.UserService
	products     *services.ProductService
	meals        *services.MealService
	consumptions *services.ConsumptionService
	totals       *services.TotalsService
	audit        *services.AuditService
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logging.CLI().WithError(err).Fatal("Failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logging.CLI().WithError(err).Fatal("Invalid configuration")
	}
	logging.Configure(cfg.App.LogLevel)
	return cfg
}

func openDB(ctx context.Context, cfg *config.Config) *database.DB {
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		logging.CLI().WithError(err).Fatal("Failed to connect to database")
	}
	return db
}

// newApp loads the configuration, connects, applies pending migrations and
// wires the services.
func newApp(ctx context.Context) *app {
	cfg := loadConfig()
	db := openDB(ctx, cfg)

	applied, err := db.Migrate(ctx)
	if err != nil {
		db.Close()
		logging.CLI().WithError(err).Fatal("Failed to run migrations")
	}
	if applied > 0 {
		logging.DB().WithField("count", applied).Info("Applied migrations")
	}

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	productRepo := repository.NewProductRepository(db)
	mealRepo := repository.NewMealRepository(db)
	consumptionRepo := repository.NewConsumptionRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	auth := services.NewAuthService(userRepo, sessionRepo, cfg.Session.Duration)

	return &app{
		cfg:          cfg,
		db:           db,
		auth:         auth,
		users:        services.NewUserService(userRepo, auth),
		products:     services.NewProductService(productRepo, consumptionRepo),
		meals:        services.NewMealService(mealRepo),
		consumptions: services.NewConsumptionService(consumptionRepo, mealRepo, productRepo),
		totals:       services.NewTotalsService(consumptionRepo, mealRepo),
		audit:        services.NewAuditService(auditRepo),
	}
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		logging.DB().WithError(err).Warn("Failed to close database")
	}
}
