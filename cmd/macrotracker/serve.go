package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"macrotracker/internal/handlers"
	"macrotracker/internal/logging"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long:  "Apply migrations, make sure an administrator exists and serve the web panel.",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	a := newApp(ctx)
	defer a.Close()

	log := logging.CLI()

	if n, err := a.auth.CleanupExpiredSessions(ctx); err != nil {
		log.WithError(err).Warn("Failed to clean up expired sessions")
	} else if n > 0 {
		log.WithField("count", n).Info("Removed expired sessions")
	}

	if _, err := a.auth.EnsureAdmin(ctx, a.cfg.Admin); err != nil {
		log.WithError(err).Fatal("Failed to bootstrap admin user")
	}

	if !a.cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := handlers.NewRouter(handlers.Deps{
		Config:       a.cfg,
		DB:           a.db,
		Auth:         a.auth,
		Users:        a.users,
		Products:     a.products,
		Meals:        a.meals,
		Consumptions: a.consumptions,
		Totals:       a.totals,
		Audit:        a.audit,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to build router")
	}

	srv := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.WithField("addr", srv.Addr).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shut down")
	}
}
