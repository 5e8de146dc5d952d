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
	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"code-converter/backend/internal/config"
	config_http "code-converter/backend/internal/features/config/presentation/http"
	conversion_http "code-converter/backend/internal/features/conversion/presentation/http"
	"code-converter/backend/internal/middleware"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	logger.Info("code converter backend starting",
		zap.String("version", config.Version),
		zap.String("environment", cfg.Environment),
	)

	a, err := newApp(cmd.Context(), cfg, logger, true)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     newRouter(a),
		ReadTimeout: 30 * time.Second,
		// A text request may try the remote endpoint and then the local model.
		WriteTimeout: cfg.TextRequestBudget() + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}

// newRouter builds the gin engine and wraps it with CORS.
func newRouter(a *app) http.Handler {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(a.logger))

	conversionHandler := conversion_http.NewConversionHandler(a.conversion, a.cfg.UploadDir, a.cfg.ErrorRendering, a.logger)
	healthHandler := conversion_http.NewHealthHandler(a.conversion, a.localDevice)

	router.GET("/", conversionHandler.RootHandler)
	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Conversion API routes
	conversionHandler.RegisterRoutes(router.Group("/api"))

	// Config API routes
	config_http.NewProfileHandler(a.configService).RegisterRoutes(router.Group("/api/config"))

	return handlers.CORS(
		handlers.AllowedOrigins(a.cfg.CORSAllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", middleware.RequestIDHeader}),
		handlers.ExposedHeaders([]string{middleware.RequestIDHeader, conversion_http.StrategyHeader}),
	)(router)
}
