package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/AnuGuin/LegalAI-Backend/internal/config"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/cache"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/database"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/logger"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/observability"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/scheduler"
	"github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver"
)

type Application struct {
	HTTPServer  *httpserver.HTTPServer
	Cleaner     *scheduler.Cleaner
	DB          *gorm.DB
	CacheClient *cache.Client
	Config      *config.Config
}

// @title LegalAI Backend API
// @version 1.0
// @description REST gateway for the LegalAI platform: accounts, conversations, translation, document generation and conversation sharing.
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func (application *Application) Start(ctx context.Context) error {
	log := logger.GetLogger()

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		return application.HTTPServer.Run()
	})

	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", application.Config.MetricsPort),
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	eg.Go(func() error {
		log.Info().Int("port", application.Config.MetricsPort).Msg("metrics server listening")
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()

		application.Cleaner.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := application.HTTPServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http server shutdown")
		}
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("metrics server shutdown")
		}
		if err := application.CacheClient.Close(); err != nil {
			log.Error().Err(err).Msg("close redis client")
		}
		return nil
	})

	return eg.Wait()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fallback := logger.GetLogger()
		fallback.Fatal().Err(err).Msg("load configuration")
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fallback := logger.GetLogger()
		fallback.Fatal().Err(err).Msg("configure logger")
	}

	otelShutdown, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("initialize observability")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("shutdown telemetry")
			}
		}()
	}

	application, err := CreateApplication()
	if err != nil {
		log.Fatal().Err(err).Msg("create application")
	}

	if cfg.AutoMigrate {
		if err := database.Migration(application.DB); err != nil {
			log.Fatal().Err(err).Msg("run migrations")
		}
	}

	if cfg.CleanupEnabled {
		if err := application.Cleaner.Start(); err != nil {
			log.Fatal().Err(err).Msg("start cleanup scheduler")
		}
	}

	if err := application.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped")
	}
}
