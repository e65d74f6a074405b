package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"kursapi/internal/adapters/cache"
	"kursapi/internal/adapters/httpclient"
	"kursapi/internal/adapters/postgres"
	"kursapi/internal/api"
	"kursapi/internal/config"
	"kursapi/internal/kurs"
	"kursapi/internal/kurs/handler"
	"kursapi/internal/platform/db"
	httpserver "kursapi/internal/platform/http"
)

// Run wires the application components, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	cfgLevel := appCfg.Logging.Level
	if parsedLvl, parseErr := logrus.ParseLevel(cfgLevel); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect)
	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// DB pool
	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	// Ingest mark cache
	ingestCache, err := cache.NewIngestMarkCache(appCfg.Cache.MaxDates)
	if err != nil {
		logrus.WithError(err).Error("Failed to create ingest mark cache")
		return err
	}
	defer ingestCache.Close()

	// Base HTTP client (configurable timeout); the rate page is an
	// uncontrolled external dependency, so a fetch timeout is mandatory.
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	// External page client
	pageClient := httpclient.NewRatePageClient(baseHTTPClient, appCfg.RatePage.URL)

	// Repository
	snapshotRepo := postgres.NewSnapshotRepository(pool)

	// Services
	kursService := kurs.NewService(snapshotRepo, ingestCache)
	ingestor := kurs.NewIngestor(snapshotRepo, pageClient, ingestCache)

	// Daily ingestion scheduler
	if appCfg.Scheduler.Enabled {
		scheduler := kurs.NewScheduler(ingestor, appCfg.Scheduler.IngestAtHourUTC)
		// Ensure scheduler stops before DB pool closes
		defer func() {
			if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
				logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
			}
		}()
		if startErr := scheduler.Start(ctx); startErr != nil {
			logrus.WithError(startErr).Error("Failed to start scheduler")
			return startErr
		}
		logrus.Info("✅ Scheduler activation successful")
	}

	// Handlers and router
	kursHandler := handler.NewKursHandler(kursService, ingestor)
	router := api.NewRouter(kursHandler)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}
