package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abdurahmanit/GroupProject/lostpets/internal/apiclient"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/config"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/events"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/handler"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/imageurl"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/listing"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/middleware"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/navigation"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/notify"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/platform/tracer"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/router"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/session"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/storage"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/timer"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/view"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func main() {
	// 1. Logger
	appLogger := logger.NewLogger()
	defer func() { _ = appLogger.Sync() }()

	// 2. Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}
	appLogger.Info("Configuration loaded",
		zap.String("http_addr", cfg.HTTPAddr),
		zap.String("api_base_url", cfg.APIBaseURL),
		zap.String("storage_driver", cfg.StorageDriver),
		zap.Bool("nats_enabled", cfg.NATSURL != ""),
		zap.Bool("amqp_enabled", cfg.AMQPURL != ""),
	)

	// 3. Tracing
	tp := tracer.InitTracer(cfg.ServiceName, cfg.OTLPEndpoint, appLogger)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			appLogger.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}()

	metricsManager := metrics.NewMetricsManager(cfg.ServiceName)

	// 4. Durable local state
	ctx := context.Background()
	store, err := storage.Open(ctx, storage.Config{
		Driver:        cfg.StorageDriver,
		SQLitePath:    cfg.SQLitePath,
		RedisAddress:  cfg.RedisAddress,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	}, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open local storage", zap.Error(err))
	}
	defer store.Close()

	// 5. Events: NATS wins when both brokers are configured
	var publisher events.Publisher = events.Nop{}
	switch {
	case cfg.NATSURL != "":
		natsPublisher, err := events.NewNATSPublisher(cfg.NATSURL, appLogger, cfg.ServiceName)
		if err != nil {
			appLogger.Error("NATS unavailable, store events disabled", zap.Error(err))
			break
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	case cfg.AMQPURL != "":
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, appLogger)
		if err != nil {
			appLogger.Error("AMQP broker unavailable, store events disabled", zap.Error(err))
			break
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
	}

	// 6. API client and stores
	resolver := imageurl.NewResolver(imageurl.Config{
		Host:           cfg.ImageHost,
		BasePath:       cfg.ImageBasePath,
		StoragePrefix:  cfg.ImageStoragePrefix,
		PlaceholderURL: cfg.ImagePlaceholderURL,
	})
	client := apiclient.New(cfg.APIBaseURL, cfg.APITimeout, resolver, appLogger, apiclient.WithRecorder(metricsManager))

	clock := timer.Real()
	queue := notify.NewQueue(clock, cfg.NotificationTTL, appLogger, metricsManager)
	defer queue.Close()
	nav := navigation.NewTracker()

	sessionStore := session.NewStore(client, store, queue, nav, publisher, clock, appLogger)
	if sessionStore.Hydrate(ctx) {
		appLogger.Info("Restored previous session")
	}
	listingStore := listing.NewStore(client, sessionStore, queue, publisher, cfg.ItemsPerPage, appLogger)
	if !listingStore.Load(ctx) {
		appLogger.Warn("Initial listing load failed; the home page will retry")
	}

	views := view.NewBuilder(sessionStore, listingStore, queue, nav)
	autocomplete := view.NewAutocomplete(client, clock, cfg.SearchDebounce, appLogger)

	// 7. HTTP surface
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logger(appLogger))
	router.SetupSessionRoutes(r, handler.NewSessionHandler(sessionStore, views, client, queue, appLogger), sessionStore)
	router.SetupListingRoutes(r, handler.NewListingHandler(listingStore, views, autocomplete, appLogger), sessionStore)
	router.SetupNotificationRoutes(r, handler.NewNotificationHandler(queue, appLogger))
	router.SetupOpsRoutes(r, metricsManager.Handler())

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("address", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	appLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	appLogger.Info("Application stopped")
}
