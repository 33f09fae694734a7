package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
	domainRepo "github.com/shesho2101/ProyectoIntegrador2/internal/domain/repository"
	"github.com/shesho2101/ProyectoIntegrador2/internal/infrastructure/config"
	"github.com/shesho2101/ProyectoIntegrador2/internal/infrastructure/oauth"
	"github.com/shesho2101/ProyectoIntegrador2/internal/infrastructure/persistence"
	"github.com/shesho2101/ProyectoIntegrador2/internal/infrastructure/router"
	"github.com/shesho2101/ProyectoIntegrador2/internal/infrastructure/websocket"
	"github.com/shesho2101/ProyectoIntegrador2/internal/interface/handler"
	"github.com/shesho2101/ProyectoIntegrador2/internal/interface/repository"
	"github.com/shesho2101/ProyectoIntegrador2/internal/usecase"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/logger"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/metrics"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger().Fatal("Failed to load config", "error", err)
	}

	// Create logger
	log := logger.NewLoggerWithLevel(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting Wayra storefront service", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Metrics on a dedicated registry, plus the Go and process collectors
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics("wayra", registry)

	// Client state store
	var (
		states  domainRepo.ClientStateRepository
		closers []func()
	)
	switch cfg.StateStore {
	case "redis":
		log.Info("Connecting to Redis", "addr", cfg.RedisAddr)
		redisClient, err := persistence.NewRedisClient(ctx, persistence.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", "error", err)
		}
		states = repository.NewRedisClientStateRepository(redisClient, log.Named("client_state"))
		closers = append(closers, func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Redis close error", "error", err)
			}
		})
	default:
		log.Info("Connecting to MongoDB")
		mongoClient, db, err := persistence.NewMongoClient(ctx, persistence.MongoConfig{
			URI:      cfg.MongoURI,
			Database: cfg.MongoDB,
			Username: cfg.MongoUser,
			Password: cfg.MongoPassword,
		})
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		states = repository.NewMongoClientStateRepository(db, log.Named("client_state"))
		closers = append(closers, func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				log.Error("MongoDB disconnect error", "error", err)
			}
		})
	}

	// Airport and route reference data
	var (
		airports domainRepo.AirportRepository
		routes   domainRepo.RouteDurationRepository
	)
	if cfg.PostgresURI != "" {
		log.Info("Connecting to PostgreSQL")
		gormDB, err := persistence.NewPostgresDB(cfg.PostgresURI)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		airportRepo := repository.NewGormAirportRepository(gormDB)
		if err := airportRepo.Migrate(ctx, repository.DefaultAirports); err != nil {
			log.Fatal("Failed to migrate airports", "error", err)
		}
		routeRepo := repository.NewGormRouteDurationRepository(gormDB)
		if err := routeRepo.Migrate(ctx, repository.DefaultRouteDurations); err != nil {
			log.Fatal("Failed to migrate route durations", "error", err)
		}
		airports, routes = airportRepo, routeRepo
	} else {
		log.Info("POSTGRES_DSN not set, using built-in reference data")
		airports = repository.NewStaticAirportRepository(repository.DefaultAirports)
		routes = repository.NewStaticRouteDurationRepository(repository.DefaultRouteDurations)
	}

	// Wayra API adapters
	api := repository.NewWayraAPI(cfg.WayraAPIURL, cfg.WayraAPITimeout, log.Named("wayra_api"), m)
	catalogRepo := repository.NewWayraCatalogRepository(api)
	accountRepo := repository.NewWayraAccountRepository(api)
	shoppingRepo := repository.NewWayraShoppingRepository(api)

	// Session notices
	hub := websocket.NewHub(websocket.AllowOrigins(cfg.AllowedOrigins), m, log.Named("websocket"))
	go hub.Run(ctx)

	watcher := usecase.NewSessionWatcher(states, oauth.DecodeClaims, hub, usecase.NewRealClock(), m, log.Named("session_watcher"))
	if err := watcher.Restore(ctx); err != nil {
		log.Error("Failed to restore session timers", "error", err)
	}

	// Usecases
	sizes := usecase.PageSizes{
		Hotels:       cfg.HotelPageSize,
		Buses:        cfg.BusPageSize,
		Flights:      cfg.FlightPageSize,
		Reservations: cfg.ReservationPerPage,
		AdminHotels:  cfg.AdminPageSize,
	}
	estimator := usecase.NewEstimator(routes, airports, utils.NewSafeRand(), m, log.Named("estimator"))
	prefs := usecase.NewPreferences(states, usecase.Defaults{Theme: entity.Theme(cfg.DefaultTheme)}, log)
	auth := usecase.NewAuthUsecase(accountRepo, states, prefs, watcher, oauth.DecodeClaims, log.Named("auth"))

	h := handler.NewHandler(handler.Usecases{
		Catalog:      usecase.NewCatalogUsecase(catalogRepo, estimator, sizes, log.Named("catalog")),
		Auth:         auth,
		Preferences:  prefs,
		Cart:         usecase.NewCartUsecase(shoppingRepo, auth, log.Named("cart")),
		Favorites:    usecase.NewFavoriteUsecase(shoppingRepo, auth, log.Named("favorites")),
		Opinions:     usecase.NewOpinionUsecase(shoppingRepo, auth, log.Named("opinions")),
		Reservations: usecase.NewReservationUsecase(shoppingRepo, auth, sizes.Reservations, log.Named("reservations")),
	}, m, log.Named("http"))

	server := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: router.SetupRouter(h, hub, router.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			ClientCookie:   cfg.ClientCookie,
			SecureCookie:   cfg.SecureCookie,
			Gatherer:       registry,
			Metrics:        m,
			Logger:         log,
		}),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	watcher.Stop()
	cancel() // stops the websocket hub

	for _, closeFn := range closers {
		closeFn()
	}

	log.Info("Wayra storefront service stopped")
}
