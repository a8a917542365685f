package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/buildingMicroservices/inventory-api/internal/config"
	"github.com/kahvecikaan/buildingMicroservices/inventory-api/internal/domain"
	"github.com/kahvecikaan/buildingMicroservices/inventory-api/internal/events"
	"github.com/kahvecikaan/buildingMicroservices/inventory-api/internal/repository"
	"github.com/kahvecikaan/buildingMicroservices/inventory-api/internal/service"
	"github.com/kahvecikaan/buildingMicroservices/inventory-api/internal/storage/mongodb"
	httpTransport "github.com/kahvecikaan/buildingMicroservices/inventory-api/internal/transport/http"
	websocketTransport "github.com/kahvecikaan/buildingMicroservices/inventory-api/internal/transport/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		hclog.Default().Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize the logger
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "inventory-api",
		Level: hclog.LevelFromString(cfg.LogLevel),
	})

	// Create a standard logger for the HTTP server
	standardLogger := logger.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true})

	// Set up the product store
	var (
		prodRep repository.ProductRepository
		conn    *mongodb.Connection
	)
	switch cfg.Store {
	case config.StoreMemory:
		logger.Warn("Using in-memory store, data is lost on restart")
		prodRep = repository.NewMemoryProductRepository()
	default:
		ctx, cancel := context.WithTimeout(context.Background(), mongodb.ConnectTimeout)
		conn, err = mongodb.Open(ctx, cfg.Mongo, logger.Named("mongodb"))
		if err == nil {
			err = mongodb.EnsureSchema(ctx, conn.Database(), cfg.Mongo.Collection)
		}
		cancel()
		if err != nil {
			logger.Error("Failed to initialize MongoDB", "error", err)
			os.Exit(1)
		}
		prodRep = repository.NewMongoProductRepository(conn.Collection(cfg.Mongo.Collection))
	}

	// Initialize the event bus shared by the service and the websocket handler
	eventBus := events.NewEventBus[any]()

	ps := service.NewProductService(prodRep, eventBus, logger.Named("product-service"))

	ph := httpTransport.NewProductHandler(ps, domain.NewValidation(), logger.Named("http-handler"))

	wh := websocketTransport.NewHandler(
		logger.Named("websocket-handler"),
		eventBus,
		cfg.FrontendOrigin,
	)

	router, err := httpTransport.NewRouter(ph, wh, logger, httpTransport.RouterConfig{
		BasePath: cfg.BasePath,
		CORS:     httpTransport.DefaultCORSConfig(cfg.FrontendOrigin),
		Limiter:  httpTransport.NewRateLimiter(cfg.RateLimit.Max, cfg.RateLimit.Window),
	})
	if err != nil {
		logger.Error("Failed to build router", "error", err)
		os.Exit(1)
	}

	// Create the HTTP Server
	server := &http.Server{
		Addr:         cfg.BindAddress,
		Handler:      router,
		ErrorLog:     standardLogger,
		IdleTimeout:  120 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// Start the server in a new goroutine
	go func() {
		logger.Info("Starting server", "bind_address", cfg.BindAddress, "base_path", cfg.BasePath, "store", cfg.Store)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Error starting server", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("Shutting down server", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down server", "error", err)
	}

	if conn != nil {
		if err := conn.Close(shutdownCtx); err != nil {
			logger.Error("Error closing MongoDB connection", "error", err)
		}
	}
}
