package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/fekuna/smart-inventory/config"
	"github.com/fekuna/smart-inventory/internal/cache"
	"github.com/fekuna/smart-inventory/internal/database/postgres"
	"github.com/fekuna/smart-inventory/internal/httpapi"
	"github.com/fekuna/smart-inventory/internal/i18n"
	"github.com/fekuna/smart-inventory/internal/logger"
	"github.com/fekuna/smart-inventory/internal/notifier"
	"github.com/fekuna/smart-inventory/internal/rpc"
	"github.com/fekuna/smart-inventory/internal/store/memory"

	"github.com/fekuna/smart-inventory/internal/forecast"
	forecastH "github.com/fekuna/smart-inventory/internal/forecast/handler"
	forecastRepoPkg "github.com/fekuna/smart-inventory/internal/forecast/repository"
	forecastUCPkg "github.com/fekuna/smart-inventory/internal/forecast/usecase"

	"github.com/fekuna/smart-inventory/internal/inventory"
	invH "github.com/fekuna/smart-inventory/internal/inventory/handler"
	invListenerPkg "github.com/fekuna/smart-inventory/internal/inventory/listener"
	invRepoPkg "github.com/fekuna/smart-inventory/internal/inventory/repository"
	invUCPkg "github.com/fekuna/smart-inventory/internal/inventory/usecase"

	"github.com/fekuna/smart-inventory/internal/product"
	prodH "github.com/fekuna/smart-inventory/internal/product/handler"
	prodRepoPkg "github.com/fekuna/smart-inventory/internal/product/repository"
	prodUCPkg "github.com/fekuna/smart-inventory/internal/product/usecase"

	"github.com/fekuna/smart-inventory/internal/supplier"
	supRepoPkg "github.com/fekuna/smart-inventory/internal/supplier/repository"
	supUCPkg "github.com/fekuna/smart-inventory/internal/supplier/usecase"
)

type repositories struct {
	product   product.Repository
	supplier  supplier.Repository
	inventory inventory.Repository
	forecast  forecast.Repository
}

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Initialize i18n
	if err := i18n.Init(); err != nil {
		appLogger.Fatal("Could not load embedded locales", zap.Error(err))
	}
	i18n.SetDefaultLocale(cfg.I18n.DefaultLocale)
	if cfg.I18n.LocalesDir != "" {
		loadLocaleOverrides(cfg.I18n.LocalesDir, appLogger)
	}

	// 4. Open the store
	repos, closeStore := openStore(cfg, appLogger)
	defer closeStore()

	// 5. Initialize Redis
	var forecastCache forecast.Cache
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Redis, forecasts will not be cached", zap.Error(err))
		} else {
			defer redisClient.Close()
			forecastCache = redisClient
			appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}

	// 6. Notifier
	var alerts notifier.Notifier = notifier.Noop{}
	if cfg.Mail.Enabled() {
		alerts = notifier.NewSMTPNotifier(notifier.SMTPConfig{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
		}, appLogger)
	} else if cfg.Inventory.NotifyOnReorder {
		appLogger.Warn("NOTIFY_ON_REORDER is set but MAIL_HOST/MAIL_FROM are not; alerts are dropped")
	}

	loc, err := time.LoadLocation(cfg.Forecast.Timezone)
	if err != nil {
		appLogger.Warn("Unknown FORECAST_TIMEZONE, using local time", zap.String("timezone", cfg.Forecast.Timezone), zap.Error(err))
		loc = time.Local
	}

	// 7. Initialize UseCases
	prodUC := prodUCPkg.NewProductUseCase(repos.product, appLogger)
	supUC := supUCPkg.NewSupplierUseCase(repos.supplier, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(repos.inventory, forecastCache, alerts, invUCPkg.Options{
		ReorderQuantity: cfg.Inventory.ReorderQuantity,
		ReorderSource:   cfg.Inventory.ReorderSource,
		NotifyOnReorder: cfg.Inventory.NotifyOnReorder,
		AlertRecipient:  cfg.Mail.AlertRecipient,
		AlertLocale:     cfg.I18n.DefaultLocale,
	}, appLogger)
	forecastUC := forecastUCPkg.NewForecastUseCase(repos.forecast, forecastCache, forecastUCPkg.Options{
		Location: loc,
		CacheTTL: cfg.Forecast.CacheTTL,
	}, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 8. Sale feed listener
	var saleListener *invListenerPkg.SaleListener
	if len(cfg.Kafka.Brokers) > 0 {
		reader := invListenerPkg.NewKafkaReader(invListenerPkg.ReaderConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		})
		saleListener = invListenerPkg.NewSaleListener(reader, invUC, appLogger)
		go saleListener.Start(ctx)
		appLogger.Info("Listening for sale events", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	// 9. Start gRPC Server
	port := cfg.Server.GRPCPort
	if !strings.Contains(port, ":") {
		port = ":" + port
	}

	lis, err := net.Listen("tcp", port)
	if err != nil {
		appLogger.Fatal("failed to listen", zap.String("port", port), zap.Error(err))
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			rpc.RecoveryInterceptor(appLogger),
			rpc.LoggingInterceptor(appLogger),
		),
	)

	prodH.RegisterProductServiceServer(grpcServer, prodH.NewProductHandler(prodUC, supUC, appLogger))
	invH.RegisterInventoryServiceServer(grpcServer, invH.NewInventoryHandler(invUC, appLogger))
	forecastH.RegisterForecastServiceServer(grpcServer, forecastH.NewForecastHandler(forecastUC, appLogger))

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	appLogger.Info("Starting gRPC server", zap.String("port", port))
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// 10. Start HTTP front end
	httpServer := &http.Server{
		Addr: cfg.Server.HTTPAddr,
		Handler: httpapi.NewServer(httpapi.Deps{
			Products:  prodUC,
			Suppliers: supUC,
			Inventory: invUC,
			Forecasts: forecastUC,
			Location:  loc,
			Logger:    appLogger,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	appLogger.Info("Starting HTTP server", zap.String("addr", cfg.Server.HTTPAddr))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve http", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	healthServer.Shutdown()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("http shutdown", zap.Error(err))
	}
	grpcServer.GracefulStop()
	if saleListener != nil {
		if err := saleListener.Close(); err != nil {
			appLogger.Error("kafka reader close", zap.Error(err))
		}
	}
	appLogger.Info("Server stopped")
}

func openStore(cfg *config.Config, log logger.ZapLogger) (repositories, func()) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		log.Warn("Using in-memory store, data is lost on exit")
		store := memory.New()
		return repositories{product: store, supplier: store, inventory: store, forecast: store}, func() {}
	}

	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		log.Fatal("Could not connect to database", zap.Error(err))
	}
	log.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatal("Could not create schema", zap.Error(err))
	}

	return repositories{
		product:   prodRepoPkg.NewPGRepository(db),
		supplier:  supRepoPkg.NewPGRepository(db),
		inventory: invRepoPkg.NewPGRepository(db),
		forecast:  forecastRepoPkg.NewPGRepository(db),
	}, func() { db.Close() }
}

func loadLocaleOverrides(dir string, log logger.ZapLogger) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Warn("Failed to read locales dir", zap.String("dir", dir), zap.Error(err))
		return
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		file := filepath.Join(dir, e.Name())
		if err := i18n.Load(file); err != nil {
			log.Warn("Failed to load locale file", zap.String("file", file), zap.Error(err))
		}
	}
}
