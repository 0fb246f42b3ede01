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
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rentflow/backend/internal/application/payment"
	"github.com/rentflow/backend/internal/domain/billing"
	"github.com/rentflow/backend/internal/infrastructure/auth"
	"github.com/rentflow/backend/internal/infrastructure/config"
	"github.com/rentflow/backend/internal/infrastructure/lock"
	"github.com/rentflow/backend/internal/infrastructure/logger"
	"github.com/rentflow/backend/internal/infrastructure/persistence"
	"github.com/rentflow/backend/internal/infrastructure/scheduler"
	"github.com/rentflow/backend/internal/infrastructure/telemetry"
	"github.com/rentflow/backend/internal/interfaces/http/handler"
	"github.com/rentflow/backend/internal/interfaces/http/middleware"
	"github.com/rentflow/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/rentflow/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const version = "1.0.0"

//	@title			Rentflow Billing API
//	@version		1.0
//	@description	Rental billing and payment lifecycle API: monthly bill generation, usage, payments and reminders.

//	@contact.name	API Support
//	@contact.url	https://github.com/rentflow/backend

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting billing service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database
	db, err := persistence.NewDatabase(&cfg.Database,
		persistence.WithZapLogger(log, logger.MapGormLogLevel(cfg.Log.Level)),
		persistence.WithSlowQueryThreshold(cfg.Telemetry.DBSlowQueryThresh),
	)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        "postgresql",
	}, log); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Run lock, Redis when configured
	runLock, redisClient, err := lock.NewFactory(cfg.Redis, cfg.Scheduler.LockTTL,
		lock.WithLogger(log),
		lock.WithInMemoryFallback(!cfg.App.IsProduction()),
	).Create(context.Background())
	if err != nil {
		log.Fatal("Failed to initialize run lock", zap.Error(err))
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
	}

	billingMetrics := telemetry.NewBillingMetrics(prometheus.DefaultRegisterer)

	// Repositories
	paymentRepo := persistence.NewGormPaymentRecordRepository(db.DB)
	roomRepo := persistence.NewGormRoomRepository(db.DB)
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)

	// Application services
	rates := billing.RateDefaults{
		ElectricityUnitPrice: cfg.Billing.DefaultElectricityUnitPrice,
		WaterUnitPrice:       cfg.Billing.DefaultWaterUnitPrice,
	}
	paymentService := payment.NewPaymentService(paymentRepo, roomRepo, propertyRepo, log.Named("payment"),
		payment.PaymentServiceConfig{Rates: rates, HistoryLimit: cfg.Billing.HistoryLimit},
		payment.WithPaymentMetrics(billingMetrics),
	)
	generationService := payment.NewGenerationService(paymentRepo, roomRepo, log.Named("generation"),
		payment.GenerationServiceConfig{Rates: rates, DefaultDueDay: cfg.Billing.DefaultPaymentDueDay},
		payment.WithRunLock(runLock),
		payment.WithGenerationMetrics(billingMetrics),
	)
	reminderService := payment.NewReminderService(paymentRepo, propertyRepo, log.Named("reminder"),
		cfg.Billing.ReminderDueSoonDays)

	// Daily generation trigger
	location, err := cfg.Scheduler.Location()
	if err != nil {
		log.Fatal("Invalid scheduler timezone", zap.Error(err))
	}
	generationScheduler, err := scheduler.NewGenerationScheduler(generationService, log.Named("scheduler"),
		scheduler.GenerationSchedulerConfig{
			Enabled:    cfg.Scheduler.Enabled,
			CronSpec:   cfg.Scheduler.CronSpec,
			Location:   location,
			RunTimeout: cfg.Scheduler.RunTimeout,
		})
	if err != nil {
		log.Fatal("Failed to create generation scheduler", zap.Error(err))
	}
	if err := generationScheduler.Start(context.Background()); err != nil {
		log.Fatal("Failed to start generation scheduler", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := generationScheduler.Stop(ctx); err != nil {
			log.Error("Error stopping generation scheduler", zap.Error(err))
		}
	}()

	// HTTP handlers
	paymentHandler := handler.NewPaymentHandler(paymentService, generationService, reminderService,
		handler.WithLocation(location))
	healthHandler := handler.NewHealthHandler(db, generationScheduler, cfg.App.Name, version)

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing - Start the request span, then annotate it
	// 5. Metrics - Count and time requests
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
	}))
	engine.Use(middleware.SpanAnnotator())
	if cfg.Metrics.Enabled {
		engine.Use(middleware.NewHTTPMetrics(prometheus.DefaultRegisterer).Middleware())
	}

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", healthHandler.Health)
	if cfg.Metrics.Enabled {
		engine.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}
	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	jwtConfig := middleware.DefaultJWTConfig(auth.NewJWTService(cfg.JWT))
	jwtConfig.Logger = log
	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithAPIMiddleware(middleware.JWTAuthMiddlewareWithConfig(jwtConfig)),
	)
	for _, group := range router.PaymentRoutes(paymentHandler) {
		r.Register(group)
	}
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
