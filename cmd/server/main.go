package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/config"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/entity"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/handler"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/repository"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/service"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/middleware"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting beast-inventory service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.SKU{},
		&entity.BOMEdge{},
		&entity.InventoryRecord{},
		&entity.InventoryTransaction{},
		&entity.Forecast{},
		&entity.ProcessConfig{},
		&entity.Worker{},
		&entity.WorkerSchedule{},
	); err != nil {
		zapLogger.Fatal("AutoMigrate failed", zap.Error(err))
	}

	rdb := initRedis(cfg.Redis)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, cfg, zapLogger)
	handlers := handler.NewHandlers(services)

	seedAdmin(services, repos, zapLogger)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, db, rdb, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

// seedAdmin bootstraps the first account so a fresh deployment can log in.
func seedAdmin(services *service.Services, repos *repository.Repositories, zapLogger *zap.Logger) {
	ctx := context.Background()
	if _, err := repos.User.FindByUsername(ctx, "admin"); err == nil {
		return
	} else if err != repository.ErrNotFound {
		zapLogger.Warn("Admin seed check failed", zap.Error(err))
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
	}
	if _, err := services.Auth.CreateUser(ctx, "admin", password, "Administrator", "", entity.RoleAdmin); err != nil {
		zapLogger.Warn("Admin seed failed", zap.Error(err))
		return
	}
	zapLogger.Info("Seeded default admin account")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err == nil {
			err = rdb.Ping(c.Request.Context()).Err()
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
		{
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/logout", h.Auth.Logout)

			users := authorized.Group("/users")
			users.Use(middleware.RequireRole(entity.RoleAdmin))
			{
				users.POST("", h.Auth.CreateUser)
			}

			skus := authorized.Group("/skus")
			{
				skus.GET("", h.Catalog.List)
				skus.GET("/:id", h.Catalog.Get)
				skus.GET("/:id/components", h.Catalog.Components)
				skus.GET("/:id/used-in", h.Catalog.UsedIn)
				skus.POST("", middleware.RequireRole(entity.RolePlanner), h.Catalog.Create)
				skus.PUT("/:id", middleware.RequireRole(entity.RolePlanner), h.Catalog.Update)
				skus.PUT("/:id/components", middleware.RequireRole(entity.RolePlanner), h.Catalog.ReplaceComponents)
			}

			inventory := authorized.Group("/inventory")
			{
				inventory.GET("", h.Inventory.List)
				inventory.GET("/:sku_id", h.Inventory.BySKU)
				inventory.GET("/:sku_id/transactions", h.Inventory.Transactions)
				inventory.POST("/in", middleware.RequireRole(entity.RolePlanner), h.Inventory.StockIn)
				inventory.POST("/out", middleware.RequireRole(entity.RolePlanner), h.Inventory.StockOut)
				inventory.POST("/adjust", middleware.RequireRole(entity.RolePlanner), h.Inventory.Adjust)
			}

			forecasts := authorized.Group("/forecasts")
			{
				forecasts.GET("", h.Forecast.List)
				forecasts.PUT("", middleware.RequireRole(entity.RolePlanner), h.Forecast.Upsert)
				forecasts.DELETE("/:sku_id", middleware.RequireRole(entity.RolePlanner), h.Forecast.Delete)
				forecasts.POST("/run", middleware.RequireRole(entity.RolePlanner), h.Forecast.Run)
				forecasts.GET("/report", h.Forecast.Report)
				forecasts.GET("/report/export", h.Forecast.Export)
			}

			authorized.GET("/labor/capacity", h.Forecast.LaborCapacity)

			processes := authorized.Group("/processes")
			{
				processes.GET("", h.Process.List)
				processes.GET("/:id", h.Process.Get)
				processes.POST("", middleware.RequireRole(entity.RolePlanner), h.Process.Create)
				processes.PUT("/:id", middleware.RequireRole(entity.RolePlanner), h.Process.Update)
			}

			workers := authorized.Group("/workers")
			{
				workers.GET("", h.Schedule.ListWorkers)
				workers.GET("/:id", h.Schedule.GetWorker)
				workers.POST("", middleware.RequireRole(entity.RolePlanner), h.Schedule.CreateWorker)
				workers.PUT("/:id", middleware.RequireRole(entity.RolePlanner), h.Schedule.UpdateWorker)
				workers.POST("/:id/schedules", middleware.RequireRole(entity.RolePlanner), h.Schedule.CreateSchedule)
			}

			schedules := authorized.Group("/schedules")
			{
				schedules.PUT("/:id", middleware.RequireRole(entity.RolePlanner), h.Schedule.UpdateSchedule)
				schedules.DELETE("/:id", middleware.RequireRole(entity.RolePlanner), h.Schedule.DeleteSchedule)
			}
		}
	}
}
