package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitness-rpg/handlers"
	"fitness-rpg/middleware"
	"fitness-rpg/services"
	"fitness-rpg/storage"
	"fitness-rpg/utils"
	"fitness-rpg/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatal("invalid configuration: ", err)
	}

	logger, err := utils.NewLogger(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []services.SessionOption{services.WithLogger(logger)}

	// Remote mirror is optional: without DATABASE_URL everything stays local
	var remote *workers.GormRemoteStore
	var mirror *workers.MirrorWriter
	if cfg.MirrorEnabled() {
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		remote = workers.NewGormRemoteStore(db)
		if err := remote.Migrate(); err != nil {
			logger.Fatal("failed to migrate database", zap.Error(err))
		}
		mirror = workers.NewMirrorWriter(remote, cfg.MirrorQueueSize, cfg.MirrorTimeout, logger)
		mirror.Start(ctx)
		opts = append(opts, services.WithMirror(mirror))
	} else {
		logger.Info("DATABASE_URL not set, remote mirror disabled")
	}

	session := services.NewGameSession(storage.NewSnapshotStore(cfg.StatePath), opts...)
	if err := session.Load(); err != nil {
		logger.Fatal("failed to load game state", zap.Error(err), zap.String("path", cfg.StatePath))
	}

	if remote != nil {
		workers.NewRemoteSyncWorker(remote, session, cfg.RemoteSyncInterval, logger).Start(ctx)
	}

	schedCfg := services.SchedulerConfig{Logger: logger, BackupInterval: cfg.BackupInterval}
	if cfg.BackupEnabled() {
		r2, err := utils.NewR2Client(ctx, cfg)
		if err != nil {
			logger.Fatal("failed to initialize R2 client", zap.Error(err))
		}
		backup := workers.NewSnapshotBackup(session, r2, nil, logger)
		schedCfg.Backup = func(ctx context.Context) error {
			_, err := backup.Run(ctx)
			return err
		}
	}
	sched, err := session.StartScheduler(ctx, schedCfg)
	if err != nil {
		logger.Fatal("failed to start scheduler", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 50 * 1024 * 1024, // large spreadsheet imports
	})
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
		MaxAge:       86400,
	}))

	handlers.SetupGameRoutes(app, session)
	handlers.SetupImportRoutes(app, session)
	handlers.SetupProgressionRoutes(app, session)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("Server error", zap.Error(err))
			stop()
		}
	}()

	logger.Info("✅ Server running",
		zap.String("port", cfg.Port),
		zap.Bool("mirror", cfg.MirrorEnabled()),
		zap.Bool("backup", cfg.BackupEnabled()),
		zap.String("cors", cfg.AllowedOrigins))

	<-ctx.Done()
	logger.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("HTTP shutdown", zap.Error(err))
	}
	if err := sched.Shutdown(); err != nil {
		logger.Warn("Scheduler shutdown", zap.Error(err))
	}
	if mirror != nil {
		mirror.Wait()
	}
}
