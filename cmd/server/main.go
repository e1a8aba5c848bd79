package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"studio-ops.backend/internal/config"
	chat "studio-ops.backend/internal/infrastructure/discord"
	"studio-ops.backend/pkg/logger"
	"studio-ops.backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = func(cfg *config.Config) {
		logger.InitWithFile(cfg.Server.Env, logger.FileConfig{
			Path:       cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
			Compress:   true,
		})
	}
	initRedis = redis.Init
	openDB    = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	getStdDB      = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
	newDiscord    = chat.NewSession
	openBot       = func(b interface{ Open() error }) error { return b.Open() }
	migrateModels = func(db *gorm.DB, models ...interface{}) error { return db.AutoMigrate(models...) }
	runServer     = func(ctx context.Context, h http.Handler, port string) error {
		srv := &http.Server{Addr: ":" + port, Handler: h, ReadHeaderTimeout: 10 * time.Second}
		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe() }()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	}
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// app holds the process-wide resources every subcommand starts from
type app struct {
	cfg     *config.Config
	db      *gorm.DB
	sqlDB   *sql.DB
	session *discordgo.Session
}

// bootstrap loads configuration and opens the logger, Redis, the database and the Discord session.
func bootstrap() (*app, error) {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()
	initLog(cfg)
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(redis.URLFromHostPort(cfg.Redis.Host, cfg.Redis.Port), cfg.Redis.Password); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(ctx, "Redis initialized")

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		_ = redis.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := getStdDB(db)
	if err != nil {
		_ = redis.Close()
		return nil, fmt.Errorf("failed to get generic database object: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Warn(ctx, "Database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(ctx, "Connected to PostgreSQL via GORM")
	}

	session, err := newDiscord(cfg.Discord.Token)
	if err != nil {
		_ = sqlDB.Close()
		_ = redis.Close()
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	return &app{cfg: cfg, db: db, sqlDB: sqlDB, session: session}, nil
}

func (a *app) Close() {
	if a.sqlDB != nil {
		_ = a.sqlDB.Close()
	}
	_ = redis.Close()
}
