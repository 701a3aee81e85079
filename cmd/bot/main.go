package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordtrainer/internal/catalog"
	"wordtrainer/internal/config"
	"wordtrainer/internal/handler"
	"wordtrainer/internal/reminder"
	"wordtrainer/internal/repository"
	"wordtrainer/internal/repository/memory"
	"wordtrainer/internal/repository/postgres"
	"wordtrainer/internal/repository/redis"
	"wordtrainer/internal/repository/sqlite"
	"wordtrainer/internal/service"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Word Trainer Bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully",
		zap.String("store_driver", cfg.StoreDriver),
		zap.String("timezone", cfg.Location().String()),
	)

	// Open the record store
	store, closer, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}
	defer closer.Close()

	logger.Info("Store ready", zap.String("store_driver", cfg.StoreDriver))

	words, err := catalog.Load(cfg.WordsFile)
	if err != nil {
		logger.Fatal("Failed to load word catalog", zap.Error(err))
	}

	logger.Info("Word catalog loaded", zap.Int("words", len(words.Words)), zap.Int("phrases", len(words.Phrases)))

	// Initialize services
	records := repository.NewRecords(store)
	progress := service.NewProgressTracker(records)
	services := handler.Services{
		Accounts: service.NewAccountService(records, records, logger),
		Daily:    service.NewDailyWordSelector(records, nil),
		Progress: progress,
		Streak:   service.NewStreakMonitor(records, logger),
		Stats:    service.NewStatsService(progress),
		Speaking: service.NewSpeakingService(records, logger),
		Grammar:  service.NewGrammarService(records, logger),
	}

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			logger.Error("Handler failed", zap.Error(err))
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	// Initialize handler
	h := handler.NewHandler(bot, services, words, cfg.Location(), logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Schedule daily reminders
	job := reminder.NewJob(records, records, h.Notifier, logger)
	if err := job.Start(cfg.ReminderSchedule, cfg.Location()); err != nil {
		logger.Fatal("Failed to schedule reminders", zap.Error(err))
	}

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	job.Stop()

	logger.Info("Bot stopped gracefully")
}

// openStore opens the backend selected by STORE_DRIVER
func openStore(cfg *config.Config, logger *zap.Logger) (repository.Store, io.Closer, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := connectDatabase(cfg.DSN(), logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := runMigrations(db, logger); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgres.NewStore(db), db, nil

	case config.DriverRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		store, err := redis.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return store, store, nil

	case config.DriverMemory:
		logger.Warn("Using in-memory store, data is lost on restart")
		store := memory.NewStore()
		return store, store, nil

	default:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database %s: %w", cfg.SQLitePath, err)
		}
		return store, store, nil
	}
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply")
	} else {
		logger.Info("Migrations applied successfully")
	}

	return nil
}
