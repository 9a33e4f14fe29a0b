package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordquiz/internal/config"
	"wordquiz/internal/handler"
	"wordquiz/internal/quiz"
	"wordquiz/internal/repository/postgres"
	"wordquiz/internal/seed"
	"wordquiz/internal/service"
	"wordquiz/internal/speech"
	"wordquiz/internal/storage"
	"wordquiz/migrations"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	dbConnectAttempts = 30
	dbRetryDelay      = 2 * time.Second
	cleanupInterval   = 10 * time.Minute
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting WordQuiz Bot")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Cancelled on SIGINT/SIGTERM, including while still waiting for the database
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := connectDatabase(ctx, cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := runMigrations(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Storage and services
	loader := storage.NewLoader(postgres.NewKVRepo(db), seed.Words(), logger)
	saver := storage.NewDebouncer(cfg.SaveDebounce)

	authService := service.NewAuthService(postgres.NewUserRepo(db), cfg.BotPassword)
	vocabService := service.NewVocabService(loader, saver, logger)
	quizService := service.NewQuizService(quiz.NewRand(), logger)

	// No speech engine is bundled, utterances go to the log
	player := speech.NewPlayer(speech.NewLogSynthesizer(logger,
		speech.Voice{Name: "default-" + cfg.WordLang, Lang: cfg.WordLang},
		speech.Voice{Name: "default-" + cfg.TranslationLang, Lang: cfg.TranslationLang},
	), logger)

	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			fields := []zap.Field{zap.Error(err)}
			if c != nil && c.Sender() != nil {
				fields = append(fields, zap.Int64("user_id", c.Sender().ID))
			}
			logger.Error("Handler failed", fields...)
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	h := handler.NewHandler(bot, authService, vocabService, quizService, player,
		handler.Languages{Word: cfg.WordLang, Translation: cfg.TranslationLang},
		logger,
	)
	h.RegisterHandlers()

	go runCleanupJob(ctx, quizService, cfg.SessionIdleTimeout, logger)

	go func() {
		logger.Info("Bot started",
			zap.String("word_lang", cfg.WordLang),
			zap.String("translation_lang", cfg.TranslationLang),
		)
		bot.Start()
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received, stopping bot...")

	bot.Stop()
	player.Stop()

	// Write word lists still waiting for their debounce window
	vocabService.Flush()

	logger.Info("Bot stopped gracefully")
}

// connectDatabase opens PostgreSQL and waits until it answers, retrying while ctx is alive
func connectDatabase(ctx context.Context, dsn string, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = db.PingContext(pingCtx)
		cancel()
		if err == nil {
			logger.Info("Database connection established", zap.Int("attempt", attempt))
			return db, nil
		}

		if attempt == dbConnectAttempts {
			break
		}
		logger.Warn("Database not ready, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("delay", dbRetryDelay),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(dbRetryDelay):
		}
	}

	db.Close()
	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", dbConnectAttempts, err)
}

// runMigrations applies the embedded schema migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}
	return nil
}

// runCleanupJob periodically drops quizzes nobody is answering
func runCleanupJob(ctx context.Context, quizService *service.QuizService, maxIdle time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup job stopped")
			return
		case <-ticker.C:
			removed := quizService.CleanupIdle(maxIdle)
			logger.Debug("Idle quiz cleanup finished", zap.Int("removed", removed))
		}
	}
}
