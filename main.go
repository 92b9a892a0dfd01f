package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"paperdesk/archive"
	"paperdesk/bitable"
	"paperdesk/chat"
	"paperdesk/core"
	"paperdesk/db"
	"paperdesk/filestore"
	"paperdesk/logging"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Exit codes for the paperdesk binary.
const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Warning: could not load .env file: %v\n", err)
	}

	isDevelopment := os.Getenv("DEV_MODE") == "true"

	config, err := core.LoadConfig()
	if err != nil {
		printConfigError(err)
		return ExitCodeError
	}

	logger, err := logging.NewLogger(isDevelopment || config.DevMode, config.LogFile)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		return ExitCodeError
	}
	defer logger.Sync()

	// One id correlates every entry of this run
	logger = logger.With(zap.String("session_id", uuid.NewString()))

	logger.Info("configuration loaded",
		zap.String("base_url", config.BaseURL),
		zap.String("chat_model", config.ChatModel),
		zap.String("database", config.DatabasePath),
		zap.String("library_dir", config.LibraryDir),
		zap.Duration("ai_timeout", config.AITimeout),
		zap.Bool("dev_mode", isDevelopment || config.DevMode),
	)

	library, err := filestore.New(config.LibraryDir)
	if err != nil {
		logger.Error("failed to create paper library", zap.Error(err))
		fmt.Printf("Failed to create paper library: %v\n", err)
		return ExitCodeError
	}

	conn, err := db.OpenWithDefaults(config.DatabasePath)
	if err != nil {
		logger.Error("failed to open database", zap.Error(err))
		fmt.Printf("Failed to open database: %v\n", err)
		return ExitCodeError
	}
	defer conn.Close()

	if err := db.MigrateUpFromPath(config.DatabasePath, config.MigrationsPath); err != nil {
		logger.Error("migration failed", zap.Error(err))
		fmt.Printf("Database migration failed: %v\n", err)
		return ExitCodeError
	}

	repo := db.NewRepository(conn)
	mirror := bitable.NewClient(config.Mirror, config.AITimeout)
	chatClient := chat.NewClient(config)
	archiver := archive.NewManager(repo, mirror, chatClient)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repl := NewREPL(config, logger, repo, chatClient, archiver, library, os.Stdin, os.Stdout)
	if err := repl.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("reading loop failed", zap.Error(err))
		return ExitCodeError
	}
	logger.Info("shutdown complete")
	return ExitCodeSuccess
}

// printConfigError shows configuration problems with their fix instructions.
func printConfigError(err error) {
	if configErr, ok := core.IsConfigError(err); ok {
		fmt.Printf("Configuration error [%s]: %s\n", configErr.Code, configErr.Message)
		if configErr.Action != "" {
			fmt.Printf("  -> %s\n", configErr.Action)
		}
		return
	}
	fmt.Printf("Configuration error: %v\n", err)
}
