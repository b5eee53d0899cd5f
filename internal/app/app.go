package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"docuchat/client/internal/config"
	"docuchat/client/internal/database"
	"docuchat/client/internal/gateway"
	"docuchat/client/internal/repository"
	"docuchat/client/internal/store"
)

// App bundles the wired client: the local snapshot database, the API
// gateway, and the four state stores the shell drives.
type App struct {
	DB        *sql.DB
	Gateway   *gateway.Client
	Auth      *store.AuthStore
	Chats     *store.ChatStore
	Documents *store.DocumentStore
	UI        *store.UIStore
}

func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize snapshot database: %w", err)
	}

	snapshots := repository.NewSQLiteSnapshots(db)
	gw := gateway.NewClient(cfg.APIBaseURL, time.Duration(cfg.RequestTimeout)*time.Second, snapshots)

	app := &App{
		DB:        db,
		Gateway:   gw,
		Auth:      store.NewAuthStore(gw, snapshots),
		Chats:     store.NewChatStore(gw, cfg.DefaultTopK),
		Documents: store.NewDocumentStore(gw),
		UI:        store.NewUIStore(snapshots),
	}

	// A rejected token anywhere tears the session down everywhere.
	gw.OnAuthExpired(func() {
		slog.Warn("Session expired, signing out.")
		app.Auth.ForceLogout()
	})

	return app, nil
}

func Run() int {
	cfg, err := config.Load()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource()

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to build application", "error", err)
		return 1
	}
	defer func() {
		if err := app.DB.Close(); err != nil {
			slog.Error("Failed to close snapshot database", "error", err)
		}
	}()
	slog.Info("Successfully opened local snapshot database.")

	ctx := context.Background()

	if err := app.Gateway.Health(ctx); err != nil {
		slog.Warn("Backend health check failed, continuing anyway", "url", cfg.APIBaseURL, "error", err)
	}

	app.UI.Restore(ctx)
	app.Auth.RestoreSession(ctx)
	if user := app.Auth.CurrentUser(); user != nil {
		slog.Info("Restored previous session", "email", user.Email)
	}

	if err := newShell(app, os.Stdin, os.Stdout).run(ctx); err != nil {
		slog.Error("Shell terminated", "error", err)
		return 1
	}

	return 0
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
