// Package main is the entry point for the KARLAB Software site. It loads
// configuration, prepares the optional database and Redis, wires the
// plugins, and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/app"
	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/config"
	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/database"
	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/middleware"
)

// envFile is the optional .env file read before the environment.
var envFile string

var rootCmd = &cobra.Command{
	Use:   "karlab",
	Short: "KARLAB Software website server",
	Long: `Serves the KARLAB Software website: marketing pages, the contact and
business inquiry forms, newsletter sign-up and the chat widget API.

Run without a subcommand to start the server.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var initDBCmd = &cobra.Command{
	Use:   "initdb",
	Short: "Create the database tables if they do not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !database.InitSchema(cmd.Context(), database.NewFactory(cfg.Database)) {
			return fmt.Errorf("schema initialization failed, see log")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to an optional .env file")
	rootCmd.AddCommand(serveCmd, initDBCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads configuration and installs the global logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFrom(envFile)
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		return nil, err
	}
	setupLogging(cfg)
	return cfg, nil
}

// runServe starts the server and blocks until ctx is cancelled.
func runServe(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	slog.Info("starting KARLAB Software",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
		slog.Bool("mail", cfg.Mail.Enabled()),
		slog.Bool("ai", cfg.AI.Enabled()),
	)

	// --- Database ---
	// Connections are opened per operation; only the schema is touched here.
	factory := database.NewFactory(cfg.Database)
	database.InitSchema(ctx, factory)

	// --- Redis (optional) ---
	// Without Redis, or when it is unreachable, counters stay in memory.
	var limiter middleware.Limiter
	rdb, err := database.NewRedis(ctx, cfg.Redis)
	switch {
	case err != nil:
		slog.Warn("redis unavailable, using in-memory rate limiter", slog.Any("error", err))
		limiter = middleware.NewMemoryLimiter(ctx, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	case rdb == nil:
		limiter = middleware.NewMemoryLimiter(ctx, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	default:
		defer rdb.Close()
		slog.Info("connected to Redis")
		limiter = middleware.NewRedisLimiter(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	// --- Create Application ---
	application := app.New(cfg, factory, rdb, limiter)
	application.RegisterRoutes()

	// --- Graceful Shutdown ---
	// Drain in-flight requests when the process is told to stop.
	go func() {
		<-ctx.Done()
		slog.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := application.Echo.Shutdown(shutdownCtx); err != nil {
			slog.Error("server forced shutdown", slog.Any("error", err))
		}
	}()

	// --- Start Server ---
	if err := application.Start(); err != nil {
		slog.Error("server failed", slog.Any("error", err))
		return err
	}
	slog.Info("server stopped")
	return nil
}

// setupLogging configures the global slog logger based on the environment.
// Development uses text format for readability. Production uses JSON for
// structured log aggregation.
func setupLogging(cfg *config.Config) {
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	if cfg.IsDevelopment() {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
