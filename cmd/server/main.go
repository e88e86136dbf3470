package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go-desk/internal/auth"
	"go-desk/internal/clients"
	"go-desk/internal/config"
	"go-desk/internal/db"
	"go-desk/internal/launcher"
	"go-desk/internal/logging"
	"go-desk/internal/session"
	"go-desk/internal/web"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.Log.Level)

	gormDB, err := db.Open(cfg.Database.Path, logger)
	if err != nil {
		logger.Error("Failed to open database", "path", cfg.Database.Path, "error", err)
		os.Exit(1)
	}

	// Resolve the RustDesk executable once; the path is fixed until restart.
	rustdeskPath, found := launcher.Locate(cfg.Launcher.Path, cfg.Launcher.Candidates)
	switch {
	case found:
		logger.Info("RustDesk found", "path", rustdeskPath)
	case cfg.Launcher.Path != "":
		logger.Warn("Configured RustDesk path is not a file; automatic connection disabled",
			"path", cfg.Launcher.Path)
	default:
		logger.Warn("RustDesk not found in any known location; automatic connection disabled",
			"hint", "set RUSTDESK_PATH or launcher.candidates")
	}

	app, err := web.NewApp(web.Deps{
		Auth:      auth.NewService(gormDB),
		Clients:   clients.NewRegistry(gormDB),
		Sessions:  session.NewInsecure("/"),
		Launcher:  launcher.New(rustdeskPath, logger),
		Logger:    logger,
		AccessLog: os.Stdout,
	})
	if err != nil {
		logger.Error("Failed to build web app", "error", err)
		os.Exit(1)
	}

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		sig := <-stop
		logger.Info("Received shutdown signal", "signal", sig)
		if err := app.Shutdown(); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info("Server running", "url", "http://"+cfg.Web.Addr())
	if err := app.Listen(cfg.Web.Addr()); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Shutdown complete")
}
