package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"stock-lens/src/config"
	"stock-lens/src/logger"
	"stock-lens/src/server"
	"stock-lens/src/watchlist"
)

// cleanupCron runs outcome log retention daily at 03:00.
const cleanupCron = "0 0 3 * * *"

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	flag.Parse()
	path := config.ResolvePath(*configPath)

	// Load config from YAML file
	conf, err := config.NewConfig(path)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(conf.MConfig, conf.Name)

	// 1. Storage
	db, err := setupDatabase(conf.MConfig, appLogger)
	if err != nil {
		os.Exit(1)
	}
	defer db.Close()

	// 2. Provider and lookup engine
	networkManager := setupNetwork(conf.MConfig)
	provider, err := setupProvider(conf.MConfig, appLogger, networkManager)
	if err != nil {
		os.Exit(1)
	}
	facade := setupAnalysis(conf.MConfig, provider, db)

	// 3. HTTP API and watchlist
	srv := server.NewAPIServer(conf.MConfig, facade, db, logger.NewLogger(conf.MConfig, "APIServer"))
	wl := watchlist.NewWatchlist(conf.MConfig, facade, srv, logger.NewLogger(conf.MConfig, "Watchlist"))
	srv.SetWatchlist(wl)

	if conf.Storage.RetentionDays > 0 {
		if err := wl.AddMaintenance(cleanupCron, "cleanup", db.CleanupOldData); err != nil {
			appLogger.Warning("Retention cleanup not scheduled: %v", err)
		}
	}
	if err := wl.Start(); err != nil {
		appLogger.Critical("Failed to start watchlist: %v", err)
		os.Exit(1)
	}

	// 4. Servers
	grpcServer := startServers(srv, facade, wl, conf, path, appLogger)

	// Lifecycle Management
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...")
	wl.Stop()
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	if err := srv.Stop(); err != nil {
		appLogger.Error("Server shutdown failed: %v", err)
	}
	appLogger.Info("Shutdown complete.")
}
