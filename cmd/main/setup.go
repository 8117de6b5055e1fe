package main

import (
	"stock-lens/src/analysis"
	datasource "stock-lens/src/data_source"
	"stock-lens/src/interfaces"
	"stock-lens/src/logger"
	"stock-lens/src/models"
	"stock-lens/src/network"
	"stock-lens/src/storage"
)

// -----------------------------------------------------------------------------

// setupDatabase initializes the lookup outcome log based on config
func setupDatabase(config *models.MConfig, appLogger *logger.Logger) (interfaces.IDatabase, error) {
	var db interfaces.IDatabase
	var err error

	switch config.Storage.DBType {
	case "postgres":
		db, err = storage.NewPostgresDB(config, logger.NewLogger(config, "PostgresDB"))
	case "sqlite":
		db, err = storage.NewAsyncSQLiteDB(config, logger.NewLogger(config, "SQLiteDB"))
	default:
		appLogger.Info("Lookup outcome log disabled")
		db = storage.NoopDB{}
	}

	if err != nil {
		appLogger.Critical("Failed to init db: %v", err)
		return nil, err
	}
	if err := db.Initialize(); err != nil {
		appLogger.Critical("Failed to migrate db: %v", err)
		return nil, err
	}
	return db, nil
}

// -----------------------------------------------------------------------------

// setupNetwork initializes the network manager
func setupNetwork(config *models.MConfig) interfaces.INetworkManager {
	return network.NewAsyncNetworkManager(config, logger.NewLogger(config, "NetworkManager"))
}

// -----------------------------------------------------------------------------

// setupProvider builds the configured market-data provider
func setupProvider(config *models.MConfig, appLogger *logger.Logger, networkManager interfaces.INetworkManager) (interfaces.IDataProvider, error) {
	manager := datasource.NewSourceManager(logger.NewLogger(config, "SourceManager"))

	provider, err := manager.Build(config, networkManager)
	if err != nil {
		appLogger.Critical("Failed to build provider: %v", err)
		return nil, err
	}
	appLogger.Info("Using provider %s (period %s, interval %s)", provider.Name(), config.Provider.Period, config.Provider.Interval)
	return provider, nil
}

// -----------------------------------------------------------------------------

// setupAnalysis initializes the lookup facade
func setupAnalysis(config *models.MConfig, provider interfaces.IDataProvider, recorder interfaces.ILookupRecorder) *analysis.LookupFacade {
	return analysis.NewLookupFacade(config, provider, recorder, logger.NewLogger(config, "Lookup"))
}
