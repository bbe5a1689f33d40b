package setup

import (
	"fmt"
	"log/slog"

	"flexzone/api"
	"flexzone/app"
	"flexzone/config"
	"flexzone/database"
	"flexzone/services"
	"flexzone/session"
)

// InitDatabase opens the local SQLite database and creates the schema
func InitDatabase(dbPath string, logger *slog.Logger) (*database.DB, error) {
	db, err := database.New(dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("database initialized", "path", dbPath)
	return db, nil
}

// InitApp wires the repositories, secure store, backend client and services
func InitApp(db *database.DB, logger *slog.Logger) (*app.App, error) {
	repo := database.NewRepository(db, logger)

	store, err := session.NewStore(db.DB, config.AppConfig.SecureStoreSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to open secure store: %w", err)
	}
	logger.Info("secure store initialized")

	client, err := api.NewClient(config.AppConfig.APIBaseURL, store, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}
	logger.Info("backend client configured", "base_url", config.AppConfig.APIBaseURL)

	verifier := services.GoogleVerifier{ClientID: config.AppConfig.GoogleClientID}

	return app.New(repo, store, client, verifier, logger), nil
}

// Shutdown releases everything InitDatabase and InitApp opened
func Shutdown(db *database.DB, logger *slog.Logger) {
	logger.Info("shutting down services...")

	if db != nil {
		db.Close()
		logger.Info("database closed")
	}
}
