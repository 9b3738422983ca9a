package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/eren/shelfmate/internal/pkg/logger"
	"github.com/eren/shelfmate/internal/server"
)

// @title ShelfMate API
// @version 1.0
// @description Book inventory and issuance service for a university library
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@shelfmate.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// Local overrides live in .env; missing file is fine
	if err := godotenv.Load(); err == nil {
		logger.Debug().Msg("Loaded environment from .env file")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
