package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/campushub/registrar/internal/pkg/logger"
	"github.com/campushub/registrar/internal/server"
)

// @title Registrar API
// @version 1.0
// @description Student records API with registration, subject enrollment and grade tracking

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// A missing .env file is fine; configuration falls back to defaults
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file loaded")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
