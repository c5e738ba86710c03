package main

import (
	"flag"
	"os"

	"github.com/aosora/coursehub/internal/pkg/logger"
	"github.com/aosora/coursehub/internal/server"
)

// @title CourseHub API
// @version 1.0
// @description Course catalog search and synchronization service

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	flag.Parse()

	srv, err := server.NewServer(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
