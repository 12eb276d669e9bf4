package main

import (
	"log"

	"github.com/joho/godotenv"

	"voenrecon/cmd"
	"voenrecon/internal/config"
	"voenrecon/internal/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Warning: Could not load configuration: %v", err)
		// Use default logger config if main config fails
		if err := logger.Setup(logger.DefaultConfig()); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
	} else {
		// Initialize logger with configuration
		if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		cmd.SetConfig(cfg)
	}

	runLog := logger.WithComponent("main")
	runLog.Info().Msg("Starting voenrecon")

	cmd.Execute()

	runLog.Info().Msg("voenrecon finished")
}
