package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"invoicekit/cmd"
	"invoicekit/internal/config"
	"invoicekit/internal/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Warning: Could not load configuration: %v", err)
		if err := logger.Setup(logger.DefaultConfig()); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
	} else {
		if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
	}

	log := logger.WithComponent("main")
	log.Debug().Msg("Starting invoicekit")

	// Commands that need configuration report the load error themselves.
	cmd.Execute(cfg)

	log.Debug().Msg("invoicekit shutdown")
	os.Exit(0)
}
