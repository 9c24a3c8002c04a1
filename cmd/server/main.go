package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"launchpad-backend/internal/app"
	"launchpad-backend/internal/config"
	"launchpad-backend/internal/db"
	"launchpad-backend/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		log.Println("📄 Loaded environment from .env")
	}

	if err := config.LoadConfig(os.Getenv("CONFIG_PATH")); err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	cfg := config.AppConfig
	log.Printf("🚀 Starting launchpad backend for %s (chain %d)", cfg.Chain.Name, cfg.Chain.ChainID)

	// Database is optional; without it submissions are not persisted
	if cfg.Database.DSN != "" {
		if err := db.InitDatabase(cfg.Database.DSN); err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}
	} else {
		log.Println("⚠️ DATABASE_DSN not set, running without persistence")
	}

	container, err := app.InitializeContainer()
	if err != nil {
		log.Fatalf("❌ Failed to initialize services: %v", err)
	}
	defer container.Cleanup()

	r := router.SetupRouter(container)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🌐 Listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("❌ Server exited: %v", err)
	}
}
