package main

import (
	"log"

	"ai-studybuddy-be/internal/bootstrap"
	"ai-studybuddy-be/internal/config"
	"ai-studybuddy-be/internal/server"
	"ai-studybuddy-be/pkg/database"

	"github.com/fatih/color"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Local Store
	gormDB, err := database.NewLocalStore(cfg.Database.LocalStorePath)
	if err != nil {
		log.Panicf("Unable to open local store: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Startup Banner
	printBanner(cfg)

	// 5. Initialize and Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}

func printBanner(cfg *config.Config) {
	color.Cyan("📚 StudyBuddy API")
	color.Cyan("==================")

	if cfg.Ai.GeminiAPIKey != "" {
		color.Green("✓ AI generation enabled (%s)", cfg.Ai.GeminiModel)
	} else {
		color.Yellow("⚠ No AI key set, pattern fallback only")
	}

	color.White("Remote store: %s", cfg.Remote.StoreBaseURL)
	color.White("Local store:  %s", cfg.Database.LocalStorePath)
	color.White("Listening on: http://localhost:%s", cfg.App.Port)
}
