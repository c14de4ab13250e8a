package main

import (
	"log"

	"github.com/slack-go/slack"
)

func main() {
	cfg := LoadConfig()

	db, err := InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to init database: %v", err)
	}
	defer db.Close()

	if cfg.SeedCSVPath != "" {
		if _, err := SeedFromCSV(db, cfg.SeedCSVPath); err != nil {
			log.Fatalf("Failed to seed database from %s: %v", cfg.SeedCSVPath, err)
		}
	}

	if cfg.SummarySchedule != "" {
		api := slack.New(cfg.SlackBotToken)
		StartSummaryScheduler(cfg, db, api)
	}

	llm := NewLLM(cfg)

	log.Println("Starting Retail Analytics Chat Service...")
	if err := StartServer(cfg, db, llm); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
