package main

import (
	"context"
	"log"

	"resumeforge/internal/config"
	"resumeforge/internal/promptlog"
)

func main() {
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	db, err := promptlog.OpenDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := promptlog.RunMigrations(ctx, db); err != nil {
		log.Fatalf("Migrations failed: %v", err)
	}

	log.Println("Migrations applied")
}
