package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"oakfield-backend/app"
	"oakfield-backend/db"
	"oakfield-backend/repository"
	"oakfield-backend/seed"
)

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	if os.Getenv("ENV") != "production" {
		// Use Overload to ensure .env values override system environment variables
		if err := godotenv.Overload(".env"); err != nil {
			log.Printf("Warning: .env file not found, using system environment variables")
		} else {
			log.Printf("Successfully loaded environment variables from .env")
		}
	}

	// Initialize application
	if err := app.Initialize(); err != nil {
		log.Fatal(err)
	}
	defer db.CloseDB()

	// Load demo data when a seed file is configured
	if seedFile := os.Getenv("SEED_FILE"); seedFile != "" {
		repos := seed.Repositories{
			Developments: repository.NewDevelopmentRepository(),
			HouseTypes:   repository.NewHouseTypeRepository(),
			Options:      repository.NewOptionRepository(),
			Bundles:      repository.NewBundleRepository(),
			BundleRules:  repository.NewBundleRuleRepository(),
			Baskets:      repository.NewBasketRepository(),
		}
		if err := seed.Load(context.Background(), seedFile, repos); err != nil {
			log.Fatalf("Failed to load seed file: %v", err)
		}
	}

	// Start server
	// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker/Render)
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	// Remove leading colon if present (PORT from Render doesn't include it)
	if len(port) > 0 && port[0] == ':' {
		port = port[1:]
	}
	addr := "0.0.0.0:" + port
	log.Printf("Server starting on %s", addr)
	log.Printf("Health check: GET http://localhost:%s/ping", port)

	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
