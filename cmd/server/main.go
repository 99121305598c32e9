// cmd/server/main.go
package main

import (
	"fmt"
	"os"

	"github.com/versehub/versehub/api"
	"github.com/versehub/versehub/config"
	"github.com/versehub/versehub/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

func main() {
	customLog.Println("Starting VerseHub server...")

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		customLog.Fatalf("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	// 2. Seed In-Memory Stores (reset on every start; nothing persists)
	stores, err := api.NewStores()
	if err != nil {
		customLog.Fatalf("Failed to seed in-memory stores: %v", err)
		os.Exit(1)
	}

	// 3. Setup Router (passing dependencies)
	router := api.SetupRouter(stores, cfg)

	// 4. Start Server
	customLog.Printf("Server listening on port %s", cfg.ServerPort)
	if err := router.Run(fmt.Sprintf(":%s", cfg.ServerPort)); err != nil {
		customLog.Fatalf("Failed to start server: %v", err)
	}
}
