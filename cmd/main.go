package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/harborlegal/practice-backend/internal/app"
)

func main() {
	// Missing .env is fine in deployed environments; config falls back
	// to process env and defaults.
	_ = godotenv.Load()

	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	a.Log.Info("Server listening", "port", a.Cfg.Port)
	if err := a.Run(":" + a.Cfg.Port); err != nil {
		a.Log.Error("Server failed", "error", err)
	}
}
