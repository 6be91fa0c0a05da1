package main

import (
	"log"
	"time"

	"github.com/Govind-619/MemoWorks/config"
	"github.com/Govind-619/MemoWorks/routes"
	"github.com/Govind-619/MemoWorks/services"
	"github.com/Govind-619/MemoWorks/utils"
)

// purgeExpiredResetTokens drops stale reset tokens on a fixed schedule
func purgeExpiredResetTokens(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		purged, err := services.PasswordReset.PurgeExpired()
		if err != nil {
			utils.LogError("Failed to purge expired reset tokens: %v", err)
			continue
		}
		if purged > 0 {
			utils.LogInfo("Purged %d expired reset tokens", purged)
		}
	}
}

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Initialize Google OAuth
	config.InitGoogleOAuth()

	// Wire the password reset flow and its cleanup schedule
	services.InitPasswordReset(time.Duration(cfg.ResetTokenTTL) * time.Minute)
	go purgeExpiredResetTokens(time.Hour)

	// Set up router
	router := routes.SetupRouter()

	// Add middleware
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	utils.LogInfo("Server starting on port %s", port)
	// Start server
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
