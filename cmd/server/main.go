package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/daybreak-app/daybreak-backend/internal/config"
	"github.com/daybreak-app/daybreak-backend/internal/database"
	"github.com/daybreak-app/daybreak-backend/internal/handlers"
	"github.com/daybreak-app/daybreak-backend/internal/middleware"
	"github.com/daybreak-app/daybreak-backend/internal/routes"
	"github.com/daybreak-app/daybreak-backend/internal/services"
	"github.com/daybreak-app/daybreak-backend/internal/store"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	// Load configuration
	cfg := config.Load()

	// Error tracking (Sentry)
	if err := services.InitErrorTracking(cfg.SentryDSN, cfg.Environment); err != nil {
		log.Printf("Warning: Failed to initialize error tracking: %v", err)
	} else if cfg.SentryDSN != "" {
		log.Println("✅ Error tracking initialized")
	}
	defer services.FlushErrorTracking()

	// Connect to PostgreSQL
	log.Printf("Connecting to PostgreSQL...")
	if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer database.DisconnectPostgres()

	// Connect to Redis
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	st := store.New(database.PostgresDB)
	h := handlers.New(st)

	// Start daily reminder scheduler
	scheduler := services.NewReminderScheduler(st, database.RedisClient, services.LogReminderSender{})
	if err := scheduler.Start(); err != nil {
		log.Fatal("Failed to start reminder scheduler:", err)
	}
	defer scheduler.Stop()
	log.Println("✅ Reminder scheduler started (dispatches at each user's notification time)")

	// Setup router. The health check stays outside the rate limiter.
	r := routes.NewRouter(h, []byte(cfg.JWTSecret), cfg.AllowedOrigins, middleware.RateLimit(database.RedisClient))

	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  GET  /api/journal/entries")
	log.Println("  POST /api/journal/entries")
	log.Println("  GET  /api/notifications/settings")
	log.Println("  POST /api/notifications/settings")
	log.Println("  GET  /api/onboarding/status")
	log.Println("  POST /api/onboarding/complete")

	log.Printf("🚀 Daybreak backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
