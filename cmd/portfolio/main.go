package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/srijalk/portfolio-backend/internal/api"
	"github.com/srijalk/portfolio-backend/internal/cli"
	"github.com/srijalk/portfolio-backend/internal/db"
	"github.com/srijalk/portfolio-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment from .env")
	}

	unblock := flag.String("unblock", "", "delete cooldown rows for an identity key or address, then exit")
	flag.Parse()

	dbPath := getEnv("DB_PATH", filepath.Join("data", "portfolio.db"))

	if *unblock != "" {
		if err := cli.RunUnblockCommand(dbPath, *unblock); err != nil {
			log.Fatalf("unblock failed: %v", err)
		}
		return
	}

	port := getEnv("PORT", "3000")

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	handler := api.NewHandler(database, api.Config{
		CookieSecure: getEnvBool("COOKIE_SECURE", true),
		TrustProxy:   getEnvBool("TRUST_PROXY", true),
		Mailer: api.NewSMTPMailer(
			getEnv("SMTP_HOST", "smtp.gmail.com"),
			getEnv("SMTP_PORT", "587"),
			os.Getenv("EMAIL_USER"),
			os.Getenv("EMAIL_PASS"),
			getEnv("CONTACT_TO", os.Getenv("EMAIL_USER")),
		),
	})

	app := fiber.New(fiber.Config{
		AppName:               "Portfolio Backend",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(api.SecurityHeaders)
	app.Use(cors.New(corsConfig(getEnv("CORS_ORIGINS", "http://localhost:5500"))))

	app.Static("/", filepath.Join("web", "static"))
	api.RegisterRoutes(app, handler)

	sweeper := services.NewSweeper(
		db.NewCooldownRepository(database),
		getEnvDuration("SWEEP_INTERVAL", services.DefaultSweepInterval),
	)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()
	sweeper.Start(lifecycleCtx)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("portfolio backend listening on http://0.0.0.0:%s (db: %s)", port, dbPath)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func corsConfig(origins string) cors.Config {
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Content-Type",
		AllowCredentials: true,
		MaxAge:           3600,
	}
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value == "1" || value == "true" || value == "TRUE"
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		log.Printf("invalid %s %q, falling back to %s", key, value, fallback)
		return fallback
	}
	return parsed
}
