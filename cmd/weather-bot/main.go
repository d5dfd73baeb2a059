package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/Anilkaram/AI-weather-chat-bot/internal/api/http"
	"github.com/Anilkaram/AI-weather-chat-bot/internal/config"
	"github.com/Anilkaram/AI-weather-chat-bot/internal/scheduler"
	"github.com/Anilkaram/AI-weather-chat-bot/internal/weather"
	"github.com/Anilkaram/AI-weather-chat-bot/internal/weather/providers"
)

func main() {
	// Load configuration (reads .env if present).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// One upstream weather provider; resolver backend is configurable.
	openWeather := providers.NewOpenWeatherClient(httpClient, cfg.OpenWeatherBaseURL, cfg.OpenWeatherAPIKey)

	var resolver weather.LocationResolver = openWeather
	if cfg.Resolver == config.ResolverGoogle {
		resolver = providers.NewGoogleResolver(cfg.GoogleGeocoderAPIKey)
	}

	// Core dispatcher.
	service := weather.NewService(resolver, openWeather, cfg.DefaultForecastDays)

	// Periodic provider reachability probe feeding /health.
	probe := scheduler.New(openWeather, cfg.ProbeInterval)
	if err := probe.Start(); err != nil {
		log.Fatalf("failed to start provider probe: %v", err)
	}
	defer probe.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-bot",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		},
	})

	// Global middleware. CORS stays open for the chat workflow runner.
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// Health endpoint with provider reachability and server clock, so
	// timezone misconfiguration is visible from the outside.
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"service":  "weather-bot",
			"utcTime":  time.Now().UTC().Format(time.RFC3339),
			"provider": probe.Status(),
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()
	log.Printf("weather-bot listening on :%s", cfg.Port)

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
