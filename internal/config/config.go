package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	ResolverOpenWeather = "openweather"
	ResolverGoogle      = "google"
)

type AppConfig struct {
	// OpenWeatherMap credential and endpoint.
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string

	// Resolver selects the geocoding backend: "openweather" (default) or
	// "google" (requires GoogleGeocoderAPIKey).
	Resolver             string
	GoogleGeocoderAPIKey string

	// DefaultForecastDays is used when a forecast query carries no horizon.
	DefaultForecastDays int

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// ProbeInterval controls the provider reachability probe; 0 disables it.
	ProbeInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	if cfg.OpenWeatherAPIKey == "" {
		return nil, fmt.Errorf("OPENWEATHER_API_KEY is not set")
	}
	cfg.OpenWeatherBaseURL = getenvDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org")

	cfg.Resolver = getenvDefault("WEATHER_RESOLVER", ResolverOpenWeather)
	cfg.GoogleGeocoderAPIKey = os.Getenv("GOOGLE_GEOCODER_API_KEY")
	if cfg.Resolver != ResolverOpenWeather && cfg.Resolver != ResolverGoogle {
		return nil, fmt.Errorf("invalid WEATHER_RESOLVER: %q", cfg.Resolver)
	}
	if cfg.Resolver == ResolverGoogle && cfg.GoogleGeocoderAPIKey == "" {
		return nil, fmt.Errorf("WEATHER_RESOLVER=google requires GOOGLE_GEOCODER_API_KEY")
	}

	cfg.DefaultForecastDays = getenvInt("DEFAULT_FORECAST_DAYS", 5)
	if cfg.DefaultForecastDays < 1 {
		return nil, fmt.Errorf("invalid DEFAULT_FORECAST_DAYS: %d", cfg.DefaultForecastDays)
	}

	// Outbound call timeout: default 7s, bounded so a slow upstream cannot
	// wedge request handling.
	timeoutStr := getenvDefault("HTTP_TIMEOUT", "7s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	probeStr := getenvDefault("PROBE_INTERVAL", "15m")
	probe, err := time.ParseDuration(probeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PROBE_INTERVAL: %w", err)
	}
	cfg.ProbeInterval = probe

	cfg.Port = getenvDefault("PORT", "3001")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
