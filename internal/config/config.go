package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contains runtime configuration required by the service.
type Config struct {
	Addr            string
	SiteURL         string
	NotionAPIKey    string
	ProductsDBID    string
	EventsDBID      string
	BlogDBID        string
	CacheTTL        time.Duration
	RateLimitMax    int
	RateLimitWindow time.Duration
	// PostgresDSN is optional; empty means the in-memory rate limiter,
	// which does not survive restarts or horizontal scaling.
	PostgresDSN string
}

// Load reads configuration from environment variables, loading .env first
// for local development.
func Load() (Config, error) {
	_ = godotenv.Load() // load .env if it exists

	cfg := Config{
		Addr:         getenv("ADDR", ":8080"),
		SiteURL:      strings.TrimRight(getenv("SITE_URL", "https://veganmotoclub.com"), "/"),
		NotionAPIKey: strings.TrimSpace(os.Getenv("NOTION_API_KEY")),
		ProductsDBID: strings.TrimSpace(os.Getenv("NOTION_PRODUCTS_DB_ID")),
		EventsDBID:   strings.TrimSpace(os.Getenv("NOTION_EVENTS_DB_ID")),
		BlogDBID:     strings.TrimSpace(os.Getenv("NOTION_BLOG_DB_ID")),
		PostgresDSN:  strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
	}

	if cfg.NotionAPIKey == "" {
		return Config{}, errors.New("NOTION_API_KEY required")
	}
	if cfg.ProductsDBID == "" || cfg.EventsDBID == "" || cfg.BlogDBID == "" {
		return Config{}, errors.New("NOTION_PRODUCTS_DB_ID, NOTION_EVENTS_DB_ID and NOTION_BLOG_DB_ID required")
	}

	var err error
	if cfg.CacheTTL, err = getduration("CACHE_TTL", time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitWindow, err = getduration("RATE_LIMIT_WINDOW", time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitMax, err = getint("RATE_LIMIT_MAX", 5); err != nil {
		return Config{}, err
	}

	log.Printf("[config] ADDR=%s CACHE_TTL=%s RATE_LIMIT_MAX=%d RATE_LIMIT_WINDOW=%s",
		cfg.Addr, cfg.CacheTTL, cfg.RateLimitMax, cfg.RateLimitWindow)
	return cfg, nil
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getduration(k string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(k))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, errors.New(k + ` must be a positive duration like "30m"`)
	}
	return d, nil
}

func getint(k string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(k))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.New(k + " must be a positive integer")
	}
	return n, nil
}
