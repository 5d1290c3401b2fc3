package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                 string
	MongoURI             string
	MongoDatabase        string
	RestaurantCollection string
	DishCollection       string
	Timeout              time.Duration
	ServerLog            *log.Logger
	AdminPassword        string
	CookieSecure         bool
	AdminLoginPath       string
	RedisAddr            string
	RedisPassword        string
	RedisDB              int
	CacheTTL             time.Duration
	S3Region             string
	S3Bucket             string
	GeocodeEndpoint      string
	GeocodeTimeout       time.Duration
	AllowedOrigins       []string
}

// Load reads environment variables and returns a fully populated Config.
func Load() Config {
	timeout := 10 * time.Second
	if v := strings.TrimSpace(os.Getenv("MONGO_CONNECT_TIMEOUT")); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			timeout = parsed
		}
	}

	cacheTTL := 60 * time.Second
	if v := strings.TrimSpace(os.Getenv("PAGE_CACHE_TTL")); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			cacheTTL = parsed
		}
	}

	geocodeTimeout := 5 * time.Second
	if v := strings.TrimSpace(os.Getenv("GEOCODE_TIMEOUT")); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			geocodeTimeout = parsed
		}
	}

	redisDB := 0
	if v := strings.TrimSpace(os.Getenv("REDIS_DB")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			redisDB = parsed
		}
	}

	logger := log.New(os.Stdout, "[food-reviews-api] ", log.LstdFlags|log.Lshortfile)

	// 認証は ADMIN_PASSWORD ひとつに依存する。未設定でも起動はするが、
	// トークン層が fail closed するため管理操作は一切通らない。
	adminPassword := strings.TrimSpace(os.Getenv("ADMIN_PASSWORD"))
	if adminPassword == "" {
		logger.Printf("ADMIN_PASSWORD is not set: every admin login and token check will be rejected")
	}

	cookieSecure := strings.EqualFold(strings.TrimSpace(os.Getenv("ADMIN_COOKIE_SECURE")), "true")

	return Config{
		Addr:                 envOrDefault("HTTP_ADDR", ":8080"),
		MongoURI:             envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:        envOrDefault("MONGO_DB", "food-reviews"),
		RestaurantCollection: envOrDefault("RESTAURANT_COLLECTION", "restaurants"),
		DishCollection:       envOrDefault("DISH_COLLECTION", "dishes"),
		Timeout:              timeout,
		ServerLog:            logger,
		AdminPassword:        adminPassword,
		CookieSecure:         cookieSecure,
		AdminLoginPath:       envOrDefault("ADMIN_LOGIN_PATH", "/admin"),
		RedisAddr:            strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		RedisDB:              redisDB,
		CacheTTL:             cacheTTL,
		S3Region:             envOrDefault("S3_REGION", "us-east-1"),
		S3Bucket:             envOrDefault("S3_BUCKET", "restaurant-images"),
		GeocodeEndpoint:      envOrDefault("GEOCODE_ENDPOINT", "https://nominatim.openstreetmap.org"),
		GeocodeTimeout:       geocodeTimeout,
		AllowedOrigins:       parseList("API_ALLOWED_ORIGINS", []string{"*"}),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
