package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Server
	Port         string
	GinMode      string
	FrontendURLs []string

	// Booking store
	StoreDriver string // sqlite or postgres
	SQLitePath  string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	// AI provider
	AIProvider        string // gemini or huggingface
	AITimeout         time.Duration
	AITemperature     float64
	GeminiAPIKey      string
	GeminiModel       string
	HuggingFaceAPIKey string
	HuggingFaceModel  string

	// Search providers
	AmadeusClientID     string
	AmadeusClientSecret string
	AmadeusEnv          string
	RapidAPIKey         string
	RailwayAPIKey       string
	RailwayEndpoints    []string
	ZomatoAPIKey        string
	OpenWeatherAPIKey   string
}

// Load reads .env (optional), then environment variables and an optional
// config file. An empty path skips the file.
func Load(path string) (*Config, error) {
	// .env is optional for local development
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found — using environment variables")
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg := &Config{
		Port:         v.GetString("PORT"),
		GinMode:      v.GetString("GIN_MODE"),
		FrontendURLs: splitList(v.GetString("FRONTEND_URL")),

		StoreDriver: strings.ToLower(v.GetString("STORE_DRIVER")),
		SQLitePath:  v.GetString("SQLITE_PATH"),
		DatabaseURL: v.GetString("DATABASE_URL"),
		DBHost:      v.GetString("DB_HOST"),
		DBPort:      v.GetString("DB_PORT"),
		DBUser:      v.GetString("DB_USER"),
		DBPassword:  v.GetString("DB_PASSWORD"),
		DBName:      v.GetString("DB_NAME"),
		DBSSLMode:   v.GetString("DB_SSLMODE"),

		AIProvider:        strings.ToLower(v.GetString("AI_PROVIDER")),
		AITimeout:         v.GetDuration("AI_TIMEOUT"),
		AITemperature:     v.GetFloat64("AI_TEMPERATURE"),
		GeminiAPIKey:      v.GetString("GEMINI_API_KEY"),
		GeminiModel:       v.GetString("GEMINI_MODEL"),
		HuggingFaceAPIKey: v.GetString("HUGGINGFACE_API_KEY"),
		HuggingFaceModel:  v.GetString("HF_MODEL"),

		AmadeusClientID:     v.GetString("AMADEUS_CLIENT_ID"),
		AmadeusClientSecret: v.GetString("AMADEUS_CLIENT_SECRET"),
		AmadeusEnv:          v.GetString("AMADEUS_ENV"),
		RapidAPIKey:         v.GetString("RAPIDAPI_KEY"),
		RailwayAPIKey:       v.GetString("RAILWAY_API_KEY"),
		RailwayEndpoints:    splitList(v.GetString("RAILWAY_ENDPOINTS")),
		ZomatoAPIKey:        v.GetString("ZOMATO_API_KEY"),
		OpenWeatherAPIKey:   v.GetString("OPENWEATHER_API_KEY"),
	}

	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = v.GetString("GOOGLE_API_KEY")
	}

	switch cfg.StoreDriver {
	case "sqlite", "postgres":
	default:
		log.Printf("WARNING: Unknown STORE_DRIVER: %s (using sqlite)", cfg.StoreDriver)
		cfg.StoreDriver = "sqlite"
	}

	switch cfg.AIProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			log.Println("⚠️  GEMINI_API_KEY not set — itineraries will use the mock planner")
		}
	case "huggingface":
		if cfg.HuggingFaceAPIKey == "" {
			log.Println("⚠️  HUGGINGFACE_API_KEY not set — itineraries will use the mock planner")
		}
	default:
		log.Printf("WARNING: Unknown AI_PROVIDER: %s (using gemini)", cfg.AIProvider)
		cfg.AIProvider = "gemini"
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("FRONTEND_URL", "")

	v.SetDefault("STORE_DRIVER", "sqlite")
	v.SetDefault("SQLITE_PATH", "goginie.db")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "goginie")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("AI_PROVIDER", "gemini")
	v.SetDefault("AI_TIMEOUT", 30*time.Second)
	v.SetDefault("AI_TEMPERATURE", 0.7)
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GOOGLE_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("HUGGINGFACE_API_KEY", "")
	v.SetDefault("HF_MODEL", "mistralai/Mistral-7B-Instruct-v0.3")

	v.SetDefault("AMADEUS_CLIENT_ID", "")
	v.SetDefault("AMADEUS_CLIENT_SECRET", "")
	v.SetDefault("AMADEUS_ENV", "test")
	v.SetDefault("RAPIDAPI_KEY", "")
	v.SetDefault("RAILWAY_API_KEY", "")
	v.SetDefault("RAILWAY_ENDPOINTS", "")
	v.SetDefault("ZOMATO_API_KEY", "")
	v.SetDefault("OPENWEATHER_API_KEY", "")
}

// PostgresDSN prefers DATABASE_URL and falls back to the individual DB_* vars.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
