package config

import (
	"os"

	"github.com/joho/godotenv"

	"agricopilot/pkg/logger"
)

type AppConfig struct {
	Port           string
	DBPath         string
	StaticDir      string
	UploadDir      string
	GeminiAPIKey   string
	GeminiModel    string
	OpenWeatherKey string
	JWTSecret      string
	LogLevel       string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		logger.Log.Debugf("[cfg] no .env file loaded: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:           get("PORT", "8080"),
		DBPath:         get("DB_PATH", "agricopilot.db"),
		StaticDir:      get("STATIC_DIR", "static"),
		UploadDir:      get("UPLOAD_DIR", "static/uploads"),
		GeminiAPIKey:   get("GEMINI_API_KEY", ""),
		GeminiModel:    get("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenWeatherKey: get("OPENWEATHER_API_KEY", ""),
		JWTSecret:      get("JWT_SECRET", "dev-secret-key-change-me"),
		LogLevel:       get("LOG_LEVEL", "info"),
	}
	logger.Log.Infof("[cfg] port=%s db=%s gemini=%v weather=%v",
		cfg.Port, cfg.DBPath, cfg.GeminiAPIKey != "", cfg.OpenWeatherKey != "")
	return cfg
}
