package configs

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// =======================
// ENV LOADER
// =======================

// LoadEnv loads .env unless the process runs on Railway, where the platform
// injects the environment. It logs through the logrus standard logger.
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") != "" {
		logrus.Info("running in Railway, using system ENV")
		return
	}
	if err := godotenv.Load(); err != nil {
		logrus.Warn("no .env file found, using system ENV")
		return
	}
	logrus.Info(".env file loaded")
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
