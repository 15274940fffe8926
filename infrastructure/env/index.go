package env

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"skinsense.io/infrastructure/logger"
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		logger.Info("error loading env variables")
	}
}

func GetString(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func GetInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		logger.Warning("invalid integer env variable, using default", logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
	}
	return defaultValue
}

func GetFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// GetList splits a comma separated variable, dropping empty items.
func GetList(key string) []string {
	items := []string{}
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
