package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	Env          string
	MongoURI     string
	DatabaseName string
	Origin       string
	Timeout      time.Duration
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		if os.IsNotExist(err) {
			// .env file not found, proceed with environment values
		} else {
			panic("Error loading .env file")
		}
	}
	return Config{
		Port: getEnv("PORT", "8000"),
		Env:  getEnv("APP_ENV", "dev"),
		// No default URI: the server must come up without a database
		// and keep answering schema and liveness requests.
		MongoURI:     getEnv("MONGODB_URI", ""),
		DatabaseName: getEnv("DATABASE_NAME", "edusaas"),
		Origin:       getEnv("ORIGIN", "*"),
		Timeout:      10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
