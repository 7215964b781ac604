package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string
	JWTSecret  string
	CORSOrigin string
	WebDir     string

	KafkaBrokers string
	KafkaTopic   string

	// StrictStatusTransitions rejects delivery status changes the state machine does not allow.
	StrictStatusTransitions bool
}

var ErrConfigNotLoaded = errors.New("environment variables not loaded properly")

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:       os.Getenv("DB_HOST"),
		DBUser:       os.Getenv("DB_USER"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBName:       os.Getenv("DB_NAME"),
		DBPort:       getEnv("DB_PORT", "5432"),
		AppPort:      getEnv("APP_PORT", "8080"),
		AppEnv:       os.Getenv("APP_ENV"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		CORSOrigin:   getEnv("CORS_ORIGIN", "http://localhost:3000"),
		WebDir:       os.Getenv("WEB_DIR"),
		KafkaBrokers: os.Getenv("KAFKA_BROKERS"),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "bizdash.orders"),
	}

	strict, _ := strconv.ParseBool(os.Getenv("STRICT_STATUS_TRANSITIONS"))
	cfg.StrictStatusTransitions = strict

	if cfg.DBHost == "" || cfg.JWTSecret == "" {
		return nil, ErrConfigNotLoaded
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
