package config

import "os"

type Config struct {
	DatabaseURL       string
	JWTSecret         string
	Port              string
	LogLevel          string
	LogFormat         string
	FCMServiceAccount string
	AWSRegion         string
	SESSenderEmail    string
}

func Load() *Config {
	return &Config{
		DatabaseURL:       getEnv("DATABASE_URL", "ardhilink.db"),
		JWTSecret:         getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "console"),
		FCMServiceAccount: getEnv("FCM_SERVICE_ACCOUNT", ""),
		AWSRegion:         getEnv("AWS_REGION", ""),
		SESSenderEmail:    getEnv("SES_SENDER_EMAIL", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
