package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// DataDir is the root directory for all persisted JSON documents.
	DataDir            string
	Port               string // Optional with default "8080"
	CORSAllowedOrigins string // Optional with default "*"
	Environment        string
	// EncryptionKey protects the bot token field at rest.
	EncryptionKey string
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	encryptionKey, err := getEnvRequired("DBM_ENCRYPTION_KEY")
	if err != nil {
		return nil, err
	}

	dataDir := os.Getenv("DBM_DATA_DIR")
	if dataDir == "" {
		userDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user config dir: %w", err)
		}
		dataDir = filepath.Join(userDir, "DiscordBotManager")
	}

	config := &AppConfig{
		DataDir:            dataDir,
		Port:               getEnvWithDefault("PORT", "8080"),
		CORSAllowedOrigins: getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),
		Environment:        getEnvWithDefault("ENVIRONMENT", "dev"),
		EncryptionKey:      encryptionKey,
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
