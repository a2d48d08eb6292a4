package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config regroupe la configuration lue depuis l'environnement (.env en dev).
type Config struct {
	Port       string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Heure du balayage de réconciliation (format HH:MM, heure locale).
	ReconcileAt string
}

// LoadConfig charge .env s'il existe puis lit les variables d'environnement.
func LoadConfig() (*Config, error) {
	// .env absent en production : pas une erreur.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      getEnv("DB_NAME", "habitflow"),
		ReconcileAt: getEnv("RECONCILE_AT", "03:30"),
	}

	if cfg.DBUser == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
