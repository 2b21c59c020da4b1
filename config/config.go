package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config sadrži podešavanja klijenta učitana iz okruženja.
type Config struct {
	APIBaseURL  string
	CredFile    string
	LogFile     string
	HTTPTimeout time.Duration
	ServerPort  string
}

// Load učitava .env fajl ako postoji i vraća podešavanja sa podrazumevanim vrednostima.
func Load() Config {
	// .env je opcioni za klijent; okruženje ima prednost
	_ = godotenv.Load(".env")

	home, _ := os.UserHomeDir()

	cfg := Config{
		APIBaseURL:  getenv("TODO_API_URL", "http://localhost:8000"),
		CredFile:    getenv("TODO_CRED_FILE", filepath.Join(home, ".todo", "cred.json")),
		LogFile:     getenv("TODO_LOG_FILE", filepath.Join(home, ".todo", "logs", "client.log")),
		HTTPTimeout: getduration("TODO_HTTP_TIMEOUT", 10*time.Second),
		ServerPort:  getenv("SERVER_PORT", "3000"),
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
