package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// RoutineAccess selects the authorization policy for item-level routine
// endpoints (GET/PATCH/DELETE /api/routines/{id}).
const (
	// RoutineAccessOwner requires a session and restricts items to their owner.
	RoutineAccessOwner = "owner"
	// RoutineAccessOpen leaves item-level endpoints unauthenticated.
	RoutineAccessOpen = "open"
)

type Config struct {
	ServerPort    int
	Database      DatabaseConfig
	Session       SessionConfig
	RoutineAccess string
	CORSOrigins   []string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	UseSSL   bool
}

type SessionConfig struct {
	Secret   string
	TTLHours int
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "routinelog"),
		Password: getEnv("DB_PASSWORD", "password"),
		DBName:   getEnv("DB_NAME", "routinelog_db"),
		UseSSL:   getEnv("DB_SSL", "") == "true",
	}

	sessionConfig := SessionConfig{
		Secret:   getEnv("SESSION_SECRET", ""),
		TTLHours: getEnvInt("SESSION_TTL_HOURS", 24),
	}

	access := getEnv("ROUTINE_ACCESS", RoutineAccessOwner)
	if access != RoutineAccessOpen {
		access = RoutineAccessOwner
	}

	return Config{
		ServerPort:    getEnvInt("SERVER_PORT", 8080),
		Database:      dbConfig,
		Session:       sessionConfig,
		RoutineAccess: access,
		CORSOrigins:   []string{getEnv("CORS_ORIGIN", "http://localhost:3000")},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}
