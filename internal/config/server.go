package config

import (
	"os"
	"strconv"
	"time"
)

// ============================================================
// Backend Configuration
// ============================================================

type Server struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int
	DBPath       string
	LayoutKey    string
}

// LoadServer reads the backend configuration from environment variables.
func LoadServer() Server {
	return Server{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
		DBPath:       getEnv("ROOM_DB_PATH", "data/db/room.db"),
		LayoutKey:    getEnv("ROOM_LAYOUT_KEY", "my-room"),
	}
}

// Development reports whether request logging and verbose output should be on.
func (s Server) Development() bool {
	return s.Environment == "development"
}

func (s Server) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

func (s Server) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
