package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Import   ImportConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// AuthConfig holds the static API token. An empty token restricts access
// to loopback clients instead.
type AuthConfig struct {
	APIToken string
}

type ImportConfig struct {
	MaxCSVBytes int64
	MaxPDFBytes int64
	PreviewRows int
}

func Load() (*Config, error) {
	// Optional .env file; plain environment variables work too (Docker/K8s).
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "60"))
	maxCSV, _ := strconv.ParseInt(getEnv("IMPORT_MAX_CSV_BYTES", "10485760"), 10, 64)
	maxPDF, _ := strconv.ParseInt(getEnv("IMPORT_MAX_PDF_BYTES", "26214400"), 10, 64)
	previewRows, _ := strconv.Atoi(getEnv("IMPORT_PREVIEW_ROWS", "20"))
	maxConns, _ := strconv.Atoi(getEnv("DB_MAX_CONNS", "10"))
	minConns, _ := strconv.Atoi(getEnv("DB_MIN_CONNS", "2"))

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "ledgerbook"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: int32(maxConns),
			MinConns: int32(minConns),
		},
		Auth: AuthConfig{
			APIToken: getEnv("LEDGERBOOK_API_TOKEN", ""),
		},
		Import: ImportConfig{
			MaxCSVBytes: maxCSV,
			MaxPDFBytes: maxPDF,
			PreviewRows: previewRows,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
