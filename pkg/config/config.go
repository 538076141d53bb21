package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Plaid    PlaidConfig
	GigaChat GigaChatConfig
	Demo     DemoConfig
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
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
	RefreshExp time.Duration
}

// PlaidConfig holds the aggregation-provider credentials. Placeholder values
// from the sample .env count as absent.
type PlaidConfig struct {
	ClientID string
	Secret   string
	Env      string
}

var plaidPlaceholders = []string{
	"your_sandbox_client_id_here",
	"your_plaid_client_id_here",
	"your_sandbox_secret_here",
	"your_plaid_secret_here",
}

// CredentialsPresent reports whether real provider credentials are
// configured. Absence is configuration, not an error: it routes to demo mode.
// A placeholder in either field counts as absent.
func (p PlaidConfig) CredentialsPresent() bool {
	if p.ClientID == "" || p.Secret == "" {
		return false
	}
	for _, placeholder := range plaidPlaceholders {
		if p.ClientID == placeholder || p.Secret == placeholder {
			return false
		}
	}
	return true
}

func (p PlaidConfig) BaseURL() string {
	switch p.Env {
	case "production":
		return "https://production.plaid.com"
	case "development":
		return "https://development.plaid.com"
	default:
		return "https://sandbox.plaid.com"
	}
}

type GigaChatConfig struct {
	APIKey             string
	Scope              string
	InsecureSkipVerify bool
}

type DemoConfig struct {
	Force bool
}

func Load() (*Config, error) {
	// Try to load .env from the current directory or the project root;
	// plain environment variables work too (Docker/K8s).
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	refreshExp, _ := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168"))
	insecureSkipVerify := getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "false") == "true"
	forceDemo := getEnv("FORCE_DEMO_MODE", "false") == "true"

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
			DBName:   getEnv("DB_NAME", "finsight"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
			RefreshExp: time.Duration(refreshExp) * time.Hour,
		},
		Plaid: PlaidConfig{
			ClientID: getEnv("PLAID_CLIENT_ID", ""),
			Secret:   getEnv("PLAID_SECRET", ""),
			Env:      getEnv("PLAID_ENV", "sandbox"),
		},
		GigaChat: GigaChatConfig{
			APIKey:             getEnv("GIGACHAT_API_KEY", ""),
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			InsecureSkipVerify: insecureSkipVerify,
		},
		Demo: DemoConfig{
			Force: forceDemo,
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
