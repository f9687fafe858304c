package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	AuthProviderJWT      = "jwt"
	AuthProviderFirebase = "firebase"
)

type Config struct {
	Port                    string   `yaml:"port"`
	Env                     string   `yaml:"env"`
	LogLevel                string   `yaml:"log_level"`
	DatabaseURL             string   `yaml:"database_url"`
	MigrationsDir           string   `yaml:"migrations_dir"`
	AuthProvider            string   `yaml:"auth_provider"`
	FirebaseCredentialsPath string   `yaml:"firebase_credentials_path"`
	JWTSecret               string   `yaml:"jwt_secret"`
	JWKSURL                 string   `yaml:"jwks_url"`
	JWTIssuer               string   `yaml:"jwt_issuer"`
	CORSAllowedOrigins      []string `yaml:"cors_allowed_origins"`
	SeedEnabled             bool     `yaml:"seed_enabled"`
}

func defaults() *Config {
	return &Config{
		Port:               "8080",
		Env:                "development",
		LogLevel:           "info",
		MigrationsDir:      "migrations",
		AuthProvider:       AuthProviderJWT,
		CORSAllowedOrigins: []string{"*"},
		SeedEnabled:        true,
	}
}

// IsDevelopment reports whether the service runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load builds the configuration from defaults, an optional YAML file at path,
// a .env file and the process environment, in that order of precedence.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	// A missing .env is fine; variables may come from the environment.
	_ = godotenv.Load()

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Env = getEnv("ENV", cfg.Env)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.MigrationsDir = getEnv("MIGRATIONS_DIR", cfg.MigrationsDir)
	cfg.AuthProvider = strings.ToLower(getEnv("AUTH_PROVIDER", cfg.AuthProvider))
	cfg.FirebaseCredentialsPath = getEnv("FIREBASE_CREDENTIALS_PATH", cfg.FirebaseCredentialsPath)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.JWKSURL = getEnv("JWKS_URL", cfg.JWKSURL)
	cfg.JWTIssuer = getEnv("JWT_ISSUER", cfg.JWTIssuer)
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORSAllowedOrigins = splitList(origins)
	}
	if v := os.Getenv("SEED_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SEED_ENABLED: %w", err)
		}
		cfg.SeedEnabled = enabled
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings needed at startup are present.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	switch c.AuthProvider {
	case AuthProviderJWT:
		if c.JWTSecret == "" && c.JWKSURL == "" {
			return errors.New("JWT_SECRET or JWKS_URL is required for the jwt auth provider")
		}
	case AuthProviderFirebase:
		if c.FirebaseCredentialsPath == "" {
			return errors.New("FIREBASE_CREDENTIALS_PATH is required for the firebase auth provider")
		}
	default:
		return fmt.Errorf("unknown AUTH_PROVIDER %q", c.AuthProvider)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
