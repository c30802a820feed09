package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	CORS   CORSConfig
	Rate   RateLimitConfig
	Log    LogConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port            string `envconfig:"API_PORT" default:"8080"`
	ReadTimeout     int    `envconfig:"READ_TIMEOUT" default:"5"`   // seconds
	WriteTimeout    int    `envconfig:"WRITE_TIMEOUT" default:"10"` // seconds
	IdleTimeout     int    `envconfig:"IDLE_TIMEOUT" default:"120"` // seconds
	ShutdownTimeout int    `envconfig:"SHUTDOWN_TIMEOUT" default:"30"`
}

// DBConfig holds database-related configuration. DATABASE_URL wins when set.
type DBConfig struct {
	URL      string `envconfig:"DATABASE_URL"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"clubsync"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns int    `envconfig:"DB_MIN_CONNS" default:"5"`
}

// DSN returns the PostgreSQL connection string.
func (c DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s&pool_max_conns=%d&pool_min_conns=%d",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode, c.MaxConns, c.MinConns)
}

// JWTConfig holds token signing configuration. An empty secret makes the
// server generate a random one at startup; tokens then do not survive restarts.
type JWTConfig struct {
	Secret     string `envconfig:"JWT_SECRET"`
	ValidHours int    `envconfig:"TOKEN_VALID_HOURS" default:"24"`
}

// CORSConfig holds the single allowed origin and allow-lists.
type CORSConfig struct {
	Origin string `envconfig:"CORS_ORIGIN" default:"http://localhost:5173"`
}

// RateLimitConfig holds the per-IP token bucket parameters.
type RateLimitConfig struct {
	PerSecond float64 `envconfig:"RATE_LIMIT_PER_SECOND" default:"5"`
	Burst     int     `envconfig:"RATE_LIMIT_BURST" default:"30"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Pretty bool   `envconfig:"LOG_PRETTY" default:"false"`
}

// Load parses environment variables into the Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
