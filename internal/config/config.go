package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type (
	// Config represents an application configuration.
	Config struct {
		// The data source name (DSN) for connecting to the database.
		DSN string `yaml:"dsn" env:"DATABASE_URI"`
		// Subconfigs.
		HTTPServer HTTPServer `yaml:"http_server"`
		Session    Session    `yaml:"session"`
		OAuth      OAuth      `yaml:"oauth"`
		Discount   Discount   `yaml:"discount"`
		RateLimit  RateLimit  `yaml:"rate_limit"`
		Logger     Logger     `yaml:"logger"`
		// Cost of the password to hash. Must be greater than 3.
		PasswordHashCost int `yaml:"password_hash_cost" env-default:"14"`
	}
	// Config for HTTP server.
	HTTPServer struct {
		// The server startup address.
		Address string `yaml:"run_address" env:"RUN_ADDRESS" env-default:"127.0.0.1:8080"`
		// Read Header Timeout in seconds.
		Timeout time.Duration `yaml:"timeout" env-default:"5s"`
		// Idle timeout in seconds.
		IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
		// Shutdown timeout in seconds.
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"30s"`
	}
	// Config for user sessions.
	Session struct {
		// Session lifetime.
		Expiration time.Duration `yaml:"expiration" env:"SESSION_EXPIRATION" env-default:"168h"`
	}
	// Config for the external identity provider used for social login.
	OAuth struct {
		// URL of the provider endpoint resolving one-time session ids.
		SessionDataURL string `yaml:"session_data_url" env:"OAUTH_SESSION_DATA_URL"`
		// Request timeout.
		Timeout time.Duration `yaml:"timeout" env-default:"10s"`
	}
	// Config for the first-order discount.
	Discount struct {
		// Minimum measured total price qualifying for the discount.
		Threshold float64 `yaml:"threshold" env-default:"1000"`
		// Percentage applied to qualifying first orders.
		Percentage int `yaml:"percentage" env-default:"10"`
	}
	// Config for the credential endpoint rate limiter.
	RateLimit struct {
		// Minimum interval between token refills.
		Interval time.Duration `yaml:"interval" env-default:"100ms"`
		// Maximum burst of requests.
		Burst int `yaml:"burst" env-default:"30"`
	}
	// Config for application's logger.
	Logger struct {
		// Path to store log files.
		Path string `yaml:"path" env:"LOG_PATH"`
		// Application logging level.
		Level string `yaml:"level" env:"LOG_LEVEL"`
		// Log files details.
		MaxSizeMB  int `yaml:"max_size_mb"`
		MaxBackups int `yaml:"max_backups"`
		MaxAgeDays int `yaml:"max_age_days"`
	}
)

// MustLoad returns an application configuration which is populated
// from the given configuration file, environment variables and flags.
func MustLoad() *Config {
	// Configuration yaml file path.
	configPath := flag.String("config", "./config/local.yml", "path to the config file")

	var cfg Config

	// Read given flags.
	flag.StringVar(&cfg.HTTPServer.Address, "a", "127.0.0.1:8080", "server startup address")
	flag.StringVar(&cfg.DSN, "d", "", "server data source name")
	flag.Parse()

	// Check if file exists.
	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", *configPath)
	}

	// Load from YAML cfg file.
	file, err := os.Open(*configPath)
	if err != nil {
		log.Fatalf("failed to open config file: %s", *configPath)
	}
	if err = cleanenv.ParseYAML(file, &cfg); err != nil {
		log.Fatalf("failed to parse config file: %s", *configPath)
	}

	// Read environment variables.
	if err = cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("failed to read environment variables: %v", err)
	}

	return &cfg
}
