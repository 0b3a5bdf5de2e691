package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
	} `yaml:"jwt"`

	Storage struct {
		Type      string `yaml:"type"`       // local, cloudflare_r2
		BasePath  string `yaml:"base_path"`  // for local storage
		BaseURL   string `yaml:"base_url"`   // public URL prefix for stored objects
		Bucket    string `yaml:"bucket"`     // for R2
		AccessKey string `yaml:"access_key"` // for R2
		SecretKey string `yaml:"secret_key"` // for R2
		Endpoint  string `yaml:"endpoint"`   // for R2
	} `yaml:"storage"`

	Google struct {
		ClientID string `yaml:"client_id"`
	} `yaml:"google"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	FirstAdminEmail    string `yaml:"-"`
	FirstAdminPassword string `yaml:"-"`
}

// Load reads configuration for the process. A .env file is applied first if
// present. When DATABASE_URL is set the whole config comes from environment
// variables (the mode used by tests and container deployments); otherwise it
// is read from the yaml file at CONFIG_PATH (default config/config.yaml).
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.Database.DSN = dsn
		cfg.Server.Host = os.Getenv("SERVER_HOST")
		cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
		if cfg.Server.Port == 0 {
			cfg.Server.Port = 8080
		}
		cfg.Server.Env = os.Getenv("SERVER_ENV")
		if cfg.Server.Env == "" {
			cfg.Server.Env = "development"
		}
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
		cfg.Google.ClientID = os.Getenv("GOOGLE_CLIENT_ID")

		cfg.Storage.Type = os.Getenv("STORAGE_TYPE")
		if cfg.Storage.Type == "" {
			cfg.Storage.Type = "local"
		}
		cfg.Storage.BasePath = os.Getenv("STORAGE_BASE_PATH")
		if cfg.Storage.BasePath == "" {
			cfg.Storage.BasePath = "./uploads"
		}
		cfg.Storage.BaseURL = os.Getenv("STORAGE_BASE_URL")
		cfg.Storage.Bucket = os.Getenv("STORAGE_BUCKET")
		cfg.Storage.AccessKey = os.Getenv("STORAGE_ACCESS_KEY")
		cfg.Storage.SecretKey = os.Getenv("STORAGE_SECRET_KEY")
		cfg.Storage.Endpoint = os.Getenv("STORAGE_ENDPOINT")

		if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
			for _, o := range strings.Split(origins, ",") {
				if o = strings.TrimSpace(o); o != "" {
					cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, o)
				}
			}
		}
	} else {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			return nil, fmt.Errorf("open config file %s: %w", configPath, err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", configPath, err)
		}
	}

	cfg.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("database url is not configured")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is not configured")
	}

	return &cfg, nil
}
