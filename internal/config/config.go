package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Security  SecurityConfig  `yaml:"security"`
	CORS      CORSConfig      `yaml:"cors"`
	Bootstrap BootstrapConfig `yaml:"bootstrap"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Type     string         `yaml:"type"` // sqlite or postgres
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Postgres PostgresConfig `yaml:"postgres"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

type JWTConfig struct {
	Secret    string `yaml:"secret"`
	ExpiresIn string `yaml:"expires_in"`
	Issuer    string `yaml:"issuer"`
}

type SecurityConfig struct {
	BcryptCost int `yaml:"bcrypt_cost"`
}

type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

type BootstrapConfig struct {
	AdminUsername string `yaml:"admin_username"`
	AdminEmail    string `yaml:"admin_email"`
	AdminPassword string `yaml:"admin_password"`
}

// Default returns the configuration used when no config file is present:
// a local sqlite database and the stock bootstrap admin.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Type:   "sqlite",
			SQLite: SQLiteConfig{Path: "data/translation.db"},
			Postgres: PostgresConfig{
				Host:    "localhost",
				Port:    5432,
				SSLMode: "disable",
			},
		},
		JWT: JWTConfig{
			ExpiresIn: "168h", // 7 days, matching the session cookie lifetime
			Issuer:    "translation-platform",
		},
		Security: SecurityConfig{BcryptCost: 10},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		},
		Bootstrap: BootstrapConfig{
			AdminUsername: "admin",
			AdminEmail:    "admin@translation.local",
			AdminPassword: "admin123",
		},
	}
}

// Load reads the configuration file (if it exists) over the defaults and then
// applies environment variable overrides.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWT.Secret = secret
	}
	if dbType := os.Getenv("DB_TYPE"); dbType != "" {
		cfg.Database.Type = dbType
	}
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		cfg.Database.SQLite.Path = dbPath
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Postgres.Host = host
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.Postgres.Username = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Database.Postgres.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Postgres.Database = name
	}
	if sslMode := os.Getenv("DB_SSLMODE"); sslMode != "" {
		cfg.Database.Postgres.SSLMode = sslMode
	}
	if port := os.Getenv("PORT"); port != "" {
		fmt.Sscanf(port, "%d", &cfg.Server.Port)
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		cfg.Server.Mode = mode
	}

	if cfg.JWT.Secret == "" {
		if cfg.Server.Mode == "release" {
			return nil, fmt.Errorf("JWT secret is required in release mode")
		}
		cfg.JWT.Secret = "default_super_secret_key" // Development fallback only — DO NOT use in production
	}

	if cfg.Database.Type == "postgres" {
		if cfg.Database.Postgres.Username == "" {
			return nil, fmt.Errorf("postgres username is required")
		}
		if cfg.Database.Postgres.Database == "" {
			return nil, fmt.Errorf("postgres database name is required")
		}
	}

	return cfg, nil
}

// TokenTTL parses the access token lifetime, falling back to seven days.
func (c *Config) TokenTTL() time.Duration {
	ttl, err := time.ParseDuration(c.JWT.ExpiresIn)
	if err != nil || ttl <= 0 {
		return 7 * 24 * time.Hour
	}
	return ttl
}

// PostgresDSN assembles the connection string for the postgres dialect.
func (c *Config) PostgresDSN() string {
	p := c.Database.Postgres
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.Username, p.Password, p.Host, p.Port, p.Database, p.SSLMode)
}
