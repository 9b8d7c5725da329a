package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort        = 3000
	defaultEnv         = "development"
	defaultDBHost      = "127.0.0.1"
	defaultDBPort      = 3306
	defaultDBUser      = "root"
	defaultDBName      = "inkstone"
	defaultRedisURL    = "redis://localhost:6379/0"
	defaultTokenTTL    = Duration(30 * 24 * time.Hour)
	defaultBcryptCost  = 10
	defaultAdminBoot   = true
	envJWTSecret       = "JWT_SECRET"
	envDatabasePass    = "DB_PASSWORD"
)

// Duration accepts time.ParseDuration strings such as "720h" in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"` // "development" | "production"
	Database       DatabaseConfig `yaml:"database"`
	RedisURL       string         `yaml:"redis_url"`
	JWTSecret      string         `yaml:"jwt_secret"`
	TokenTTL       Duration       `yaml:"token_ttl"`
	BcryptCost     int            `yaml:"bcrypt_cost"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
	// FirstUserIsAdmin grants the admin role to the first registered account,
	// so a fresh deployment has an administrator without manual DB edits.
	FirstUserIsAdmin bool `yaml:"first_user_is_admin"`
}

// DatabaseConfig holds MySQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// Load reads the YAML config file, applies defaults and env overrides.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{FirstUserIsAdmin: defaultAdminBoot}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Missing file is fine, defaults + env cover local development.
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required (config file or %s)", envJWTSecret)
	}
	return cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.Env == "" {
		c.Env = defaultEnv
	}
	if c.Database.Host == "" {
		c.Database.Host = defaultDBHost
	}
	if c.Database.Port == 0 {
		c.Database.Port = defaultDBPort
	}
	if c.Database.User == "" {
		c.Database.User = defaultDBUser
	}
	if c.Database.Name == "" {
		c.Database.Name = defaultDBName
	}
	if c.RedisURL == "" {
		c.RedisURL = defaultRedisURL
	}
	if c.TokenTTL <= 0 {
		c.TokenTTL = defaultTokenTTL
	}
	if c.BcryptCost == 0 {
		c.BcryptCost = defaultBcryptCost
	}
}

func (c *AppConfig) applyEnvOverrides() {
	if v := os.Getenv(envJWTSecret); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv(envDatabasePass); v != "" {
		c.Database.Password = v
	}
}

// DSN builds the MySQL connection string.
func (c *AppConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Name)
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }
