package config

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type ctxKey string

const configContextKey ctxKey = "mala.config"

// EnvPrefix prefix for environment overrides, e.g. MALA_DATABASE_DSN.
const EnvPrefix = "MALA"

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	StorageLocal = "local"
	StorageS3    = "s3"

	RevocationDatabase = "database"
	RevocationRedis    = "redis"

	EnvDevelopment = "development"
)

func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

func FromContext(ctx context.Context) *Config {
	cfg, ok := ctx.Value(configContextKey).(*Config)
	if !ok {
		return nil
	}
	return cfg
}

type Config struct {
	Environment string         `yaml:"environment" envconfig:"ENVIRONMENT"`
	Server      ServerConfig   `yaml:"server"      envconfig:"SERVER"`
	Database    DatabaseConfig `yaml:"database"    envconfig:"DATABASE"`
	Auth        AuthConfig     `yaml:"auth"        envconfig:"AUTH"`
	Redis       RedisConfig    `yaml:"redis"       envconfig:"REDIS"`
	Storage     StorageConfig  `yaml:"storage"     envconfig:"STORAGE"`
	SMTP        SMTPConfig     `yaml:"smtp"        envconfig:"SMTP"`
	Kafka       KafkaConfig    `yaml:"kafka"       envconfig:"KAFKA"`
	Logging     LoggingConfig  `yaml:"logging"     envconfig:"LOGGING"`
}

type ServerConfig struct {
	ListenAddress   string        `yaml:"listen_address"   envconfig:"LISTEN_ADDRESS"`
	Port            uint          `yaml:"port"             envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    envconfig:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	AllowedOrigins  []string      `yaml:"allowed_origins"  envconfig:"ALLOWED_ORIGINS"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.ListenAddress, s.Port)
}

type DatabaseConfig struct {
	Driver          string        `yaml:"driver"            envconfig:"DRIVER"`
	DSN             string        `yaml:"dsn"               envconfig:"DSN"`
	MaxOpenConns    int           `yaml:"max_open_conns"    envconfig:"MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns"    envconfig:"MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" envconfig:"CONN_MAX_LIFETIME"`
	AutoMigrate     bool          `yaml:"auto_migrate"      envconfig:"AUTO_MIGRATE"`
}

type AuthConfig struct {
	JWTSecret       string        `yaml:"jwt_secret"       envconfig:"JWT_SECRET"`
	TokenTTL        time.Duration `yaml:"token_ttl"        envconfig:"TOKEN_TTL"`
	RevocationStore string        `yaml:"revocation_store" envconfig:"REVOCATION_STORE"`

	// set when JWTSecret was generated for this process only
	ephemeralSecret bool
}

// EphemeralSecret reports whether the signing key was generated at startup;
// tokens then stop verifying when the process restarts.
func (a AuthConfig) EphemeralSecret() bool { return a.ephemeralSecret }

type RedisConfig struct {
	Addr     string `yaml:"addr"     envconfig:"ADDR"`
	Password string `yaml:"password" envconfig:"PASSWORD"`
	DB       int    `yaml:"db"       envconfig:"DB"`
}

type StorageConfig struct {
	Driver        string        `yaml:"driver"          envconfig:"DRIVER"`
	LocalDir      string        `yaml:"local_dir"       envconfig:"LOCAL_DIR"`
	PublicBaseURL string        `yaml:"public_base_url" envconfig:"PUBLIC_BASE_URL"`
	Bucket        string        `yaml:"bucket"          envconfig:"BUCKET"`
	Region        string        `yaml:"region"          envconfig:"REGION"`
	Endpoint      string        `yaml:"endpoint"        envconfig:"ENDPOINT"`
	UsePathStyle  bool          `yaml:"use_path_style"  envconfig:"USE_PATH_STYLE"`
	Timeout       time.Duration `yaml:"timeout"         envconfig:"TIMEOUT"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"     envconfig:"HOST"`
	Port     int    `yaml:"port"     envconfig:"PORT"`
	Username string `yaml:"username" envconfig:"USERNAME"`
	Password string `yaml:"password" envconfig:"PASSWORD"`
	From     string `yaml:"from"     envconfig:"FROM"`
	ReplyTo  string `yaml:"reply_to" envconfig:"REPLY_TO"`
}

type KafkaConfig struct {
	Brokers        []string      `yaml:"brokers"         envconfig:"BROKERS"`
	Topic          string        `yaml:"topic"           envconfig:"TOPIC"`
	PublishTimeout time.Duration `yaml:"publish_timeout" envconfig:"PUBLISH_TIMEOUT"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"  envconfig:"LEVEL"`
	Format string `yaml:"format" envconfig:"FORMAT"`
}

// Default values used before the config file and environment are applied.
func Default() *Config {
	return &Config{
		Environment: EnvDevelopment,
		Server: ServerConfig{
			ListenAddress:   "0.0.0.0",
			Port:            8000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			AllowedOrigins:  []string{"http://localhost:3000"},
		},
		Database: DatabaseConfig{
			Driver:          DriverSQLite,
			DSN:             "mala.db",
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Hour,
			AutoMigrate:     true,
		},
		Auth: AuthConfig{
			TokenTTL:        30 * time.Minute,
			RevocationStore: RevocationDatabase,
		},
		Redis: RedisConfig{
			Addr: "127.0.0.1:6379",
		},
		Storage: StorageConfig{
			Driver:        StorageLocal,
			LocalDir:      "uploads",
			PublicBaseURL: "http://localhost:8000/uploads",
			Region:        "us-east-1",
			Timeout:       60 * time.Second,
		},
		SMTP: SMTPConfig{
			Port: 587,
		},
		Kafka: KafkaConfig{
			Topic:          "mala.workflow",
			PublishTimeout: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load applies defaults, then the YAML file (if path is set), then MALA_*
// environment variables, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		buf, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(buf, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "" || c.Environment == EnvDevelopment
}

func (c *Config) Validate() error {
	var errs []error
	switch c.Database.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown database driver %q", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database dsn is required"))
	}
	switch c.Storage.Driver {
	case StorageLocal:
		if c.Storage.LocalDir == "" {
			errs = append(errs, errors.New("storage local_dir is required for the local driver"))
		}
	case StorageS3:
		if c.Storage.Bucket == "" {
			errs = append(errs, errors.New("storage bucket is required for the s3 driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}
	switch c.Auth.RevocationStore {
	case RevocationDatabase, RevocationRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown revocation store %q", c.Auth.RevocationStore))
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		if !c.IsDevelopment() {
			errs = append(errs, errors.New("auth jwt_secret is required outside development"))
		} else {
			secret, err := randomSecret()
			if err != nil {
				errs = append(errs, err)
			} else {
				c.Auth.JWTSecret = secret
				c.Auth.ephemeralSecret = true
			}
		}
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth token_ttl must be positive"))
	}
	return errors.Join(errs...)
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate jwt secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
