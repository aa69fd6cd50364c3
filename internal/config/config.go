package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/yuzvak/rocketshoes-cart/internal/domain/cart"
	domainErrors "github.com/yuzvak/rocketshoes-cart/internal/domain/errors"
)

type Config struct {
	Server   ServerConfig   `json:"server" toml:"server"`
	Catalog  CatalogConfig  `json:"catalog" toml:"catalog"`
	Storage  StorageConfig  `json:"storage" toml:"storage"`
	Database DatabaseConfig `json:"database" toml:"database"`
	Redis    RedisConfig    `json:"redis" toml:"redis"`
	S3       S3Config       `json:"s3" toml:"s3"`
	Notify   NotifyConfig   `json:"notify" toml:"notify"`
	Log      LogConfig      `json:"log" toml:"log"`
}

type ServerConfig struct {
	Host string `json:"host" toml:"host"`
	Port int    `json:"port" toml:"port"`
}

type CatalogConfig struct {
	BaseURL   string `json:"base_url" toml:"base_url"`
	TimeoutMS int    `json:"timeout_ms" toml:"timeout_ms"`
}

type StorageConfig struct {
	Driver     string `json:"driver" toml:"driver"`
	Key        string `json:"key" toml:"key"`
	FilePath   string `json:"file_path" toml:"file_path"`
	SQLitePath string `json:"sqlite_path" toml:"sqlite_path"`
}

type DatabaseConfig struct {
	Driver         string `json:"driver" toml:"driver"`
	Host           string `json:"host" toml:"host"`
	Port           int    `json:"port" toml:"port"`
	User           string `json:"user" toml:"user"`
	Password       string `json:"password" toml:"password"`
	DBName         string `json:"dbname" toml:"dbname"`
	SSLMode        string `json:"sslmode" toml:"sslmode"`
	MigrationsPath string `json:"migrations_path" toml:"migrations_path"`
}

type RedisConfig struct {
	Host     string `json:"host" toml:"host"`
	Port     int    `json:"port" toml:"port"`
	Password string `json:"password" toml:"password"`
	DB       int    `json:"db" toml:"db"`
	PoolSize int    `json:"pool_size" toml:"pool_size"`
}

type S3Config struct {
	Bucket    string `json:"bucket" toml:"bucket"`
	Region    string `json:"region" toml:"region"`
	Endpoint  string `json:"endpoint" toml:"endpoint"`
	Prefix    string `json:"prefix" toml:"prefix"`
	PathStyle bool   `json:"path_style" toml:"path_style"`
}

type NotifyConfig struct {
	RedisChannel string `json:"redis_channel" toml:"redis_channel"`
}

type LogConfig struct {
	Level   string `json:"level" toml:"level"`
	Console bool   `json:"console" toml:"console"`
}

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverS3       = "s3"
)

func Default() *Config {
	return &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
		Catalog: CatalogConfig{
			BaseURL:   "http://localhost:3333",
			TimeoutMS: 5000,
		},
		Storage: StorageConfig{
			Driver:     DriverFile,
			Key:        cart.StorageKey,
			FilePath:   "data/cart.json",
			SQLitePath: "data/cart.db",
		},
		Database: DatabaseConfig{
			Driver:         "postgres",
			Host:           "localhost",
			Port:           5432,
			SSLMode:        "disable",
			MigrationsPath: "migrations",
		},
		Redis: RedisConfig{Host: "localhost", Port: 6379, PoolSize: 10},
		S3:    S3Config{Region: "us-east-1"},
		Log:   LogConfig{Level: "info"},
	}
}

// LoadConfig reads a JSON file, or TOML when the path ends in .toml, on top of
// the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverRedis, DriverPostgres:
	case DriverFile:
		if c.Storage.FilePath == "" {
			return fmt.Errorf("storage.file_path is required for the file driver")
		}
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("storage.sqlite_path is required for the sqlite driver")
		}
	case DriverS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("s3.bucket is required for the s3 driver")
		}
	default:
		return fmt.Errorf("%w: %q", domainErrors.ErrUnknownStorageDriver, c.Storage.Driver)
	}

	if c.Storage.Driver == DriverPostgres && c.Database.Driver != "postgres" && c.Database.Driver != "pgx" {
		return fmt.Errorf("database.driver must be postgres or pgx, got %q", c.Database.Driver)
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("storage.key must not be empty")
	}
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog.base_url is required")
	}
	return nil
}

func (c *CatalogConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

func (c *DatabaseConfig) GetDSN() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}
