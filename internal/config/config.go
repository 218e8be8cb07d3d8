package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Storage    StorageConfig    `yaml:"storage"`
	Logging    LoggingConfig    `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Backup     BackupConfig     `yaml:"backup"`
	Exports    ExportConfig     `yaml:"exports"`
	Auth       AuthConfig       `yaml:"auth"`
	Bootstrap  BootstrapConfig  `yaml:"bootstrap"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type StorageConfig struct {
	BookingsFile string `yaml:"bookings_file"`
	HotelsFile   string `yaml:"hotels_file"`
	UsersFile    string `yaml:"users_file"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type BackupConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Schedule      string `yaml:"schedule"`
	RetentionDays int    `yaml:"retention_days"`
	StoragePath   string `yaml:"storage_path"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

type AuthConfig struct {
	MaxLoginAttempts int     `yaml:"max_login_attempts"`
	FailedLoginRPS   float64 `yaml:"failed_login_rps"`
	FailedLoginBurst int     `yaml:"failed_login_burst"`
}

type BootstrapConfig struct {
	AdminUsername string `yaml:"admin_username"`
	AdminPassword string `yaml:"admin_password"`
}

// Load читает YAML-конфигурацию, предварительно подставляя переменные
// окружения (включая .env, если файл существует).
func Load(configPath string) (*Config, error) {
	// .env необязателен, его отсутствие не ошибка
	_ = godotenv.Load(".env")

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Storage.BookingsFile == "" || c.Storage.HotelsFile == "" || c.Storage.UsersFile == "" {
		return errors.New("storage paths for bookings, hotels and users are required")
	}
	if c.Backup.Enabled && c.Backup.StoragePath == "" {
		return errors.New("backup.storage_path is required when backup is enabled")
	}
	if c.Auth.MaxLoginAttempts < 1 {
		return errors.New("auth.max_login_attempts must be positive")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "hotelier"
	}
	if c.Storage.BookingsFile == "" {
		c.Storage.BookingsFile = "data/bookings.csv"
	}
	if c.Storage.HotelsFile == "" {
		c.Storage.HotelsFile = "data/hotels.csv"
	}
	if c.Storage.UsersFile == "" {
		c.Storage.UsersFile = "data/users.txt"
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if c.Backup.RetentionDays == 0 {
		c.Backup.RetentionDays = 14
	}
	if c.Exports.Path == "" {
		c.Exports.Path = "exports"
	}
	if c.Auth.MaxLoginAttempts == 0 {
		c.Auth.MaxLoginAttempts = 3
	}
	if c.Auth.FailedLoginRPS == 0 {
		c.Auth.FailedLoginRPS = 1
	}
	if c.Auth.FailedLoginBurst == 0 {
		c.Auth.FailedLoginBurst = 3
	}
	if c.Bootstrap.AdminUsername == "" {
		c.Bootstrap.AdminUsername = "admin"
	}
	if c.Bootstrap.AdminPassword == "" {
		c.Bootstrap.AdminPassword = "admin123"
	}
}
