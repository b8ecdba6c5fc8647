// Package config provides YAML-based configuration loading for FleetMaint.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level FleetMaint configuration, loaded from fleetmaint.yaml.
type Config struct {
	Database     DatabaseConfig  `yaml:"database"`
	Backup       BackupConfig    `yaml:"backup"`
	Dashboard    DashboardConfig `yaml:"dashboard"`
	Destinations []string        `yaml:"destinations"`
}

// DatabaseConfig selects and configures the storage backend. The sqlite
// driver is the default; mysql targets a shared fleet database server.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	Name   string `yaml:"name"`
	User   string `yaml:"user"`
}

// BackupConfig controls pre-import snapshots and their retention.
type BackupConfig struct {
	Dir           string `yaml:"dir"`
	RetentionDays int    `yaml:"retention_days"`
	SweepSchedule string `yaml:"sweep_schedule"`
}

// DashboardConfig holds settings for the read-only HTTP dashboard.
type DashboardConfig struct {
	Port int `yaml:"port"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default loads the config at path when it exists and falls back to built-in
// defaults otherwise, so the CLI works without a config file.
func Default(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := &Config{}
		cfg.applyDefaults()
		return cfg, nil
	}
	return Load(path)
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Path == "" {
		c.Database.Path = "data/fleetmaint.db"
	}
	if c.Database.Host == "" {
		c.Database.Host = "127.0.0.1"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}
	if c.Database.Name == "" {
		c.Database.Name = "fleetmaint"
	}
	if c.Database.User == "" {
		c.Database.User = "root"
	}
	if c.Backup.Dir == "" {
		c.Backup.Dir = "backup"
	}
	if c.Backup.RetentionDays == 0 {
		c.Backup.RetentionDays = 30
	}
	if c.Backup.SweepSchedule == "" {
		c.Backup.SweepSchedule = "@daily"
	}
	if c.Dashboard.Port == 0 {
		c.Dashboard.Port = 8080
	}
	if c.Destinations == nil {
		c.Destinations = DefaultDestinations()
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		errs = append(errs, fmt.Sprintf("database.driver %q is not supported (sqlite, mysql)", c.Database.Driver))
	}
	if c.Database.Driver == "sqlite" && c.Database.Path == "" {
		errs = append(errs, "database.path is required for the sqlite driver")
	}
	if c.Backup.RetentionDays < 0 {
		errs = append(errs, "backup.retention_days must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// DefaultDestinations is the seed list of workshops every fresh database
// starts with. Imports auto-register anything not on this list.
func DefaultDestinations() []string {
	return []string{
		"AGYLE",
		"BOM SUCESSO",
		"M&S",
		"DAF BARIGUI",
		"PAULISTA FREIOS",
		"KREUSCH",
		"CAMINHALTO",
		"OUTROS",
	}
}
