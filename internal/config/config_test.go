package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(""))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Database.Path != "data/fleetmaint.db" {
		t.Errorf("path = %q", cfg.Database.Path)
	}
	if cfg.Backup.Dir != "backup" {
		t.Errorf("backup dir = %q", cfg.Backup.Dir)
	}
	if cfg.Backup.RetentionDays != 30 {
		t.Errorf("retention = %d, want 30", cfg.Backup.RetentionDays)
	}
	if cfg.Backup.SweepSchedule != "@daily" {
		t.Errorf("sweep schedule = %q", cfg.Backup.SweepSchedule)
	}
	if cfg.Dashboard.Port != 8080 {
		t.Errorf("dashboard port = %d, want 8080", cfg.Dashboard.Port)
	}
	if len(cfg.Destinations) != len(DefaultDestinations()) {
		t.Errorf("destinations = %v, want seed list", cfg.Destinations)
	}
}

func TestParse_Overrides(t *testing.T) {
	raw := `
database:
  driver: mysql
  host: db.fleet.local
  port: 3307
  name: fleet
  user: maint
backup:
  retention_days: 7
dashboard:
  port: 9090
destinations:
  - OFICINA PRÓPRIA
`
	cfg, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Database.Driver != "mysql" {
		t.Errorf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Database.Host != "db.fleet.local" || cfg.Database.Port != 3307 {
		t.Errorf("host:port = %s:%d", cfg.Database.Host, cfg.Database.Port)
	}
	if cfg.Database.User != "maint" {
		t.Errorf("user = %q", cfg.Database.User)
	}
	if cfg.Backup.RetentionDays != 7 {
		t.Errorf("retention = %d", cfg.Backup.RetentionDays)
	}
	if cfg.Dashboard.Port != 9090 {
		t.Errorf("port = %d", cfg.Dashboard.Port)
	}
	if len(cfg.Destinations) != 1 || cfg.Destinations[0] != "OFICINA PRÓPRIA" {
		t.Errorf("destinations = %v", cfg.Destinations)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bad driver", "database:\n  driver: postgres\n", "database.driver"},
		{"negative retention", "backup:\n  retention_days: -1\n", "retention_days"},
		{"malformed yaml", "database: [", "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			if err == nil {
				t.Fatal("want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleetmaint.yaml")
	if err := os.WriteFile(path, []byte("dashboard:\n  port: 7000\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Dashboard.Port != 7000 {
		t.Errorf("port = %d, want 7000", cfg.Dashboard.Port)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of missing file should error")
	}
}

func TestDefault_MissingFileFallsBack(t *testing.T) {
	cfg, err := Default(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("driver = %q, want built-in defaults", cfg.Database.Driver)
	}
}
