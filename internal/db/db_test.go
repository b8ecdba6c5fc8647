package db

import (
	"path/filepath"
	"testing"

	"github.com/alsfleet/fleetmaint/internal/config"
	"github.com/alsfleet/fleetmaint/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestDSN(t *testing.T) {
	got := DSN("maint", "db.fleet.local", 3307, "fleet")
	want := "maint@tcp(db.fleet.local:3307)/fleet?parseTime=true"
	if got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}

func TestConnect_SqliteCreatesDataDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "fleet.db")
	gdb, err := Connect(config.DatabaseConfig{Driver: "sqlite", Path: path})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if gdb == nil {
		t.Fatal("nil db")
	}
}

func TestConnect_UnsupportedDriver(t *testing.T) {
	_, err := Connect(config.DatabaseConfig{Driver: "postgres"})
	if err == nil {
		t.Fatal("want error for unsupported driver")
	}
}

func openMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return gdb
}

func TestAutoMigrate(t *testing.T) {
	gdb := openMemoryDB(t)
	if err := AutoMigrate(gdb); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	for _, table := range []string{"maintenance_records", "vehicles", "destinations"} {
		if !gdb.Migrator().HasTable(table) {
			t.Errorf("table %s missing after migration", table)
		}
	}
}

func TestSeedDestinations_Idempotent(t *testing.T) {
	gdb := openMemoryDB(t)
	if err := AutoMigrate(gdb); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	names := config.DefaultDestinations()
	if err := SeedDestinations(gdb, names); err != nil {
		t.Fatalf("SeedDestinations: %v", err)
	}
	if err := SeedDestinations(gdb, names); err != nil {
		t.Fatalf("second SeedDestinations: %v", err)
	}

	var count int64
	gdb.Model(&models.Destination{}).Count(&count)
	if count != int64(len(names)) {
		t.Errorf("count = %d, want %d", count, len(names))
	}
}

func TestSeedDestinations_KeepsDeactivatedRows(t *testing.T) {
	gdb := openMemoryDB(t)
	if err := AutoMigrate(gdb); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	if err := SeedDestinations(gdb, []string{"OUTROS"}); err != nil {
		t.Fatalf("SeedDestinations: %v", err)
	}
	if err := gdb.Model(&models.Destination{}).
		Where("name = ?", "OUTROS").
		Update("active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	if err := SeedDestinations(gdb, []string{"OUTROS"}); err != nil {
		t.Fatalf("reseed: %v", err)
	}

	var dest models.Destination
	if err := gdb.Where("name = ?", "OUTROS").First(&dest).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if dest.Active {
		t.Error("reseed must not reactivate a deactivated destination")
	}
}

func TestSeedDestinations_SkipsBlanksAndNormalizes(t *testing.T) {
	gdb := openMemoryDB(t)
	if err := AutoMigrate(gdb); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	if err := SeedDestinations(gdb, []string{"  ", " agyle "}); err != nil {
		t.Fatalf("SeedDestinations: %v", err)
	}

	var dests []models.Destination
	if err := gdb.Find(&dests).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(dests) != 1 {
		t.Fatalf("len = %d, want 1", len(dests))
	}
	if dests[0].Name != "AGYLE" {
		t.Errorf("name = %q, want uppercased and trimmed", dests[0].Name)
	}
}
