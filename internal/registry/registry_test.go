package registry

import (
	"errors"
	"testing"

	"github.com/alsfleet/fleetmaint/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Vehicle{}, &models.Destination{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

func TestEnsureVehicle_CreatesOnce(t *testing.T) {
	db := openTestDB(t)

	created, err := EnsureVehicle(db, "abc1234", "CAVALO VOLVO FH")
	if err != nil {
		t.Fatalf("EnsureVehicle: %v", err)
	}
	if !created {
		t.Error("first EnsureVehicle should create")
	}

	created, err = EnsureVehicle(db, "ABC1234", "something else")
	if err != nil {
		t.Fatalf("EnsureVehicle second call: %v", err)
	}
	if created {
		t.Error("second EnsureVehicle should be a no-op")
	}

	var count int64
	db.Model(&models.Vehicle{}).Count(&count)
	if count != 1 {
		t.Errorf("vehicle count = %d, want 1", count)
	}

	v, err := GetVehicle(db, "abc1234")
	if err != nil {
		t.Fatalf("GetVehicle: %v", err)
	}
	if v.Plate != "ABC1234" {
		t.Errorf("plate = %q, want uppercase", v.Plate)
	}
	if v.TypeLabel != models.TypeCavalo {
		t.Errorf("type = %q, want %q", v.TypeLabel, models.TypeCavalo)
	}
	if !v.Active {
		t.Error("new vehicle should be active")
	}
	if v.RegisteredAt.IsZero() {
		t.Error("RegisteredAt should be set")
	}
}

func TestAddVehicle_Duplicate(t *testing.T) {
	db := openTestDB(t)

	if _, err := AddVehicle(db, "DEF5678", models.TypeLS, "", 1000); err != nil {
		t.Fatalf("AddVehicle: %v", err)
	}
	_, err := AddVehicle(db, "def5678", "", "", 0)
	if !errors.Is(err, ErrExists) {
		t.Errorf("err = %v, want ErrExists", err)
	}
}

func TestDeactivateVehicle(t *testing.T) {
	db := openTestDB(t)

	if _, err := AddVehicle(db, "GHI0001", "", "", 0); err != nil {
		t.Fatalf("AddVehicle: %v", err)
	}
	if err := DeactivateVehicle(db, "ghi0001"); err != nil {
		t.Fatalf("DeactivateVehicle: %v", err)
	}

	v, err := GetVehicle(db, "GHI0001")
	if err != nil {
		t.Fatalf("GetVehicle after deactivate: %v", err)
	}
	if v.Active {
		t.Error("vehicle should be inactive")
	}

	if err := DeactivateVehicle(db, "ZZZ9999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deactivate unknown = %v, want ErrNotFound", err)
	}
}

func TestActiveVehicles_OrderAndFilter(t *testing.T) {
	db := openTestDB(t)

	for _, plate := range []string{"CCC0003", "AAA0001", "BBB0002"} {
		if _, err := AddVehicle(db, plate, "", "", 0); err != nil {
			t.Fatalf("AddVehicle %s: %v", plate, err)
		}
	}
	if err := DeactivateVehicle(db, "BBB0002"); err != nil {
		t.Fatalf("DeactivateVehicle: %v", err)
	}

	vehicles, err := ActiveVehicles(db)
	if err != nil {
		t.Fatalf("ActiveVehicles: %v", err)
	}
	if len(vehicles) != 2 {
		t.Fatalf("len = %d, want 2", len(vehicles))
	}
	if vehicles[0].Plate != "AAA0001" || vehicles[1].Plate != "CCC0003" {
		t.Errorf("order = %s, %s; want alphabetical", vehicles[0].Plate, vehicles[1].Plate)
	}
}

func TestUpdateOdometer(t *testing.T) {
	db := openTestDB(t)

	if _, err := AddVehicle(db, "JKL0004", "", "", 100); err != nil {
		t.Fatalf("AddVehicle: %v", err)
	}
	if err := UpdateOdometer(db, "jkl0004", 2500); err != nil {
		t.Fatalf("UpdateOdometer: %v", err)
	}
	v, err := GetVehicle(db, "JKL0004")
	if err != nil {
		t.Fatalf("GetVehicle: %v", err)
	}
	if v.LastOdometer != 2500 {
		t.Errorf("LastOdometer = %d, want 2500", v.LastOdometer)
	}

	if err := UpdateOdometer(db, "NOPE123", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown plate = %v, want ErrNotFound", err)
	}
}

func TestEnsureDestination_UppercasesKey(t *testing.T) {
	db := openTestDB(t)

	created, err := EnsureDestination(db, "  paulista freios ")
	if err != nil {
		t.Fatalf("EnsureDestination: %v", err)
	}
	if !created {
		t.Error("first EnsureDestination should create")
	}

	// Same name, different case: no duplicate.
	created, err = EnsureDestination(db, "Paulista Freios")
	if err != nil {
		t.Fatalf("EnsureDestination second call: %v", err)
	}
	if created {
		t.Error("second EnsureDestination should be a no-op")
	}

	d, err := GetDestination(db, "paulista freios")
	if err != nil {
		t.Fatalf("GetDestination: %v", err)
	}
	if d.Name != "PAULISTA FREIOS" {
		t.Errorf("name = %q, want stored uppercase", d.Name)
	}
}

func TestDeactivateDestination(t *testing.T) {
	db := openTestDB(t)

	if _, err := AddDestination(db, "KREUSCH"); err != nil {
		t.Fatalf("AddDestination: %v", err)
	}
	if err := DeactivateDestination(db, "kreusch"); err != nil {
		t.Fatalf("DeactivateDestination: %v", err)
	}

	dests, err := ActiveDestinations(db)
	if err != nil {
		t.Fatalf("ActiveDestinations: %v", err)
	}
	if len(dests) != 0 {
		t.Errorf("active destinations = %d, want 0", len(dests))
	}

	if err := DeactivateDestination(db, "MISSING"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deactivate unknown = %v, want ErrNotFound", err)
	}
}

func TestInferVehicleType(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"CAVALO VOLVO FH", "CAVALO"},
		{"cavalo scania", "CAVALO"},
		{"CARRETA 1 RANDON", "CARRETA 1"},
		{"CARRETA 2", "CARRETA 2"},
		{"CARRETA GRANELEIRA", "CARRETA"},
		{"BUG 1", "BUG 1"},
		{"BUG 2 ALUMÍNIO", "BUG 2"},
		{"BUG", "BUG"},
		{"LS VOLVO", "LS"},
		{"caminhão baú", "INDEFINIDO"},
		{"", "INDEFINIDO"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := InferVehicleType(tt.label); got != tt.want {
				t.Errorf("InferVehicleType(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}
