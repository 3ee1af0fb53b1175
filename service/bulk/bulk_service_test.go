package bulk

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"homestock.GO/migrate"
	inventoryEntity "homestock.GO/model/entity/inventory"
	"homestock.GO/service"
)

func bulkTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("bulk_test_%s_%d.db", t.Name(), time.Now().UnixNano()))
	t.Cleanup(func() { os.Remove(tmpFile) })
	db, err := gorm.Open(sqlite.Open(tmpFile+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := migrate.Up(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := migrate.Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}

func seedItem(t *testing.T, db *gorm.DB, id, name string, qty float64) {
	t.Helper()
	now := service.Timestamp()
	item := inventoryEntity.Item{
		ID:              id,
		Name:            name,
		Quantity:        qty,
		Unit:            "pcs",
		CaloriesPerUnit: 120,
		Notes:           "shelf 2",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
}

func TestDuplicate_CopiesFieldsWithFreshIdentity(t *testing.T) {
	db := bulkTestDB(t)
	svc := NewService(db)
	seedItem(t, db, "item-a", "Beans", 4)

	created, err := svc.Duplicate([]string{"item-a", "item-missing"})
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("created %d items, want 1 (missing id skipped)", len(created))
	}
	dup := created[0]
	if dup.ID == "item-a" || dup.ID == "" {
		t.Errorf("duplicate id = %q, want fresh id", dup.ID)
	}
	if dup.Name != "Beans" || dup.Quantity != 4 || dup.CaloriesPerUnit != 120 || dup.Notes != "shelf 2" {
		t.Errorf("field copy mismatch: %+v", dup)
	}

	var count int64
	db.Model(&inventoryEntity.Item{}).Count(&count)
	if count != 2 {
		t.Errorf("row count = %d, want 2", count)
	}
}

func TestUpdate_TouchesOnlySpecifiedFields(t *testing.T) {
	db := bulkTestDB(t)
	svc := NewService(db)
	seedItem(t, db, "item-a", "Beans", 4)
	seedItem(t, db, "item-b", "Lentils", 9)

	rows, err := svc.Update([]string{"item-a", "item-b"}, map[string]interface{}{
		"category_id": "cat-grain",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("returned %d rows, want 2", len(rows))
	}
	for _, row := range rows {
		if row.CategoryID == nil || *row.CategoryID != "cat-grain" {
			t.Errorf("%s: category_id not applied", row.ID)
		}
		if row.CategoryName == nil || *row.CategoryName != "Grains & Cereals" {
			t.Errorf("%s: category join missing", row.ID)
		}
	}

	var a, b inventoryEntity.Item
	db.First(&a, "id = ?", "item-a")
	db.First(&b, "id = ?", "item-b")
	if a.Name != "Beans" || a.Quantity != 4 || b.Name != "Lentils" || b.Quantity != 9 {
		t.Error("unspecified fields must stay untouched")
	}
}

func TestUpdate_BoolCoercionAndSkips(t *testing.T) {
	db := bulkTestDB(t)
	svc := NewService(db)
	seedItem(t, db, "item-a", "Juice", 2)

	rows, err := svc.Update([]string{"item-a"}, map[string]interface{}{
		"is_liquid": true,
		"volume_ml": 1000,
		"notes":     "", // empty string means "not provided"
		"unit":      nil,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	row := rows[0]
	if row.IsLiquid != 1 {
		t.Errorf("IsLiquid = %d, want 1", row.IsLiquid)
	}
	if row.VolumeMl != 1000 {
		t.Errorf("VolumeMl = %v, want 1000", row.VolumeMl)
	}
	if row.Notes != "shelf 2" {
		t.Errorf("Notes = %q, want original value kept", row.Notes)
	}
	if row.Unit != "pcs" {
		t.Errorf("Unit = %q, want original value kept", row.Unit)
	}
}

func TestUpdate_NoFields(t *testing.T) {
	db := bulkTestDB(t)
	svc := NewService(db)
	seedItem(t, db, "item-a", "Beans", 4)

	if _, err := svc.Update([]string{"item-a"}, map[string]interface{}{"notes": ""}); !errors.Is(err, service.ErrNoFields) {
		t.Errorf("err = %v, want ErrNoFields", err)
	}
	if _, err := svc.Update([]string{"item-a"}, map[string]interface{}{}); !errors.Is(err, service.ErrNoFields) {
		t.Errorf("empty map: err = %v, want ErrNoFields", err)
	}
}

func TestDelete_ReturnsActualCount(t *testing.T) {
	db := bulkTestDB(t)
	svc := NewService(db)
	seedItem(t, db, "item-a", "Beans", 4)

	n, err := svc.Delete([]string{"item-a", "item-missing"})
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}

	var count int64
	db.Model(&inventoryEntity.Item{}).Count(&count)
	if count != 0 {
		t.Error("item-a should be gone")
	}
}
