package ledger

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
	logEntity "homestock.GO/model/entity/logentry"
	medicineEntity "homestock.GO/model/entity/medicine"
	memberEntity "homestock.GO/model/entity/member"
	"homestock.GO/service"
)

func ledgerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("ledger_test_%s_%d.db", t.Name(), time.Now().UnixNano()))
	t.Cleanup(func() { os.Remove(tmpFile) })
	db, err := gorm.Open(sqlite.Open(tmpFile+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := migrate.Up(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedItem(t *testing.T, db *gorm.DB, id string, qty, calories float64) {
	t.Helper()
	item := inventoryEntity.Item{
		ID:              id,
		Name:            "Rice " + id,
		Quantity:        qty,
		Unit:            "pcs",
		CaloriesPerUnit: calories,
		ProteinG:        2,
		CarbsG:          20,
		CreatedAt:       service.Timestamp(),
		UpdatedAt:       service.Timestamp(),
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
}

func TestLogConsumption_DebitsAndSnapshots(t *testing.T) {
	db := ledgerTestDB(t)
	svc := NewService(db)
	seedItem(t, db, "item-a", 10, 100)

	entry, err := svc.LogConsumption("item-a", nil, 3, "consumed")
	if err != nil {
		t.Fatalf("LogConsumption: %v", err)
	}
	if entry.Calories != 300 {
		t.Errorf("Calories = %v, want 300", entry.Calories)
	}
	if entry.ProteinG != 6 {
		t.Errorf("ProteinG = %v, want 6", entry.ProteinG)
	}
	if entry.ItemName != "Rice item-a" {
		t.Errorf("ItemName = %q", entry.ItemName)
	}
	if entry.ItemID == nil || *entry.ItemID != "item-a" {
		t.Error("ItemID should reference the surviving item")
	}

	var item inventoryEntity.Item
	if err := db.First(&item, "id = ?", "item-a").Error; err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if item.Quantity != 7 {
		t.Errorf("Quantity = %v, want 7", item.Quantity)
	}
}

func TestLogConsumption_EmptyingDebitDeletesItem(t *testing.T) {
	db := ledgerTestDB(t)
	svc := NewService(db)
	seedItem(t, db, "item-a", 10, 100)

	if _, err := svc.LogConsumption("item-a", nil, 3, "consumed"); err != nil {
		t.Fatalf("first debit: %v", err)
	}
	entry, err := svc.LogConsumption("item-a", nil, 7, "consumed")
	if err != nil {
		t.Fatalf("second debit: %v", err)
	}
	if entry.Calories != 700 {
		t.Errorf("Calories = %v, want 700", entry.Calories)
	}
	// The emptying debit removes the item, which nulls the log's item
	// reference; the returned entry reflects the stored row.
	if entry.ItemID != nil {
		t.Errorf("ItemID = %q, want nil once the item row is removed", *entry.ItemID)
	}
	if entry.ItemName != "Rice item-a" {
		t.Errorf("ItemName = %q, want denormalized name kept", entry.ItemName)
	}

	var count int64
	db.Model(&inventoryEntity.Item{}).Where("id = ?", "item-a").Count(&count)
	if count != 0 {
		t.Error("item should be removed after a debit empties it")
	}
	var logCount int64
	db.Model(&logEntity.ConsumptionLog{}).Count(&logCount)
	if logCount != 2 {
		t.Errorf("log rows = %d, want 2", logCount)
	}
}

func TestLogConsumption_InsufficientStockLeavesItemUnchanged(t *testing.T) {
	db := ledgerTestDB(t)
	svc := NewService(db)
	seedItem(t, db, "item-a", 2, 50)

	_, err := svc.LogConsumption("item-a", nil, 3, "consumed")
	if !errors.Is(err, service.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}

	var item inventoryEntity.Item
	if err := db.First(&item, "id = ?", "item-a").Error; err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if item.Quantity != 2 {
		t.Errorf("Quantity = %v, want 2", item.Quantity)
	}
	var logCount int64
	db.Model(&logEntity.ConsumptionLog{}).Count(&logCount)
	if logCount != 0 {
		t.Error("rejected debit must not write a log row")
	}
}

func TestLogConsumption_UnknownItem(t *testing.T) {
	db := ledgerTestDB(t)
	svc := NewService(db)

	_, err := svc.LogConsumption("nope", nil, 1, "consumed")
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLogConsumption_Validation(t *testing.T) {
	db := ledgerTestDB(t)
	svc := NewService(db)
	seedItem(t, db, "item-a", 5, 10)

	var verr *service.ValidationError
	if _, err := svc.LogConsumption("item-a", nil, 0, "consumed"); !errors.As(err, &verr) {
		t.Errorf("zero quantity: err = %v, want ValidationError", err)
	}
	if _, err := svc.LogConsumption("item-a", nil, 1, "vaporized"); !errors.As(err, &verr) {
		t.Errorf("bad reason: err = %v, want ValidationError", err)
	}
}

func TestDeleteConsumption_DoesNotRestoreStock(t *testing.T) {
	db := ledgerTestDB(t)
	svc := NewService(db)
	seedItem(t, db, "item-a", 10, 100)

	entry, err := svc.LogConsumption("item-a", nil, 4, "consumed")
	if err != nil {
		t.Fatalf("LogConsumption: %v", err)
	}
	if err := svc.DeleteConsumption(entry.ID); err != nil {
		t.Fatalf("DeleteConsumption: %v", err)
	}

	var item inventoryEntity.Item
	if err := db.First(&item, "id = ?", "item-a").Error; err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if item.Quantity != 6 {
		t.Errorf("Quantity = %v, want 6 (undo must not re-credit stock)", item.Quantity)
	}

	if err := svc.DeleteConsumption(entry.ID); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("second delete: err = %v, want ErrNotFound", err)
	}
}

func TestLogMedicineIntake_RejectsOverdraw(t *testing.T) {
	db := ledgerTestDB(t)
	svc := NewService(db)
	med := medicineEntity.Medicine{ID: "med-m", Name: "Aspirin", Quantity: 5, Unit: "tablets"}
	if err := db.Create(&med).Error; err != nil {
		t.Fatalf("seed medicine: %v", err)
	}

	_, err := svc.LogMedicineIntake("med-m", nil, 6, "")
	if !errors.Is(err, service.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}

	var reloaded medicineEntity.Medicine
	db.First(&reloaded, "id = ?", "med-m")
	if reloaded.Quantity != 5 {
		t.Errorf("Quantity = %v, want 5", reloaded.Quantity)
	}
}

func TestLogMedicineIntake_DepletedMedicineKeptAtZero(t *testing.T) {
	db := ledgerTestDB(t)
	svc := NewService(db)
	med := medicineEntity.Medicine{ID: "med-m", Name: "Aspirin", Quantity: 5, Unit: "tablets"}
	if err := db.Create(&med).Error; err != nil {
		t.Fatalf("seed medicine: %v", err)
	}

	row, err := svc.LogMedicineIntake("med-m", nil, 5, "with water")
	if err != nil {
		t.Fatalf("LogMedicineIntake: %v", err)
	}
	if row.MedicineName != "Aspirin" {
		t.Errorf("MedicineName = %q", row.MedicineName)
	}

	var reloaded medicineEntity.Medicine
	if err := db.First(&reloaded, "id = ?", "med-m").Error; err != nil {
		t.Fatal("depleted medicine row must be kept, not deleted")
	}
	if reloaded.Quantity != 0 {
		t.Errorf("Quantity = %v, want 0", reloaded.Quantity)
	}
}

func TestLogLiquid_NoStockLinkage(t *testing.T) {
	db := ledgerTestDB(t)
	svc := NewService(db)
	water := inventoryEntity.Item{ID: "item-w", Name: "Bottled Water", Quantity: 6, IsLiquid: 1, VolumeMl: 9000}
	if err := db.Create(&water).Error; err != nil {
		t.Fatalf("seed liquid item: %v", err)
	}

	row, err := svc.LogLiquid(nil, "", 0)
	if err != nil {
		t.Fatalf("LogLiquid: %v", err)
	}
	if row.Type != "water" || row.AmountMl != 250 {
		t.Errorf("defaults = (%q, %v), want (water, 250)", row.Type, row.AmountMl)
	}

	// Liquid quick-logs never debit liquid inventory rows.
	var reloaded inventoryEntity.Item
	db.First(&reloaded, "id = ?", "item-w")
	if reloaded.Quantity != 6 || reloaded.VolumeMl != 9000 {
		t.Error("liquid inventory row changed by quick log")
	}
}

func TestLogBeverage_Defaults(t *testing.T) {
	db := ledgerTestDB(t)
	svc := NewService(db)

	row, err := svc.LogBeverage(nil, "", 0, 0)
	if err != nil {
		t.Fatalf("LogBeverage: %v", err)
	}
	if row.Type != "coffee" || row.CapsulesOrSachets != 1 {
		t.Errorf("defaults = (%q, %d), want (coffee, 1)", row.Type, row.CapsulesOrSachets)
	}
}

func TestConsumption_Filters(t *testing.T) {
	db := ledgerTestDB(t)
	svc := NewService(db)
	seedItem(t, db, "item-a", 10, 100)
	m := memberEntity.HouseholdMember{ID: "mem-1", Name: "Ada", DailyCalorieTarget: 2000, DailyLiquidTarget: 2000}
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}
	memID := "mem-1"
	if _, err := svc.LogConsumption("item-a", &memID, 1, "consumed"); err != nil {
		t.Fatalf("LogConsumption: %v", err)
	}
	if _, err := svc.LogConsumption("item-a", nil, 1, "discarded"); err != nil {
		t.Fatalf("LogConsumption: %v", err)
	}

	rows, err := svc.Consumption("", "mem-1")
	if err != nil {
		t.Fatalf("Consumption: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("member filter: %d rows, want 1", len(rows))
	}
	if rows[0].MemberName == nil || *rows[0].MemberName != "Ada" {
		t.Error("member name not joined")
	}

	rows, err = svc.Consumption(service.Today(), "")
	if err != nil {
		t.Fatalf("Consumption by date: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("date filter: %d rows, want 2", len(rows))
	}
	if rows, _ = svc.Consumption("1999-01-01", ""); len(rows) != 0 {
		t.Error("stale date should match nothing")
	}
}
