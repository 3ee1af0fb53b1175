package metrics

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

func metricsTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("metrics_test_%s_%d.db", t.Name(), time.Now().UnixNano()))
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

func strPtr(s string) *string { return &s }

func TestDashboard_RationsAndTotals(t *testing.T) {
	db := metricsTestDB(t)
	svc := NewService(db)

	members := []memberEntity.HouseholdMember{
		{ID: "mem-1", Name: "Ada", DailyCalorieTarget: 1500, DailyLiquidTarget: 2000},
		{ID: "mem-2", Name: "Bo", DailyCalorieTarget: 1000, DailyLiquidTarget: 1000},
	}
	if err := db.Create(&members).Error; err != nil {
		t.Fatalf("seed members: %v", err)
	}
	items := []inventoryEntity.Item{
		{ID: "item-a", Name: "Rice", CategoryID: strPtr("cat-grain"), Quantity: 3, CaloriesPerUnit: 3000, ProteinG: 60},
		{ID: "item-b", Name: "Beans", CategoryID: strPtr("cat-grain"), Quantity: 2, CaloriesPerUnit: 2000},
		{ID: "item-w", Name: "Water", Quantity: 6, IsLiquid: 1, VolumeMl: 9000},
	}
	if err := db.Create(&items).Error; err != nil {
		t.Fatalf("seed items: %v", err)
	}

	d, err := svc.Dashboard()
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if d.Inventory.TotalItems != 3 || d.Inventory.TotalUnits != 11 {
		t.Errorf("inventory = %+v", d.Inventory)
	}
	if d.Inventory.TotalCalories != 5000 {
		t.Errorf("TotalCalories = %v, want 5000", d.Inventory.TotalCalories)
	}
	if d.MemberCount != 2 || d.DailyCalorieNeed != 2500 {
		t.Errorf("members = %d need = %v", d.MemberCount, d.DailyCalorieNeed)
	}
	if d.DaysOfRations != 2 {
		t.Errorf("DaysOfRations = %d, want floor(5000/2500) = 2", d.DaysOfRations)
	}
	if d.LiquidRations.TotalMl != 9000 || d.LiquidRations.ItemCount != 1 {
		t.Errorf("liquidRations = %+v", d.LiquidRations)
	}
	if d.DailyLiquidNeed != 3000 || d.DaysOfLiquidRations != 3 {
		t.Errorf("liquid need = %v days = %d", d.DailyLiquidNeed, d.DaysOfLiquidRations)
	}

	// Only categories with at least one item appear; the liquid item has
	// no category so it contributes to no row.
	if len(d.CategoryBreakdown) != 1 {
		t.Fatalf("categoryBreakdown rows = %d, want 1", len(d.CategoryBreakdown))
	}
	row := d.CategoryBreakdown[0]
	if row.Name != "Grains & Cereals" || row.ItemCount != 2 || row.TotalQuantity != 5 || row.TotalCalories != 5000 {
		t.Errorf("breakdown row = %+v", row)
	}

	if len(d.TodayConsumption) != 2 {
		t.Errorf("todayConsumption rows = %d, want one per member", len(d.TodayConsumption))
	}
}

func TestDashboard_NoMembersMeansZeroDays(t *testing.T) {
	db := metricsTestDB(t)
	svc := NewService(db)
	item := inventoryEntity.Item{ID: "item-a", Name: "Rice", CaloriesPerUnit: 4000}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}

	d, err := svc.Dashboard()
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if d.DaysOfRations != 0 || d.DaysOfLiquidRations != 0 {
		t.Errorf("days = (%d, %d), want zero when no members exist", d.DaysOfRations, d.DaysOfLiquidRations)
	}
}

func TestDashboard_ExpiryBuckets(t *testing.T) {
	db := metricsTestDB(t)
	svc := NewService(db)

	items := []inventoryEntity.Item{
		{ID: "item-soon", Name: "Milk", ExpiryDate: strPtr(service.DaysFromToday(2))},
		{ID: "item-edge", Name: "Yogurt", ExpiryDate: strPtr(service.DaysFromToday(3))},
		{ID: "item-far", Name: "Honey", ExpiryDate: strPtr(service.DaysFromToday(10))},
		{ID: "item-gone", Name: "Bread", ExpiryDate: strPtr(service.DaysFromToday(-1))},
		{ID: "item-none", Name: "Salt"},
	}
	if err := db.Create(&items).Error; err != nil {
		t.Fatalf("seed items: %v", err)
	}
	meds := []medicineEntity.Medicine{
		{ID: "med-soon", Name: "Aspirin", ExpiryDate: strPtr(service.DaysFromToday(25))},
		{ID: "med-far", Name: "Ibuprofen", ExpiryDate: strPtr(service.DaysFromToday(45))},
		{ID: "med-gone", Name: "Syrup", ExpiryDate: strPtr(service.DaysFromToday(-2))},
	}
	if err := db.Create(&meds).Error; err != nil {
		t.Fatalf("seed medicines: %v", err)
	}

	d, err := svc.Dashboard()
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	// Item window is 3 days inclusive; today-expiring counts as expiring,
	// not expired.
	if len(d.ExpiringSoon) != 2 {
		t.Fatalf("expiringSoon = %d items, want 2", len(d.ExpiringSoon))
	}
	if d.ExpiringSoon[0].ID != "item-soon" || d.ExpiringSoon[1].ID != "item-edge" {
		t.Errorf("expiringSoon order = [%s %s]", d.ExpiringSoon[0].ID, d.ExpiringSoon[1].ID)
	}
	if len(d.Expired) != 1 || d.Expired[0].ID != "item-gone" {
		t.Errorf("expired bucket = %+v", d.Expired)
	}

	if len(d.MedicineExpiring) != 1 || d.MedicineExpiring[0].ID != "med-soon" {
		t.Errorf("medicineExpiring = %+v", d.MedicineExpiring)
	}
	if len(d.MedicineExpired) != 1 || d.MedicineExpired[0].ID != "med-gone" {
		t.Errorf("medicineExpired = %+v", d.MedicineExpired)
	}
}

func TestMemberToday(t *testing.T) {
	db := metricsTestDB(t)
	svc := NewService(db)
	m := memberEntity.HouseholdMember{ID: "mem-1", Name: "Ada", DailyCalorieTarget: 1800, DailyLiquidTarget: 2000}
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}
	now := service.Timestamp()
	logs := []logEntity.ConsumptionLog{
		{ID: "log-1", ItemName: "Rice", MemberID: strPtr("mem-1"), Quantity: 1, Calories: 400, ProteinG: 10, Reason: "consumed", ConsumedAt: now},
		{ID: "log-2", ItemName: "Beans", MemberID: strPtr("mem-1"), Quantity: 2, Calories: 300, Reason: "consumed", ConsumedAt: now},
		{ID: "log-old", ItemName: "Soup", MemberID: strPtr("mem-1"), Quantity: 1, Calories: 999, Reason: "consumed", ConsumedAt: "2001-01-01 12:00:00"},
	}
	if err := db.Create(&logs).Error; err != nil {
		t.Fatalf("seed logs: %v", err)
	}
	liquids := []logEntity.LiquidLog{
		{ID: "liq-1", MemberID: strPtr("mem-1"), Type: "water", AmountMl: 250, LoggedAt: now},
		{ID: "liq-2", MemberID: strPtr("mem-1"), Type: "water", AmountMl: 500, LoggedAt: now},
		{ID: "liq-3", MemberID: strPtr("mem-1"), Type: "tea", AmountMl: 200, LoggedAt: now},
	}
	if err := db.Create(&liquids).Error; err != nil {
		t.Fatalf("seed liquids: %v", err)
	}

	rollup, err := svc.MemberToday("mem-1")
	if err != nil {
		t.Fatalf("MemberToday: %v", err)
	}
	if rollup.Member.Name != "Ada" {
		t.Errorf("member name = %q", rollup.Member.Name)
	}
	if rollup.Consumed.TotalCalories != 700 || rollup.Consumed.TotalProtein != 10 {
		t.Errorf("consumed = %+v, stale-day log must be excluded", rollup.Consumed)
	}
	byType := map[string]float64{}
	for _, l := range rollup.Liquids {
		byType[l.Type] = l.TotalMl
	}
	if byType["water"] != 750 || byType["tea"] != 200 {
		t.Errorf("liquids = %v", byType)
	}

	if _, err := svc.MemberToday("mem-missing"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("unknown member: err = %v, want ErrNotFound", err)
	}
}

func TestLiquidSummary_SplitsByType(t *testing.T) {
	db := metricsTestDB(t)
	svc := NewService(db)
	members := []memberEntity.HouseholdMember{
		{ID: "mem-1", Name: "Ada"},
		{ID: "mem-2", Name: "Bo"},
	}
	if err := db.Create(&members).Error; err != nil {
		t.Fatalf("seed members: %v", err)
	}
	ts := "2026-03-01 09:30:00"
	liquids := []logEntity.LiquidLog{
		{ID: "liq-1", MemberID: strPtr("mem-1"), Type: "water", AmountMl: 300, LoggedAt: ts},
		{ID: "liq-2", MemberID: strPtr("mem-1"), Type: "coffee", AmountMl: 150, LoggedAt: ts},
		{ID: "liq-3", MemberID: strPtr("mem-2"), Type: "water", AmountMl: 500, LoggedAt: "2026-03-02 08:00:00"},
	}
	if err := db.Create(&liquids).Error; err != nil {
		t.Fatalf("seed liquids: %v", err)
	}

	rows, err := svc.LiquidSummary("2026-03-01")
	if err != nil {
		t.Fatalf("LiquidSummary: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want one per member", len(rows))
	}
	ada := rows[0]
	if ada.MemberName != "Ada" || ada.WaterMl != 300 || ada.CoffeeMl != 150 || ada.TotalMl != 450 {
		t.Errorf("Ada row = %+v", ada)
	}
	bo := rows[1]
	if bo.MemberName != "Bo" || bo.TotalMl != 0 {
		t.Errorf("Bo row = %+v, other-day log must not leak in", bo)
	}
}

func TestBeverageSummary(t *testing.T) {
	db := metricsTestDB(t)
	svc := NewService(db)
	m := memberEntity.HouseholdMember{ID: "mem-1", Name: "Ada"}
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}
	now := service.Timestamp()
	bevs := []logEntity.BeverageLog{
		{ID: "bev-1", MemberID: strPtr("mem-1"), Type: "coffee", CapsulesOrSachets: 2, WaterMl: 80, LoggedAt: now},
		{ID: "bev-2", MemberID: strPtr("mem-1"), Type: "tea", CapsulesOrSachets: 1, WaterMl: 250, LoggedAt: now},
	}
	if err := db.Create(&bevs).Error; err != nil {
		t.Fatalf("seed beverages: %v", err)
	}

	rows, err := svc.BeverageSummary("")
	if err != nil {
		t.Fatalf("BeverageSummary: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	row := rows[0]
	if row.CoffeeCapsules != 2 || row.CoffeeWaterMl != 80 || row.TeaSachets != 1 || row.TeaWaterMl != 250 || row.TotalWaterMl != 330 {
		t.Errorf("row = %+v", row)
	}
}

func TestLiquidInventoryStock(t *testing.T) {
	db := metricsTestDB(t)
	svc := NewService(db)
	items := []inventoryEntity.Item{
		{ID: "item-w", Name: "Water", IsLiquid: 1, VolumeMl: 9000, CaloriesPerUnit: 0, ExpiryDate: strPtr("2027-05-01")},
		{ID: "item-j", Name: "Juice", IsLiquid: 1, VolumeMl: 1500, CaloriesPerUnit: 450, ExpiryDate: strPtr("2026-11-01")},
		{ID: "item-r", Name: "Rice", VolumeMl: 0, CaloriesPerUnit: 3000},
	}
	if err := db.Create(&items).Error; err != nil {
		t.Fatalf("seed items: %v", err)
	}

	out, err := svc.LiquidInventoryStock()
	if err != nil {
		t.Fatalf("LiquidInventoryStock: %v", err)
	}
	if len(out.Items) != 2 {
		t.Fatalf("items = %d, want liquids only", len(out.Items))
	}
	if out.Items[0].ID != "item-j" {
		t.Errorf("order = %s first, want soonest expiry first", out.Items[0].ID)
	}
	if out.TotalMl != 10500 || out.TotalLiters != 10.5 || out.TotalCalories != 450 {
		t.Errorf("totals = (%v ml, %v l, %v cal)", out.TotalMl, out.TotalLiters, out.TotalCalories)
	}
}
