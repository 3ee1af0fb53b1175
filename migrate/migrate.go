// Package migrate owns the versioned schema bootstrap. The schema is
// applied explicitly once at startup (or via the db:migrate command),
// never lazily on first query.
package migrate

import (
	"embed"

	gomigrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	migratesqlite "homestock.GO/migrate/sqlite"
	categoryEntity "homestock.GO/model/entity/category"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Up applies all pending migrations against the given store.
func Up(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}

	var driver database.Driver
	switch db.Dialector.Name() {
	case "mysql":
		driver, err = migratemysql.WithInstance(sqlDB, &migratemysql.Config{})
	default:
		driver, err = migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
	}
	if err != nil {
		return err
	}

	m, err := gomigrate.NewWithInstance("iofs", src, db.Dialector.Name(), driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && err != gomigrate.ErrNoChange {
		return err
	}
	return nil
}

var defaultCategories = []categoryEntity.Category{
	{ID: "cat-dairy", Name: "Dairy", Color: "#f59e0b"},
	{ID: "cat-meat", Name: "Meat & Poultry", Color: "#ef4444"},
	{ID: "cat-fish", Name: "Fish & Seafood", Color: "#3b82f6"},
	{ID: "cat-veg", Name: "Vegetables", Color: "#22c55e"},
	{ID: "cat-fruit", Name: "Fruits", Color: "#a855f7"},
	{ID: "cat-grain", Name: "Grains & Cereals", Color: "#f97316"},
	{ID: "cat-bakery", Name: "Bakery", Color: "#d97706"},
	{ID: "cat-canned", Name: "Canned Goods", Color: "#6b7280"},
	{ID: "cat-frozen", Name: "Frozen Foods", Color: "#06b6d4"},
	{ID: "cat-snacks", Name: "Snacks", Color: "#ec4899"},
	{ID: "cat-beverages", Name: "Beverages", Color: "#14b8a6"},
	{ID: "cat-condiments", Name: "Condiments & Sauces", Color: "#eab308"},
	{ID: "cat-other", Name: "Other", Color: "#6366f1"},
}

// Seed inserts the default category set if the table is empty.
// Idempotent; safe to run on every startup.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&categoryEntity.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&defaultCategories).Error
}
