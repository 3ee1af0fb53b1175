package category

import (
	"gorm.io/gorm"

	categoryEntity "homestock.GO/model/entity/category"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns the category directory ordered by name. Categories are
// seeded at bootstrap and read-only through the API.
func (r *Repository) List() ([]categoryEntity.Category, error) {
	rows := []categoryEntity.Category{}
	err := r.db.Order("name").Find(&rows).Error
	return rows, err
}
