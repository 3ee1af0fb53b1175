package inventory

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	inventoryEntity "homestock.GO/model/entity/inventory"
	"homestock.GO/service"
)

// Repository owns row-level access to the inventory directory. The
// ledger and bulk services go through their own transactional paths;
// this covers the plain CRUD surface.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

const selectWithCategory = "i.*, c.name AS category_name, c.color AS category_color"

// ListWithCategory returns all items joined with category display data,
// soonest expiry first.
func (r *Repository) ListWithCategory() ([]inventoryEntity.ItemWithCategory, error) {
	rows := []inventoryEntity.ItemWithCategory{}
	err := r.db.Table("inventory_items i").
		Select(selectWithCategory).
		Joins("LEFT JOIN categories c ON i.category_id = c.id").
		Order("i.expiry_date ASC, i.name ASC").
		Scan(&rows).Error
	return rows, err
}

// FindByIDWithCategory returns one item joined with its category.
func (r *Repository) FindByIDWithCategory(id string) (*inventoryEntity.ItemWithCategory, error) {
	var row inventoryEntity.ItemWithCategory
	res := r.db.Table("inventory_items i").
		Select(selectWithCategory).
		Joins("LEFT JOIN categories c ON i.category_id = c.id").
		Where("i.id = ?", id).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, service.ErrNotFound
	}
	return &row, nil
}

// FindByID returns the bare item row.
func (r *Repository) FindByID(id string) (*inventoryEntity.Item, error) {
	var item inventoryEntity.Item
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a new item, assigning identity and timestamps.
func (r *Repository) Create(item *inventoryEntity.Item) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := service.Timestamp()
	item.CreatedAt = now
	item.UpdatedAt = now
	return r.db.Create(item).Error
}

// Update applies the given column set to one row; unspecified columns
// keep their values. Returns the updated row or ErrNotFound.
func (r *Repository) Update(id string, set map[string]interface{}) (*inventoryEntity.Item, error) {
	if len(set) > 0 {
		set["updated_at"] = service.Timestamp()
		if err := r.db.Table("inventory_items").Where("id = ?", id).Updates(set).Error; err != nil {
			return nil, err
		}
	}
	return r.FindByID(id)
}

// Delete removes one row; ErrNotFound when nothing was deleted.
func (r *Repository) Delete(id string) error {
	res := r.db.Delete(&inventoryEntity.Item{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return service.ErrNotFound
	}
	return nil
}
