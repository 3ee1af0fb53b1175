package medicine

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	medicineEntity "homestock.GO/model/entity/medicine"
	"homestock.GO/service"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns all medicines, soonest expiry first.
func (r *Repository) List() ([]medicineEntity.Medicine, error) {
	rows := []medicineEntity.Medicine{}
	err := r.db.Order("expiry_date ASC, name ASC").Find(&rows).Error
	return rows, err
}

func (r *Repository) FindByID(id string) (*medicineEntity.Medicine, error) {
	var med medicineEntity.Medicine
	if err := r.db.First(&med, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return &med, nil
}

func (r *Repository) Create(med *medicineEntity.Medicine) error {
	if med.ID == "" {
		med.ID = uuid.NewString()
	}
	now := service.Timestamp()
	med.CreatedAt = now
	med.UpdatedAt = now
	return r.db.Create(med).Error
}

// Update applies the given column set; unspecified columns keep their
// values. Returns the updated row or ErrNotFound.
func (r *Repository) Update(id string, set map[string]interface{}) (*medicineEntity.Medicine, error) {
	if len(set) > 0 {
		set["updated_at"] = service.Timestamp()
		if err := r.db.Table("medicines").Where("id = ?", id).Updates(set).Error; err != nil {
			return nil, err
		}
	}
	return r.FindByID(id)
}

func (r *Repository) Delete(id string) error {
	res := r.db.Delete(&medicineEntity.Medicine{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return service.ErrNotFound
	}
	return nil
}
