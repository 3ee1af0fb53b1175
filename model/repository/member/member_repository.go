package member

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	memberEntity "homestock.GO/model/entity/member"
	"homestock.GO/service"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List() ([]memberEntity.HouseholdMember, error) {
	rows := []memberEntity.HouseholdMember{}
	err := r.db.Order("name").Find(&rows).Error
	return rows, err
}

func (r *Repository) FindByID(id string) (*memberEntity.HouseholdMember, error) {
	var m memberEntity.HouseholdMember
	if err := r.db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *Repository) Create(m *memberEntity.HouseholdMember) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := service.Timestamp()
	m.CreatedAt = now
	m.UpdatedAt = now
	return r.db.Create(m).Error
}

// Update applies the given column set; unspecified columns keep their
// values. Returns the updated row or ErrNotFound.
func (r *Repository) Update(id string, set map[string]interface{}) (*memberEntity.HouseholdMember, error) {
	if len(set) > 0 {
		set["updated_at"] = service.Timestamp()
		if err := r.db.Table("household_members").Where("id = ?", id).Updates(set).Error; err != nil {
			return nil, err
		}
	}
	return r.FindByID(id)
}

// Delete removes a member. Log rows referencing the member keep their
// denormalized data; the FK nulls the reference (ON DELETE SET NULL).
func (r *Repository) Delete(id string) error {
	res := r.db.Delete(&memberEntity.HouseholdMember{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return service.ErrNotFound
	}
	return nil
}
