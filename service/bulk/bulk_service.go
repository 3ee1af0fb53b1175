// Package bulk applies duplicate / partial-update / delete operations
// across a caller-supplied set of inventory item ids, each call as one
// all-or-nothing transaction.
package bulk

import (
	"errors"
	"reflect"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"gorm.io/gorm"

	inventoryEntity "homestock.GO/model/entity/inventory"
	"homestock.GO/service"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Duplicate creates a field-for-field copy with a fresh id for each
// existing id in the input. Missing ids are silently skipped, not
// errored. Runs in one transaction: a failure partway retains no
// partial set of duplicates.
func (s *Service) Duplicate(ids []string) ([]inventoryEntity.Item, error) {
	created := []inventoryEntity.Item{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, id := range ids {
			var orig inventoryEntity.Item
			if err := tx.First(&orig, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}
			now := service.Timestamp()
			copyItem := orig
			copyItem.ID = uuid.NewString()
			copyItem.CreatedAt = now
			copyItem.UpdatedAt = now
			if err := tx.Create(&copyItem).Error; err != nil {
				return err
			}
			created = append(created, copyItem)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// updateFields is the whitelist of columns a bulk update may touch.
// Decoding the request map through this struct is what keeps client
// keys out of the generated SQL.
type updateFields struct {
	Name            *string  `mapstructure:"name"`
	CategoryID      *string  `mapstructure:"category_id"`
	Quantity        *float64 `mapstructure:"quantity"`
	Unit            *string  `mapstructure:"unit"`
	CaloriesPerUnit *float64 `mapstructure:"calories_per_unit"`
	ProteinG        *float64 `mapstructure:"protein_g"`
	CarbsG          *float64 `mapstructure:"carbs_g"`
	FiberG          *float64 `mapstructure:"fiber_g"`
	SugarG          *float64 `mapstructure:"sugar_g"`
	FatG            *float64 `mapstructure:"fat_g"`
	IsLiquid        *int     `mapstructure:"is_liquid"`
	VolumeMl        *float64 `mapstructure:"volume_ml"`
	PurchaseDate    *string  `mapstructure:"purchase_date"`
	ExpiryDate      *string  `mapstructure:"expiry_date"`
	Notes           *string  `mapstructure:"notes"`
}

// boolToIntHook coerces boolean field values to the canonical 0/1
// column representation (is_liquid arrives as true/false from the UI).
func boolToIntHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() == reflect.Bool && to.Kind() == reflect.Int {
			if data.(bool) {
				return 1, nil
			}
			return 0, nil
		}
		return data, nil
	}
}

// mergeSet converts the raw update map into column assignments,
// skipping absent, null and empty-string values so unspecified fields
// leave existing row values untouched.
func mergeSet(updates map[string]interface{}) (map[string]interface{}, error) {
	filtered := make(map[string]interface{}, len(updates))
	for k, v := range updates {
		if v == nil || v == "" {
			continue
		}
		filtered[k] = v
	}

	var fields updateFields
	cfg := &mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(boolToIntHook()),
		WeaklyTypedInput: true,
		Result:           &fields,
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(filtered); err != nil {
		return nil, service.Validationf("invalid update fields: %v", err)
	}

	set := map[string]interface{}{}
	v := reflect.ValueOf(fields)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		fv := v.Field(i)
		if fv.IsNil() {
			continue
		}
		set[t.Field(i).Tag.Get("mapstructure")] = fv.Elem().Interface()
	}
	return set, nil
}

// Update applies the specified fields to every targeted row in one
// statement. Absent fields are untouched per row; an empty merge set is
// ErrNoFields. Returns the updated rows joined with category display
// data.
func (s *Service) Update(ids []string, updates map[string]interface{}) ([]inventoryEntity.ItemWithCategory, error) {
	set, err := mergeSet(updates)
	if err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return nil, service.ErrNoFields
	}
	set["updated_at"] = service.Timestamp()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Table("inventory_items").Where("id IN ?", ids).Updates(set).Error
	})
	if err != nil {
		return nil, err
	}

	var rows []inventoryEntity.ItemWithCategory
	err = s.db.Table("inventory_items i").
		Select("i.*, c.name AS category_name, c.color AS category_color").
		Joins("LEFT JOIN categories c ON i.category_id = c.id").
		Where("i.id IN ?", ids).
		Scan(&rows).Error
	return rows, err
}

// Delete removes all targeted rows in one statement and returns the
// count actually removed. Missing ids are not an error.
func (s *Service) Delete(ids []string) (int64, error) {
	res := s.db.Where("id IN ?", ids).Delete(&inventoryEntity.Item{})
	return res.RowsAffected, res.Error
}
