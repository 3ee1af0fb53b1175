// Package ledger is the single code path that turns consumption and
// intake requests into append-only log rows plus an atomic stock debit.
package ledger

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	inventoryEntity "homestock.GO/model/entity/inventory"
	logEntity "homestock.GO/model/entity/logentry"
	medicineEntity "homestock.GO/model/entity/medicine"
	"homestock.GO/service"
)

// Reasons accepted for a consumption log entry.
var validReasons = map[string]bool{
	"consumed":  true,
	"expired":   true,
	"spoiled":   true,
	"discarded": true,
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// LogConsumption debits an inventory item and appends a consumption log
// row as one transaction. The log snapshots quantity × the item's
// stored nutrient columns at the moment of logging. If the debit
// empties the item its row is deleted outright; zero-quantity food rows
// are never kept. The decrement is guarded by quantity >= ? so two
// concurrent debits cannot jointly over-deplete a row: the loser of the
// race gets ErrInsufficientStock and nothing is written.
func (s *Service) LogConsumption(itemID string, memberID *string, quantity float64, reason string) (*logEntity.ConsumptionLog, error) {
	if quantity <= 0 {
		return nil, service.Validationf("quantity must be positive")
	}
	if !validReasons[reason] {
		return nil, service.Validationf("invalid reason %q", reason)
	}

	var entry logEntity.ConsumptionLog
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item inventoryEntity.Item
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return service.ErrNotFound
			}
			return err
		}
		if quantity > item.Quantity {
			return service.ErrInsufficientStock
		}

		now := service.Timestamp()
		entry = logEntity.ConsumptionLog{
			ID:         uuid.NewString(),
			ItemID:     &item.ID,
			ItemName:   item.Name,
			MemberID:   memberID,
			Quantity:   quantity,
			Unit:       item.Unit,
			Calories:   item.CaloriesPerUnit * quantity,
			ProteinG:   item.ProteinG * quantity,
			CarbsG:     item.CarbsG * quantity,
			FiberG:     item.FiberG * quantity,
			SugarG:     item.SugarG * quantity,
			FatG:       item.FatG * quantity,
			Reason:     reason,
			ConsumedAt: now,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		res := tx.Exec(
			"UPDATE inventory_items SET quantity = quantity - ?, updated_at = ? WHERE id = ? AND quantity >= ?",
			quantity, now, item.ID, quantity,
		)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Lost a concurrent debit race; roll everything back.
			return service.ErrInsufficientStock
		}
		return tx.Exec("DELETE FROM inventory_items WHERE id = ? AND quantity <= 0", item.ID).Error
	})
	if err != nil {
		return nil, err
	}
	// Re-read the stored row: when the debit emptied the item, the
	// delete nulled the log's item_id (ON DELETE SET NULL), and the
	// response must match what a later read returns.
	var stored logEntity.ConsumptionLog
	if err := s.db.First(&stored, "id = ?", entry.ID).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// Consumption lists consumption log rows, newest first, with the member
// name joined. date filters on the log's calendar date, memberID on the
// member reference; empty filters are ignored.
func (s *Service) Consumption(date, memberID string) ([]logEntity.ConsumptionLogWithMember, error) {
	q := s.db.Table("consumption_log cl").
		Select("cl.*, hm.name AS member_name").
		Joins("LEFT JOIN household_members hm ON cl.member_id = hm.id")
	if date != "" {
		q = q.Where("substr(cl.consumed_at, 1, 10) = ?", date)
	}
	if memberID != "" {
		q = q.Where("cl.member_id = ?", memberID)
	}
	var rows []logEntity.ConsumptionLogWithMember
	err := q.Order("cl.consumed_at DESC").Scan(&rows).Error
	return rows, err
}

// DeleteConsumption removes a log row only. The already-debited stock
// is deliberately not restored; this is a one-way accounting action.
func (s *Service) DeleteConsumption(id string) error {
	return s.deleteLogRow("consumption_log", id)
}

// LogLiquid appends a liquid intake event. No stock is debited: liquid
// inventory rows track unopened stock and are managed separately.
func (s *Service) LogLiquid(memberID *string, liquidType string, amountMl float64) (*logEntity.LiquidLogWithMember, error) {
	if liquidType == "" {
		liquidType = "water"
	}
	if amountMl == 0 {
		amountMl = 250
	}
	entry := logEntity.LiquidLog{
		ID:       uuid.NewString(),
		MemberID: memberID,
		Type:     liquidType,
		AmountMl: amountMl,
		LoggedAt: service.Timestamp(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	var row logEntity.LiquidLogWithMember
	err := s.db.Table("liquid_log ll").
		Select("ll.*, hm.name AS member_name").
		Joins("LEFT JOIN household_members hm ON ll.member_id = hm.id").
		Where("ll.id = ?", entry.ID).
		Scan(&row).Error
	return &row, err
}

// Liquids lists liquid log rows with optional date/member filters.
func (s *Service) Liquids(date, memberID string) ([]logEntity.LiquidLogWithMember, error) {
	q := s.db.Table("liquid_log ll").
		Select("ll.*, hm.name AS member_name").
		Joins("LEFT JOIN household_members hm ON ll.member_id = hm.id")
	if date != "" {
		q = q.Where("substr(ll.logged_at, 1, 10) = ?", date)
	}
	if memberID != "" {
		q = q.Where("ll.member_id = ?", memberID)
	}
	var rows []logEntity.LiquidLogWithMember
	err := q.Order("ll.logged_at DESC").Scan(&rows).Error
	return rows, err
}

func (s *Service) DeleteLiquid(id string) error {
	return s.deleteLogRow("liquid_log", id)
}

// LogBeverage appends a beverage event (coffee capsule / tea sachet).
// No stock linkage.
func (s *Service) LogBeverage(memberID *string, beverageType string, capsulesOrSachets int, waterMl float64) (*logEntity.BeverageLogWithMember, error) {
	if beverageType == "" {
		beverageType = "coffee"
	}
	if capsulesOrSachets == 0 {
		capsulesOrSachets = 1
	}
	entry := logEntity.BeverageLog{
		ID:                uuid.NewString(),
		MemberID:          memberID,
		Type:              beverageType,
		CapsulesOrSachets: capsulesOrSachets,
		WaterMl:           waterMl,
		LoggedAt:          service.Timestamp(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	var row logEntity.BeverageLogWithMember
	err := s.db.Table("beverage_log bl").
		Select("bl.*, hm.name AS member_name").
		Joins("LEFT JOIN household_members hm ON bl.member_id = hm.id").
		Where("bl.id = ?", entry.ID).
		Scan(&row).Error
	return &row, err
}

// Beverages lists beverage log rows with optional date/member filters.
func (s *Service) Beverages(date, memberID string) ([]logEntity.BeverageLogWithMember, error) {
	q := s.db.Table("beverage_log bl").
		Select("bl.*, hm.name AS member_name").
		Joins("LEFT JOIN household_members hm ON bl.member_id = hm.id")
	if date != "" {
		q = q.Where("substr(bl.logged_at, 1, 10) = ?", date)
	}
	if memberID != "" {
		q = q.Where("bl.member_id = ?", memberID)
	}
	var rows []logEntity.BeverageLogWithMember
	err := q.Order("bl.logged_at DESC").Scan(&rows).Error
	return rows, err
}

func (s *Service) DeleteBeverage(id string) error {
	return s.deleteLogRow("beverage_log", id)
}

// LogMedicineIntake debits a medicine and appends an intake log row as
// one transaction, with the same stock guard as LogConsumption. Unlike
// food items a depleted medicine is kept at quantity 0, never deleted.
func (s *Service) LogMedicineIntake(medicineID string, memberID *string, quantity float64, notes string) (*logEntity.MedicineLogWithMember, error) {
	if quantity <= 0 {
		return nil, service.Validationf("quantity must be positive")
	}

	var entryID string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var med medicineEntity.Medicine
		if err := tx.First(&med, "id = ?", medicineID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return service.ErrNotFound
			}
			return err
		}
		if quantity > med.Quantity {
			return service.ErrInsufficientStock
		}

		now := service.Timestamp()
		entry := logEntity.MedicineLog{
			ID:           uuid.NewString(),
			MedicineID:   &med.ID,
			MedicineName: med.Name,
			MemberID:     memberID,
			Quantity:     quantity,
			Notes:        notes,
			TakenAt:      now,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		entryID = entry.ID

		res := tx.Exec(
			"UPDATE medicines SET quantity = quantity - ?, updated_at = ? WHERE id = ? AND quantity >= ?",
			quantity, now, med.ID, quantity,
		)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return service.ErrInsufficientStock
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var row logEntity.MedicineLogWithMember
	err = s.db.Table("medicine_log ml").
		Select("ml.*, hm.name AS member_name").
		Joins("LEFT JOIN household_members hm ON ml.member_id = hm.id").
		Where("ml.id = ?", entryID).
		Scan(&row).Error
	return &row, err
}

// MedicineLogs lists intake rows with optional date/member filters.
func (s *Service) MedicineLogs(date, memberID string) ([]logEntity.MedicineLogWithMember, error) {
	q := s.db.Table("medicine_log ml").
		Select("ml.*, hm.name AS member_name").
		Joins("LEFT JOIN household_members hm ON ml.member_id = hm.id")
	if date != "" {
		q = q.Where("substr(ml.taken_at, 1, 10) = ?", date)
	}
	if memberID != "" {
		q = q.Where("ml.member_id = ?", memberID)
	}
	var rows []logEntity.MedicineLogWithMember
	err := q.Order("ml.taken_at DESC").Scan(&rows).Error
	return rows, err
}

// MedicineLogForMedicine returns the intake history of one medicine.
func (s *Service) MedicineLogForMedicine(medicineID string) ([]logEntity.MedicineLogWithMember, error) {
	var rows []logEntity.MedicineLogWithMember
	err := s.db.Table("medicine_log ml").
		Select("ml.*, hm.name AS member_name").
		Joins("LEFT JOIN household_members hm ON ml.member_id = hm.id").
		Where("ml.medicine_id = ?", medicineID).
		Order("ml.taken_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (s *Service) DeleteMedicineLog(id string) error {
	return s.deleteLogRow("medicine_log", id)
}

func (s *Service) deleteLogRow(table, id string) error {
	res := s.db.Exec("DELETE FROM "+table+" WHERE id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return service.ErrNotFound
	}
	return nil
}
