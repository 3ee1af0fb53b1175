// Package metrics computes the derived read-only views: dashboard
// figures, per-member daily rollups and expiry buckets. Every call
// recomputes from the current row set; there is no derived-state cache.
package metrics

import (
	"errors"
	"math"

	"gorm.io/gorm"

	inventoryEntity "homestock.GO/model/entity/inventory"
	logEntity "homestock.GO/model/entity/logentry"
	medicineEntity "homestock.GO/model/entity/medicine"
	memberEntity "homestock.GO/model/entity/member"
	"homestock.GO/service"
)

const (
	itemExpiryWindowDays     = 3
	medicineExpiryWindowDays = 30
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// InventoryStats sums the whole directory, liquids and foods combined.
type InventoryStats struct {
	TotalItems    int64   `gorm:"column:total_items" json:"total_items"`
	TotalUnits    float64 `gorm:"column:total_units" json:"total_units"`
	TotalCalories float64 `gorm:"column:total_calories" json:"total_calories"`
	TotalProtein  float64 `gorm:"column:total_protein" json:"total_protein"`
	TotalCarbs    float64 `gorm:"column:total_carbs" json:"total_carbs"`
	TotalFiber    float64 `gorm:"column:total_fiber" json:"total_fiber"`
	TotalSugar    float64 `gorm:"column:total_sugar" json:"total_sugar"`
	TotalFat      float64 `gorm:"column:total_fat" json:"total_fat"`
}

// CategoryBreakdownRow is one category with at least one item.
type CategoryBreakdownRow struct {
	Name          string  `gorm:"column:name" json:"name"`
	Color         string  `gorm:"column:color" json:"color"`
	ItemCount     int64   `gorm:"column:item_count" json:"item_count"`
	TotalQuantity float64 `gorm:"column:total_quantity" json:"total_quantity"`
	TotalCalories float64 `gorm:"column:total_calories" json:"total_calories"`
}

// MemberConsumptionRow is a member's calorie total for one day.
type MemberConsumptionRow struct {
	ID                 string  `gorm:"column:id" json:"id"`
	Name               string  `gorm:"column:name" json:"name"`
	DailyCalorieTarget int     `gorm:"column:daily_calorie_target" json:"daily_calorie_target"`
	CaloriesConsumed   float64 `gorm:"column:calories_consumed" json:"calories_consumed"`
}

// MemberLiquidRow is a member's liquid intake for one day, split by
// type tag.
type MemberLiquidRow struct {
	ID       string  `gorm:"column:id" json:"id"`
	Name     string  `gorm:"column:name" json:"name"`
	WaterMl  float64 `gorm:"column:water_ml" json:"water_ml"`
	TeaMl    float64 `gorm:"column:tea_ml" json:"tea_ml"`
	CoffeeMl float64 `gorm:"column:coffee_ml" json:"coffee_ml"`
	TotalMl  float64 `gorm:"column:total_ml" json:"total_ml"`
}

// LiquidRations sums the volume of liquid-flagged inventory rows —
// unopened stock, not logged consumption.
type LiquidRations struct {
	TotalMl   float64 `gorm:"column:total_ml" json:"total_ml"`
	ItemCount int64   `gorm:"column:item_count" json:"item_count"`
}

// MedicineStats is the medicine cabinet roll-up.
type MedicineStats struct {
	TotalMedicines int64   `gorm:"column:total_medicines" json:"total_medicines"`
	TotalUnits     float64 `gorm:"column:total_units" json:"total_units"`
}

// Dashboard is the full aggregate snapshot. Each field is computed as
// its own query; a dashboard response may mix slightly different
// commits, which is acceptable (and matches the original).
type Dashboard struct {
	Inventory           InventoryStats                       `json:"inventory"`
	ExpiringSoon        []inventoryEntity.ItemWithCategory   `json:"expiringSoon"`
	Expired             []inventoryEntity.ItemWithCategory   `json:"expired"`
	MemberCount         int64                                `json:"memberCount"`
	DailyCalorieNeed    float64                              `json:"dailyCalorieNeed"`
	DaysOfRations       int                                  `json:"daysOfRations"`
	CategoryBreakdown   []CategoryBreakdownRow               `json:"categoryBreakdown"`
	TodayConsumption    []MemberConsumptionRow               `json:"todayConsumption"`
	TodayLiquids        []MemberLiquidRow                    `json:"todayLiquids"`
	LiquidRations       LiquidRations                        `json:"liquidRations"`
	DailyLiquidNeed     float64                              `json:"dailyLiquidNeed"`
	DaysOfLiquidRations int                                  `json:"daysOfLiquidRations"`
	MedicineStats       MedicineStats                        `json:"medicineStats"`
	MedicineExpiring    []medicineEntity.Medicine            `json:"medicineExpiring"`
	MedicineExpired     []medicineEntity.Medicine            `json:"medicineExpired"`
	RecentConsumption   []logEntity.ConsumptionLogWithMember `json:"recentConsumption"`
}

// Dashboard computes the full snapshot for the current UTC date.
func (s *Service) Dashboard() (*Dashboard, error) {
	today := service.Today()
	d := &Dashboard{}

	err := s.db.Raw(`
		SELECT
		  COUNT(*) AS total_items,
		  COALESCE(SUM(quantity), 0) AS total_units,
		  COALESCE(SUM(calories_per_unit), 0) AS total_calories,
		  COALESCE(SUM(protein_g), 0) AS total_protein,
		  COALESCE(SUM(carbs_g), 0) AS total_carbs,
		  COALESCE(SUM(fiber_g), 0) AS total_fiber,
		  COALESCE(SUM(sugar_g), 0) AS total_sugar,
		  COALESCE(SUM(fat_g), 0) AS total_fat
		FROM inventory_items`).Scan(&d.Inventory).Error
	if err != nil {
		return nil, err
	}

	d.ExpiringSoon, err = s.itemExpiryBucket(today, service.DaysFromToday(itemExpiryWindowDays))
	if err != nil {
		return nil, err
	}
	d.Expired, err = s.itemExpiryBucket("", today)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&memberEntity.HouseholdMember{}).Count(&d.MemberCount).Error; err != nil {
		return nil, err
	}
	err = s.db.Raw("SELECT COALESCE(SUM(daily_calorie_target), 0) FROM household_members").Scan(&d.DailyCalorieNeed).Error
	if err != nil {
		return nil, err
	}
	d.DaysOfRations = daysOf(d.Inventory.TotalCalories, d.DailyCalorieNeed)

	err = s.db.Raw(`
		SELECT c.name, c.color,
		  COUNT(i.id) AS item_count,
		  COALESCE(SUM(i.quantity), 0) AS total_quantity,
		  COALESCE(SUM(i.calories_per_unit), 0) AS total_calories
		FROM categories c
		LEFT JOIN inventory_items i ON c.id = i.category_id
		GROUP BY c.id, c.name, c.color
		HAVING COUNT(i.id) > 0
		ORDER BY total_calories DESC`).Scan(&d.CategoryBreakdown).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Raw(`
		SELECT hm.id, hm.name, hm.daily_calorie_target,
		  COALESCE(SUM(cl.calories), 0) AS calories_consumed
		FROM household_members hm
		LEFT JOIN consumption_log cl
		  ON hm.id = cl.member_id AND substr(cl.consumed_at, 1, 10) = ?
		GROUP BY hm.id, hm.name, hm.daily_calorie_target
		ORDER BY hm.name`, today).Scan(&d.TodayConsumption).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Raw(`
		SELECT hm.id, hm.name,
		  COALESCE(SUM(CASE WHEN ll.type = 'water' THEN ll.amount_ml ELSE 0 END), 0) AS water_ml,
		  COALESCE(SUM(CASE WHEN ll.type = 'tea' THEN ll.amount_ml ELSE 0 END), 0) AS tea_ml,
		  COALESCE(SUM(CASE WHEN ll.type = 'coffee' THEN ll.amount_ml ELSE 0 END), 0) AS coffee_ml,
		  COALESCE(SUM(ll.amount_ml), 0) AS total_ml
		FROM household_members hm
		LEFT JOIN liquid_log ll
		  ON hm.id = ll.member_id AND substr(ll.logged_at, 1, 10) = ?
		GROUP BY hm.id, hm.name
		ORDER BY hm.name`, today).Scan(&d.TodayLiquids).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Raw(`
		SELECT COALESCE(SUM(volume_ml), 0) AS total_ml, COUNT(*) AS item_count
		FROM inventory_items WHERE is_liquid = 1`).Scan(&d.LiquidRations).Error
	if err != nil {
		return nil, err
	}
	err = s.db.Raw("SELECT COALESCE(SUM(daily_liquid_target), 0) FROM household_members").Scan(&d.DailyLiquidNeed).Error
	if err != nil {
		return nil, err
	}
	d.DaysOfLiquidRations = daysOf(d.LiquidRations.TotalMl, d.DailyLiquidNeed)

	err = s.db.Raw(`
		SELECT COUNT(*) AS total_medicines, COALESCE(SUM(quantity), 0) AS total_units
		FROM medicines`).Scan(&d.MedicineStats).Error
	if err != nil {
		return nil, err
	}
	d.MedicineExpiring, err = s.medicineExpiryBucket(today, service.DaysFromToday(medicineExpiryWindowDays))
	if err != nil {
		return nil, err
	}
	d.MedicineExpired, err = s.medicineExpiryBucket("", today)
	if err != nil {
		return nil, err
	}

	err = s.db.Table("consumption_log cl").
		Select("cl.*, hm.name AS member_name").
		Joins("LEFT JOIN household_members hm ON cl.member_id = hm.id").
		Order("cl.consumed_at DESC").
		Limit(10).
		Scan(&d.RecentConsumption).Error
	if err != nil {
		return nil, err
	}

	return d, nil
}

// daysOf is floor(total / dailyNeed) with a zero-need guard: zero total
// need means zero days, never a division.
func daysOf(total, dailyNeed float64) int {
	if dailyNeed <= 0 {
		return 0
	}
	return int(math.Floor(total / dailyNeed))
}

// itemExpiryBucket returns items whose expiry date falls in [from, to].
// An empty from bound makes the window strictly before to (the
// "already expired" bucket). Dates are YYYY-MM-DD text, so plain string
// comparison orders correctly.
func (s *Service) itemExpiryBucket(from, to string) ([]inventoryEntity.ItemWithCategory, error) {
	q := s.db.Table("inventory_items i").
		Select("i.*, c.name AS category_name, c.color AS category_color").
		Joins("LEFT JOIN categories c ON i.category_id = c.id").
		Where("i.expiry_date IS NOT NULL AND i.expiry_date != ''")
	if from != "" {
		q = q.Where("i.expiry_date >= ? AND i.expiry_date <= ?", from, to)
	} else {
		q = q.Where("i.expiry_date < ?", to)
	}
	rows := []inventoryEntity.ItemWithCategory{}
	err := q.Order("i.expiry_date ASC").Scan(&rows).Error
	return rows, err
}

func (s *Service) medicineExpiryBucket(from, to string) ([]medicineEntity.Medicine, error) {
	q := s.db.Model(&medicineEntity.Medicine{}).
		Where("expiry_date IS NOT NULL AND expiry_date != ''")
	if from != "" {
		q = q.Where("expiry_date >= ? AND expiry_date <= ?", from, to)
	} else {
		q = q.Where("expiry_date < ?", to)
	}
	rows := []medicineEntity.Medicine{}
	err := q.Order("expiry_date ASC").Find(&rows).Error
	return rows, err
}

// MemberTodayRollup is one member's nutrient and liquid intake for the
// current UTC date.
type MemberTodayRollup struct {
	Member   memberEntity.HouseholdMember `json:"member"`
	Consumed ConsumedTotals               `json:"consumed"`
	Liquids  []LiquidTypeTotal            `json:"liquids"`
}

type ConsumedTotals struct {
	TotalCalories float64 `gorm:"column:total_calories" json:"total_calories"`
	TotalProtein  float64 `gorm:"column:total_protein" json:"total_protein"`
	TotalCarbs    float64 `gorm:"column:total_carbs" json:"total_carbs"`
	TotalFiber    float64 `gorm:"column:total_fiber" json:"total_fiber"`
	TotalSugar    float64 `gorm:"column:total_sugar" json:"total_sugar"`
	TotalFat      float64 `gorm:"column:total_fat" json:"total_fat"`
}

type LiquidTypeTotal struct {
	Type    string  `gorm:"column:type" json:"type"`
	TotalMl float64 `gorm:"column:total_ml" json:"total_ml"`
}

// MemberToday computes one member's rollup for today (UTC).
func (s *Service) MemberToday(memberID string) (*MemberTodayRollup, error) {
	var out MemberTodayRollup
	if err := s.db.First(&out.Member, "id = ?", memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}

	today := service.Today()
	err := s.db.Raw(`
		SELECT COALESCE(SUM(calories), 0) AS total_calories,
		  COALESCE(SUM(protein_g), 0) AS total_protein,
		  COALESCE(SUM(carbs_g), 0) AS total_carbs,
		  COALESCE(SUM(fiber_g), 0) AS total_fiber,
		  COALESCE(SUM(sugar_g), 0) AS total_sugar,
		  COALESCE(SUM(fat_g), 0) AS total_fat
		FROM consumption_log
		WHERE member_id = ? AND substr(consumed_at, 1, 10) = ?`, memberID, today).
		Scan(&out.Consumed).Error
	if err != nil {
		return nil, err
	}

	out.Liquids = []LiquidTypeTotal{}
	err = s.db.Raw(`
		SELECT type, COALESCE(SUM(amount_ml), 0) AS total_ml
		FROM liquid_log
		WHERE member_id = ? AND substr(logged_at, 1, 10) = ?
		GROUP BY type`, memberID, today).
		Scan(&out.Liquids).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// LiquidSummaryRow is one member's liquid intake split for a date.
type LiquidSummaryRow struct {
	MemberID   string  `gorm:"column:member_id" json:"member_id"`
	MemberName string  `gorm:"column:member_name" json:"member_name"`
	WaterMl    float64 `gorm:"column:water_ml" json:"water_ml"`
	TeaMl      float64 `gorm:"column:tea_ml" json:"tea_ml"`
	CoffeeMl   float64 `gorm:"column:coffee_ml" json:"coffee_ml"`
	TotalMl    float64 `gorm:"column:total_ml" json:"total_ml"`
}

// LiquidSummary computes the per-member liquid split for a date
// (YYYY-MM-DD; empty means today UTC).
func (s *Service) LiquidSummary(date string) ([]LiquidSummaryRow, error) {
	if date == "" {
		date = service.Today()
	}
	rows := []LiquidSummaryRow{}
	err := s.db.Raw(`
		SELECT hm.id AS member_id, hm.name AS member_name,
		  COALESCE(SUM(CASE WHEN ll.type = 'water' THEN ll.amount_ml ELSE 0 END), 0) AS water_ml,
		  COALESCE(SUM(CASE WHEN ll.type = 'tea' THEN ll.amount_ml ELSE 0 END), 0) AS tea_ml,
		  COALESCE(SUM(CASE WHEN ll.type = 'coffee' THEN ll.amount_ml ELSE 0 END), 0) AS coffee_ml,
		  COALESCE(SUM(ll.amount_ml), 0) AS total_ml
		FROM household_members hm
		LEFT JOIN liquid_log ll
		  ON hm.id = ll.member_id AND substr(ll.logged_at, 1, 10) = ?
		GROUP BY hm.id, hm.name
		ORDER BY hm.name`, date).Scan(&rows).Error
	return rows, err
}

// BeverageSummaryRow is one member's capsule/sachet usage for a date.
type BeverageSummaryRow struct {
	MemberID       string  `gorm:"column:member_id" json:"member_id"`
	MemberName     string  `gorm:"column:member_name" json:"member_name"`
	CoffeeCapsules int64   `gorm:"column:coffee_capsules" json:"coffee_capsules"`
	CoffeeWaterMl  float64 `gorm:"column:coffee_water_ml" json:"coffee_water_ml"`
	TeaSachets     int64   `gorm:"column:tea_sachets" json:"tea_sachets"`
	TeaWaterMl     float64 `gorm:"column:tea_water_ml" json:"tea_water_ml"`
	TotalWaterMl   float64 `gorm:"column:total_water_ml" json:"total_water_ml"`
}

// BeverageSummary computes the per-member beverage rollup for a date
// (YYYY-MM-DD; empty means today UTC).
func (s *Service) BeverageSummary(date string) ([]BeverageSummaryRow, error) {
	if date == "" {
		date = service.Today()
	}
	rows := []BeverageSummaryRow{}
	err := s.db.Raw(`
		SELECT hm.id AS member_id, hm.name AS member_name,
		  COALESCE(SUM(CASE WHEN bl.type = 'coffee' THEN bl.capsules_or_sachets ELSE 0 END), 0) AS coffee_capsules,
		  COALESCE(SUM(CASE WHEN bl.type = 'coffee' THEN bl.water_ml ELSE 0 END), 0) AS coffee_water_ml,
		  COALESCE(SUM(CASE WHEN bl.type = 'tea' THEN bl.capsules_or_sachets ELSE 0 END), 0) AS tea_sachets,
		  COALESCE(SUM(CASE WHEN bl.type = 'tea' THEN bl.water_ml ELSE 0 END), 0) AS tea_water_ml,
		  COALESCE(SUM(bl.water_ml), 0) AS total_water_ml
		FROM household_members hm
		LEFT JOIN beverage_log bl
		  ON hm.id = bl.member_id AND substr(bl.logged_at, 1, 10) = ?
		GROUP BY hm.id, hm.name
		ORDER BY hm.name`, date).Scan(&rows).Error
	return rows, err
}

// LiquidInventory is the unopened liquid stock summary.
type LiquidInventory struct {
	Items         []inventoryEntity.ItemWithCategory `json:"items"`
	TotalMl       float64                            `json:"totalMl"`
	TotalLiters   float64                            `json:"totalLiters"`
	TotalCalories float64                            `json:"totalCalories"`
}

// LiquidInventoryStock lists liquid-flagged items with their category
// and sums volume and calories. Liters are rounded to two decimals.
func (s *Service) LiquidInventoryStock() (*LiquidInventory, error) {
	out := &LiquidInventory{Items: []inventoryEntity.ItemWithCategory{}}
	err := s.db.Table("inventory_items i").
		Select("i.*, c.name AS category_name, c.color AS category_color").
		Joins("LEFT JOIN categories c ON i.category_id = c.id").
		Where("i.is_liquid = 1").
		Order("i.expiry_date ASC, i.name ASC").
		Scan(&out.Items).Error
	if err != nil {
		return nil, err
	}
	for _, it := range out.Items {
		out.TotalMl += it.VolumeMl
		out.TotalCalories += it.CaloriesPerUnit
	}
	out.TotalLiters = math.Round(out.TotalMl/10) / 100
	return out, nil
}
