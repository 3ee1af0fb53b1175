package inventory

// Item represents the inventory_items table.
//
// Note on the nutrient columns: despite the *_per_unit / *_g naming,
// every caller (ledger snapshots, dashboard sums) treats them as the
// totals for the item's current quantity. The ledger multiplies them by
// the consumed quantity as stored, without re-normalizing against the
// remaining stock. This matches the data the system has always held;
// do not change one side without the other.
type Item struct {
	ID              string  `gorm:"column:id;primaryKey" json:"id"`
	Name            string  `gorm:"column:name;type:varchar(255);not null" json:"name"`
	CategoryID      *string `gorm:"column:category_id" json:"category_id"`
	Quantity        float64 `gorm:"column:quantity;default:1" json:"quantity"`
	Unit            string  `gorm:"column:unit;type:varchar(32);default:pcs" json:"unit"`
	CaloriesPerUnit float64 `gorm:"column:calories_per_unit;default:0" json:"calories_per_unit"`
	ProteinG        float64 `gorm:"column:protein_g;default:0" json:"protein_g"`
	CarbsG          float64 `gorm:"column:carbs_g;default:0" json:"carbs_g"`
	FiberG          float64 `gorm:"column:fiber_g;default:0" json:"fiber_g"`
	SugarG          float64 `gorm:"column:sugar_g;default:0" json:"sugar_g"`
	FatG            float64 `gorm:"column:fat_g;default:0" json:"fat_g"`
	IsLiquid        int     `gorm:"column:is_liquid;default:0" json:"is_liquid"`
	VolumeMl        float64 `gorm:"column:volume_ml;default:0" json:"volume_ml"`
	PurchaseDate    *string `gorm:"column:purchase_date" json:"purchase_date"`
	ExpiryDate      *string `gorm:"column:expiry_date" json:"expiry_date"`
	Notes           string  `gorm:"column:notes;default:''" json:"notes"`
	CreatedAt       string  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       string  `gorm:"column:updated_at" json:"updated_at"`
}

func (Item) TableName() string {
	return "inventory_items"
}

// ItemWithCategory is an Item joined with its category display data.
type ItemWithCategory struct {
	Item          `gorm:"embedded"`
	CategoryName  *string `gorm:"column:category_name" json:"category_name"`
	CategoryColor *string `gorm:"column:category_color" json:"category_color"`
}
