package medicine

// Medicine represents the medicines table. Same quantity/expiry
// handling as inventory items, but dosage/frequency text instead of a
// nutrient profile, and a depleted medicine stays at quantity 0 rather
// than being removed.
type Medicine struct {
	ID           string  `gorm:"column:id;primaryKey" json:"id"`
	Name         string  `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Type         string  `gorm:"column:type;type:varchar(32);default:tablet" json:"type"`
	Quantity     float64 `gorm:"column:quantity;default:0" json:"quantity"`
	Unit         string  `gorm:"column:unit;type:varchar(32);default:tablets" json:"unit"`
	Dosage       string  `gorm:"column:dosage;default:''" json:"dosage"`
	Frequency    string  `gorm:"column:frequency;default:''" json:"frequency"`
	Notes        string  `gorm:"column:notes;default:''" json:"notes"`
	PurchaseDate *string `gorm:"column:purchase_date" json:"purchase_date"`
	ExpiryDate   *string `gorm:"column:expiry_date" json:"expiry_date"`
	CreatedAt    string  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    string  `gorm:"column:updated_at" json:"updated_at"`
}

func (Medicine) TableName() string {
	return "medicines"
}
