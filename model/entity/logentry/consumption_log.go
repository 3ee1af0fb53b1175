package logentry

// ConsumptionLog represents the consumption_log table: an append-only
// record of a single food consumption (or discard) event. Nutrient
// fields are frozen at write time; later edits to the source item do
// not change them, and deleting the item nulls item_id but keeps the
// denormalized item_name.
type ConsumptionLog struct {
	ID         string  `gorm:"column:id;primaryKey" json:"id"`
	ItemID     *string `gorm:"column:item_id" json:"item_id"`
	ItemName   string  `gorm:"column:item_name;type:varchar(255);not null" json:"item_name"`
	MemberID   *string `gorm:"column:member_id" json:"member_id"`
	Quantity   float64 `gorm:"column:quantity;default:1" json:"quantity"`
	Unit       string  `gorm:"column:unit;type:varchar(32);default:pcs" json:"unit"`
	Calories   float64 `gorm:"column:calories;default:0" json:"calories"`
	ProteinG   float64 `gorm:"column:protein_g;default:0" json:"protein_g"`
	CarbsG     float64 `gorm:"column:carbs_g;default:0" json:"carbs_g"`
	FiberG     float64 `gorm:"column:fiber_g;default:0" json:"fiber_g"`
	SugarG     float64 `gorm:"column:sugar_g;default:0" json:"sugar_g"`
	FatG       float64 `gorm:"column:fat_g;default:0" json:"fat_g"`
	Reason     string  `gorm:"column:reason;type:varchar(32);default:consumed" json:"reason"`
	ConsumedAt string  `gorm:"column:consumed_at" json:"consumed_at"`
}

func (ConsumptionLog) TableName() string {
	return "consumption_log"
}

// ConsumptionLogWithMember is a log row joined with the member name.
type ConsumptionLogWithMember struct {
	ConsumptionLog `gorm:"embedded"`
	MemberName     *string `gorm:"column:member_name" json:"member_name"`
}
