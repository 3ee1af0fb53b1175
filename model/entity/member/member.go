package member

// HouseholdMember represents the household_members table. Members are
// referenced by log rows, never owned: deleting a member nulls the
// reference and leaves the logs alone (FK ON DELETE SET NULL).
type HouseholdMember struct {
	ID                 string `gorm:"column:id;primaryKey" json:"id"`
	Name               string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	DailyCalorieTarget int    `gorm:"column:daily_calorie_target;default:2000" json:"daily_calorie_target"`
	DailyLiquidTarget  int    `gorm:"column:daily_liquid_target;default:2000" json:"daily_liquid_target"`
	CreatedAt          string `gorm:"column:created_at" json:"created_at"`
	UpdatedAt          string `gorm:"column:updated_at" json:"updated_at"`
}

func (HouseholdMember) TableName() string {
	return "household_members"
}
