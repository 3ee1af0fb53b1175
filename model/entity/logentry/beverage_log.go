package logentry

// BeverageLog represents the beverage_log table (coffee capsules / tea
// sachets plus the water used to brew them). No stock linkage.
type BeverageLog struct {
	ID                string  `gorm:"column:id;primaryKey" json:"id"`
	MemberID          *string `gorm:"column:member_id" json:"member_id"`
	Type              string  `gorm:"column:type;type:varchar(32);not null;default:coffee" json:"type"`
	CapsulesOrSachets int     `gorm:"column:capsules_or_sachets;default:1" json:"capsules_or_sachets"`
	WaterMl           float64 `gorm:"column:water_ml;default:0" json:"water_ml"`
	LoggedAt          string  `gorm:"column:logged_at" json:"logged_at"`
}

func (BeverageLog) TableName() string {
	return "beverage_log"
}

// BeverageLogWithMember is a log row joined with the member name.
type BeverageLogWithMember struct {
	BeverageLog `gorm:"embedded"`
	MemberName  *string `gorm:"column:member_name" json:"member_name"`
}
