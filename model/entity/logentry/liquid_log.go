package logentry

// LiquidLog represents the liquid_log table. Liquid quick-logs are a
// pure event stream: they never debit liquid inventory rows, which only
// track unopened stock.
type LiquidLog struct {
	ID       string  `gorm:"column:id;primaryKey" json:"id"`
	MemberID *string `gorm:"column:member_id" json:"member_id"`
	Type     string  `gorm:"column:type;type:varchar(32);default:water" json:"type"`
	AmountMl float64 `gorm:"column:amount_ml;default:250" json:"amount_ml"`
	LoggedAt string  `gorm:"column:logged_at" json:"logged_at"`
}

func (LiquidLog) TableName() string {
	return "liquid_log"
}

// LiquidLogWithMember is a log row joined with the member name.
type LiquidLogWithMember struct {
	LiquidLog  `gorm:"embedded"`
	MemberName *string `gorm:"column:member_name" json:"member_name"`
}
