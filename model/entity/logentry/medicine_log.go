package logentry

// MedicineLog represents the medicine_log table: append-only intake
// records with the medicine name denormalized, surviving medicine
// deletion.
type MedicineLog struct {
	ID           string  `gorm:"column:id;primaryKey" json:"id"`
	MedicineID   *string `gorm:"column:medicine_id" json:"medicine_id"`
	MedicineName string  `gorm:"column:medicine_name;type:varchar(255);not null" json:"medicine_name"`
	MemberID     *string `gorm:"column:member_id" json:"member_id"`
	Quantity     float64 `gorm:"column:quantity;default:1" json:"quantity"`
	Notes        string  `gorm:"column:notes;default:''" json:"notes"`
	TakenAt      string  `gorm:"column:taken_at" json:"taken_at"`
}

func (MedicineLog) TableName() string {
	return "medicine_log"
}

// MedicineLogWithMember is a log row joined with the member name.
type MedicineLogWithMember struct {
	MedicineLog `gorm:"embedded"`
	MemberName  *string `gorm:"column:member_name" json:"member_name"`
}
