package category

// Category represents the categories lookup table.
type Category struct {
	ID    string `gorm:"column:id;primaryKey" json:"id"`
	Name  string `gorm:"column:name;type:varchar(255);not null;uniqueIndex" json:"name"`
	Color string `gorm:"column:color;type:varchar(16);default:#6366f1" json:"color"`
}

func (Category) TableName() string {
	return "categories"
}
