package panchayath

// Panchayath is a locality record used to group registrations
// geographically. District is admin-entered text, not a reference.
type Panchayath struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	District string `gorm:"not null" json:"district"`
	IsActive bool   `gorm:"column:is_active;default:true" json:"is_active"`
}

func (Panchayath) TableName() string {
	return "panchayaths"
}
