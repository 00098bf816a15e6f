package registration

import (
	"time"
)

// Registration statuses. Pending is the only non-terminal state: a
// registration moves pending→approved or pending→rejected exactly once.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Registration is one person's enrolment in the self-employment program.
// CategoryName and PanchayathName are snapshots taken at submission time and
// are not updated when the parent records are renamed or deleted.
type Registration struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CustomerID     string    `gorm:"column:customer_id;not null;index" json:"customer_id"`
	CategoryID     uint      `gorm:"column:category_id;not null" json:"category_id"`
	CategoryName   string    `gorm:"column:category_name;not null" json:"category_name"`
	Name           string    `gorm:"not null" json:"name"`
	Address        string    `gorm:"not null" json:"address"`
	MobileNumber   string    `gorm:"column:mobile_number;not null;index" json:"mobile_number"`
	PanchayathID   uint      `gorm:"column:panchayath_id;not null" json:"panchayath_id"`
	PanchayathName string    `gorm:"column:panchayath_name;not null" json:"panchayath_name"`
	Ward           string    `gorm:"not null" json:"ward"`
	AgentPro       string    `gorm:"column:agent_pro" json:"agent_pro"`
	Status         string    `gorm:"default:'pending';index" json:"status"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Registration) TableName() string {
	return "registrations"
}
