package auditlog

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog records one admin-facing action: logins, approvals, rejections,
// and category/panchayath/admin management.
type AuditLog struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	AdminID   *uint          `gorm:"index" json:"admin_id"` // nullable (failed login)
	Action    string         `gorm:"size:100;not null;index" json:"action"`
	Details   datatypes.JSON `json:"details"`
	IPAddress string         `gorm:"size:45" json:"ip_address"`
	Status    string         `gorm:"size:20;not null;index" json:"status"` // success/failure
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
