package auditlog

import (
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(entry *AuditLog) error {
	return r.DB.Create(entry).Error
}

type ListFilter struct {
	Action string
	Status string
	Limit  int
	Page   int
}

func (r *Repository) List(f ListFilter) ([]AuditLog, int64, error) {
	q := r.DB.Model(&AuditLog{})
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Page <= 0 {
		f.Page = 1
	}

	var logs []AuditLog
	err := q.Order("created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&logs).Error
	return logs, total, err
}
