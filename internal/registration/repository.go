package registration

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Filter narrows the admin listing and the export. Empty or "all" values
// match everything.
type Filter struct {
	CategoryID   string
	PanchayathID string
	Status       string
}

type Repository interface {
	Create(reg *Registration) error
	GetAll() ([]Registration, error)
	GetFiltered(f Filter) ([]Registration, error)
	GetByID(id uint) (Registration, error)
	UpdateStatus(id uint, status string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(reg *Registration) error {
	return r.db.Create(reg).Error
}

// GetAll returns all registrations, newest first.
func (r *repository) GetAll() ([]Registration, error) {
	var regs []Registration
	err := r.db.Order("created_at DESC").Find(&regs).Error
	return regs, err
}

func (r *repository) GetFiltered(f Filter) ([]Registration, error) {
	q := r.db.Order("created_at DESC")
	if f.CategoryID != "" && f.CategoryID != "all" {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.PanchayathID != "" && f.PanchayathID != "all" {
		q = q.Where("panchayath_id = ?", f.PanchayathID)
	}
	if f.Status != "" && f.Status != "all" {
		q = q.Where("status = ?", f.Status)
	}

	var regs []Registration
	err := q.Find(&regs).Error
	return regs, err
}

func (r *repository) GetByID(id uint) (Registration, error) {
	var reg Registration
	err := r.db.First(&reg, id).Error
	return reg, err
}

func (r *repository) UpdateStatus(id uint, status string) error {
	result := r.db.Model(&Registration{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no registration found with id %d", id)
	}
	return nil
}
