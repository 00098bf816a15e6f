package announcement

import (
	"fmt"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) GetActive() ([]Announcement, error) {
	var announcements []Announcement
	err := r.DB.Where("is_active = ?", true).Order("created_at DESC").Find(&announcements).Error
	return announcements, err
}

func (r *Repository) GetAll() ([]Announcement, error) {
	var announcements []Announcement
	err := r.DB.Order("created_at DESC").Find(&announcements).Error
	return announcements, err
}

func (r *Repository) Create(a *Announcement) error {
	return r.DB.Create(a).Error
}

func (r *Repository) Update(id uint, updates map[string]interface{}) error {
	result := r.DB.Model(&Announcement{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no announcement found with id %d", id)
	}
	return nil
}

func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&Announcement{}, id).Error
}
