package auth

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(admin *Admin) error
	FindByUsername(username string) (*Admin, error)
	FindByID(id uint) (Admin, error)
	GetAll() ([]Admin, error)
	Update(id uint, updates map[string]interface{}) error
	Count() (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(admin *Admin) error {
	return r.db.Create(admin).Error
}

func (r *repository) FindByUsername(username string) (*Admin, error) {
	var admin Admin
	if err := r.db.Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *repository) FindByID(id uint) (Admin, error) {
	var admin Admin
	err := r.db.First(&admin, id).Error
	return admin, err
}

// GetAll returns admins ordered by username.
func (r *repository) GetAll() ([]Admin, error) {
	var admins []Admin
	err := r.db.Order("username ASC").Find(&admins).Error
	return admins, err
}

func (r *repository) Update(id uint, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result := r.db.Model(&Admin{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no admin found with id %d", id)
	}
	return nil
}

func (r *repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&Admin{}).Count(&count).Error
	return count, err
}
