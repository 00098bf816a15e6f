package category

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// GetActive returns active categories in creation order, oldest first.
func (r *Repository) GetActive() ([]Category, error) {
	var categories []Category
	err := r.DB.Where("is_active = ?", true).Order("created_at ASC").Find(&categories).Error
	return categories, err
}

func (r *Repository) GetAll() ([]Category, error) {
	var categories []Category
	err := r.DB.Order("created_at ASC").Find(&categories).Error
	return categories, err
}

func (r *Repository) GetByID(id uint) (Category, error) {
	var category Category
	err := r.DB.First(&category, id).Error
	return category, err
}

func (r *Repository) Create(c *Category) error {
	return r.DB.Create(c).Error
}

// Update applies a sparse patch; absent columns are left untouched.
func (r *Repository) Update(id uint, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result := r.DB.Model(&Category{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no category found with id %d", id)
	}
	return nil
}

func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&Category{}, id).Error
}
