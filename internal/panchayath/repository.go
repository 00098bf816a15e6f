package panchayath

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

func (r *Repository) GetActive() ([]Panchayath, error) {
	var panchayaths []Panchayath
	err := r.DB.Where("is_active = ?", true).Order("name ASC").Find(&panchayaths).Error
	return panchayaths, err
}

func (r *Repository) GetAll() ([]Panchayath, error) {
	var panchayaths []Panchayath
	err := r.DB.Order("name ASC").Find(&panchayaths).Error
	return panchayaths, err
}

func (r *Repository) GetByID(id uint) (Panchayath, error) {
	var p Panchayath
	err := r.DB.First(&p, id).Error
	return p, err
}

func (r *Repository) Create(p *Panchayath) error {
	return r.DB.Create(p).Error
}

func (r *Repository) Update(id uint, updates map[string]interface{}) error {
	result := r.DB.Model(&Panchayath{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no panchayath found with id %d", id)
	}
	return nil
}

func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&Panchayath{}, id).Error
}
