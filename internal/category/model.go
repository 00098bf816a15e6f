package category

import (
	"time"
)

// Category is a registration tier with an actual fee and a discounted offer
// fee. OfferFee above ActualFee is accepted as entered; the recap then shows
// a negative discount.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	ActualFee   float64   `gorm:"column:actual_fee;not null;default:0" json:"actual_fee"`
	OfferFee    float64   `gorm:"column:offer_fee;not null;default:0" json:"offer_fee"`
	ImageURL    string    `gorm:"column:image_url" json:"image_url"`
	IsActive    bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}
