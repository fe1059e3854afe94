package models

import "time"

// HolidayDeal is a time-boxed percentage discount applied to a set of
// products, shown as a storefront campaign.
type HolidayDeal struct {
	ID                 uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name               string     `gorm:"not null" json:"name"`
	Banner             string     `json:"banner"`
	DiscountPercentage float64    `gorm:"not null" json:"discount_percentage"`
	StartDate          *time.Time `json:"start_date"`
	EndDate            *time.Time `json:"end_date"`
	IsActive           bool       `gorm:"default:true" json:"is_active"`
	Products           []Product  `gorm:"many2many:product_deals" json:"products,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// ActiveAt reports whether the deal applies at the given time.
func (d *HolidayDeal) ActiveAt(now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.StartDate != nil && now.Before(*d.StartDate) {
		return false
	}
	if d.EndDate != nil && now.After(*d.EndDate) {
		return false
	}
	return true
}
