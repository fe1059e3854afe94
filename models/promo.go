package models

import "time"

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

type PromoCode struct {
	ID                uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Code              string     `gorm:"uniqueIndex;not null" json:"code"`
	Description       string     `json:"description"`
	DiscountType      string     `gorm:"type:VARCHAR(20);not null" json:"discount_type"` // percentage | fixed
	DiscountValue     float64    `gorm:"not null" json:"discount_value"`
	MinPurchaseAmount float64    `json:"min_purchase_amount"`
	MaxDiscountAmount *float64   `json:"max_discount_amount"`
	UsageLimit        *int       `json:"usage_limit"`
	UsedCount         int        `json:"used_count"`
	StartDate         *time.Time `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
	IsActive          bool       `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
