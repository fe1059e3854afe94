package models

import "time"

type ProductReview struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID  uint      `gorm:"uniqueIndex:idx_review_product_user;not null" json:"product_id"`
	UserID     string    `gorm:"uniqueIndex:idx_review_product_user;not null" json:"user_id"`
	Rating     int       `gorm:"not null" json:"rating"` // 1..5
	Comment    string    `json:"comment"`
	IsApproved bool      `gorm:"default:true" json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
