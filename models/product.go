package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID             uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title          string  `gorm:"not null" json:"title"`
	Description    string  `json:"description"`
	Specifications string  `json:"specifications"`
	Price          float64 `gorm:"not null" json:"price"`
	OldPrice       float64 `json:"old_price"`
	Image          string  `json:"image"`
	Type           string  `json:"type"`
	StockCount     int     `json:"stock_count"`
	Life           string  `json:"life"`
	CategoryID     *uint     `json:"category_id"`
	Category       *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Slug           string    `gorm:"uniqueIndex" json:"slug"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	Featured       bool      `json:"featured"`
	SKU            string    `json:"sku"`
	Weight         float64   `json:"weight"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

type Category struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string    `gorm:"unique;not null" json:"title"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	Slug         string    `gorm:"uniqueIndex" json:"slug"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	DisplayOrder int       `json:"display_order"`
	Products     []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// Banner is a homepage carousel/advert entry managed from the admin dashboard.
type Banner struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `json:"title"`
	Image     string    `gorm:"not null" json:"image"`
	Link      string    `json:"link"`
	Position  int       `json:"position"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
