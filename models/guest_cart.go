package models

import "time"

// GuestCart holds cart state for an unauthenticated visitor, keyed by the guest
// token rather than a user account.
type GuestCart struct {
	CartID    uint            `gorm:"primaryKey" json:"cart_id"`
	GuestID   string          `gorm:"uniqueIndex" json:"guest_id"` // Enforces ONE cart per guest
	Items     []GuestCartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// GuestCartItem stores only the product reference and quantity. Price and title
// are resolved against the live product at read time so a guest cart never goes
// stale while it sits unclaimed.
type GuestCartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CartID    uint      `gorm:"index;uniqueIndex:idx_guest_cart_item_key" json:"cart_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_guest_cart_item_key" json:"product_id"`
	Quantity  int       `json:"quantity"`
	Size      string    `gorm:"uniqueIndex:idx_guest_cart_item_key" json:"size"`
	Color     string    `gorm:"uniqueIndex:idx_guest_cart_item_key" json:"color"`
	AddedAt   time.Time `json:"added_at"`
}
