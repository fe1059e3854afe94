package models

import "time"

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	UserID    string     `gorm:"uniqueIndex" json:"user_id"` // Enforces ONE cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem denormalizes product title/image/price for display; the live product
// remains the source of truth until checkout snapshots it into an OrderItem.
// One row per (cart, product, size, color) combination.
type CartItem struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	CartID       uint    `gorm:"index;uniqueIndex:idx_cart_item_key" json:"cart_id"`
	ProductID    uint    `gorm:"uniqueIndex:idx_cart_item_key" json:"product_id"`
	ProductTitle string  `json:"product_title"`
	ProductImage string  `json:"product_image"`
	UnitPrice    float64 `json:"unit_price"`
	Quantity     int     `json:"quantity"`
	Size         string    `gorm:"uniqueIndex:idx_cart_item_key" json:"size"`
	Color        string    `gorm:"uniqueIndex:idx_cart_item_key" json:"color"`
	AddedAt      time.Time `json:"added_at"`
}

// CartTotals derives quantity and amount totals from the item rows. Totals are
// never stored, so they cannot drift from the items they summarize.
func CartTotals(items []CartItem) (totalQuantity int, totalAmount float64) {
	for _, item := range items {
		totalQuantity += item.Quantity
		totalAmount += item.UnitPrice * float64(item.Quantity)
	}
	return totalQuantity, totalAmount
}
