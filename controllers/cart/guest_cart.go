package cartControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/obimbo07/mohacollection-api/models"
)

// GuestCartEntry is a guest cart row resolved against the live product for
// display. Guests never persist prices, so staleness cannot accumulate.
type GuestCartEntry struct {
	ID           uint    `json:"id"`
	ProductID    uint    `json:"product_id"`
	ProductTitle string  `json:"product_title"`
	ProductImage string  `json:"product_image"`
	UnitPrice    float64 `json:"unit_price"`
	Quantity     int     `json:"quantity"`
	Size         string  `json:"size"`
	Color        string  `json:"color"`
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(v), true
}

func getOrCreateGuestCart(db *gorm.DB, guestID string) (*models.GuestCart, error) {
	var cart models.GuestCart
	err := db.Where("guest_id = ?", guestID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.GuestCart{GuestID: guestID}
		if err := db.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToGuestCart appends or increments a guest cart entry. Only the product
// reference, quantity and variant selectors are stored.
func AddToGuestCart(db *gorm.DB, guestID string, input CartItemInput) (*models.GuestCartItem, error) {
	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var product models.Product
	if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	cart, err := getOrCreateGuestCart(db, guestID)
	if err != nil {
		return nil, err
	}

	var item models.GuestCartItem
	err = db.Where("cart_id = ? AND product_id = ? AND size = ? AND color = ?",
		cart.CartID, input.ProductID, input.Size, input.Color).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.GuestCartItem{
			CartID:    cart.CartID,
			ProductID: product.ID,
			Quantity:  input.Quantity,
			Size:      input.Size,
			Color:     input.Color,
			AddedAt:   time.Now(),
		}
		if err := db.Create(&item).Error; err != nil {
			return nil, err
		}
		return &item, nil
	}
	if err != nil {
		return nil, err
	}

	item.Quantity += input.Quantity
	item.AddedAt = time.Now()
	if err := db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// GuestCartEntries loads the guest's cart with price/title resolved from the
// current products.
func GuestCartEntries(db *gorm.DB, guestID string) ([]GuestCartEntry, error) {
	var cart models.GuestCart
	err := db.Preload("Items").Where("guest_id = ?", guestID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []GuestCartEntry{}, nil
	}
	if err != nil {
		return nil, err
	}

	entries := make([]GuestCartEntry, 0, len(cart.Items))
	for _, item := range cart.Items {
		var product models.Product
		if err := db.First(&product, "id = ?", item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue // product removed since the guest added it
			}
			return nil, err
		}
		entries = append(entries, GuestCartEntry{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductTitle: product.Title,
			ProductImage: product.Image,
			UnitPrice:    product.Price,
			Quantity:     item.Quantity,
			Size:         item.Size,
			Color:        item.Color,
		})
	}
	return entries, nil
}

// ClearGuestCart removes every item from the guest's cart. Called after a
// successful merge; a failed merge must leave the guest cart intact.
func ClearGuestCart(db *gorm.DB, guestID string) error {
	var cart models.GuestCart
	err := db.Where("guest_id = ?", guestID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return db.Where("cart_id = ?", cart.CartID).Delete(&models.GuestCartItem{}).Error
}

// -------- Handlers --------

func guestID(c *gin.Context) (string, bool) {
	id := c.Query("guest_id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "guest_id is required"})
		return "", false
	}
	return id, true
}

// POST /guest/cart
func AddGuestCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := guestID(c)
		if !ok {
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := AddToGuestCart(db, id, input)
		switch {
		case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to guest cart"})
		default:
			c.JSON(http.StatusCreated, item)
		}
	}
}

// GET /guest/cart
func GetGuestCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := guestID(c)
		if !ok {
			return
		}
		entries, err := GuestCartEntries(db, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch guest cart"})
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

// DELETE /guest/cart/:item_id
func DeleteGuestCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := guestID(c)
		if !ok {
			return
		}
		itemID, ok := parseUintParam(c, "item_id")
		if !ok {
			return
		}

		var cart models.GuestCart
		if err := db.Where("guest_id = ?", id).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Guest cart not found"})
			return
		}

		result := db.Where("id = ? AND cart_id = ?", itemID, cart.CartID).Delete(&models.GuestCartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Guest cart item deleted"})
	}
}

// DELETE /guest/cart
func ClearGuestCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := guestID(c)
		if !ok {
			return
		}
		if err := ClearGuestCart(db, id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear guest cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Guest cart cleared"})
	}
}
