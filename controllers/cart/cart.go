package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/obimbo07/mohacollection-api/models"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrInvalidPrice    = errors.New("price must be non-negative")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrProductNotFound = errors.New("product does not exist")
)

type CartItemInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// CartView is the cart payload returned to clients: items plus derived totals.
type CartView struct {
	Items         []models.CartItem `json:"items"`
	TotalQuantity int               `json:"total_quantity"`
	TotalAmount   float64           `json:"total_amount"`
}

func viewOf(items []models.CartItem) CartView {
	qty, amount := models.CartTotals(items)
	if items == nil {
		items = []models.CartItem{}
	}
	return CartView{Items: items, TotalQuantity: qty, TotalAmount: amount}
}

// GetOrCreateCart returns the user's cart, creating it on first use.
func GetOrCreateCart(db *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
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

// AddItem adds quantity of a product to the user's cart. An existing row with
// the same (product, size, color) key has its quantity incremented; otherwise a
// new row is inserted with the product's current price/title/image. Invalid
// quantity or a product with a negative price leaves the cart untouched.
func AddItem(db *gorm.DB, userID string, input CartItemInput) (*models.CartItem, error) {
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
	if product.Price < 0 {
		return nil, ErrInvalidPrice
	}

	cart, err := GetOrCreateCart(db, userID)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	err = db.Where("cart_id = ? AND product_id = ? AND size = ? AND color = ?",
		cart.CartID, input.ProductID, input.Size, input.Color).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.CartItem{
			CartID:       cart.CartID,
			ProductID:    product.ID,
			ProductTitle: product.Title,
			ProductImage: product.Image,
			UnitPrice:    product.Price,
			Quantity:     input.Quantity,
			Size:         input.Size,
			Color:        input.Color,
			AddedAt:      time.Now(),
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

// DecrementItem reduces a cart item's quantity by one, removing the row when
// the quantity reaches zero.
func DecrementItem(db *gorm.DB, userID string, itemID uint) error {
	cart, err := GetOrCreateCart(db, userID)
	if err != nil {
		return err
	}

	var item models.CartItem
	if err := db.Where("id = ? AND cart_id = ?", itemID, cart.CartID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}

	if item.Quantity <= 1 {
		return db.Delete(&item).Error
	}
	item.Quantity--
	return db.Save(&item).Error
}

// RemoveItem deletes a cart item entirely, regardless of quantity.
func RemoveItem(db *gorm.DB, userID string, itemID uint) error {
	cart, err := GetOrCreateCart(db, userID)
	if err != nil {
		return err
	}
	result := db.Where("id = ? AND cart_id = ?", itemID, cart.CartID).Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// ClearCart removes every item from the user's cart.
func ClearCart(db *gorm.DB, userID string) error {
	cart, err := GetOrCreateCart(db, userID)
	if err != nil {
		return err
	}
	return db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
}

// ReplaceAll wipes the cart and bulk-sets its contents, recomputing item
// snapshots from the live products. Used after a merge or a client refetch so
// totals are rebuilt from scratch rather than accumulated incrementally.
func ReplaceAll(db *gorm.DB, userID string, inputs []CartItemInput) ([]models.CartItem, error) {
	cart, err := GetOrCreateCart(db, userID)
	if err != nil {
		return nil, err
	}

	var items []models.CartItem
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		for _, input := range inputs {
			if input.Quantity <= 0 {
				return ErrInvalidQuantity
			}
			var product models.Product
			if err := tx.First(&product, "id = ?", input.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return err
			}
			items = append(items, models.CartItem{
				CartID:       cart.CartID,
				ProductID:    product.ID,
				ProductTitle: product.Title,
				ProductImage: product.Image,
				UnitPrice:    product.Price,
				Quantity:     input.Quantity,
				Size:         input.Size,
				Color:        input.Color,
				AddedAt:      time.Now(),
			})
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// CartItems loads the current items of the user's cart.
func CartItems(db *gorm.DB, userID string) ([]models.CartItem, error) {
	cart, err := GetOrCreateCart(db, userID)
	if err != nil {
		return nil, err
	}
	var items []models.CartItem
	if err := db.Where("cart_id = ?", cart.CartID).Order("added_at").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// -------- Handlers --------

// GET /user/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		items, err := CartItems(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, viewOf(items))
	}
}

// POST /user/cart
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := AddItem(db, userID, input)
		switch {
		case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
		default:
			c.JSON(http.StatusCreated, item)
		}
	}
}

// PUT /user/cart
func ReplaceCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var inputs []CartItemInput
		if err := c.ShouldBindJSON(&inputs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		items, err := ReplaceAll(db, userID, inputs)
		switch {
		case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to replace cart"})
		default:
			c.JSON(http.StatusOK, viewOf(items))
		}
	}
}

// POST /user/cart/items/:item_id/decrement
func DecrementCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		itemID, ok := parseUintParam(c, "item_id")
		if !ok {
			return
		}

		if err := DecrementItem(db, userID, itemID); err != nil {
			if errors.Is(err, ErrItemNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item updated"})
	}
}

// DELETE /user/cart/items/:item_id
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		itemID, ok := parseUintParam(c, "item_id")
		if !ok {
			return
		}

		if err := RemoveItem(db, userID, itemID); err != nil {
			if errors.Is(err, ErrItemNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /user/cart
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if err := ClearCart(db, userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
