package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/obimbo07/mohacollection-api/models"
	"github.com/obimbo07/mohacollection-api/pkg/logger"
)

// MergeGuestCart folds a guest cart into the user's persisted cart. For each
// guest entry, a user cart item with the same (product, size, color) key has
// the guest quantity added to it; otherwise a new item is inserted with the
// product's current price/title/image. The whole merge runs in one
// transaction.
//
// The merge is additive and NOT idempotent: running it twice with the same
// guest cart doubles quantities. Callers must clear the guest cart after a
// successful merge and leave it intact after a failed one.
func MergeGuestCart(db *gorm.DB, guestID, userID string) (int, error) {
	var guestCart models.GuestCart
	err := db.Preload("Items").Where("guest_id = ?", guestID).First(&guestCart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil // nothing to merge
	}
	if err != nil {
		return 0, err
	}
	if len(guestCart.Items) == 0 {
		return 0, nil
	}

	merged := 0
	err = db.Transaction(func(tx *gorm.DB) error {
		cart, err := GetOrCreateCart(tx, userID)
		if err != nil {
			return err
		}

		for _, entry := range guestCart.Items {
			var product models.Product
			if err := tx.First(&product, "id = ?", entry.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue // product removed while the cart sat unclaimed
				}
				return err
			}

			var item models.CartItem
			err := tx.Where("cart_id = ? AND product_id = ? AND size = ? AND color = ?",
				cart.CartID, entry.ProductID, entry.Size, entry.Color).First(&item).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				item = models.CartItem{
					CartID:       cart.CartID,
					ProductID:    product.ID,
					ProductTitle: product.Title,
					ProductImage: product.Image,
					UnitPrice:    product.Price,
					Quantity:     entry.Quantity,
					Size:         entry.Size,
					Color:        entry.Color,
					AddedAt:      time.Now(),
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
			case err != nil:
				return err
			default:
				item.Quantity += entry.Quantity
				if err := tx.Save(&item).Error; err != nil {
					return err
				}
			}
			merged++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return merged, nil
}

// MergeGuestCartBestEffort runs the merge and clears the guest cart on
// success. Failures are logged and swallowed: losing a merge is recoverable,
// blocking a login is not.
func MergeGuestCartBestEffort(db *gorm.DB, guestID, userID string) {
	if guestID == "" {
		return
	}
	merged, err := MergeGuestCart(db, guestID, userID)
	if err != nil {
		logger.L.Warn("guest cart merge failed",
			zap.String("guest_id", guestID),
			zap.String("user_id", userID),
			zap.Error(err))
		return
	}
	if merged > 0 {
		if err := ClearGuestCart(db, guestID); err != nil {
			logger.L.Warn("failed to clear guest cart after merge",
				zap.String("guest_id", guestID),
				zap.Error(err))
		}
	}
}

// POST /user/cart/merge
func MergeGuestCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var req struct {
			GuestID string `json:"guest_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "guest_id is required"})
			return
		}

		merged, err := MergeGuestCart(db, req.GuestID, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to merge guest cart"})
			return
		}
		// Clear only after a successful merge; a retry must still see the
		// guest cart if anything above failed.
		if merged > 0 {
			if err := ClearGuestCart(db, req.GuestID); err != nil {
				logger.L.Warn("failed to clear guest cart after merge",
					zap.String("guest_id", req.GuestID),
					zap.Error(err))
			}
		}

		items, err := CartItems(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"merged": merged, "cart": viewOf(items)})
	}
}
