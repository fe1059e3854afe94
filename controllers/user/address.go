package userControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/obimbo07/mohacollection-api/models"
)

// At most one address per user carries is_default; setting a new default
// clears the previous one in the same transaction.

// GET /user/addresses
func ListAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var addresses []models.ShippingAddress
		err := db.Where("user_id = ?", userID).
			Order("is_default DESC, created_at DESC").
			Find(&addresses).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch addresses"})
			return
		}
		c.JSON(http.StatusOK, addresses)
	}
}

// POST /user/addresses
func CreateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var address models.ShippingAddress
		if err := c.ShouldBindJSON(&address); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if address.FullName == "" || address.Phone == "" || address.AddressLine1 == "" ||
			address.City == "" || address.Country == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "full_name, phone, address_line1, city and country are required"})
			return
		}
		address.ID = 0
		address.UserID = userID

		err := db.Transaction(func(tx *gorm.DB) error {
			if address.IsDefault {
				if err := tx.Model(&models.ShippingAddress{}).
					Where("user_id = ?", userID).
					Update("is_default", false).Error; err != nil {
					return err
				}
			}
			return tx.Create(&address).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create address"})
			return
		}
		c.JSON(http.StatusCreated, address)
	}
}

// PUT /user/addresses/:id
func UpdateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}

		var address models.ShippingAddress
		if err := db.Where("id = ? AND user_id = ?", uint(id), userID).First(&address).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}

		var updates map[string]interface{}
		if err := c.ShouldBindJSON(&updates); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		delete(updates, "id")
		delete(updates, "user_id")

		err = db.Transaction(func(tx *gorm.DB) error {
			if isDefault, ok := updates["is_default"].(bool); ok && isDefault {
				if err := tx.Model(&models.ShippingAddress{}).
					Where("user_id = ? AND id <> ?", userID, address.ID).
					Update("is_default", false).Error; err != nil {
					return err
				}
			}
			return tx.Model(&address).Updates(updates).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update address"})
			return
		}
		c.JSON(http.StatusOK, address)
	}
}

// DELETE /user/addresses/:id
func DeleteAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}

		result := db.Where("id = ? AND user_id = ?", uint(id), userID).Delete(&models.ShippingAddress{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete address"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
	}
}
