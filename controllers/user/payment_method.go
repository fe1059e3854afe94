package userControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/obimbo07/mohacollection-api/models"
)

// GET /user/payment-methods
func ListPaymentMethods(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var methods []models.PaymentMethod
		err := db.Where("user_id = ?", userID).
			Order("is_default DESC, created_at DESC").
			Find(&methods).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment methods"})
			return
		}
		c.JSON(http.StatusOK, methods)
	}
}

// POST /user/payment-methods
func CreatePaymentMethod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var method models.PaymentMethod
		if err := c.ShouldBindJSON(&method); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if method.MethodType == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "method_type is required"})
			return
		}
		method.ID = 0
		method.UserID = userID

		err := db.Transaction(func(tx *gorm.DB) error {
			if method.IsDefault {
				if err := tx.Model(&models.PaymentMethod{}).
					Where("user_id = ?", userID).
					Update("is_default", false).Error; err != nil {
					return err
				}
			}
			return tx.Create(&method).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment method"})
			return
		}
		c.JSON(http.StatusCreated, method)
	}
}

// DELETE /user/payment-methods/:id
func DeletePaymentMethod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}

		result := db.Where("id = ? AND user_id = ?", uint(id), userID).Delete(&models.PaymentMethod{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete payment method"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment method not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment method deleted"})
	}
}
