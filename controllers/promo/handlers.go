package promoControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/obimbo07/mohacollection-api/models"
)

// POST /user/promocodes/validate
// Previews the discount a code would grant on the given subtotal. Rejections
// come back as 200 with valid=false so the checkout UI can show the reason
// without treating it as a failure.
func ValidatePromoHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Code     string  `json:"code" binding:"required"`
			Subtotal float64 `json:"subtotal" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		promo, err := Lookup(db, req.Code)
		if err != nil {
			if errors.Is(err, ErrPromoNotFound) {
				c.JSON(http.StatusOK, gin.H{"valid": false, "reason": err.Error(), "discount": 0})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up promo code"})
			return
		}

		if err := Validate(promo, req.Subtotal, time.Now()); err != nil {
			c.JSON(http.StatusOK, gin.H{"valid": false, "reason": err.Error(), "discount": 0})
			return
		}
		c.JSON(http.StatusOK, gin.H{"valid": true, "discount": Discount(promo, req.Subtotal)})
	}
}

// -------- Admin CRUD --------

// GET /admin/promocodes
func ListPromoCodes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var promos []models.PromoCode
		if err := db.Order("created_at DESC").Find(&promos).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch promo codes"})
			return
		}
		c.JSON(http.StatusOK, promos)
	}
}

// POST /admin/promocodes
func CreatePromoCode(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var promo models.PromoCode
		if err := c.ShouldBindJSON(&promo); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if promo.Code == "" || promo.DiscountValue <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "code and a positive discount_value are required"})
			return
		}
		if promo.DiscountType != models.DiscountTypePercentage && promo.DiscountType != models.DiscountTypeFixed {
			c.JSON(http.StatusBadRequest, gin.H{"error": "discount_type must be percentage or fixed"})
			return
		}
		if err := db.Create(&promo).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create promo code"})
			return
		}
		c.JSON(http.StatusCreated, promo)
	}
}

// PUT /admin/promocodes/:id
func UpdatePromoCode(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}

		var promo models.PromoCode
		if err := db.First(&promo, uint(id)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Promo code not found"})
			return
		}

		var updates map[string]interface{}
		if err := c.ShouldBindJSON(&updates); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		delete(updates, "id")
		delete(updates, "used_count") // counter belongs to order placement, not admin edits

		if err := db.Model(&promo).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update promo code"})
			return
		}
		c.JSON(http.StatusOK, promo)
	}
}

// DELETE /admin/promocodes/:id
func DeletePromoCode(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}
		result := db.Delete(&models.PromoCode{}, uint(id))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete promo code"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Promo code not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Promo code deleted"})
	}
}
