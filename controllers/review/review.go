package reviewControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/obimbo07/mohacollection-api/models"
)

var (
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrDuplicateReview = errors.New("user has already reviewed this product")
)

type ReviewInput struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// SubmitReview records a user's rating of a product. One review per user per
// product; a second submission updates the existing one.
func SubmitReview(db *gorm.DB, userID string, productID uint, input ReviewInput) (*models.ProductReview, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}

	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		return nil, err
	}

	var review models.ProductReview
	err := db.Where("product_id = ? AND user_id = ?", productID, userID).First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		review = models.ProductReview{
			ProductID: productID,
			UserID:    userID,
			Rating:    input.Rating,
			Comment:   input.Comment,
		}
		if err := db.Create(&review).Error; err != nil {
			return nil, err
		}
		return &review, nil
	}
	if err != nil {
		return nil, err
	}

	review.Rating = input.Rating
	review.Comment = input.Comment
	if err := db.Save(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// -------- Handlers --------

// GET /products/:slug/reviews
func ListProductReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.Where("slug = ?", c.Param("slug")).First(&product).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var reviews []models.ProductReview
		err := db.Where("product_id = ? AND is_approved = ?", product.ID, true).
			Order("created_at DESC").
			Find(&reviews).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}

		var avg float64
		if len(reviews) > 0 {
			sum := 0
			for _, r := range reviews {
				sum += r.Rating
			}
			avg = float64(sum) / float64(len(reviews))
		}

		c.JSON(http.StatusOK, gin.H{
			"reviews":        reviews,
			"count":          len(reviews),
			"average_rating": avg,
		})
	}
}

// POST /user/products/:product_id/reviews
func SubmitReviewHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
			return
		}

		var input ReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		review, err := SubmitReview(db, userID, uint(productID), input)
		switch {
		case errors.Is(err, ErrInvalidRating):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save review"})
		default:
			c.JSON(http.StatusCreated, review)
		}
	}
}

// GET /user/reviews
func ListUserReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var reviews []models.ProductReview
		err := db.Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&reviews).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}
		c.JSON(http.StatusOK, reviews)
	}
}

// DELETE /user/reviews/:id
func DeleteReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}

		result := db.Where("id = ? AND user_id = ?", uint(id), userID).Delete(&models.ProductReview{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
	}
}
