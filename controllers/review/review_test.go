package reviewControllers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/obimbo07/mohacollection-api/models"
	"github.com/obimbo07/mohacollection-api/pkg/testdb"
)

func seed(t *testing.T, db *gorm.DB) (string, models.Product) {
	t.Helper()
	user := models.User{ID: uuid.NewString(), Email: uuid.NewString() + "@example.com"}
	require.NoError(t, db.Create(&user).Error)

	product := models.Product{
		Title:    "Ankara Dress",
		Price:    2500,
		Slug:     "ankara-dress-" + uuid.NewString()[:8],
		IsActive: true,
	}
	require.NoError(t, db.Create(&product).Error)
	return user.ID, product
}

func TestSubmitReviewUpsertsPerUser(t *testing.T) {
	db := testdb.Open(t)
	userID, product := seed(t, db)

	review, err := SubmitReview(db, userID, product.ID, ReviewInput{Rating: 4, Comment: "Good fit"})
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)

	// Second submission from the same user replaces, not duplicates.
	review, err = SubmitReview(db, userID, product.ID, ReviewInput{Rating: 2, Comment: "Faded after wash"})
	require.NoError(t, err)
	assert.Equal(t, 2, review.Rating)

	var count int64
	require.NoError(t, db.Model(&models.ProductReview{}).
		Where("product_id = ?", product.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSubmitReviewValidation(t *testing.T) {
	db := testdb.Open(t)
	userID, product := seed(t, db)

	_, err := SubmitReview(db, userID, product.ID, ReviewInput{Rating: 0})
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = SubmitReview(db, userID, product.ID, ReviewInput{Rating: 6})
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = SubmitReview(db, userID, 999999, ReviewInput{Rating: 3})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
