package orderControllers

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	cartControllers "github.com/obimbo07/mohacollection-api/controllers/cart"
	"github.com/obimbo07/mohacollection-api/models"
	"github.com/obimbo07/mohacollection-api/pkg/testdb"
)

func createUser(t *testing.T, db *gorm.DB) string {
	t.Helper()
	user := models.User{
		ID:    uuid.NewString(),
		Email: uuid.NewString() + "@example.com",
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func createProduct(t *testing.T, db *gorm.DB, title string, price float64, stock int) models.Product {
	t.Helper()
	product := models.Product{
		Title:      title,
		Price:      price,
		StockCount: stock,
		Slug:       title + "-" + uuid.NewString()[:8],
		IsActive:   true,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func addToCart(t *testing.T, db *gorm.DB, userID string, productID uint, qty int) {
	t.Helper()
	_, err := cartControllers.AddItem(db, userID, cartControllers.CartItemInput{
		ProductID: productID,
		Quantity:  qty,
	})
	require.NoError(t, err)
}

func TestCreateOrderRejectsEmptyCart(t *testing.T) {
	db := testdb.Open(t)
	userID := createUser(t, db)

	_, err := CreateOrder(db, userID, CreateOrderInput{})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCreateOrderTotals(t *testing.T) {
	db := testdb.Open(t)
	userID := createUser(t, db)
	product := createProduct(t, db, "Ankara Dress", 500, 10)
	addToCart(t, db, userID, product.ID, 2)

	promo := models.PromoCode{
		Code:          "SAVE100",
		DiscountType:  models.DiscountTypeFixed,
		DiscountValue: 100,
		IsActive:      true,
	}
	require.NoError(t, db.Create(&promo).Error)

	order, err := CreateOrder(db, userID, CreateOrderInput{
		PromoCode:    "SAVE100",
		ShippingCost: 200,
	})
	require.NoError(t, err)

	assert.Equal(t, 1000.0, order.Subtotal)
	assert.Equal(t, 0.0, order.Tax)
	assert.Equal(t, 200.0, order.ShippingCost)
	assert.Equal(t, 100.0, order.Discount)
	assert.Equal(t, 1100.0, order.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusUnpaid, order.PaymentStatus)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))

	// Promo usage was consumed.
	var stored models.PromoCode
	require.NoError(t, db.First(&stored, promo.ID).Error)
	assert.Equal(t, 1, stored.UsedCount)
}

func TestCreateOrderTotalNeverNegative(t *testing.T) {
	db := testdb.Open(t)
	userID := createUser(t, db)
	product := createProduct(t, db, "Hair Clip", 50, 10)
	addToCart(t, db, userID, product.ID, 1)

	// Fixed discount above the subtotal is clamped to the subtotal, and the
	// final total still floors at zero.
	promo := models.PromoCode{
		Code:          "BIGDISCOUNT",
		DiscountType:  models.DiscountTypeFixed,
		DiscountValue: 5000,
		IsActive:      true,
	}
	require.NoError(t, db.Create(&promo).Error)

	order, err := CreateOrder(db, userID, CreateOrderInput{PromoCode: "BIGDISCOUNT"})
	require.NoError(t, err)
	assert.Equal(t, 50.0, order.Discount)
	assert.Equal(t, 0.0, order.TotalAmount)
}

func TestCreateOrderInvalidPromoFallsBackToZeroDiscount(t *testing.T) {
	db := testdb.Open(t)
	userID := createUser(t, db)
	product := createProduct(t, db, "Kitenge Shirt", 300, 10)
	addToCart(t, db, userID, product.ID, 1)

	expired := time.Now().Add(-24 * time.Hour)
	promo := models.PromoCode{
		Code:          "EXPIRED",
		DiscountType:  models.DiscountTypeFixed,
		DiscountValue: 100,
		IsActive:      true,
		EndDate:       &expired,
	}
	require.NoError(t, db.Create(&promo).Error)

	order, err := CreateOrder(db, userID, CreateOrderInput{PromoCode: "EXPIRED"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, order.Discount)
	assert.Equal(t, 300.0, order.TotalAmount)
	assert.Nil(t, order.PromoCodeID)

	// Unknown codes behave the same.
	addToCart(t, db, userID, product.ID, 1)
	order, err = CreateOrder(db, userID, CreateOrderInput{PromoCode: "NOSUCHCODE"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, order.Discount)
}

func TestCreateOrderSnapshotsItemsAndClearsCart(t *testing.T) {
	db := testdb.Open(t)
	userID := createUser(t, db)
	product := createProduct(t, db, "Maasai Blanket", 3000, 10)
	addToCart(t, db, userID, product.ID, 2)

	order, err := CreateOrder(db, userID, CreateOrderInput{})
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Maasai Blanket", order.Items[0].ProductTitle)
	assert.Equal(t, 3000.0, order.Items[0].UnitPrice)
	assert.Equal(t, 2, order.Items[0].Quantity)

	// Cart was cleared by the order.
	items, err := cartControllers.CartItems(db, userID)
	require.NoError(t, err)
	assert.Empty(t, items)

	// Stock was deducted.
	var stored models.Product
	require.NoError(t, db.First(&stored, product.ID).Error)
	assert.Equal(t, 8, stored.StockCount)

	// Later product edits do not touch the snapshot.
	require.NoError(t, db.Model(&stored).Updates(map[string]interface{}{
		"title": "Renamed Blanket",
		"price": 1.0,
	}).Error)

	var persisted models.Order
	require.NoError(t, db.Preload("Items").First(&persisted, order.ID).Error)
	assert.Equal(t, "Maasai Blanket", persisted.Items[0].ProductTitle)
	assert.Equal(t, 3000.0, persisted.Items[0].UnitPrice)
}

func TestCreateOrderInsufficientStockLeavesEverythingIntact(t *testing.T) {
	db := testdb.Open(t)
	userID := createUser(t, db)
	product := createProduct(t, db, "Soapstone Bowl", 900, 1)
	addToCart(t, db, userID, product.ID, 3)

	_, err := CreateOrder(db, userID, CreateOrderInput{})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Cart still has the items; stock is untouched; no order exists.
	items, err := cartControllers.CartItems(db, userID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	var stored models.Product
	require.NoError(t, db.First(&stored, product.ID).Error)
	assert.Equal(t, 1, stored.StockCount)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCreateOrderExhaustedPromoGetsZeroDiscount(t *testing.T) {
	db := testdb.Open(t)
	userID := createUser(t, db)
	product := createProduct(t, db, "Kiondo Basket", 1800, 10)
	addToCart(t, db, userID, product.ID, 1)

	limit := 5
	promo := models.PromoCode{
		Code:          "USEDUP",
		DiscountType:  models.DiscountTypePercentage,
		DiscountValue: 10,
		IsActive:      true,
		UsageLimit:    &limit,
		UsedCount:     5,
	}
	require.NoError(t, db.Create(&promo).Error)

	order, err := CreateOrder(db, userID, CreateOrderInput{PromoCode: "USEDUP"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, order.Discount)
	assert.Equal(t, 1800.0, order.TotalAmount)

	var stored models.PromoCode
	require.NoError(t, db.First(&stored, promo.ID).Error)
	assert.Equal(t, 5, stored.UsedCount)
}

func TestUpdateStatusEnforcesTransitions(t *testing.T) {
	db := testdb.Open(t)
	userID := createUser(t, db)
	product := createProduct(t, db, "Batik Scarf", 600, 10)
	addToCart(t, db, userID, product.ID, 1)

	order, err := CreateOrder(db, userID, CreateOrderInput{})
	require.NoError(t, err)

	// pending -> shipped skips processing.
	_, err = UpdateStatus(db, order.OrderNumber, models.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrIllegalTransition)

	updated, err := UpdateStatus(db, order.OrderNumber, models.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, updated.Status)

	updated, err = UpdateStatus(db, order.OrderNumber, models.OrderStatusShipped)
	require.NoError(t, err)
	updated, err = UpdateStatus(db, order.OrderNumber, models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, updated.Status)

	// Delivered is terminal.
	_, err = UpdateStatus(db, order.OrderNumber, models.OrderStatusCancelled)
	assert.ErrorIs(t, err, ErrIllegalTransition)

	_, err = UpdateStatus(db, "ORD-NOSUCH", models.OrderStatusProcessing)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestMarkPaidMovesPendingToProcessing(t *testing.T) {
	db := testdb.Open(t)
	userID := createUser(t, db)
	product := createProduct(t, db, "Beaded Sandals", 1500, 10)
	addToCart(t, db, userID, product.ID, 1)

	order, err := CreateOrder(db, userID, CreateOrderInput{})
	require.NoError(t, err)

	require.NoError(t, MarkPaid(db, order))
	assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.PaymentStatusPaid, stored.PaymentStatus)
	assert.Equal(t, models.OrderStatusProcessing, stored.Status)

	// Paying twice is rejected.
	assert.ErrorIs(t, MarkPaid(db, &stored), ErrIllegalTransition)
}
