package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	cartControllers "github.com/obimbo07/mohacollection-api/controllers/cart"
	promoControllers "github.com/obimbo07/mohacollection-api/controllers/promo"
	"github.com/obimbo07/mohacollection-api/models"
	"github.com/obimbo07/mohacollection-api/pkg/logger"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock for product")
	ErrOrderNotFound     = errors.New("order not found")
)

type CreateOrderInput struct {
	ShippingAddressID *uint   `json:"shipping_address_id"`
	PaymentMethodID   *uint   `json:"payment_method_id"`
	PromoCode         string  `json:"promo_code"`
	Notes             string  `json:"notes"`
	Tax               float64 `json:"tax"`
	ShippingCost      float64 `json:"shipping_cost"`
}

func newOrderNumber() string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102150405"), suffix)
}

// CreateOrder converts the user's cart into an order. Cart items are
// snapshotted into order items, stock is deducted under row locks, the promo
// code (if any) is validated and consumed, and the cart is cleared. Everything
// happens in one transaction: a failure leaves both cart and stock untouched.
//
// A promo code that fails validation does not fail the order; it is recorded
// as discount 0.
func CreateOrder(db *gorm.DB, userID string, input CreateOrderInput) (*models.Order, error) {
	items, err := cartControllers.CartItems(db, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal := 0.0
	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}

	discount := 0.0
	var promoID *uint
	if input.PromoCode != "" {
		promo, err := promoControllers.Lookup(db, input.PromoCode)
		if err == nil {
			if verr := promoControllers.Validate(promo, subtotal, time.Now()); verr == nil {
				discount = promoControllers.Discount(promo, subtotal)
				promoID = &promo.ID
			} else {
				logger.L.Info("promo code rejected at checkout",
					zap.String("code", input.PromoCode),
					zap.String("user_id", userID),
					zap.Error(verr))
			}
		} else if !errors.Is(err, promoControllers.ErrPromoNotFound) {
			return nil, err
		}
	}

	total := subtotal + input.Tax + input.ShippingCost - discount
	if total < 0 {
		total = 0
	}

	order := models.Order{
		OrderNumber:       newOrderNumber(),
		UserID:            &userID,
		Status:            models.OrderStatusPending,
		PaymentStatus:     models.PaymentStatusUnpaid,
		Subtotal:          subtotal,
		Tax:               input.Tax,
		ShippingCost:      input.ShippingCost,
		Discount:          discount,
		TotalAmount:       total,
		PromoCodeID:       promoID,
		ShippingAddressID: input.ShippingAddressID,
		PaymentMethodID:   input.PaymentMethodID,
		Notes:             input.Notes,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			var product models.Product
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, "id = ?", item.ProductID).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrInsufficientStock, item.ProductTitle)
				}
				return err
			}
			if product.StockCount < item.Quantity {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, product.Title)
			}
			if err := tx.Model(&product).
				Update("stock_count", gorm.Expr("stock_count - ?", item.Quantity)).Error; err != nil {
				return err
			}
		}

		for _, item := range items {
			order.Items = append(order.Items, models.OrderItem{
				ProductID:    item.ProductID,
				ProductTitle: item.ProductTitle,
				ProductImage: item.ProductImage,
				Quantity:     item.Quantity,
				UnitPrice:    item.UnitPrice,
				Size:         item.Size,
				Color:        item.Color,
			})
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if promoID != nil {
			if err := promoControllers.ConsumeUsage(tx, *promoID); err != nil {
				// Limit raced away between validation and consumption; the
				// order goes through without the discount rather than failing.
				if !errors.Is(err, promoControllers.ErrPromoExhausted) {
					return err
				}
				order.Discount = 0
				order.TotalAmount = subtotal + input.Tax + input.ShippingCost
				order.PromoCodeID = nil
				if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
					Updates(map[string]interface{}{
						"discount":      0,
						"total_amount":  order.TotalAmount,
						"promo_code_id": nil,
					}).Error; err != nil {
					return err
				}
			}
		}

		var cart models.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			return err
		}
		return tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	BroadcastOrderUpdate(&order)
	return &order, nil
}

// -------- Handlers --------

// POST /user/orders
func PlaceOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input CreateOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := CreateOrder(db, userID, input)
		switch {
		case errors.Is(err, ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case err != nil:
			logger.L.Error("order creation failed", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		default:
			c.JSON(http.StatusCreated, order)
		}
	}
}

// GET /user/orders
func GetUserOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var orders []models.Order
		err := db.Preload("Items").
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&orders).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /user/orders/:order_number
func GetUserOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		orderNumber := c.Param("order_number")

		var order models.Order
		err := db.Preload("Items").
			Where("order_number = ? AND user_id = ?", orderNumber, userID).
			First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /admin/orders
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Items").Preload("User").Order("created_at DESC")

		if raw := c.Query("status"); raw != "" {
			status, err := models.ParseOrderStatus(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			query = query.Where("status = ?", status)
		}
		if raw := c.Query("payment_status"); raw != "" {
			status, err := models.ParsePaymentStatus(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			query = query.Where("payment_status = ?", status)
		}

		var orders []models.Order
		if err := query.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /admin/orders/:order_number
func GetOrderByNumber(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		err := db.Preload("Items").Preload("User").
			Where("order_number = ?", c.Param("order_number")).
			First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
