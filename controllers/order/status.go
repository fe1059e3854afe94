package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/obimbo07/mohacollection-api/models"
	"github.com/obimbo07/mohacollection-api/pkg/logger"
)

var ErrIllegalTransition = errors.New("status transition not allowed")

// UpdateStatus moves an order along the fulfilment state machine. Illegal
// transitions (including no-op same-status updates) are rejected.
func UpdateStatus(db *gorm.DB, orderNumber string, next models.OrderStatus) (*models.Order, error) {
	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if !order.Status.CanTransitionTo(next) {
			return ErrIllegalTransition
		}
		order.Status = next
		return tx.Model(&order).Update("status", next).Error
	})
	if err != nil {
		return nil, err
	}
	BroadcastOrderUpdate(&order)
	return &order, nil
}

// MarkPaid flips an order's payment status. Paid is terminal; a second call on
// a paid order reports an illegal transition so callbacks can detect replays.
func MarkPaid(tx *gorm.DB, order *models.Order) error {
	if !order.PaymentStatus.CanTransitionTo(models.PaymentStatusPaid) {
		return ErrIllegalTransition
	}
	updates := map[string]interface{}{"payment_status": models.PaymentStatusPaid}
	order.PaymentStatus = models.PaymentStatusPaid
	if order.Status.CanTransitionTo(models.OrderStatusProcessing) {
		updates["status"] = models.OrderStatusProcessing
		order.Status = models.OrderStatusProcessing
	}
	return tx.Model(order).Updates(updates).Error
}

// -------- Handlers --------

// PUT /admin/orders/:order_number/status
func UpdateOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
			return
		}

		next, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := UpdateStatus(db, c.Param("order_number"), next)
		switch {
		case errors.Is(err, ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrIllegalTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case err != nil:
			logger.L.Error("order status update failed",
				zap.String("order_number", c.Param("order_number")), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		default:
			c.JSON(http.StatusOK, order)
		}
	}
}

// PUT /admin/orders/:order_number/payment-status
func UpdatePaymentStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			PaymentStatus string `json:"payment_status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payment_status is required"})
			return
		}

		next, err := models.ParsePaymentStatus(req.PaymentStatus)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var order models.Order
		if err := db.Where("order_number = ?", c.Param("order_number")).First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if !order.PaymentStatus.CanTransitionTo(next) {
			c.JSON(http.StatusConflict, gin.H{"error": ErrIllegalTransition.Error()})
			return
		}
		if err := db.Model(&order).Update("payment_status", next).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}
		order.PaymentStatus = next
		BroadcastOrderUpdate(&order)
		c.JSON(http.StatusOK, order)
	}
}

// PUT /admin/orders/:order_number/tracking
func UpdateTrackingNumber(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			TrackingNumber string `json:"tracking_number" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "tracking_number is required"})
			return
		}

		result := db.Model(&models.Order{}).
			Where("order_number = ?", c.Param("order_number")).
			Update("tracking_number", req.TrackingNumber)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Tracking number updated"})
	}
}
