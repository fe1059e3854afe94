package mpesaControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	orderControllers "github.com/obimbo07/mohacollection-api/controllers/order"
	"github.com/obimbo07/mohacollection-api/models"
	"github.com/obimbo07/mohacollection-api/pkg/logger"
)

var (
	ErrOrderAlreadyPaid = errors.New("order is already paid")
	ErrInvalidPhone     = errors.New("phone number must be in 2547XXXXXXXX format")
	ErrSessionNotFound  = errors.New("checkout session not found")
)

// NormalizePhone coerces common Kenyan formats (07..., +254..., 254...) into
// the 254XXXXXXXXX form the gateway expects.
func NormalizePhone(raw string) (string, error) {
	phone := strings.TrimSpace(strings.TrimPrefix(raw, "+"))
	if strings.HasPrefix(phone, "0") && len(phone) == 10 {
		phone = "254" + phone[1:]
	}
	if len(phone) != 12 || !strings.HasPrefix(phone, "254") {
		return "", ErrInvalidPhone
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return "", ErrInvalidPhone
		}
	}
	return phone, nil
}

// InitiateCheckout fires an STK push for an unpaid order and records the
// checkout session keyed by the gateway's CheckoutRequestID. Re-initiating
// replaces the previous session for the order, so only the latest push can
// confirm payment.
func InitiateCheckout(db *gorm.DB, client *Client, orderNumber, phone string) (*models.CheckoutSession, error) {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := db.Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, orderControllers.ErrOrderNotFound
		}
		return nil, err
	}
	if order.PaymentStatus == models.PaymentStatusPaid {
		return nil, ErrOrderAlreadyPaid
	}

	resp, err := client.InitiateSTKPush(normalized, order.TotalAmount,
		order.OrderNumber, "Payment for order "+order.OrderNumber)
	if err != nil {
		return nil, err
	}

	session := models.CheckoutSession{
		OrderID:           order.ID,
		MerchantRequestID: resp.MerchantRequestID,
		CheckoutRequestID: resp.CheckoutRequestID,
		PhoneNumber:       normalized,
		Amount:            order.TotalAmount,
		Status:            models.CheckoutStatusPending,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.CheckoutSession{}).Error; err != nil {
			return err
		}
		return tx.Create(&session).Error
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// StkCallback is the gateway's asynchronous payment result.
type StkCallback struct {
	Body struct {
		StkCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
			CallbackMetadata  struct {
				Item []struct {
					Name  string      `json:"Name"`
					Value interface{} `json:"Value"`
				} `json:"Item"`
			} `json:"CallbackMetadata"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

func (cb *StkCallback) receiptNumber() string {
	for _, item := range cb.Body.StkCallback.CallbackMetadata.Item {
		if item.Name == "MpesaReceiptNumber" {
			if s, ok := item.Value.(string); ok {
				return s
			}
		}
	}
	return ""
}

func (cb *StkCallback) transactionDate() *time.Time {
	for _, item := range cb.Body.StkCallback.CallbackMetadata.Item {
		if item.Name != "TransactionDate" {
			continue
		}
		// The gateway sends this as a number: 20250101121530.
		if f, ok := item.Value.(float64); ok {
			t, err := time.Parse("20060102150405", fmt.Sprintf("%.0f", f))
			if err == nil {
				return &t
			}
		}
	}
	return nil
}

// ProcessCallback applies a payment result to its checkout session and order.
// It is idempotent: a replayed callback for an already settled session is a
// no-op, and a paid order is never touched again.
func ProcessCallback(db *gorm.DB, cb *StkCallback) error {
	payload := cb.Body.StkCallback

	var order *models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var session models.CheckoutSession
		err := tx.Where("checkout_request_id = ?", payload.CheckoutRequestID).First(&session).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		if err != nil {
			return err
		}
		if session.Status != models.CheckoutStatusPending {
			return nil // replayed callback, already settled
		}

		var o models.Order
		if err := tx.First(&o, "id = ?", session.OrderID).Error; err != nil {
			return err
		}
		if o.PaymentStatus == models.PaymentStatusPaid {
			return nil
		}

		resultCode := payload.ResultCode
		updates := map[string]interface{}{
			"result_code": resultCode,
			"result_desc": payload.ResultDesc,
		}

		if resultCode == 0 {
			updates["status"] = models.CheckoutStatusCompleted
			updates["mpesa_receipt_number"] = cb.receiptNumber()
			if ts := cb.transactionDate(); ts != nil {
				updates["transaction_date"] = ts
			}
			if err := tx.Model(&session).Updates(updates).Error; err != nil {
				return err
			}
			if err := orderControllers.MarkPaid(tx, &o); err != nil {
				return err
			}
		} else {
			updates["status"] = models.CheckoutStatusFailed
			if err := tx.Model(&session).Updates(updates).Error; err != nil {
				return err
			}
			if err := tx.Model(&o).Update("payment_status", models.PaymentStatusFailed).Error; err != nil {
				return err
			}
			o.PaymentStatus = models.PaymentStatusFailed
		}
		order = &o
		return nil
	})
	if err != nil {
		return err
	}
	if order != nil {
		orderControllers.BroadcastOrderUpdate(order)
	}
	return nil
}

// -------- Handlers --------

// POST /user/checkout/:order_number
func InitiateCheckoutHandler(db *gorm.DB, client *Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			PhoneNumber string `json:"phone_number" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "phone_number is required"})
			return
		}

		session, err := InitiateCheckout(db, client, c.Param("order_number"), req.PhoneNumber)
		switch {
		case errors.Is(err, ErrInvalidPhone):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, orderControllers.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrOrderAlreadyPaid):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case err != nil:
			logger.L.Error("stk push failed",
				zap.String("order_number", c.Param("order_number")), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to initiate payment"})
		default:
			c.JSON(http.StatusOK, gin.H{
				"checkout_request_id": session.CheckoutRequestID,
				"message":             "STK push sent, check your phone",
			})
		}
	}
}

// POST /mpesa/callback
// Always answers the gateway with ResultCode 0; Daraja retries on anything
// else, and our own failures are recovered via the query endpoint instead.
func CallbackHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cb StkCallback
		if err := c.ShouldBindJSON(&cb); err != nil {
			logger.L.Warn("malformed mpesa callback", zap.Error(err))
			c.JSON(http.StatusOK, gin.H{"ResultCode": 0, "ResultDesc": "Accepted"})
			return
		}

		if err := ProcessCallback(db, &cb); err != nil {
			logger.L.Error("mpesa callback processing failed",
				zap.String("checkout_request_id", cb.Body.StkCallback.CheckoutRequestID),
				zap.Error(err))
		}
		c.JSON(http.StatusOK, gin.H{"ResultCode": 0, "ResultDesc": "Accepted"})
	}
}

// POST /user/checkout/:order_number/query
// Proxies the gateway's STK status query for pushes whose callback never
// arrived. The order stays payable until a confirmation settles it.
func QueryCheckoutHandler(db *gorm.DB, client *Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.Where("order_number = ?", c.Param("order_number")).First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		var session models.CheckoutSession
		err := db.Where("order_id = ?", order.ID).First(&session).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No checkout has been initiated for this order"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch checkout session"})
			return
		}

		resp, err := client.QuerySTK(session.CheckoutRequestID)
		if err != nil {
			logger.L.Error("stk query failed",
				zap.String("checkout_request_id", session.CheckoutRequestID), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to query payment status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"result_code":    resp.ResultCode,
			"result_desc":    resp.ResultDesc,
			"payment_status": order.PaymentStatus,
		})
	}
}

// GET /user/checkout/:order_number/status
func CheckoutStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.Where("order_number = ?", c.Param("order_number")).First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		var session models.CheckoutSession
		err := db.Where("order_id = ?", order.ID).First(&session).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{
				"payment_status":  order.PaymentStatus,
				"checkout_status": nil,
			})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch checkout session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"payment_status":       order.PaymentStatus,
			"checkout_status":      session.Status,
			"mpesa_receipt_number": session.MpesaReceiptNumber,
			"result_desc":          session.ResultDesc,
		})
	}
}
