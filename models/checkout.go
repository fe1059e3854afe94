package models

import "time"

const (
	CheckoutStatusPending   = "pending"
	CheckoutStatusCompleted = "completed"
	CheckoutStatusFailed    = "failed"
)

// CheckoutSession correlates an order with an M-Pesa STK push. The
// checkout_request_id issued by the gateway is the lookup key when the
// asynchronous payment confirmation arrives.
type CheckoutSession struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	OrderID            uint       `gorm:"uniqueIndex;not null" json:"order_id"`
	Order              *Order     `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	MerchantRequestID  string     `json:"merchant_request_id"`
	CheckoutRequestID  string     `gorm:"uniqueIndex;not null" json:"checkout_request_id"`
	PhoneNumber        string     `json:"phone_number"`
	Amount             float64    `json:"amount"`
	MpesaReceiptNumber string     `json:"mpesa_receipt_number"`
	TransactionDate    *time.Time `json:"transaction_date"`
	ResultCode         *int       `json:"result_code"`
	ResultDesc         string     `json:"result_desc"`
	Status             string     `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
