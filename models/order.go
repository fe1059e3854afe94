package models

import (
	"errors"
	"strings"
	"time"
)

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // Order placed, awaiting payment/confirmation
	OrderStatusProcessing OrderStatus = "processing" // Payment confirmed, being prepared
	OrderStatusShipped    OrderStatus = "shipped"    // Out for delivery
	OrderStatusDelivered  OrderStatus = "delivered"  // Customer received the item
	OrderStatusCancelled  OrderStatus = "cancelled"  // Cancelled before delivery

	PaymentStatusUnpaid PaymentStatus = "unpaid" // Payment not completed yet
	PaymentStatusPaid   PaymentStatus = "paid"   // Payment completed successfully
	PaymentStatusFailed PaymentStatus = "failed" // Payment attempt failed
)

var (
	ErrInvalidOrderStatus   = errors.New("invalid order status")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

// Order is immutable once created except for status, payment_status,
// tracking_number and updated_at.
type Order struct {
	ID                uint          `gorm:"primaryKey" json:"id"`
	OrderNumber       string        `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID            *string       `gorm:"index" json:"user_id"`
	User              *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items             []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Status            OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus     PaymentStatus `gorm:"type:VARCHAR(20);default:'unpaid'" json:"payment_status"`
	Subtotal          float64       `json:"subtotal"`
	Tax               float64       `json:"tax"`
	ShippingCost      float64       `json:"shipping_cost"`
	Discount          float64       `json:"discount"`
	TotalAmount       float64       `json:"total_amount"`
	PromoCodeID       *uint         `json:"promo_code_id"`
	ShippingAddressID *uint         `json:"shipping_address_id"`
	PaymentMethodID   *uint         `json:"payment_method_id"`
	Notes             string        `json:"notes"`
	TrackingNumber    string        `json:"tracking_number"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// OrderItem is the snapshot of a cart line at order-creation time. Title, image
// and price are captured here and never change, even if the product does.
type OrderItem struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	OrderID         uint    `gorm:"index" json:"order_id"`
	ProductID       uint    `json:"product_id"`
	ProductTitle    string  `json:"product_title"`
	ProductImage    string  `json:"product_image"`
	Quantity        int     `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	DiscountApplied float64 `json:"discount_applied"`
	Size            string  `json:"size"`
	Color           string  `json:"color"`
}

func ParseOrderStatus(status string) (OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(OrderStatusPending):
		return OrderStatusPending, nil
	case string(OrderStatusProcessing):
		return OrderStatusProcessing, nil
	case string(OrderStatusShipped):
		return OrderStatusShipped, nil
	case string(OrderStatusDelivered):
		return OrderStatusDelivered, nil
	case string(OrderStatusCancelled):
		return OrderStatusCancelled, nil
	default:
		return "", ErrInvalidOrderStatus
	}
}

func ParsePaymentStatus(status string) (PaymentStatus, error) {
	switch strings.ToLower(status) {
	case string(PaymentStatusUnpaid), "pending":
		return PaymentStatusUnpaid, nil
	case string(PaymentStatusPaid):
		return PaymentStatusPaid, nil
	case string(PaymentStatusFailed):
		return PaymentStatusFailed, nil
	default:
		return "", ErrInvalidPaymentStatus
	}
}

// CanTransitionTo reports whether a status change is allowed:
// pending → processing → shipped → delivered, with cancelled reachable from any
// state before delivery. Delivered and cancelled are terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return false
	}
	switch s {
	case OrderStatusPending:
		return next == OrderStatusProcessing || next == OrderStatusCancelled
	case OrderStatusProcessing:
		return next == OrderStatusShipped || next == OrderStatusCancelled
	case OrderStatusShipped:
		return next == OrderStatusDelivered || next == OrderStatusCancelled
	default:
		return false
	}
}

// CanTransitionTo for payments: unpaid or failed may become paid or failed;
// paid is terminal for the order's financial record.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	if s == PaymentStatusPaid {
		return false
	}
	return next == PaymentStatusPaid || next == PaymentStatusFailed
}
