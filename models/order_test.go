package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("Processing")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusProcessing, status)

	_, err = ParseOrderStatus("unknown")
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}

func TestParsePaymentStatusAcceptsPendingAlias(t *testing.T) {
	status, err := ParsePaymentStatus("pending")
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusUnpaid, status)

	_, err = ParsePaymentStatus("refunded")
	assert.ErrorIs(t, err, ErrInvalidPaymentStatus)
}

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusProcessing, OrderStatusCancelled, true},
		{OrderStatusProcessing, OrderStatusPending, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusProcessing, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusProcessing, false},
		{OrderStatusPending, OrderStatusPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestPaymentStatusPaidIsTerminal(t *testing.T) {
	assert.True(t, PaymentStatusUnpaid.CanTransitionTo(PaymentStatusPaid))
	assert.True(t, PaymentStatusUnpaid.CanTransitionTo(PaymentStatusFailed))
	assert.True(t, PaymentStatusFailed.CanTransitionTo(PaymentStatusPaid))

	assert.False(t, PaymentStatusPaid.CanTransitionTo(PaymentStatusUnpaid))
	assert.False(t, PaymentStatusPaid.CanTransitionTo(PaymentStatusFailed))
	assert.False(t, PaymentStatusPaid.CanTransitionTo(PaymentStatusPaid))
}
