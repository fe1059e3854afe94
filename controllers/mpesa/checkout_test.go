package mpesaControllers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/obimbo07/mohacollection-api/models"
	"github.com/obimbo07/mohacollection-api/pkg/testdb"
)

func seedOrderWithSession(t *testing.T, db *gorm.DB) (*models.Order, *models.CheckoutSession) {
	t.Helper()

	userID := uuid.NewString()
	require.NoError(t, db.Create(&models.User{
		ID:    userID,
		Email: uuid.NewString() + "@example.com",
	}).Error)

	order := models.Order{
		OrderNumber:   "ORD-20250615120000-" + uuid.NewString()[:8],
		UserID:        &userID,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusUnpaid,
		Subtotal:      1000,
		ShippingCost:  100,
		TotalAmount:   1100,
	}
	require.NoError(t, db.Create(&order).Error)

	session := models.CheckoutSession{
		OrderID:           order.ID,
		MerchantRequestID: "29115-34620561-1",
		CheckoutRequestID: "ws_CO_" + uuid.NewString(),
		PhoneNumber:       "254712345678",
		Amount:            order.TotalAmount,
		Status:            models.CheckoutStatusPending,
	}
	require.NoError(t, db.Create(&session).Error)

	return &order, &session
}

func successCallback(checkoutRequestID string) *StkCallback {
	var cb StkCallback
	cb.Body.StkCallback.MerchantRequestID = "29115-34620561-1"
	cb.Body.StkCallback.CheckoutRequestID = checkoutRequestID
	cb.Body.StkCallback.ResultCode = 0
	cb.Body.StkCallback.ResultDesc = "The service request is processed successfully."
	cb.Body.StkCallback.CallbackMetadata.Item = []struct {
		Name  string      `json:"Name"`
		Value interface{} `json:"Value"`
	}{
		{Name: "Amount", Value: 1100.0},
		{Name: "MpesaReceiptNumber", Value: "NLJ7RT61SV"},
		{Name: "TransactionDate", Value: 20250615120530.0},
		{Name: "PhoneNumber", Value: 254712345678.0},
	}
	return &cb
}

func failureCallback(checkoutRequestID string) *StkCallback {
	var cb StkCallback
	cb.Body.StkCallback.CheckoutRequestID = checkoutRequestID
	cb.Body.StkCallback.ResultCode = 1032
	cb.Body.StkCallback.ResultDesc = "Request cancelled by user"
	return &cb
}

func TestProcessCallbackSuccessMarksPaidAndProcessing(t *testing.T) {
	db := testdb.Open(t)
	order, session := seedOrderWithSession(t, db)

	require.NoError(t, ProcessCallback(db, successCallback(session.CheckoutRequestID)))

	var storedOrder models.Order
	require.NoError(t, db.First(&storedOrder, order.ID).Error)
	assert.Equal(t, models.PaymentStatusPaid, storedOrder.PaymentStatus)
	assert.Equal(t, models.OrderStatusProcessing, storedOrder.Status)

	var storedSession models.CheckoutSession
	require.NoError(t, db.First(&storedSession, session.ID).Error)
	assert.Equal(t, models.CheckoutStatusCompleted, storedSession.Status)
	assert.Equal(t, "NLJ7RT61SV", storedSession.MpesaReceiptNumber)
	require.NotNil(t, storedSession.ResultCode)
	assert.Equal(t, 0, *storedSession.ResultCode)
	assert.NotNil(t, storedSession.TransactionDate)
}

func TestProcessCallbackIsIdempotent(t *testing.T) {
	db := testdb.Open(t)
	order, session := seedOrderWithSession(t, db)

	require.NoError(t, ProcessCallback(db, successCallback(session.CheckoutRequestID)))

	// A replayed success changes nothing.
	require.NoError(t, ProcessCallback(db, successCallback(session.CheckoutRequestID)))

	// A late failure for the same push cannot downgrade a paid order.
	require.NoError(t, ProcessCallback(db, failureCallback(session.CheckoutRequestID)))

	var storedOrder models.Order
	require.NoError(t, db.First(&storedOrder, order.ID).Error)
	assert.Equal(t, models.PaymentStatusPaid, storedOrder.PaymentStatus)
	assert.Equal(t, models.OrderStatusProcessing, storedOrder.Status)

	var storedSession models.CheckoutSession
	require.NoError(t, db.First(&storedSession, session.ID).Error)
	assert.Equal(t, models.CheckoutStatusCompleted, storedSession.Status)
}

func TestProcessCallbackFailureMarksFailed(t *testing.T) {
	db := testdb.Open(t)
	order, session := seedOrderWithSession(t, db)

	require.NoError(t, ProcessCallback(db, failureCallback(session.CheckoutRequestID)))

	var storedOrder models.Order
	require.NoError(t, db.First(&storedOrder, order.ID).Error)
	assert.Equal(t, models.PaymentStatusFailed, storedOrder.PaymentStatus)
	assert.Equal(t, models.OrderStatusPending, storedOrder.Status)

	var storedSession models.CheckoutSession
	require.NoError(t, db.First(&storedSession, session.ID).Error)
	assert.Equal(t, models.CheckoutStatusFailed, storedSession.Status)
	require.NotNil(t, storedSession.ResultCode)
	assert.Equal(t, 1032, *storedSession.ResultCode)

	// A failed payment can still be retried and succeed later. Failed session
	// rows stay settled; a new push would create a fresh session. Here the
	// session is already failed, so a late success replay is ignored.
	require.NoError(t, ProcessCallback(db, successCallback(session.CheckoutRequestID)))
	require.NoError(t, db.First(&storedOrder, order.ID).Error)
	assert.Equal(t, models.PaymentStatusFailed, storedOrder.PaymentStatus)
}

func TestProcessCallbackUnknownSession(t *testing.T) {
	db := testdb.Open(t)
	err := ProcessCallback(db, successCallback("ws_CO_unknown"))
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
