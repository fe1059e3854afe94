package mpesaControllers

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassword(t *testing.T) {
	client := &Client{ShortCode: "174379", Passkey: "passkey123"}
	got := client.Password("20250615120000")

	decoded, err := base64.StdEncoding.DecodeString(got)
	require.NoError(t, err)
	assert.Equal(t, "174379passkey12320250615120000", string(decoded))
}

func TestTimestampFormat(t *testing.T) {
	ts := Timestamp(time.Date(2025, 6, 15, 9, 5, 3, 0, time.UTC))
	assert.Equal(t, "20250615090503", ts)
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"254712345678", "254712345678", false},
		{"+254712345678", "254712345678", false},
		{"0712345678", "254712345678", false},
		{" 0712345678 ", "254712345678", false},
		{"712345678", "", true},
		{"25471234567", "", true},
		{"2547123456789", "", true},
		{"25471234567a", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := NormalizePhone(tc.in)
		if tc.wantErr {
			assert.ErrorIs(t, err, ErrInvalidPhone, "input %q", tc.in)
		} else {
			require.NoError(t, err, "input %q", tc.in)
			assert.Equal(t, tc.want, got)
		}
	}
}

func TestStkCallbackMetadataExtraction(t *testing.T) {
	raw := `{
		"Body": {
			"stkCallback": {
				"MerchantRequestID": "29115-34620561-1",
				"CheckoutRequestID": "ws_CO_191220191020363925",
				"ResultCode": 0,
				"ResultDesc": "The service request is processed successfully.",
				"CallbackMetadata": {
					"Item": [
						{"Name": "Amount", "Value": 1100.00},
						{"Name": "MpesaReceiptNumber", "Value": "NLJ7RT61SV"},
						{"Name": "TransactionDate", "Value": 20250615120530},
						{"Name": "PhoneNumber", "Value": 254712345678}
					]
				}
			}
		}
	}`

	var cb StkCallback
	require.NoError(t, json.Unmarshal([]byte(raw), &cb))

	assert.Equal(t, "ws_CO_191220191020363925", cb.Body.StkCallback.CheckoutRequestID)
	assert.Equal(t, 0, cb.Body.StkCallback.ResultCode)
	assert.Equal(t, "NLJ7RT61SV", cb.receiptNumber())

	ts := cb.transactionDate()
	require.NotNil(t, ts)
	assert.Equal(t, time.Date(2025, 6, 15, 12, 5, 30, 0, time.UTC), *ts)
}

func TestStkCallbackFailureHasNoMetadata(t *testing.T) {
	raw := `{
		"Body": {
			"stkCallback": {
				"MerchantRequestID": "29115-34620561-1",
				"CheckoutRequestID": "ws_CO_191220191020363925",
				"ResultCode": 1032,
				"ResultDesc": "Request cancelled by user"
			}
		}
	}`

	var cb StkCallback
	require.NoError(t, json.Unmarshal([]byte(raw), &cb))

	assert.Equal(t, 1032, cb.Body.StkCallback.ResultCode)
	assert.Empty(t, cb.receiptNumber())
	assert.Nil(t, cb.transactionDate())
}
