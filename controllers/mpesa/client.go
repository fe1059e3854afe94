package mpesaControllers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Client talks to the Safaricom Daraja API (OAuth token + Lipa Na M-Pesa
// Online STK push).
type Client struct {
	ShortCode      string
	Passkey        string
	ConsumerKey    string
	ConsumerSecret string
	BaseURL        string
	CallbackURL    string
	HTTP           *http.Client
}

func NewClientFromEnv() *Client {
	baseURL := os.Getenv("MPESA_BASE_URL")
	if baseURL == "" {
		baseURL = "https://sandbox.safaricom.co.ke"
	}
	return &Client{
		ShortCode:      os.Getenv("MPESA_SHORTCODE"),
		Passkey:        os.Getenv("MPESA_PASSKEY"),
		ConsumerKey:    os.Getenv("MPESA_CONSUMER_KEY"),
		ConsumerSecret: os.Getenv("MPESA_CONSUMER_SECRET"),
		BaseURL:        baseURL,
		CallbackURL:    os.Getenv("MPESA_CALLBACK_URL"),
		HTTP:           &http.Client{Timeout: 30 * time.Second},
	}
}

// AccessToken fetches a bearer token using consumer key/secret basic auth.
func (m *Client) AccessToken() (string, error) {
	req, err := http.NewRequest(http.MethodGet,
		m.BaseURL+"/oauth/v1/generate?grant_type=client_credentials", nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(m.ConsumerKey, m.ConsumerSecret)

	resp, err := m.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mpesa auth returned status %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.AccessToken == "" {
		return "", errors.New("mpesa auth response missing access_token")
	}
	return body.AccessToken, nil
}

// Password builds the STK push password: base64(shortcode + passkey + timestamp).
func (m *Client) Password(timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(m.ShortCode + m.Passkey + timestamp))
}

// Timestamp returns the gateway's YYYYMMDDHHmmss format.
func Timestamp(t time.Time) string {
	return t.Format("20060102150405")
}

type STKPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

// InitiateSTKPush asks the gateway to prompt the customer's phone for payment.
// Amount is truncated to whole shillings as the gateway requires.
func (m *Client) InitiateSTKPush(phone string, amount float64, accountRef, description string) (*STKPushResponse, error) {
	token, err := m.AccessToken()
	if err != nil {
		return nil, err
	}

	ts := Timestamp(time.Now())
	payload := map[string]interface{}{
		"BusinessShortCode": m.ShortCode,
		"Password":          m.Password(ts),
		"Timestamp":         ts,
		"TransactionType":   "CustomerPayBillOnline",
		"Amount":            int(amount),
		"PartyA":            phone,
		"PartyB":            m.ShortCode,
		"PhoneNumber":       phone,
		"CallBackURL":       m.CallbackURL,
		"AccountReference":  accountRef,
		"TransactionDesc":   description,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost,
		m.BaseURL+"/mpesa/stkpush/v1/processrequest", bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out STKPushResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.ResponseCode != "0" {
		return &out, fmt.Errorf("stk push rejected: %s", out.ResponseDescription)
	}
	return &out, nil
}

type STKQueryResponse struct {
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResultCode          string `json:"ResultCode"`
	ResultDesc          string `json:"ResultDesc"`
}

// QuerySTK asks the gateway for the outcome of a previously initiated push.
func (m *Client) QuerySTK(checkoutRequestID string) (*STKQueryResponse, error) {
	token, err := m.AccessToken()
	if err != nil {
		return nil, err
	}

	ts := Timestamp(time.Now())
	payload := map[string]interface{}{
		"BusinessShortCode": m.ShortCode,
		"Password":          m.Password(ts),
		"Timestamp":         ts,
		"CheckoutRequestID": checkoutRequestID,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost,
		m.BaseURL+"/mpesa/stkpushquery/v1/query", bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out STKQueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
