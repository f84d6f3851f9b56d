package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SMSGateway sends a text message to one phone number and returns the
// provider's message id.
type SMSGateway interface {
	SendSMS(phone, message string) (string, error)
}

// TwilioGateway sends SMS through the Twilio REST API.
type TwilioGateway struct {
	accountSID string
	authToken  string
	fromNumber string
	httpClient *http.Client
}

// NewTwilioGateway creates a TwilioGateway.
func NewTwilioGateway(accountSID, authToken, fromNumber string) *TwilioGateway {
	return &TwilioGateway{
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SendSMS posts one message to the Twilio Messages endpoint.
func (g *TwilioGateway) SendSMS(phone, message string) (string, error) {
	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", g.accountSID)

	form := url.Values{}
	form.Set("To", phone)
	form.Set("From", g.fromNumber)
	form.Set("Body", message)

	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(g.accountSID, g.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("twilio returned status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		SID string `json:"sid"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return response.SID, nil
}

// MockSMSGateway logs instead of sending. Used when Twilio credentials are
// absent and in tests.
type MockSMSGateway struct{}

// SendSMS simulates a successful send.
func (g *MockSMSGateway) SendSMS(phone, message string) (string, error) {
	msgID := fmt.Sprintf("MOCK-SMS-%d", time.Now().UnixNano())
	log.Printf("[SMS] Mock send to %s: %s -> %s", phone, message, msgID)
	return msgID, nil
}
