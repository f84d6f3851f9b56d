package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/adbottle/internal/models"
)

// Supported payment providers.
const (
	ProviderRazorpay  = "razorpay"
	ProviderPayU      = "payu"
	ProviderStripe    = "stripe"
	ProviderSimulated = "simulated"
)

// PaymentConfig carries gateway credentials and the simulation switch.
type PaymentConfig struct {
	RazorpayKeyID     string
	RazorpayKeySecret string
	PayUMerchantKey   string
	PayUMerchantSalt  string
	StripeSecretKey   string
	SimulationEnabled bool
}

// PaymentService records checkout attempts and dispatches them to the
// configured gateway. The order lifecycle itself only ever reads the
// resulting payment status and transaction id.
type PaymentService struct {
	db         *gorm.DB
	cfg        PaymentConfig
	httpClient *http.Client
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(db *gorm.DB, cfg PaymentConfig) *PaymentService {
	return &PaymentService{
		db:  db,
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CheckoutResult is what the client needs to complete payment.
type CheckoutResult struct {
	TransactionID string  `json:"transaction_id"`
	Provider      string  `json:"provider"`
	ProviderRef   string  `json:"provider_ref"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	State         string  `json:"state"`
}

// CreateCheckout opens a payment against the named provider. Simulation is
// refused unless explicitly enabled in config, so it cannot be reached in a
// production deployment by payload choice alone.
func (s *PaymentService) CreateCheckout(provider string, amount float64, currency string) (*CheckoutResult, error) {
	if amount <= 0 {
		return nil, ValidationError("amount", "amount must be positive")
	}
	if currency == "" {
		currency = "INR"
	}

	txn := models.PaymentTransaction{
		Provider: provider,
		Amount:   amount,
		Currency: currency,
		State:    models.TransactionPending,
	}

	var ref string
	var err error
	switch provider {
	case ProviderRazorpay:
		ref, err = s.createRazorpayOrder(amount, currency)
	case ProviderPayU:
		ref, err = s.createPayURequest(amount)
	case ProviderStripe:
		ref, err = s.createStripeIntent(amount, currency)
	case ProviderSimulated:
		if !s.cfg.SimulationEnabled {
			return nil, ValidationError("provider", "simulated payments are disabled")
		}
		ref = fmt.Sprintf("SIM-%d", time.Now().UnixNano())
		txn.State = models.TransactionPaid
		now := time.Now()
		txn.PaidAt = &now
	default:
		return nil, ValidationError("provider", fmt.Sprintf("unknown payment provider %q", provider))
	}

	if err != nil {
		log.Printf("[Payment] %s checkout failed: %v", provider, err)
		txn.State = models.TransactionFailed
		txn.FailReason = err.Error()
	}
	txn.ProviderRef = ref

	if dbErr := s.db.Create(&txn).Error; dbErr != nil {
		return nil, dbErr
	}
	if err != nil {
		return nil, err
	}

	return &CheckoutResult{
		TransactionID: txn.ID.String(),
		Provider:      provider,
		ProviderRef:   ref,
		Amount:        amount,
		Currency:      currency,
		State:         txn.State,
	}, nil
}

// MarkPaid settles a transaction after gateway confirmation and links it to
// the campaign it paid for.
func (s *PaymentService) MarkPaid(transactionID uuid.UUID, campaignID *uuid.UUID) error {
	now := time.Now()
	updates := map[string]any{
		"state":   models.TransactionPaid,
		"paid_at": &now,
	}
	if campaignID != nil {
		updates["campaign_id"] = campaignID
	}

	result := s.db.Model(&models.PaymentTransaction{}).
		Where("id = ? AND state = ?", transactionID, models.TransactionPending).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return StateConflictError("transaction is not pending")
	}
	return nil
}

// GetTransaction loads one payment transaction.
func (s *PaymentService) GetTransaction(id uuid.UUID) (*models.PaymentTransaction, error) {
	var txn models.PaymentTransaction
	if err := s.db.First(&txn, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, NotFoundError("transaction not found")
		}
		return nil, err
	}
	return &txn, nil
}

func (s *PaymentService) createRazorpayOrder(amount float64, currency string) (string, error) {
	if s.cfg.RazorpayKeyID == "" {
		return "", fmt.Errorf("razorpay credentials not configured")
	}

	// Razorpay expects the amount in the smallest currency unit.
	payload := map[string]any{
		"amount":   int64(amount * 100),
		"currency": currency,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, "https://api.razorpay.com/v1/orders", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(s.cfg.RazorpayKeyID, s.cfg.RazorpayKeySecret)
	req.Header.Set("Content-Type", "application/json")

	var response struct {
		ID string `json:"id"`
	}
	if err := s.doJSON(req, &response); err != nil {
		return "", err
	}
	return response.ID, nil
}

func (s *PaymentService) createPayURequest(amount float64) (string, error) {
	if s.cfg.PayUMerchantKey == "" {
		return "", fmt.Errorf("payu credentials not configured")
	}
	// PayU is form-post driven from the client; the server side only issues
	// a reference the client echoes back.
	return fmt.Sprintf("PAYU-%d", time.Now().UnixNano()), nil
}

func (s *PaymentService) createStripeIntent(amount float64, currency string) (string, error) {
	if s.cfg.StripeSecretKey == "" {
		return "", fmt.Errorf("stripe credentials not configured")
	}

	form := fmt.Sprintf("amount=%d&currency=%s", int64(amount*100), currency)
	req, err := http.NewRequest(http.MethodPost, "https://api.stripe.com/v1/payment_intents", bytes.NewReader([]byte(form)))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(s.cfg.StripeSecretKey+":")))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var response struct {
		ID string `json:"id"`
	}
	if err := s.doJSON(req, &response); err != nil {
		return "", err
	}
	return response.ID, nil
}

func (s *PaymentService) doJSON(req *http.Request, out any) error {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(body))
	}

	return json.Unmarshal(body, out)
}
