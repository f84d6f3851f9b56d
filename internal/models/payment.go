package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment transaction states.
const (
	TransactionPending = "pending"
	TransactionPaid    = "paid"
	TransactionFailed  = "failed"
)

// PaymentTransaction records one checkout attempt against a gateway.
type PaymentTransaction struct {
	BaseModel
	CampaignID  *uuid.UUID `gorm:"type:uuid;index" json:"campaign_id"`
	Provider    string     `json:"provider"`
	ProviderRef string     `gorm:"index" json:"provider_ref"`
	Amount      float64    `json:"amount"`
	Currency    string     `json:"currency"`
	State       string     `json:"state"`
	FailReason  string     `json:"fail_reason"`
	PaidAt      *time.Time `json:"paid_at"`
}
