package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification channels.
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// Notification dispatch outcomes.
const (
	NotificationSent   = "sent"
	NotificationFailed = "failed"
)

// NotificationLog records one dispatch attempt per channel. Failed rows are
// the redelivery queue: the status change they describe is already
// authoritative, only the customer message is outstanding.
type NotificationLog struct {
	BaseModel
	CampaignID uuid.UUID  `gorm:"type:uuid;index" json:"campaign_id"`
	Channel    string     `json:"channel"`
	Recipient  string     `json:"recipient"`
	Subject    string     `json:"subject"`
	Body       string     `json:"body"`
	Status     string     `gorm:"index" json:"status"`
	Error      string     `json:"error"`
	SentAt     *time.Time `json:"sent_at"`
}
