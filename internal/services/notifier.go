package services

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/example/adbottle/internal/models"
	"github.com/example/adbottle/internal/utils"
)

// Notifier fans a status change out to whichever channels the customer is
// reachable on. Channel failures are logged and recorded, never raised: the
// campaign record is authoritative whether or not the customer was told.
type Notifier struct {
	email EmailSender
	sms   SMSGateway
	db    *gorm.DB
}

// NewNotifier creates a Notifier. db may be nil, in which case dispatch
// attempts are not persisted.
func NewNotifier(email EmailSender, sms SMSGateway, db *gorm.DB) *Notifier {
	return &Notifier{email: email, sms: sms, db: db}
}

// DeliveryAttempt describes one channel dispatch.
type DeliveryAttempt struct {
	Channel   string
	Recipient string
	Err       error
}

// statusMessage renders the subject and body for a campaign's current state.
func statusMessage(campaign *models.Campaign) (subject, body string) {
	ref := campaign.CampaignID

	switch campaign.Status {
	case models.StatusApproved:
		subject = fmt.Sprintf("Campaign %s approved", ref)
		body = fmt.Sprintf("Good news! Your bottle campaign %s has been approved and will move to production shortly.", ref)
	case models.StatusRejected:
		subject = fmt.Sprintf("Campaign %s rejected", ref)
		body = fmt.Sprintf("Your bottle campaign %s was rejected. Reason: %s. Your payment will be refunded.", ref, campaign.RejectionReason)
	case models.StatusInProduction:
		subject = fmt.Sprintf("Campaign %s in production", ref)
		body = fmt.Sprintf("Production has started on your bottle campaign %s (%d packs).", ref, campaign.PackCount)
	case models.StatusShipped:
		subject = fmt.Sprintf("Campaign %s shipped", ref)
		body = fmt.Sprintf("Your bottle campaign %s has been dispatched.", ref)
	case models.StatusDelivered:
		subject = fmt.Sprintf("Campaign %s delivered", ref)
		body = fmt.Sprintf("Your bottle campaign %s has been delivered. Thank you for advertising with us!", ref)
	default:
		subject = fmt.Sprintf("Campaign %s update", ref)
		body = fmt.Sprintf("Your bottle campaign %s is now %s.", ref, campaign.Status)
	}

	if campaign.ReuploadRequired {
		subject = fmt.Sprintf("Campaign %s needs a new design", ref)
		body = fmt.Sprintf("Your design for campaign %s needs correction before review can continue. Feedback: %s. Reason: %s. Please upload a corrected file.",
			ref, campaign.DesignFeedback, campaign.DesignRejectionReason)
	}

	return subject, body
}

// NotifyStatusChange attempts email and SMS independently and records each
// attempt. One channel failing never blocks the other.
func (n *Notifier) NotifyStatusChange(campaign *models.Campaign) []DeliveryAttempt {
	subject, body := statusMessage(campaign)
	var attempts []DeliveryAttempt

	if campaign.CustomerEmail != "" && n.email != nil {
		err := n.email.Send(campaign.CustomerEmail, subject, body)
		if err != nil {
			log.Printf("[Notify] Email to %s failed for campaign %s: %v", campaign.CustomerEmail, campaign.CampaignID, err)
		}
		attempts = append(attempts, DeliveryAttempt{Channel: models.ChannelEmail, Recipient: campaign.CustomerEmail, Err: err})
	}

	if campaign.CustomerPhone != "" && n.sms != nil {
		phone := utils.NormalizePhone(campaign.CustomerPhone)
		_, err := n.sms.SendSMS(phone, body)
		if err != nil {
			log.Printf("[Notify] SMS to %s failed for campaign %s: %v", phone, campaign.CampaignID, err)
		}
		attempts = append(attempts, DeliveryAttempt{Channel: models.ChannelSMS, Recipient: phone, Err: err})
	}

	n.record(campaign, subject, body, attempts)
	return attempts
}

func (n *Notifier) record(campaign *models.Campaign, subject, body string, attempts []DeliveryAttempt) {
	if n.db == nil {
		return
	}

	for _, attempt := range attempts {
		row := models.NotificationLog{
			CampaignID: campaign.ID,
			Channel:    attempt.Channel,
			Recipient:  attempt.Recipient,
			Subject:    subject,
			Body:       body,
			Status:     models.NotificationSent,
		}
		if attempt.Err != nil {
			row.Status = models.NotificationFailed
			row.Error = attempt.Err.Error()
		} else {
			now := time.Now()
			row.SentAt = &now
		}

		if err := n.db.Create(&row).Error; err != nil {
			log.Printf("[Notify] Failed to record %s attempt for campaign %s: %v", attempt.Channel, campaign.CampaignID, err)
		}
	}
}
