package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/example/adbottle/internal/models"
)

type fakeEmailSender struct {
	sent []string
	err  error
}

func (f *fakeEmailSender) Send(to, subject, bodyHTML string) error {
	f.sent = append(f.sent, to)
	return f.err
}

type fakeSMSGateway struct {
	sent []string
	err  error
}

func (f *fakeSMSGateway) SendSMS(phone, message string) (string, error) {
	f.sent = append(f.sent, phone)
	if f.err != nil {
		return "", f.err
	}
	return "MSG-1", nil
}

func testCampaign() *models.Campaign {
	return &models.Campaign{
		CampaignID:    "CMP-123",
		CustomerEmail: "buyer@example.com",
		CustomerPhone: "9876543210",
		Status:        models.StatusApproved,
	}
}

func TestNotifyBothChannels(t *testing.T) {
	email := &fakeEmailSender{}
	sms := &fakeSMSGateway{}
	notifier := NewNotifier(email, sms, nil)

	attempts := notifier.NotifyStatusChange(testCampaign())

	if len(attempts) != 2 {
		t.Fatalf("got %d attempts, want 2", len(attempts))
	}
	if len(email.sent) != 1 || email.sent[0] != "buyer@example.com" {
		t.Errorf("email attempts = %v", email.sent)
	}
	if len(sms.sent) != 1 || sms.sent[0] != "+919876543210" {
		t.Errorf("sms attempts = %v (phone should be normalized)", sms.sent)
	}
	for _, attempt := range attempts {
		if attempt.Err != nil {
			t.Errorf("%s attempt failed: %v", attempt.Channel, attempt.Err)
		}
	}
}

func TestNotifyEmailFailureDoesNotBlockSMS(t *testing.T) {
	email := &fakeEmailSender{err: errors.New("smtp unreachable")}
	sms := &fakeSMSGateway{}
	notifier := NewNotifier(email, sms, nil)

	attempts := notifier.NotifyStatusChange(testCampaign())

	if len(attempts) != 2 {
		t.Fatalf("got %d attempts, want 2", len(attempts))
	}
	if len(sms.sent) != 1 {
		t.Error("SMS should still be attempted when email fails")
	}

	var emailErr, smsErr error
	for _, attempt := range attempts {
		switch attempt.Channel {
		case models.ChannelEmail:
			emailErr = attempt.Err
		case models.ChannelSMS:
			smsErr = attempt.Err
		}
	}
	if emailErr == nil {
		t.Error("email attempt should carry the failure")
	}
	if smsErr != nil {
		t.Errorf("sms attempt should succeed: %v", smsErr)
	}
}

func TestNotifySkipsMissingContacts(t *testing.T) {
	email := &fakeEmailSender{}
	sms := &fakeSMSGateway{}
	notifier := NewNotifier(email, sms, nil)

	campaign := testCampaign()
	campaign.CustomerPhone = ""
	attempts := notifier.NotifyStatusChange(campaign)

	if len(attempts) != 1 || attempts[0].Channel != models.ChannelEmail {
		t.Errorf("expected a single email attempt, got %+v", attempts)
	}
	if len(sms.sent) != 0 {
		t.Error("no SMS should be attempted without a phone number")
	}
}

func TestStatusMessageContent(t *testing.T) {
	campaign := testCampaign()
	campaign.Status = models.StatusRejected
	campaign.RejectionReason = "low resolution image"

	subject, body := statusMessage(campaign)
	if !strings.Contains(subject, "CMP-123") {
		t.Errorf("subject should reference the campaign: %q", subject)
	}
	if !strings.Contains(body, "low resolution image") {
		t.Errorf("rejection body should carry the reason: %q", body)
	}

	campaign = testCampaign()
	campaign.ReuploadRequired = true
	campaign.DesignFeedback = "logo is cropped"
	_, body = statusMessage(campaign)
	if !strings.Contains(body, "logo is cropped") {
		t.Errorf("reupload body should carry the feedback: %q", body)
	}
}
