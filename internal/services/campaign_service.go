package services

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/adbottle/internal/models"
	"github.com/example/adbottle/internal/pricing"
)

// CampaignService owns the order lifecycle: status transitions, the design
// reupload loop, and the pricing policy used to validate submissions.
type CampaignService struct {
	db       *gorm.DB
	notifier *Notifier
}

// NewCampaignService constructs a CampaignService.
func NewCampaignService(db *gorm.DB, notifier *Notifier) *CampaignService {
	return &CampaignService{db: db, notifier: notifier}
}

// LoadPolicy builds the pricing policy from admin-edited price settings on
// top of the compiled-in defaults.
func (s *CampaignService) LoadPolicy() pricing.Policy {
	policy := pricing.DefaultPolicy()

	var settings []models.PriceSetting
	if err := s.db.Where("is_active = ?", true).Find(&settings).Error; err != nil {
		log.Printf("[Campaign] Failed to load price settings, using defaults: %v", err)
		return policy
	}

	for _, setting := range settings {
		policy.UnitPrices[setting.BottleType] = setting.UnitPrice
	}

	return policy
}

// validateTransition checks every precondition of a status change before any
// mutation: the target must parse, rejection must carry a reason, and the
// edge must exist in the pipeline.
func validateTransition(current models.Status, target models.Status, reason string) error {
	if target == models.StatusRejected && reason == "" {
		return ValidationError("rejection_reason", "a rejection reason is required")
	}

	if !models.CanTransition(current, target) {
		return StateConflictError(fmt.Sprintf("cannot transition from %s to %s", current, target))
	}

	return nil
}

// validateReview layers the reupload gate on top of the transition rules: a
// campaign waiting on a corrected design cannot be approved as-is.
func validateReview(campaign *models.Campaign, target models.Status, reason string) error {
	if campaign.ReuploadRequired && target == models.StatusApproved {
		return StateConflictError("campaign is awaiting a corrected design and cannot be approved")
	}
	return validateTransition(campaign.Status, target, reason)
}

// Transition applies one admin-triggered status change. The status check and
// update run as a single conditional UPDATE keyed on the expected current
// status; zero rows affected means another request won the race.
func (s *CampaignService) Transition(id uuid.UUID, targetLabel, reason, notes string) (*models.Campaign, error) {
	target, err := models.ParseStatus(targetLabel)
	if err != nil {
		return nil, ValidationError("status", err.Error())
	}

	var campaign models.Campaign
	if err := s.db.First(&campaign, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, NotFoundError("campaign not found")
		}
		return nil, err
	}

	if err := validateReview(&campaign, target, reason); err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]any{
		"status": target,
	}
	if column := models.TimestampColumn(target); column != "" {
		updates[column] = &now
	}
	if target == models.StatusRejected {
		updates["rejection_reason"] = reason
		updates["reviewed_at"] = &now
	}
	if target == models.StatusApproved {
		updates["reviewed_at"] = &now
	}
	if notes != "" {
		updates["admin_notes"] = notes
	}

	// Compare-and-swap on the stored status.
	result := s.db.Model(&models.Campaign{}).
		Where("id = ? AND status = ?", id, campaign.Status).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, StateConflictError("campaign was modified concurrently, please retry")
	}

	if err := s.db.First(&campaign, "id = ?", id).Error; err != nil {
		return nil, err
	}

	// Notification is best-effort and must not delay the response.
	if s.notifier != nil {
		go s.notifier.NotifyStatusChange(&campaign)
	}

	return &campaign, nil
}

// RequestReupload sends the design back for correction without rejecting the
// whole order. Valid from pending or approved.
func (s *CampaignService) RequestReupload(id uuid.UUID, feedback, reason string) (*models.Campaign, error) {
	if feedback == "" {
		return nil, ValidationError("design_feedback", "design feedback is required")
	}
	if reason == "" {
		return nil, ValidationError("design_rejection_reason", "a design rejection reason is required")
	}

	var campaign models.Campaign
	if err := s.db.First(&campaign, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, NotFoundError("campaign not found")
		}
		return nil, err
	}

	if campaign.Status != models.StatusPending && campaign.Status != models.StatusApproved {
		return nil, StateConflictError(fmt.Sprintf("cannot request a design reupload while %s", campaign.Status))
	}
	if campaign.ReuploadRequired {
		return nil, StateConflictError("a design reupload has already been requested")
	}

	result := s.db.Model(&models.Campaign{}).
		Where("id = ? AND status = ? AND reupload_required = ?", id, campaign.Status, false).
		Updates(map[string]any{
			"reupload_required":       true,
			"design_feedback":         feedback,
			"design_rejection_reason": reason,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, StateConflictError("campaign was modified concurrently, please retry")
	}

	if err := s.db.First(&campaign, "id = ?", id).Error; err != nil {
		return nil, err
	}

	if s.notifier != nil {
		go s.notifier.NotifyStatusChange(&campaign)
	}

	return &campaign, nil
}

// DesignReference is the stored pointer to a new artwork file.
type DesignReference struct {
	FileName string
	FileURL  string
}

// designResetUpdates is the column set written when a corrected design comes
// in: the file replaces any previous reference (uploaded or gallery), the
// reupload flag and its feedback clear, and the campaign rejoins the review
// queue as pending.
func designResetUpdates(ref DesignReference) map[string]any {
	return map[string]any{
		"design_type":             models.DesignTypeUpload,
		"design_file_name":        ref.FileName,
		"design_file_url":         ref.FileURL,
		"gallery_design_id":       nil,
		"gallery_title":           "",
		"reupload_required":       false,
		"design_feedback":         "",
		"design_rejection_reason": "",
		"status":                  models.StatusPending,
	}
}

// SubmitNewDesign completes the reupload loop with the corrected file.
func (s *CampaignService) SubmitNewDesign(id uuid.UUID, userID uuid.UUID, ref DesignReference) (*models.Campaign, error) {
	if ref.FileURL == "" {
		return nil, ValidationError("design_file", "a design file is required")
	}

	var campaign models.Campaign
	if err := s.db.First(&campaign, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, NotFoundError("campaign not found")
		}
		return nil, err
	}

	if !campaign.ReuploadRequired {
		return nil, StateConflictError("campaign is not awaiting a new design")
	}

	result := s.db.Model(&models.Campaign{}).
		Where("id = ? AND reupload_required = ?", id, true).
		Updates(designResetUpdates(ref))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, StateConflictError("campaign was modified concurrently, please retry")
	}

	if err := s.db.First(&campaign, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &campaign, nil
}
