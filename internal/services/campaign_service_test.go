package services

import (
	"errors"
	"testing"

	"github.com/example/adbottle/internal/models"
)

func TestValidateTransitionRejectRequiresReason(t *testing.T) {
	err := validateTransition(models.StatusPending, models.StatusRejected, "")
	if err == nil {
		t.Fatal("expected a validation error for a missing rejection reason")
	}

	var svcErr *Error
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if svcErr.Kind != ErrValidation {
		t.Errorf("Kind = %s, want %s", svcErr.Kind, ErrValidation)
	}
	if svcErr.Field != "rejection_reason" {
		t.Errorf("Field = %q, want rejection_reason", svcErr.Field)
	}

	if err := validateTransition(models.StatusPending, models.StatusRejected, "low resolution image"); err != nil {
		t.Errorf("rejection with a reason should pass: %v", err)
	}
}

func TestValidateTransitionIllegalEdge(t *testing.T) {
	testCases := []struct {
		from models.Status
		to   models.Status
	}{
		{models.StatusPending, models.StatusShipped},
		{models.StatusPending, models.StatusDelivered},
		{models.StatusApproved, models.StatusDelivered},
		{models.StatusShipped, models.StatusApproved},
		{models.StatusRejected, models.StatusApproved},
		{models.StatusDelivered, models.StatusPending},
	}

	for _, tc := range testCases {
		err := validateTransition(tc.from, tc.to, "reason")
		if err == nil {
			t.Errorf("%s -> %s should fail", tc.from, tc.to)
			continue
		}
		var svcErr *Error
		if !errors.As(err, &svcErr) {
			t.Errorf("%s -> %s: expected *Error, got %T", tc.from, tc.to, err)
			continue
		}
		if svcErr.Kind != ErrStateConflict {
			t.Errorf("%s -> %s: Kind = %s, want %s", tc.from, tc.to, svcErr.Kind, ErrStateConflict)
		}
	}
}

func TestValidateTransitionHappyPath(t *testing.T) {
	steps := []struct {
		from models.Status
		to   models.Status
	}{
		{models.StatusPending, models.StatusApproved},
		{models.StatusApproved, models.StatusInProduction},
		{models.StatusInProduction, models.StatusShipped},
		{models.StatusShipped, models.StatusDelivered},
	}

	for _, step := range steps {
		if err := validateTransition(step.from, step.to, ""); err != nil {
			t.Errorf("%s -> %s should be legal: %v", step.from, step.to, err)
		}
	}
}

func TestErrorFormatting(t *testing.T) {
	withField := ValidationError("quantity", "below minimum")
	if withField.Error() != "validation: quantity: below minimum" {
		t.Errorf("unexpected message: %s", withField.Error())
	}

	withoutField := StateConflictError("cannot transition")
	if withoutField.Error() != "state_conflict: cannot transition" {
		t.Errorf("unexpected message: %s", withoutField.Error())
	}
}

func TestValidateReviewBlocksApprovalDuringReupload(t *testing.T) {
	campaign := &models.Campaign{Status: models.StatusPending, ReuploadRequired: true}

	err := validateReview(campaign, models.StatusApproved, "")
	if err == nil {
		t.Fatal("expected approval to fail while a reupload is outstanding")
	}
	var svcErr *Error
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if svcErr.Kind != ErrStateConflict {
		t.Errorf("Kind = %s, want %s", svcErr.Kind, ErrStateConflict)
	}

	// Rejection stays available even with the flag set.
	if err := validateReview(campaign, models.StatusRejected, "unusable artwork"); err != nil {
		t.Errorf("rejection should remain possible: %v", err)
	}

	campaign.ReuploadRequired = false
	if err := validateReview(campaign, models.StatusApproved, ""); err != nil {
		t.Errorf("approval should pass once the flag clears: %v", err)
	}
}

func TestDesignResetUpdates(t *testing.T) {
	updates := designResetUpdates(DesignReference{
		FileName: "corrected.png",
		FileURL:  "/uploads/corrected.png",
	})

	if updates["status"] != models.StatusPending {
		t.Errorf("status = %v, want %s", updates["status"], models.StatusPending)
	}
	if updates["reupload_required"] != false {
		t.Error("reupload_required should clear")
	}
	if updates["design_feedback"] != "" || updates["design_rejection_reason"] != "" {
		t.Error("design feedback fields should clear")
	}
	if updates["gallery_design_id"] != nil {
		t.Error("gallery reference should clear")
	}
	if updates["design_file_url"] != "/uploads/corrected.png" {
		t.Errorf("design_file_url = %v", updates["design_file_url"])
	}
	if updates["design_type"] != models.DesignTypeUpload {
		t.Errorf("design_type = %v, want %s", updates["design_type"], models.DesignTypeUpload)
	}
}
