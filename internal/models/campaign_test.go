package models

import "testing"

func TestParseStatus(t *testing.T) {
	for _, label := range []string{"pending", "approved", "rejected", "in_production", "shipped", "delivered"} {
		status, err := ParseStatus(label)
		if err != nil {
			t.Errorf("ParseStatus(%q) failed: %v", label, err)
		}
		if string(status) != label {
			t.Errorf("ParseStatus(%q) = %q", label, status)
		}
	}

	for _, label := range []string{"", "PENDING", "cancelled", "done", "design_feedback"} {
		if _, err := ParseStatus(label); err == nil {
			t.Errorf("ParseStatus(%q) should fail", label)
		}
	}
}

func TestCanTransition(t *testing.T) {
	legal := []struct{ from, to Status }{
		{StatusPending, StatusApproved},
		{StatusPending, StatusRejected},
		{StatusApproved, StatusInProduction},
		{StatusInProduction, StatusShipped},
		{StatusShipped, StatusDelivered},
	}
	for _, tc := range legal {
		if !CanTransition(tc.from, tc.to) {
			t.Errorf("CanTransition(%s, %s) = false, want true", tc.from, tc.to)
		}
	}

	illegal := []struct{ from, to Status }{
		{StatusPending, StatusShipped},
		{StatusPending, StatusInProduction},
		{StatusPending, StatusDelivered},
		{StatusApproved, StatusRejected},
		{StatusApproved, StatusPending},
		{StatusShipped, StatusApproved},
		{StatusRejected, StatusPending},
		{StatusRejected, StatusApproved},
		{StatusDelivered, StatusShipped},
		{StatusDelivered, StatusPending},
	}
	for _, tc := range illegal {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("CanTransition(%s, %s) = true, want false", tc.from, tc.to)
		}
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	all := []Status{StatusPending, StatusApproved, StatusRejected, StatusInProduction, StatusShipped, StatusDelivered}
	for _, to := range all {
		if CanTransition(StatusRejected, to) {
			t.Errorf("rejected should be terminal, allows %s", to)
		}
		if CanTransition(StatusDelivered, to) {
			t.Errorf("delivered should be terminal, allows %s", to)
		}
	}
}

func TestTimestampColumn(t *testing.T) {
	testCases := []struct {
		status Status
		want   string
	}{
		{StatusApproved, "approved_at"},
		{StatusInProduction, "production_started_at"},
		{StatusShipped, "dispatched_at"},
		{StatusDelivered, "completed_at"},
		{StatusPending, ""},
		{StatusRejected, ""},
	}
	for _, tc := range testCases {
		if got := TimestampColumn(tc.status); got != tc.want {
			t.Errorf("TimestampColumn(%s) = %q, want %q", tc.status, got, tc.want)
		}
	}
}

func TestAdjustSplit(t *testing.T) {
	campaign := Campaign{
		Quantity:           1000,
		DistributionOption: DistributionSplit,
	}

	campaign.AdjustSplit(400)
	if campaign.StoresQuantity != 400 || campaign.HomeQuantity != 600 {
		t.Errorf("got stores=%d home=%d, want 400/600", campaign.StoresQuantity, campaign.HomeQuantity)
	}
	if !campaign.SplitBalanced() {
		t.Error("split should be balanced after AdjustSplit")
	}

	// Clamped at zero.
	campaign.AdjustSplit(-50)
	if campaign.StoresQuantity != 0 || campaign.HomeQuantity != 1000 {
		t.Errorf("got stores=%d home=%d, want 0/1000", campaign.StoresQuantity, campaign.HomeQuantity)
	}

	// Clamped at total.
	campaign.AdjustSplit(5000)
	if campaign.StoresQuantity != 1000 || campaign.HomeQuantity != 0 {
		t.Errorf("got stores=%d home=%d, want 1000/0", campaign.StoresQuantity, campaign.HomeQuantity)
	}

	if !campaign.SplitBalanced() {
		t.Error("split should stay balanced after every mutation")
	}
}

func TestSplitBalancedIgnoresOtherDistributions(t *testing.T) {
	campaign := Campaign{
		Quantity:           1000,
		DistributionOption: DistributionInStores,
		StoresQuantity:     0,
		HomeQuantity:       0,
	}
	if !campaign.SplitBalanced() {
		t.Error("non-split campaigns have no split invariant to violate")
	}
}

func TestIsMixed(t *testing.T) {
	campaign := Campaign{BottleType: "750ml", Quantity: 1000}
	if campaign.IsMixed() {
		t.Error("single-size campaign reported as mixed")
	}

	campaign.BottleBreakdown = []byte(`{"750ml":600,"1L":400}`)
	if !campaign.IsMixed() {
		t.Error("campaign with a breakdown should be mixed")
	}
}
