package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Status is the campaign's position in the fulfillment pipeline.
type Status string

const (
	StatusPending      Status = "pending"
	StatusApproved     Status = "approved"
	StatusRejected     Status = "rejected"
	StatusInProduction Status = "in_production"
	StatusShipped      Status = "shipped"
	StatusDelivered    Status = "delivered"
)

// ParseStatus validates a status label coming from the outside.
func ParseStatus(value string) (Status, error) {
	switch Status(value) {
	case StatusPending, StatusApproved, StatusRejected,
		StatusInProduction, StatusShipped, StatusDelivered:
		return Status(value), nil
	}
	return "", fmt.Errorf("unknown status %q", value)
}

// allowedTransitions encodes the admin-driven pipeline. rejected and
// delivered are terminal.
var allowedTransitions = map[Status][]Status{
	StatusPending:      {StatusApproved, StatusRejected},
	StatusApproved:     {StatusInProduction},
	StatusInProduction: {StatusShipped},
	StatusShipped:      {StatusDelivered},
}

// CanTransition reports whether the pipeline permits from -> to.
func CanTransition(from, to Status) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TimestampColumn maps a status to the column stamped when it is entered.
// Statuses without a dedicated timestamp return "".
func TimestampColumn(s Status) string {
	switch s {
	case StatusApproved:
		return "approved_at"
	case StatusInProduction:
		return "production_started_at"
	case StatusShipped:
		return "dispatched_at"
	case StatusDelivered:
		return "completed_at"
	}
	return ""
}

// Distribution options for finished bottles.
const (
	DistributionInStores       = "in_stores"
	DistributionAtYourLocation = "at_your_location"
	DistributionSplit          = "split"
)

// Design reference kinds.
const (
	DesignTypeGallery = "gallery"
	DesignTypeUpload  = "upload"
)

// Payment statuses recorded on the campaign.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Campaign is one customer's bottle-advertising order, from submission
// through delivery.
type Campaign struct {
	BaseModel
	UserID     uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User       *User     `json:"user,omitempty"`
	CampaignID string    `gorm:"uniqueIndex" json:"campaign_id"`

	// Customer contact, denormalized onto the order.
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code"`
	CompanyName   string `json:"company_name"`

	// Product selection: either a single size+quantity or a mixed
	// size -> quantity breakdown, never both.
	BottleType      string         `json:"bottle_type"`
	Quantity        int            `json:"quantity"`
	BottleBreakdown datatypes.JSON `gorm:"type:jsonb" json:"bottle_breakdown"`
	PackCount       int            `json:"pack_count"`

	// Distribution.
	DistributionOption string `json:"distribution_option"`
	TargetCity         string `json:"target_city"`
	TargetArea         string `json:"target_area"`
	DeliveryAddress    string `json:"delivery_address"`
	StoresQuantity     int    `json:"stores_quantity"`
	HomeQuantity       int    `json:"home_quantity"`

	// Design reference.
	DesignType      string     `json:"design_type"`
	GalleryDesignID *uuid.UUID `gorm:"type:uuid" json:"gallery_design_id"`
	GalleryTitle    string     `json:"gallery_title"`
	DesignFileName  string     `json:"design_file_name"`
	DesignFileURL   string     `json:"design_file_url"`

	// Commercial.
	TotalAmount   float64 `json:"total_amount"`
	Currency      string  `json:"currency"`
	PaymentMethod string  `json:"payment_method"`
	PaymentStatus string  `json:"payment_status"`
	TransactionID string  `json:"transaction_id"`

	// Lifecycle.
	Status          Status `gorm:"type:varchar(32);index" json:"status"`
	AdminNotes      string `json:"admin_notes"`
	RejectionReason string `json:"rejection_reason"`

	// Design-revision sub-state, independent of the main pipeline.
	ReuploadRequired      bool   `gorm:"index" json:"reupload_required"`
	DesignFeedback        string `json:"design_feedback"`
	DesignRejectionReason string `json:"design_rejection_reason"`

	SubmittedAt         time.Time  `json:"submitted_at"`
	ReviewedAt          *time.Time `json:"reviewed_at"`
	ApprovedAt          *time.Time `json:"approved_at"`
	ProductionStartedAt *time.Time `json:"production_started_at"`
	DispatchedAt        *time.Time `json:"dispatched_at"`
	CompletedAt         *time.Time `json:"completed_at"`
}

// TotalQuantity returns the single-size quantity. Mixed campaigns keep the
// summed quantity in the same column at creation time, so the field is
// authoritative either way.
func (c *Campaign) TotalQuantity() int {
	return c.Quantity
}

// IsMixed reports whether the campaign uses a mixed size breakdown.
func (c *Campaign) IsMixed() bool {
	return len(c.BottleBreakdown) > 0 && string(c.BottleBreakdown) != "null"
}

// AdjustSplit sets the in-store share of a split campaign and rebalances the
// direct-delivery share so the two always sum to the total. Values are
// clamped into [0, total].
func (c *Campaign) AdjustSplit(storesQuantity int) {
	total := c.TotalQuantity()
	if storesQuantity < 0 {
		storesQuantity = 0
	}
	if storesQuantity > total {
		storesQuantity = total
	}
	c.StoresQuantity = storesQuantity
	c.HomeQuantity = total - storesQuantity
}

// SplitBalanced reports whether the split invariant holds.
func (c *Campaign) SplitBalanced() bool {
	if c.DistributionOption != DistributionSplit {
		return true
	}
	return c.StoresQuantity+c.HomeQuantity == c.TotalQuantity()
}
