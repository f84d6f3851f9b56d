package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/example/adbottle/internal/config"
	"github.com/example/adbottle/internal/middleware"
	"github.com/example/adbottle/internal/models"
	"github.com/example/adbottle/internal/services"
	"github.com/example/adbottle/internal/utils"
)

// CampaignHandler manages customer-facing campaign endpoints.
type CampaignHandler struct {
	db       *gorm.DB
	cfg      *config.Config
	service  *services.CampaignService
	receipts *services.ReceiptService
}

// NewCampaignHandler constructs CampaignHandler.
func NewCampaignHandler(db *gorm.DB, cfg *config.Config, service *services.CampaignService, receipts *services.ReceiptService) *CampaignHandler {
	return &CampaignHandler{db: db, cfg: cfg, service: service, receipts: receipts}
}

// respondServiceError maps the service error taxonomy onto HTTP responses.
func respondServiceError(c *fiber.Ctx, err error) error {
	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		return err
	}

	status := fiber.StatusInternalServerError
	switch svcErr.Kind {
	case services.ErrValidation:
		status = fiber.StatusBadRequest
	case services.ErrStateConflict:
		status = fiber.StatusConflict
	case services.ErrNotFound:
		status = fiber.StatusNotFound
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error": fiber.Map{
			"kind":    svcErr.Kind,
			"field":   svcErr.Field,
			"message": svcErr.Message,
		},
	})
}

type createCampaignRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code"`
	CompanyName   string `json:"company_name"`

	BottleType      string         `json:"bottle_type"`
	Quantity        int            `json:"quantity"`
	BottleBreakdown map[string]int `json:"bottle_breakdown"`

	DistributionOption string `json:"distribution_option"`
	TargetCity         string `json:"target_city"`
	TargetArea         string `json:"target_area"`
	DeliveryAddress    string `json:"delivery_address"`
	StoresQuantity     int    `json:"stores_quantity"`

	GalleryDesignID string `json:"gallery_design_id"`
	DesignFileName  string `json:"design_file_name"`
	DesignFileURL   string `json:"design_file_url"`

	PaymentMethod string `json:"payment_method"`
	PaymentStatus string `json:"payment_status"`
	TransactionID string `json:"transaction_id"`
}

// selection resolves the single-vs-mixed choice and rejects having both or
// neither.
func (r *createCampaignRequest) selection() (map[string]int, bool, error) {
	single := r.BottleType != "" || r.Quantity != 0
	mixed := len(r.BottleBreakdown) > 0

	switch {
	case single && mixed:
		return nil, false, services.ValidationError("bottle_breakdown", "choose either a single bottle size or a mixed breakdown, not both")
	case mixed:
		return r.BottleBreakdown, true, nil
	case single:
		if r.BottleType == "" {
			return nil, false, services.ValidationError("bottle_type", "bottle type is required")
		}
		return map[string]int{r.BottleType: r.Quantity}, false, nil
	default:
		return nil, false, services.ValidationError("bottle_type", "a bottle selection is required")
	}
}

func (r *createCampaignRequest) validateDistribution(mixed bool) error {
	switch r.DistributionOption {
	case models.DistributionInStores:
		if r.TargetCity == "" || r.TargetArea == "" {
			return services.ValidationError("target_city", "in-store distribution requires a target city and area")
		}
	case models.DistributionAtYourLocation:
		if r.DeliveryAddress == "" {
			return services.ValidationError("delivery_address", "direct delivery requires a delivery address")
		}
	case models.DistributionSplit:
		if mixed {
			return services.ValidationError("distribution_option", "split distribution is only available for single-size campaigns")
		}
		if r.TargetCity == "" || r.TargetArea == "" {
			return services.ValidationError("target_city", "split distribution requires a target city and area")
		}
		if r.DeliveryAddress == "" {
			return services.ValidationError("delivery_address", "split distribution requires a delivery address")
		}
	default:
		return services.ValidationError("distribution_option", "unknown distribution option")
	}
	return nil
}

// CreateCampaign accepts a customer submission. Payment is settled before
// this point; the request carries the resulting status and transaction id.
// The price is always recomputed server-side from the current policy.
func (h *CampaignHandler) CreateCampaign(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.CustomerName == "" {
		return respondServiceError(c, services.ValidationError("customer_name", "customer name is required"))
	}
	if req.CustomerEmail == "" && req.CustomerPhone == "" {
		return respondServiceError(c, services.ValidationError("customer_email", "an email address or phone number is required"))
	}

	sel, mixed, err := req.selection()
	if err != nil {
		return respondServiceError(c, err)
	}

	policy := h.service.LoadPolicy()
	quote, err := policy.Quote(sel)
	if err != nil {
		return respondServiceError(c, services.ValidationError("bottle_type", err.Error()))
	}
	if err := policy.ValidateQuantity(quote.TotalQuantity); err != nil {
		return respondServiceError(c, services.ValidationError("quantity", err.Error()))
	}

	if err := req.validateDistribution(mixed); err != nil {
		return respondServiceError(c, err)
	}

	hasGallery := req.GalleryDesignID != ""
	hasUpload := req.DesignFileURL != ""
	if hasGallery == hasUpload {
		return respondServiceError(c, services.ValidationError("design", "exactly one of gallery design or uploaded file is required"))
	}

	switch req.PaymentStatus {
	case models.PaymentStatusPending, models.PaymentStatusPaid, models.PaymentStatusFailed:
	default:
		return respondServiceError(c, services.ValidationError("payment_status", "unknown payment status"))
	}

	campaign := models.Campaign{
		UserID:     userID,
		CampaignID: generateCampaignID(),

		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		PostalCode:    req.PostalCode,
		CompanyName:   req.CompanyName,

		Quantity:  quote.TotalQuantity,
		PackCount: quote.PackCount,

		DistributionOption: req.DistributionOption,
		TargetCity:         req.TargetCity,
		TargetArea:         req.TargetArea,
		DeliveryAddress:    req.DeliveryAddress,

		TotalAmount:   quote.TotalAmount,
		Currency:      "INR",
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: req.PaymentStatus,
		TransactionID: req.TransactionID,

		Status:      models.StatusPending,
		SubmittedAt: time.Now(),
	}

	if mixed {
		breakdown, err := json.Marshal(req.BottleBreakdown)
		if err != nil {
			return err
		}
		campaign.BottleBreakdown = datatypes.JSON(breakdown)
	} else {
		campaign.BottleType = req.BottleType
	}

	if req.DistributionOption == models.DistributionSplit {
		campaign.AdjustSplit(req.StoresQuantity)
	}

	if hasGallery {
		galleryID, err := uuid.Parse(req.GalleryDesignID)
		if err != nil {
			return respondServiceError(c, services.ValidationError("gallery_design_id", "invalid gallery design id"))
		}
		var design models.GalleryDesign
		if err := h.db.First(&design, "id = ? AND is_active = ?", galleryID, true).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return respondServiceError(c, services.NotFoundError("gallery design not found"))
			}
			return err
		}
		campaign.DesignType = models.DesignTypeGallery
		campaign.GalleryDesignID = &design.ID
		campaign.GalleryTitle = design.Title
	} else {
		campaign.DesignType = models.DesignTypeUpload
		campaign.DesignFileName = req.DesignFileName
		campaign.DesignFileURL = req.DesignFileURL
	}

	if err := h.db.Create(&campaign).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":           campaign.ID,
			"campaign_id":  campaign.CampaignID,
			"status":       campaign.Status,
			"submitted_at": campaign.SubmittedAt,
			"total_amount": campaign.TotalAmount,
			"pack_count":   campaign.PackCount,
			"currency":     campaign.Currency,
		},
	})
}

type quoteRequest struct {
	BottleType      string         `json:"bottle_type"`
	Quantity        int            `json:"quantity"`
	BottleBreakdown map[string]int `json:"bottle_breakdown"`
}

// QuoteCampaign prices a selection without creating anything, for the
// storefront's live price preview.
func (h *CampaignHandler) QuoteCampaign(c *fiber.Ctx) error {
	var req quoteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	wrapped := createCampaignRequest{
		BottleType:      req.BottleType,
		Quantity:        req.Quantity,
		BottleBreakdown: req.BottleBreakdown,
	}
	sel, _, err := wrapped.selection()
	if err != nil {
		return respondServiceError(c, err)
	}

	policy := h.service.LoadPolicy()
	quote, err := policy.Quote(sel)
	if err != nil {
		return respondServiceError(c, services.ValidationError("bottle_type", err.Error()))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_quantity":   quote.TotalQuantity,
			"total_amount":     quote.TotalAmount,
			"pack_count":       quote.PackCount,
			"minimum_quantity": policy.MinimumQuantity,
			"meets_minimum":    quote.TotalQuantity >= policy.MinimumQuantity,
		},
	})
}

// ListCampaigns returns campaigns for the authenticated user.
func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	pg := utils.ParsePagination(c)
	query := h.db.Where("user_id = ?", userID).Model(&models.Campaign{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var campaigns []models.Campaign
	if err := query.Order("submitted_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&campaigns).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    campaigns,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetCampaign returns a single campaign for the authenticated user.
func (h *CampaignHandler) GetCampaign(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var campaign models.Campaign
	if err := h.db.First(&campaign, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "campaign not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": campaign})
}

// TrackCampaign exposes the public status view keyed by the opaque campaign
// token, for customers following the QR link on their receipt.
func (h *CampaignHandler) TrackCampaign(c *fiber.Ctx) error {
	token := c.Params("campaignId")

	var campaign models.Campaign
	if err := h.db.First(&campaign, "campaign_id = ?", token).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "campaign not found")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"campaign_id":           campaign.CampaignID,
			"status":                campaign.Status,
			"reupload_required":     campaign.ReuploadRequired,
			"design_feedback":       campaign.DesignFeedback,
			"submitted_at":          campaign.SubmittedAt,
			"approved_at":           campaign.ApprovedAt,
			"production_started_at": campaign.ProductionStartedAt,
			"dispatched_at":         campaign.DispatchedAt,
			"completed_at":          campaign.CompletedAt,
		},
	})
}

// ResubmitDesign completes the reupload loop: the customer uploads a
// corrected artwork file for a campaign flagged by the admin.
func (h *CampaignHandler) ResubmitDesign(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	file, err := c.FormFile("design")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "a design file is required")
	}

	stored := fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(file.Filename))
	if err := c.SaveFile(file, filepath.Join(h.cfg.UploadDir, stored)); err != nil {
		return err
	}

	campaign, err := h.service.SubmitNewDesign(id, userID, services.DesignReference{
		FileName: file.Filename,
		FileURL:  fmt.Sprintf("%s/uploads/%s", h.cfg.BaseURL, stored),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": campaign})
}

// Receipt streams the campaign receipt PDF.
func (h *CampaignHandler) Receipt(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var campaign models.Campaign
	if err := h.db.First(&campaign, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "campaign not found")
		}
		return err
	}

	pdf, err := h.receipts.GenerateReceiptPDF(&campaign)
	if err != nil {
		return err
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s-receipt.pdf", campaign.CampaignID))
	return c.Send(pdf)
}

func generateCampaignID() string {
	return fmt.Sprintf("CMP-%d", time.Now().UnixNano()%1000000000000)
}
