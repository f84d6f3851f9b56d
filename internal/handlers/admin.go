package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/adbottle/internal/models"
	"github.com/example/adbottle/internal/services"
	"github.com/example/adbottle/internal/utils"
)

// AdminHandler manages the review pipeline and admin-only settings.
type AdminHandler struct {
	db      *gorm.DB
	service *services.CampaignService
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(db *gorm.DB, service *services.CampaignService) *AdminHandler {
	return &AdminHandler{db: db, service: service}
}

// DashboardStats returns aggregate statistics for the admin dashboard.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	var totalUsers int64
	if err := h.db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		return err
	}

	var totalCampaigns int64
	if err := h.db.Model(&models.Campaign{}).Count(&totalCampaigns).Error; err != nil {
		return err
	}

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var statusCounts []statusCount
	if err := h.db.Model(&models.Campaign{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return err
	}

	campaignsByStatus := make(map[string]int64)
	for _, sc := range statusCounts {
		campaignsByStatus[sc.Status] = sc.Count
	}

	var awaitingReupload int64
	if err := h.db.Model(&models.Campaign{}).
		Where("reupload_required = ?", true).
		Count(&awaitingReupload).Error; err != nil {
		return err
	}

	// Revenue counts only paid, non-rejected campaigns.
	var totalRevenue float64
	if err := h.db.Model(&models.Campaign{}).
		Where("payment_status = ? AND status != ?", models.PaymentStatusPaid, models.StatusRejected).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return err
	}

	var todayRevenue float64
	if err := h.db.Model(&models.Campaign{}).
		Where("payment_status = ? AND status != ? AND submitted_at::date = CURRENT_DATE",
			models.PaymentStatusPaid, models.StatusRejected).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&todayRevenue).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_users":         totalUsers,
			"total_campaigns":     totalCampaigns,
			"total_revenue":       totalRevenue,
			"today_revenue":       todayRevenue,
			"campaigns_by_status": campaignsByStatus,
			"awaiting_reupload":   awaitingReupload,
		},
	})
}

// ListAllCampaigns returns campaigns with pagination, filtering, and user
// info. With queue=approval only pending campaigns not awaiting a design
// reupload are returned, i.e. the ones ready for review.
func (h *AdminHandler) ListAllCampaigns(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Campaign{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if c.Query("queue") == "approval" {
		query = query.Where("status = ? AND reupload_required = ?", models.StatusPending, false)
	}

	if search := c.Query("search"); search != "" {
		query = query.Where(
			"campaign_id ILIKE ? OR customer_name ILIKE ? OR customer_email ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%",
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var campaigns []models.Campaign
	if err := query.Preload("User").
		Order("submitted_at desc").
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

type updateStatusRequest struct {
	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason"`
	AdminNotes      string `json:"admin_notes"`
}

// UpdateStatus applies one admin-triggered lifecycle transition.
func (h *AdminHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	campaign, err := h.service.Transition(id, req.Status, req.RejectionReason, req.AdminNotes)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": campaign})
}

type reuploadRequest struct {
	DesignFeedback        string `json:"design_feedback"`
	DesignRejectionReason string `json:"design_rejection_reason"`
}

// RequestReupload sends only the design back for correction, leaving the
// order itself alive.
func (h *AdminHandler) RequestReupload(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req reuploadRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	campaign, err := h.service.RequestReupload(id, req.DesignFeedback, req.DesignRejectionReason)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": campaign})
}

// ListPriceSettings returns the per-size unit prices.
func (h *AdminHandler) ListPriceSettings(c *fiber.Ctx) error {
	var settings []models.PriceSetting
	if err := h.db.Order("bottle_type").Find(&settings).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": settings})
}

type priceSettingRequest struct {
	BottleType string `json:"bottle_type"`
	UnitPrice  int64  `json:"unit_price"`
	IsActive   *bool  `json:"is_active"`
}

// UpsertPriceSetting creates or updates the unit price for one bottle size.
func (h *AdminHandler) UpsertPriceSetting(c *fiber.Ctx) error {
	var req priceSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.BottleType == "" {
		return respondServiceError(c, services.ValidationError("bottle_type", "bottle type is required"))
	}
	if req.UnitPrice <= 0 {
		return respondServiceError(c, services.ValidationError("unit_price", "unit price must be positive"))
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	var setting models.PriceSetting
	err := h.db.Where("bottle_type = ?", req.BottleType).First(&setting).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		setting = models.PriceSetting{
			BottleType: req.BottleType,
			UnitPrice:  req.UnitPrice,
			IsActive:   active,
		}
		if err := h.db.Create(&setting).Error; err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		setting.UnitPrice = req.UnitPrice
		setting.IsActive = active
		if err := h.db.Save(&setting).Error; err != nil {
			return err
		}
	}

	return c.JSON(fiber.Map{"success": true, "data": setting})
}

// ListNotifications returns dispatch attempts, optionally filtered by
// status, so failed sends can be found and redelivered.
func (h *AdminHandler) ListNotifications(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.NotificationLog{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var logs []models.NotificationLog
	if err := query.Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&logs).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    logs,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}
