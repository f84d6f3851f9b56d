package handlers

import (
	"fmt"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/adbottle/internal/config"
	"github.com/example/adbottle/internal/models"
)

// GalleryHandler manages the pre-made design gallery and artwork uploads.
type GalleryHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewGalleryHandler constructs GalleryHandler.
func NewGalleryHandler(db *gorm.DB, cfg *config.Config) *GalleryHandler {
	return &GalleryHandler{db: db, cfg: cfg}
}

// ListDesigns returns active gallery designs for the storefront.
func (h *GalleryHandler) ListDesigns(c *fiber.Ctx) error {
	query := h.db.Where("is_active = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var designs []models.GalleryDesign
	if err := query.Order("created_at desc").Find(&designs).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": designs})
}

type galleryDesignRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
	IsActive    *bool  `json:"is_active"`
}

// CreateDesign adds a gallery design.
func (h *GalleryHandler) CreateDesign(c *fiber.Ctx) error {
	var req galleryDesignRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Title == "" || req.ImageURL == "" {
		return fiber.NewError(fiber.StatusBadRequest, "title and image_url are required")
	}

	design := models.GalleryDesign{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		IsActive:    true,
	}
	if req.IsActive != nil {
		design.IsActive = *req.IsActive
	}

	if err := h.db.Create(&design).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": design})
}

// UpdateDesign modifies a gallery design.
func (h *GalleryHandler) UpdateDesign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var design models.GalleryDesign
	if err := h.db.First(&design, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "design not found")
		}
		return err
	}

	var req galleryDesignRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Title != "" {
		design.Title = req.Title
	}
	if req.Description != "" {
		design.Description = req.Description
	}
	if req.ImageURL != "" {
		design.ImageURL = req.ImageURL
	}
	if req.Category != "" {
		design.Category = req.Category
	}
	if req.IsActive != nil {
		design.IsActive = *req.IsActive
	}

	if err := h.db.Save(&design).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": design})
}

// DeleteDesign removes a gallery design.
func (h *GalleryHandler) DeleteDesign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.GalleryDesign{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true})
}

// UploadDesign stores a customer artwork file and returns the stable URL the
// campaign submission references.
func (h *GalleryHandler) UploadDesign(c *fiber.Ctx) error {
	file, err := c.FormFile("design")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "a design file is required")
	}

	stored := fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(file.Filename))
	if err := c.SaveFile(file, filepath.Join(h.cfg.UploadDir, stored)); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"file_name": file.Filename,
			"file_url":  fmt.Sprintf("%s/uploads/%s", h.cfg.BaseURL, stored),
		},
	})
}
