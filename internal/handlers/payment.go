package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/adbottle/internal/services"
)

// PaymentHandler exposes the checkout endpoints backed by the gateway
// dispatcher.
type PaymentHandler struct {
	service *services.PaymentService
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type checkoutRequest struct {
	Provider string  `json:"provider"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Checkout opens a payment with the requested provider.
func (h *PaymentHandler) Checkout(c *fiber.Ctx) error {
	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.CreateCheckout(req.Provider, req.Amount, req.Currency)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": result})
}

type confirmRequest struct {
	CampaignID string `json:"campaign_id"`
}

// Confirm settles a pending transaction after the gateway callback and
// optionally links it to the campaign it paid for.
func (h *PaymentHandler) Confirm(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req confirmRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var campaignID *uuid.UUID
	if req.CampaignID != "" {
		parsed, err := uuid.Parse(req.CampaignID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid campaign_id")
		}
		campaignID = &parsed
	}

	if err := h.service.MarkPaid(id, campaignID); err != nil {
		return respondServiceError(c, err)
	}

	txn, err := h.service.GetTransaction(id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": txn})
}

// GetTransaction returns one payment transaction.
func (h *PaymentHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	txn, err := h.service.GetTransaction(id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": txn})
}
