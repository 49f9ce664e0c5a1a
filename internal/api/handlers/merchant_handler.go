package handlers

import (
	"ledgerbook/internal/dto"
	"ledgerbook/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type MerchantHandler struct {
	merchantService *service.MerchantService
	canonicalizer   *service.CanonicalizerService
	logger          *zap.Logger
}

func NewMerchantHandler(merchantService *service.MerchantService, canonicalizer *service.CanonicalizerService, logger *zap.Logger) *MerchantHandler {
	return &MerchantHandler{
		merchantService: merchantService,
		canonicalizer:   canonicalizer,
		logger:          logger,
	}
}

// POST /api/merchants/aliases
func (h *MerchantHandler) Create(c *fiber.Ctx) error {
	var req dto.MerchantAliasRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	resp, err := h.merchantService.Create(c.Context(), req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GET /api/merchants/aliases
func (h *MerchantHandler) List(c *fiber.Ctx) error {
	resp, err := h.merchantService.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// PUT /api/merchants/aliases/:id
func (h *MerchantHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.MerchantAliasRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	resp, err := h.merchantService.Update(c.Context(), id, req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}

// DELETE /api/merchants/aliases/:id
func (h *MerchantHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.merchantService.Delete(c.Context(), id); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Rebuild recomputes merchant_canonical for every transaction. Run after
// alias edits.
// POST /api/merchants/rebuild
func (h *MerchantHandler) Rebuild(c *fiber.Ctx) error {
	resp, err := h.canonicalizer.RebuildAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
