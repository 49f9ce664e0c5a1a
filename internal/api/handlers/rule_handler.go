package handlers

import (
	"strconv"

	"ledgerbook/internal/dto"
	"ledgerbook/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type RuleHandler struct {
	ruleService *service.RuleService
	categorizer *service.CategorizerService
	logger      *zap.Logger
}

func NewRuleHandler(ruleService *service.RuleService, categorizer *service.CategorizerService, logger *zap.Logger) *RuleHandler {
	return &RuleHandler{
		ruleService: ruleService,
		categorizer: categorizer,
		logger:      logger,
	}
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// Create adds a categorization rule.
// POST /api/rules
func (h *RuleHandler) Create(c *fiber.Ctx) error {
	var req dto.RuleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	resp, err := h.ruleService.Create(c.Context(), req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List returns every rule in evaluation order.
// GET /api/rules
func (h *RuleHandler) List(c *fiber.Ctx) error {
	resp, err := h.ruleService.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Update replaces a rule's fields.
// PUT /api/rules/:id
func (h *RuleHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.RuleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	resp, err := h.ruleService.Update(c.Context(), id, req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}

// Delete removes a rule. Transactions it categorized keep their category
// but lose the rule reference.
// DELETE /api/rules/:id
func (h *RuleHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.ruleService.Delete(c.Context(), id); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Apply recategorizes every transaction against the active rule set.
// POST /api/rules/apply
func (h *RuleHandler) Apply(c *fiber.Ctx) error {
	resp, err := h.categorizer.ApplyToAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
