package handlers

import (
	"errors"
	"strconv"

	"ledgerbook/internal/dto"
	"ledgerbook/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TransactionHandler struct {
	transactionService *service.TransactionService
	logger             *zap.Logger
}

func NewTransactionHandler(transactionService *service.TransactionService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		logger:             logger,
	}
}

func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return err
}

// List returns transactions, newest first.
// GET /api/transactions?limit=100&offset=0
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "100"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	resp, err := h.transactionService.List(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Get returns one transaction.
// GET /api/transactions/:id
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid transaction id")
	}

	resp, err := h.transactionService.Get(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}

// Patch applies manual edits: category, note, transaction type.
// PATCH /api/transactions/:id
func (h *TransactionHandler) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid transaction id")
	}

	var req dto.PatchTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	resp, err := h.transactionService.Patch(c.Context(), id, req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}
