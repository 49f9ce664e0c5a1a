package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"ledgerbook/internal/dto"
	"ledgerbook/internal/mapping"
	"ledgerbook/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ImportHandler struct {
	importService *service.ImportService
	maxCSVBytes   int64
	maxPDFBytes   int64
	logger        *zap.Logger
}

func NewImportHandler(importService *service.ImportService, maxCSVBytes, maxPDFBytes int64, logger *zap.Logger) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		maxCSVBytes:   maxCSVBytes,
		maxPDFBytes:   maxPDFBytes,
		logger:        logger,
	}
}

// readUpload pulls the "file" form part, enforcing the size limit before
// the content is buffered.
func readUpload(c *fiber.Ctx, maxBytes int64) (string, []byte, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return "", nil, fiber.NewError(fiber.StatusBadRequest, "file is required")
	}
	if header.Size > maxBytes {
		return "", nil, fiber.NewError(fiber.StatusRequestEntityTooLarge, "file exceeds the upload size limit")
	}

	content, err := readAll(header)
	if err != nil {
		return "", nil, fiber.NewError(fiber.StatusBadRequest, "could not read uploaded file")
	}
	return header.Filename, content, nil
}

func readAll(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func parseMappingForm(c *fiber.Ctx) (mapping.ColumnMapping, error) {
	raw := c.FormValue("mapping")
	if strings.TrimSpace(raw) == "" {
		return mapping.ColumnMapping{}, fiber.NewError(fiber.StatusBadRequest, "mapping form field is required")
	}
	var m mapping.ColumnMapping
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return mapping.ColumnMapping{}, fiber.NewError(fiber.StatusBadRequest, "mapping is not valid JSON: "+err.Error())
	}
	return m, nil
}

// importError maps service failures onto HTTP statuses. Extraction
// failures return 422 with the raw extraction payload so the client can
// fall back to manual mapping.
func (h *ImportHandler) importError(c *fiber.Ctx, err error) error {
	var extErr *service.ExtractionError
	if errors.As(err, &extErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(extErr.Result)
	}
	var colErr *mapping.ColumnError
	if errors.As(err, &colErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": colErr.Error()})
	}
	if errors.Is(err, service.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	h.logger.Error("import failed", zap.Error(err))
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

// Create ingests a CSV through a source-type preset.
// POST /api/imports
func (h *ImportHandler) Create(c *fiber.Ctx) error {
	filename, content, err := readUpload(c, h.maxCSVBytes)
	if err != nil {
		return err
	}
	sourceType := c.FormValue("source_type", "generic")

	resp, err := h.importService.ImportPreset(c.Context(), filename, content, sourceType)
	if err != nil {
		return h.importError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Preview returns headers and sample rows for the mapping wizard.
// POST /api/imports/preview
func (h *ImportHandler) Preview(c *fiber.Ctx) error {
	filename, content, err := readUpload(c, h.maxCSVBytes)
	if err != nil {
		return err
	}

	resp, err := h.importService.Preview(filename, content)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(resp)
}

// CreateWithMapping ingests a CSV with an explicit column mapping.
// POST /api/imports/csv
func (h *ImportHandler) CreateWithMapping(c *fiber.Ctx) error {
	filename, content, err := readUpload(c, h.maxCSVBytes)
	if err != nil {
		return err
	}
	m, err := parseMappingForm(c)
	if err != nil {
		return err
	}

	resp, err := h.importService.ImportWithMapping(c.Context(), filename, content, m)
	if err != nil {
		return h.importError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// CreateFromDocument extracts tables from a PDF or text statement and
// ingests them with an explicit mapping.
// POST /api/imports/pdf
func (h *ImportHandler) CreateFromDocument(c *fiber.Ctx) error {
	filename, content, err := readUpload(c, h.maxPDFBytes)
	if err != nil {
		return err
	}
	m, err := parseMappingForm(c)
	if err != nil {
		return err
	}

	resp, err := h.importService.ImportDocument(c.Context(), filename, content, m)
	if err != nil {
		return h.importError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// CreatePayPal ingests a PayPal activity export. No mapping accepted.
// POST /api/imports/paypal
func (h *ImportHandler) CreatePayPal(c *fiber.Ctx) error {
	filename, content, err := readUpload(c, h.maxCSVBytes)
	if err != nil {
		return err
	}

	resp, err := h.importService.ImportPayPal(c.Context(), filename, content)
	if err != nil {
		return h.importError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List returns every import batch with its row count.
// GET /api/imports
func (h *ImportHandler) List(c *fiber.Ctx) error {
	resp, err := h.importService.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListTransactions returns one batch's transactions.
// GET /api/imports/:id/transactions
func (h *ImportHandler) ListTransactions(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid import id")
	}

	resp, err := h.importService.ListTransactions(c.Context(), id)
	if err != nil {
		return h.importError(c, err)
	}
	return c.JSON(resp)
}

// Patch updates a batch's account metadata.
// PATCH /api/imports/:id
func (h *ImportHandler) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid import id")
	}

	var req dto.PatchImportRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.importService.UpdateAccountMeta(c.Context(), id, req); err != nil {
		return h.importError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
