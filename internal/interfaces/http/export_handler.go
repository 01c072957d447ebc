package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/med-integems/lomemis-dashboard/internal/application/dashboard"
)

// ExportHandler serves the downloads. Exports run through the same effective
// queries as the tables, so a download always matches what the viewer sees.
type ExportHandler struct {
	provider *SessionProvider
}

// NewExportHandler builds the handler.
func NewExportHandler(p *SessionProvider) *ExportHandler {
	return &ExportHandler{provider: p}
}

// InventoryCSV downloads the inventory table as CSV.
// GET /api/dashboard/export/inventory.csv?encoding=utf8|latin1
func (h *ExportHandler) InventoryCSV(c *fiber.Ctx) error {
	s, err := h.provider.Session(c)
	if err != nil {
		return writeError(c, err)
	}
	enc := c.Query("encoding")
	data, filename, err := s.ExportInventoryCSV(c.UserContext(), enc)
	if err != nil {
		return writeError(c, err)
	}
	return sendDownload(c, data, filename, csvContentType(enc))
}

// MovementsCSV downloads the movement ledger as CSV.
// GET /api/dashboard/export/movements.csv?encoding=utf8|latin1
func (h *ExportHandler) MovementsCSV(c *fiber.Ctx) error {
	s, err := h.provider.Session(c)
	if err != nil {
		return writeError(c, err)
	}
	enc := c.Query("encoding")
	data, filename, err := s.ExportMovementsCSV(c.UserContext(), enc)
	if err != nil {
		return writeError(c, err)
	}
	return sendDownload(c, data, filename, csvContentType(enc))
}

// SummaryPDF downloads the KPI summary report.
// GET /api/dashboard/export/summary.pdf
func (h *ExportHandler) SummaryPDF(c *fiber.Ctx) error {
	s, err := h.provider.Session(c)
	if err != nil {
		return writeError(c, err)
	}
	data, filename, err := s.SummaryPDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return sendDownload(c, data, filename, "application/pdf")
}

func csvContentType(enc string) string {
	if enc == dashboard.EncodingLatin1 {
		return "text/csv; charset=iso-8859-1"
	}
	return "text/csv; charset=utf-8"
}

func sendDownload(c *fiber.Ctx, data []byte, filename, contentType string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
