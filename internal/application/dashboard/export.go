package dashboard

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/med-integems/lomemis-dashboard/internal/application/dto"
	"github.com/med-integems/lomemis-dashboard/internal/domain"
	"github.com/med-integems/lomemis-dashboard/internal/domain/filter"
)

// exportLimit caps how many records one CSV download may carry. The cap is
// applied at fetch time (single call, first page) so an oversized result set
// never reaches the encoder.
const exportLimit = 5000

// CSV encodings offered on the export endpoints. Latin-1 exists for legacy
// spreadsheet tools that mangle UTF-8; the default path carries a BOM so
// Excel detects UTF-8.
const (
	EncodingUTF8   = "utf8"
	EncodingLatin1 = "latin1"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var inventoryCSVHeader = []string{
	"Item Code", "Item Name", "Category", "Council",
	"Quantity On Hand", "Minimum Level", "Stock Status", "Total Value", "Last Updated",
}

var movementCSVHeader = []string{
	"Date", "Item Code", "Item Name", "Type", "Reference Type", "Reference ID",
	"Quantity", "Balance After", "Total Value", "Recorded By",
}

// ExportInventoryCSV builds the inventory CSV through the same effective
// query the table uses, so the download always matches what the viewer sees.
// Failures wrap ErrExportFailed and leave the session untouched; the export
// is retryable on its own.
func (s *Session) ExportInventoryCSV(ctx context.Context, enc string) ([]byte, string, error) {
	if err := validEncoding(enc); err != nil {
		return nil, "", err
	}

	s.mu.Lock()
	q := filter.EffectiveInventoryQuery(s.invCriteria, s.selection)
	s.mu.Unlock()

	records, _, err := s.api.CouncilInventory(ctx, q, 1, exportLimit)
	if err != nil {
		return nil, "", fmt.Errorf("%w: inventory fetch: %w", domain.ErrExportFailed, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(inventoryCSVHeader)
	for _, r := range records {
		_ = w.Write([]string{
			r.ItemCode,
			r.ItemName,
			r.Category,
			r.CouncilName,
			strconv.FormatInt(r.QuantityOnHand, 10),
			strconv.FormatInt(r.MinimumStockLevel, 10),
			r.StockStatus(),
			r.TotalValue.StringFixed(2),
			r.LastUpdated.Format("2006-01-02 15:04"),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("%w: csv encode: %w", domain.ErrExportFailed, err)
	}

	data, err := encodeCSV(buf.Bytes(), enc)
	if err != nil {
		return nil, "", err
	}
	return data, exportFilename("council-inventory", "csv", s), nil
}

// ExportMovementsCSV builds the ledger CSV through the effective movement
// query, same contract as ExportInventoryCSV.
func (s *Session) ExportMovementsCSV(ctx context.Context, enc string) ([]byte, string, error) {
	if err := validEncoding(enc); err != nil {
		return nil, "", err
	}

	s.mu.Lock()
	q := filter.EffectiveMovementQuery(s.movCriteria, s.selection)
	s.mu.Unlock()

	movements, _, err := s.api.CouncilStockMovements(ctx, q, 1, exportLimit)
	if err != nil {
		return nil, "", fmt.Errorf("%w: movement fetch: %w", domain.ErrExportFailed, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(movementCSVHeader)
	for _, m := range movements {
		refID := ""
		if m.ReferenceID != 0 {
			refID = strconv.FormatInt(m.ReferenceID, 10)
		}
		_ = w.Write([]string{
			m.TransactionDate.Format("2006-01-02"),
			m.ItemCode,
			m.ItemName,
			m.TransactionType,
			m.ReferenceType,
			refID,
			strconv.FormatInt(m.Quantity, 10),
			strconv.FormatInt(m.BalanceAfter, 10),
			m.TotalValue.StringFixed(2),
			m.CreatedBy,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("%w: csv encode: %w", domain.ErrExportFailed, err)
	}

	data, err := encodeCSV(buf.Bytes(), enc)
	if err != nil {
		return nil, "", err
	}
	return data, exportFilename("stock-movements", "csv", s), nil
}

// SummaryPDF renders the current KPI snapshot as a downloadable report.
func (s *Session) SummaryPDF(ctx context.Context) ([]byte, string, error) {
	if s.pdf == nil {
		return nil, "", fmt.Errorf("%w: summary renderer not configured", domain.ErrExportFailed)
	}

	kpi, err := s.KPIs()
	if err != nil {
		// No snapshot to print: try once more through the current scope.
		if kpi, err = s.RefreshKPIs(ctx); err != nil {
			return nil, "", fmt.Errorf("%w: kpis: %w", domain.ErrExportFailed, err)
		}
	}

	s.mu.Lock()
	viewer := dto.FromUser(s.user)
	generatedAt := s.now().Format("2006-01-02 15:04")
	s.mu.Unlock()

	data, err := s.pdf.RenderSummary(SummaryReport{
		Viewer:      viewer,
		KPIs:        kpi,
		GeneratedAt: generatedAt,
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: render: %w", domain.ErrExportFailed, err)
	}
	return data, exportFilename("dashboard-summary", "pdf", s), nil
}

func validEncoding(enc string) error {
	switch enc {
	case "", EncodingUTF8, EncodingLatin1:
		return nil
	default:
		return fmt.Errorf("export: %w: unsupported encoding %q", domain.ErrInvalidInput, enc)
	}
}

// encodeCSV finalizes the byte encoding: UTF-8 plus BOM by default, or a
// Latin-1 transcode with unmappable runes replaced.
func encodeCSV(data []byte, enc string) ([]byte, error) {
	if enc != EncodingLatin1 {
		return append(append(make([]byte, 0, len(utf8BOM)+len(data)), utf8BOM...), data...), nil
	}
	encoder := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())
	out, _, err := transform.Bytes(encoder, data)
	if err != nil {
		return nil, fmt.Errorf("%w: latin1 encode: %w", domain.ErrExportFailed, err)
	}
	return out, nil
}

// exportFilename stamps downloads with the day and a short unique suffix so
// repeated exports never collide in the browser's download folder.
func exportFilename(stem, ext string, s *Session) string {
	return fmt.Sprintf("%s-%s-%s.%s", stem, s.now().Format("20060102"), uuid.NewString()[:8], ext)
}
