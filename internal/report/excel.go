// Package report renders a validation run into a styled xlsx artifact: one
// row per scenario check, one summary row per product that had no catalog
// rules.
package report

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/ykravets/promoaudit/internal/domain"
)

const sheetName = "Results"

var headers = []string{
	"Product", "Price", "Product Status", "Scenario", "Quantity",
	"Amount Without Discount", "Amount With Discount", "Expected Discount",
	"Actual Discount", "Difference", "Result", "Error",
}

// columnWidths maps column letters to display widths.
var columnWidths = map[string]float64{
	"A": 15, "B": 10, "C": 20, "D": 15, "E": 12, "F": 18,
	"G": 18, "H": 18, "I": 22, "J": 15, "K": 12, "L": 30,
}

// statusColors holds fill/font color pairs per check result for the visual
// status bands.
var statusColors = map[domain.CheckStatus][2]string{
	domain.StatusOK:    {"C6EFCE", "006100"},
	domain.StatusFail:  {"FFC7CE", "9C0006"},
	domain.StatusError: {"FFEB9C", "9C6500"},
}

// Writer renders product reports to disk.
type Writer struct {
	logger *slog.Logger
}

// NewWriter creates a report Writer.
func NewWriter(logger *slog.Logger) *Writer {
	return &Writer{logger: logger.With(slog.String("component", "report"))}
}

// Write renders the reports to an xlsx file at path.
func (w *Writer) Write(path string, summary domain.RunSummary, reports []domain.ProductReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("report: rename sheet: %w", err)
	}

	for col, width := range columnWidths {
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return fmt.Errorf("report: set column width: %w", err)
		}
	}

	if err := w.writeHeader(f); err != nil {
		return err
	}

	statusStyles, err := buildStatusStyles(f)
	if err != nil {
		return err
	}

	rowNum := 2
	for _, r := range reports {
		for _, row := range productRows(r) {
			cellRef, err := excelize.CoordinatesToCellName(1, rowNum)
			if err != nil {
				return fmt.Errorf("report: cell name: %w", err)
			}
			if err := f.SetSheetRow(sheetName, cellRef, &row.cells); err != nil {
				return fmt.Errorf("report: write row %d: %w", rowNum, err)
			}
			if styleID, ok := statusStyles[row.status]; ok {
				resultCell, err := excelize.CoordinatesToCellName(11, rowNum)
				if err != nil {
					return fmt.Errorf("report: cell name: %w", err)
				}
				if err := f.SetCellStyle(sheetName, resultCell, resultCell, styleID); err != nil {
					return fmt.Errorf("report: style row %d: %w", rowNum, err)
				}
			}
			rowNum++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report: save %s: %w", path, err)
	}

	w.logger.Info("report written",
		slog.String("file", path),
		slog.String("run_id", summary.RunID),
		slog.Int("rows", rowNum-2),
	)
	return nil
}

func (w *Writer) writeHeader(f *excelize.File) error {
	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &row); err != nil {
		return fmt.Errorf("report: write header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"366092"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("report: header style: %w", err)
	}

	lastCell, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return fmt.Errorf("report: cell name: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", lastCell, headerStyle); err != nil {
		return fmt.Errorf("report: style header: %w", err)
	}
	return nil
}

func buildStatusStyles(f *excelize.File) (map[domain.CheckStatus]int, error) {
	styles := make(map[domain.CheckStatus]int, len(statusColors))
	for status, colors := range statusColors {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{colors[0]}, Pattern: 1},
			Font: &excelize.Font{Color: colors[1]},
		})
		if err != nil {
			return nil, fmt.Errorf("report: status style %s: %w", status, err)
		}
		styles[status] = id
	}
	return styles, nil
}

// reportRow is one rendered spreadsheet row plus the status driving its
// color band.
type reportRow struct {
	cells  []any
	status domain.CheckStatus
}

// productRows flattens one product report: a single summary row for products
// without catalog rules, otherwise one row per check.
func productRows(r domain.ProductReport) []reportRow {
	if r.Status == domain.ProductNoCatalogRules {
		return []reportRow{{
			cells: []any{r.ProductID, r.Price, string(r.Status), "", "", "", "", "", "", "", "", ""},
		}}
	}

	rows := make([]reportRow, 0, len(r.Checks))
	for _, c := range r.Checks {
		rows = append(rows, reportRow{
			cells: []any{
				r.ProductID,
				r.Price,
				string(r.Status),
				string(c.Scenario),
				c.Quantity,
				c.PriceNoDiscount,
				c.PriceWithDiscount,
				c.ExpectedDiscount,
				c.ActualDiscount,
				c.Difference,
				string(c.Status),
				c.Error,
			},
			status: c.Status,
		})
	}
	return rows
}
