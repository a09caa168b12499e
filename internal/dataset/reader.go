// Package dataset parses the input spreadsheet into pricing parameters, one
// per product row.
package dataset

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ykravets/promoaudit/internal/domain"
)

// Zero-based column indices of the fields in the source spreadsheet. The
// sheet layout is fixed: product id in column C, unit price in I, and the
// four thresholds in K, L, P and Q.
const (
	colProductID = 2  // C
	colPrice     = 8  // I
	colK         = 10 // K
	colL         = 11 // L
	colP         = 15 // P
	colQ         = 16 // Q
)

// Reader parses one xlsx file.
type Reader struct {
	path   string
	logger *slog.Logger
}

// NewReader creates a Reader for the given file path.
func NewReader(path string, logger *slog.Logger) *Reader {
	return &Reader{
		path:   path,
		logger: logger.With(slog.String("component", "dataset")),
	}
}

// Read parses the first sheet. The first row is treated as a header. Rows
// with an empty product id are skipped silently; rows with non-numeric cells
// are logged and skipped. Only a file-level failure returns an error.
func (r *Reader) Read() ([]domain.PricingParameters, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", r.path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("dataset: %s has no sheets", r.path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("dataset: read sheet %s: %w", sheets[0], err)
	}

	var params []domain.PricingParameters
	for i, row := range rows {
		if i == 0 {
			continue // header
		}

		productID := strings.TrimSpace(cell(row, colProductID))
		if productID == "" {
			continue
		}

		p, err := parseRow(productID, row)
		if err != nil {
			r.logger.Warn("skipping row",
				slog.Int("row", i+1),
				slog.String("error", err.Error()),
			)
			continue
		}
		params = append(params, p)
	}

	r.logger.Info("dataset loaded",
		slog.String("file", r.path),
		slog.Int("products", len(params)),
	)
	return params, nil
}

func parseRow(productID string, row []string) (domain.PricingParameters, error) {
	p := domain.PricingParameters{ProductID: productID}

	for _, field := range []struct {
		name string
		col  int
		dst  *float64
	}{
		{"price", colPrice, &p.Price},
		{"k", colK, &p.K},
		{"l", colL, &p.L},
		{"p", colP, &p.P},
		{"q", colQ, &p.Q},
	} {
		value, err := strconv.ParseFloat(strings.TrimSpace(cell(row, field.col)), 64)
		if err != nil {
			return domain.PricingParameters{}, fmt.Errorf("column %s: %w", field.name, err)
		}
		*field.dst = value
	}

	return p, nil
}

// cell returns the value at idx, or "" when the row is shorter. excelize
// trims trailing empty cells from rows.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}
