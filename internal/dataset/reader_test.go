package dataset

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ykravets/promoaudit/internal/domain"
)

// writeFixture builds an xlsx file with the fixed production column layout.
func writeFixture(t *testing.T, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}

	path := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

// fixtureRow lays out one data row: product id in C, price in I, thresholds
// in K, L, P, Q.
func fixtureRow(id any, price, k, l, p, q any) []any {
	row := make([]any, 17)
	row[colProductID] = id
	row[colPrice] = price
	row[colK] = k
	row[colL] = l
	row[colP] = p
	row[colQ] = q
	return row
}

func header() []any {
	return fixtureRow("article", "price", "k", "l", "p", "q")
}

func TestReadParsesRows(t *testing.T) {
	path := writeFixture(t, [][]any{
		header(),
		fixtureRow("ABC123", 100.5, 10, 5, 50, 20),
		fixtureRow("XYZ", 7, 1, 0.5, 3, 1.5),
	})

	params, err := NewReader(path, slog.New(slog.NewTextHandler(io.Discard, nil))).Read()
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, domain.PricingParameters{
		ProductID: "ABC123", Price: 100.5, K: 10, L: 5, P: 50, Q: 20,
	}, params[0])
	assert.Equal(t, "XYZ", params[1].ProductID)
}

func TestReadSkipsRowsWithoutProductID(t *testing.T) {
	path := writeFixture(t, [][]any{
		header(),
		fixtureRow("", 100, 10, 5, 50, 20),
		fixtureRow("P2", 100, 10, 5, 50, 20),
	})

	params, err := NewReader(path, slog.New(slog.NewTextHandler(io.Discard, nil))).Read()
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, "P2", params[0].ProductID)
}

func TestReadSkipsMalformedRowsWithoutAborting(t *testing.T) {
	path := writeFixture(t, [][]any{
		header(),
		fixtureRow("BAD", "not-a-price", 10, 5, 50, 20),
		fixtureRow("GOOD", 100, 10, 5, 50, 20),
	})

	params, err := NewReader(path, slog.New(slog.NewTextHandler(io.Discard, nil))).Read()
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, "GOOD", params[0].ProductID)
}

func TestReadMissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "missing.xlsx"), slog.New(slog.NewTextHandler(io.Discard, nil))).Read()
	assert.Error(t, err)
}
