// Package holdings implements the per-period dataset source. Datasets are
// spreadsheets laid out one file per customer per month under
// <dataDir>/<period>/customer_<id>.xlsx with a fixed header row.
package holdings

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"assay/internal/assessment/ports"
	"assay/pkg/domain"
	"assay/pkg/platform/sentinel"
)

// expectedHeader is the required first row of every holdings sheet.
var expectedHeader = []string{"fund", "asset_class", "units", "value"}

// Reader loads holdings summaries from spreadsheet files.
type Reader struct {
	dataDir string
}

// NewReader constructs a reader rooted at dataDir.
func NewReader(dataDir string) (*Reader, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	return &Reader{dataDir: dataDir}, nil
}

var _ ports.HoldingsSource = (*Reader)(nil)

// FetchHoldings reads and summarizes one customer-period dataset.
func (r *Reader) FetchHoldings(ctx context.Context, customerID domain.CustomerID, period domain.Period) (*ports.HoldingsSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetch holdings: %w", sentinel.ErrUnavailable)
	}

	path := r.datasetPath(customerID, period)
	file, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("holdings for %s in %s: %w", customerID, period, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("open holdings %s: %v: %w", path, err, sentinel.ErrMalformed)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("holdings %s has no sheets: %w", path, sentinel.ErrMalformed)
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read holdings %s: %v: %w", path, err, sentinel.ErrMalformed)
	}
	if len(rows) == 0 || !headerMatches(rows[0]) {
		return nil, fmt.Errorf("holdings %s: header must be %v: %w", path, expectedHeader, sentinel.ErrMalformed)
	}

	summary := &ports.HoldingsSummary{
		CustomerID: customerID,
		Period:     period,
		Allocation: make(map[string]float64),
	}
	for i, row := range rows[1:] {
		position, err := parsePosition(row)
		if err != nil {
			return nil, fmt.Errorf("holdings %s row %d: %v: %w", path, i+2, err, sentinel.ErrMalformed)
		}
		if position == nil {
			continue // blank trailing row
		}
		summary.Positions = append(summary.Positions, *position)
		summary.TotalValue += position.Value
		summary.Allocation[position.AssetClass] += position.Value
	}

	return summary, nil
}

// Ping verifies the dataset root exists and is a directory.
func (r *Reader) Ping(_ context.Context) error {
	info, err := os.Stat(r.dataDir)
	if err != nil {
		return fmt.Errorf("holdings data dir %s: %w", r.dataDir, sentinel.ErrUnavailable)
	}
	if !info.IsDir() {
		return fmt.Errorf("holdings data dir %s is not a directory: %w", r.dataDir, sentinel.ErrUnavailable)
	}
	return nil
}

func (r *Reader) datasetPath(customerID domain.CustomerID, period domain.Period) string {
	return filepath.Join(r.dataDir, period.String(), fmt.Sprintf("customer_%s.xlsx", customerID))
}

func headerMatches(row []string) bool {
	if len(row) < len(expectedHeader) {
		return false
	}
	for i, want := range expectedHeader {
		if !strings.EqualFold(strings.TrimSpace(row[i]), want) {
			return false
		}
	}
	return true
}

// parsePosition converts one data row. Returns nil for fully blank rows.
func parsePosition(row []string) (*ports.Position, error) {
	if len(row) == 0 {
		return nil, nil
	}
	blank := true
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			blank = false
			break
		}
	}
	if blank {
		return nil, nil
	}
	if len(row) < 4 {
		return nil, fmt.Errorf("expected 4 columns, got %d", len(row))
	}

	units, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil {
		return nil, fmt.Errorf("units %q is not numeric", row[2])
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
	if err != nil {
		return nil, fmt.Errorf("value %q is not numeric", row[3])
	}

	return &ports.Position{
		Fund:       strings.TrimSpace(row[0]),
		AssetClass: strings.TrimSpace(row[1]),
		Units:      units,
		Value:      value,
	}, nil
}
