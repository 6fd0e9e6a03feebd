package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labelgrid/labelgrid/internal/metrics"
	"github.com/labelgrid/labelgrid/internal/model"
	"github.com/xuri/excelize/v2"
)

// ErrEmptySpreadsheet is returned when the uploaded workbook has no data rows.
var ErrEmptySpreadsheet = errors.New("spreadsheet contains no data rows")

// defaultBrandName is substituted when an imported row has no brand.
const defaultBrandName = "Unknown Brand"

// productCreator is the subset of ProductService the importer needs.
type productCreator interface {
	CreateProduct(ctx context.Context, ownerID uuid.UUID, in ProductInput) (*model.Product, error)
}

// ImportResult summarizes a bulk import run.
type ImportResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// ImportService parses product spreadsheets and persists their rows.
type ImportService struct {
	products productCreator
}

func NewImportService(products productCreator) *ImportService {
	return &ImportService{products: products}
}

// importColumns maps recognized header names to product fields. Matching is
// case-insensitive and tolerates surrounding whitespace.
var importColumns = map[string]string{
	"brand name":          "brand",
	"brand":               "brand",
	"product name":        "name",
	"name":                "name",
	"product description": "description",
	"description":         "description",
	"pack size":           "size",
	"packet size":         "size",
	"pack unit":           "unit",
	"packet unit":         "unit",
	"pack price":          "price",
	"packet price":        "price",
}

// ImportProducts reads an .xlsx workbook from r and creates a product per
// data row. Malformed rows get safe defaults rather than failing the batch;
// rows without a product name are skipped.
func (is *ImportService) ImportProducts(ctx context.Context, ownerID uuid.UUID, r io.Reader) (*ImportResult, error) {
	xlsx, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer xlsx.Close()

	sheetName := xlsx.GetSheetName(0)
	rows, err := xlsx.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	if len(rows) < 2 {
		return nil, ErrEmptySpreadsheet
	}

	fields := headerFields(rows[0])

	result := &ImportResult{}
	for i, row := range rows[1:] {
		in, ok := rowToInput(fields, row)
		if !ok {
			slog.Warn("Skipping spreadsheet row without product name", slog.Int("row", i+2))
			result.Skipped++
			continue
		}

		if _, err := is.products.CreateProduct(ctx, ownerID, in); err != nil {
			slog.Error("Failed to import spreadsheet row", slog.Int("row", i+2), slog.Any("err", err))
			result.Skipped++
			continue
		}

		metrics.ProductsImported.Inc()
		result.Created++
	}

	return result, nil
}

// headerFields resolves each header cell to a known field name; unknown
// headers map to an empty string and their columns are ignored.
func headerFields(header []string) []string {
	fields := make([]string, len(header))
	for i, cell := range header {
		fields[i] = importColumns[strings.ToLower(strings.TrimSpace(cell))]
	}
	return fields
}

func rowToInput(fields []string, row []string) (ProductInput, bool) {
	in := ProductInput{BrandName: defaultBrandName}

	for i, field := range fields {
		if i >= len(row) {
			break
		}
		value := strings.TrimSpace(row[i])
		if value == "" {
			continue
		}

		switch field {
		case "brand":
			in.BrandName = value
		case "name":
			in.ProductName = value
		case "description":
			in.ProductNameEst = value
		case "size":
			in.PacketSize, _ = strconv.ParseFloat(value, 64)
		case "unit":
			in.Unit = value
		case "price":
			in.PacketPrice, _ = strconv.ParseFloat(value, 64)
		}
	}

	if in.ProductName == "" {
		return ProductInput{}, false
	}

	return in, true
}
