package label

import (
	"fmt"
	"math"

	"github.com/labelgrid/labelgrid/internal/model"
)

// ContentKind selects one of the four label layouts.
type ContentKind string

const (
	// KindPriceTag is the narrow hang-tag layout: brand header, product
	// block, price footer.
	KindPriceTag ContentKind = "price_tag"
	// KindDetailed is the two-column layout with per-unit price and an
	// item code line.
	KindDetailed ContentKind = "detailed"
	// KindStandard is the centered brand/name block over a price line.
	KindStandard ContentKind = "standard"
	// KindBasic is the minimal stacked layout for small labels.
	KindBasic ContentKind = "basic"
)

// Layout selection thresholds, in millimeters.
const (
	detailedMinWidthMM  = 110.0
	detailedMinHeightMM = 70.0
	standardMinWidthMM  = 90.0
	standardMinHeightMM = 50.0
)

// Text scale reference size and floor.
const (
	scaleRefWidthMM  = 100.0
	scaleRefHeightMM = 50.0
	minTextScale     = 0.8
)

const currencySymbol = "€"

// Content is the visual content of one rendered label. Kind determines
// which fields the exporter draws; fields that don't apply to the selected
// layout are empty.
type Content struct {
	Kind    ContentKind
	Scale   float64
	Brand   string
	Name    string
	NameEst string
	// SizeUnit is the packet size with its original unit, e.g. "250 gm".
	// Empty when the product has no size.
	SizeUnit string
	Price    string
	// PerUnit is the normalized comparison price, e.g. "€10.00/kg".
	// Only set for the detailed layout.
	PerUnit string
	// Code is a short identifying code line, only set for the detailed layout.
	Code string
}

// Render selects the label layout for a product at the given size and
// produces its content. It is a pure function of its inputs: missing
// optional fields render empty and invalid dimensions still yield a usable
// basic layout, never an error.
func Render(product model.Product, width, height float64) Content {
	c := Content{
		Kind:  selectKind(width, height),
		Scale: textScale(width, height),
		Brand: product.BrandName,
		Name:  product.ProductName,
		Price: fmt.Sprintf("%s%.2f", currencySymbol, product.PacketPrice),
	}

	if product.PacketSize > 0 {
		c.SizeUnit = fmt.Sprintf("%s %s", formatAmount(product.PacketSize), product.Unit)
	}

	switch c.Kind {
	case KindDetailed:
		c.NameEst = product.ProductNameEst
		if product.PricePerUnit != "" {
			c.PerUnit = fmt.Sprintf("%s%s/%s", currencySymbol, product.PricePerUnit, product.Unit.CompareUnit())
		}
		c.Code = itemCode(product)
	}

	return c
}

func selectKind(width, height float64) ContentKind {
	switch {
	case width < height:
		return KindPriceTag
	case width >= detailedMinWidthMM && height >= detailedMinHeightMM:
		return KindDetailed
	case width >= standardMinWidthMM && height >= standardMinHeightMM:
		return KindStandard
	default:
		return KindBasic
	}
}

func textScale(width, height float64) float64 {
	return math.Max(minTextScale, math.Min(width/scaleRefWidthMM, height/scaleRefHeightMM))
}

func itemCode(product model.Product) string {
	id := product.ID.String()
	if len(id) > 8 {
		id = id[:8]
	}
	return "Item #: " + id
}

// formatAmount trims trailing zeros so "250" prints instead of "250.00"
// while fractional sizes keep their decimals.
func formatAmount(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%g", v)
}
