// Package label implements the label design core: arranging product labels
// on an A4 sheet, selecting the label content layout for a given size, and
// exporting the finished sheet as a printable SVG document.
package label

import (
	"errors"

	"github.com/google/uuid"
	"github.com/labelgrid/labelgrid/internal/model"
)

// Page canvas dimensions and grid spacing, in millimeters. The canvas is a
// fixed A4 portrait page; placements are always positioned relative to its
// top-left origin.
const (
	PageWidthMM  = 210.0
	PageHeightMM = 297.0
	PageMarginMM = 10.0
	CellGapMM    = 5.0
)

var (
	// ErrPlacementNotFound is returned for operations on an unknown placement ID.
	ErrPlacementNotFound = errors.New("placement not found")

	// ErrEmptySheet is returned when an empty sheet is exported for print.
	ErrEmptySheet = errors.New("sheet has no placements")
)

// Placement is one product label positioned on the design canvas. Its size
// starts from the template it was created with but may diverge after an
// interactive resize. Placements exist only for the duration of one design
// session and are never persisted.
type Placement struct {
	ID         uuid.UUID
	Product    model.Product
	TemplateID uuid.UUID
	Width      float64
	Height     float64
	X          float64
	Y          float64
}
