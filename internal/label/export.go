package label

import (
	"bytes"
	"fmt"

	svg "github.com/ajstarks/svgo/float"
)

// Base typography for exported labels, in millimeters. Each layout
// multiplies these by the content's text scale.
const (
	baseFontMM    = 4.2
	linePadMM     = 1.5
	borderStyle   = "fill:#fff;stroke:#111;stroke-width:0.4"
	hairlineStyle = "stroke:#111;stroke-width:0.2"
)

// ExportSVG serializes the sheet into a print-ready SVG document sized
// exactly to the A4 page. Every placement is drawn at its absolute
// position in placement order, so later placements end up visually on top,
// matching the design view. Only the label content is emitted; interactive
// affordances never reach the output. The sheet itself is not touched.
func ExportSVG(sheet *Sheet) []byte {
	return exportPlacements(sheet.Placements())
}

func exportPlacements(placements []Placement) []byte {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.StartviewUnit(PageWidthMM, PageHeightMM, "mm", 0, 0, PageWidthMM, PageHeightMM)
	canvas.Rect(0, 0, PageWidthMM, PageHeightMM, "fill:#fff")

	for _, p := range placements {
		content := Render(p.Product, p.Width, p.Height)
		canvas.Group(fmt.Sprintf(`id="label-%s"`, p.ID))
		canvas.Rect(p.X, p.Y, p.Width, p.Height, boxStyle(content.Kind))
		drawLabel(canvas, p, content)
		canvas.Gend()
	}

	canvas.End()
	return buf.Bytes()
}

// boxStyle returns the bounding-rect style per layout. The basic layout has
// no visible border, matching the design view.
func boxStyle(kind ContentKind) string {
	switch kind {
	case KindPriceTag:
		return "fill:#fff;stroke:#111;stroke-width:0.6"
	case KindBasic:
		return "fill:#fff"
	default:
		return borderStyle
	}
}

func drawLabel(canvas *svg.SVG, p Placement, c Content) {
	switch c.Kind {
	case KindPriceTag:
		drawPriceTag(canvas, p, c)
	case KindDetailed:
		drawDetailed(canvas, p, c)
	case KindStandard:
		drawStandard(canvas, p, c)
	default:
		drawBasic(canvas, p, c)
	}
}

// drawPriceTag lays out the narrow hang-tag: brand header above a rule,
// product block in the middle, price footer below a rule.
func drawPriceTag(canvas *svg.SVG, p Placement, c Content) {
	cx := p.X + p.Width/2

	brandSize := baseFontMM * 1.2 * c.Scale
	y := p.Y + linePadMM + brandSize
	text(canvas, cx, y, c.Brand, brandSize, "bold", "middle")
	y += linePadMM
	canvas.Line(p.X, y, p.X+p.Width, y, hairlineStyle)

	nameSize := baseFontMM * c.Scale
	y += linePadMM + nameSize
	text(canvas, cx, y, c.Name, nameSize, "normal", "middle")
	if c.SizeUnit != "" {
		sizeSize := baseFontMM * 0.9 * c.Scale
		y += linePadMM + sizeSize
		text(canvas, cx, y, c.SizeUnit, sizeSize, "normal", "middle")
	}

	priceSize := baseFontMM * 1.4 * c.Scale
	footY := p.Y + p.Height - linePadMM
	text(canvas, cx, footY, c.Price, priceSize, "bold", "middle")
	canvas.Line(p.X, footY-priceSize-linePadMM, p.X+p.Width, footY-priceSize-linePadMM, hairlineStyle)
}

// drawDetailed lays out the two-column label: brand and names on the left,
// price and per-unit price on the right, item code and size at the bottom.
func drawDetailed(canvas *svg.SVG, p Placement, c Content) {
	leftX := p.X + linePadMM
	rightX := p.X + p.Width - linePadMM

	nameSize := baseFontMM * c.Scale
	y := p.Y + linePadMM + nameSize
	text(canvas, leftX, y, c.Brand, nameSize, "bold", "start")
	text(canvas, leftX, y+nameSize+linePadMM, c.Name, nameSize, "normal", "start")
	if c.NameEst != "" {
		text(canvas, leftX, y+2*(nameSize+linePadMM), c.NameEst, nameSize, "normal", "start")
	}

	priceSize := baseFontMM * 1.4 * c.Scale
	text(canvas, rightX, p.Y+linePadMM+priceSize, c.Price, priceSize, "bold", "end")
	if c.PerUnit != "" {
		perUnitSize := baseFontMM * 0.8 * c.Scale
		text(canvas, rightX, p.Y+2*linePadMM+priceSize+perUnitSize, c.PerUnit, perUnitSize, "normal", "end")
	}

	detailSize := baseFontMM * 0.8 * c.Scale
	bottomY := p.Y + p.Height - linePadMM
	text(canvas, p.X+p.Width/2, bottomY, c.Code, detailSize, "normal", "middle")
	if c.SizeUnit != "" {
		sizeSize := baseFontMM * 0.9 * c.Scale
		text(canvas, p.X+p.Width/2, bottomY-detailSize-linePadMM, c.SizeUnit, sizeSize, "normal", "middle")
	}
}

// drawStandard lays out the centered brand/name block over a price line.
func drawStandard(canvas *svg.SVG, p Placement, c Content) {
	cx := p.X + p.Width/2

	nameSize := baseFontMM * c.Scale
	y := p.Y + linePadMM + nameSize
	text(canvas, cx, y, c.Brand, nameSize, "bold", "middle")
	text(canvas, cx, y+nameSize+linePadMM, c.Name, nameSize, "normal", "middle")

	priceSize := baseFontMM * 1.2 * c.Scale
	text(canvas, cx, p.Y+p.Height-linePadMM, c.Price, priceSize, "bold", "middle")
}

// drawBasic stacks brand, name and price centered with minimal styling.
func drawBasic(canvas *svg.SVG, p Placement, c Content) {
	cx := p.X + p.Width/2
	cy := p.Y + p.Height/2
	size := baseFontMM * c.Scale

	text(canvas, cx, cy-size-linePadMM, c.Brand, size, "bold", "middle")
	text(canvas, cx, cy, c.Name, size, "normal", "middle")
	text(canvas, cx, cy+size+linePadMM, c.Price, size, "normal", "middle")
}

func text(canvas *svg.SVG, x, y float64, t string, sizeMM float64, weight, anchor string) {
	if t == "" {
		return
	}
	style := fmt.Sprintf("font-family:Arial,sans-serif;font-size:%.2fmm;font-weight:%s;text-anchor:%s;fill:#111", sizeMM, weight, anchor)
	canvas.Text(x, y, t, style)
}
