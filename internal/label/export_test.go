package label

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rectRe = regexp.MustCompile(`<rect x="([\-0-9.]+)" y="([\-0-9.]+)" width="([\-0-9.]+)" height="([\-0-9.]+)"`)

type rect struct{ x, y, w, h float64 }

func exportedRects(t *testing.T, out string) []rect {
	t.Helper()
	var rects []rect
	for _, m := range rectRe.FindAllStringSubmatch(out, -1) {
		vals := make([]float64, 4)
		for i := 0; i < 4; i++ {
			v, err := strconv.ParseFloat(m[i+1], 64)
			require.NoError(t, err)
			vals[i] = v
		}
		rects = append(rects, rect{vals[0], vals[1], vals[2], vals[3]})
	}
	return rects
}

func TestExportSVGPageSize(t *testing.T) {
	out := string(ExportSVG(NewSheet()))

	assert.Regexp(t, `width="210(\.0+)?mm"`, out)
	assert.Regexp(t, `height="297(\.0+)?mm"`, out)

	// The page background covers the full A4 canvas.
	rects := exportedRects(t, out)
	require.Len(t, rects, 1)
	assert.Equal(t, rect{0, 0, PageWidthMM, PageHeightMM}, rects[0])
}

func TestExportSVGPlacementRects(t *testing.T) {
	sheet := NewSheet()
	template := testTemplate(60, 40)
	a := sheet.Add(testProduct("first"), template)
	b := sheet.Add(testProduct("second"), template)
	require.NoError(t, sheet.Move(a.ID, 10, 10))
	require.NoError(t, sheet.Move(b.ID, 80, 80))

	out := string(ExportSVG(sheet))

	// The two labels occupy exactly their placement rectangles on the page;
	// nothing else besides the background is drawn.
	rects := exportedRects(t, out)
	require.Len(t, rects, 3)
	assert.Equal(t, rect{10, 10, 60, 40}, rects[1])
	assert.Equal(t, rect{80, 80, 60, 40}, rects[2])
}

func TestExportSVGZOrder(t *testing.T) {
	sheet := NewSheet()
	template := testTemplate(60, 40)
	first := sheet.Add(testProduct("below"), template)
	second := sheet.Add(testProduct("above"), template)

	out := string(ExportSVG(sheet))

	// Placement order is document order, so the later placement paints on top.
	firstIdx := strings.Index(out, fmt.Sprintf("label-%s", first.ID))
	secondIdx := strings.Index(out, fmt.Sprintf("label-%s", second.ID))
	require.NotEqual(t, -1, firstIdx)
	require.NotEqual(t, -1, secondIdx)
	assert.Less(t, firstIdx, secondIdx)
}

func TestExportSVGContent(t *testing.T) {
	sheet := NewSheet()
	sheet.Add(testProduct("Rye bread"), testTemplate(100, 50))

	out := string(ExportSVG(sheet))

	assert.Contains(t, out, "Valga")
	assert.Contains(t, out, "Rye bread")
	assert.Contains(t, out, "€2.50")
}

func TestExportSVGDoesNotMutateSheet(t *testing.T) {
	sheet := NewSheet()
	p := sheet.Add(testProduct("Rye bread"), testTemplate(100, 50))
	before := sheet.Placements()

	ExportSVG(sheet)

	assert.Equal(t, before, sheet.Placements())
	assert.Equal(t, p.ID, sheet.Placements()[0].ID)
}

func TestExportSVGEscapesMarkup(t *testing.T) {
	sheet := NewSheet()
	product := testProduct(`Juust "Eesti" <extra>`)
	sheet.Add(product, testTemplate(100, 50))

	out := string(ExportSVG(sheet))
	assert.NotContains(t, out, "<extra>")
}
