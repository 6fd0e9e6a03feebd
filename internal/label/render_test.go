package label

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/labelgrid/labelgrid/internal/model"
)

func TestRenderLayoutSelection(t *testing.T) {
	tests := []struct {
		name   string
		width  float64
		height float64
		kind   ContentKind
	}{
		{"narrow selects price tag", 60, 90, KindPriceTag},
		{"narrow wins over detailed thresholds", 110, 120, KindPriceTag},
		{"large selects detailed", 120, 80, KindDetailed},
		{"detailed lower bound", 110, 70, KindDetailed},
		{"medium selects standard", 95, 55, KindStandard},
		{"standard lower bound", 90, 50, KindStandard},
		{"small selects basic", 70, 40, KindBasic},
		{"wide but short selects basic", 100, 45, KindBasic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(testProduct("Rye bread"), tt.width, tt.height)
			assert.Equal(t, tt.kind, got.Kind)
		})
	}
}

func TestRenderTextScale(t *testing.T) {
	assert.Equal(t, 1.0, Render(testProduct("p"), 100, 50).Scale)
	assert.Equal(t, 1.2, Render(testProduct("p"), 120, 80).Scale)
	// Floored at 0.8 for small labels.
	assert.Equal(t, 0.8, Render(testProduct("p"), 50, 30).Scale)
}

func TestRenderContentFields(t *testing.T) {
	product := testProduct("Rye bread")
	got := Render(product, 120, 80)

	assert.Equal(t, "Valga", got.Brand)
	assert.Equal(t, "Rye bread", got.Name)
	assert.Equal(t, "250 gm", got.SizeUnit)
	assert.Equal(t, "€2.50", got.Price)
	assert.Equal(t, "€10.00/kg", got.PerUnit)
	assert.Equal(t, "Item #: "+product.ID.String()[:8], got.Code)
}

func TestRenderNonDetailedOmitsDetailFields(t *testing.T) {
	got := Render(testProduct("Rye bread"), 95, 55)
	assert.Equal(t, KindStandard, got.Kind)
	assert.Empty(t, got.PerUnit)
	assert.Empty(t, got.Code)
}

func TestRenderMissingOptionalFields(t *testing.T) {
	product := model.Product{ProductName: "Rye bread", PacketPrice: 2}
	got := Render(product, 100, 60)

	assert.Empty(t, got.Brand)
	assert.Empty(t, got.SizeUnit)
	assert.Empty(t, got.PerUnit)
	assert.Equal(t, "€2.00", got.Price)
}

func TestRenderIsPure(t *testing.T) {
	product := testProduct("Rye bread")
	first := Render(product, 100, 60)
	second := Render(product, 100, 60)
	assert.Equal(t, first, second)
}
