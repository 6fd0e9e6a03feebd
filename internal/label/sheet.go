package label

import (
	"math"
	"math/rand"

	"github.com/google/uuid"
	"github.com/labelgrid/labelgrid/internal/model"
)

// Jitter bounds applied to freshly added placements so successive adds of
// the same product don't stack perfectly on top of each other.
const (
	addJitterXMM = 10.0
	addJitterYMM = 20.0
)

// Sheet holds the ordered placements of one design session. Insertion order
// is z-order: later placements render on top. Sheet is not safe for
// concurrent use; the session layer serializes access.
type Sheet struct {
	placements []*Placement
	rnd        *rand.Rand
}

// NewSheet creates an empty design sheet.
func NewSheet() *Sheet {
	return &Sheet{rnd: rand.New(rand.NewSource(rand.Int63()))}
}

// Add places a product on the sheet sized to the given template, centered
// horizontally and offset to the upper quarter of the page with a small
// random jitter. It returns the new placement.
func (s *Sheet) Add(product model.Product, template model.LabelTemplate) *Placement {
	x := PageWidthMM/2 - template.Width/2 + s.rnd.Float64()*2*addJitterXMM - addJitterXMM
	y := PageHeightMM/4 + s.rnd.Float64()*2*addJitterYMM - addJitterYMM

	p := &Placement{
		ID:         uuid.New(),
		Product:    product,
		TemplateID: template.ID,
		Width:      template.Width,
		Height:     template.Height,
		X:          x,
		Y:          y,
	}
	s.placements = append(s.placements, p)
	return p
}

// Move repositions a placement. No clamping or collision detection happens
// here; the interactive layer owns bounds handling during drag.
func (s *Sheet) Move(id uuid.UUID, x, y float64) error {
	p := s.find(id)
	if p == nil {
		return ErrPlacementNotFound
	}
	p.X = x
	p.Y = y
	return nil
}

// Resize updates a placement's size and position together, since resizing
// from a corner moves the origin too.
func (s *Sheet) Resize(id uuid.UUID, width, height, x, y float64) error {
	p := s.find(id)
	if p == nil {
		return ErrPlacementNotFound
	}
	p.Width = width
	p.Height = height
	p.X = x
	p.Y = y
	return nil
}

// Remove deletes a placement. The relative order of the remaining
// placements is preserved.
func (s *Sheet) Remove(id uuid.UUID) error {
	for i, p := range s.placements {
		if p.ID == id {
			s.placements = append(s.placements[:i], s.placements[i+1:]...)
			return nil
		}
	}
	return ErrPlacementNotFound
}

// Clear empties the sheet.
func (s *Sheet) Clear() {
	s.placements = nil
}

// Len returns the number of placements on the sheet.
func (s *Sheet) Len() int {
	return len(s.placements)
}

// Placements returns a snapshot of the placements in z-order.
func (s *Sheet) Placements() []Placement {
	out := make([]Placement, len(s.placements))
	for i, p := range s.placements {
		out[i] = *p
	}
	return out
}

// ArrangeInGrid replaces all placements with a row-major grid of the first
// placement's product, cells sized to the given template, filling as many
// rows and columns as fit inside the page margins. A no-op on an empty
// sheet since there is nothing to replicate.
func (s *Sheet) ArrangeInGrid(template model.LabelTemplate) {
	if len(s.placements) == 0 {
		return
	}

	product := s.placements[0].Product

	cols := int(math.Floor((PageWidthMM - 2*PageMarginMM) / (template.Width + CellGapMM)))
	rows := int(math.Floor((PageHeightMM - 2*PageMarginMM) / (template.Height + CellGapMM)))

	grid := make([]*Placement, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			grid = append(grid, &Placement{
				ID:         uuid.New(),
				Product:    product,
				TemplateID: template.ID,
				Width:      template.Width,
				Height:     template.Height,
				X:          PageMarginMM + float64(col)*(template.Width+CellGapMM),
				Y:          PageMarginMM + float64(row)*(template.Height+CellGapMM),
			})
		}
	}
	s.placements = grid
}

func (s *Sheet) find(id uuid.UUID) *Placement {
	for _, p := range s.placements {
		if p.ID == id {
			return p
		}
	}
	return nil
}
