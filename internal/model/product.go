package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/labelgrid/labelgrid/internal/pricing"
)

// Product represents a catalog product entity with its pricing and metadata.
type Product struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	BrandName      string
	ProductName    string
	ProductNameEst string
	PacketSize     float64
	Unit           pricing.Unit
	PacketPrice    float64
	PricePerUnit   string
	UpdatedAt      time.Time
	CreatedAt      time.Time
}

// InitMeta initializes the product metadata including ID and timestamps.
func (p *Product) InitMeta() {
	p.ID = uuid.New()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
}

// RecomputePricePerUnit recalculates the stored per-unit price from the
// current size, unit and price. It must run whenever any of the three
// changes; the stored value is never accepted from the outside.
func (p *Product) RecomputePricePerUnit() {
	p.PricePerUnit = pricing.Normalize(p.PacketSize, p.Unit, p.PacketPrice).PerUnitPrice
}
