package model

import (
	"time"

	"github.com/google/uuid"
)

// LabelTemplate represents a named reusable label rectangle, in millimeters.
// The (OwnerID, Name) pair is unique per owner.
type LabelTemplate struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Width     float64
	Height    float64
	CreatedAt time.Time
}

// InitMeta initializes the template metadata including ID and timestamp.
func (t *LabelTemplate) InitMeta() {
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
}

// DefaultTemplates returns the built-in templates used whenever an owner has
// no stored templates or the store is unreachable. Callers never block on
// template availability.
func DefaultTemplates(ownerID uuid.UUID) []*LabelTemplate {
	now := time.Now()
	return []*LabelTemplate{
		{ID: uuid.New(), OwnerID: ownerID, Name: "Basic", Width: 100, Height: 50, CreatedAt: now},
		{ID: uuid.New(), OwnerID: ownerID, Name: "Detailed", Width: 100, Height: 70, CreatedAt: now},
	}
}
