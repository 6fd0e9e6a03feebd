package model

import (
	"time"

	"github.com/google/uuid"
)

// Owner represents a shop account that products and templates belong to.
// Authentication lives outside this service; only the identity is stored.
type Owner struct {
	ID        uuid.UUID
	Email     string
	ShopName  string
	UpdatedAt time.Time
	CreatedAt time.Time
}

func (o *Owner) InitMeta() {
	o.ID = uuid.New()
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
}
