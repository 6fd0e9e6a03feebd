package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/labelgrid/labelgrid/internal/model"
	"github.com/labelgrid/labelgrid/internal/repository"
)

// ErrInvalidOwner is returned when a registration is missing the email address.
var ErrInvalidOwner = errors.New("owner email must be set")

// OwnerInput carries the client-settable owner fields.
type OwnerInput struct {
	Email    string
	ShopName string
}

type OwnerService struct {
	repo repository.Repository
}

func NewOwnerService(repo repository.Repository) *OwnerService {
	return &OwnerService{repo: repo}
}

// RegisterOwner creates a new shop account. Email uniqueness is enforced by
// the database; a duplicate surfaces as a UniqueConstraintError.
func (os *OwnerService) RegisterOwner(ctx context.Context, in OwnerInput) (*model.Owner, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidOwner
	}

	owner := &model.Owner{
		Email:    email,
		ShopName: strings.TrimSpace(in.ShopName),
	}

	created, err := os.repo.Create(ctx, owner)
	if err != nil {
		return nil, err
	}

	createdOwner, ok := created.(*model.Owner)
	if !ok {
		return nil, repository.ErrInvalidType
	}

	return createdOwner, nil
}

// GetOwner returns the owner record for the given identity.
func (os *OwnerService) GetOwner(ctx context.Context, ownerID uuid.UUID) (*model.Owner, error) {
	found, err := os.repo.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	owner, ok := found.(*model.Owner)
	if !ok {
		return nil, repository.ErrInvalidType
	}

	return owner, nil
}
