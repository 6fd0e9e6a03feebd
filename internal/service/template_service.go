package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labelgrid/labelgrid/internal/metrics"
	"github.com/labelgrid/labelgrid/internal/model"
	"github.com/labelgrid/labelgrid/internal/repository"
)

// ErrInvalidTemplate is returned when template dimensions or name fail validation.
var ErrInvalidTemplate = errors.New("template name must be set and dimensions must be positive")

// TemplateInput carries the client-settable template fields.
type TemplateInput struct {
	Name   string
	Width  float64
	Height float64
}

type TemplateService struct {
	repo repository.Repository
}

func NewTemplateService(repo repository.Repository) *TemplateService {
	return &TemplateService{repo: repo}
}

func (ts *TemplateService) CreateTemplate(ctx context.Context, ownerID uuid.UUID, in TemplateInput) (*model.LabelTemplate, error) {
	if in.Name == "" || in.Width <= 0 || in.Height <= 0 {
		return nil, ErrInvalidTemplate
	}

	template := &model.LabelTemplate{
		OwnerID: ownerID,
		Name:    in.Name,
		Width:   in.Width,
		Height:  in.Height,
	}

	created, err := ts.repo.Create(ctx, template)
	if err != nil {
		return nil, err
	}

	createdTemplate, ok := created.(*model.LabelTemplate)
	if !ok {
		return nil, repository.ErrInvalidType
	}

	metrics.TemplatesCreated.Inc()

	return createdTemplate, nil
}

// ListTemplates returns the owner's stored templates, newest first. The
// built-in templates are returned whenever the store yields nothing or
// fails; callers never block on template availability.
func (ts *TemplateService) ListTemplates(ctx context.Context, ownerID uuid.UUID, query repository.Query) ([]*model.LabelTemplate, error) {
	query.Values[repository.OwnerIDField] = ownerID.String()

	resources, err := ts.repo.List(ctx, query)
	if err != nil {
		slog.Error("Failed to list templates, falling back to built-ins", slog.Any("err", err))
		return model.DefaultTemplates(ownerID), nil
	}

	if len(resources) == 0 {
		return model.DefaultTemplates(ownerID), nil
	}

	templates := make([]*model.LabelTemplate, 0, len(resources))
	for _, resource := range resources {
		template, ok := resource.(*model.LabelTemplate)
		if !ok {
			return nil, fmt.Errorf("listing templates: %w", repository.ErrInvalidType)
		}
		templates = append(templates, template)
	}

	return templates, nil
}

func (ts *TemplateService) GetTemplate(ctx context.Context, ownerID, id uuid.UUID) (*model.LabelTemplate, error) {
	resource, err := ts.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	template, ok := resource.(*model.LabelTemplate)
	if !ok {
		return nil, repository.ErrInvalidType
	}

	if template.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}

	return template, nil
}

func (ts *TemplateService) UpdateTemplate(ctx context.Context, ownerID, id uuid.UUID, in TemplateInput) (*model.LabelTemplate, error) {
	if in.Name == "" || in.Width <= 0 || in.Height <= 0 {
		return nil, ErrInvalidTemplate
	}

	template, err := ts.GetTemplate(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	template.Name = in.Name
	template.Width = in.Width
	template.Height = in.Height

	updated, err := ts.repo.Update(ctx, template)
	if err != nil {
		return nil, err
	}

	updatedTemplate, ok := updated.(*model.LabelTemplate)
	if !ok {
		return nil, repository.ErrInvalidType
	}

	return updatedTemplate, nil
}

func (ts *TemplateService) DeleteTemplate(ctx context.Context, ownerID, id uuid.UUID) error {
	template, err := ts.GetTemplate(ctx, ownerID, id)
	if err != nil {
		return err
	}

	return ts.repo.DeleteByID(ctx, template.ID)
}
